package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(nil)
	require.NoError(t, err)
	return s
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quench playground")
	assert.NotContains(t, rec.Body.String(), "Syntax tree")
}

func TestCompileForm(t *testing.T) {
	s := newTestServer(t)

	form := url.Values{"source": {"x := [1, 2];"}}
	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "source_file")
	assert.Contains(t, body, "const $x = Immutable.List([1, 2]);")
}

func TestCompileJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(`{"source": "x := ;"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "x := ;", result.Source)
	assert.Contains(t, result.Tree, "ERROR")
	assert.Empty(t, result.JS)
	assert.Contains(t, result.Error, "malformed tree")
}

func TestCompileJSONWithCharset(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(`{"source": "x := 1;"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "x := 1;", result.Source)
	assert.Contains(t, result.JS, "const $x = 1;")
}

func TestCompileBadJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
