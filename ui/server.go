// Package ui serves a small web playground: paste Quench source and see its
// syntax tree and the compiled module side by side.
package ui

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/quench-lang/quench/compiler"
	"github.com/quench-lang/quench/document"
)

//go:embed templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("quench.ui")

const (
	maxSourceBytes = 1 << 20
	jsonMediaType  = "application/json"
)

type Server struct {
	compiler  *compiler.Compiler
	templates *template.Template
	mux       *http.ServeMux
}

// Request is the body of a JSON compile request.
type Request struct {
	Source string `json:"source"`
}

// Result is what the playground shows for one source text.
type Result struct {
	Source string `json:"source"`
	Tree   string `json:"tree"`
	JS     string `json:"js,omitempty"`
	Error  string `json:"error,omitempty"`
}

func NewServer(comp *compiler.Compiler) (*Server, error) {
	if comp == nil {
		comp = compiler.New()
	}
	templateFS, err := fs.Sub(embeddedFS, "templates")
	if err != nil {
		return nil, err
	}
	tmpl, err := template.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		compiler:  comp,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /compile", s.handleCompile)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err.Error())
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", nil)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceBytes)

	var req Request
	if isJSON(r.Header.Get("Content-Type")) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Source = r.FormValue("source")
	}

	result := s.Compile(req.Source)

	if strings.Contains(r.Header.Get("Accept"), jsonMediaType) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Errorf("encode result: %s", err.Error())
		}
		return
	}
	s.render(w, "index.html", result)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == jsonMediaType
}

// Compile parses source and compiles it when the tree is free of errors.
func (s *Server) Compile(source string) *Result {
	state := document.Create(source)
	result := &Result{
		Source: source,
		Tree:   state.DebugString(),
	}
	js, err := s.compiler.Compile(state.Root())
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.JS = js
	return result
}
