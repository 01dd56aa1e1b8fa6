package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quench-lang/quench/compiler"
	"github.com/quench-lang/quench/config"
	"github.com/quench-lang/quench/document"
	"github.com/quench-lang/quench/format"
)

const hello = `main := _ => print "Hello, world!";` + "\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command against a private config file.
func execute(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	cfgPath := writeFile(t, t.TempDir(), config.FileName, cfg)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.qn", hello)

	out, err := execute(t, "", "parse", "--color", "never", path)
	require.NoError(t, err)
	assert.Equal(t, document.Create(hello).Root().String(), out)
}

func TestParseJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.qn", hello)

	out, err := execute(t, "", "parse", "--format", "json", path)
	require.NoError(t, err)

	var tree struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind string `json:"kind"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "source_file", tree.Kind)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "declaration", tree.Children[0].Kind)
}

func TestParseKeepsErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.qn", "x := ;\n")

	out, err := execute(t, "", "parse", "--color", "never", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ERROR")
}

func TestParseUnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.qn", hello)

	_, err := execute(t, "", "parse", "--format", "yaml", path)
	assert.Error(t, err)
}

func TestParseMissingFile(t *testing.T) {
	_, err := execute(t, "", "parse", filepath.Join(t.TempDir(), "nope.qn"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompileJS(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.qn", hello)

	out, err := execute(t, "", "compile", path)
	require.NoError(t, err)
	assert.Equal(t, "import * as Immutable from \"immutable\";\n"+
		"const $main = ($_) => console.log(\"Hello, world!\");\n"+
		"$main();\n", out)
}

func TestCompileUsesConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.qn", hello)

	out, err := execute(t, "compiler:\n  prefix: q_\n  runtime: ./runtime.js\n", "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, `from "./runtime.js"`)
	assert.Contains(t, out, "const q_main = (q__) =>")
	assert.Contains(t, out, "q_main();")
}

func TestCompileESTree(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.qn", hello)

	out, err := execute(t, "", "compile", "--format", "estree", path)
	require.NoError(t, err)

	var prog struct {
		Type       string            `json:"type"`
		SourceType string            `json:"sourceType"`
		Body       []json.RawMessage `json:"body"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &prog))
	assert.Equal(t, "Program", prog.Type)
	assert.Equal(t, "module", prog.SourceType)
	assert.Len(t, prog.Body, 3)
}

func TestCompileOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hello.qn", hello)
	target := filepath.Join(dir, "hello.mjs")

	out, err := execute(t, "", "compile", "-o", target, path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "$main();\n"))
}

func TestCompileUnknownFormatWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hello.qn", hello)
	target := filepath.Join(dir, "hello.mjs")

	_, err := execute(t, "", "compile", "--format", "wasm", "-o", target, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	_, err = os.Stat(target)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompileMalformedWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.qn", "x := ;\n")
	target := filepath.Join(dir, "bad.mjs")

	_, err := execute(t, "", "compile", "-o", target, path)
	require.Error(t, err)

	_, err = os.Stat(target)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompileMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.qn", "x := ;\n")

	out, err := execute(t, "", "compile", path)
	require.Error(t, err)
	assert.Empty(t, out)

	var malformed *compiler.MalformedTreeError
	assert.True(t, errors.As(err, &malformed))
}

func TestRunExitStatus(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	path := writeFile(t, t.TempDir(), "hello.qn", hello)

	t.Setenv(config.NodeEnv, "true")
	_, err := execute(t, "", "run", path, "a", "b")
	require.NoError(t, err)

	t.Setenv(config.NodeEnv, "false")
	_, err = execute(t, "", "run", path)
	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.code)
}

func TestRunMalformedDoesNotStartNode(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.qn", "x := ;\n")

	t.Setenv(config.NodeEnv, filepath.Join(t.TempDir(), "no-such-node"))
	_, err := execute(t, "", "run", path)
	var malformed *compiler.MalformedTreeError
	assert.True(t, errors.As(err, &malformed))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "", "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, compiler.DefaultPrefix, cfg.Compiler.Prefix)

	_, err = execute(t, "", "init", dir)
	assert.Error(t, err)

	_, err = execute(t, "", "init", "--force", dir)
	assert.NoError(t, err)
}

func TestBadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.qn", hello)

	_, err := execute(t, "compiler: [", "parse", path)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	state := document.Create("x := 1;\n")
	styles := format.NewStyles(false)
	comp := compiler.New()

	var buf bytes.Buffer
	require.NoError(t, render(&buf, state, "tree", comp, styles))
	assert.Equal(t, state.Root().String(), buf.String())

	buf.Reset()
	require.NoError(t, render(&buf, state, "js", comp, styles))
	assert.Contains(t, buf.String(), "const $x = 1;\n")

	buf.Reset()
	require.NoError(t, render(&buf, document.Create("x := ;"), "js", comp, styles))
	assert.Contains(t, buf.String(), "malformed tree")

	assert.Error(t, render(&buf, state, "html", comp, styles))
}

func TestGrammar(t *testing.T) {
	out, err := execute(t, "", "grammar")
	require.NoError(t, err)
	assert.Contains(t, out, "SourceFile  = { Statement } .")

	out, err = execute(t, "", "grammar", "--productions")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Application", lines[0])
	assert.Contains(t, lines, "identifier")
}
