package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quench-lang/quench/compiler"
)

func TestReplAppendsLines(t *testing.T) {
	var out bytes.Buffer
	r := newRepl(&out, compiler.New(), false)

	assert.False(t, r.eval("x := 1;"))
	assert.Contains(t, out.String(), "declaration")

	out.Reset()
	assert.False(t, r.eval("y := x;"))
	assert.Contains(t, out.String(), "declaration")
	assert.NotContains(t, out.String(), "integer", "only the new statement is printed")
	assert.Equal(t, 1, r.state.Reused())

	out.Reset()
	r.eval(":source")
	assert.Equal(t, "x := 1;\ny := x;\n", out.String())

	out.Reset()
	r.eval(":js")
	assert.Contains(t, out.String(), "const $x = 1;\nconst $y = $x;\n")
}

func TestReplContinuesStatements(t *testing.T) {
	var out bytes.Buffer
	r := newRepl(&out, compiler.New(), false)

	r.eval("main := _ =>")
	assert.Contains(t, out.String(), "ERROR")

	out.Reset()
	r.eval(`  print "hi";`)
	assert.NotContains(t, out.String(), "ERROR")
	assert.False(t, r.state.Root().HasError())
}

func TestReplCommands(t *testing.T) {
	var out bytes.Buffer
	r := newRepl(&out, compiler.New(), false)

	assert.False(t, r.eval(""))
	assert.Empty(t, out.String())

	r.eval(":bogus")
	assert.Contains(t, out.String(), "unknown command :bogus")

	out.Reset()
	r.eval(":help")
	assert.Contains(t, out.String(), ":reset")

	r.eval("x := ;")
	out.Reset()
	r.eval(":js")
	assert.Contains(t, out.String(), "malformed tree")

	r.eval(":reset")
	assert.Equal(t, "", r.state.Text())

	out.Reset()
	r.eval(":tree")
	assert.Contains(t, out.String(), "source_file")

	assert.True(t, r.eval(":quit"))
	assert.True(t, r.eval("  :q  "))
}
