// Package parser provides an error-tolerant, incremental parser for Quench
// source code.
//
// # Overview
//
// The parser turns bytes into a syntax tree of *Node values. Every node
// carries a Range with byte offsets and 0-based row/column points, so trees
// can be mapped back onto editor coordinates. Malformed input never makes
// parsing fail; the offending text is wrapped in KindError nodes instead.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               ▲
//	                                        ┌─────────────┐
//	                                        │ edited old  │
//	                                        │    tree     │
//	                                        └─────────────┘
//
// # Grammar
//
//	source_file  := statement*
//	statement    := (declaration | expression) ';'
//	declaration  := identifier ':=' expression
//	expression   := function | application
//	function     := identifier '=>' expression
//	application  := postfix postfix*
//	postfix      := primary ('[' expression ']' | '.' identifier)*
//	primary      := identifier | null | true | false | integer | string
//	              | symbol | '(' expression ')' | block | list | map
//	block        := '{' statement* expression? '}'
//	list         := '[' (expression (',' expression)* ','?)? ']'
//	map          := '[' ':' ']' | '[' pair (',' pair)* ','? ']'
//	pair         := expression ':' expression
//
// Symbols are written #name. Index and field suffixes must directly follow
// their operand: xs[0] indexes, f [0] calls f with a one element list.
//
// # Incremental reparsing
//
// After the text of a document changes, the old tree is shifted with
// Node.Edit and handed to the next parse through WithPrevious:
//
//	edited := old.Edit(edit)
//	p := parser.ParseSourceFile(bytes.NewReader(newText), parser.WithPrevious(edited))
//	tree := p.Finish()
//
// Top-level statements that are error free and untouched by the edit are
// carried over when the new parse reaches their start offset. A statement
// ends with its ';' token and the parser never looks past it, so the result
// is identical to a parse from scratch.
//
// # Thread Safety
//
// A Parser instance is not safe for concurrent use. Trees are immutable once
// returned and may be read from any goroutine.
package parser
