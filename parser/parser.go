package parser

import "io"

type Option func(*Parser)

// WithPrevious supplies the previous tree of the same document as a reuse
// hint. The tree must already have been passed through Node.Edit for every
// change made to the text since it was parsed.
func WithPrevious(tree *Node) Option {
	return func(p *Parser) {
		p.previous = tree
	}
}

type Parser struct {
	reader   io.Reader
	input    []byte
	lexer    *Lexer
	buf      []Token
	last     Token
	previous *Node
	reusable map[int]*Node
	reused   int
}

func ParseSourceFile(r io.Reader, opts ...Option) *Parser {
	p := &Parser{reader: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a shorthand for ParseSourceFile over an in-memory buffer.
func Parse(src []byte, opts ...Option) *Node {
	p := &Parser{input: src}
	for _, opt := range opts {
		opt(p)
	}
	return p.Finish()
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish parses the whole input. The result is never nil unless reading
// the input failed; malformed text is represented by error nodes.
func (p *Parser) Finish() *Node {
	if err := p.readAll(); err != nil {
		return nil
	}
	p.lexer = NewLexer(p.input)
	p.buf = p.buf[:0]
	p.last = Token{}
	p.reused = 0
	p.collectReusable()
	return p.parseSourceFile()
}

// Reused reports how many subtrees of the previous tree the last call to
// Finish carried over.
func (p *Parser) Reused() int {
	return p.reused
}

func (p *Parser) collectReusable() {
	p.reusable = nil
	if p.previous == nil {
		return
	}
	p.reusable = make(map[int]*Node)
	for _, child := range p.previous.Children {
		if child.Kind.IsStatement() && !child.changed && !child.HasError() {
			p.reusable[child.Range.StartByte] = child
		}
	}
}

func (p *Parser) reuse() *Node {
	if len(p.reusable) == 0 {
		return nil
	}
	tok := p.peek()
	n, ok := p.reusable[tok.Range.StartByte]
	if !ok || n.Range.StartPoint != tok.Range.StartPoint || n.Range.EndByte > len(p.input) {
		return nil
	}
	delete(p.reusable, tok.Range.StartByte)
	p.lexer.Seek(n.Range.EndByte, n.Range.EndPoint)
	p.buf = p.buf[:0]
	p.last = Token{
		Kind: TokenSemicolon,
		Range: Range{
			StartByte:  n.Range.EndByte - 1,
			EndByte:    n.Range.EndByte,
			StartPoint: Point{Row: n.Range.EndPoint.Row, Column: n.Range.EndPoint.Column - 1},
			EndPoint:   n.Range.EndPoint,
		},
		Literal: ";",
	}
	p.reused++
	return n
}

func (p *Parser) fill(n int) {
	for len(p.buf) <= n {
		tok := p.lexer.NextToken()
		if tok.Kind == TokenWhitespace || tok.Kind == TokenLineComment {
			continue
		}
		p.buf = append(p.buf, tok)
		if tok.Kind == TokenEOF {
			for len(p.buf) <= n {
				p.buf = append(p.buf, tok)
			}
		}
	}
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	p.fill(n)
	return p.buf[n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.buf = p.buf[1:]
		p.last = tok
	}
	return tok
}

func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	return nil
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// adjacent reports whether the next token directly follows the last one
// with no whitespace or comments in between.
func (p *Parser) adjacent() bool {
	return p.peek().Range.StartByte == p.last.Range.EndByte
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.peek()
	return func() bool {
		if p.peek() == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	tok := p.peek()
	return &Node{
		Kind: kind,
		Range: Range{
			StartByte:  tok.Range.StartByte,
			StartPoint: tok.Range.StartPoint,
		},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	end := p.last.Range
	if end.EndByte < n.Range.StartByte {
		end = Range{EndByte: n.Range.StartByte, EndPoint: n.Range.StartPoint}
	}
	n.Range.EndByte = end.EndByte
	n.Range.EndPoint = end.EndPoint
	return n
}

// span builds a node covering first through last.
func span(kind NodeKind, first, last *Node) *Node {
	return &Node{
		Kind: kind,
		Range: Range{
			StartByte:  first.Range.StartByte,
			StartPoint: first.Range.StartPoint,
			EndByte:    last.Range.EndByte,
			EndPoint:   last.Range.EndPoint,
		},
		Children: []*Node{first, last},
	}
}

func (p *Parser) leaf(kind NodeKind) *Node {
	tok := p.advance()
	return &Node{Kind: kind, Range: tok.Range, Text: tok.Literal}
}

// missing returns a zero-width error node placed right after the last
// consumed token.
func (p *Parser) missing(kind TokenKind) *Node {
	return &Node{
		Kind: KindError,
		Range: Range{
			StartByte:  p.last.Range.EndByte,
			EndByte:    p.last.Range.EndByte,
			StartPoint: p.last.Range.EndPoint,
			EndPoint:   p.last.Range.EndPoint,
		},
		Error: &Error{
			Message:  "missing " + kind.String(),
			Expected: []TokenKind{kind},
		},
	}
}

// errorNode consumes the current token and then, if recoverTo is not
// empty, everything up to (not including) one of recoverTo. The returned
// error node covers the skipped text.
func (p *Parser) errorNode(msg string, recoverTo []TokenKind, expected ...TokenKind) *Node {
	tok := p.peek()
	node := &Node{
		Kind:  KindError,
		Range: tok.Range,
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      tok.Literal,
		},
	}
	if tok.Kind == TokenEOF {
		return node
	}
	p.advance()
	for len(recoverTo) > 0 && !p.check(TokenEOF) && !p.match(recoverTo...) {
		p.advance()
	}
	node.Range.EndByte = p.last.Range.EndByte
	node.Range.EndPoint = p.last.Range.EndPoint
	return node
}

var statementRecovery = []TokenKind{TokenSemicolon, TokenRBrace}

func (p *Parser) parseSourceFile() *Node {
	node := &Node{Kind: KindSourceFile}

	for !p.check(TokenEOF) {
		if reused := p.reuse(); reused != nil {
			node.AddChild(reused)
			continue
		}
		if p.check(TokenRBrace) {
			node.AddChild(p.errorNode("unexpected }", nil))
			continue
		}
		progressed := p.mustProgress()
		node.AddChild(p.parseStatement())
		progressed()
	}

	eof := p.peek()
	node.Range = Range{EndByte: eof.Range.EndByte, EndPoint: eof.Range.EndPoint}
	return node
}

func (p *Parser) isDeclaration() bool {
	return p.check(TokenIdent) && p.peekN(1).Kind == TokenDeclare
}

func (p *Parser) parseStatement() *Node {
	if p.isDeclaration() {
		return p.parseDeclaration()
	}
	node := p.startNode(KindExpressionStatement)
	node.AddChild(p.parseExpression())
	p.terminate(node)
	return p.finishNode(node)
}

// terminate consumes the ';' that ends a statement, recording an error on
// node if it is absent.
func (p *Parser) terminate(node *Node) {
	switch {
	case p.expect(TokenSemicolon) != nil:
	case p.match(TokenEOF, TokenRBrace):
		node.AddChild(p.missing(TokenSemicolon))
	default:
		node.AddChild(p.errorNode("expected ';'", statementRecovery, TokenSemicolon))
		p.expect(TokenSemicolon)
	}
}

func (p *Parser) parseDeclaration() *Node {
	node := p.startNode(KindDeclaration)
	node.AddChild(p.leaf(KindIdentifier))
	p.advance() // :=
	node.AddChild(p.parseExpression())
	p.terminate(node)
	return p.finishNode(node)
}

func (p *Parser) isFunction() bool {
	return p.check(TokenIdent) && p.peekN(1).Kind == TokenArrow
}

func (p *Parser) parseExpression() *Node {
	if p.isFunction() {
		return p.parseFunction()
	}
	return p.parseApplication()
}

func (p *Parser) parseFunction() *Node {
	node := p.startNode(KindFunction)
	node.AddChild(p.leaf(KindIdentifier))
	p.advance() // =>
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) startsPrimary() bool {
	return p.match(TokenIdent, TokenInteger, TokenString, TokenSymbol,
		TokenNull, TokenTrue, TokenFalse,
		TokenLParen, TokenLBrace, TokenLBracket)
}

// parseApplication parses juxtaposition, so `f x y` is `(f x) y`. A
// function literal in argument position extends as far right as possible.
func (p *Parser) parseApplication() *Node {
	fn := p.parsePostfix()
	for p.startsPrimary() {
		if p.isFunction() {
			return span(KindCall, fn, p.parseFunction())
		}
		fn = span(KindCall, fn, p.parsePostfix())
	}
	return fn
}

// parsePostfix handles index and field suffixes. Both must directly follow
// the operand, which keeps `f [1]` a call with a list argument.
func (p *Parser) parsePostfix() *Node {
	expr := p.parsePrimary()
	for p.adjacent() {
		switch {
		case p.check(TokenLBracket):
			p.advance()
			node := &Node{Kind: KindIndex, Range: expr.Range}
			node.AddChild(expr)
			node.AddChild(p.parseExpression())
			p.closeWith(node, TokenRBracket)
			expr = p.finishNode(node)
		case p.check(TokenDot):
			p.advance()
			node := &Node{Kind: KindField, Range: expr.Range}
			node.AddChild(expr)
			if p.check(TokenIdent) {
				node.AddChild(p.leaf(KindIdentifier))
			} else {
				node.AddChild(p.missing(TokenIdent))
			}
			expr = p.finishNode(node)
		default:
			return expr
		}
	}
	return expr
}

// closeWith consumes the closing token or records why it is absent.
func (p *Parser) closeWith(node *Node, closer TokenKind) {
	if p.expect(closer) != nil {
		return
	}
	if p.match(TokenEOF, TokenSemicolon, TokenRBrace, TokenRBracket, TokenRParen) {
		node.AddChild(p.missing(closer))
		return
	}
	node.AddChild(p.errorNode("expected "+closer.String(), []TokenKind{closer, TokenSemicolon}, closer))
	p.expect(closer)
}

func (p *Parser) parsePrimary() *Node {
	switch p.peek().Kind {
	case TokenIdent:
		return p.leaf(KindIdentifier)
	case TokenNull:
		return p.leaf(KindNull)
	case TokenTrue, TokenFalse:
		return p.leaf(KindBoolean)
	case TokenInteger:
		return p.leaf(KindInteger)
	case TokenString:
		return p.leaf(KindString)
	case TokenSymbol:
		return p.leaf(KindSymbol)
	case TokenLParen:
		return p.parseParenthesized()
	case TokenLBrace:
		return p.parseBlock()
	case TokenLBracket:
		return p.parseListOrMap()
	case TokenError:
		tok := p.advance()
		return &Node{
			Kind:  KindError,
			Range: tok.Range,
			Error: &Error{Message: "unexpected " + tokenDescription(tok), Got: tok.Literal},
		}
	}
	node := p.missing(TokenIdent)
	node.Error.Message = "expected expression"
	node.Error.Got = p.peek().Literal
	node.Error.Expected = nil
	return node
}

func tokenDescription(tok Token) string {
	if len(tok.Literal) > 0 && tok.Literal[0] == '"' {
		return "unterminated string"
	}
	return "character " + tok.Literal
}

// parseParenthesized returns the inner expression itself; parentheses only
// group and leave no node behind unless the closer is missing.
func (p *Parser) parseParenthesized() *Node {
	open := p.advance()
	inner := p.parseExpression()
	if p.expect(TokenRParen) != nil {
		return inner
	}
	node := &Node{
		Kind:  KindError,
		Range: Range{StartByte: open.Range.StartByte, StartPoint: open.Range.StartPoint},
		Error: &Error{Message: "missing )", Expected: []TokenKind{TokenRParen}},
	}
	node.AddChild(inner)
	return p.finishNode(node)
}

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	p.advance() // {

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progressed := p.mustProgress()
		if p.isDeclaration() {
			node.AddChild(p.parseDeclaration())
			progressed()
			continue
		}
		stmt := p.startNode(KindExpressionStatement)
		expr := p.parseExpression()
		if p.match(TokenRBrace, TokenEOF) {
			node.AddChild(expr)
			break
		}
		stmt.AddChild(expr)
		p.terminate(stmt)
		node.AddChild(p.finishNode(stmt))
		progressed()
	}

	p.closeWith(node, TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseListOrMap() *Node {
	node := p.startNode(KindList)
	p.advance() // [

	if p.check(TokenColon) && p.peekN(1).Kind == TokenRBracket {
		node.Kind = KindMap
		p.advance()
		p.advance()
		return p.finishNode(node)
	}

	for !p.check(TokenRBracket) && !p.check(TokenEOF) {
		elem := p.parseExpression()
		if p.check(TokenColon) && (len(node.Children) == 0 || node.Kind == KindMap) {
			node.Kind = KindMap
			p.advance()
			elem = span(KindPair, elem, p.parseExpression())
		} else if node.Kind == KindMap {
			pair := &Node{Kind: KindPair, Range: elem.Range}
			pair.AddChild(elem)
			pair.AddChild(p.missing(TokenColon))
			elem = pair
		}
		node.AddChild(elem)
		if p.expect(TokenComma) == nil {
			break
		}
	}

	p.closeWith(node, TokenRBracket)
	return p.finishNode(node)
}
