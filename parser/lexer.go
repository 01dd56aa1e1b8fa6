package parser

type Lexer struct {
	input  []byte
	pos    int
	row    int
	column int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input}
}

// Seek moves the lexer to offset, which must be a token boundary whose
// position is point.
func (l *Lexer) Seek(offset int, point Point) {
	l.pos = offset
	l.row = point.Row
	l.column = point.Column
}

func (l *Lexer) Offset() int {
	return l.pos
}

func (l *Lexer) Point() Point {
	return Point{Row: l.row, Column: l.column}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.row++
		l.column = 0
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startOffset, startPoint := l.pos, l.Point()

	if l.atEOF() {
		return l.token(TokenEOF, startOffset, startPoint)
	}

	ch := l.peek()
	switch {
	case isSpace(ch):
		for isSpace(l.peek()) {
			l.advance()
		}
		return l.token(TokenWhitespace, startOffset, startPoint)
	case ch == '/' && l.peekN(1) == '/':
		for !l.atEOF() && l.peek() != '\n' {
			l.advance()
		}
		return l.token(TokenLineComment, startOffset, startPoint)
	case isIdentStart(ch):
		for isIdentPart(l.peek()) {
			l.advance()
		}
		tok := l.token(TokenIdent, startOffset, startPoint)
		tok.Kind = LookupKeyword(tok.Literal)
		return tok
	case isDigit(ch), ch == '-' && isDigit(l.peekN(1)):
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		return l.token(TokenInteger, startOffset, startPoint)
	case ch == '"':
		return l.scanString(startOffset, startPoint)
	case ch == '#' && isIdentStart(l.peekN(1)):
		l.advance()
		for isIdentPart(l.peek()) {
			l.advance()
		}
		return l.token(TokenSymbol, startOffset, startPoint)
	}
	return l.scanPunctuation(startOffset, startPoint)
}

func (l *Lexer) scanString(startOffset int, startPoint Point) Token {
	l.advance()
	for !l.atEOF() {
		switch l.peek() {
		case '"':
			l.advance()
			return l.token(TokenString, startOffset, startPoint)
		case '\\':
			l.advanceN(2)
		default:
			l.advance()
		}
	}
	return l.token(TokenError, startOffset, startPoint)
}

func (l *Lexer) scanPunctuation(startOffset int, startPoint Point) Token {
	ch := l.advance()
	kind := TokenError
	switch ch {
	case ':':
		kind = TokenColon
		if l.peek() == '=' {
			l.advance()
			kind = TokenDeclare
		}
	case '=':
		if l.peek() == '>' {
			l.advance()
			kind = TokenArrow
		}
	case ';':
		kind = TokenSemicolon
	case ',':
		kind = TokenComma
	case '.':
		kind = TokenDot
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	case '{':
		kind = TokenLBrace
	case '}':
		kind = TokenRBrace
	case '[':
		kind = TokenLBracket
	case ']':
		kind = TokenRBracket
	}
	if kind == TokenError && ch >= 0x80 {
		// keep a stray multi-byte character in one token
		for l.peek()&0xC0 == 0x80 {
			l.advance()
		}
	}
	return l.token(kind, startOffset, startPoint)
}

func (l *Lexer) token(kind TokenKind, startOffset int, startPoint Point) Token {
	return Token{
		Kind: kind,
		Range: Range{
			StartByte:  startOffset,
			EndByte:    l.pos,
			StartPoint: startPoint,
			EndPoint:   l.Point(),
		},
		Literal: string(l.input[startOffset:l.pos]),
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// PointAt returns the position of offset within text. Offsets past the end
// are clamped.
func PointAt(text []byte, offset int) Point {
	if offset > len(text) {
		offset = len(text)
	}
	var p Point
	for _, ch := range text[:offset] {
		if ch == '\n' {
			p.Row++
			p.Column = 0
		} else {
			p.Column++
		}
	}
	return p
}
