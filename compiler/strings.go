package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// jsStringBody makes the inner text of a string literal safe to place
// between JavaScript quotes. Escape sequences are kept as written; bare line
// terminators, which JavaScript does not allow inside a string literal, are
// written as escapes. A backslash before a line terminator stays a line
// continuation.
func jsStringBody(inner string) string {
	var sb strings.Builder
	for i := 0; i < len(inner); {
		r, size := utf8.DecodeRuneInString(inner[i:])
		if r == '\\' && i+size < len(inner) {
			_, next := utf8.DecodeRuneInString(inner[i+size:])
			end := i + size + next
			if inner[i+size] == '\r' && end < len(inner) && inner[end] == '\n' {
				end++
			}
			sb.WriteString(inner[i:end])
			i = end
			continue
		}
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		default:
			sb.WriteString(inner[i : i+size])
		}
		i += size
	}
	return sb.String()
}

// cookString returns the value JavaScript gives a string literal whose body
// is raw, or an error for escapes that module code rejects. Unpaired
// surrogates become U+FFFD.
func cookString(raw string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			sb.WriteByte(raw[i])
			i++
			continue
		}
		i++
		if i >= len(raw) {
			return "", fmt.Errorf("trailing backslash")
		}
		r, size := utf8.DecodeRuneInString(raw[i:])
		i += size
		switch r {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			if i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
				return "", fmt.Errorf("octal escape \\0%c", raw[i])
			}
			sb.WriteByte(0)
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return "", fmt.Errorf("octal escape \\%c", r)
		case 'x':
			if i+2 > len(raw) {
				return "", fmt.Errorf("short \\x escape")
			}
			v, err := strconv.ParseUint(raw[i:i+2], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape %q", raw[i:i+2])
			}
			sb.WriteRune(rune(v))
			i += 2
		case 'u':
			cp, n, err := unicodeEscape(raw[i:])
			if err != nil {
				return "", err
			}
			i += n
			if utf16.IsSurrogate(cp) && strings.HasPrefix(raw[i:], `\u`) {
				if low, m, err := unicodeEscape(raw[i+2:]); err == nil {
					if pair := utf16.DecodeRune(cp, low); pair != utf8.RuneError {
						cp = pair
						i += 2 + m
					}
				}
			}
			sb.WriteRune(cp)
		case '\r':
			if i < len(raw) && raw[i] == '\n' {
				i++
			}
		case '\n', '\u2028', '\u2029':
			// line continuation
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

// unicodeEscape reads the part of a \u escape after the "u" and returns the
// code point with the number of bytes consumed.
func unicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, fmt.Errorf("invalid \\u{} escape")
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, fmt.Errorf("invalid \\u{} escape %q", s[:end+1])
		}
		return rune(v), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, fmt.Errorf("short \\u escape")
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid \\u escape %q", s[:4])
	}
	return rune(v), 4, nil
}
