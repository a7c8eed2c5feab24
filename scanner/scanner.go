// Package scanner turns source text into tokens.
package scanner

import (
	"strconv"

	"github.com/YusufAbdelaziz/lango/diagnostic"
	"github.com/YusufAbdelaziz/lango/token"
)

// Scanner holds the scanning state for one source text.
type Scanner struct {
	source   string
	tokens   []token.Token
	start    int // offset of the first byte of the lexeme being scanned
	current  int // offset of the byte being considered
	line     int
	reporter diagnostic.Reporter
}

// New creates a scanner for source. Errors are sent to reporter, which may be nil.
func New(source string, reporter diagnostic.Reporter) *Scanner {
	if reporter == nil {
		reporter = diagnostic.ReporterFunc(func(diagnostic.Diagnostic) {})
	}
	return &Scanner{
		source:   source,
		line:     1,
		reporter: reporter,
	}
}

// Scan is a convenience wrapper around New(source, reporter).ScanTokens().
func Scan(source string, reporter diagnostic.Reporter) []token.Token {
	return New(source, reporter).ScanTokens()
}

// ScanTokens consumes the whole source and returns its tokens, always terminated
// by a single EOF token. Scanning never stops early; bad input is reported and skipped.
func (s *Scanner) ScanTokens() []token.Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Kind: token.EOF, Line: s.line})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LEFT_PAREN)
	case ')':
		s.addToken(token.RIGHT_PAREN)
	case '{':
		s.addToken(token.LEFT_BRACE)
	case '}':
		s.addToken(token.RIGHT_BRACE)
	case ',':
		s.addToken(token.COMMA)
	case '.':
		s.addToken(token.DOT)
	case '-':
		s.addToken(token.MINUS)
	case '+':
		s.addToken(token.PLUS)
	case ';':
		s.addToken(token.SEMICOLON)
	case '*':
		s.addToken(token.STAR)
	case '!':
		s.addToken(s.choose('=', token.BANG_EQUAL, token.BANG))
	case '=':
		s.addToken(s.choose('=', token.EQUAL_EQUAL, token.EQUAL))
	case '>':
		s.addToken(s.choose('=', token.GREATER_EQUAL, token.GREATER))
	case '<':
		s.addToken(s.choose('=', token.LESS_EQUAL, token.LESS))
	case '/':
		if s.match('/') {
			// A comment runs to the end of the line.
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.SLASH)
		}
	case ' ', '\t', '\r':
	case '\n':
		s.line++
	case '"':
		s.string()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.reporter.Report(diagnostic.AtLine(s.line, "Unexpected character."))
		}
	}
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	s.addToken(token.Lookup(s.source[s.start:s.current]))
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	// A '.' is part of the number only if a digit follows it.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	text := s.source[s.start:s.current]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Only reachable for literals beyond float64 range.
		s.reporter.Report(diagnostic.AtLine(s.line, "Invalid number literal."))
		return
	}
	s.addLiteral(token.NUMBER, value)
}

// string scans a string literal. Strings may span lines.
func (s *Scanner) string() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.reporter.Report(diagnostic.AtLine(s.line, "Unterminated string."))
		return
	}
	s.advance() // closing quote
	s.addLiteral(token.STRING, s.source[s.start+1:s.current-1])
}

func (s *Scanner) addToken(kind token.Kind) {
	s.addLiteral(kind, nil)
}

func (s *Scanner) addLiteral(kind token.Kind, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Kind:    kind,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) choose(expected byte, matched, otherwise token.Kind) token.Kind {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool { return s.current >= len(s.source) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
