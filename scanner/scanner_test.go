package scanner

import (
	"testing"

	"github.com/YusufAbdelaziz/lango/diagnostic"
	"github.com/YusufAbdelaziz/lango/token"
	"github.com/google/go-cmp/cmp"
)

func kinds(tokens []token.Token) []token.Kind {
	ks := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		ks[i] = tok.Kind
	}
	return ks
}

func TestScanTokens_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "punctuation",
			input: "(){},.-+;*/",
			want: []token.Kind{
				token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
				token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
				token.SLASH, token.EOF,
			},
		},
		{
			name:  "maximal munch",
			input: "! != = == > >= < <=",
			want: []token.Kind{
				token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
				token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL, token.EOF,
			},
		},
		{
			name:  "keywords and identifiers",
			input: "var x = nil; class Foo_1 < Bar {} elif break",
			want: []token.Kind{
				token.VAR, token.IDENTIFIER, token.EQUAL, token.NIL, token.SEMICOLON,
				token.CLASS, token.IDENTIFIER, token.LESS, token.IDENTIFIER,
				token.LEFT_BRACE, token.RIGHT_BRACE, token.ELIF, token.BREAK, token.EOF,
			},
		},
		{
			name:  "line comment",
			input: "1 // the rest is ignored ( ) \"\n2",
			want:  []token.Kind{token.NUMBER, token.NUMBER, token.EOF},
		},
		{
			name:  "comment at end of input",
			input: "// nothing",
			want:  []token.Kind{token.EOF},
		},
		{
			name:  "trailing dot is not part of a number",
			input: "123.",
			want:  []token.Kind{token.NUMBER, token.DOT, token.EOF},
		},
		{
			name:  "method call on number",
			input: "1.5.abs",
			want:  []token.Kind{token.NUMBER, token.DOT, token.IDENTIFIER, token.EOF},
		},
		{
			name:  "whitespace",
			input: " \t\r\n",
			want:  []token.Kind{token.EOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c diagnostic.Collector
			got := kinds(Scan(tt.input, &c))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
			if c.HasErrors() {
				t.Errorf("unexpected diagnostics: %v", c.Diagnostics)
			}
		})
	}
}

func TestScanTokens_Literals(t *testing.T) {
	tokens := Scan(`12 3.25 "hi there" ""`, nil)
	want := []token.Token{
		{Kind: token.NUMBER, Lexeme: "12", Literal: 12.0, Line: 1},
		{Kind: token.NUMBER, Lexeme: "3.25", Literal: 3.25, Line: 1},
		{Kind: token.STRING, Lexeme: `"hi there"`, Literal: "hi there", Line: 1},
		{Kind: token.STRING, Lexeme: `""`, Literal: "", Line: 1},
		{Kind: token.EOF, Line: 1},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanTokens_Lines(t *testing.T) {
	input := "a\n\"multi\nline\"\nb"
	tokens := Scan(input, nil)
	gotLines := make([]int, len(tokens))
	for i, tok := range tokens {
		gotLines[i] = tok.Line
	}
	// The string token is stamped with the line where it ends.
	if diff := cmp.Diff([]int{1, 3, 4, 4}, gotLines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if got := tokens[1].Literal; got != "multi\nline" {
		t.Errorf("literal = %q, want=%q", got, "multi\nline")
	}
}

func TestScanTokens_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKinds []token.Kind
		want      []diagnostic.Diagnostic
	}{
		{
			name:      "unexpected character is skipped",
			input:     "1 @ 2\n#",
			wantKinds: []token.Kind{token.NUMBER, token.NUMBER, token.EOF},
			want: []diagnostic.Diagnostic{
				{Line: 1, Message: "Unexpected character."},
				{Line: 2, Message: "Unexpected character."},
			},
		},
		{
			name:      "unterminated string",
			input:     "print \"abc\ndef",
			wantKinds: []token.Kind{token.PRINT, token.EOF},
			want: []diagnostic.Diagnostic{
				{Line: 2, Message: "Unterminated string."},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c diagnostic.Collector
			tokens := Scan(tt.input, &c)
			if diff := cmp.Diff(tt.wantKinds, kinds(tokens)); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, c.Diagnostics); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
