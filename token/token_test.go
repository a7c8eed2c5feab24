package token

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"and", AND},
		{"break", BREAK},
		{"class", CLASS},
		{"elif", ELIF},
		{"else", ELSE},
		{"false", FALSE},
		{"for", FOR},
		{"fun", FUN},
		{"if", IF},
		{"nil", NIL},
		{"or", OR},
		{"print", PRINT},
		{"return", RETURN},
		{"super", SUPER},
		{"this", THIS},
		{"true", TRUE},
		{"var", VAR},
		{"while", WHILE},
		{"foo", IDENTIFIER},
		{"Class", IDENTIFIER},
		{"_while", IDENTIFIER},
	}
	for _, tt := range tests {
		if got := Lookup(tt.ident); got != tt.want {
			t.Errorf("Lookup(%q) = %s, want=%s", tt.ident, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := BANG_EQUAL.String(); got != "BANG_EQUAL" {
		t.Errorf("BANG_EQUAL.String() = %q", got)
	}
	if got := Kind(999).String(); got != "Kind(999)" {
		t.Errorf("Kind(999).String() = %q", got)
	}
	if !WHILE.IsKeyword() || IDENTIFIER.IsKeyword() {
		t.Errorf("IsKeyword misclassified WHILE or IDENTIFIER")
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: NUMBER, Lexeme: "1.5", Literal: 1.5, Line: 1}
	if got, want := tok.String(), "NUMBER 1.5 1.5"; got != want {
		t.Errorf("String() = %q, want=%q", got, want)
	}
	tok = Token{Kind: SEMICOLON, Lexeme: ";", Line: 1}
	if got, want := tok.String(), "SEMICOLON ;"; got != want {
		t.Errorf("String() = %q, want=%q", got, want)
	}
}
