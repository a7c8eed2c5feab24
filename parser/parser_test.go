package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/YusufAbdelaziz/lango/ast"
	"github.com/YusufAbdelaziz/lango/diagnostic"
	"github.com/YusufAbdelaziz/lango/scanner"
	"github.com/google/go-cmp/cmp"
)

func parse(t *testing.T, source string) ([]ast.Stmt, []string) {
	t.Helper()
	var c diagnostic.Collector
	tokens := scanner.Scan(source, &c)
	stmts := Parse(tokens, &c)
	var msgs []string
	for _, d := range c.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return stmts, msgs
}

func sprint(stmts []ast.Stmt) []string {
	var out []string
	for _, s := range stmts {
		out = append(out, ast.Sprint(s))
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"precedence", "print 1 + 2 * 3 - 4 / 2;", []string{"(print (- (+ 1 (* 2 3)) (/ 4 2)))"}},
		{"unary and grouping", "print -(1 + 2) * !true;", []string{"(print (* (- (group (+ 1 2))) (! true)))"}},
		{"comparison and equality", "print 1 < 2 == 3 >= 4 != false;", []string{"(print (!= (== (< 1 2) (>= 3 4)) false))"}},
		{"logical", "print a or b and c;", []string{"(print (or a (and b c)))"}},
		{"assignment is right associative", "a = b = 3;", []string{"(expr (= a (= b 3)))"}},
		{"var", `var a; var b = "s";`, []string{"(var a)", `(var b "s")`}},
		{"calls and properties", "a.b(1, 2).c = d();", []string{"(expr (.= (call (. a b) 1 2) c (call d)))"}},
		{"block", "{ var a = 1; print a; }", []string{"(block (var a 1) (print a))"}},
		{"if elif else", "if (a) print 1; elif (b) print 2; elif (c) print 3; else print 4;",
			[]string{"(if a (print 1) (elif b (print 2)) (elif c (print 3)) (else (print 4)))"}},
		{"while with break", "while (true) { break; }", []string{"(while true (block (break)))"}},
		{"function", "fun add(a, b) { return a + b; }", []string{"(fun add (a b) (return (+ a b)))"}},
		{"bare return", "fun f() { return; }", []string{"(fun f () (return))"}},
		{"class", "class B < A { init(x) { this.x = x; } get() { return super.get(); } }",
			[]string{"(class B < A (fun init (x) (expr (.= this x x))) (fun get () (return (call (super get)))))"}},
		{"anonymous function", "var f = fun (a) { return a; };", []string{"(var f (fun (a) (return a)))"}},
		{"anonymous function statement", "fun () {};", []string{"(expr (fun ()))"}},
		{"immediately called anonymous function", "fun (x) { print x; }(1);", []string{"(expr (call (fun (x) (print x)) 1))"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, errs := parse(t, tt.input)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if diff := cmp.Diff(tt.want, sprint(stmts)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_ForDesugaring(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"for (var i = 0; i < 3; i = i + 1) print i;",
			"(block (var i 0) (while (< i 3) (block (print i) (expr (= i (+ i 1))))))"},
		{"for (;;) print 1;", "(while true (print 1))"},
		{"for (i = 0; i < 3;) print i;", "(block (expr (= i 0)) (while (< i 3) (print i)))"},
		{"for (; i < 3; i = i + 1) {}", "(while (< i 3) (block (block) (expr (= i (+ i 1)))))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmts, errs := parse(t, tt.input)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if diff := cmp.Diff([]string{tt.want}, sprint(stmts)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErrs  []string
		wantStmts []string
	}{
		{
			name:     "missing semicolon after print",
			input:    "print 1",
			wantErrs: []string{"[line 1] Error at end: Expect ';' after value."},
		},
		{
			name:     "missing expression",
			input:    "print ;",
			wantErrs: []string{"[line 1] Error at ';': Expect expression."},
		},
		{
			name:      "recovers at next statement",
			input:     "var = 1;\nprint 2;",
			wantErrs:  []string{"[line 1] Error at '=': Expect variable name."},
			wantStmts: []string{"(print 2)"},
		},
		{
			name:  "reports several independent errors",
			input: "print (1;\nvar x = ;\nprint 3;",
			wantErrs: []string{
				"[line 1] Error at ';': Expect ')' after expression.",
				"[line 2] Error at ';': Expect expression.",
			},
			wantStmts: []string{"(print 3)"},
		},
		{
			name:      "invalid assignment target keeps the statement",
			input:     "1 + 2 = 3;",
			wantErrs:  []string{"[line 1] Error at '=': Invalid assignment target."},
			wantStmts: []string{"(expr (+ 1 2))"},
		},
		{
			name:     "property name",
			input:    "a.1;",
			wantErrs: []string{"[line 1] Error at '1': Expect property name after '.'."},
		},
		{
			name:     "super needs a method",
			input:    "super;",
			wantErrs: []string{"[line 1] Error at ';': Expect '.' after 'super'."},
		},
		{
			name:     "break needs semicolon",
			input:    "while (true) break",
			wantErrs: []string{"[line 1] Error at end: Expect ';' after 'break'."},
		},
		{
			name:  "class body",
			input: "class A { print 1; }",
			wantErrs: []string{
				"[line 1] Error at 'print': Expect method name.",
				"[line 1] Error at '}': Expect expression.",
			},
		},
		{
			name:     "unterminated block",
			input:    "{ print 1;",
			wantErrs: []string{"[line 1] Error at end: Expect '}' after block."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, errs := parse(t, tt.input)
			if diff := cmp.Diff(tt.wantErrs, errs); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantStmts, sprint(stmts)); diff != "" {
				t.Errorf("statements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Limits(t *testing.T) {
	names := func(n int) string {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = fmt.Sprintf("a%d", i)
		}
		return strings.Join(parts, ", ")
	}

	t.Run("255 parameters are fine", func(t *testing.T) {
		_, errs := parse(t, "fun f("+names(255)+") {}")
		if len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})
	t.Run("256 parameters", func(t *testing.T) {
		stmts, errs := parse(t, "fun f("+names(256)+") {}")
		want := []string{"[line 1] Error at 'a255': Can't have more than 255 parameters."}
		if diff := cmp.Diff(want, errs); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}
		if len(stmts) != 1 {
			t.Errorf("the declaration should still be produced, got %d statements", len(stmts))
		}
	})
	t.Run("256 arguments", func(t *testing.T) {
		_, errs := parse(t, "f("+names(256)+");")
		want := []string{"[line 1] Error at 'a255': Can't have more than 255 arguments."}
		if diff := cmp.Diff(want, errs); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestParse_NodeIdentity(t *testing.T) {
	stmts, errs := parse(t, "a; a;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	first := stmts[0].(*ast.Expression).Expression
	second := stmts[1].(*ast.Expression).Expression
	if first == second {
		t.Errorf("textually identical expressions must be distinct nodes")
	}
}

func TestNew_AppendsEOF(t *testing.T) {
	stmts := Parse(nil, nil)
	if len(stmts) != 0 {
		t.Errorf("got=%v, want no statements", sprint(stmts))
	}
}
