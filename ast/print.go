package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/YusufAbdelaziz/lango/token"
)

// Fprint writes each statement of a program in parenthesized prefix form,
// one top-level statement per line.
func Fprint(w io.Writer, stmts []Stmt) error {
	for _, stmt := range stmts {
		if _, err := fmt.Fprintln(w, Sprint(stmt)); err != nil {
			return err
		}
	}
	return nil
}

// Sprint renders a single node in parenthesized prefix form, e.g. (+ 1 (* 2 3)).
func Sprint(n Node) string {
	var b strings.Builder
	p := &printer{b: &b}
	p.node(n)
	return b.String()
}

type printer struct {
	b *strings.Builder
}

func (p *printer) parens(name string, parts ...Node) {
	p.b.WriteString("(")
	p.b.WriteString(name)
	for _, part := range parts {
		p.b.WriteString(" ")
		p.node(part)
	}
	p.b.WriteString(")")
}

func (p *printer) params(params []token.Token) {
	names := make([]string, len(params))
	for i, param := range params {
		names[i] = param.Lexeme
	}
	p.b.WriteString("(" + strings.Join(names, " ") + ")")
}

func (p *printer) body(stmts []Stmt) {
	for _, stmt := range stmts {
		p.b.WriteString(" ")
		p.node(stmt)
	}
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case nil:
		p.b.WriteString("<nil>")
	case *Literal:
		p.b.WriteString(literalString(n.Value))
	case *Grouping:
		p.parens("group", n.Expression)
	case *Unary:
		p.parens(n.Operator.Lexeme, n.Right)
	case *Binary:
		p.parens(n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		p.parens(n.Operator.Lexeme, n.Left, n.Right)
	case *Variable:
		p.b.WriteString(n.Name.Lexeme)
	case *Assign:
		p.b.WriteString("(= " + n.Name.Lexeme + " ")
		p.node(n.Value)
		p.b.WriteString(")")
	case *Call:
		args := make([]Node, 0, len(n.Arguments)+1)
		args = append(args, n.Callee)
		for _, arg := range n.Arguments {
			args = append(args, arg)
		}
		p.parens("call", args...)
	case *Get:
		p.b.WriteString("(. ")
		p.node(n.Object)
		p.b.WriteString(" " + n.Name.Lexeme + ")")
	case *Set:
		p.b.WriteString("(.= ")
		p.node(n.Object)
		p.b.WriteString(" " + n.Name.Lexeme + " ")
		p.node(n.Value)
		p.b.WriteString(")")
	case *This:
		p.b.WriteString("this")
	case *Super:
		p.b.WriteString("(super " + n.Method.Lexeme + ")")
	case *AnonymousFunction:
		p.b.WriteString("(fun ")
		p.params(n.Params)
		p.body(n.Body)
		p.b.WriteString(")")

	case *Expression:
		p.parens("expr", n.Expression)
	case *Print:
		p.parens("print", n.Expression)
	case *Var:
		if n.Initializer == nil {
			p.b.WriteString("(var " + n.Name.Lexeme + ")")
			return
		}
		p.b.WriteString("(var " + n.Name.Lexeme + " ")
		p.node(n.Initializer)
		p.b.WriteString(")")
	case *Block:
		p.b.WriteString("(block")
		p.body(n.Statements)
		p.b.WriteString(")")
	case *If:
		p.b.WriteString("(if ")
		p.node(n.Condition)
		p.b.WriteString(" ")
		p.node(n.Then)
		for _, elif := range n.Elifs {
			p.b.WriteString(" ")
			p.node(elif)
		}
		if n.Else != nil {
			p.b.WriteString(" ")
			p.parens("else", n.Else)
		}
		p.b.WriteString(")")
	case *Elif:
		p.parens("elif", n.Condition, n.Body)
	case *While:
		p.parens("while", n.Condition, n.Body)
	case *Function:
		p.b.WriteString("(fun " + n.Name.Lexeme + " ")
		p.params(n.Params)
		p.body(n.Body)
		p.b.WriteString(")")
	case *Return:
		if n.Value == nil {
			p.b.WriteString("(return)")
			return
		}
		p.parens("return", n.Value)
	case *Break:
		p.b.WriteString("(break)")
	case *Class:
		p.b.WriteString("(class " + n.Name.Lexeme)
		if n.Superclass != nil {
			p.b.WriteString(" < " + n.Superclass.Name.Lexeme)
		}
		for _, m := range n.Methods {
			p.b.WriteString(" ")
			p.node(m)
		}
		p.b.WriteString(")")
	default:
		fmt.Fprintf(p.b, "<unknown %T>", n)
	}
}

func literalString(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
