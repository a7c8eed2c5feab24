// Package ast declares the syntax tree of the language.
//
// Expressions and statements are two closed families: every variant is a pointer
// to a struct in this package, and the unexported marker methods keep other
// packages from adding new ones. Node identity is pointer identity; the resolver
// keys its side table on it.
package ast

import "github.com/YusufAbdelaziz/lango/token"

// Node is implemented by every expression and statement.
type Node interface {
	node()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// --- Expressions ---

// Literal is a constant value: nil, bool, float64 or string.
type Literal struct {
	Value any
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Expression Expr
}

// Unary is a prefix operator expression ("!" or "-").
type Unary struct {
	Operator token.Token
	Right    Expr
}

// Binary is an arithmetic, comparison or equality expression.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Logical is a short-circuiting "and" / "or" expression.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Variable reads a variable.
type Variable struct {
	Name token.Token
}

// Assign writes a variable.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Call invokes a callee. Paren is the closing parenthesis, kept for error locations.
type Call struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

// Get reads a property.
type Get struct {
	Object Expr
	Name   token.Token
}

// Set writes a property.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// This is the "this" keyword.
type This struct {
	Keyword token.Token
}

// Super is "super.method".
type Super struct {
	Keyword token.Token
	Method  token.Token
}

// AnonymousFunction is a function literal: fun (params) { body }.
type AnonymousFunction struct {
	Keyword token.Token
	Params  []token.Token
	Body    []Stmt
}

func (*Literal) node()           {}
func (*Grouping) node()          {}
func (*Unary) node()             {}
func (*Binary) node()            {}
func (*Logical) node()           {}
func (*Variable) node()          {}
func (*Assign) node()            {}
func (*Call) node()              {}
func (*Get) node()               {}
func (*Set) node()               {}
func (*This) node()              {}
func (*Super) node()             {}
func (*AnonymousFunction) node() {}

func (*Literal) exprNode()           {}
func (*Grouping) exprNode()          {}
func (*Unary) exprNode()             {}
func (*Binary) exprNode()            {}
func (*Logical) exprNode()           {}
func (*Variable) exprNode()          {}
func (*Assign) exprNode()            {}
func (*Call) exprNode()              {}
func (*Get) exprNode()               {}
func (*Set) exprNode()               {}
func (*This) exprNode()              {}
func (*Super) exprNode()             {}
func (*AnonymousFunction) exprNode() {}

// --- Statements ---

// Expression is an expression evaluated for its side effects.
type Expression struct {
	Expression Expr
}

// Print writes the stringified value of an expression.
type Print struct {
	Expression Expr
}

// Var declares a variable. Initializer may be nil.
type Var struct {
	Name        token.Token
	Initializer Expr
}

// Block is a braced statement list with its own scope.
type Block struct {
	Statements []Stmt
}

// If is an if statement with ordered elif clauses and an optional else branch.
type If struct {
	Condition Expr
	Then      Stmt
	Elifs     []*Elif
	Else      Stmt // may be nil
}

// Elif is one "elif (condition) body" clause of an If.
type Elif struct {
	Condition Expr
	Body      Stmt
}

// While is a while loop. For loops are desugared into it by the parser.
type While struct {
	Condition Expr
	Body      Stmt
}

// Function is a named function or method declaration.
type Function struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// Return returns from the enclosing function. Value may be nil.
type Return struct {
	Keyword token.Token
	Value   Expr
}

// Break leaves the nearest enclosing loop.
type Break struct {
	Keyword token.Token
}

// Class declares a class. Superclass may be nil.
type Class struct {
	Name       token.Token
	Superclass *Variable
	Methods    []*Function
}

func (*Expression) node() {}
func (*Print) node()      {}
func (*Var) node()        {}
func (*Block) node()      {}
func (*If) node()         {}
func (*Elif) node()       {}
func (*While) node()      {}
func (*Function) node()   {}
func (*Return) node()     {}
func (*Break) node()      {}
func (*Class) node()      {}

func (*Expression) stmtNode() {}
func (*Print) stmtNode()      {}
func (*Var) stmtNode()        {}
func (*Block) stmtNode()      {}
func (*If) stmtNode()         {}
func (*Elif) stmtNode()       {}
func (*While) stmtNode()      {}
func (*Function) stmtNode()   {}
func (*Return) stmtNode()     {}
func (*Break) stmtNode()      {}
func (*Class) stmtNode()      {}
