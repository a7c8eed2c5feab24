// Package resolver performs the static pass between parsing and evaluation.
// It binds every local variable reference to the number of scopes between the
// reference and its declaration, and rejects programs that misuse return,
// this, super or local declarations.
package resolver

import (
	"github.com/YusufAbdelaziz/lango/ast"
	"github.com/YusufAbdelaziz/lango/diagnostic"
	"github.com/YusufAbdelaziz/lango/token"
)

// Locals maps a variable-referencing expression (Variable, Assign, This or
// Super) to its scope distance. Expressions that are absent refer to globals.
type Locals map[ast.Expr]int

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// scope maps a name to whether its initializer has finished resolving.
type scope map[string]bool

// Resolver walks a program once and fills a Locals table.
type Resolver struct {
	scopes          []scope
	locals          Locals
	currentFunction functionType
	currentClass    classType
	reporter        diagnostic.Reporter
}

// New creates a resolver that reports errors to reporter, which may be nil.
func New(reporter diagnostic.Reporter) *Resolver {
	if reporter == nil {
		reporter = diagnostic.ReporterFunc(func(diagnostic.Diagnostic) {})
	}
	return &Resolver{locals: Locals{}, reporter: reporter}
}

// Resolve is a convenience wrapper around New(reporter).Resolve(stmts).
func Resolve(stmts []ast.Stmt, reporter diagnostic.Reporter) Locals {
	return New(reporter).Resolve(stmts)
}

// Resolve resolves stmts as a top-level program and returns the accumulated table.
// Resolution continues after an error so that every problem is reported.
func (r *Resolver) Resolve(stmts []ast.Stmt) Locals {
	r.stmts(stmts)
	return r.locals
}

func (r *Resolver) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.stmt(s)
	}
}

func (r *Resolver) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.stmts(s.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.expr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Function:
		// Defined before the body so the function can refer to itself.
		r.declare(s.Name)
		r.define(s.Name)
		r.function(s.Params, s.Body, functionFunction)
	case *ast.Class:
		r.class(s)
	case *ast.Expression:
		r.expr(s.Expression)
	case *ast.Print:
		r.expr(s.Expression)
	case *ast.If:
		r.expr(s.Condition)
		r.stmt(s.Then)
		for _, elif := range s.Elifs {
			r.expr(elif.Condition)
			r.stmt(elif.Body)
		}
		if s.Else != nil {
			r.stmt(s.Else)
		}
	case *ast.While:
		r.expr(s.Condition)
		r.stmt(s.Body)
	case *ast.Return:
		if r.currentFunction == functionNone {
			r.error(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == functionInitializer {
				r.error(s.Keyword, "Can't return a value from an initializer.")
			}
			r.expr(s.Value)
		}
	case *ast.Break:
		// checked at run time
	}
}

func (r *Resolver) class(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.expr(s.Superclass)

		r.beginScope()
		r.peek()["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.peek()["this"] = true
	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.function(method.Params, method.Body, kind)
	}
	r.endScope()
}

func (r *Resolver) function(params []token.Token, body []ast.Stmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range params {
		r.declare(param)
		r.define(param)
	}
	r.stmts(body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.peek()[e.Name.Lexeme]; ok && !defined {
				r.error(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.Assign:
		r.expr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Binary:
		r.expr(e.Left)
		r.expr(e.Right)
	case *ast.Logical:
		r.expr(e.Left)
		r.expr(e.Right)
	case *ast.Unary:
		r.expr(e.Right)
	case *ast.Grouping:
		r.expr(e.Expression)
	case *ast.Call:
		r.expr(e.Callee)
		for _, arg := range e.Arguments {
			r.expr(arg)
		}
	case *ast.Get:
		r.expr(e.Object)
	case *ast.Set:
		r.expr(e.Value)
		r.expr(e.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.error(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.error(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.error(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.AnonymousFunction:
		r.function(e.Params, e.Body, functionFunction)
	case *ast.Literal:
	}
}

// resolveLocal records the distance to the innermost scope declaring name.
// Nothing is recorded when name is not found; it is then a global.
func (r *Resolver) resolveLocal(e ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) peek() scope { return r.scopes[len(r.scopes)-1] }

// declare adds name to the innermost scope as not yet usable. Globals are not tracked.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.peek()
	if _, ok := s[name.Lexeme]; ok {
		r.error(name, "Already a variable with this name in this scope.")
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peek()[name.Lexeme] = true
}

func (r *Resolver) error(tok token.Token, message string) {
	r.reporter.Report(diagnostic.AtToken(tok, message))
}
