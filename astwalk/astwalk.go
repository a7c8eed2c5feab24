package astwalk

import "github.com/YusufAbdelaziz/lango/ast"

// Inspect traverses the tree rooted at node in depth-first, source order.
// It calls f(n) for each node; if f returns false, the children of n are skipped.
func Inspect(node ast.Node, f func(ast.Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range children(node) {
		Inspect(child, f)
	}
}

// Nodes returns an iterator over every node reachable from stmts, in the order
// Inspect visits them.
//
//	for n := range astwalk.Nodes(stmts) {
//		// use n
//	}
func Nodes(stmts []ast.Stmt) func(yield func(ast.Node) bool) {
	return func(yield func(ast.Node) bool) {
		stopped := false
		for _, stmt := range stmts {
			Inspect(stmt, func(n ast.Node) bool {
				if stopped {
					return false
				}
				if !yield(n) {
					stopped = true
					return false
				}
				return true
			})
			if stopped {
				return
			}
		}
	}
}

// Classes returns an iterator over every class declaration, nested ones included.
func Classes(stmts []ast.Stmt) func(yield func(*ast.Class) bool) {
	return func(yield func(*ast.Class) bool) {
		for n := range Nodes(stmts) {
			if c, ok := n.(*ast.Class); ok {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Functions returns an iterator over every named function declaration,
// methods included. Anonymous functions are not declarations and are skipped.
func Functions(stmts []ast.Stmt) func(yield func(*ast.Function) bool) {
	return func(yield func(*ast.Function) bool) {
		for n := range Nodes(stmts) {
			if fn, ok := n.(*ast.Function); ok {
				if !yield(fn) {
					return
				}
			}
		}
	}
}

func children(node ast.Node) []ast.Node {
	var out []ast.Node
	add := func(n ast.Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	addExpr := func(e ast.Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	addStmt := func(s ast.Stmt) {
		if s != nil {
			out = append(out, s)
		}
	}

	switch n := node.(type) {
	case *ast.Literal, *ast.Variable, *ast.This, *ast.Super, *ast.Break:
	case *ast.Grouping:
		addExpr(n.Expression)
	case *ast.Unary:
		addExpr(n.Right)
	case *ast.Binary:
		addExpr(n.Left)
		addExpr(n.Right)
	case *ast.Logical:
		addExpr(n.Left)
		addExpr(n.Right)
	case *ast.Assign:
		addExpr(n.Value)
	case *ast.Call:
		addExpr(n.Callee)
		for _, arg := range n.Arguments {
			addExpr(arg)
		}
	case *ast.Get:
		addExpr(n.Object)
	case *ast.Set:
		addExpr(n.Object)
		addExpr(n.Value)
	case *ast.AnonymousFunction:
		for _, s := range n.Body {
			addStmt(s)
		}
	case *ast.Expression:
		addExpr(n.Expression)
	case *ast.Print:
		addExpr(n.Expression)
	case *ast.Var:
		addExpr(n.Initializer)
	case *ast.Block:
		for _, s := range n.Statements {
			addStmt(s)
		}
	case *ast.If:
		addExpr(n.Condition)
		addStmt(n.Then)
		for _, elif := range n.Elifs {
			add(elif)
		}
		addStmt(n.Else)
	case *ast.Elif:
		addExpr(n.Condition)
		addStmt(n.Body)
	case *ast.While:
		addExpr(n.Condition)
		addStmt(n.Body)
	case *ast.Function:
		for _, s := range n.Body {
			addStmt(s)
		}
	case *ast.Return:
		addExpr(n.Value)
	case *ast.Class:
		if n.Superclass != nil {
			add(n.Superclass)
		}
		for _, m := range n.Methods {
			add(m)
		}
	}
	return out
}
