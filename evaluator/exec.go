package evaluator

import (
	"fmt"
	"log/slog"

	"github.com/YusufAbdelaziz/lango/ast"
	"github.com/YusufAbdelaziz/lango/object"
	"github.com/YusufAbdelaziz/lango/token"
)

// Exec executes a statement in env. It returns nil on normal completion, or a
// *object.ReturnValue, *object.Break or *object.Error that the caller must propagate.
func (e *Evaluator) Exec(stmt ast.Stmt, env *object.Environment) object.Object {
	switch s := stmt.(type) {
	case *ast.Expression:
		if v := e.Eval(s.Expression, env); isError(v) {
			return v
		}
		return nil
	case *ast.Print:
		v := e.Eval(s.Expression, env)
		if isError(v) {
			return v
		}
		fmt.Fprintln(e.Stdout, v.Inspect())
		return nil
	case *ast.Var:
		var value object.Object = object.NIL
		if s.Initializer != nil {
			value = e.Eval(s.Initializer, env)
			if isError(value) {
				return value
			}
		}
		env.Define(s.Name.Lexeme, value)
		return nil
	case *ast.Block:
		return e.execBlock(s.Statements, object.NewEnclosedEnvironment(env))
	case *ast.If:
		return e.execIf(s, env)
	case *ast.While:
		return e.execWhile(s, env)
	case *ast.Function:
		env.Define(s.Name.Lexeme, &object.Function{
			Name:   s.Name.Lexeme,
			Params: s.Params,
			Body:   s.Body,
			Env:    env,
		})
		return nil
	case *ast.Return:
		var value object.Object = object.NIL
		if s.Value != nil {
			value = e.Eval(s.Value, env)
			if isError(value) {
				return value
			}
		}
		return &object.ReturnValue{Value: value}
	case *ast.Break:
		return &object.Break{Keyword: s.Keyword}
	case *ast.Class:
		return e.execClass(s, env)
	default:
		return e.newError(token.Token{}, "unsupported statement %T", stmt)
	}
}

// execBlock runs stmts in env, stopping at the first control transfer or error.
func (e *Evaluator) execBlock(stmts []ast.Stmt, env *object.Environment) object.Object {
	for _, stmt := range stmts {
		if result := e.Exec(stmt, env); result != nil {
			return result
		}
	}
	return nil
}

func (e *Evaluator) execIf(s *ast.If, env *object.Environment) object.Object {
	cond := e.Eval(s.Condition, env)
	if isError(cond) {
		return cond
	}
	if isTruthy(cond) {
		return e.Exec(s.Then, env)
	}
	for _, elif := range s.Elifs {
		cond := e.Eval(elif.Condition, env)
		if isError(cond) {
			return cond
		}
		if isTruthy(cond) {
			return e.Exec(elif.Body, env)
		}
	}
	if s.Else != nil {
		return e.Exec(s.Else, env)
	}
	return nil
}

func (e *Evaluator) execWhile(s *ast.While, env *object.Environment) object.Object {
	for {
		if e.ctx.Err() != nil {
			return errInterrupted
		}
		cond := e.Eval(s.Condition, env)
		if isError(cond) {
			return cond
		}
		if !isTruthy(cond) {
			return nil
		}
		switch result := e.Exec(s.Body, env).(type) {
		case nil:
		case *object.Break:
			return nil
		default:
			return result
		}
	}
}

func (e *Evaluator) execClass(s *ast.Class, env *object.Environment) object.Object {
	var superclass *object.Class
	if s.Superclass != nil {
		v := e.Eval(s.Superclass, env)
		if isError(v) {
			return v
		}
		class, ok := v.(*object.Class)
		if !ok {
			return e.newError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	env.Define(s.Name.Lexeme, object.NIL)

	methodEnv := env
	if superclass != nil {
		methodEnv = object.NewEnclosedEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*object.Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &object.Function{
			Name:          m.Name.Lexeme,
			Params:        m.Params,
			Body:          m.Body,
			Env:           methodEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &object.Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	env.Define(s.Name.Lexeme, class)

	superName := ""
	if superclass != nil {
		superName = superclass.Name
	}
	e.logc(slog.LevelDebug, "class declared", "name", class.Name, "superclass", superName, "methods", len(methods))
	return nil
}
