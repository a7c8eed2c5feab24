package evaluator

import (
	"log/slog"

	"github.com/YusufAbdelaziz/lango/ast"
	"github.com/YusufAbdelaziz/lango/object"
	"github.com/YusufAbdelaziz/lango/token"
)

// Eval evaluates an expression in env. The result is a value or an *object.Error.
func (e *Evaluator) Eval(expr ast.Expr, env *object.Environment) object.Object {
	switch n := expr.(type) {
	case *ast.Literal:
		return literal(n.Value)
	case *ast.Grouping:
		return e.Eval(n.Expression, env)
	case *ast.Unary:
		return e.evalUnary(n, env)
	case *ast.Binary:
		return e.evalBinary(n, env)
	case *ast.Logical:
		left := e.Eval(n.Left, env)
		if isError(left) {
			return left
		}
		if n.Operator.Kind == token.OR {
			if isTruthy(left) {
				return left
			}
		} else if !isTruthy(left) {
			return left
		}
		return e.Eval(n.Right, env)
	case *ast.Variable:
		return e.lookUpVariable(n.Name, n, env)
	case *ast.Assign:
		value := e.Eval(n.Value, env)
		if isError(value) {
			return value
		}
		if distance, ok := e.locals[n]; ok {
			env.AssignAt(distance, n.Name.Lexeme, value)
			return value
		}
		if !e.globals.Assign(n.Name.Lexeme, value) {
			return e.newError(n.Name, "Undefined variable '%s'.", n.Name.Lexeme)
		}
		return value
	case *ast.Call:
		return e.evalCall(n, env)
	case *ast.Get:
		obj := e.Eval(n.Object, env)
		if isError(obj) {
			return obj
		}
		instance, ok := obj.(*object.Instance)
		if !ok {
			return e.newError(n.Name, "Only instances have properties.")
		}
		if v, ok := instance.Get(n.Name.Lexeme); ok {
			return v
		}
		return e.newError(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
	case *ast.Set:
		obj := e.Eval(n.Object, env)
		if isError(obj) {
			return obj
		}
		instance, ok := obj.(*object.Instance)
		if !ok {
			return e.newError(n.Name, "Only instances have fields.")
		}
		value := e.Eval(n.Value, env)
		if isError(value) {
			return value
		}
		instance.Set(n.Name.Lexeme, value)
		return value
	case *ast.This:
		return e.lookUpVariable(n.Keyword, n, env)
	case *ast.Super:
		return e.evalSuper(n, env)
	case *ast.AnonymousFunction:
		return &object.Function{Params: n.Params, Body: n.Body, Env: env}
	default:
		return e.newError(token.Token{}, "unsupported expression %T", expr)
	}
}

// literal converts a scanned literal into a runtime value.
func literal(v any) object.Object {
	switch v := v.(type) {
	case bool:
		return object.NativeBool(v)
	case float64:
		return &object.Number{Value: v}
	case string:
		return &object.String{Value: v}
	default:
		return object.NIL
	}
}

func (e *Evaluator) lookUpVariable(name token.Token, expr ast.Expr, env *object.Environment) object.Object {
	if distance, ok := e.locals[expr]; ok {
		if v, ok := env.GetAt(distance, name.Lexeme); ok {
			return v
		}
	} else if v, ok := e.globals.Get(name.Lexeme); ok {
		return v
	}
	return e.newError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (e *Evaluator) evalUnary(n *ast.Unary, env *object.Environment) object.Object {
	right := e.Eval(n.Right, env)
	if isError(right) {
		return right
	}
	switch n.Operator.Kind {
	case token.BANG:
		return object.NativeBool(!isTruthy(right))
	case token.MINUS:
		num, ok := right.(*object.Number)
		if !ok {
			return e.newError(n.Operator, "Operand must be a number.")
		}
		return &object.Number{Value: -num.Value}
	default:
		return e.newError(n.Operator, "unknown operator: %s", n.Operator.Lexeme)
	}
}

func (e *Evaluator) evalBinary(n *ast.Binary, env *object.Environment) object.Object {
	left := e.Eval(n.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(n.Right, env)
	if isError(right) {
		return right
	}

	switch n.Operator.Kind {
	case token.EQUAL_EQUAL:
		return object.NativeBool(isEqual(left, right))
	case token.BANG_EQUAL:
		return object.NativeBool(!isEqual(left, right))
	case token.PLUS:
		return e.evalPlus(n.Operator, left, right)
	}

	l, lok := left.(*object.Number)
	r, rok := right.(*object.Number)
	if !lok || !rok {
		return e.newError(n.Operator, "Operands must be numbers.")
	}
	switch n.Operator.Kind {
	case token.MINUS:
		return &object.Number{Value: l.Value - r.Value}
	case token.STAR:
		return &object.Number{Value: l.Value * r.Value}
	case token.SLASH:
		if r.Value == 0 {
			return e.newError(n.Operator, "Division by zero.")
		}
		return &object.Number{Value: l.Value / r.Value}
	case token.GREATER:
		return object.NativeBool(l.Value > r.Value)
	case token.GREATER_EQUAL:
		return object.NativeBool(l.Value >= r.Value)
	case token.LESS:
		return object.NativeBool(l.Value < r.Value)
	case token.LESS_EQUAL:
		return object.NativeBool(l.Value <= r.Value)
	default:
		return e.newError(n.Operator, "unknown operator: %s", n.Operator.Lexeme)
	}
}

// evalPlus adds two numbers, or concatenates when either side is a string.
func (e *Evaluator) evalPlus(op token.Token, left, right object.Object) object.Object {
	l, lok := left.(*object.Number)
	r, rok := right.(*object.Number)
	if lok && rok {
		return &object.Number{Value: l.Value + r.Value}
	}
	_, lstr := left.(*object.String)
	_, rstr := right.(*object.String)
	if lstr || rstr {
		return &object.String{Value: left.Inspect() + right.Inspect()}
	}
	return e.newError(op, "Operands must be two numbers or two strings.")
}

func (e *Evaluator) evalSuper(n *ast.Super, env *object.Environment) object.Object {
	distance, ok := e.locals[n]
	if !ok {
		return e.newError(n.Keyword, "Undefined variable 'super'.")
	}
	sv, _ := env.GetAt(distance, "super")
	superclass, ok := sv.(*object.Class)
	if !ok {
		return e.newError(n.Keyword, "Undefined variable 'super'.")
	}
	// "this" lives in the scope just inside the one binding "super".
	tv, _ := env.GetAt(distance-1, "this")
	instance, ok := tv.(*object.Instance)
	if !ok {
		return e.newError(n.Keyword, "Undefined variable 'this'.")
	}
	method, ok := superclass.FindMethod(n.Method.Lexeme)
	if !ok {
		return e.newError(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(instance)
}

func (e *Evaluator) evalCall(n *ast.Call, env *object.Environment) object.Object {
	callee := e.Eval(n.Callee, env)
	if isError(callee) {
		return callee
	}
	args := make([]object.Object, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		v := e.Eval(a, env)
		if isError(v) {
			return v
		}
		args = append(args, v)
	}

	var arity int
	switch fn := callee.(type) {
	case object.Callable:
		arity = fn.Arity()
	case *object.Builtin:
		arity = fn.Arity
	default:
		return e.newError(n.Paren, "Can only call functions and classes.")
	}
	if len(args) != arity {
		return e.newError(n.Paren, "Expected %d arguments but got %d.", arity, len(args))
	}
	return e.apply(callee, n.Paren, args)
}

// apply invokes an arity-checked callable.
func (e *Evaluator) apply(callee object.Object, paren token.Token, args []object.Object) object.Object {
	switch fn := callee.(type) {
	case *object.Builtin:
		return fn.Fn(&e.BuiltinContext, paren, args...)
	case *object.Function:
		return e.callFunction(fn, paren, args)
	case *object.Class:
		instance := object.NewInstance(fn)
		if init, ok := fn.FindMethod("init"); ok {
			if result := e.callFunction(init.Bind(instance), paren, args); isError(result) {
				return result
			}
		}
		e.logc(slog.LevelDebug, "instance created", "class", fn.Name)
		return instance
	default:
		return e.newError(paren, "Can only call functions and classes.")
	}
}

func (e *Evaluator) callFunction(fn *object.Function, paren token.Token, args []object.Object) object.Object {
	if len(e.callStack) >= maxCallDepth {
		return e.newError(paren, "Stack overflow.")
	}
	name := fn.Name
	if name == "" {
		name = "anonymous"
	}
	e.callStack = append(e.callStack, &CallFrame{Function: name, Line: paren.Line})
	defer func() { e.callStack = e.callStack[:len(e.callStack)-1] }()

	env := object.NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Params {
		env.Define(param.Lexeme, args[i])
	}

	result := e.execBlock(fn.Body, env)
	switch r := result.(type) {
	case *object.Error:
		return r
	case *object.Break:
		return e.newError(r.Keyword, "Can't break outside of a loop.")
	case *object.ReturnValue:
		if fn.IsInitializer {
			return e.boundThis(fn)
		}
		return r.Value
	}
	if fn.IsInitializer {
		return e.boundThis(fn)
	}
	return object.NIL
}

// boundThis returns the instance an initializer was bound to.
func (e *Evaluator) boundThis(fn *object.Function) object.Object {
	if this, ok := fn.Env.GetAt(0, "this"); ok {
		return this
	}
	return object.NIL
}
