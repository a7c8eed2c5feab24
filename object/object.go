package object

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/YusufAbdelaziz/lango/ast"
	"github.com/YusufAbdelaziz/lango/token"
)

// ObjectType is a string representation of an object's type.
type ObjectType string

const (
	NUMBER_OBJ       ObjectType = "NUMBER"
	STRING_OBJ       ObjectType = "STRING"
	BOOLEAN_OBJ      ObjectType = "BOOLEAN"
	NIL_OBJ          ObjectType = "NIL"
	FUNCTION_OBJ     ObjectType = "FUNCTION"
	BUILTIN_OBJ      ObjectType = "BUILTIN"
	CLASS_OBJ        ObjectType = "CLASS"
	INSTANCE_OBJ     ObjectType = "INSTANCE"
	RETURN_VALUE_OBJ ObjectType = "RETURN_VALUE"
	BREAK_OBJ        ObjectType = "BREAK"
	ERROR_OBJ        ObjectType = "ERROR"
)

// Object is the interface that all runtime values implement.
type Object interface {
	// Type returns the type of the object.
	Type() ObjectType
	// Inspect returns the text print shows for the object.
	Inspect() string
}

// Callable is implemented by every value that can appear before "(".
type Callable interface {
	Object
	// Arity is the exact number of arguments a call must supply.
	Arity() int
}

// --- Primitives ---

// Number is the only numeric type: a 64-bit float.
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// Inspect prints integral values without a fractional part.
func (n *Number) Inspect() string { return strconv.FormatFloat(n.Value, 'f', -1, 64) }

// String is an immutable string value.
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// Boolean represents true or false; use TRUE and FALSE.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

// Nil is the absent value; use NIL.
type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NIL   = &Nil{}
)

// NativeBool returns the shared Boolean for b.
func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// --- Control flow ---

// ReturnValue carries a returned value up to the enclosing call.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Break carries a break up to the nearest enclosing loop.
type Break struct {
	Keyword token.Token
}

func (b *Break) Type() ObjectType { return BREAK_OBJ }
func (b *Break) Inspect() string  { return "break" }

// --- Functions ---

// Function is a user-defined function or method together with its closure.
type Function struct {
	Name          string // empty for anonymous functions
	Params        []token.Token
	Body          []ast.Stmt
	Env           *Environment
	IsInitializer bool
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }

func (f *Function) Inspect() string {
	if f.Name == "" {
		return "<fn anonymous>"
	}
	return "<fn " + f.Name + ">"
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int { return len(f.Params) }

// Bind returns a copy of f whose closure has "this" bound to instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Env)
	env.Define("this", instance)
	return &Function{
		Name:          f.Name,
		Params:        f.Params,
		Body:          f.Body,
		Env:           env,
		IsInitializer: f.IsInitializer,
	}
}

// BuiltinContext provides what a native function may touch while running.
type BuiltinContext struct {
	Stdout   io.Writer
	Now      func() time.Time
	NewError func(tok token.Token, format string, args ...any) *Error
}

// BuiltinFunction is the signature for native functions.
// It receives the execution context, the closing parenthesis of the call, and the evaluated arguments.
type BuiltinFunction func(ctx *BuiltinContext, tok token.Token, args ...Object) Object

// Builtin is a function implemented in Go.
type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<native fn>" }

// --- Classes ---

// Class is a class value. Calling it creates an Instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return c.Name }

// FindMethod looks name up in c and then along the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	for k := c; k != nil; k = k.Superclass {
		if m, ok := k.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Arity is the arity of the class's initializer, or zero without one.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Instance is an object created by calling a class.
type Instance struct {
	Class  *Class
	Fields map[string]Object
}

// NewInstance creates an instance of class with no fields.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Object)}
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (i *Instance) Inspect() string  { return i.Class.Name + " instance" }

// Get returns the field called name, or else the method called name bound to i.
// Fields shadow methods.
func (i *Instance) Get(name string) (Object, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set creates or overwrites a field.
func (i *Instance) Set(name string, value Object) {
	i.Fields[name] = value
}

// --- Error Object ---

// Error is a runtime error raised at Token.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }

// Inspect renders the error as "message\n[line L]".
func (e *Error) Inspect() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

// Error makes it a valid Go error.
func (e *Error) Error() string { return e.Inspect() }

// Line returns the line the error was raised on.
func (e *Error) Line() int { return e.Token.Line }
