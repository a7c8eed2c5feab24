package evaluator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/YusufAbdelaziz/lango/ast"
	"github.com/YusufAbdelaziz/lango/object"
	"github.com/YusufAbdelaziz/lango/resolver"
	"github.com/YusufAbdelaziz/lango/token"
)

// maxCallDepth bounds nested calls so runaway recursion becomes a runtime error.
const maxCallDepth = 10000

var builtins = map[string]*object.Builtin{
	"clock": {
		Name:  "clock",
		Arity: 0,
		Fn: func(ctx *object.BuiltinContext, tok token.Token, args ...object.Object) object.Object {
			now := ctx.Now()
			return &object.Number{Value: float64(now.UnixNano()) / float64(time.Second)}
		},
	},
}

// Builtins returns a fresh copy of the default native functions, keyed by name.
func Builtins() map[string]*object.Builtin {
	return maps.Clone(builtins)
}

// errInterrupted unwinds evaluation when the context passed to Interpret is done.
var errInterrupted = &object.Error{Message: "Interrupted."}

// CallFrame records one active call.
type CallFrame struct {
	Function string
	Line     int
}

type Evaluator struct {
	object.BuiltinContext
	globals   *object.Environment
	locals    resolver.Locals
	logger    *slog.Logger
	callStack []*CallFrame
	ctx       context.Context
}

type Config struct {
	Stdout  io.Writer
	Globals *object.Environment // created when nil
	Logger  *slog.Logger        // discards when nil
	Now     func() time.Time    // time.Now when nil
	// Natives are defined in the global environment. Builtins() is used when nil.
	Natives map[string]*object.Builtin
}

func New(cfg Config) *Evaluator {
	if cfg.Globals == nil {
		cfg.Globals = object.NewEnvironment()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Stdout == nil {
		cfg.Stdout = io.Discard
	}
	if cfg.Natives == nil {
		cfg.Natives = Builtins()
	}

	e := &Evaluator{
		globals: cfg.Globals,
		locals:  resolver.Locals{},
		logger:  cfg.Logger,
		ctx:     context.Background(),
	}
	e.BuiltinContext = object.BuiltinContext{
		Stdout: cfg.Stdout,
		Now:    cfg.Now,
		NewError: func(tok token.Token, format string, v ...any) *object.Error {
			return e.newError(tok, format, v...)
		},
	}
	for name, b := range cfg.Natives {
		e.globals.Define(name, b)
	}
	return e
}

// Globals returns the persistent global environment.
func (e *Evaluator) Globals() *object.Environment { return e.globals }

// Resolve merges a scope-distance table into the one used for lookups.
// Tables from earlier programs are kept so their closures stay valid.
func (e *Evaluator) Resolve(locals resolver.Locals) {
	maps.Copy(e.locals, locals)
}

// Interpret executes a program in the global environment. It stops at the
// first runtime error, which is returned as an *object.Error. If ctx is done
// before the program finishes, the context's error is returned wrapped.
func (e *Evaluator) Interpret(ctx context.Context, stmts []ast.Stmt) error {
	e.ctx = ctx
	e.callStack = e.callStack[:0]
	defer func() { e.ctx = context.Background() }()

	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interpret: %w", err)
		}
		result := e.Exec(stmt, e.globals)
		switch r := result.(type) {
		case nil:
		case *object.Error:
			if r == errInterrupted {
				return fmt.Errorf("interpret: %w", ctx.Err())
			}
			return r
		case *object.Break:
			return e.newError(r.Keyword, "Can't break outside of a loop.")
		}
	}
	return nil
}

func (e *Evaluator) newError(tok token.Token, format string, args ...any) *object.Error {
	return &object.Error{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}

// isTruthy treats only false and nil as false.
func isTruthy(obj object.Object) bool {
	switch o := obj.(type) {
	case *object.Boolean:
		return o.Value
	case *object.Nil:
		return false
	default:
		return true
	}
}

// isEqual compares primitives by value and everything else by identity.
func isEqual(a, b object.Object) bool {
	switch a := a.(type) {
	case *object.Nil:
		_, ok := b.(*object.Nil)
		return ok
	case *object.Number:
		b, ok := b.(*object.Number)
		return ok && a.Value == b.Value
	case *object.String:
		b, ok := b.(*object.String)
		return ok && a.Value == b.Value
	case *object.Boolean:
		b, ok := b.(*object.Boolean)
		return ok && a.Value == b.Value
	default:
		return a == b
	}
}
