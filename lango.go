// Package lango is the entry point for embedding the lango language: it runs
// source text through the scanner, parser, resolver and evaluator, keeping one
// global environment across runs.
package lango

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/YusufAbdelaziz/lango/ast"
	"github.com/YusufAbdelaziz/lango/diagnostic"
	"github.com/YusufAbdelaziz/lango/evaluator"
	"github.com/YusufAbdelaziz/lango/fs"
	"github.com/YusufAbdelaziz/lango/object"
	"github.com/YusufAbdelaziz/lango/parser"
	"github.com/YusufAbdelaziz/lango/resolver"
	"github.com/YusufAbdelaziz/lango/scanner"
)

// Stage names the compile phase a CompileError came from.
type Stage string

const (
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
)

// CompileError is returned when scanning, parsing or resolving reports anything.
// Evaluation never starts after a CompileError.
type CompileError struct {
	Stage       Stage
	Diagnostics []diagnostic.Diagnostic
}

func (e *CompileError) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].String()
	}
	return fmt.Sprintf("%s: %d errors, first: %s", e.Stage, len(e.Diagnostics), e.Diagnostics[0])
}

// Program is a checked program ready for evaluation.
type Program struct {
	Statements []ast.Stmt
	Locals     resolver.Locals
}

// Interpreter runs lango programs. Globals defined by one Run are visible to the next.
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	eval     *evaluator.Evaluator
	logger   *slog.Logger
	reporter diagnostic.Reporter
	fsys     fs.FS

	stdout  io.Writer
	stderr  io.Writer
	now     func() time.Time
	natives map[string]*object.Builtin

	hadError        bool
	hadRuntimeError bool
}

// Option is a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithStdout sets where print writes.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stdout = w
	}
}

// WithStderr sets where diagnostics are printed when no reporter is given.
func WithStderr(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stderr = w
	}
}

// WithLogger sets the logger for pipeline tracing.
func WithLogger(l *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = l
	}
}

// WithReporter sends compile-time diagnostics to r instead of printing them on stderr.
func WithReporter(r diagnostic.Reporter) Option {
	return func(i *Interpreter) {
		i.reporter = r
	}
}

// WithFS sets the file system RunFile reads from.
func WithFS(fsys fs.FS) Option {
	return func(i *Interpreter) {
		i.fsys = fsys
	}
}

// WithClock replaces the time source of the clock native.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) {
		i.now = now
	}
}

// WithNative defines an extra native global function, replacing any native of the same name.
func WithNative(name string, arity int, fn object.BuiltinFunction) Option {
	return func(i *Interpreter) {
		i.natives[name] = &object.Builtin{Name: name, Arity: arity, Fn: fn}
	}
}

// withoutNatives removes default natives; used by Config.
func withoutNatives(names ...string) Option {
	return func(i *Interpreter) {
		for _, name := range names {
			delete(i.natives, name)
		}
	}
}

// NewInterpreter creates an interpreter with a fresh global environment.
func NewInterpreter(options ...Option) *Interpreter {
	i := &Interpreter{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		now:     time.Now,
		natives: evaluator.Builtins(),
	}
	for _, opt := range options {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if i.reporter == nil {
		i.reporter = diagnostic.NewPrinter(i.stderr)
	}
	if i.fsys == nil {
		i.fsys = fs.NewOSFS()
	}

	i.eval = evaluator.New(evaluator.Config{
		Stdout:  i.stdout,
		Logger:  i.logger,
		Now:     i.now,
		Natives: i.natives,
	})
	return i
}

// HadError reports whether the last call failed to compile.
func (i *Interpreter) HadError() bool { return i.hadError }

// HadRuntimeError reports whether the last call stopped with a runtime error.
func (i *Interpreter) HadRuntimeError() bool { return i.hadRuntimeError }

// Parse scans and parses source. Every scan and parse diagnostic is reported;
// if there was any, a *CompileError with StageParse is returned.
func (i *Interpreter) Parse(source string) ([]ast.Stmt, error) {
	var c diagnostic.Collector
	reporter := diagnostic.Tee(i.reporter, &c)

	tokens := scanner.Scan(source, reporter)
	i.logger.Debug("scanned", "tokens", len(tokens))
	stmts := parser.Parse(tokens, reporter)
	i.logger.Debug("parsed", "statements", len(stmts))

	if c.HasErrors() {
		return nil, &CompileError{Stage: StageParse, Diagnostics: c.Diagnostics}
	}
	return stmts, nil
}

// Check parses and resolves source without running it.
func (i *Interpreter) Check(ctx context.Context, source string) (*Program, error) {
	stmts, err := i.Parse(source)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}

	var c diagnostic.Collector
	locals := resolver.Resolve(stmts, diagnostic.Tee(i.reporter, &c))
	i.logger.Debug("resolved", "locals", len(locals))
	if c.HasErrors() {
		return nil, &CompileError{Stage: StageResolve, Diagnostics: c.Diagnostics}
	}
	return &Program{Statements: stmts, Locals: locals}, nil
}

// Run checks and evaluates source in the persistent global environment.
// Compile errors come back as *CompileError, runtime errors as *object.Error.
func (i *Interpreter) Run(ctx context.Context, source string) error {
	i.hadError = false
	i.hadRuntimeError = false

	prog, err := i.Check(ctx, source)
	if err != nil {
		var cerr *CompileError
		if errors.As(err, &cerr) {
			i.hadError = true
		}
		return err
	}
	return i.Exec(ctx, prog)
}

// Exec evaluates a program produced by Check.
func (i *Interpreter) Exec(ctx context.Context, prog *Program) error {
	i.eval.Resolve(prog.Locals)
	err := i.eval.Interpret(ctx, prog.Statements)
	if err == nil {
		return nil
	}
	var rerr *object.Error
	if errors.As(err, &rerr) {
		i.hadRuntimeError = true
		i.logger.Debug("runtime error", "line", rerr.Line(), "message", rerr.Message)
	}
	return err
}

// RunFile reads path through the configured file system and runs it.
func (i *Interpreter) RunFile(ctx context.Context, path string) error {
	source, err := i.ReadFile(path)
	if err != nil {
		return err
	}
	return i.Run(ctx, source)
}

// ReadFile reads path through the configured file system.
func (i *Interpreter) ReadFile(path string) (string, error) {
	source, err := i.fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(source), nil
}
