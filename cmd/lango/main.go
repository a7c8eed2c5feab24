package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strings"

	"github.com/YusufAbdelaziz/lango"
	"github.com/YusufAbdelaziz/lango/ast"
	"github.com/YusufAbdelaziz/lango/astwalk"
	"github.com/YusufAbdelaziz/lango/diagnostic"
	"github.com/YusufAbdelaziz/lango/fs"
	"github.com/YusufAbdelaziz/lango/object"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// Exit codes follow sysexits.h.
const (
	exitOK          = 0
	exitUsage       = 64
	exitCompile     = 65
	exitNoInput     = 66
	exitRuntime     = 70
	exitInterrupted = 130
)

// logLevelVar is a custom pflag.Value implementation for slog.LevelVar
type logLevelVar struct {
	levelVar *slog.LevelVar
}

func (v *logLevelVar) String() string {
	if v.levelVar == nil {
		return ""
	}
	return v.levelVar.Level().String()
}

func (v *logLevelVar) Set(s string) error {
	var level slog.Level
	switch strings.ToLower(s) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", s)
	}
	v.levelVar.Set(level)
	return nil
}

func (v *logLevelVar) Type() string { return "level" }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		configPath string
		prompt     string
		check      bool
		printAST   bool
		logLevel   = new(slog.LevelVar)
	)
	flags := pflag.NewFlagSet("lango", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&configPath, "config", "", "path to a TOML config file")
	flags.StringVar(&prompt, "prompt", lango.DefaultPrompt, "REPL prompt")
	flags.BoolVar(&check, "check", false, "only scan, parse and resolve the given files")
	flags.BoolVar(&printAST, "print-ast", false, "print the parsed program instead of running it")
	flags.Var(&logLevelVar{levelVar: logLevel}, "log-level", "set log level (debug, info, warn, error)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lango [flags] [script]\n       lango --check file...\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := lango.LoadConfig(fs.NewOSFS(), configPath)
	if err != nil {
		fmt.Fprintf(stderr, "lango: %v\n", err)
		return exitUsage
	}
	if !flags.Changed("log-level") {
		level, _ := cfg.Level() // validated by LoadConfig
		logLevel.Set(level)
	}
	if !flags.Changed("prompt") {
		prompt = cfg.Prompt
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))
	opts := append(cfg.Options(),
		lango.WithStdout(stdout),
		lango.WithStderr(stderr),
		lango.WithLogger(logger),
	)

	rest := flags.Args()
	switch {
	case check:
		if len(rest) == 0 {
			flags.Usage()
			return exitUsage
		}
		return checkFiles(ctx, rest, opts, stderr, logger)
	case printAST:
		if len(rest) != 1 {
			flags.Usage()
			return exitUsage
		}
		return dumpAST(rest[0], opts, stdout, stderr)
	case len(rest) > 1:
		flags.Usage()
		return exitUsage
	case len(rest) == 1:
		return runFile(ctx, rest[0], lango.NewInterpreter(opts...), stderr)
	default:
		return repl(ctx, lango.NewInterpreter(opts...), prompt, stdin, stdout, stderr)
	}
}

func runFile(ctx context.Context, path string, interp *lango.Interpreter, stderr io.Writer) int {
	err := interp.RunFile(ctx, path)
	switch {
	case err == nil:
		return exitOK
	case interp.HadError():
		// diagnostics were already printed by the reporter
		return exitCompile
	case interp.HadRuntimeError():
		fmt.Fprintln(stderr, err)
		return exitRuntime
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		fmt.Fprintf(stderr, "lango: %v\n", err)
		return exitNoInput
	}
}

func repl(ctx context.Context, interp *lango.Interpreter, prompt string, stdin io.Reader, stdout, stderr io.Writer) int {
	sc := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, prompt)
		if !sc.Scan() {
			break
		}
		err := interp.Run(ctx, sc.Text())
		if errors.Is(err, context.Canceled) {
			return exitInterrupted
		}
		var rerr *object.Error
		if errors.As(err, &rerr) {
			fmt.Fprintln(stderr, rerr)
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(stderr, "lango: reading input: %v\n", err)
		return exitNoInput
	}
	return exitOK
}

func dumpAST(path string, opts []lango.Option, stdout, stderr io.Writer) int {
	interp := lango.NewInterpreter(opts...)
	source, err := interp.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "lango: %v\n", err)
		return exitNoInput
	}
	stmts, err := interp.Parse(source)
	if err != nil {
		return exitCompile
	}
	if err := ast.Fprint(stdout, stmts); err != nil {
		fmt.Fprintf(stderr, "lango: %v\n", err)
		return exitNoInput
	}
	return exitOK
}

type checkResult struct {
	readErr     error
	diagnostics []diagnostic.Diagnostic
}

// checkFiles resolves every file concurrently, one interpreter per file,
// and prints the findings in argument order.
func checkFiles(ctx context.Context, paths []string, opts []lango.Option, stderr io.Writer, logger *slog.Logger) int {
	results := make([]checkResult, len(paths))
	quiet := lango.WithReporter(diagnostic.ReporterFunc(func(diagnostic.Diagnostic) {}))
	opts = append(slices.Clip(opts), quiet)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			interp := lango.NewInterpreter(opts...)
			source, err := interp.ReadFile(path)
			if err != nil {
				results[i].readErr = err
				return nil
			}
			prog, err := interp.Check(ctx, source)
			var cerr *lango.CompileError
			if errors.As(err, &cerr) {
				results[i].diagnostics = cerr.Diagnostics
				return nil
			}
			if err != nil {
				return err
			}

			var classes, functions int
			for range astwalk.Classes(prog.Statements) {
				classes++
			}
			for range astwalk.Functions(prog.Statements) {
				functions++
			}
			logger.InfoContext(ctx, "checked", "file", path, "classes", classes, "functions", functions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return exitInterrupted
		}
		fmt.Fprintf(stderr, "lango: %v\n", err)
		return exitCompile
	}

	code := exitOK
	for i, r := range results {
		if r.readErr != nil {
			fmt.Fprintf(stderr, "lango: %v\n", r.readErr)
			code = max(code, exitNoInput)
			continue
		}
		for _, d := range r.diagnostics {
			fmt.Fprintf(stderr, "%s: %s\n", paths[i], d)
		}
		if len(r.diagnostics) > 0 {
			code = max(code, exitCompile)
		}
	}
	return code
}
