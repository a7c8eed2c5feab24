// Package langotest provides helpers for testing lango programs end to end.
package langotest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/YusufAbdelaziz/lango"
	"gopkg.in/yaml.v3"
)

// FixedTime is the time the clock native reports under Run.
var FixedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Result provides access to the results of a script execution.
type Result struct {
	Stdout      string
	Stderr      string
	Err         error
	Interpreter *lango.Interpreter
}

// Lines returns the printed output split into lines, or nil when nothing was printed.
func (r *Result) Lines() []string {
	if r.Stdout == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(r.Stdout, "\n"), "\n")
}

// Run executes source in a fresh interpreter with captured output and a fixed clock.
// Options are applied after the defaults, so they can override them.
func Run(t testing.TB, source string, opts ...lango.Option) *Result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	base := []lango.Option{
		lango.WithStdout(&stdout),
		lango.WithStderr(&stderr),
		lango.WithClock(func() time.Time { return FixedTime }),
	}
	interp := lango.NewInterpreter(append(base, opts...)...)
	err := interp.Run(context.Background(), source)
	return &Result{
		Stdout:      stdout.String(),
		Stderr:      stderr.String(),
		Err:         err,
		Interpreter: interp,
	}
}

// Fixture is one end-to-end case.
type Fixture struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Stdout []string `yaml:"stdout"`
	// Error is "", "compile" or "runtime".
	Error string `yaml:"error"`
	// Message must be a substring of the error text when set.
	Message string `yaml:"message"`
}

// LoadFixtures decodes a YAML list of fixtures. Unknown keys are rejected.
func LoadFixtures(path string) ([]Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var fixtures []Fixture
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("fixtures: parse %s: %w", path, err)
	}
	for i, f := range fixtures {
		switch f.Error {
		case "", "compile", "runtime":
		default:
			return nil, fmt.Errorf("fixtures: %s: case %d (%s): unknown error kind %q", path, i, f.Name, f.Error)
		}
	}
	return fixtures, nil
}
