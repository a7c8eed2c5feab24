// Package diagnostic carries compile-time errors from the scanner, parser and
// resolver to whoever drives them.
package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/YusufAbdelaziz/lango/token"
)

// Diagnostic is a single compile-time error.
type Diagnostic struct {
	Line    int
	Where   string // "", " at end" or " at 'lexeme'"
	Message string
}

// AtLine creates a diagnostic that has no offending token, only a line.
func AtLine(line int, message string) Diagnostic {
	return Diagnostic{Line: line, Message: message}
}

// AtToken creates a diagnostic pointing at tok.
func AtToken(tok token.Token, message string) Diagnostic {
	if tok.Kind == token.EOF {
		return Diagnostic{Line: tok.Line, Where: " at end", Message: message}
	}
	return Diagnostic{Line: tok.Line, Where: fmt.Sprintf(" at '%s'", tok.Lexeme), Message: message}
}

// String renders the diagnostic as "[line L] Error<where>: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Error makes a Diagnostic usable as a Go error.
func (d Diagnostic) Error() string { return d.String() }

// Reporter receives diagnostics as they are found.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Collector records every diagnostic it is given.
type Collector struct {
	Diagnostics []Diagnostic
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasErrors reports whether anything was collected since the last Reset.
func (c *Collector) HasErrors() bool { return len(c.Diagnostics) > 0 }

// Reset forgets all collected diagnostics.
func (c *Collector) Reset() { c.Diagnostics = nil }

// Err joins the collected diagnostics into one error, or returns nil.
func (c *Collector) Err() error {
	if len(c.Diagnostics) == 0 {
		return nil
	}
	errs := make([]error, len(c.Diagnostics))
	for i, d := range c.Diagnostics {
		errs[i] = d
	}
	return errors.Join(errs...)
}

// printer writes each diagnostic on its own line.
type printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter returns a Reporter that writes diagnostics to w.
func NewPrinter(w io.Writer) Reporter {
	return &printer{w: w}
}

func (p *printer) Report(d Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, d.String())
}

// Tee returns a Reporter that forwards to every non-nil reporter in order.
func Tee(reporters ...Reporter) Reporter {
	var rs []Reporter
	for _, r := range reporters {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range rs {
			r.Report(d)
		}
	})
}
