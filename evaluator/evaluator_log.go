package evaluator

import (
	"log/slog"
)

// logc logs with the innermost active call attached.
func (e *Evaluator) logc(level slog.Level, msg string, args ...any) {
	if !e.logger.Enabled(e.ctx, level) {
		return
	}
	if len(e.callStack) > 0 {
		frame := e.callStack[len(e.callStack)-1]
		args = append([]any{
			slog.String("in_func", frame.Function),
			slog.Int("in_func_line", frame.Line),
		}, args...)
	}
	e.logger.Log(e.ctx, level, msg, args...)
}
