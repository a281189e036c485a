package console

import (
	"go.uber.org/zap"
)

// Reporter is the observability sink every failure is sent to
type Reporter interface {
	Report(f *Failure)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(f *Failure)

// Report calls fn(f)
func (fn ReporterFunc) Report(f *Failure) {
	fn(f)
}

type logReporter struct {
	logger *zap.Logger
}

// NewLogReporter returns a Reporter that logs failures. Load failures are
// warnings, mutation and precondition failures are errors.
func NewLogReporter(logger *zap.Logger) Reporter {
	return &logReporter{logger: logger}
}

func (r *logReporter) Report(f *Failure) {
	fields := []zap.Field{
		zap.Stringer("kind", f.Kind),
		zap.String("op", f.Op),
		zap.String("org_id", f.OrgID),
		zap.Error(f.Err),
	}
	if f.UserID != "" {
		fields = append(fields, zap.String("user_id", f.UserID))
	}

	if f.Kind == FailureLoad {
		r.logger.Warn("console operation failed", fields...)
		return
	}
	r.logger.Error("console operation failed", fields...)
}
