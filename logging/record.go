package logging

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/wirebind/wirebind/errors"
)

// Record is the structured summary of one completed call. It is created at
// completion, handed to the formatter, and not retained.
type Record struct {
	CallID   string
	Path     string
	Request  any
	Response any
	Err      error
	Level    zerolog.Level
	Start    time.Time
	End      time.Time
}

func (r *Record) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Failed reports whether the call's outcome was a failure.
func (r *Record) Failed() bool {
	return r.Err != nil
}

// Formatter writes a record's fields onto a log event. The event's message
// is set by the decorator after the formatter runs.
type Formatter func(e *zerolog.Event, rec *Record)

// DefaultFormatter emits the call ID, path, duration, and on failure the
// error with its code.
func DefaultFormatter(e *zerolog.Event, rec *Record) {
	e.Str("call_id", rec.CallID).
		Str("path", rec.Path).
		Dur("duration", rec.Duration())
	if rec.Err != nil {
		e.Err(rec.Err)
		if werr, ok := errors.AsError(rec.Err); ok {
			e.Str("code", werr.Code().String())
		}
	}
}
