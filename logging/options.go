package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/wirebind/wirebind/sampler"
)

// LevelMapper chooses the level for a record. Returning zerolog.NoLevel
// defers to the next mapper in line, then to the defaults: DEBUG for
// success, WARN for failure.
type LevelMapper func(rec *Record) zerolog.Level

// CauseFilter decides whether a failure is loggable at all. Report true to
// suppress the record entirely; suppressed failures are still returned to
// the caller unchanged.
type CauseFilter func(cause error) bool

type Option func(o *options)

type options struct {
	logger         zerolog.Logger
	requestLevel   LevelMapper
	responseLevel  LevelMapper
	causeFilter    CauseFilter
	successSampler sampler.Sampler
	failureSampler sampler.Sampler
	perClient      bool
	newSuccess     func() sampler.Sampler
	newFailure     func() sampler.Sampler
	formatter      Formatter
	message        string
}

func newOptions(opt []Option) *options {
	o := &options{
		logger:         zerolog.New(os.Stderr).With().Timestamp().Logger(),
		successSampler: sampler.Always(),
		failureSampler: sampler.Always(),
		formatter:      DefaultFormatter,
		message:        "call",
	}
	for _, fn := range opt {
		fn(o)
	}
	return o
}

// samplers returns the sampler pair for one wrapped client. State is shared
// per decorator instance unless per-client samplers were configured.
func (o *options) samplers() (success, failure sampler.Sampler) {
	if o.perClient {
		return o.newSuccess(), o.newFailure()
	}
	return o.successSampler, o.failureSampler
}

// WithLogger sets the sink the decorator emits records to.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRequestLevelMapper sets the mapper consulted for successful calls
// based on the request alone; the mapper should not inspect outcome fields.
func WithRequestLevelMapper(m LevelMapper) Option {
	return func(o *options) {
		o.requestLevel = m
	}
}

// WithResponseLevelMapper sets the mapper consulted first for every
// completed call. It sees the full record, including the outcome.
func WithResponseLevelMapper(m LevelMapper) Option {
	return func(o *options) {
		o.responseLevel = m
	}
}

// WithCauseFilter suppresses records for failures whose cause the filter
// reports true for.
func WithCauseFilter(filter CauseFilter) Option {
	return func(o *options) {
		o.causeFilter = filter
	}
}

// WithSuccessSampler sets the sampler evaluated for successful calls. The
// sampler's state is shared across all clients wrapped by this decorator.
func WithSuccessSampler(s sampler.Sampler) Option {
	return func(o *options) {
		o.successSampler = s
	}
}

// WithFailureSampler sets the sampler evaluated for failed calls,
// independently of the success sampler.
func WithFailureSampler(s sampler.Sampler) Option {
	return func(o *options) {
		o.failureSampler = s
	}
}

// WithPerClientSamplers gives every wrapped client its own sampler pair
// instead of sharing state across the decorator instance.
func WithPerClientSamplers(newSuccess, newFailure func() sampler.Sampler) Option {
	return func(o *options) {
		o.perClient = true
		o.newSuccess = newSuccess
		o.newFailure = newFailure
	}
}

// WithFormatter replaces the record formatter.
func WithFormatter(f Formatter) Option {
	return func(o *options) {
		o.formatter = f
	}
}

// WithMessage sets the message attached to every emitted record.
func WithMessage(message string) Option {
	return func(o *options) {
		o.message = message
	}
}
