package sampler

import (
	"context"

	"github.com/rs/zerolog"
)

// FromZerolog adapts a zerolog.Sampler, such as zerolog.BasicSampler or
// zerolog.BurstSampler, to the Sampler interface. The level is forwarded to
// the underlying sampler unchanged on every decision.
func FromZerolog(s zerolog.Sampler, level zerolog.Level) Sampler {
	return Func(func(context.Context) bool {
		return s.Sample(level)
	})
}
