// Package sampler provides decision functions that bound how often an
// occurrence, typically a log record, is actually recorded.
package sampler

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Sampler decides whether a given occurrence should be recorded. It is
// evaluated once per occurrence against the call's context and must be safe
// for concurrent use.
type Sampler interface {
	IsSampled(ctx context.Context) bool
}

// Func adapts a plain function to the Sampler interface.
type Func func(ctx context.Context) bool

func (f Func) IsSampled(ctx context.Context) bool {
	return f(ctx)
}

// Always returns a Sampler that samples every occurrence.
func Always() Sampler {
	return Func(func(context.Context) bool { return true })
}

// Never returns a Sampler that samples nothing.
func Never() Sampler {
	return Func(func(context.Context) bool { return false })
}

// Random returns a Sampler that samples each occurrence independently with
// the given probability. Probabilities at or below zero never sample; at or
// above one they always sample.
func Random(probability float64) Sampler {
	if probability <= 0 {
		return Never()
	}
	if probability >= 1 {
		return Always()
	}
	return Func(func(context.Context) bool {
		return rand.Float64() < probability
	})
}

// RateLimited returns a Sampler that samples at most samplesPerSecond
// occurrences per second. The counter state is safe for concurrent use.
func RateLimited(samplesPerSecond int) Sampler {
	if samplesPerSecond <= 0 {
		return Never()
	}
	return &rateLimited{limit: int64(samplesPerSecond)}
}

type rateLimited struct {
	limit  int64
	window atomic.Int64
	count  atomic.Int64
}

func (r *rateLimited) IsSampled(context.Context) bool {
	now := time.Now().Unix()
	window := r.window.Load()
	if window != now && r.window.CompareAndSwap(window, now) {
		r.count.Store(0)
	}
	return r.count.Add(1) <= r.limit
}

// Of parses a textual sampler specification. Accepted forms are "always",
// "never", "random=<probability>" and "rate-limited=<samples-per-second>".
func Of(spec string) (Sampler, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(spec), "=")
	switch name {
	case "always", "true":
		return Always(), nil
	case "never", "false":
		return Never(), nil
	case "random":
		if !hasArg {
			return nil, fmt.Errorf("sampler: %q needs a probability, e.g. random=0.05", spec)
		}
		p, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("sampler: invalid probability %q: %w", arg, err)
		}
		return Random(p), nil
	case "rate-limited":
		if !hasArg {
			return nil, fmt.Errorf("sampler: %q needs a rate, e.g. rate-limited=10", spec)
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("sampler: invalid rate %q: %w", arg, err)
		}
		return RateLimited(n), nil
	default:
		return nil, fmt.Errorf("sampler: unknown specification %q", spec)
	}
}
