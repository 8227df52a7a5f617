// Package logging decorates clients to log every call's outcome, governed
// by level mapping, independent success/failure sampling, and cause
// filtering.
package logging

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/wirebind/wirebind"
	"github.com/wirebind/wirebind/sampler"
)

// NewDecorator returns a channel decorator that logs each call once its
// outcome is known, at DEBUG for success and WARN for failure by default.
func NewDecorator(opt ...Option) wirebind.Decorator {
	o := newOptions(opt)
	return func(next wirebind.Channel) wirebind.Channel {
		success, failure := o.samplers()
		return &loggingChannel{
			next:     next,
			observer: observer{opts: o, success: success, failure: failure},
		}
	}
}

// NewTransportDecorator is NewDecorator for the low-level request/response
// client shape.
func NewTransportDecorator(opt ...Option) wirebind.TransportDecorator {
	o := newOptions(opt)
	return func(next wirebind.TransportClient) wirebind.TransportClient {
		success, failure := o.samplers()
		return &loggingTransport{
			next:     next,
			observer: observer{opts: o, success: success, failure: failure},
		}
	}
}

// observer holds the per-decorator logging policy. Its only mutable state
// lives inside the samplers, which are safe for concurrent use; everything
// else is read-only after construction.
type observer struct {
	opts    *options
	success sampler.Sampler
	failure sampler.Sampler
}

// observe runs on whatever goroutine the delegate completed on. It emits at
// most one record per call: filtered-out causes and unsampled calls produce
// nothing at all.
func (ob *observer) observe(ctx context.Context, rec *Record) {
	o := ob.opts
	if rec.Failed() {
		if o.causeFilter != nil && o.causeFilter(rec.Err) {
			return
		}
		if !ob.failure.IsSampled(ctx) {
			return
		}
	} else if !ob.success.IsSampled(ctx) {
		return
	}
	rec.Level = ob.level(rec)

	e := o.logger.WithLevel(rec.Level)
	o.formatter(e, rec)
	e.Msg(o.message)
}

func (ob *observer) level(rec *Record) zerolog.Level {
	o := ob.opts
	if o.responseLevel != nil {
		if lvl := o.responseLevel(rec); lvl != zerolog.NoLevel {
			return lvl
		}
	}
	if !rec.Failed() && o.requestLevel != nil {
		if lvl := o.requestLevel(rec); lvl != zerolog.NoLevel {
			return lvl
		}
	}
	if rec.Failed() {
		return zerolog.WarnLevel
	}
	return zerolog.DebugLevel
}

var _ wirebind.Channel = (*loggingChannel)(nil)
var _ wirebind.ChannelUnwrapper = (*loggingChannel)(nil)

type loggingChannel struct {
	next wirebind.Channel
	observer
}

// Invoke implements wirebind.Channel.
func (l *loggingChannel) Invoke(ctx context.Context, call *wirebind.Call, reply any) error {
	ctx, id := wirebind.ContextWithCallID(ctx)
	start := time.Now()
	err := l.next.Invoke(ctx, call, reply)
	l.observe(ctx, &Record{
		CallID:   id,
		Path:     call.Path(),
		Request:  call.Message,
		Response: reply,
		Err:      err,
		Start:    start,
		End:      time.Now(),
	})
	return err
}

func (l *loggingChannel) Unwrap() wirebind.Channel {
	return l.next
}

var _ wirebind.TransportClient = (*loggingTransport)(nil)

type loggingTransport struct {
	next wirebind.TransportClient
	observer
}

// RoundTrip implements wirebind.TransportClient.
func (l *loggingTransport) RoundTrip(ctx context.Context, req *wirebind.TransportRequest) (*wirebind.TransportResponse, error) {
	ctx, id := wirebind.ContextWithCallID(ctx)
	start := time.Now()
	res, err := l.next.RoundTrip(ctx, req)
	l.observe(ctx, &Record{
		CallID:   id,
		Path:     req.Path,
		Request:  req,
		Response: res,
		Err:      err,
		Start:    start,
		End:      time.Now(),
	})
	return res, err
}
