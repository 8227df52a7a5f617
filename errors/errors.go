package errors

import (
	"context"
	ge "errors"
	"fmt"
	"os"

	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/anypb"
)

const errorFormat = "code = %s desc = %s"

var _ interface{ Unwrap() error } = (*Error)(nil)
var _ error = (*Error)(nil)

// Error is the error type produced by this module. It carries a Code and an
// optional underlying cause, and round-trips through a gRPC *status.Status.
type Error struct {
	code   Code
	err    error
	status *status.Status
}

func New(text string) *Error {
	return &Error{
		code:   Unknown,
		status: status.New(Unknown.GRPC(), text),
	}
}

func Newf(format string, a ...any) *Error {
	return FromError(fmt.Errorf(format, a...))
}

// FromError wraps err, preserving it as the cause for Is/As.
func FromError(err error) *Error {
	s, _ := status.FromError(err)
	return &Error{
		code:   Unknown,
		err:    err,
		status: s,
	}
}

// AsError reports whether err has an *Error anywhere in its chain and, if
// so, returns it.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := As(err, &e)
	return e, ok
}

func FromProto(s *spb.Status) *Error {
	st := status.FromProto(s)
	return &Error{
		code:   Code(st.Code()),
		err:    st.Err(),
		status: st,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf(errorFormat, e.Code(), e.status.Message())
}

// Unwrap allows [Is] and [As] access to the underlying error.
func (e *Error) Unwrap() error {
	if e.err != nil {
		return e.err
	}
	return e.status.Err()
}

func (e *Error) Code() Code {
	if e.code != 0 {
		return e.code
	}
	return Code(e.status.Code())
}

func (e *Error) Message() string {
	return e.status.Message()
}

func (e *Error) Details() []any {
	return e.status.Details()
}

// Proto returns the error as an spb.Status proto message.
func (e *Error) Proto() *spb.Status {
	return e.status.Proto()
}

func (e *Error) WithCode(code Code) *Error {
	e.code = code
	return e
}

// WithDetails appends the provided detail messages to the underlying status.
func (e *Error) WithDetails(details ...protoadapt.MessageV1) (*Error, error) {
	s, err := e.status.WithDetails(details...)
	if err != nil {
		return nil, err
	}
	e.status = s
	return e, nil
}

func (e *Error) DetailsAsAny() []*anypb.Any {
	details := e.status.Details()
	a := make([]*anypb.Any, 0, len(details))
	for _, detail := range details {
		if v, ok := detail.(*anypb.Any); ok {
			a = append(a, v)
		}
	}
	return a
}

// FromContextError classifies a context error, or an error wrapping one, as
// Canceled or DeadlineExceeded. Errors that already carry an *Error are
// returned unchanged; nil stays nil.
func FromContextError(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if As(err, &e) {
		return e
	}
	if Is(err, context.Canceled) {
		return FromError(err).WithCode(Canceled)
	}
	if Is(err, context.DeadlineExceeded) {
		return FromError(err).WithCode(DeadlineExceeded)
	}
	// Some dial errors surface as os.ErrDeadlineExceeded instead of
	// context.DeadlineExceeded. https://github.com/golang/go/issues/64449
	if Is(err, os.ErrDeadlineExceeded) {
		return FromError(err).WithCode(DeadlineExceeded)
	}
	return err
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return ge.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return ge.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}

func Join(errs ...error) error {
	return ge.Join(errs...)
}
