package errors_test

import (
	"context"
	ge "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/errors"
)

func TestNewCarriesUnknownCode(t *testing.T) {
	err := errors.New("abc")
	assert.Equal(t, errors.Unknown, err.Code())
	assert.Equal(t, "abc", err.Message())
	assert.Equal(t, `code = Unknown desc = abc`, err.Error())
}

func TestWithCode(t *testing.T) {
	err := errors.New("missing").WithCode(errors.NotFound)
	assert.Equal(t, errors.NotFound, err.Code())
	assert.Contains(t, err.Error(), "NotFound")
}

func TestFromErrorPreservesCause(t *testing.T) {
	cause := ge.New("root cause")
	err := errors.FromError(fmt.Errorf("wrapped: %w", cause))
	assert.True(t, errors.Is(err, cause))
}

func TestAsError(t *testing.T) {
	inner := errors.New("inner").WithCode(errors.Internal)
	wrapped := fmt.Errorf("outer: %w", inner)

	got, ok := errors.AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.Internal, got.Code())

	_, ok = errors.AsError(ge.New("plain"))
	assert.False(t, ok)
}

func TestProtoRoundTrip(t *testing.T) {
	err := errors.New("gone").WithCode(errors.NotFound)
	restored := errors.FromProto(err.Proto())
	assert.Equal(t, err.Message(), restored.Message())
}

func TestFromContextError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.Code
	}{
		{name: "canceled", err: context.Canceled, code: errors.Canceled},
		{name: "deadline", err: context.DeadlineExceeded, code: errors.DeadlineExceeded},
		{name: "os deadline", err: os.ErrDeadlineExceeded, code: errors.DeadlineExceeded},
		{name: "wrapped canceled", err: fmt.Errorf("dial: %w", context.Canceled), code: errors.Canceled},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := errors.FromContextError(tc.err)
			werr, ok := errors.AsError(got)
			require.True(t, ok)
			assert.Equal(t, tc.code, werr.Code())
			assert.True(t, errors.Is(got, tc.err))
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, errors.FromContextError(nil))
	})

	t.Run("unrelated error passes through", func(t *testing.T) {
		plain := ge.New("boom")
		assert.Equal(t, plain, errors.FromContextError(plain))
	})

	t.Run("already classified is unchanged", func(t *testing.T) {
		classified := errors.New("late").WithCode(errors.Unavailable)
		got := errors.FromContextError(classified)
		werr, ok := errors.AsError(got)
		require.True(t, ok)
		assert.Equal(t, errors.Unavailable, werr.Code())
	})
}

func TestClientErrorTaxonomy(t *testing.T) {
	scheme := errors.NewUnsupportedSchemeError("ftp")
	assert.True(t, errors.IsUnsupportedScheme(scheme))
	assert.False(t, errors.IsUnsupportedClientKind(scheme))
	assert.Equal(t, errors.InvalidArgument, scheme.Code())
	assert.Contains(t, scheme.Error(), "ftp")

	kind := errors.NewUnsupportedClientKindError("*foo.Client")
	assert.True(t, errors.IsUnsupportedClientKind(kind))
	assert.Equal(t, errors.InvalidArgument, kind.Code())

	cause := ge.New("ctor blew up")
	stub := errors.NewStubConstructionError("*foo.Client", cause)
	assert.True(t, errors.IsStubConstruction(stub))
	assert.True(t, errors.Is(stub, cause))
	assert.Equal(t, errors.Internal, stub.Code())
}

func TestInvariantViolationPanics(t *testing.T) {
	assert.Panics(t, func() {
		errors.InvariantViolationf("derived URI %q is invalid", ":bad:")
	})
}

func TestUnwrap(t *testing.T) {
	cause := ge.New("cause")
	assert.Equal(t, cause, errors.Unwrap(fmt.Errorf("w: %w", cause)))
	assert.Nil(t, errors.Unwrap(ge.New("flat")))
}

func TestJoin(t *testing.T) {
	a, b := ge.New("a"), ge.New("b")
	joined := errors.Join(a, b)
	assert.True(t, errors.Is(joined, a))
	assert.True(t, errors.Is(joined, b))
}
