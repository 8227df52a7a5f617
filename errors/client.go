package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedScheme signals that a target URI names a
	// serialization/protocol combination outside the factory's supported set.
	ErrUnsupportedScheme = errors.New("unsupported scheme")

	// ErrUnsupportedClientKind signals that a requested client type does not
	// belong to a registered service family, or that its family does not
	// provide all three stub flavors.
	ErrUnsupportedClientKind = errors.New("unsupported client kind")

	// ErrStubConstruction signals that the matched stub constructor itself
	// failed. The original cause is always attached.
	ErrStubConstruction = errors.New("stub construction failed")
)

// NewUnsupportedSchemeError reports a URI whose scheme is outside the
// supported set. It is returned synchronously at client construction and is
// never retried.
func NewUnsupportedSchemeError(scheme string) *Error {
	return FromError(fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)).WithCode(InvalidArgument)
}

func IsUnsupportedScheme(err error) bool {
	return Is(err, ErrUnsupportedScheme)
}

// NewUnsupportedClientKindError reports a client type that cannot be resolved
// against any registered stub family. It indicates a programming error at the
// call site, not a transient condition.
func NewUnsupportedClientKindError(clientType string) *Error {
	return FromError(fmt.Errorf("%w: %s is not a registered stub type; "+
		"register a Family providing direct, blocking and future constructors for it", ErrUnsupportedClientKind, clientType)).
		WithCode(InvalidArgument)
}

func IsUnsupportedClientKind(err error) bool {
	return Is(err, ErrUnsupportedClientKind)
}

// NewStubConstructionError wraps a failure raised while a stub constructor
// ran, keeping cause reachable through Unwrap.
func NewStubConstructionError(clientType string, cause error) *Error {
	return FromError(fmt.Errorf("%w: %s: %w", ErrStubConstruction, clientType, cause)).WithCode(Internal)
}

func IsStubConstruction(err error) bool {
	return Is(err, ErrStubConstruction)
}

// InvariantViolationf panics. It reports a broken internal invariant, such as
// failing to derive a transport URI from an already-validated target; these
// are defects, not reportable user errors, and are not recovered.
func InvariantViolationf(format string, a ...any) {
	panic(fmt.Errorf("invariant violation: "+format, a...))
}
