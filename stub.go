package wirebind

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/wirebind/wirebind/errors"
)

// StubFlavor classifies the calling convention of a generated client stub.
type StubFlavor int

const (
	// FlavorDirect stubs take a context per call and return the reply
	// synchronously.
	FlavorDirect StubFlavor = iota
	// FlavorBlocking stubs carry their own deadline handling and block the
	// caller until the reply arrives.
	FlavorBlocking
	// FlavorFuture stubs return a *Future that completes when the underlying
	// call does.
	FlavorFuture
)

// stubFlavors is ordered; when two flavors ever register the same client
// type, the earlier flavor wins deterministically.
var stubFlavors = [...]StubFlavor{FlavorDirect, FlavorBlocking, FlavorFuture}

func (f StubFlavor) String() string {
	switch f {
	case FlavorDirect:
		return "direct"
	case FlavorBlocking:
		return "blocking"
	case FlavorFuture:
		return "future"
	default:
		return fmt.Sprintf("StubFlavor(%d)", int(f))
	}
}

// StubConstructor binds a stub's concrete client type to the function that
// builds an instance of it from a Channel. Use NewStub to create one; the
// client type is captured statically from the constructor's return type.
type StubConstructor struct {
	clientType reflect.Type
	build      func(Channel) any
}

// NewStub wraps a typed constructor into a StubConstructor.
func NewStub[T any](build func(Channel) T) StubConstructor {
	if build == nil {
		panic("cannot create a StubConstructor from a nil build function")
	}
	return StubConstructor{
		clientType: reflect.TypeOf((*T)(nil)).Elem(),
		build:      func(ch Channel) any { return build(ch) },
	}
}

// ClientType returns the stub type the constructor produces.
func (c StubConstructor) ClientType() reflect.Type {
	return c.clientType
}

// Family declares a service family's stubs: one constructor per flavor. A
// family must provide all three flavors for its types to be resolvable.
type Family struct {
	Name  string
	Stubs map[StubFlavor]StubConstructor
}

type stubBinding struct {
	family Family
	flavor StubFlavor
	build  func(Channel) any
}

var stubRegistry = struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*stubBinding
}{byType: make(map[reflect.Type]*stubBinding)}

// RegisterFamily registers a service family's stub constructors. It should
// be called from an init function, typically in generated code. Registering
// a family with no name or with a constructor not built by NewStub panics.
func RegisterFamily(f Family) {
	if f.Name == "" {
		panic("cannot register a stub family with an empty name")
	}
	if len(f.Stubs) == 0 {
		panic(fmt.Sprintf("cannot register stub family %q with no constructors", f.Name))
	}
	stubRegistry.mu.Lock()
	defer stubRegistry.mu.Unlock()
	for _, flavor := range stubFlavors {
		ctor, ok := f.Stubs[flavor]
		if !ok {
			continue
		}
		if ctor.build == nil || ctor.clientType == nil {
			panic(fmt.Sprintf("stub family %q: %s constructor was not created with NewStub", f.Name, flavor))
		}
		if _, exists := stubRegistry.byType[ctor.clientType]; exists {
			continue
		}
		stubRegistry.byType[ctor.clientType] = &stubBinding{family: f, flavor: flavor, build: ctor.build}
	}
}

// resolveStub produces an instance of clientType bound to ch. The type must
// be registered through a Family offering all three flavors; otherwise an
// UnsupportedClientKind error is returned. A constructor failure surfaces as
// a StubConstructionError carrying the original cause.
func resolveStub(clientType reflect.Type, ch Channel) (any, error) {
	stubRegistry.mu.RLock()
	binding := stubRegistry.byType[clientType]
	stubRegistry.mu.RUnlock()
	if binding == nil {
		return nil, errors.NewUnsupportedClientKindError(typeName(clientType))
	}
	for _, flavor := range stubFlavors {
		if _, ok := binding.family.Stubs[flavor]; !ok {
			return nil, errors.FromError(fmt.Errorf("%w: family %q lacks a %s constructor",
				errors.ErrUnsupportedClientKind, binding.family.Name, flavor)).WithCode(errors.InvalidArgument)
		}
	}
	return buildStub(binding, clientType, ch)
}

func buildStub(binding *stubBinding, clientType reflect.Type, ch Channel) (stub any, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			stub = nil
			err = errors.NewStubConstructionError(typeName(clientType), cause)
		}
	}()
	return binding.build(ch), nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
