package wirebind

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wirebind/wirebind/errors"
)

type fakeChannel struct{}

func (fakeChannel) Invoke(context.Context, *Call, any) error { return nil }

type greetClient struct{ ch Channel }
type greetBlockingClient struct{ ch Channel }
type greetFutureClient struct{ ch Channel }

func init() {
	RegisterFamily(Family{
		Name: "test.GreetService",
		Stubs: map[StubFlavor]StubConstructor{
			FlavorDirect:   NewStub(func(ch Channel) *greetClient { return &greetClient{ch: ch} }),
			FlavorBlocking: NewStub(func(ch Channel) *greetBlockingClient { return &greetBlockingClient{ch: ch} }),
			FlavorFuture:   NewStub(func(ch Channel) *greetFutureClient { return &greetFutureClient{ch: ch} }),
		},
	})
}

func TestResolveStubBindsChannel(t *testing.T) {
	ch := fakeChannel{}

	tests := []struct {
		name       string
		clientType reflect.Type
		channelOf  func(stub any) Channel
	}{
		{
			name:       "direct",
			clientType: reflect.TypeOf((*greetClient)(nil)),
			channelOf:  func(stub any) Channel { return stub.(*greetClient).ch },
		},
		{
			name:       "blocking",
			clientType: reflect.TypeOf((*greetBlockingClient)(nil)),
			channelOf:  func(stub any) Channel { return stub.(*greetBlockingClient).ch },
		},
		{
			name:       "future",
			clientType: reflect.TypeOf((*greetFutureClient)(nil)),
			channelOf:  func(stub any) Channel { return stub.(*greetFutureClient).ch },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub, err := resolveStub(tc.clientType, ch)
			require.NoError(t, err)
			require.IsType(t, reflect.Zero(tc.clientType).Interface(), stub)
			assert.Equal(t, Channel(ch), tc.channelOf(stub))
		})
	}
}

type lonelyClient struct{ ch Channel }
type lonelyBlockingClient struct{ ch Channel }

func TestResolveStubIncompleteFamily(t *testing.T) {
	RegisterFamily(Family{
		Name: "test.LonelyService",
		Stubs: map[StubFlavor]StubConstructor{
			FlavorDirect:   NewStub(func(ch Channel) *lonelyClient { return &lonelyClient{ch: ch} }),
			FlavorBlocking: NewStub(func(ch Channel) *lonelyBlockingClient { return &lonelyBlockingClient{ch: ch} }),
		},
	})

	_, err := resolveStub(reflect.TypeOf((*lonelyClient)(nil)), fakeChannel{})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedClientKind(err))
	assert.ErrorContains(t, err, "future")
}

func TestResolveStubUnregisteredType(t *testing.T) {
	type notAStub struct{}

	_, err := resolveStub(reflect.TypeOf((*notAStub)(nil)), fakeChannel{})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedClientKind(err))
}

type faultyClient struct{}
type faultyBlockingClient struct{}
type faultyFutureClient struct{}

var errBoom = errors.New("boom")

func TestResolveStubConstructorFailure(t *testing.T) {
	RegisterFamily(Family{
		Name: "test.FaultyService",
		Stubs: map[StubFlavor]StubConstructor{
			FlavorDirect:   NewStub(func(Channel) *faultyClient { panic(errBoom) }),
			FlavorBlocking: NewStub(func(Channel) *faultyBlockingClient { return nil }),
			FlavorFuture:   NewStub(func(Channel) *faultyFutureClient { return nil }),
		},
	})

	_, err := resolveStub(reflect.TypeOf((*faultyClient)(nil)), fakeChannel{})
	require.Error(t, err)
	assert.True(t, errors.IsStubConstruction(err))
	assert.ErrorIs(t, err, errBoom)
}

type ambiguousClient struct{ flavor StubFlavor }
type ambiguousFutureClient struct{}

func TestResolveStubTieBreakPrefersDirect(t *testing.T) {
	// Two flavors sharing one client type cannot normally happen; if they
	// do, the direct constructor must win.
	RegisterFamily(Family{
		Name: "test.AmbiguousService",
		Stubs: map[StubFlavor]StubConstructor{
			FlavorDirect:   NewStub(func(Channel) *ambiguousClient { return &ambiguousClient{flavor: FlavorDirect} }),
			FlavorBlocking: NewStub(func(Channel) *ambiguousClient { return &ambiguousClient{flavor: FlavorBlocking} }),
			FlavorFuture:   NewStub(func(Channel) *ambiguousFutureClient { return &ambiguousFutureClient{} }),
		},
	})

	stub, err := resolveStub(reflect.TypeOf((*ambiguousClient)(nil)), fakeChannel{})
	require.NoError(t, err)
	assert.Equal(t, FlavorDirect, stub.(*ambiguousClient).flavor)
}

func TestRegisterFamilyValidation(t *testing.T) {
	assert.Panics(t, func() { RegisterFamily(Family{}) })
	assert.Panics(t, func() { RegisterFamily(Family{Name: "test.Empty"}) })
	assert.Panics(t, func() {
		RegisterFamily(Family{
			Name:  "test.BadCtor",
			Stubs: map[StubFlavor]StubConstructor{FlavorDirect: {}},
		})
	})
}

func TestStubFlavorString(t *testing.T) {
	assert.Equal(t, "direct", FlavorDirect.String())
	assert.Equal(t, "blocking", FlavorBlocking.String())
	assert.Equal(t, "future", FlavorFuture.String())
}
