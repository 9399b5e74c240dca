package backend_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/randalmurphal/tdtrack/pkg/tdtrack/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAwait_Success verifies the success callback resolves the result.
func TestAwait_Success(t *testing.T) {
	receipt, err := backend.Await(context.Background(), func(onSuccess func(backend.Receipt), _ func(error)) {
		go onSuccess(backend.Receipt{ID: "r-1"})
	})

	require.NoError(t, err)
	assert.Equal(t, "r-1", receipt.ID)
}

// TestAwait_Error verifies the error callback rejects the result.
func TestAwait_Error(t *testing.T) {
	want := errors.New("write key rejected")
	_, err := backend.Await(context.Background(), func(_ func(backend.Receipt), onError func(error)) {
		onError(want)
	})

	assert.ErrorIs(t, err, want)
}

// TestAwait_NilError verifies a nil error callback still fails the call.
func TestAwait_NilError(t *testing.T) {
	_, err := backend.Await(context.Background(), func(_ func(backend.Receipt), onError func(error)) {
		onError(nil)
	})

	assert.Error(t, err)
}

// TestAwait_FirstCallbackWins verifies later callbacks are ignored.
func TestAwait_FirstCallbackWins(t *testing.T) {
	receipt, err := backend.Await(context.Background(), func(onSuccess func(backend.Receipt), onError func(error)) {
		onSuccess(backend.Receipt{ID: "first"})
		onError(errors.New("late"))
		onSuccess(backend.Receipt{ID: "second"})
	})

	require.NoError(t, err)
	assert.Equal(t, "first", receipt.ID)
}

// TestAwait_ContextDone verifies the waiter gives up when ctx ends.
func TestAwait_ContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := backend.Await(ctx, func(_ func(backend.Receipt), _ func(error)) {})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestSubmit_RoutesByMethod verifies Submit picks the client method.
func TestSubmit_RoutesByMethod(t *testing.T) {
	client := backend.NewMemoryClient("web")
	ctx := context.Background()

	r1, err := backend.Submit(ctx, client, backend.MethodAddRecord, "pageview", backend.Record{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, backend.MethodAddRecord, r1.Method)

	r2, err := backend.Submit(ctx, client, backend.MethodTrackEvent, "pageview", backend.Record{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, backend.MethodTrackEvent, r2.Method)

	recs := client.Records("pageview")
	require.Len(t, recs, 2)
	assert.NotContains(t, recs[0].Record, "td_version")
	assert.Equal(t, backend.SDKVersion, recs[1].Record["td_version"])
}
