// Package backend defines the record-submission capability the tracker
// dispatches to, and provides local implementations of it.
package backend

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Record is one outbound analytics row.
type Record map[string]any

// Method names the submission path used for a record.
type Method string

// Submission methods.
const (
	// MethodAddRecord inserts the record as-is.
	MethodAddRecord Method = "addRecord"
	// MethodTrackEvent lets the backend add its implicit td_* fields.
	MethodTrackEvent Method = "trackEvent"
)

// Receipt describes a record the backend accepted.
type Receipt struct {
	ID        string
	Database  string
	Table     string
	Method    Method
	Timestamp time.Time
}

// Client submits records with callback-based completion, the shape of
// browser analytics SDKs. Exactly one of onSuccess or onError is invoked,
// possibly on another goroutine.
type Client interface {
	// AddRecord stores record in table without implicit fields.
	AddRecord(table string, record Record, onSuccess func(Receipt), onError func(error))

	// TrackEvent stores record in table after the backend enriches it with
	// its own implicit fields.
	TrackEvent(table string, record Record, onSuccess func(Receipt), onError func(error))
}

// Sentinel errors for backends.
var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("backend client closed")

	// ErrUnknownBackend indicates Open was given an unregistered name.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrMissingCredentials indicates database or writeKey is empty.
	ErrMissingCredentials = errors.New("database and writeKey credentials are required")
)

// Await runs submit and blocks until one of its callbacks fires.
//
// A success callback yields the receipt, an error callback yields the error.
// Callbacks after the first are ignored. If ctx ends first, Await returns
// ctx.Err(); the submission itself is not cancelled.
func Await(ctx context.Context, submit func(onSuccess func(Receipt), onError func(error))) (Receipt, error) {
	type outcome struct {
		receipt Receipt
		err     error
	}
	done := make(chan outcome, 1)
	var once sync.Once

	submit(
		func(r Receipt) {
			once.Do(func() { done <- outcome{receipt: r} })
		},
		func(err error) {
			if err == nil {
				err = errors.New("backend reported failure without an error")
			}
			once.Do(func() { done <- outcome{err: err} })
		},
	)

	select {
	case out := <-done:
		return out.receipt, out.err
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	}
}

// Submit sends record through the given method of c and waits for the result.
func Submit(ctx context.Context, c Client, method Method, table string, record Record) (Receipt, error) {
	return Await(ctx, func(onSuccess func(Receipt), onError func(error)) {
		if method == MethodTrackEvent {
			c.TrackEvent(table, record, onSuccess, onError)
			return
		}
		c.AddRecord(table, record, onSuccess, onError)
	})
}
