package util

import (
	"context"
	"errors"
	"testing"
)

func TestRetryErrWithContextStopsOnSuccess(t *testing.T) {
	calls := 0
	err := RetryErrWithContext(context.Background(), 5, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Errorf("RetryErrWithContext() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryErrWithContextReturnsLastError(t *testing.T) {
	last := errors.New("final")
	calls := 0
	err := RetryErrWithContext(context.Background(), 3, func(ctx context.Context) error {
		calls++
		if calls == 3 {
			return last
		}
		return errors.New("earlier")
	})
	if !errors.Is(err, last) {
		t.Errorf("RetryErrWithContext() error = %v, want last error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryErrWithContextNeverRetriesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryErrWithContext(ctx, 5, func(ctx context.Context) error {
		calls++
		cancel()
		return context.Canceled
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryErrWithContextDefaultsToOneTry(t *testing.T) {
	calls := 0
	err := RetryErrWithContext(context.Background(), 0, func(ctx context.Context) error {
		calls++
		return errors.New("still failing")
	})
	if err == nil {
		t.Error("RetryErrWithContext() error = nil, want failure")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want exactly 1", calls)
	}
}
