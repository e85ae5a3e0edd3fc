package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// ============================================================
// Do Tests
// ============================================================

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	}, Config{MaxAttempts: 5, Interval: time.Millisecond})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, Config{MaxAttempts: 5, Interval: time.Millisecond})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errors.New("always fails")
	}, Config{MaxAttempts: 10, Interval: time.Millisecond})

	if calls != 10 {
		t.Errorf("expected exactly 10 attempts, got %d", calls)
	}
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

func TestDo_IntervalSpacing(t *testing.T) {
	const interval = 20 * time.Millisecond
	var timestamps []time.Time

	_ = Do(context.Background(), func() error {
		timestamps = append(timestamps, time.Now())
		return errors.New("fail")
	}, Config{MaxAttempts: 3, Interval: interval})

	if len(timestamps) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(timestamps))
	}
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		if gap < interval {
			t.Errorf("attempts %d and %d spaced %v apart, want >= %v", i-1, i, gap, interval)
		}
	}
}

func TestDo_RetryIfStopsEarly(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0

	err := Do(context.Background(), func() error {
		calls++
		return permanent
	}, Config{
		MaxAttempts: 5,
		Interval:    time.Millisecond,
		RetryIf:     func(err error) bool { return !errors.Is(err, permanent) },
	})

	if calls != 1 {
		t.Errorf("expected 1 call for permanent error, got %d", calls)
	}
	if !errors.Is(err, permanent) {
		t.Errorf("expected permanent error, got %v", err)
	}
	if errors.Is(err, ErrExhausted) {
		t.Error("permanent error must not be reported as exhaustion")
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, func() error {
		calls++
		return errors.New("fail")
	}, Config{MaxAttempts: 100, Interval: 10 * time.Millisecond})

	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if calls >= 100 {
		t.Errorf("cancellation did not stop retries, %d calls", calls)
	}
}

func TestDo_OnRetryCallback(t *testing.T) {
	var attempts []int

	_ = Do(context.Background(), func() error {
		return errors.New("fail")
	}, Config{
		MaxAttempts: 3,
		Interval:    time.Millisecond,
		OnRetry:     func(attempt int, err error) { attempts = append(attempts, attempt) },
	})

	// Callback вызывается перед повторами, не перед первой попыткой
	if len(attempts) != 2 {
		t.Fatalf("expected 2 callbacks, got %d", len(attempts))
	}
	if attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("unexpected attempt numbers: %v", attempts)
	}
}

func TestDo_ZeroMaxAttempts(t *testing.T) {
	calls := 0
	_ = Do(context.Background(), func() error {
		calls++
		return errors.New("fail")
	}, Config{MaxAttempts: 0, Interval: 0})

	if calls != 1 {
		t.Errorf("MaxAttempts=0 should mean a single attempt, got %d", calls)
	}
}

// ============================================================
// DoWithResult / UntilPresent Tests
// ============================================================

func TestDoWithResult(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("not yet")
		}
		return "done", nil
	}, Config{MaxAttempts: 3, Interval: time.Millisecond})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "done" {
		t.Errorf("expected %q, got %q", "done", result)
	}
}

func TestUntilPresent_ValueAppears(t *testing.T) {
	calls := 0
	result, err := UntilPresent(context.Background(), func(ctx context.Context) (string, bool, error) {
		calls++
		if calls < 4 {
			return "", false, nil
		}
		return `"sent"`, true, nil
	}, Config{MaxAttempts: 10, Interval: time.Millisecond})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != `"sent"` {
		t.Errorf("expected %q, got %q", `"sent"`, result)
	}
	if calls != 4 {
		t.Errorf("expected 4 lookups, got %d", calls)
	}
}

func TestUntilPresent_NeverAppears(t *testing.T) {
	calls := 0
	_, err := UntilPresent(context.Background(), func(ctx context.Context) (string, bool, error) {
		calls++
		return "", false, nil
	}, Config{MaxAttempts: 10, Interval: time.Millisecond})

	if calls != 10 {
		t.Errorf("expected exactly 10 lookups, got %d", calls)
	}
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

func TestUntilPresent_LookupErrorsKeepPolling(t *testing.T) {
	calls := 0
	result, err := UntilPresent(context.Background(), func(ctx context.Context) (string, bool, error) {
		calls++
		if calls < 3 {
			return "", false, errors.New("store unavailable")
		}
		return "value", true, nil
	}, Config{MaxAttempts: 5, Interval: time.Millisecond})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "value" {
		t.Errorf("expected %q, got %q", "value", result)
	}
}

func TestPollConfig(t *testing.T) {
	cfg := PollConfig()
	if cfg.MaxAttempts != 10 {
		t.Errorf("expected 10 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.Interval != 100*time.Millisecond {
		t.Errorf("expected 100ms interval, got %v", cfg.Interval)
	}
}
