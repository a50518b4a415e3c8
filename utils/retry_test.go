package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0
	err := Retry(NewLogger(), "op", 3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry returned error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d; want 3", attempts)
	}
}

func TestRetryExhausted(t *testing.T) {
	attempts := 0
	err := Retry(NewLogger(), "op", 2, time.Millisecond, func() error {
		attempts++
		return errors.New("permanent")
	})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 2 {
		t.Errorf("attempts = %d; want 2", attempts)
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("error should carry attempt context: %v", err)
	}
}

func TestRetryFirstTry(t *testing.T) {
	attempts := 0
	if err := Retry(NewLogger(), "op", 5, time.Millisecond, func() error {
		attempts++
		return nil
	}); err != nil {
		t.Fatalf("Retry returned error: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d; want 1", attempts)
	}
}
