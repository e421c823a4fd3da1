package services

import (
	"context"
	"testing"
	"time"
)

func TestAttemptKeyNormalizes(t *testing.T) {
	if got := AttemptKey("  User@Example.COM "); got != "login:attempts:user@example.com" {
		t.Fatalf("AttemptKey = %q", got)
	}
}

func TestMemoryStoreBlocksAfterLimit(t *testing.T) {
	store := NewAttemptStore(nil, time.Minute)
	ctx := context.Background()
	key := AttemptKey("mahasiswa@kampus.ac.id")

	for i := 1; i <= loginAttemptLimit; i++ {
		blocked, err := store.Blocked(ctx, key)
		if err != nil {
			t.Fatalf("Blocked: %v", err)
		}
		if blocked {
			t.Fatalf("blocked after %d failures, limit is %d", i-1, loginAttemptLimit)
		}
		if _, err := store.Fail(ctx, key); err != nil {
			t.Fatalf("Fail: %v", err)
		}
	}

	blocked, err := store.Blocked(ctx, key)
	if err != nil {
		t.Fatalf("Blocked: %v", err)
	}
	if !blocked {
		t.Fatalf("expected block after %d failures", loginAttemptLimit)
	}
}

func TestMemoryStoreResetClearsCounter(t *testing.T) {
	store := NewAttemptStore(nil, time.Minute)
	ctx := context.Background()
	key := AttemptKey("dosen@kampus.ac.id")

	for i := 0; i < loginAttemptLimit; i++ {
		if _, err := store.Fail(ctx, key); err != nil {
			t.Fatalf("Fail: %v", err)
		}
	}
	if err := store.Reset(ctx, key); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	blocked, err := store.Blocked(ctx, key)
	if err != nil {
		t.Fatalf("Blocked: %v", err)
	}
	if blocked {
		t.Fatal("expected counter cleared after reset")
	}
}

func TestMemoryStoreWindowExpiry(t *testing.T) {
	store := &memoryAttemptStore{
		window:  10 * time.Millisecond,
		entries: make(map[string]*attemptEntry),
	}
	ctx := context.Background()
	key := AttemptKey("laboran@kampus.ac.id")

	for i := 0; i < loginAttemptLimit; i++ {
		if _, err := store.Fail(ctx, key); err != nil {
			t.Fatalf("Fail: %v", err)
		}
	}
	blocked, _ := store.Blocked(ctx, key)
	if !blocked {
		t.Fatal("expected block inside window")
	}

	time.Sleep(20 * time.Millisecond)

	blocked, _ = store.Blocked(ctx, key)
	if blocked {
		t.Fatal("expected block lifted after window expiry")
	}

	// First failure after expiry starts a fresh window.
	count, err := store.Fail(ctx, key)
	if err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after expiry = %d, want 1", count)
	}
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	store := NewAttemptStore(nil, time.Minute)
	ctx := context.Background()

	for i := 0; i < loginAttemptLimit; i++ {
		if _, err := store.Fail(ctx, AttemptKey("a@kampus.ac.id")); err != nil {
			t.Fatalf("Fail: %v", err)
		}
	}

	blocked, _ := store.Blocked(ctx, AttemptKey("b@kampus.ac.id"))
	if blocked {
		t.Fatal("unrelated key must not be blocked")
	}
}
