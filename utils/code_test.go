package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateBorrowingCode(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	code := GenerateBorrowingCode(now)

	pattern := regexp.MustCompile(`^BRW-20260831-[0-9A-F]{8}$`)
	if !pattern.MatchString(code) {
		t.Fatalf("code %q does not match expected format", code)
	}

	if other := GenerateBorrowingCode(now); other == code {
		t.Fatalf("two codes generated at the same instant collided: %s", code)
	}
}
