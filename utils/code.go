package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBorrowingCode builds the human-facing transaction code, e.g.
// BRW-20260831-1A2B3C4D.
func GenerateBorrowingCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("BRW-%s-%s", now.Format("20060102"), suffix)
}
