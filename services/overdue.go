package services

import "time"

// IsOverdue reports whether an open loan has passed its due date. Only
// statuses with assets still in hand qualify; returned and rejected
// transactions are never overdue regardless of due_date.
func IsOverdue(status string, dueDate *time.Time, now time.Time) bool {
	if !IsOnLoan(status) {
		return false
	}
	if dueDate == nil {
		return false
	}
	return dueDate.Before(now)
}

// DaysOverdue returns how many days a loan is past due, minimum 1. A
// loan one second late already counts as one day. Returns 0 when the
// transaction is not overdue at all.
func DaysOverdue(status string, dueDate *time.Time, now time.Time) int {
	if !IsOverdue(status, dueDate, now) {
		return 0
	}
	days := int(now.Sub(*dueDate) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return days
}
