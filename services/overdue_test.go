package services

import (
	"testing"
	"time"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Hour)
	longPast := now.Add(-72 * time.Hour)

	cases := []struct {
		name    string
		status  string
		dueDate *time.Time
		want    bool
	}{
		{"active one second late", StatusActive, &past, true},
		{"active well past due", StatusActive, &longPast, true},
		{"partial return still overdue", StatusPartiallyReturned, &past, true},
		{"active before due date", StatusActive, &future, false},
		{"active due exactly now", StatusActive, &now, false},
		{"active with no due date", StatusActive, nil, false},
		{"returned never overdue", StatusReturned, &longPast, false},
		{"rejected never overdue", StatusRejected, &longPast, false},
		{"submitted never overdue", StatusSubmitted, &longPast, false},
		{"waiting handover never overdue", StatusApprovedWaitingHandover, &longPast, false},
	}
	for _, tc := range cases {
		if got := IsOverdue(tc.status, tc.dueDate, now); got != tc.want {
			t.Errorf("%s: IsOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	oneSecond := now.Add(-time.Second)
	if got := DaysOverdue(StatusActive, &oneSecond, now); got != 1 {
		t.Errorf("one second late: DaysOverdue = %d, want 1", got)
	}

	halfDay := now.Add(-12 * time.Hour)
	if got := DaysOverdue(StatusActive, &halfDay, now); got != 1 {
		t.Errorf("half day late: DaysOverdue = %d, want 1", got)
	}

	threeDays := now.Add(-73 * time.Hour)
	if got := DaysOverdue(StatusPartiallyReturned, &threeDays, now); got != 3 {
		t.Errorf("73 hours late: DaysOverdue = %d, want 3", got)
	}

	longPast := now.Add(-240 * time.Hour)
	if got := DaysOverdue(StatusReturned, &longPast, now); got != 0 {
		t.Errorf("returned: DaysOverdue = %d, want 0", got)
	}

	future := now.Add(time.Hour)
	if got := DaysOverdue(StatusActive, &future, now); got != 0 {
		t.Errorf("not yet due: DaysOverdue = %d, want 0", got)
	}

	if got := DaysOverdue(StatusActive, nil, now); got != 0 {
		t.Errorf("nil due date: DaysOverdue = %d, want 0", got)
	}
}
