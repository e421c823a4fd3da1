package services

import "testing"

func TestCanTransitionAllowsLifecycleEdges(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusSubmitted, StatusPendingApproval},
		{StatusSubmitted, StatusRejected},
		{StatusPendingApproval, StatusApprovedWaitingHandover},
		{StatusPendingApproval, StatusRejected},
		{StatusApprovedWaitingHandover, StatusActive},
		{StatusActive, StatusPartiallyReturned},
		{StatusActive, StatusReturned},
		{StatusPartiallyReturned, StatusPartiallyReturned},
		{StatusPartiallyReturned, StatusReturned},
	}
	for _, edge := range allowed {
		if !CanTransition(edge.from, edge.to) {
			t.Errorf("expected %s -> %s to be allowed", edge.from, edge.to)
		}
	}
}

func TestCanTransitionRejectsIllegalEdges(t *testing.T) {
	denied := []struct{ from, to string }{
		{StatusSubmitted, StatusApprovedWaitingHandover},
		{StatusSubmitted, StatusActive},
		{StatusApprovedWaitingHandover, StatusRejected},
		{StatusApprovedWaitingHandover, StatusSubmitted},
		{StatusActive, StatusRejected},
		{StatusReturned, StatusActive},
		{StatusReturned, StatusPartiallyReturned},
		{StatusRejected, StatusPendingApproval},
		{StatusRejected, StatusSubmitted},
		{"unknown", StatusActive},
		{StatusActive, "unknown"},
	}
	for _, edge := range denied {
		if CanTransition(edge.from, edge.to) {
			t.Errorf("expected %s -> %s to be denied", edge.from, edge.to)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{
		StatusSubmitted, StatusPendingApproval, StatusApprovedWaitingHandover,
		StatusActive, StatusPartiallyReturned, StatusReturned, StatusRejected,
	} {
		if !IsValidStatus(s) {
			t.Errorf("expected %q to be a valid status", s)
		}
	}
	for _, s := range []string{"", "overdue", "ACTIVE", "done"} {
		if IsValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	cases := []struct {
		status           string
		open             bool
		awaitingApproval bool
		onLoan           bool
	}{
		{StatusSubmitted, true, true, false},
		{StatusPendingApproval, true, true, false},
		{StatusApprovedWaitingHandover, true, false, false},
		{StatusActive, true, false, true},
		{StatusPartiallyReturned, true, false, true},
		{StatusReturned, false, false, false},
		{StatusRejected, false, false, false},
	}
	for _, tc := range cases {
		if got := IsOpenStatus(tc.status); got != tc.open {
			t.Errorf("IsOpenStatus(%s) = %v, want %v", tc.status, got, tc.open)
		}
		if got := IsAwaitingApproval(tc.status); got != tc.awaitingApproval {
			t.Errorf("IsAwaitingApproval(%s) = %v, want %v", tc.status, got, tc.awaitingApproval)
		}
		if got := IsOnLoan(tc.status); got != tc.onLoan {
			t.Errorf("IsOnLoan(%s) = %v, want %v", tc.status, got, tc.onLoan)
		}
	}
}
