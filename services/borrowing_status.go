package services

// Borrowing transaction statuses. Overdue is never stored: it is derived
// from due_date at read time (see overdue.go).
const (
	StatusSubmitted               = "submitted"
	StatusPendingApproval         = "pending_approval"
	StatusApprovedWaitingHandover = "approved_waiting_handover"
	StatusActive                  = "active"
	StatusPartiallyReturned       = "partially_returned"
	StatusReturned                = "returned"
	StatusRejected                = "rejected"
)

// statusTransitions is the full edge set of the lifecycle:
// submitted -> pending_approval -> approved_waiting_handover -> active,
// then active/partially_returned -> partially_returned/returned. Both
// pre-handover pending states may terminate in rejected.
var statusTransitions = map[string][]string{
	StatusSubmitted:               {StatusPendingApproval, StatusRejected},
	StatusPendingApproval:         {StatusApprovedWaitingHandover, StatusRejected},
	StatusApprovedWaitingHandover: {StatusActive},
	StatusActive:                  {StatusPartiallyReturned, StatusReturned},
	StatusPartiallyReturned:       {StatusPartiallyReturned, StatusReturned},
	StatusReturned:                {},
	StatusRejected:                {},
}

// CanTransition reports whether the lifecycle allows moving from one
// status to another. Unknown statuses never transition.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a known lifecycle status.
func IsValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsOpenStatus reports whether the transaction still has an obligation
// attached: awaiting approval, awaiting handover, or out on loan.
func IsOpenStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusPendingApproval, StatusApprovedWaitingHandover,
		StatusActive, StatusPartiallyReturned:
		return true
	}
	return false
}

// IsAwaitingApproval reports whether a decision can still be recorded.
func IsAwaitingApproval(s string) bool {
	return s == StatusSubmitted || s == StatusPendingApproval
}

// IsOnLoan reports whether borrowed assets are currently in the
// requester's hands (the statuses the overdue check applies to).
func IsOnLoan(s string) bool {
	return s == StatusActive || s == StatusPartiallyReturned
}
