package services

import "errors"

// Workflow errors. Controllers match these with errors.Is and translate
// them to HTTP codes and user-facing messages; anything else is treated
// as a persistence failure and surfaced generically.
var (
	ErrValidation            = errors.New("validation failed")
	ErrTransactionNotFound   = errors.New("borrowing transaction not found")
	ErrMatrixNotFound        = errors.New("approval matrix not found")
	ErrInvalidApprover       = errors.New("approver does not exist or holds the wrong role")
	ErrApproverNotAssigned   = errors.New("approver is not assigned to the lab")
	ErrMatrixCannotActivate  = errors.New("lab lacks the assignments required to activate the matrix")
	ErrNotAuthorizedApprover = errors.New("user is not the designated approver for the pending step")
	ErrDuplicateDecision     = errors.New("approver already decided on this transaction")
	ErrStepAlreadyDecided    = errors.New("approval step is already satisfied")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrUnitUnavailable       = errors.New("equipment unit is not available for handover")
)
