package services

import (
	"errors"
	"testing"

	"silab-api/models"
)

func TestResolveExpectedStep(t *testing.T) {
	cases := []struct {
		name     string
		state    decisionState
		wantStep int
		wantErr  error
	}{
		{"no decisions yet", decisionState{}, 1, nil},
		{"one approval pending step two", decisionState{approvedCount: 1}, 2, nil},
		{"both steps approved", decisionState{approvedCount: 2}, 0, ErrStepAlreadyDecided},
		{"already rejected", decisionState{rejected: true}, 0, ErrInvalidTransition},
		{"rejected after one approval", decisionState{approvedCount: 1, rejected: true}, 0, ErrInvalidTransition},
	}
	for _, tc := range cases {
		step, err := resolveExpectedStep(tc.state)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("%s: error = %v, want %v", tc.name, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if step != tc.wantStep {
			t.Errorf("%s: step = %d, want %d", tc.name, step, tc.wantStep)
		}
	}
}

func TestCheckApprover(t *testing.T) {
	matrix := &models.ApprovalMatrix{
		Step1ApproverID: 10,
		Step2ApproverID: 20,
	}
	const requesterID = 30

	cases := []struct {
		name       string
		step       int
		approverID int
		wantErr    error
	}{
		{"step one designated approver", 1, 10, nil},
		{"step two designated approver", 2, 20, nil},
		{"step one wrong approver", 1, 20, ErrNotAuthorizedApprover},
		{"step one outsider", 1, 99, ErrNotAuthorizedApprover},
		{"step two outsider", 2, 99, ErrNotAuthorizedApprover},
		{"step one approver after their step passed", 2, 10, ErrStepAlreadyDecided},
		{"requester cannot approve", 1, requesterID, ErrNotAuthorizedApprover},
	}
	for _, tc := range cases {
		err := checkApprover(matrix, tc.step, tc.approverID, requesterID)
		if tc.wantErr == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: error = %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestCheckApproverSelfApprovalBeatsDesignation(t *testing.T) {
	// Even a correctly designated approver is refused when they are the
	// requester of the same transaction.
	matrix := &models.ApprovalMatrix{Step1ApproverID: 10, Step2ApproverID: 20}
	if err := checkApprover(matrix, 1, 10, 10); !errors.Is(err, ErrNotAuthorizedApprover) {
		t.Errorf("self approval: error = %v, want %v", err, ErrNotAuthorizedApprover)
	}
}

func TestExpectedApprover(t *testing.T) {
	matrix := &models.ApprovalMatrix{Step1ApproverID: 7, Step2ApproverID: 8}
	if got := expectedApprover(matrix, 1); got != 7 {
		t.Errorf("step 1 approver = %d, want 7", got)
	}
	if got := expectedApprover(matrix, 2); got != 8 {
		t.Errorf("step 2 approver = %d, want 8", got)
	}
}

func TestApprovedTargetStatus(t *testing.T) {
	if got := approvedTargetStatus(1); got != StatusPendingApproval {
		t.Errorf("step 1 target = %s, want %s", got, StatusPendingApproval)
	}
	if got := approvedTargetStatus(2); got != StatusApprovedWaitingHandover {
		t.Errorf("step 2 target = %s, want %s", got, StatusApprovedWaitingHandover)
	}
}
