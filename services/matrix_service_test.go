package services

import (
	"errors"
	"testing"
)

func TestValidateActivation(t *testing.T) {
	cases := []struct {
		name        string
		isActive    bool
		instructors int64
		labStaff    int64
		wantErr     bool
	}{
		{"active with both roles staffed", true, 1, 1, false},
		{"active with several of each", true, 3, 2, false},
		{"active without instructors", true, 0, 2, true},
		{"active without lab staff", true, 2, 0, true},
		{"active with nobody assigned", true, 0, 0, true},
		{"inactive needs no staffing", false, 0, 0, false},
		{"inactive with staff is fine too", false, 5, 5, false},
	}
	for _, tc := range cases {
		err := validateActivation(tc.isActive, tc.instructors, tc.labStaff)
		if tc.wantErr {
			if !errors.Is(err, ErrMatrixCannotActivate) {
				t.Errorf("%s: error = %v, want %v", tc.name, err, ErrMatrixCannotActivate)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestCheckStaffingActivationOutranksAssignment(t *testing.T) {
	// A lab with zero instructor assignments cannot host an active
	// matrix. The step-1 approver is necessarily unassigned too, but the
	// staffing failure is the one that must surface.
	err := checkStaffing(true, 0, 1, false, true)
	if !errors.Is(err, ErrMatrixCannotActivate) {
		t.Fatalf("zero instructors active: error = %v, want %v", err, ErrMatrixCannotActivate)
	}

	err = checkStaffing(true, 1, 0, true, false)
	if !errors.Is(err, ErrMatrixCannotActivate) {
		t.Fatalf("zero lab staff active: error = %v, want %v", err, ErrMatrixCannotActivate)
	}
}

func TestCheckStaffingAssignment(t *testing.T) {
	// Inactive matrices skip the staffing gate but still demand both
	// approvers be assigned to the lab.
	err := checkStaffing(false, 0, 0, false, true)
	if !errors.Is(err, ErrApproverNotAssigned) {
		t.Fatalf("unassigned step 1: error = %v, want %v", err, ErrApproverNotAssigned)
	}
	err = checkStaffing(true, 1, 1, true, false)
	if !errors.Is(err, ErrApproverNotAssigned) {
		t.Fatalf("unassigned step 2: error = %v, want %v", err, ErrApproverNotAssigned)
	}
	if err := checkStaffing(true, 1, 1, true, true); err != nil {
		t.Fatalf("fully staffed: unexpected error %v", err)
	}
	if err := checkStaffing(false, 0, 0, true, true); err != nil {
		t.Fatalf("inactive assigned: unexpected error %v", err)
	}
}
