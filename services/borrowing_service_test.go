package services

import (
	"errors"
	"testing"
)

func TestResolveReturnStatusFullReturn(t *testing.T) {
	lines := []ReturnProgress{
		{BorrowingItemID: 1, Requested: 2, PreviouslyReturned: 0, Returning: 2},
		{BorrowingItemID: 2, Requested: 1, PreviouslyReturned: 0, Returning: 1},
	}
	status, err := resolveReturnStatus(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusReturned {
		t.Fatalf("status = %s, want %s", status, StatusReturned)
	}
}

func TestResolveReturnStatusPartial(t *testing.T) {
	lines := []ReturnProgress{
		{BorrowingItemID: 1, Requested: 3, PreviouslyReturned: 0, Returning: 2},
		{BorrowingItemID: 2, Requested: 1, PreviouslyReturned: 0, Returning: 1},
	}
	status, err := resolveReturnStatus(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusPartiallyReturned {
		t.Fatalf("status = %s, want %s", status, StatusPartiallyReturned)
	}
}

func TestResolveReturnStatusCompletesAcrossBatches(t *testing.T) {
	// Second batch finishes what the first batch left outstanding.
	lines := []ReturnProgress{
		{BorrowingItemID: 1, Requested: 3, PreviouslyReturned: 2, Returning: 1},
		{BorrowingItemID: 2, Requested: 1, PreviouslyReturned: 1, Returning: 0},
	}
	status, err := resolveReturnStatus(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusReturned {
		t.Fatalf("status = %s, want %s", status, StatusReturned)
	}
}

func TestResolveReturnStatusOverReturn(t *testing.T) {
	lines := []ReturnProgress{
		{BorrowingItemID: 1, Requested: 2, PreviouslyReturned: 1, Returning: 2},
	}
	if _, err := resolveReturnStatus(lines); !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want %v", err, ErrValidation)
	}
}

func TestResolveReturnStatusNegativeQuantity(t *testing.T) {
	lines := []ReturnProgress{
		{BorrowingItemID: 1, Requested: 2, PreviouslyReturned: 0, Returning: -1},
	}
	if _, err := resolveReturnStatus(lines); !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want %v", err, ErrValidation)
	}
}

func TestAggregateReturnLinesRejectsNegativeLines(t *testing.T) {
	// A positive and a negative line for the same item net out to a
	// plausible quantity; the negative line must still be refused.
	inputs := []ReturnItemInput{
		{BorrowingItemID: 1, Quantity: 3},
		{BorrowingItemID: 1, Quantity: -1},
	}
	if _, err := aggregateReturnLines(inputs); !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want %v", err, ErrValidation)
	}
}

func TestAggregateReturnLinesSumsPerItem(t *testing.T) {
	inputs := []ReturnItemInput{
		{BorrowingItemID: 1, Quantity: 2},
		{BorrowingItemID: 1, Quantity: 1},
		{BorrowingItemID: 2, Quantity: 4},
	}
	byItem, err := aggregateReturnLines(inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byItem[1] != 3 || byItem[2] != 4 {
		t.Fatalf("aggregates = %v, want map[1:3 2:4]", byItem)
	}
}

func TestResolveReturnStatusNothingToReturn(t *testing.T) {
	lines := []ReturnProgress{
		{BorrowingItemID: 1, Requested: 2, PreviouslyReturned: 1, Returning: 0},
	}
	if _, err := resolveReturnStatus(lines); !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want %v", err, ErrValidation)
	}
}
