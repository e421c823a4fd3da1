package services

import "testing"

func TestCountAwaitingStep(t *testing.T) {
	const instructor = 10
	const labStaff = 20

	rows := []approvalQueueRow{
		// Fresh submission: instructor's step 1 turn.
		{TransactionID: 1, Status: StatusSubmitted, Step1ApproverID: instructor, Step2ApproverID: labStaff},
		// One approval in: lab staff's step 2 turn.
		{TransactionID: 2, Status: StatusPendingApproval, Step1ApproverID: instructor, Step2ApproverID: labStaff, ApprovedCount: 1},
		// This one was rejected, nobody's turn anymore.
		{TransactionID: 3, Status: StatusSubmitted, Step1ApproverID: instructor, Step2ApproverID: labStaff, RejectedCount: 1},
		// Instructor already decided this one.
		{TransactionID: 4, Status: StatusSubmitted, Step1ApproverID: instructor, Step2ApproverID: labStaff, DecidedByUser: 1},
		// Different instructor's queue.
		{TransactionID: 5, Status: StatusSubmitted, Step1ApproverID: 99, Step2ApproverID: labStaff},
	}

	if got := countAwaitingStep(rows, instructor, 1); got != 1 {
		t.Errorf("instructor step 1 count = %d, want 1", got)
	}
	if got := countAwaitingStep(rows, labStaff, 2); got != 1 {
		t.Errorf("lab staff step 2 count = %d, want 1", got)
	}
	// Lab staff has no step 1 work and the instructor no step 2 work.
	if got := countAwaitingStep(rows, labStaff, 1); got != 0 {
		t.Errorf("lab staff step 1 count = %d, want 0", got)
	}
	if got := countAwaitingStep(rows, instructor, 2); got != 0 {
		t.Errorf("instructor step 2 count = %d, want 0", got)
	}
}

func TestCountAwaitingStepSkipsDecidedByUser(t *testing.T) {
	rows := []approvalQueueRow{
		{TransactionID: 1, Step1ApproverID: 10, Step2ApproverID: 10, ApprovedCount: 1, DecidedByUser: 1},
	}
	// Same person listed for both steps already decided once; their
	// queue must not show the transaction again.
	if got := countAwaitingStep(rows, 10, 2); got != 0 {
		t.Errorf("decided-by-user count = %d, want 0", got)
	}
}

func TestBuildItemSkipsZeroCounts(t *testing.T) {
	if item := buildItem("x", "Judul", "%d hal", 0, "/x", ToneInfo); item != nil {
		t.Fatalf("expected nil item for zero count, got %#v", item)
	}
	if item := buildItem("x", "Judul", "%d hal", -3, "/x", ToneInfo); item != nil {
		t.Fatalf("expected nil item for negative count, got %#v", item)
	}

	item := buildItem("borrow-overdue", "Terlambat", "%d peminjaman terlambat", 4, "/borrowing/overdue", ToneDanger)
	if item == nil {
		t.Fatal("expected item for positive count")
	}
	if item.Count != 4 || item.Tone != ToneDanger {
		t.Fatalf("unexpected item %#v", item)
	}
	if item.Description != "4 peminjaman terlambat" {
		t.Fatalf("description = %q", item.Description)
	}
}

func TestAppendItemIgnoresNil(t *testing.T) {
	var items []NotificationItem
	items = appendItem(items, nil)
	if len(items) != 0 {
		t.Fatalf("expected empty slice, got %d items", len(items))
	}
	items = appendItem(items, &NotificationItem{ID: "a", Count: 1})
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("unexpected items %#v", items)
	}
}

func TestSortItemsByToneThenCount(t *testing.T) {
	items := []NotificationItem{
		{ID: "info-small", Tone: ToneInfo, Count: 2},
		{ID: "warning-big", Tone: ToneWarning, Count: 9},
		{ID: "danger", Tone: ToneDanger, Count: 1},
		{ID: "warning-small", Tone: ToneWarning, Count: 3},
		{ID: "success", Tone: ToneSuccess, Count: 50},
	}
	sortItems(items)

	want := []string{"danger", "warning-big", "warning-small", "info-small", "success"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d = %s, want %s (order %#v)", i, items[i].ID, id, items)
		}
	}
}

func TestSortItemsStableWithinEqualKeys(t *testing.T) {
	items := []NotificationItem{
		{ID: "first", Tone: ToneWarning, Count: 5},
		{ID: "second", Tone: ToneWarning, Count: 5},
	}
	sortItems(items)
	if items[0].ID != "first" || items[1].ID != "second" {
		t.Fatalf("equal items reordered: %#v", items)
	}
}

func TestEmptySafe(t *testing.T) {
	got := emptySafe(nil)
	if len(got) != 1 || got[0] != -1 {
		t.Fatalf("emptySafe(nil) = %v, want [-1]", got)
	}
	got = emptySafe([]int{})
	if len(got) != 1 || got[0] != -1 {
		t.Fatalf("emptySafe(empty) = %v, want [-1]", got)
	}
	got = emptySafe([]int{3, 4})
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("emptySafe kept = %v, want [3 4]", got)
	}
}
