package services

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"silab-api/models"
)

// Notification tones, in client sort priority order.
const (
	ToneDanger  = "danger"
	ToneWarning = "warning"
	ToneInfo    = "info"
	ToneSuccess = "success"
)

var tonePriority = map[string]int{
	ToneDanger:  0,
	ToneWarning: 1,
	ToneInfo:    2,
	ToneSuccess: 3,
}

// NotificationItem is one actionable bucket in the summary feed.
type NotificationItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Count       int64  `json:"count"`
	Href        string `json:"href"`
	Tone        string `json:"tone"`
}

// NotificationSummary is the payload of GET /notifications/summary.
type NotificationSummary struct {
	TotalUnread int64              `json:"totalUnread"`
	Items       []NotificationItem `json:"items"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// summarizeFunc computes one role's items from live transactional state.
type summarizeFunc func(db *gorm.DB, userID int, labIDs []int, now time.Time) ([]NotificationItem, error)

// roleSummarizers keys each role to its own rule set, so every branch
// stays independently testable instead of one conditional blob.
var roleSummarizers = map[string]summarizeFunc{
	models.RoleInstructor: instructorItems,
	models.RoleLabStaff:   labStaffItems,
	models.RoleAdmin:      adminItems,
	models.RoleRequester:  requesterItems,
}

// approvalQueueRow carries a pending transaction together with its
// matrix approvers and explicit decision aggregates, so the "which step
// is pending" policy runs in Go rather than in nested SQL subqueries.
type approvalQueueRow struct {
	TransactionID   int    `gorm:"column:transaction_id"`
	Status          string `gorm:"column:status"`
	Step1ApproverID int    `gorm:"column:step1_approver_id"`
	Step2ApproverID int    `gorm:"column:step2_approver_id"`
	ApprovedCount   int    `gorm:"column:approved_count"`
	RejectedCount   int    `gorm:"column:rejected_count"`
	DecidedByUser   int    `gorm:"column:decided_by_user"`
}

func loadApprovalQueue(db *gorm.DB, userID int) ([]approvalQueueRow, error) {
	var rows []approvalQueueRow
	err := db.Raw(`
		SELECT t.transaction_id, t.status,
		       m.step1_approver_id, m.step2_approver_id,
		       COALESCE(SUM(CASE WHEN d.decision = 'approved' THEN 1 ELSE 0 END), 0) AS approved_count,
		       COALESCE(SUM(CASE WHEN d.decision = 'rejected' THEN 1 ELSE 0 END), 0) AS rejected_count,
		       COALESCE(SUM(CASE WHEN d.approver_id = ? THEN 1 ELSE 0 END), 0) AS decided_by_user
		FROM borrowing_transactions t
		JOIN approval_matrices m ON m.matrix_id = t.approval_matrix_id
		LEFT JOIN approval_decisions d ON d.transaction_id = t.transaction_id
		WHERE t.status IN (?, ?) AND t.deleted_at IS NULL
		GROUP BY t.transaction_id, t.status, m.step1_approver_id, m.step2_approver_id
	`, userID, StatusSubmitted, StatusPendingApproval).Scan(&rows).Error
	return rows, err
}

// countAwaitingStep applies the step rule to the loaded queue: step 1
// needs zero approvals so far, step 2 exactly one, and in both cases the
// user must be the designated approver and not have decided yet.
func countAwaitingStep(rows []approvalQueueRow, userID, step int) int64 {
	var n int64
	for _, row := range rows {
		if row.RejectedCount > 0 || row.DecidedByUser > 0 {
			continue
		}
		switch step {
		case 1:
			if row.Step1ApproverID == userID && row.ApprovedCount == 0 {
				n++
			}
		case 2:
			if row.Step2ApproverID == userID && row.ApprovedCount == 1 {
				n++
			}
		}
	}
	return n
}

func countByStatus(db *gorm.DB, statuses []string, labIDs []int) (int64, error) {
	q := db.Model(&models.BorrowingTransaction{}).
		Where("status IN ? AND deleted_at IS NULL", statuses)
	if labIDs != nil {
		q = q.Where("lab_id IN ?", emptySafe(labIDs))
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func countOverdue(db *gorm.DB, labIDs []int, requesterID int, now time.Time) (int64, error) {
	q := db.Model(&models.BorrowingTransaction{}).
		Where("status IN ? AND due_date IS NOT NULL AND due_date < ? AND deleted_at IS NULL",
			[]string{StatusActive, StatusPartiallyReturned}, now)
	if labIDs != nil {
		q = q.Where("lab_id IN ?", emptySafe(labIDs))
	}
	if requesterID > 0 {
		q = q.Where("requester_id = ?", requesterID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// emptySafe keeps an IN clause valid for users with no lab assignments.
func emptySafe(ids []int) []int {
	if len(ids) == 0 {
		return []int{-1}
	}
	return ids
}

func buildItem(id, title, descFormat string, count int64, href, tone string) *NotificationItem {
	if count <= 0 {
		return nil
	}
	return &NotificationItem{
		ID:          id,
		Title:       title,
		Description: fmt.Sprintf(descFormat, count),
		Count:       count,
		Href:        href,
		Tone:        tone,
	}
}

func appendItem(items []NotificationItem, item *NotificationItem) []NotificationItem {
	if item == nil {
		return items
	}
	return append(items, *item)
}

// sortItems orders by tone priority (danger first), then by count
// descending within the same tone.
func sortItems(items []NotificationItem) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := tonePriority[items[i].Tone], tonePriority[items[j].Tone]
		if pi != pj {
			return pi < pj
		}
		return items[i].Count > items[j].Count
	})
}

func instructorItems(db *gorm.DB, userID int, labIDs []int, now time.Time) ([]NotificationItem, error) {
	queue, err := loadApprovalQueue(db, userID)
	if err != nil {
		return nil, err
	}
	var items []NotificationItem
	items = appendItem(items, buildItem(
		"borrow-step1-pending", "Persetujuan Tahap 1",
		"%d pengajuan peminjaman menunggu persetujuan Anda",
		countAwaitingStep(queue, userID, 1),
		"/borrowing/approvals", ToneWarning))
	return items, nil
}

func labStaffItems(db *gorm.DB, userID int, labIDs []int, now time.Time) ([]NotificationItem, error) {
	queue, err := loadApprovalQueue(db, userID)
	if err != nil {
		return nil, err
	}
	var items []NotificationItem
	items = appendItem(items, buildItem(
		"borrow-step2-pending", "Persetujuan Tahap 2",
		"%d pengajuan menunggu persetujuan akhir Anda",
		countAwaitingStep(queue, userID, 2),
		"/borrowing/approvals", ToneWarning))

	handover, err := countByStatus(db, []string{StatusApprovedWaitingHandover}, labIDs)
	if err != nil {
		return nil, err
	}
	items = appendItem(items, buildItem(
		"borrow-handover-pending", "Serah Terima Alat",
		"%d transaksi disetujui menunggu serah terima",
		handover, "/borrowing/handover", ToneInfo))

	overdue, err := countOverdue(db, labIDs, 0, now)
	if err != nil {
		return nil, err
	}
	items = appendItem(items, buildItem(
		"borrow-overdue", "Peminjaman Terlambat",
		"%d peminjaman melewati jatuh tempo",
		overdue, "/borrowing/overdue", ToneDanger))
	return items, nil
}

func adminItems(db *gorm.DB, userID int, labIDs []int, now time.Time) ([]NotificationItem, error) {
	pending, err := countByStatus(db, []string{StatusSubmitted, StatusPendingApproval}, nil)
	if err != nil {
		return nil, err
	}
	handover, err := countByStatus(db, []string{StatusApprovedWaitingHandover}, nil)
	if err != nil {
		return nil, err
	}
	overdue, err := countOverdue(db, nil, 0, now)
	if err != nil {
		return nil, err
	}

	var items []NotificationItem
	items = appendItem(items, buildItem(
		"borrow-approval-pending", "Persetujuan Berjalan",
		"%d pengajuan peminjaman dalam proses persetujuan",
		pending, "/admin/borrowing", ToneWarning))
	items = appendItem(items, buildItem(
		"borrow-handover-pending", "Serah Terima Alat",
		"%d transaksi disetujui menunggu serah terima",
		handover, "/admin/borrowing?status=approved_waiting_handover", ToneInfo))
	items = appendItem(items, buildItem(
		"borrow-overdue", "Peminjaman Terlambat",
		"%d peminjaman melewati jatuh tempo",
		overdue, "/admin/borrowing?filter=overdue", ToneDanger))
	return items, nil
}

func requesterItems(db *gorm.DB, userID int, labIDs []int, now time.Time) ([]NotificationItem, error) {
	var items []NotificationItem

	var pending int64
	err := db.Model(&models.BorrowingTransaction{}).
		Where("requester_id = ? AND status IN ? AND deleted_at IS NULL", userID,
			[]string{StatusSubmitted, StatusPendingApproval, StatusApprovedWaitingHandover}).
		Count(&pending).Error
	if err != nil {
		return nil, err
	}
	items = appendItem(items, buildItem(
		"my-borrow-pending", "Pengajuan Saya",
		"%d pengajuan peminjaman Anda sedang diproses",
		pending, "/borrowing/mine", ToneWarning))

	var active int64
	err = db.Model(&models.BorrowingTransaction{}).
		Where("requester_id = ? AND status IN ? AND deleted_at IS NULL", userID,
			[]string{StatusActive, StatusPartiallyReturned}).
		Count(&active).Error
	if err != nil {
		return nil, err
	}
	items = appendItem(items, buildItem(
		"my-borrow-active", "Peminjaman Aktif",
		"%d peminjaman Anda sedang berjalan",
		active, "/borrowing/mine?status=active", ToneInfo))

	overdue, err := countOverdue(db, nil, userID, now)
	if err != nil {
		return nil, err
	}
	items = appendItem(items, buildItem(
		"my-borrow-overdue", "Peminjaman Terlambat",
		"%d peminjaman Anda melewati jatuh tempo",
		overdue, "/borrowing/mine?filter=overdue", ToneDanger))
	return items, nil
}

// AccessibleLabIDs returns the labs a user is assigned to.
func AccessibleLabIDs(db *gorm.DB, userID int) ([]int, error) {
	var ids []int
	err := db.Model(&models.LabUser{}).
		Where("user_id = ?", userID).
		Pluck("lab_id", &ids).Error
	return ids, err
}

// Summarize recomputes "what needs my attention" for a role from live
// state. Nothing is read from a stored inbox; counts are always fresh.
func Summarize(db *gorm.DB, roleCode string, userID int) (*NotificationSummary, error) {
	summarize, ok := roleSummarizers[roleCode]
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, roleCode)
	}

	labIDs, err := AccessibleLabIDs(db, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items, err := summarize(db, userID, labIDs, now)
	if err != nil {
		return nil, err
	}
	sortItems(items)

	var total int64
	for _, item := range items {
		total += item.Count
	}
	if items == nil {
		items = []NotificationItem{}
	}
	return &NotificationSummary{
		TotalUnread: total,
		Items:       items,
		GeneratedAt: now,
	}, nil
}

// MarkRead records the acknowledgement watermark. It does not suppress
// future counts: the badge reappears on the next Summarize poll while
// actionable items remain.
func MarkRead(db *gorm.DB, userID int) (time.Time, error) {
	now := time.Now()
	state := models.UserNotificationState{
		UserID:              userID,
		BorrowingLastReadAt: &now,
		UpdatedAt:           now,
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"borrowing_last_read_at", "updated_at",
		}),
	}).Create(&state).Error
	if err != nil {
		return time.Time{}, err
	}
	return now, nil
}
