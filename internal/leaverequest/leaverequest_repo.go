package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAllByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	FindRecentByRequester(ctx context.Context, requesterID string, limit int) ([]LeaveRequest, error)
	UpdatePending(ctx context.Context, l *LeaveRequest) (int64, error)
	DeletePending(ctx context.Context, id string) (int64, error)
	MarkApproved(ctx context.Context, id string) error
	HasOverlappingPeriod(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	UsedDaysInYear(ctx context.Context, requesterID, leaveTypeID string, year int, excludeID *string) (int, error)
	CountByStatus(ctx context.Context, requesterID, status string) (int64, error)
	FindLeaveType(ctx context.Context, id string) (*LeaveTypeInfo, error)
	ListTypeUsage(ctx context.Context, requesterID string, year int) ([]TypeUsage, error)
}

// Reads go through the ORM; the writes that must share a transaction with
// the approval chain and the outbox speak SQL on the caller's *sql.Tx.
type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type dbtx interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}

func (r *repository) conn() dbtx {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		panic(err)
	}
	return sqlDB
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	query := `
        INSERT INTO leave_requests (
            id, requester_id, leave_type_id, start_date, end_date, total_days, reason, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.conn().ExecContext(
		ctx, query,
		l.ID, l.RequesterID, l.LeaveTypeID, l.StartDate, l.EndDate, l.TotalDays, l.Reason, l.Status,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindRecentByRequester(ctx context.Context, requesterID string, limit int) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

// UpdatePending rewrites the editable fields only while the request is
// still PENDING. Zero rows means a decision or withdrawal won the race.
func (r *repository) UpdatePending(ctx context.Context, l *LeaveRequest) (int64, error) {
	query := `
UPDATE leave_requests
SET
	leave_type_id = $2,
	start_date = $3,
	end_date = $4,
	total_days = $5,
	reason = $6,
	updated_at = NOW()
WHERE id = $1
	AND status = $7
	AND deleted_at IS NULL
`
	res, err := r.conn().ExecContext(
		ctx, query,
		l.ID, l.LeaveTypeID, l.StartDate, l.EndDate, l.TotalDays, l.Reason, StatusPending,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) DeletePending(ctx context.Context, id string) (int64, error) {
	query := `
UPDATE leave_requests
SET deleted_at = NOW(), updated_at = NOW()
WHERE id = $1
	AND status = $2
	AND deleted_at IS NULL
`
	res, err := r.conn().ExecContext(ctx, query, id, StatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkApproved is for chains that resolve to zero stages: a submitter at
// the top of the flow has nobody above them, so the request is approved
// at submission time.
func (r *repository) MarkApproved(ctx context.Context, id string) error {
	query := `
UPDATE leave_requests
SET status = $2, updated_at = NOW()
WHERE id = $1
	AND deleted_at IS NULL
`
	_, err := r.conn().ExecContext(ctx, query, id, StatusApproved)
	return err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("requester_id = ?", requesterID).
		Where("status = ?", StatusPending).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// UsedDaysInYear sums the inclusive day spans of the requester's
// non-rejected requests of one type within the calendar year.
func (r *repository) UsedDaysInYear(ctx context.Context, requesterID, leaveTypeID string, year int, excludeID *string) (int, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("COALESCE(SUM(total_days), 0)").
		Where("requester_id = ?", requesterID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("status <> ?", StatusRejected).
		Where("EXTRACT(YEAR FROM start_date) = ?", year)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var used int
	err := db.Scan(&used).Error
	return used, err
}

func (r *repository) CountByStatus(ctx context.Context, requesterID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("requester_id = ?", requesterID).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) FindLeaveType(ctx context.Context, id string) (*LeaveTypeInfo, error) {
	var lt LeaveTypeInfo
	err := r.db.WithContext(ctx).
		Table("leave_types").
		Select("id, name, max_days_per_year").
		Where("deleted_at IS NULL").
		Where("id = ?", id).
		Take(&lt).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) ListTypeUsage(ctx context.Context, requesterID string, year int) ([]TypeUsage, error) {
	query := `
SELECT
	lt.id AS leave_type_id,
	lt.name AS leave_type_name,
	lt.max_days_per_year,
	COUNT(lr.id) AS total_requests,
	COALESCE(SUM(lr.total_days) FILTER (WHERE lr.status <> ?), 0) AS used_days
FROM leave_types lt
LEFT JOIN leave_requests lr
	ON lr.leave_type_id = lt.id
	AND lr.requester_id = ?
	AND lr.deleted_at IS NULL
	AND EXTRACT(YEAR FROM lr.start_date) = ?
WHERE lt.deleted_at IS NULL
GROUP BY lt.id, lt.name, lt.max_days_per_year
ORDER BY lt.name ASC
`
	var usage []TypeUsage
	err := r.db.WithContext(ctx).
		Raw(query, StatusRejected, requesterID, year).
		Scan(&usage).Error
	return usage, err
}
