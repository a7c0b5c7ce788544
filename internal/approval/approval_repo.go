package approval

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateSteps(ctx context.Context, steps []ApprovalStep) error
	FindByID(ctx context.Context, id string) (*ApprovalStep, error)
	ListByRequest(ctx context.Context, leaveRequestID string) ([]StepWithApprover, error)
	ListPendingForApprover(ctx context.Context, approverID string) ([]PendingApproval, error)
	CountBlockingSteps(ctx context.Context, leaveRequestID string, stepOrder int) (int64, error)
	CountPendingSteps(ctx context.Context, leaveRequestID string) (int64, error)
	FindNextPendingStep(ctx context.Context, leaveRequestID string) (*ApprovalStep, error)
	MarkDecided(ctx context.Context, id, decision string, remarks *string, decidedAt time.Time) (int64, error)
	FindRequestMeta(ctx context.Context, leaveRequestID string) (status string, requesterID string, err error)
	UpdateRequestStatus(ctx context.Context, leaveRequestID, fromStatus, toStatus string) (int64, error)
	DeleteByRequest(ctx context.Context, leaveRequestID string) error
}

// The repository speaks SQL directly instead of going through the ORM so
// that every statement issued during a decision runs on the caller's
// transaction. Two racing decide calls on the same step must not both see
// a PENDING row.
type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type dbtx interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func (r *repository) conn() dbtx {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) CreateSteps(ctx context.Context, steps []ApprovalStep) error {
	query := `
        INSERT INTO approval_steps (
            id, leave_request_id, approver_id, step_order, status
        ) VALUES ($1, $2, $3, $4, $5)
    `

	conn := r.conn()
	for _, step := range steps {
		if _, err := conn.ExecContext(
			ctx, query,
			step.ID, step.LeaveRequestID, step.ApproverID, step.StepOrder, step.Status,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*ApprovalStep, error) {
	query := `
SELECT id, leave_request_id, approver_id, step_order, status, remarks, decided_at, created_at, updated_at
FROM approval_steps
WHERE id = $1
`
	var step ApprovalStep
	err := r.conn().QueryRowContext(ctx, query, id).Scan(
		&step.ID,
		&step.LeaveRequestID,
		&step.ApproverID,
		&step.StepOrder,
		&step.Status,
		&step.Remarks,
		&step.DecidedAt,
		&step.CreatedAt,
		&step.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *repository) ListByRequest(ctx context.Context, leaveRequestID string) ([]StepWithApprover, error) {
	query := `
SELECT
	s.id, s.leave_request_id, s.approver_id, s.step_order, s.status,
	s.remarks, s.decided_at, s.created_at, s.updated_at,
	u.name, ro.name
FROM approval_steps s
JOIN users u ON u.id = s.approver_id
JOIN roles ro ON ro.id = u.role_id
WHERE s.leave_request_id = $1
ORDER BY s.step_order ASC
`
	rows, err := r.conn().QueryContext(ctx, query, leaveRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []StepWithApprover
	for rows.Next() {
		var s StepWithApprover
		if err := rows.Scan(
			&s.ID,
			&s.LeaveRequestID,
			&s.ApproverID,
			&s.StepOrder,
			&s.Status,
			&s.Remarks,
			&s.DecidedAt,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.ApproverName,
			&s.ApproverRole,
		); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

// ListPendingForApprover returns only steps whose gating predicate holds:
// every lower-order step for the same request is APPROVED. The pending
// inbox and the decide endpoint therefore agree on what is actionable.
func (r *repository) ListPendingForApprover(ctx context.Context, approverID string) ([]PendingApproval, error) {
	query := `
SELECT
	s.id, s.step_order, s.leave_request_id,
	lr.requester_id, u.name, u.nik, lt.name,
	lr.start_date, lr.end_date, lr.total_days, lr.reason, lr.created_at
FROM approval_steps s
JOIN leave_requests lr ON lr.id = s.leave_request_id
JOIN users u ON u.id = lr.requester_id
JOIN leave_types lt ON lt.id = lr.leave_type_id
WHERE s.approver_id = $1
	AND s.status = $2
	AND lr.status = $3
	AND NOT EXISTS (
		SELECT 1 FROM approval_steps p
		WHERE p.leave_request_id = s.leave_request_id
			AND p.step_order < s.step_order
			AND p.status <> $4
	)
ORDER BY lr.created_at DESC
`
	rows, err := r.conn().QueryContext(ctx, query, approverID, StatusPending, StatusPending, StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []PendingApproval
	for rows.Next() {
		var p PendingApproval
		if err := rows.Scan(
			&p.StepID,
			&p.StepOrder,
			&p.LeaveRequestID,
			&p.RequesterID,
			&p.RequesterName,
			&p.RequesterNIK,
			&p.LeaveTypeName,
			&p.StartDate,
			&p.EndDate,
			&p.TotalDays,
			&p.Reason,
			&p.RequestCreatedAt,
		); err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

func (r *repository) CountBlockingSteps(ctx context.Context, leaveRequestID string, stepOrder int) (int64, error) {
	query := `
SELECT COUNT(*)
FROM approval_steps
WHERE leave_request_id = $1
	AND step_order < $2
	AND status <> $3
`
	var count int64
	err := r.conn().QueryRowContext(ctx, query, leaveRequestID, stepOrder, StatusApproved).Scan(&count)
	return count, err
}

func (r *repository) CountPendingSteps(ctx context.Context, leaveRequestID string) (int64, error) {
	query := `
SELECT COUNT(*)
FROM approval_steps
WHERE leave_request_id = $1
	AND status = $2
`
	var count int64
	err := r.conn().QueryRowContext(ctx, query, leaveRequestID, StatusPending).Scan(&count)
	return count, err
}

func (r *repository) FindNextPendingStep(ctx context.Context, leaveRequestID string) (*ApprovalStep, error) {
	query := `
SELECT id, leave_request_id, approver_id, step_order, status, remarks, decided_at, created_at, updated_at
FROM approval_steps
WHERE leave_request_id = $1
	AND status = $2
ORDER BY step_order ASC
LIMIT 1
`
	var step ApprovalStep
	err := r.conn().QueryRowContext(ctx, query, leaveRequestID, StatusPending).Scan(
		&step.ID,
		&step.LeaveRequestID,
		&step.ApproverID,
		&step.StepOrder,
		&step.Status,
		&step.Remarks,
		&step.DecidedAt,
		&step.CreatedAt,
		&step.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// MarkDecided flips a step out of PENDING. The WHERE clause keeps the
// transition one-shot: the second of two racing decisions updates zero rows.
func (r *repository) MarkDecided(ctx context.Context, id, decision string, remarks *string, decidedAt time.Time) (int64, error) {
	query := `
UPDATE approval_steps
SET
	status = $2,
	remarks = $3,
	decided_at = $4,
	updated_at = NOW()
WHERE id = $1
	AND status = $5
`
	res, err := r.conn().ExecContext(ctx, query, id, decision, remarks, decidedAt, StatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) FindRequestMeta(ctx context.Context, leaveRequestID string) (string, string, error) {
	query := `SELECT status, requester_id FROM leave_requests WHERE id = $1 AND deleted_at IS NULL`

	var status, requesterID string
	err := r.conn().QueryRowContext(ctx, query, leaveRequestID).Scan(&status, &requesterID)
	return status, requesterID, err
}

func (r *repository) UpdateRequestStatus(ctx context.Context, leaveRequestID, fromStatus, toStatus string) (int64, error) {
	query := `
UPDATE leave_requests
SET status = $3, updated_at = NOW()
WHERE id = $1
	AND status = $2
	AND deleted_at IS NULL
`
	res, err := r.conn().ExecContext(ctx, query, leaveRequestID, fromStatus, toStatus)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) DeleteByRequest(ctx context.Context, leaveRequestID string) error {
	query := `DELETE FROM approval_steps WHERE leave_request_id = $1`
	_, err := r.conn().ExecContext(ctx, query, leaveRequestID)
	return err
}
