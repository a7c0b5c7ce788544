package approval_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/approval"
	approvalerrors "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/approval/errors"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/directory"
	directoryerrors "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/directory/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeApprovalRepository struct {
	withTxFn                 func(tx *sql.Tx) approval.Repository
	createStepsFn            func(ctx context.Context, steps []approval.ApprovalStep) error
	findByIDFn               func(ctx context.Context, id string) (*approval.ApprovalStep, error)
	listByRequestFn          func(ctx context.Context, leaveRequestID string) ([]approval.StepWithApprover, error)
	listPendingForApproverFn func(ctx context.Context, approverID string) ([]approval.PendingApproval, error)
	countBlockingStepsFn     func(ctx context.Context, leaveRequestID string, stepOrder int) (int64, error)
	countPendingStepsFn      func(ctx context.Context, leaveRequestID string) (int64, error)
	findNextPendingStepFn    func(ctx context.Context, leaveRequestID string) (*approval.ApprovalStep, error)
	markDecidedFn            func(ctx context.Context, id, decision string, remarks *string, decidedAt time.Time) (int64, error)
	findRequestMetaFn        func(ctx context.Context, leaveRequestID string) (string, string, error)
	updateRequestStatusFn    func(ctx context.Context, leaveRequestID, fromStatus, toStatus string) (int64, error)
	deleteByRequestFn        func(ctx context.Context, leaveRequestID string) error
}

func (f *fakeApprovalRepository) WithTx(tx *sql.Tx) approval.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeApprovalRepository) CreateSteps(ctx context.Context, steps []approval.ApprovalStep) error {
	if f.createStepsFn != nil {
		return f.createStepsFn(ctx, steps)
	}
	return nil
}

func (f *fakeApprovalRepository) FindByID(ctx context.Context, id string) (*approval.ApprovalStep, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeApprovalRepository) ListByRequest(ctx context.Context, leaveRequestID string) ([]approval.StepWithApprover, error) {
	if f.listByRequestFn != nil {
		return f.listByRequestFn(ctx, leaveRequestID)
	}
	return nil, nil
}

func (f *fakeApprovalRepository) ListPendingForApprover(ctx context.Context, approverID string) ([]approval.PendingApproval, error) {
	if f.listPendingForApproverFn != nil {
		return f.listPendingForApproverFn(ctx, approverID)
	}
	return nil, nil
}

func (f *fakeApprovalRepository) CountBlockingSteps(ctx context.Context, leaveRequestID string, stepOrder int) (int64, error) {
	if f.countBlockingStepsFn != nil {
		return f.countBlockingStepsFn(ctx, leaveRequestID, stepOrder)
	}
	return 0, nil
}

func (f *fakeApprovalRepository) CountPendingSteps(ctx context.Context, leaveRequestID string) (int64, error) {
	if f.countPendingStepsFn != nil {
		return f.countPendingStepsFn(ctx, leaveRequestID)
	}
	return 0, nil
}

func (f *fakeApprovalRepository) FindNextPendingStep(ctx context.Context, leaveRequestID string) (*approval.ApprovalStep, error) {
	if f.findNextPendingStepFn != nil {
		return f.findNextPendingStepFn(ctx, leaveRequestID)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeApprovalRepository) MarkDecided(ctx context.Context, id, decision string, remarks *string, decidedAt time.Time) (int64, error) {
	if f.markDecidedFn != nil {
		return f.markDecidedFn(ctx, id, decision, remarks, decidedAt)
	}
	return 1, nil
}

func (f *fakeApprovalRepository) FindRequestMeta(ctx context.Context, leaveRequestID string) (string, string, error) {
	if f.findRequestMetaFn != nil {
		return f.findRequestMetaFn(ctx, leaveRequestID)
	}
	return approval.StatusPending, uuid.NewString(), nil
}

func (f *fakeApprovalRepository) UpdateRequestStatus(ctx context.Context, leaveRequestID, fromStatus, toStatus string) (int64, error) {
	if f.updateRequestStatusFn != nil {
		return f.updateRequestStatusFn(ctx, leaveRequestID, fromStatus, toStatus)
	}
	return 1, nil
}

func (f *fakeApprovalRepository) DeleteByRequest(ctx context.Context, leaveRequestID string) error {
	if f.deleteByRequestFn != nil {
		return f.deleteByRequestFn(ctx, leaveRequestID)
	}
	return nil
}

type fakeDirectoryService struct {
	rankOfFn          func(roleName string) (int, error)
	approverForRankFn func(ctx context.Context, rank int) (directory.Approver, error)
	chainForFn        func(ctx context.Context, submitterRole string) ([]directory.Stage, error)
	rolesFn           func(ctx context.Context) ([]directory.Role, error)
}

func (f *fakeDirectoryService) RankOf(roleName string) (int, error) {
	if f.rankOfFn != nil {
		return f.rankOfFn(roleName)
	}
	return 0, nil
}

func (f *fakeDirectoryService) ApproverForRank(ctx context.Context, rank int) (directory.Approver, error) {
	if f.approverForRankFn != nil {
		return f.approverForRankFn(ctx, rank)
	}
	return directory.Approver{}, nil
}

func (f *fakeDirectoryService) ChainFor(ctx context.Context, submitterRole string) ([]directory.Stage, error) {
	if f.chainForFn != nil {
		return f.chainForFn(ctx, submitterRole)
	}
	return nil, nil
}

func (f *fakeDirectoryService) Roles(ctx context.Context) ([]directory.Role, error) {
	if f.rolesFn != nil {
		return f.rolesFn(ctx)
	}
	return nil, nil
}

type approvalServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   approval.Service
	repo      *fakeApprovalRepository
	directory *fakeDirectoryService
}

func setupApprovalServiceTest(t *testing.T) *approvalServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeApprovalRepository{}
	dir := &fakeDirectoryService{}
	svc := approval.NewService(db, repo, dir, nil, nil)

	return &approvalServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		directory: dir,
	}
}

func pendingStep(leaveRequestID, approverID uuid.UUID, order int) *approval.ApprovalStep {
	return &approval.ApprovalStep{
		ID:             uuid.New(),
		LeaveRequestID: leaveRequestID,
		ApproverID:     approverID,
		StepOrder:      order,
		Status:         approval.StatusPending,
	}
}

func TestApprovalService_Decide(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	approverID := uuid.New()
	requesterID := uuid.NewString()

	t.Run("success mid chain approval keeps request pending", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		step := pendingStep(requestID, approverID, 1)
		next := pendingStep(requestID, uuid.New(), 2)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			assert.Equal(t, step.ID.String(), id)
			return step, nil
		}
		deps.repo.findRequestMetaFn = func(ctx context.Context, id string) (string, string, error) {
			return approval.StatusPending, requesterID, nil
		}
		deps.repo.countPendingStepsFn = func(ctx context.Context, id string) (int64, error) {
			return 1, nil
		}
		deps.repo.findNextPendingStepFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			return next, nil
		}

		resp, err := deps.service.Decide(ctx, approverID.String(), step.ID.String(), approval.DecideRequest{
			Decision: approval.StatusApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, approval.StatusPending, resp.RequestStatus)
		assert.Equal(t, approval.StatusApproved, resp.Step.Status)
		assert.NotNil(t, resp.NextApproverID)
		assert.Equal(t, next.ApproverID.String(), *resp.NextApproverID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success final approval approves request", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		step := pendingStep(requestID, approverID, 3)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			return step, nil
		}
		deps.repo.countPendingStepsFn = func(ctx context.Context, id string) (int64, error) {
			return 0, nil
		}
		deps.repo.updateRequestStatusFn = func(ctx context.Context, id, from, to string) (int64, error) {
			assert.Equal(t, requestID.String(), id)
			assert.Equal(t, approval.StatusPending, from)
			assert.Equal(t, approval.StatusApproved, to)
			return 1, nil
		}

		resp, err := deps.service.Decide(ctx, approverID.String(), step.ID.String(), approval.DecideRequest{
			Decision: approval.StatusApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, approval.StatusApproved, resp.RequestStatus)
		assert.Nil(t, resp.NextApproverID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success rejection finalizes request immediately", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		step := pendingStep(requestID, approverID, 1)
		remarks := "Team is at capacity that week"

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			return step, nil
		}
		deps.repo.markDecidedFn = func(ctx context.Context, id, decision string, r *string, decidedAt time.Time) (int64, error) {
			assert.Equal(t, approval.StatusRejected, decision)
			assert.NotNil(t, r)
			assert.Equal(t, remarks, *r)
			return 1, nil
		}
		deps.repo.updateRequestStatusFn = func(ctx context.Context, id, from, to string) (int64, error) {
			assert.Equal(t, approval.StatusRejected, to)
			return 1, nil
		}

		resp, err := deps.service.Decide(ctx, approverID.String(), step.ID.String(), approval.DecideRequest{
			Decision: approval.StatusRejected,
			Remarks:  &remarks,
		})

		assert.NoError(t, err)
		assert.Equal(t, approval.StatusRejected, resp.RequestStatus)
		assert.Nil(t, resp.NextApproverID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative step not found", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			return nil, sql.ErrNoRows
		}

		_, err := deps.service.Decide(ctx, approverID.String(), uuid.NewString(), approval.DecideRequest{
			Decision: approval.StatusApproved,
		})

		assert.ErrorIs(t, err, approvalerrors.ErrStepNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative actor is not the assigned approver", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		step := pendingStep(requestID, approverID, 1)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			return step, nil
		}

		_, err := deps.service.Decide(ctx, uuid.NewString(), step.ID.String(), approval.DecideRequest{
			Decision: approval.StatusApproved,
		})

		assert.ErrorIs(t, err, approvalerrors.ErrNotAssignedApprover)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative request already finalized", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		step := pendingStep(requestID, approverID, 2)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			return step, nil
		}
		deps.repo.findRequestMetaFn = func(ctx context.Context, id string) (string, string, error) {
			return approval.StatusRejected, requesterID, nil
		}

		_, err := deps.service.Decide(ctx, approverID.String(), step.ID.String(), approval.DecideRequest{
			Decision: approval.StatusApproved,
		})

		assert.ErrorIs(t, err, approvalerrors.ErrRequestAlreadyFinal)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative earlier step still pending", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		step := pendingStep(requestID, approverID, 2)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			return step, nil
		}
		deps.repo.countBlockingStepsFn = func(ctx context.Context, id string, order int) (int64, error) {
			assert.Equal(t, 2, order)
			return 1, nil
		}

		_, err := deps.service.Decide(ctx, approverID.String(), step.ID.String(), approval.DecideRequest{
			Decision: approval.StatusApproved,
		})

		assert.ErrorIs(t, err, approvalerrors.ErrOutOfOrder)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative concurrent decide loses the race", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		step := pendingStep(requestID, approverID, 1)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			return step, nil
		}
		deps.repo.markDecidedFn = func(ctx context.Context, id, decision string, r *string, decidedAt time.Time) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Decide(ctx, approverID.String(), step.ID.String(), approval.DecideRequest{
			Decision: approval.StatusApproved,
		})

		assert.ErrorIs(t, err, approvalerrors.ErrStepAlreadyDecided)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative step already decided", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		step := pendingStep(requestID, approverID, 1)
		step.Status = approval.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*approval.ApprovalStep, error) {
			return step, nil
		}

		_, err := deps.service.Decide(ctx, approverID.String(), step.ID.String(), approval.DecideRequest{
			Decision: approval.StatusRejected,
		})

		assert.ErrorIs(t, err, approvalerrors.ErrStepAlreadyDecided)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid decision value", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Decide(ctx, approverID.String(), uuid.NewString(), approval.DecideRequest{
			Decision: "MAYBE",
		})

		assert.ErrorIs(t, err, approvalerrors.ErrInvalidDecision)
	})
}

func TestApprovalService_CreateChainTx(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()

	t.Run("success builds one step per stage", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		tx, err := deps.db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		headID := uuid.New()
		hrdID := uuid.New()
		deps.directory.chainForFn = func(ctx context.Context, submitterRole string) ([]directory.Stage, error) {
			assert.Equal(t, directory.RoleEmployee, submitterRole)
			return []directory.Stage{
				{Order: 1, RoleName: directory.RoleDivisionHead, Approver: directory.Approver{ID: headID}},
				{Order: 2, RoleName: directory.RoleHRD, Approver: directory.Approver{ID: hrdID}},
			}, nil
		}

		var created []approval.ApprovalStep
		deps.repo.createStepsFn = func(ctx context.Context, steps []approval.ApprovalStep) error {
			created = steps
			return nil
		}

		steps, err := deps.service.CreateChainTx(ctx, tx, requestID, directory.RoleEmployee)

		assert.NoError(t, err)
		assert.Len(t, steps, 2)
		assert.Len(t, created, 2)
		assert.Equal(t, headID, steps[0].ApproverID)
		assert.Equal(t, 1, steps[0].StepOrder)
		assert.Equal(t, hrdID, steps[1].ApproverID)
		assert.Equal(t, 2, steps[1].StepOrder)
		assert.Equal(t, approval.StatusPending, steps[0].Status)
		assert.Equal(t, requestID, steps[0].LeaveRequestID)
	})

	t.Run("success empty chain persists nothing", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		tx, err := deps.db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		deps.directory.chainForFn = func(ctx context.Context, submitterRole string) ([]directory.Stage, error) {
			return nil, nil
		}
		deps.repo.createStepsFn = func(ctx context.Context, steps []approval.ApprovalStep) error {
			t.Fatal("CreateSteps must not be called for an empty chain")
			return nil
		}

		steps, err := deps.service.CreateChainTx(ctx, tx, requestID, directory.RoleDirector)

		assert.NoError(t, err)
		assert.Empty(t, steps)
	})

	t.Run("negative missing approver aborts submission", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		tx, err := deps.db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		deps.directory.chainForFn = func(ctx context.Context, submitterRole string) ([]directory.Stage, error) {
			return nil, directoryerrors.ErrNoApproverConfigured
		}

		_, err = deps.service.CreateChainTx(ctx, tx, requestID, directory.RoleEmployee)

		assert.ErrorIs(t, err, directoryerrors.ErrNoApproverConfigured)
	})
}

func TestApprovalService_ListPending(t *testing.T) {
	ctx := context.Background()
	approverID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		stepID := uuid.New()
		deps.repo.listPendingForApproverFn = func(ctx context.Context, id string) ([]approval.PendingApproval, error) {
			assert.Equal(t, approverID, id)
			return []approval.PendingApproval{
				{
					StepID:           stepID,
					StepOrder:        1,
					LeaveRequestID:   uuid.New(),
					RequesterID:      uuid.New(),
					RequesterName:    "Budi Santoso",
					RequesterNIK:     "EMP-2026-0001",
					LeaveTypeName:    "Annual Leave",
					StartDate:        time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
					EndDate:          time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
					TotalDays:        3,
					Reason:           "Family wedding out of town",
					RequestCreatedAt: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
				},
			}, nil
		}

		resp, err := deps.service.ListPending(ctx, approverID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, stepID.String(), resp[0].StepID)
		assert.Equal(t, "2026-09-07", resp[0].StartDate)
		assert.Equal(t, "2026-09-09", resp[0].EndDate)
		assert.Equal(t, 3, resp[0].TotalDays)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupApprovalServiceTest(t)
		defer deps.db.Close()

		deps.repo.listPendingForApproverFn = func(ctx context.Context, id string) ([]approval.PendingApproval, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.ListPending(ctx, approverID)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}
