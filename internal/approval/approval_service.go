package approval

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	approvalerrors "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/approval/errors"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/directory"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/events"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/messaging/kafka"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StatsCacheKeyPrefix mirrors the key used by the leave request stats
// endpoint so a decision can evict the requester's cached dashboard.
const StatsCacheKeyPrefix = "leave:stats:"

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	// CreateChainTx builds the full approval chain for a freshly submitted
	// request inside the caller's transaction. The chain is fixed here and
	// never regrown; stages at or below the submitter's rank are skipped.
	CreateChainTx(ctx context.Context, tx *sql.Tx, leaveRequestID uuid.UUID, submitterRole string) ([]ApprovalStep, error)
	// DeleteChainTx removes the chain when a PENDING request is withdrawn.
	DeleteChainTx(ctx context.Context, tx *sql.Tx, leaveRequestID string) error
	ListPending(ctx context.Context, approverID string) ([]PendingApprovalResponse, error)
	Decide(ctx context.Context, actorID, stepID string, req DecideRequest) (DecideResponse, error)
	StepsForRequest(ctx context.Context, leaveRequestID string) ([]StepResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory directory.Service
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directorySvc directory.Service,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directorySvc,
		outbox:    outboxRepo,
		rdb:       rdb,
		logger:    l,
	}
}

func (s *service) CreateChainTx(ctx context.Context, tx *sql.Tx, leaveRequestID uuid.UUID, submitterRole string) ([]ApprovalStep, error) {
	stages, err := s.directory.ChainFor(ctx, submitterRole)
	if err != nil {
		s.logger.Error("resolve approval chain failed",
			zap.String("leave_request_id", leaveRequestID.String()),
			zap.String("submitter_role", submitterRole),
			zap.Error(err),
		)
		return nil, err
	}

	steps := make([]ApprovalStep, len(stages))
	for i, stage := range stages {
		steps[i] = ApprovalStep{
			ID:             uuid.New(),
			LeaveRequestID: leaveRequestID,
			ApproverID:     stage.Approver.ID,
			StepOrder:      stage.Order,
			Status:         StatusPending,
		}
	}

	if len(steps) > 0 {
		if err := s.repo.WithTx(tx).CreateSteps(ctx, steps); err != nil {
			s.logger.Error("persist approval chain failed",
				zap.String("leave_request_id", leaveRequestID.String()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	return steps, nil
}

func (s *service) DeleteChainTx(ctx context.Context, tx *sql.Tx, leaveRequestID string) error {
	return s.repo.WithTx(tx).DeleteByRequest(ctx, leaveRequestID)
}

func (s *service) ListPending(ctx context.Context, approverID string) ([]PendingApprovalResponse, error) {
	pending, err := s.repo.ListPendingForApprover(ctx, approverID)
	if err != nil {
		s.logger.Error("list pending approvals failed",
			zap.String("approver_id", approverID),
			zap.Error(err),
		)
		return nil, err
	}

	resp := make([]PendingApprovalResponse, len(pending))
	for i, p := range pending {
		resp[i] = PendingApprovalResponse{
			StepID:           p.StepID.String(),
			StepOrder:        p.StepOrder,
			LeaveRequestID:   p.LeaveRequestID.String(),
			RequesterID:      p.RequesterID.String(),
			RequesterName:    p.RequesterName,
			RequesterNIK:     p.RequesterNIK,
			LeaveTypeName:    p.LeaveTypeName,
			StartDate:        p.StartDate.Format("2006-01-02"),
			EndDate:          p.EndDate.Format("2006-01-02"),
			TotalDays:        p.TotalDays,
			Reason:           p.Reason,
			RequestCreatedAt: p.RequestCreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) StepsForRequest(ctx context.Context, leaveRequestID string) ([]StepResponse, error) {
	steps, err := s.repo.ListByRequest(ctx, leaveRequestID)
	if err != nil {
		return nil, err
	}
	return mapStepsToResponse(steps), nil
}

func (s *service) Decide(ctx context.Context, actorID, stepID string, req DecideRequest) (DecideResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide approval requested",
		zap.String("request_id", rid),
		zap.String("step_id", stepID),
		zap.String("actor_id", actorID),
		zap.String("decision", req.Decision),
	)

	if req.Decision != StatusApproved && req.Decision != StatusRejected {
		return DecideResponse{}, approvalerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide approval begin tx failed", zap.Error(err))
		return DecideResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	step, err := qtx.FindByID(ctx, stepID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DecideResponse{}, approvalerrors.ErrStepNotFound
		}
		s.logger.Error("decide approval load step failed", zap.String("step_id", stepID), zap.Error(err))
		return DecideResponse{}, err
	}

	if step.ApproverID.String() != actorID {
		s.logger.Warn("decide approval by non-assigned actor",
			zap.String("step_id", stepID),
			zap.String("actor_id", actorID),
			zap.String("approver_id", step.ApproverID.String()),
		)
		return DecideResponse{}, approvalerrors.ErrNotAssignedApprover
	}

	requestID := step.LeaveRequestID.String()
	requestStatus, requesterID, err := qtx.FindRequestMeta(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DecideResponse{}, approvalerrors.ErrStepNotFound
		}
		return DecideResponse{}, err
	}
	if requestStatus != StatusPending {
		return DecideResponse{}, approvalerrors.ErrRequestAlreadyFinal
	}

	if step.Status != StatusPending {
		return DecideResponse{}, approvalerrors.ErrStepAlreadyDecided
	}

	blocking, err := qtx.CountBlockingSteps(ctx, requestID, step.StepOrder)
	if err != nil {
		return DecideResponse{}, err
	}
	if blocking > 0 {
		s.logger.Warn("decide approval out of order",
			zap.String("step_id", stepID),
			zap.Int("step_order", step.StepOrder),
			zap.Int64("blocking_steps", blocking),
		)
		return DecideResponse{}, approvalerrors.ErrOutOfOrder
	}

	now := time.Now().UTC()
	affected, err := qtx.MarkDecided(ctx, stepID, req.Decision, req.Remarks, now)
	if err != nil {
		s.logger.Error("decide approval persist failed", zap.String("step_id", stepID), zap.Error(err))
		return DecideResponse{}, err
	}
	if affected == 0 {
		// A concurrent decide got there first.
		return DecideResponse{}, approvalerrors.ErrStepAlreadyDecided
	}

	step.Status = req.Decision
	step.Remarks = req.Remarks
	step.DecidedAt = &now

	finalStatus := StatusPending
	var nextApproverID *string

	switch req.Decision {
	case StatusRejected:
		// One rejection is final. Remaining PENDING steps stay untouched
		// as audit history; the terminal request status makes them moot.
		rows, err := qtx.UpdateRequestStatus(ctx, requestID, StatusPending, StatusRejected)
		if err != nil {
			return DecideResponse{}, err
		}
		if rows == 0 {
			return DecideResponse{}, approvalerrors.ErrRequestAlreadyFinal
		}
		finalStatus = StatusRejected

	case StatusApproved:
		remaining, err := qtx.CountPendingSteps(ctx, requestID)
		if err != nil {
			return DecideResponse{}, err
		}
		if remaining == 0 {
			rows, err := qtx.UpdateRequestStatus(ctx, requestID, StatusPending, StatusApproved)
			if err != nil {
				return DecideResponse{}, err
			}
			if rows == 0 {
				return DecideResponse{}, approvalerrors.ErrRequestAlreadyFinal
			}
			finalStatus = StatusApproved
		} else {
			next, err := qtx.FindNextPendingStep(ctx, requestID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return DecideResponse{}, err
			}
			if next != nil {
				v := next.ApproverID.String()
				nextApproverID = &v
			}
		}
	}

	if s.outbox != nil {
		event := events.ApprovalDecidedEvent{
			EventType:      "approval_decided",
			RequestID:      rid,
			LeaveRequestID: requestID,
			StepID:         stepID,
			ApproverID:     actorID,
			Decision:       req.Decision,
			RequestStatus:  finalStatus,
			OccurredAt:     now,
		}
		if nextApproverID != nil {
			event.NextApproverID = *nextApproverID
		}

		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return DecideResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_request",
			AggregateID:   requestID,
			EventType:     event.EventType,
			Topic:         events.LeaveWorkflowTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide approval outbox persist failed",
				zap.String("step_id", stepID),
				zap.Error(err),
			)
			return DecideResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide approval commit failed", zap.String("step_id", stepID), zap.Error(err))
		return DecideResponse{}, err
	}

	if s.rdb != nil {
		cacheKey := StatsCacheKeyPrefix + requesterID
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate leave stats cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	s.logger.Info("decide approval success",
		zap.String("request_id", rid),
		zap.String("step_id", stepID),
		zap.String("decision", req.Decision),
		zap.String("leave_request_status", finalStatus),
	)

	return DecideResponse{
		Step:           mapStepToResponse(*step),
		RequestStatus:  finalStatus,
		NextApproverID: nextApproverID,
	}, nil
}

func mapStepToResponse(step ApprovalStep) StepResponse {
	resp := StepResponse{
		ID:             step.ID.String(),
		LeaveRequestID: step.LeaveRequestID.String(),
		ApproverID:     step.ApproverID.String(),
		StepOrder:      step.StepOrder,
		Status:         step.Status,
		Remarks:        step.Remarks,
	}
	if step.DecidedAt != nil {
		v := step.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapStepsToResponse(steps []StepWithApprover) []StepResponse {
	resp := make([]StepResponse, len(steps))
	for i, s := range steps {
		r := mapStepToResponse(s.ApprovalStep)
		r.ApproverName = s.ApproverName
		r.ApproverRole = s.ApproverRole
		resp[i] = r
	}
	return resp
}
