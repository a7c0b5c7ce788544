package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/approval"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/events"
	leaverequesterrors "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/leaverequest/errors"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/messaging/kafka"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/apperror"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	reasonMinLen = 10
	reasonMaxLen = 500

	statsCacheTTL   = 5 * time.Minute
	recentStatLimit = 5
)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID, actorRole string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, actorID string) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	GetStats(ctx context.Context, actorID string) (LeaveStatsResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	approvals approval.Service
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	approvalSvc approval.Service,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		approvals: approvalSvc,
		outbox:    outboxRepo,
		rdb:       rdb,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorID, actorRole string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, endDate, leaveType, err := s.validate(ctx, actorID, req.StartDate, req.EndDate, req.Reason, req.LeaveTypeID, nil)
	if err != nil {
		s.logger.Warn("create leave request validation failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, actorID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave request overlap check failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave request overlap detected",
			zap.String("actor_id", actorID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveOverlap
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &LeaveRequest{
		ID:          uuid.New(),
		RequesterID: uuid.MustParse(actorID),
		LeaveTypeID: leaveType.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      trimmed(req.Reason),
		Status:      StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	steps, err := s.approvals.CreateChainTx(ctx, tx, l.ID, actorRole)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if len(steps) == 0 {
		if err := qtx.MarkApproved(ctx, l.ID.String()); err != nil {
			s.logger.Error("create leave request auto approve failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		l.Status = StatusApproved
	}

	if s.outbox != nil {
		event := events.LeaveRequestSubmittedEvent{
			EventType:      "leave_request_submitted",
			RequestID:      rid,
			LeaveRequestID: l.ID.String(),
			RequesterID:    actorID,
			OccurredAt:     time.Now().UTC(),
		}
		if len(steps) > 0 {
			event.FirstApprover = steps[0].ApproverID.String()
		}

		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveRequestResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_request",
			AggregateID:   l.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveWorkflowTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create leave request outbox persist failed",
				zap.String("leave_request_id", l.ID.String()),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.invalidateStats(ctx, actorID)

	s.logger.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", l.ID.String()),
		zap.Int("chain_length", len(steps)),
	)

	return s.toResponse(ctx, *l, leaveType, true)
}

func (s *service) GetAll(ctx context.Context, actorID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindAllByRequester(ctx, actorID)
	if err != nil {
		s.logger.Error("list leave requests failed", zap.String("actor_id", actorID), zap.Error(err))
		return nil, err
	}

	types := make(map[string]*LeaveTypeInfo)
	resp := make([]LeaveRequestResponse, 0, len(requests))
	for _, l := range requests {
		lt, err := s.leaveTypeCached(ctx, types, l.LeaveTypeID.String())
		if err != nil {
			return nil, err
		}
		r, err := s.toResponse(ctx, l, lt, true)
		if err != nil {
			return nil, err
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if l.RequesterID.String() != actorID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
	}

	lt, err := s.repo.FindLeaveType(ctx, l.LeaveTypeID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveRequestResponse{}, err
	}
	return s.toResponse(ctx, *l, lt, true)
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave request requested",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if l.RequesterID.String() != actorID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotPending
	}

	startDate, endDate, leaveType, err := s.validate(ctx, actorID, req.StartDate, req.EndDate, req.Reason, req.LeaveTypeID, &id)
	if err != nil {
		s.logger.Warn("update leave request validation failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, actorID, startDate, endDate, &id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if overlap {
		return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveOverlap
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l.LeaveTypeID = leaveType.ID
	l.StartDate = startDate
	l.EndDate = endDate
	l.TotalDays = int(endDate.Sub(startDate).Hours()/24) + 1
	l.Reason = trimmed(req.Reason)

	affected, err := qtx.UpdatePending(ctx, l)
	if err != nil {
		s.logger.Error("update leave request persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if affected == 0 {
		// A decision or withdrawal landed between the read and this write.
		return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotPending
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave request commit failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.invalidateStats(ctx, actorID)

	s.logger.Info("update leave request success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
	)

	return s.toResponse(ctx, *l, leaveType, true)
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("withdraw leave request requested",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaverequesterrors.ErrLeaveRequestNotFound
		}
		return err
	}
	if l.RequesterID.String() != actorID {
		return leaverequesterrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return leaverequesterrors.ErrRequestNotPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("withdraw leave request begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.DeletePending(ctx, id)
	if err != nil {
		s.logger.Error("withdraw leave request persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return leaverequesterrors.ErrRequestNotPending
	}

	if err := s.approvals.DeleteChainTx(ctx, tx, id); err != nil {
		s.logger.Error("withdraw leave request chain delete failed", zap.String("leave_request_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("withdraw leave request commit failed", zap.String("leave_request_id", id), zap.Error(err))
		return err
	}

	s.invalidateStats(ctx, actorID)

	s.logger.Info("withdraw leave request success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
	)
	return nil
}

func (s *service) GetStats(ctx context.Context, actorID string) (LeaveStatsResponse, error) {
	cacheKey := approval.StatsCacheKeyPrefix + actorID

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp LeaveStatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		year := time.Now().UTC().Year()

		usage, err := s.repo.ListTypeUsage(ctx, actorID, year)
		if err != nil {
			return nil, err
		}

		byType := make([]TypeStatsResponse, len(usage))
		for i, u := range usage {
			t := TypeStatsResponse{
				LeaveTypeID:    u.LeaveTypeID.String(),
				LeaveTypeName:  u.LeaveTypeName,
				MaxDaysPerYear: u.MaxDaysPerYear,
				TotalRequests:  u.TotalRequests,
				UsedDays:       u.UsedDays,
			}
			if u.MaxDaysPerYear != nil {
				remaining := *u.MaxDaysPerYear - u.UsedDays
				if remaining < 0 {
					remaining = 0
				}
				t.RemainingDays = &remaining
			}
			byType[i] = t
		}

		pendingCount, err := s.repo.CountByStatus(ctx, actorID, StatusPending)
		if err != nil {
			return nil, err
		}
		approvedCount, err := s.repo.CountByStatus(ctx, actorID, StatusApproved)
		if err != nil {
			return nil, err
		}

		recent, err := s.repo.FindRecentByRequester(ctx, actorID, recentStatLimit)
		if err != nil {
			return nil, err
		}
		types := make(map[string]*LeaveTypeInfo)
		recentResp := make([]LeaveRequestResponse, 0, len(recent))
		for _, l := range recent {
			lt, err := s.leaveTypeCached(ctx, types, l.LeaveTypeID.String())
			if err != nil {
				return nil, err
			}
			r, err := s.toResponse(ctx, l, lt, false)
			if err != nil {
				return nil, err
			}
			recentResp = append(recentResp, r)
		}

		resp := LeaveStatsResponse{
			Year:           year,
			ByType:         byType,
			PendingCount:   pendingCount,
			ApprovedCount:  approvedCount,
			RecentRequests: recentResp,
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, statsCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return LeaveStatsResponse{}, err
	}

	return v.(LeaveStatsResponse), nil
}

// validate runs the full admission checks and reports every violation at
// once so the caller can show them together.
func (s *service) validate(ctx context.Context, actorID, startDate, endDate, reason, leaveTypeID string, excludeID *string) (time.Time, time.Time, *LeaveTypeInfo, error) {
	var violations []string

	start, startErr := time.Parse("2006-01-02", startDate)
	if startErr != nil {
		violations = append(violations, "start_date is not a valid date (YYYY-MM-DD)")
	}
	end, endErr := time.Parse("2006-01-02", endDate)
	if endErr != nil {
		violations = append(violations, "end_date is not a valid date (YYYY-MM-DD)")
	}

	if startErr == nil && endErr == nil && start.After(end) {
		violations = append(violations, "start_date must not be after end_date")
	}
	if startErr == nil {
		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if start.Before(today) {
			violations = append(violations, "start_date must not be before today")
		}
	}

	r := trimmed(reason)
	if len(r) < reasonMinLen {
		violations = append(violations, fmt.Sprintf("reason must be at least %d characters", reasonMinLen))
	}
	if len(r) > reasonMaxLen {
		violations = append(violations, fmt.Sprintf("reason must not exceed %d characters", reasonMaxLen))
	}

	leaveType, err := s.repo.FindLeaveType(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			violations = append(violations, "leave type is not valid")
			return time.Time{}, time.Time{}, nil, apperror.NewValidation(violations)
		}
		return time.Time{}, time.Time{}, nil, err
	}

	if leaveType.MaxDaysPerYear != nil && startErr == nil && endErr == nil && !start.After(end) {
		used, err := s.repo.UsedDaysInYear(ctx, actorID, leaveType.ID.String(), start.Year(), excludeID)
		if err != nil {
			return time.Time{}, time.Time{}, nil, err
		}
		requested := int(end.Sub(start).Hours()/24) + 1
		if used+requested > *leaveType.MaxDaysPerYear {
			violations = append(violations, fmt.Sprintf(
				"%s quota exceeds the yearly limit of %d days",
				leaveType.Name, *leaveType.MaxDaysPerYear,
			))
		}
	}

	if len(violations) > 0 {
		return time.Time{}, time.Time{}, nil, apperror.NewValidation(violations)
	}
	return start, end, leaveType, nil
}

func (s *service) leaveTypeCached(ctx context.Context, cache map[string]*LeaveTypeInfo, id string) (*LeaveTypeInfo, error) {
	if lt, ok := cache[id]; ok {
		return lt, nil
	}
	lt, err := s.repo.FindLeaveType(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache[id] = nil
			return nil, nil
		}
		return nil, err
	}
	cache[id] = lt
	return lt, nil
}

func (s *service) toResponse(ctx context.Context, l LeaveRequest, lt *LeaveTypeInfo, withApprovals bool) (LeaveRequestResponse, error) {
	resp := LeaveRequestResponse{
		ID:          l.ID.String(),
		RequesterID: l.RequesterID.String(),
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		TotalDays:   l.TotalDays,
		Reason:      l.Reason,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
	if lt != nil {
		resp.LeaveType = LeaveTypeSummary{
			ID:             lt.ID.String(),
			Name:           lt.Name,
			MaxDaysPerYear: lt.MaxDaysPerYear,
		}
	}

	if withApprovals {
		steps, err := s.approvals.StepsForRequest(ctx, l.ID.String())
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		resp.Approvals = steps
	}
	return resp, nil
}

func (s *service) invalidateStats(ctx context.Context, actorID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := approval.StatsCacheKeyPrefix + actorID
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave stats cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func trimmed(v string) string {
	return strings.TrimSpace(v)
}
