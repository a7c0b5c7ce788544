package user

import (
	"context"
	"fmt"
	"time"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/directory"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/contextutil"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/counter"
	usererrors "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetPage(ctx context.Context, page, limit int, search string) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, counter: counterRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create user requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role_id", req.RoleID),
	)

	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return UserResponse{}, usererrors.ErrRoleNotFound
	}

	roleName, err := s.repo.FindRoleNameByID(ctx, req.RoleID)
	if err != nil {
		return UserResponse{}, err
	}
	if roleName == "" {
		return UserResponse{}, usererrors.ErrRoleNotFound
	}

	divisionID, err := s.checkDivision(ctx, roleName, req.DivisionID, "")
	if err != nil {
		return UserResponse{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	if req.NIK == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
		if err != nil {
			s.logger.Error("create user generate nik failed", zap.Error(err))
			return UserResponse{}, err
		}
		req.NIK = fmt.Sprintf("EMP-%06d", nextVal)
	}

	u := &User{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		NIK:        req.NIK,
		Password:   string(hashedPassword),
		RoleID:     roleID,
		DivisionID: divisionID,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create user success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
		zap.String("role", roleName),
	)

	u.Role = &UserRole{ID: roleID, Name: roleName}
	return mapToResponse(*u), nil
}

func (s *service) GetPage(ctx context.Context, page, limit int, search string) ([]UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, total, err := s.repo.FindPage(ctx, search, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	s.logger.Debug("update user requested", zap.String("user_id", id))

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.NIK != "" {
		u.NIK = req.NIK
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, err
		}
		u.Password = string(hashedPassword)
	}

	roleName := ""
	if u.Role != nil {
		roleName = u.Role.Name
	}
	if req.RoleID != "" {
		roleID, err := uuid.Parse(req.RoleID)
		if err != nil {
			return UserResponse{}, usererrors.ErrRoleNotFound
		}
		roleName, err = s.repo.FindRoleNameByID(ctx, req.RoleID)
		if err != nil {
			return UserResponse{}, err
		}
		if roleName == "" {
			return UserResponse{}, usererrors.ErrRoleNotFound
		}
		u.RoleID = roleID
		u.Role = &UserRole{ID: roleID, Name: roleName}
	}

	targetDivision := req.DivisionID
	if targetDivision == nil && u.DivisionID != nil {
		v := u.DivisionID.String()
		targetDivision = &v
	}
	divisionID, err := s.checkDivision(ctx, roleName, targetDivision, id)
	if err != nil {
		return UserResponse{}, err
	}
	u.DivisionID = divisionID

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update user success", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	// The org chart must always be able to resolve these stages.
	if u.Role != nil && (u.Role.Name == directory.RoleDirector || u.Role.Name == directory.RoleHRD) {
		return usererrors.ErrProtectedRole
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("delete user success", zap.String("user_id", id))
	return nil
}

// checkDivision enforces the single-head-per-division invariant at
// user-creation/update time; the workflow engine relies on it holding.
func (s *service) checkDivision(ctx context.Context, roleName string, divisionID *string, excludeUserID string) (*uuid.UUID, error) {
	if divisionID == nil || *divisionID == "" {
		if roleName == directory.RoleDivisionHead {
			return nil, usererrors.ErrDivisionRequiredForHead
		}
		return nil, nil
	}

	parsed, err := uuid.Parse(*divisionID)
	if err != nil {
		return nil, usererrors.ErrDivisionNotFound
	}

	exists, err := s.repo.DivisionExists(ctx, *divisionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, usererrors.ErrDivisionNotFound
	}

	if roleName == directory.RoleDivisionHead {
		taken, err := s.repo.DivisionHasOtherHead(ctx, *divisionID, directory.RoleDivisionHead, excludeUserID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, usererrors.ErrDivisionAlreadyHasHead
		}
	}

	return &parsed, nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		NIK:       u.NIK,
		RoleID:    u.RoleID.String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.Role != nil {
		resp.RoleName = u.Role.Name
	}
	if u.DivisionID != nil {
		v := u.DivisionID.String()
		resp.DivisionID = &v
	}
	if u.Division != nil {
		resp.DivisionName = &u.Division.Name
	}
	return resp
}
