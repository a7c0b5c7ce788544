package directory

import (
	"context"
	"errors"
	"os"
	"strings"

	directoryerrors "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/directory/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Flow is the ordered list of approver roles, lowest rank first. It is
// configuration data, injected at startup, never hard-coded in the
// workflow engine.
type Flow []string

func DefaultFlow() Flow {
	return Flow{RoleDivisionHead, RoleHRD, RoleDirector}
}

// FlowFromEnv reads APPROVAL_FLOW ("DIVISION_HEAD,HRD,DIRECTOR") and falls
// back to the default hierarchy when unset.
func FlowFromEnv() Flow {
	raw := strings.TrimSpace(os.Getenv("APPROVAL_FLOW"))
	if raw == "" {
		return DefaultFlow()
	}

	parts := strings.Split(raw, ",")
	flow := make(Flow, 0, len(parts))
	for _, p := range parts {
		if name := strings.ToUpper(strings.TrimSpace(p)); name != "" {
			flow = append(flow, name)
		}
	}
	if len(flow) == 0 {
		return DefaultFlow()
	}
	return flow
}

// Stage is one position in an approval chain: a 1-based order, the role
// that must act, and the user currently holding that role.
type Stage struct {
	Order    int
	RoleName string
	Approver Approver
}

//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Service interface {
	// RankOf places a role in the total order. Non-approver roles sit at
	// rank 0, flow roles at 1..N.
	RankOf(roleName string) (int, error)
	// ApproverForRank resolves the single user holding the role at that rank.
	ApproverForRank(ctx context.Context, rank int) (Approver, error)
	// ChainFor builds the stage sequence for a submitter: every flow role
	// strictly above the submitter's own rank, in rank order. A submitter
	// never approves their own request.
	ChainFor(ctx context.Context, submitterRole string) ([]Stage, error)
	Roles(ctx context.Context) ([]Role, error)
}

type service struct {
	repo   Repository
	flow   Flow
	ranks  map[string]int
	logger *zap.Logger
}

func NewService(repo Repository, flow Flow, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}

	ranks := map[string]int{RoleEmployee: 0}
	for i, roleName := range flow {
		ranks[roleName] = i + 1
	}

	return &service{repo: repo, flow: flow, ranks: ranks, logger: l}
}

func (s *service) RankOf(roleName string) (int, error) {
	rank, ok := s.ranks[roleName]
	if !ok {
		return 0, directoryerrors.ErrUnknownRole
	}
	return rank, nil
}

func (s *service) ApproverForRank(ctx context.Context, rank int) (Approver, error) {
	if rank < 1 || rank > len(s.flow) {
		return Approver{}, directoryerrors.ErrUnknownRole
	}
	return s.approverForRole(ctx, s.flow[rank-1])
}

func (s *service) ChainFor(ctx context.Context, submitterRole string) ([]Stage, error) {
	submitterRank, err := s.RankOf(submitterRole)
	if err != nil {
		return nil, err
	}

	stages := make([]Stage, 0, len(s.flow))
	order := 1
	for rank := submitterRank + 1; rank <= len(s.flow); rank++ {
		roleName := s.flow[rank-1]
		approver, err := s.approverForRole(ctx, roleName)
		if err != nil {
			return nil, err
		}
		stages = append(stages, Stage{
			Order:    order,
			RoleName: roleName,
			Approver: approver,
		})
		order++
	}

	return stages, nil
}

func (s *service) Roles(ctx context.Context) ([]Role, error) {
	return s.repo.FindAllRoles(ctx)
}

func (s *service) approverForRole(ctx context.Context, roleName string) (Approver, error) {
	approver, err := s.repo.FindApproverByRole(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A stage must never be silently dropped.
			s.logger.Error("approver role has no active holder", zap.String("role", roleName))
			return Approver{}, directoryerrors.ErrNoApproverConfigured
		}
		return Approver{}, err
	}
	return *approver, nil
}
