package division

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

//go:generate mockgen -source=division_service.go -destination=mock/division_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDivisionRequest) (DivisionResponse, error)
	GetAll(ctx context.Context) ([]DivisionResponse, error)
	GetByID(ctx context.Context, id string) (DivisionResponse, error)
	Update(ctx context.Context, id string, req UpdateDivisionRequest) (DivisionResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateDivisionRequest) (DivisionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DivisionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d := &Division{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if err := qtx.Create(ctx, d); err != nil {
		return DivisionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DivisionResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DivisionResponse, error) {
	divisions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(divisions), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DivisionResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DivisionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDivisionRequest) (DivisionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DivisionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DivisionResponse{}, mapRepositoryError(err)
	}

	d.Name = req.Name

	if err := qtx.Update(ctx, d); err != nil {
		return DivisionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DivisionResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(d Division) DivisionResponse {
	return DivisionResponse{
		ID:   d.ID.String(),
		Name: d.Name,
	}
}

func mapToListResponse(divisions []Division) []DivisionResponse {
	resp := make([]DivisionResponse, len(divisions))
	for i, d := range divisions {
		resp[i] = mapToResponse(d)
	}
	return resp
}
