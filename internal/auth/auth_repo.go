package auth

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*AuthUser, error)
	GetByID(ctx context.Context, id string) (*AuthUser, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*AuthUser, error) {
	var u AuthUser
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.id, u.name, u.email, u.nik, u.password, u.is_active, ro.name AS role_name").
		Joins("JOIN roles ro ON ro.id = u.role_id").
		Where("u.deleted_at IS NULL").
		Where("u.email = ?", email).
		Take(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*AuthUser, error) {
	var u AuthUser
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.id, u.name, u.email, u.nik, u.password, u.is_active, ro.name AS role_name").
		Joins("JOIN roles ro ON ro.id = u.role_id").
		Where("u.deleted_at IS NULL").
		Where("u.id = ?", id).
		Take(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
