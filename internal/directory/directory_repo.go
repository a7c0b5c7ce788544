package directory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock
type Repository interface {
	FindAllRoles(ctx context.Context) ([]Role, error)
	FindRoleByName(ctx context.Context, name string) (*Role, error)
	FindApproverByRole(ctx context.Context, roleName string) (*Approver, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *repository) FindRoleByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error
	return &role, err
}

func (r *repository) FindApproverByRole(ctx context.Context, roleName string) (*Approver, error) {
	var approver Approver
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.name, users.email, roles.name AS role_name").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", roleName).
		Where("users.is_active = true").
		Where("users.deleted_at IS NULL").
		Order("users.created_at ASC").
		Limit(1).
		Scan(&approver).Error
	if err != nil {
		return nil, err
	}
	if approver.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &approver, nil
}
