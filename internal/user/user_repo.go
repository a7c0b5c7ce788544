package user

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindPage(ctx context.Context, search string, offset, limit int) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	FindRoleNameByID(ctx context.Context, roleID string) (string, error)
	DivisionExists(ctx context.Context, divisionID string) (bool, error)
	DivisionHasOtherHead(ctx context.Context, divisionID, headRoleName, excludeUserID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Division").
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Role").
		First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindPage(ctx context.Context, search string, offset, limit int) ([]User, int64, error) {
	query := r.db.WithContext(ctx).Model(&User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR nik ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := query.
		Preload("Role").
		Preload("Division").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (r *repository) FindRoleNameByID(ctx context.Context, roleID string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).
		Table("roles").
		Select("name").
		Where("id = ?", roleID).
		Scan(&name).Error
	return name, err
}

func (r *repository) DivisionExists(ctx context.Context, divisionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("divisions").
		Where("id = ?", divisionID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DivisionHasOtherHead(ctx context.Context, divisionID, headRoleName, excludeUserID string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.division_id = ?", divisionID).
		Where("roles.name = ?", headRoleName).
		Where("users.deleted_at IS NULL")

	if excludeUserID != "" {
		query = query.Where("users.id <> ?", excludeUserID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}
