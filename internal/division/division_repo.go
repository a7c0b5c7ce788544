package division

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=division_repo.go -destination=mock/division_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Division) error
	FindAll(ctx context.Context) ([]Division, error)
	FindByID(ctx context.Context, id string) (*Division, error)
	Update(ctx context.Context, d *Division) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, d *Division) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Division, error) {
	var divisions []Division
	err := r.db.WithContext(ctx).Order("name ASC").Find(&divisions).Error
	return divisions, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Division, error) {
	var d Division
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *Division) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Division{}, "id = ?", id).Error
}
