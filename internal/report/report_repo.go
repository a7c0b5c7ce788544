package report

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	FindRows(ctx context.Context, filter ReportFilter) ([]ReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindRows(ctx context.Context, filter ReportFilter) ([]ReportRow, error) {
	db := r.db.WithContext(ctx).
		Table("leave_requests lr").
		Select(`
			lr.id,
			lr.requester_id,
			u.name AS requester_name,
			u.email AS requester_email,
			lt.name AS leave_type_name,
			lr.start_date,
			lr.end_date,
			lr.total_days,
			lr.reason,
			lr.status,
			lr.created_at
		`).
		Joins("JOIN users u ON u.id = lr.requester_id").
		Joins("JOIN leave_types lt ON lt.id = lr.leave_type_id").
		Where("lr.deleted_at IS NULL").
		Order("lr.created_at DESC")

	if filter.StartDate != "" {
		db = db.Where("lr.start_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		db = db.Where("lr.end_date <= ?", filter.EndDate)
	}
	if filter.Status != "" {
		db = db.Where("lr.status = ?", filter.Status)
	}
	if filter.RequesterID != "" {
		db = db.Where("lr.requester_id = ?", filter.RequesterID)
	}

	var rows []ReportRow
	err := db.Scan(&rows).Error
	return rows, err
}
