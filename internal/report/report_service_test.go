package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/report"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

type fakeReportRepository struct {
	findRowsFn func(ctx context.Context, filter report.ReportFilter) ([]report.ReportRow, error)
}

func (f *fakeReportRepository) FindRows(ctx context.Context, filter report.ReportFilter) ([]report.ReportRow, error) {
	if f.findRowsFn != nil {
		return f.findRowsFn(ctx, filter)
	}
	return nil, nil
}

func sampleRows() []report.ReportRow {
	return []report.ReportRow{
		{
			ID:             uuid.New(),
			RequesterID:    uuid.New(),
			RequesterName:  "Budi Santoso",
			RequesterEmail: "budi@example.com",
			LeaveTypeName:  "Annual Leave",
			StartDate:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
			TotalDays:      3,
			Reason:         "Family wedding out of town",
			Status:         "APPROVED",
			CreatedAt:      time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:             uuid.New(),
			RequesterID:    uuid.New(),
			RequesterName:  "Dewi Lestari",
			RequesterEmail: "dewi@example.com",
			LeaveTypeName:  "Sick Leave",
			StartDate:      time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			TotalDays:      1,
			Reason:         "Flu, doctor's note attached",
			Status:         "PENDING",
			CreatedAt:      time.Date(2026, 8, 19, 15, 0, 0, 0, time.UTC),
		},
	}
}

func TestReportService_GetRows(t *testing.T) {
	ctx := context.Background()

	t.Run("success passes the filter through", func(t *testing.T) {
		repo := &fakeReportRepository{}
		svc := report.NewService(repo)

		filter := report.ReportFilter{Status: "APPROVED", StartDate: "2026-09-01"}
		repo.findRowsFn = func(ctx context.Context, f report.ReportFilter) ([]report.ReportRow, error) {
			assert.Equal(t, filter, f)
			return sampleRows()[:1], nil
		}

		rows, err := svc.GetRows(ctx, filter)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Budi Santoso", rows[0].RequesterName)
		assert.Equal(t, "2026-09-07", rows[0].StartDate)
	})

	t.Run("negative repo error", func(t *testing.T) {
		repo := &fakeReportRepository{
			findRowsFn: func(ctx context.Context, f report.ReportFilter) ([]report.ReportRow, error) {
				return nil, errors.New("db error")
			},
		}
		svc := report.NewService(repo)

		_, err := svc.GetRows(ctx, report.ReportFilter{})

		assert.Error(t, err)
	})
}

func TestReportService_ExportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeReportRepository{
			findRowsFn: func(ctx context.Context, f report.ReportFilter) ([]report.ReportRow, error) {
				return sampleRows(), nil
			},
		}
		svc := report.NewService(repo)

		data, err := svc.ExportCSV(ctx, report.ReportFilter{})
		assert.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		assert.NoError(t, err)
		assert.Len(t, records, 3)
		assert.Equal(t, []string{"Name", "Email", "Leave Type", "Start Date", "End Date", "Total Days", "Status"}, records[0])
		assert.Equal(t, []string{"Budi Santoso", "budi@example.com", "Annual Leave", "2026-09-07", "2026-09-09", "3", "APPROVED"}, records[1])
		assert.Equal(t, "Dewi Lestari", records[2][0])
	})

	t.Run("success empty result still has a header", func(t *testing.T) {
		repo := &fakeReportRepository{}
		svc := report.NewService(repo)

		data, err := svc.ExportCSV(ctx, report.ReportFilter{})
		assert.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		assert.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestReportService_ExportXLSX(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeReportRepository{
			findRowsFn: func(ctx context.Context, f report.ReportFilter) ([]report.ReportRow, error) {
				return sampleRows(), nil
			},
		}
		svc := report.NewService(repo)

		data, err := svc.ExportXLSX(ctx, report.ReportFilter{})
		assert.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		assert.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Leave Requests")
		assert.NoError(t, err)
		assert.Len(t, rows, 3)
		assert.Equal(t, "Name", rows[0][0])
		assert.Equal(t, "Budi Santoso", rows[1][0])
		assert.Equal(t, "3", rows[1][5])
	})
}
