package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Name", "Email", "Leave Type", "Start Date", "End Date", "Total Days", "Status"}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	GetRows(ctx context.Context, filter ReportFilter) ([]ReportRowResponse, error)
	ExportCSV(ctx context.Context, filter ReportFilter) ([]byte, error)
	ExportXLSX(ctx context.Context, filter ReportFilter) ([]byte, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetRows(ctx context.Context, filter ReportFilter) ([]ReportRowResponse, error) {
	rows, err := s.repo.FindRows(ctx, filter)
	if err != nil {
		s.logger.Error("report query failed", zap.Error(err))
		return nil, err
	}

	resp := make([]ReportRowResponse, len(rows))
	for i, row := range rows {
		resp[i] = ReportRowResponse{
			ID:             row.ID.String(),
			RequesterID:    row.RequesterID.String(),
			RequesterName:  row.RequesterName,
			RequesterEmail: row.RequesterEmail,
			LeaveTypeName:  row.LeaveTypeName,
			StartDate:      row.StartDate.Format("2006-01-02"),
			EndDate:        row.EndDate.Format("2006-01-02"),
			TotalDays:      row.TotalDays,
			Reason:         row.Reason,
			Status:         row.Status,
			CreatedAt:      row.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) ExportCSV(ctx context.Context, filter ReportFilter) ([]byte, error) {
	rows, err := s.repo.FindRows(ctx, filter)
	if err != nil {
		s.logger.Error("report csv export query failed", zap.Error(err))
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(exportRecord(row)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	s.logger.Info("report csv export generated", zap.Int("rows", len(rows)))
	return buf.Bytes(), nil
}

func (s *service) ExportXLSX(ctx context.Context, filter ReportFilter) ([]byte, error) {
	rows, err := s.repo.FindRows(ctx, filter)
	if err != nil {
		s.logger.Error("report xlsx export query failed", zap.Error(err))
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leave Requests"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		record := exportRecord(row)
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	s.logger.Info("report xlsx export generated", zap.Int("rows", len(rows)))
	return buf.Bytes(), nil
}

func exportRecord(row ReportRow) []string {
	return []string{
		row.RequesterName,
		row.RequesterEmail,
		row.LeaveTypeName,
		row.StartDate.Format("2006-01-02"),
		row.EndDate.Format("2006-01-02"),
		strconv.Itoa(row.TotalDays),
		row.Status,
	}
}
