package report

import (
	"context"
	"time"

	"carrental-service/internal/domain/report"
	xerrors "carrental-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type ReportService struct {
	reportRepo report.Repository
	logger     *zap.Logger
}

func NewReportService(reportRepo report.Repository, logger *zap.Logger) *ReportService {
	return &ReportService{reportRepo: reportRepo, logger: logger}
}

func (s *ReportService) Summary(ctx context.Context, start, end time.Time) (*report.Summary, error) {
	if end.Before(start) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "end date must not be before start date")
	}
	return s.reportRepo.Summary(ctx, start, end)
}

// Financial builds the per-reservation statement with derived balances.
func (s *ReportService) Financial(ctx context.Context, start, end time.Time) (*report.FinancialReport, error) {
	if end.Before(start) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "end date must not be before start date")
	}

	lines, err := s.reportRepo.DetailLines(ctx, start, end)
	if err != nil {
		return nil, err
	}

	r := &report.FinancialReport{
		StartDate: start,
		EndDate:   end,
		Details:   lines,
	}
	r.Compute()
	return r, nil
}

func (s *ReportService) Dashboard(ctx context.Context) (*report.DashboardStats, error) {
	return s.reportRepo.DashboardStats(ctx)
}
