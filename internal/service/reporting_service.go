package service

import (
	"context"
	"time"

	"pix-recebidos/internal/core/domain"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/pkg/apperror"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	paymentRepo ports.PaymentRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(paymentRepo ports.PaymentRepository) ports.ReportingService {
	return &reportingService{paymentRepo: paymentRepo}
}

// ListPayments returns a page of reconciled records for the dashboard.
func (s *reportingService) ListPayments(ctx context.Context, params ports.PaymentListParams) ([]domain.PaymentRecord, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	recs, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return recs, total, nil
}

// GetStats returns aggregated reconciliation stats for a period.
func (s *reportingService) GetStats(ctx context.Context, period string) (*ports.PaymentStats, error) {
	var periodStart *int64

	switch period {
	case "day":
		t := time.Now().AddDate(0, 0, -1).Unix()
		periodStart = &t
	case "week":
		t := time.Now().AddDate(0, 0, -7).Unix()
		periodStart = &t
	case "month":
		t := time.Now().AddDate(0, -1, 0).Unix()
		periodStart = &t
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	stats, err := s.paymentRepo.GetStats(ctx, periodStart)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return stats, nil
}
