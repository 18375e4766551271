package handler

import (
	"strconv"

	"pix-recebidos/internal/adapter/http/dto"
	"pix-recebidos/internal/core/domain"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the read-only monitoring endpoints.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// ListRecebidos handles GET /api/v1/recebidos.
func (h *DashboardHandler) ListRecebidos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	params := ports.PaymentListParams{
		TenantID: c.Query("tenant_id"),
		Page:     page,
		PageSize: pageSize,
	}
	if status := c.Query("status"); status != "" {
		params.Status = &status
	}
	if notifiedStr := c.Query("notified"); notifiedStr != "" {
		if notified, err := strconv.ParseBool(notifiedStr); err == nil {
			params.Notified = &notified
		}
	}
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := strconv.ParseInt(fromStr, 10, 64); err == nil {
			params.From = &from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := strconv.ParseInt(toStr, 10, 64); err == nil {
			params.To = &to
		}
	}

	recs, total, err := h.reportingSvc.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.RecebidoResponse, 0, len(recs))
	for _, rec := range recs {
		items = append(items, toRecebidoResponse(rec))
	}

	response.OK(c, dto.RecebidoListResponse{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
}

// GetStats handles GET /api/v1/recebidos/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	stats, err := h.reportingSvc.GetStats(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StatsResponse{
		TotalReceived:   stats.TotalReceived,
		Confirmed:       stats.Confirmed,
		Notified:        stats.Notified,
		ConfirmedAmount: stats.ConfirmedAmount,
		ConfirmedTotal:  domain.FormatReais(stats.ConfirmedAmount),
	})
}

func toRecebidoResponse(rec domain.PaymentRecord) dto.RecebidoResponse {
	return dto.RecebidoResponse{
		PaymentID:      rec.PaymentID,
		AmountCentavos: rec.AmountCentavos,
		Amount:         domain.FormatReais(rec.AmountCentavos),
		Status:         rec.Status,
		ConfirmedAt:    rec.ConfirmedAt,
		PayerName:      rec.PayerName,
		PayerDocument:  rec.PayerDocument,
		TenantID:       rec.TenantID,
		ChargeID:       rec.ChargeID,
		Notified:       rec.Notified,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}
