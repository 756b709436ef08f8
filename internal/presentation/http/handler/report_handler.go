package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/application/service"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/internal/presentation/http/dto/response"
)

// ReportHandler handles the analytics dashboard HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard computes the analytics dashboard. Every query param fails soft:
// unknown periods and status filters fall back to defaults, malformed product
// ids are skipped.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	input := &service.ReportInput{
		Period:     enum.ParseReportPeriod(c.Query("period")),
		Status:     enum.ParseReportStatusFilter(c.Query("status")),
		ProductIDs: parseProductIDs(c.Query("product_ids")),
	}

	dashboard, err := h.reportService.BuildDashboard(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", dashboard)
}

// parseProductIDs splits a comma-separated uuid list, dropping malformed
// entries
func parseProductIDs(raw string) []uuid.UUID {
	if raw == "" {
		return nil
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
