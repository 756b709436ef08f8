package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/application/service"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/internal/domain/repository"
	"github.com/svergara/heladeria-api/internal/presentation/http/dto/request"
	"github.com/svergara/heladeria-api/internal/presentation/http/dto/response"
)

// SaleHandler handles sales history HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales with filtering. Open carts never show up here.
func (h *SaleHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination:     ParsePagination(c),
		CustomerID:     queryUUID(c, "customer_id"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
		SkipUserFilter: IsAdmin(c) && c.Query("all") == "true",
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if status, ok := enum.ParseSaleStatus(statusStr); ok {
			params.Status = &status
		}
	}
	if startStr := c.Query("start_date"); startStr != "" {
		if startDate, err := time.Parse("2006-01-02", startStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if endDate, err := time.Parse("2006-01-02", endStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles retrieving a single sale with its line items
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// UpdateStatus moves a sale to a new status
func (h *SaleHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.UpdateSaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	status, ok := enum.ParseSaleStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Unknown sale status")
		return
	}

	sale, err := h.saleService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale status updated successfully", sale)
}

// Cancel cancels a sale and restores its stock
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", sale)
}

// BulkDelete physically removes multiple sales
func (h *SaleHandler) BulkDelete(c *gin.Context) {
	var req request.BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	deleted, err := h.saleService.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales deleted successfully", gin.H{"deleted": deleted})
}

// BulkUpdateStatus sets a status on multiple sales
func (h *SaleHandler) BulkUpdateStatus(c *gin.Context) {
	var req request.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	status, ok := enum.ParseSaleStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Unknown sale status")
		return
	}

	updated, err := h.saleService.BulkUpdateStatus(c.Request.Context(), req.IDs, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales updated successfully", gin.H{"updated": updated})
}
