package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/application/service"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/internal/domain/repository"
	"github.com/svergara/heladeria-api/internal/presentation/http/dto/request"
	"github.com/svergara/heladeria-api/internal/presentation/http/dto/response"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products with filtering
func (h *ProductHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: ParsePagination(c),
		Search:     c.Query("search"),
		CategoryID: queryUUID(c, "category_id"),
		ActiveOnly: c.Query("active") == "true",
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	// Unknown stock filters fall back to no filter
	switch c.Query("stock") {
	case "in-stock":
		params.Stock = repository.StockFilterInStock
	case "out-of-stock":
		params.Stock = repository.StockFilterOutOfStock
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// ListActive returns the active catalog for the POS screen
func (h *ProductHandler) ListActive(c *gin.Context) {
	products, err := h.productService.ListActiveProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles a partial product update
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Stock:       req.Stock,
		Active:      req.Active,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles removing a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// BulkDelete handles removing multiple products
func (h *ProductHandler) BulkDelete(c *gin.Context) {
	var req request.BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	deleted, err := h.productService.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products deleted successfully", gin.H{"deleted": deleted})
}

// Sales returns a product's sale-line history with stats. All numeric bounds
// fail soft: malformed values behave as if absent.
func (h *ProductHandler) Sales(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	params := &repository.SaleItemFilterParams{
		Pagination:  ParsePagination(c),
		MinQuantity: queryInt(c, "min_quantity"),
		MaxQuantity: queryInt(c, "max_quantity"),
		MinRevenue:  queryMoney(c, "min_revenue"),
		MaxRevenue:  queryMoney(c, "max_revenue"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if status, ok := enum.ParseSaleStatus(statusStr); ok {
			params.Status = &status
		}
	}

	detail, err := h.productService.GetProductSales(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product sales retrieved successfully", detail)
}

// StockCounts summarizes catalog stock availability
func (h *ProductHandler) StockCounts(c *gin.Context) {
	counts, err := h.productService.StockCounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock counts retrieved successfully", counts)
}
