package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/application/service"
	"github.com/svergara/heladeria-api/internal/presentation/http/dto/request"
	"github.com/svergara/heladeria-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer registry HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers with search
func (h *CustomerHandler) List(c *gin.Context) {
	params := ParsePagination(c)
	result, err := h.customerService.ListCustomers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Get handles retrieving a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Create handles registering a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles removing a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

func customerInput(req *request.CustomerRequest) *service.CreateCustomerInput {
	return &service.CreateCustomerInput{
		TaxID:             req.TaxID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Type:              req.Type,
		Address:           req.Address,
		Country:           req.Country,
		Region:            req.Region,
		City:              req.City,
		Phone:             req.Phone,
		Email:             req.Email,
		PreferredLanguage: req.PreferredLanguage,
		PreferredDocument: req.PreferredDocument,
		SendReceiptEmail:  req.SendReceiptEmail,
		AcceptsPromos:     req.AcceptsPromos,
	}
}
