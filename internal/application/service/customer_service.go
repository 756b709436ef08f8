package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/repository"
	"github.com/svergara/heladeria-api/pkg/apperror"
	"github.com/svergara/heladeria-api/pkg/pagination"
)

// CustomerService handles customer registry operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	TaxID             string
	FirstName         string
	LastName          string
	Type              string
	Address           string
	Country           string
	Region            string
	City              string
	Phone             string
	Email             string
	PreferredLanguage string
	PreferredDocument string
	SendReceiptEmail  *bool
	AcceptsPromos     bool
}

// CreateCustomer registers a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if existing, err := s.customerRepo.GetByTaxID(ctx, input.TaxID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperror.NewConflictError("A customer with this tax ID already exists")
	}

	if input.Email != "" {
		if existing, err := s.customerRepo.GetByEmail(ctx, input.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, apperror.NewConflictError("A customer with this email already exists")
		}
	}

	customer := &entity.Customer{
		TaxID:         input.TaxID,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Type:          input.Type,
		Address:       input.Address,
		Region:        input.Region,
		City:          input.City,
		Phone:         input.Phone,
		Email:         input.Email,
		AcceptsPromos: input.AcceptsPromos,
	}
	if input.Country != "" {
		customer.Country = input.Country
	}
	if input.PreferredLanguage != "" {
		customer.PreferredLanguage = input.PreferredLanguage
	}
	if input.PreferredDocument != "" {
		customer.PreferredDocument = input.PreferredDocument
	}
	if input.SendReceiptEmail != nil {
		customer.SendReceiptEmail = *input.SendReceiptEmail
	} else {
		customer.SendReceiptEmail = true
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer applies a partial update to a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CreateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.TaxID != "" && input.TaxID != customer.TaxID {
		if existing, err := s.customerRepo.GetByTaxID(ctx, input.TaxID); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, apperror.NewConflictError("A customer with this tax ID already exists")
		}
		customer.TaxID = input.TaxID
	}
	if input.Email != "" && input.Email != customer.Email {
		if existing, err := s.customerRepo.GetByEmail(ctx, input.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, apperror.NewConflictError("A customer with this email already exists")
		}
		customer.Email = input.Email
	}

	if input.FirstName != "" {
		customer.FirstName = input.FirstName
	}
	if input.LastName != "" {
		customer.LastName = input.LastName
	}
	if input.Type != "" {
		customer.Type = input.Type
	}
	if input.Address != "" {
		customer.Address = input.Address
	}
	if input.Country != "" {
		customer.Country = input.Country
	}
	if input.Region != "" {
		customer.Region = input.Region
	}
	if input.City != "" {
		customer.City = input.City
	}
	if input.Phone != "" {
		customer.Phone = input.Phone
	}
	if input.PreferredLanguage != "" {
		customer.PreferredLanguage = input.PreferredLanguage
	}
	if input.PreferredDocument != "" {
		customer.PreferredDocument = input.PreferredDocument
	}
	if input.SendReceiptEmail != nil {
		customer.SendReceiptEmail = *input.SendReceiptEmail
	}
	customer.AcceptsPromos = input.AcceptsPromos

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer. Sales keep a null customer reference.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with search and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
