package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/pagination"
	"github.com/ttacon/libphonenumber"
)

// ContactService handles customer and supplier records
type ContactService struct {
	contactRepo   repository.ContactRepository
	defaultRegion string
}

// NewContactService creates a new contact service. Phone numbers without a country code
// are read as belonging to defaultRegion.
func NewContactService(contactRepo repository.ContactRepository, defaultRegion string) *ContactService {
	return &ContactService{contactRepo: contactRepo, defaultRegion: defaultRegion}
}

// ContactInput represents the create and update contact input. Nil fields are left as they are on update.
type ContactInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	TaxID   *string
}

// CreateContact creates a new contact
func (s *ContactService) CreateContact(ctx context.Context, input *ContactInput) (*entity.Contact, error) {
	companyID, err := requireCompany(ctx)
	if err != nil {
		return nil, err
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "This field is required"}})
	}

	phone, err := s.normalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}

	contact := &entity.Contact{
		CompanyID: companyID,
		Name:      strings.TrimSpace(*input.Name),
		Email:     input.Email,
		Phone:     phone,
		Address:   input.Address,
		TaxID:     input.TaxID,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// GetContact retrieves a contact by ID
func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}
	return contact, nil
}

// ListContacts lists contacts with pagination
func (s *ContactService) ListContacts(ctx context.Context, params *repository.CatalogFilterParams) (*pagination.PaginatedResult[entity.Contact], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	contacts, total, err := s.contactRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(contacts, p), nil
}

// UpdateContact updates a contact
func (s *ContactService) UpdateContact(ctx context.Context, id uuid.UUID, input *ContactInput) (*entity.Contact, error) {
	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "This field is required"}})
		}
		contact.Name = name
	}
	if input.Phone != nil {
		phone, err := s.normalizePhone(input.Phone)
		if err != nil {
			return nil, err
		}
		contact.Phone = phone
	}
	if input.Email != nil {
		contact.Email = input.Email
	}
	if input.Address != nil {
		contact.Address = input.Address
	}
	if input.TaxID != nil {
		contact.TaxID = input.TaxID
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// normalizePhone stores numbers in E.164. An empty string clears the phone.
func (s *ContactService) normalizePhone(phone *string) (*string, error) {
	if phone == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*phone)
	if raw == "" {
		return nil, nil
	}

	num, err := libphonenumber.Parse(raw, s.defaultRegion)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "phone", Message: "Invalid phone number"}})
	}

	formatted := libphonenumber.Format(num, libphonenumber.E164)
	return &formatted, nil
}
