package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/ledger"
	"github.com/sangkips/ledger-api/internal/domain/lifecycle"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// QuoteService handles quote-related operations, including the public approval page
type QuoteService struct {
	quoteRepo   repository.QuoteRepository
	contactRepo repository.ContactRepository
	companyRepo repository.CompanyRepository
	transactor  repository.Transactor
	numbering   *NumberingService
	lines       lineResolver
	now         func() time.Time
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	contactRepo repository.ContactRepository,
	companyRepo repository.CompanyRepository,
	catalogRepo repository.CatalogRepository,
	transactor repository.Transactor,
	numbering *NumberingService,
) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		contactRepo: contactRepo,
		companyRepo: companyRepo,
		transactor:  transactor,
		numbering:   numbering,
		lines:       lineResolver{catalog: catalogRepo},
		now:         time.Now,
	}
}

// CreateQuoteInput represents the input for creating a quote
type CreateQuoteInput struct {
	ContactID  uuid.UUID
	Date       *time.Time
	ValidUntil *time.Time
	Currency   string
	Notes      *string
	Items      []ItemInput
}

// UpdateQuoteInput represents a header change. Nil fields are left as they are.
type UpdateQuoteInput struct {
	ContactID  *uuid.UUID
	Date       *time.Time
	ValidUntil *time.Time
	Currency   *string
	Notes      *string
}

// CreateQuote creates a pending quote with its own number and approval token
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	companyID, err := requireCompany(ctx)
	if err != nil {
		return nil, err
	}

	quote := &entity.Quote{ID: uuid.New(), CompanyID: companyID, ApprovalToken: uuid.New()}
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireContact(ctx, s.contactRepo, input.ContactID); err != nil {
			return err
		}
		currency, err := currencyOr(ctx, s.companyRepo, companyID, input.Currency)
		if err != nil {
			return err
		}

		quote.ContactID = input.ContactID
		quote.Date = dateOr(input.Date, s.now())
		quote.ValidUntil = input.ValidUntil
		quote.Currency = currency
		quote.Notes = input.Notes
		quote.Status = enum.QuoteStatusQuote
		quote.Approval = enum.ApprovalStatusPending

		if err := s.lines.addItems(ctx, quote, input.Items); err != nil {
			return err
		}

		number, err := s.numbering.NextNumber(ctx, companyID, enum.DocumentTypeQuote)
		if err != nil {
			return err
		}
		quote.Number = number

		return s.quoteRepo.Create(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, quote.ID)
}

// GetQuote retrieves a quote by ID
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotes lists quotes with pagination
func (s *QuoteService) ListQuotes(ctx context.Context, params *repository.QuoteFilterParams) (*pagination.PaginatedResult[entity.Quote], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	quotes, total, err := s.quoteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, p), nil
}

// UpdateQuote changes header fields of an unconverted quote
func (s *QuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, input *UpdateQuoteInput) (*entity.Quote, error) {
	return s.mutate(ctx, id, func(ctx context.Context, quote *entity.Quote) error {
		if err := quote.CheckMutable(); err != nil {
			return err
		}
		if input.ContactID != nil {
			if err := requireContact(ctx, s.contactRepo, *input.ContactID); err != nil {
				return err
			}
			quote.ContactID = *input.ContactID
		}
		if input.Date != nil {
			quote.Date = *input.Date
		}
		if input.ValidUntil != nil {
			quote.ValidUntil = input.ValidUntil
		}
		if input.Currency != nil && *input.Currency != "" {
			quote.Currency = *input.Currency
		}
		if input.Notes != nil {
			quote.Notes = input.Notes
		}
		return nil
	})
}

// DeleteQuote removes an unconverted quote
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.quoteRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if quote == nil {
			return apperror.NewNotFoundError("Quote")
		}
		if err := quote.CheckMutable(); err != nil {
			return err
		}
		return s.quoteRepo.Delete(ctx, id)
	})
}

// AddItem appends a line to an unconverted quote
func (s *QuoteService) AddItem(ctx context.Context, id uuid.UUID, input ItemInput) (*entity.Quote, error) {
	return s.mutate(ctx, id, func(ctx context.Context, quote *entity.Quote) error {
		return s.lines.addItem(ctx, quote, input)
	})
}

// UpdateItem patches the line at index
func (s *QuoteService) UpdateItem(ctx context.Context, id uuid.UUID, index int, input ItemInput) (*entity.Quote, error) {
	return s.mutate(ctx, id, func(ctx context.Context, quote *entity.Quote) error {
		return s.lines.updateItem(ctx, quote, index, input)
	})
}

// RemoveItem deletes the line at index
func (s *QuoteService) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*entity.Quote, error) {
	return s.mutate(ctx, id, func(ctx context.Context, quote *entity.Quote) error {
		return ledger.RemoveItem(quote, index)
	})
}

// SetStatus flips the quote between QUOTE and ORDER
func (s *QuoteService) SetStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) (*entity.Quote, error) {
	return s.mutate(ctx, id, func(ctx context.Context, quote *entity.Quote) error {
		return lifecycle.SetQuoteStatus(quote, status)
	})
}

// GetPublicQuote resolves a quote from its approval token for the unauthenticated page
func (s *QuoteService) GetPublicQuote(ctx context.Context, token uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByApprovalToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// SetClientApproval records the customer's decision. The token is the only capability
// the caller holds; it grants this single action on this single quote.
func (s *QuoteService) SetClientApproval(ctx context.Context, token uuid.UUID, action enum.ApprovalAction, reason string) (*entity.Quote, error) {
	quote, err := s.GetPublicQuote(ctx, token)
	if err != nil {
		return nil, err
	}

	ctx = repository.WithCompany(ctx, quote.CompanyID)
	return s.mutate(ctx, quote.ID, func(ctx context.Context, quote *entity.Quote) error {
		return lifecycle.SetClientApproval(quote, action, reason, s.now())
	})
}

func (s *QuoteService) mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, quote *entity.Quote) error) (*entity.Quote, error) {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.quoteRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if quote == nil {
			return apperror.NewNotFoundError("Quote")
		}
		if err := fn(ctx, quote); err != nil {
			return err
		}
		return s.quoteRepo.Save(ctx, quote)
	})
	if err != nil {
		if !apperror.IsAppError(err) {
			config.LogError(config.GetLogger(), "QuoteService", "mutate", "transaction", id, err)
		}
		return nil, err
	}
	return s.GetQuote(ctx, id)
}
