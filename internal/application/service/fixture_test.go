package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *store
	ctx   context.Context

	company entity.Company
	contact entity.Contact
	product entity.Product

	numbering  *NumberingService
	companies  *CompanyService
	catalog    *CatalogService
	contacts   *ContactService
	invoices   *InvoiceService
	quotes     *QuoteService
	workOrders *WorkOrderService
	trackings  *TrackingService
	conversion *ConversionService
}

func numberingConfig() *config.NumberingConfig {
	return &config.NumberingConfig{
		Padding: 4,
		Prefixes: map[string]string{
			"invoice":    "INV-",
			"quote":      "QUO-",
			"work_order": "WO-",
			"tracking":   "TRK-",
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := newStore()
	companies := companyRepo{s}
	catalog := catalogRepo{s}
	contacts := contactRepo{s}
	invoices := invoiceRepo{s}
	quotes := quoteRepo{s}
	workOrders := workOrderRepo{s}
	trackings := trackingRepo{s}

	numbering := NewNumberingService(companies, s, numberingConfig())

	f := &fixture{
		store:      s,
		numbering:  numbering,
		companies:  NewCompanyService(companies, numbering),
		catalog:    NewCatalogService(catalog),
		contacts:   NewContactService(contacts, "US"),
		invoices:   NewInvoiceService(invoices, contacts, companies, catalog, s, numbering),
		quotes:     NewQuoteService(quotes, contacts, companies, catalog, s, numbering),
		workOrders: NewWorkOrderService(workOrders, contacts, companies, catalog, s, numbering),
		trackings:  NewTrackingService(trackings, contacts, catalog, s, numbering),
		conversion: NewConversionService(quotes, trackings, invoices, companies, catalog, s, numbering, nil),
	}
	f.invoices.now = fixedNow
	f.quotes.now = fixedNow
	f.workOrders.now = fixedNow
	f.trackings.now = fixedNow
	f.conversion.now = fixedNow

	company, err := f.companies.EnsureDefaultCompany(context.Background(), &config.SeedConfig{
		CompanyName: "Acme Ltd",
		CompanySlug: "acme",
		Currency:    "EUR",
	})
	require.NoError(t, err)
	f.company = *company
	f.ctx = repository.WithCompany(context.Background(), company.ID)

	name := "Jane Buyer"
	contact, err := f.contacts.CreateContact(f.ctx, &ContactInput{Name: &name})
	require.NoError(t, err)
	f.contact = *contact

	productName := "Freight"
	price := decimal.NewFromInt(12)
	rate := decimal.NewFromInt(21)
	product, err := f.catalog.CreateProduct(f.ctx, &ProductInput{Name: &productName, Price: &price, TaxRate: &rate})
	require.NoError(t, err)
	f.product = *product

	return f
}

// otherCompany seeds a second company and returns its context
func (f *fixture) otherCompany(t *testing.T) context.Context {
	t.Helper()
	company, err := f.companies.EnsureDefaultCompany(context.Background(), &config.SeedConfig{
		CompanyName: "Other Co",
		CompanySlug: "other-" + uuid.NewString()[:8],
		Currency:    "USD",
	})
	require.NoError(t, err)
	return repository.WithCompany(context.Background(), company.ID)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strp(s string) *string {
	return &s
}

func item(desc, qty, price, rate string) ItemInput {
	return ItemInput{
		Description: strp(desc),
		Quantity:    decp(qty),
		UnitPrice:   decp(price),
		TaxRate:     decp(rate),
	}
}
