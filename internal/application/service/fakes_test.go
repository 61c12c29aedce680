package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
)

// ============================================================================
// IN-MEMORY STORE
// ============================================================================

var errDuplicate = errors.New("duplicate key value violates unique constraint")

type seqKey struct {
	company uuid.UUID
	docType enum.DocumentType
}

type tables struct {
	companies  map[uuid.UUID]entity.Company
	sequences  map[seqKey]entity.NumberSequence
	contacts   map[uuid.UUID]entity.Contact
	products   map[uuid.UUID]entity.Product
	projects   map[uuid.UUID]entity.Project
	invoices   map[uuid.UUID]entity.Invoice
	quotes     map[uuid.UUID]entity.Quote
	workOrders map[uuid.UUID]entity.WorkOrder
	trackings  map[uuid.UUID]entity.Tracking
}

func newTables() *tables {
	return &tables{
		companies:  make(map[uuid.UUID]entity.Company),
		sequences:  make(map[seqKey]entity.NumberSequence),
		contacts:   make(map[uuid.UUID]entity.Contact),
		products:   make(map[uuid.UUID]entity.Product),
		projects:   make(map[uuid.UUID]entity.Project),
		invoices:   make(map[uuid.UUID]entity.Invoice),
		quotes:     make(map[uuid.UUID]entity.Quote),
		workOrders: make(map[uuid.UUID]entity.WorkOrder),
		trackings:  make(map[uuid.UUID]entity.Tracking),
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone is enough for a snapshot: stored values never share item slices with callers
func (t *tables) clone() *tables {
	return &tables{
		companies:  copyMap(t.companies),
		sequences:  copyMap(t.sequences),
		contacts:   copyMap(t.contacts),
		products:   copyMap(t.products),
		projects:   copyMap(t.projects),
		invoices:   copyMap(t.invoices),
		quotes:     copyMap(t.quotes),
		workOrders: copyMap(t.workOrders),
		trackings:  copyMap(t.trackings),
	}
}

type txMarker struct{}

// store emulates the database: one transaction at a time, rollback on error
type store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data *tables

	rollbacks int

	// staleReads makes GetForUpdate forget conversion links, as a read racing a
	// concurrent conversion would
	staleReads bool
}

func newStore() *store {
	return &store{data: newTables()}
}

func (s *store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.rollbacks++
		s.mu.Unlock()
		return err
	}
	return nil
}

func inCompany(ctx context.Context, companyID uuid.UUID) bool {
	id, ok := repository.CompanyFromContext(ctx)
	return ok && id == companyID
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func cloneInvoice(inv entity.Invoice) *entity.Invoice {
	inv.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return &inv
}

func cloneQuote(q entity.Quote) *entity.Quote {
	q.Items = append([]entity.QuoteItem(nil), q.Items...)
	return &q
}

func cloneWorkOrder(wo entity.WorkOrder) *entity.WorkOrder {
	wo.Items = append([]entity.WorkOrderItem(nil), wo.Items...)
	return &wo
}

func (s *store) invoicesFor(companyID uuid.UUID) []entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Invoice
	for _, inv := range s.data.invoices {
		if inv.CompanyID == companyID {
			out = append(out, *cloneInvoice(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// ============================================================================
// COMPANY REPOSITORY
// ============================================================================

type companyRepo struct{ s *store }

func (r companyRepo) Create(ctx context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	for _, c := range r.s.data.companies {
		if c.Slug == company.Slug {
			return errDuplicate
		}
	}
	r.s.data.companies[company.ID] = *company
	return nil
}

func (r companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r companyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.companies {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r companyRepo) ListSequences(ctx context.Context, companyID uuid.UUID) ([]entity.NumberSequence, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.NumberSequence
	for k, seq := range r.s.data.sequences {
		if k.company == companyID {
			out = append(out, seq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentType < out[j].DocumentType })
	return out, nil
}

func (r companyRepo) EnsureSequence(ctx context.Context, defaults *entity.NumberSequence) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := seqKey{defaults.CompanyID, defaults.DocumentType}
	if _, ok := r.s.data.sequences[key]; ok {
		return nil
	}
	seq := *defaults
	seq.ID = uuid.New()
	r.s.data.sequences[key] = seq
	return nil
}

func (r companyRepo) NextSequence(ctx context.Context, companyID uuid.UUID, docType enum.DocumentType) (*entity.NumberSequence, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := seqKey{companyID, docType}
	seq, ok := r.s.data.sequences[key]
	if !ok {
		return nil, nil
	}
	issued := seq
	seq.NextNumber++
	r.s.data.sequences[key] = seq
	return &issued, nil
}

func (r companyRepo) UpdateSequence(ctx context.Context, seq *entity.NumberSequence) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := seqKey{seq.CompanyID, seq.DocumentType}
	current, ok := r.s.data.sequences[key]
	if !ok {
		return nil
	}
	current.Prefix = seq.Prefix
	current.Padding = seq.Padding
	current.NextNumber = seq.NextNumber
	r.s.data.sequences[key] = current
	return nil
}

func (r companyRepo) GetSequence(ctx context.Context, companyID uuid.UUID, docType enum.DocumentType) (*entity.NumberSequence, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seq, ok := r.s.data.sequences[seqKey{companyID, docType}]
	if !ok {
		return nil, nil
	}
	return &seq, nil
}

// ============================================================================
// CATALOG AND CONTACT REPOSITORIES
// ============================================================================

type catalogRepo struct{ s *store }

func (r catalogRepo) CreateProduct(ctx context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.s.data.products[product.ID] = *product
	return nil
}

func (r catalogRepo) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok || !inCompany(ctx, p.CompanyID) {
		return nil, nil
	}
	return &p, nil
}

func (r catalogRepo) UpdateProduct(ctx context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.products[product.ID] = *product
	return nil
}

func (r catalogRepo) ListProducts(ctx context.Context, params *repository.CatalogFilterParams) ([]entity.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Product
	for _, p := range r.s.data.products {
		if inCompany(ctx, p.CompanyID) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r catalogRepo) CreateProject(ctx context.Context, project *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	r.s.data.projects[project.ID] = *project
	return nil
}

func (r catalogRepo) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.projects[id]
	if !ok || !inCompany(ctx, p.CompanyID) {
		return nil, nil
	}
	return &p, nil
}

func (r catalogRepo) ListProjects(ctx context.Context, params *repository.CatalogFilterParams) ([]entity.Project, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Project
	for _, p := range r.s.data.projects {
		if inCompany(ctx, p.CompanyID) {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

type contactRepo struct{ s *store }

func (r contactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	r.s.data.contacts[contact.ID] = *contact
	return nil
}

func (r contactRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.contacts[id]
	if !ok || !inCompany(ctx, c.CompanyID) {
		return nil, nil
	}
	return &c, nil
}

func (r contactRepo) Update(ctx context.Context, contact *entity.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.contacts[contact.ID] = *contact
	return nil
}

func (r contactRepo) List(ctx context.Context, params *repository.CatalogFilterParams) ([]entity.Contact, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Contact
	for _, c := range r.s.data.contacts {
		if inCompany(ctx, c.CompanyID) {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

// ============================================================================
// DOCUMENT REPOSITORIES
// ============================================================================

type invoiceRepo struct{ s *store }

func (r invoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	for _, existing := range r.s.data.invoices {
		if existing.CompanyID == invoice.CompanyID && existing.Number == invoice.Number {
			return errDuplicate
		}
		if invoice.QuoteID != nil && existing.QuoteID != nil && *existing.QuoteID == *invoice.QuoteID {
			return errDuplicate
		}
		if invoice.TrackingID != nil && existing.TrackingID != nil && *existing.TrackingID == *invoice.TrackingID {
			return errDuplicate
		}
	}
	for i := range invoice.Items {
		invoice.Items[i].InvoiceID = invoice.ID
	}
	r.s.data.invoices[invoice.ID] = *cloneInvoice(*invoice)
	return nil
}

func (r invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.data.invoices[id]
	if !ok || !inCompany(ctx, inv.CompanyID) {
		return nil, nil
	}
	return cloneInvoice(inv), nil
}

func (r invoiceRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r invoiceRepo) Save(ctx context.Context, invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.invoices[invoice.ID] = *cloneInvoice(*invoice)
	return nil
}

func (r invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.invoices, id)
	return nil
}

func (r invoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Invoice
	for _, inv := range r.s.data.invoices {
		if !inCompany(ctx, inv.CompanyID) {
			continue
		}
		if params.ValidationStatus != nil && inv.ValidationStatus != *params.ValidationStatus {
			continue
		}
		if params.PaymentStatus != nil && inv.PaymentStatus != *params.PaymentStatus {
			continue
		}
		out = append(out, *cloneInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, int64(len(out)), nil
}

func (r invoiceRepo) CountByQuote(ctx context.Context, quoteID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, inv := range r.s.data.invoices {
		if inv.QuoteID != nil && *inv.QuoteID == quoteID {
			n++
		}
	}
	return n, nil
}

type quoteRepo struct{ s *store }

func (r quoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	if quote.ApprovalToken == uuid.Nil {
		quote.ApprovalToken = uuid.New()
	}
	r.s.data.quotes[quote.ID] = *cloneQuote(*quote)
	return nil
}

func (r quoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.data.quotes[id]
	if !ok || !inCompany(ctx, q.CompanyID) {
		return nil, nil
	}
	return cloneQuote(q), nil
}

func (r quoteRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	q, err := r.GetByID(ctx, id)
	if q != nil && r.s.staleReads {
		q.ConvertedInvoiceID = nil
		q.ConvertedAt = nil
	}
	return q, err
}

func (r quoteRepo) GetByApprovalToken(ctx context.Context, token uuid.UUID) (*entity.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, q := range r.s.data.quotes {
		if q.ApprovalToken == token {
			return cloneQuote(q), nil
		}
	}
	return nil, nil
}

// Save leaves the conversion link alone, like the column list of the real UPDATE
func (r quoteRepo) Save(ctx context.Context, quote *entity.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := cloneQuote(*quote)
	if current, ok := r.s.data.quotes[quote.ID]; ok {
		stored.ConvertedInvoiceID = current.ConvertedInvoiceID
		stored.ConvertedAt = current.ConvertedAt
	}
	r.s.data.quotes[quote.ID] = *stored
	return nil
}

func (r quoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.quotes, id)
	return nil
}

func (r quoteRepo) List(ctx context.Context, params *repository.QuoteFilterParams) ([]entity.Quote, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Quote
	for _, q := range r.s.data.quotes {
		if !inCompany(ctx, q.CompanyID) {
			continue
		}
		if params.Converted != nil && q.IsConverted() != *params.Converted {
			continue
		}
		out = append(out, *cloneQuote(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, int64(len(out)), nil
}

func (r quoteRepo) LinkInvoice(ctx context.Context, quoteID, invoiceID uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.data.quotes[quoteID]
	if !ok || q.ConvertedInvoiceID != nil {
		return false, nil
	}
	q.ConvertedInvoiceID = &invoiceID
	q.ConvertedAt = &at
	r.s.data.quotes[quoteID] = q
	return true, nil
}

type workOrderRepo struct{ s *store }

func (r workOrderRepo) Create(ctx context.Context, wo *entity.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if wo.ID == uuid.Nil {
		wo.ID = uuid.New()
	}
	r.s.data.workOrders[wo.ID] = *cloneWorkOrder(*wo)
	return nil
}

func (r workOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wo, ok := r.s.data.workOrders[id]
	if !ok || !inCompany(ctx, wo.CompanyID) {
		return nil, nil
	}
	return cloneWorkOrder(wo), nil
}

func (r workOrderRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	return r.GetByID(ctx, id)
}

func (r workOrderRepo) Save(ctx context.Context, wo *entity.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.workOrders[wo.ID] = *cloneWorkOrder(*wo)
	return nil
}

func (r workOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.workOrders, id)
	return nil
}

func (r workOrderRepo) List(ctx context.Context, params *repository.DocumentFilterParams) ([]entity.WorkOrder, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.WorkOrder
	for _, wo := range r.s.data.workOrders {
		if inCompany(ctx, wo.CompanyID) {
			out = append(out, *cloneWorkOrder(wo))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, int64(len(out)), nil
}

type trackingRepo struct{ s *store }

func (r trackingRepo) Create(ctx context.Context, t *entity.Tracking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.s.data.trackings[t.ID] = *t
	return nil
}

func (r trackingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tracking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.data.trackings[id]
	if !ok || !inCompany(ctx, t.CompanyID) {
		return nil, nil
	}
	return &t, nil
}

func (r trackingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Tracking, error) {
	t, err := r.GetByID(ctx, id)
	if t != nil && r.s.staleReads {
		t.InvoiceID = nil
		t.InvoicedAt = nil
	}
	return t, err
}

// Save leaves the invoice link alone, like the column list of the real UPDATE
func (r trackingRepo) Save(ctx context.Context, t *entity.Tracking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *t
	if current, ok := r.s.data.trackings[t.ID]; ok {
		stored.InvoiceID = current.InvoiceID
		stored.InvoicedAt = current.InvoicedAt
	}
	r.s.data.trackings[t.ID] = stored
	return nil
}

func (r trackingRepo) List(ctx context.Context, params *repository.TrackingFilterParams) ([]entity.Tracking, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Tracking
	for _, t := range r.s.data.trackings {
		if !inCompany(ctx, t.CompanyID) {
			continue
		}
		if params.Stage != nil && t.Stage != *params.Stage {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, int64(len(out)), nil
}

func (r trackingRepo) LinkInvoice(ctx context.Context, trackingID, invoiceID uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.data.trackings[trackingID]
	if !ok || t.InvoiceID != nil {
		return false, nil
	}
	t.InvoiceID = &invoiceID
	t.InvoicedAt = &at
	r.s.data.trackings[trackingID] = t
	return true, nil
}
