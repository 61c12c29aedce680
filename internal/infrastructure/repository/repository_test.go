package repository

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRun opens a postgres dialect that builds statements without a server
// and records every UPDATE it would send.
func dryRun(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=ledger dbname=ledger sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var statements []string
	err = db.Callback().Update().After("gorm:update").Register("test:record", func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	})
	require.NoError(t, err)
	return db, &statements
}

func TestLinkInvoiceIsConditional(t *testing.T) {
	db, statements := dryRun(t)
	ctx := domainRepo.WithCompany(context.Background(), uuid.New())

	_, err := NewQuoteRepository(db).LinkInvoice(ctx, uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	_, err = NewTrackingRepository(db).LinkInvoice(ctx, uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)

	require.Len(t, *statements, 2)
	quoteSQL, trackingSQL := (*statements)[0], (*statements)[1]

	assert.Contains(t, quoteSQL, "UPDATE \"quotes\"")
	assert.Contains(t, quoteSQL, "converted_invoice_id IS NULL")
	assert.Contains(t, quoteSQL, "company_id = $")

	assert.Contains(t, trackingSQL, "invoice_id IS NULL")
	assert.Contains(t, trackingSQL, "company_id = $")
}

func TestNextSequenceIncrementsInOneStatement(t *testing.T) {
	db, statements := dryRun(t)

	_, err := NewCompanyRepository(db).NextSequence(context.Background(), uuid.New(), enum.DocumentTypeInvoice)
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	assert.Contains(t, (*statements)[0], "next_number + 1")
	assert.Contains(t, (*statements)[0], "RETURNING")
}

func TestCompanyScopeWithoutCompanyMatchesNothing(t *testing.T) {
	db, _ := dryRun(t)

	stmt := db.Scopes(CompanyScope(context.Background())).Find(&[]entity.Contact{}).Statement
	assert.Contains(t, stmt.SQL.String(), "1 = 0")
}

func TestOrderClauseWhitelistsColumns(t *testing.T) {
	assert.Equal(t, "number ASC", orderClause("number", "asc"))
	assert.Equal(t, "created_at DESC", orderClause("id; DROP TABLE invoices", "asc; --"))
	assert.Equal(t, "total DESC", orderClause("total", ""))
}

func TestNextSequenceAgainstPostgres(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") != "1" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires postgres)")
	}
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=ledger_test port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	ctx := context.Background()
	companies := NewCompanyRepository(db)
	transactor := NewTransactor(db)

	company := &entity.Company{Name: "Sequence test", Slug: "sequence-test-" + uuid.NewString()}
	require.NoError(t, companies.Create(ctx, company))
	require.NoError(t, companies.EnsureSequence(ctx, &entity.NumberSequence{
		CompanyID:    company.ID,
		DocumentType: enum.DocumentTypeInvoice,
		Prefix:       "INV-",
		NextNumber:   1,
		Padding:      4,
	}))

	const n = 20
	var wg sync.WaitGroup
	issued := make([]int64, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = transactor.WithinTransaction(ctx, func(ctx context.Context) error {
				seq, err := companies.NextSequence(ctx, company.ID, enum.DocumentTypeInvoice)
				if err == nil && seq != nil {
					issued[i] = seq.NextNumber
				}
				return err
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	sort.Slice(issued, func(a, b int) bool { return issued[a] < issued[b] })
	for i, got := range issued {
		assert.EqualValues(t, i+1, got)
	}

	seq, err := companies.GetSequence(ctx, company.ID, enum.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.EqualValues(t, n+1, seq.NextNumber)
}
