package service

import (
	"context"
	"testing"

	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactPhoneIsNormalized(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"national format", "(650) 253-0000", "+16502530000"},
		{"international format", "+44 20 7031 3000", "+442070313000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := f.contacts.CreateContact(f.ctx, &ContactInput{Name: strp("Someone"), Phone: strp(tt.phone)})
			require.NoError(t, err)
			require.NotNil(t, c.Phone)
			assert.Equal(t, tt.want, *c.Phone)
		})
	}
}

func TestContactInvalidPhone(t *testing.T) {
	f := newFixture(t)

	_, err := f.contacts.CreateContact(f.ctx, &ContactInput{Name: strp("Someone"), Phone: strp("12")})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "phone", appErr.Errors[0].Field)
}

func TestUpdateContact(t *testing.T) {
	f := newFixture(t)

	c, err := f.contacts.UpdateContact(f.ctx, f.contact.ID, &ContactInput{Email: strp("jane@example.com"), Phone: strp("")})
	require.NoError(t, err)
	assert.Equal(t, "Jane Buyer", c.Name)
	assert.Equal(t, "jane@example.com", *c.Email)
	assert.Nil(t, c.Phone)

	_, err = f.contacts.UpdateContact(f.ctx, f.contact.ID, &ContactInput{Name: strp(" ")})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.contacts.GetContact(f.otherCompany(t), f.contact.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestProductValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.CreateProduct(f.ctx, &ProductInput{Name: strp("Bad"), Price: decp("-1")})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidAmount))

	_, err = f.catalog.UpdateProduct(f.ctx, f.product.ID, &ProductInput{TaxRate: decp("150")})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidAmount))

	_, err = f.catalog.CreateProduct(f.ctx, &ProductInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestEnsureDefaultCompanyIsIdempotent(t *testing.T) {
	f := newFixture(t)

	again, err := f.companies.EnsureDefaultCompany(context.Background(), &config.SeedConfig{CompanyName: "Acme Ltd", CompanySlug: "acme", Currency: "EUR"})
	require.NoError(t, err)
	assert.Equal(t, f.company.ID, again.ID)

	_, err = f.companies.EnsureDefaultCompany(context.Background(), &config.SeedConfig{})
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}
