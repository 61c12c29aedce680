// Package lifecycle holds the status rules of each document kind.
package lifecycle

import (
	"time"

	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/apperror"
)

// ValidateInvoice moves a draft invoice to VALIDATED.
// It needs at least one line with a nonzero total.
func ValidateInvoice(inv *entity.Invoice, now time.Time) error {
	if inv.ValidationStatus != enum.ValidationStatusDraft {
		return apperror.NewInvalidTransitionError("Invoice " + inv.Number + " is already validated")
	}
	if !entity.HasNonzeroLine(inv.Lines()) {
		return apperror.ErrEmptyDocument
	}

	inv.ValidationStatus = enum.ValidationStatusValidated
	inv.ValidatedAt = &now
	return nil
}

// RevertInvoice moves a validated invoice back to DRAFT so it can be corrected
func RevertInvoice(inv *entity.Invoice) error {
	if inv.ValidationStatus != enum.ValidationStatusValidated {
		return apperror.NewInvalidTransitionError("Invoice " + inv.Number + " is not validated")
	}

	inv.ValidationStatus = enum.ValidationStatusDraft
	inv.ValidatedAt = nil
	return nil
}

// TransitionInvoice dispatches a requested validation status
func TransitionInvoice(inv *entity.Invoice, target enum.ValidationStatus, now time.Time) error {
	switch target {
	case enum.ValidationStatusValidated:
		return ValidateInvoice(inv, now)
	case enum.ValidationStatusDraft:
		return RevertInvoice(inv)
	}
	return apperror.NewInvalidTransitionError("Unknown validation status " + target.String())
}

// SetInvoicePayment toggles the payment axis. It is allowed whatever the validation status.
func SetInvoicePayment(inv *entity.Invoice, status enum.PaymentStatus, now time.Time) error {
	if !status.IsValid() {
		return apperror.NewInvalidTransitionError("Unknown payment status " + status.String())
	}
	if inv.PaymentStatus == status {
		return nil
	}

	inv.PaymentStatus = status
	if status == enum.PaymentStatusPaid {
		inv.PaidAt = &now
	} else {
		inv.PaidAt = nil
	}
	return nil
}
