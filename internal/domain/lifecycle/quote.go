package lifecycle

import (
	"strings"
	"time"

	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/apperror"
)

// SetQuoteStatus flips the QUOTE/ORDER marker of an unconverted quote
func SetQuoteStatus(q *entity.Quote, status enum.QuoteStatus) error {
	if err := q.CheckMutable(); err != nil {
		return err
	}
	if !status.IsValid() {
		return apperror.NewInvalidTransitionError("Unknown quote status " + status.String())
	}

	q.Status = status
	return nil
}

// SetClientApproval records the customer's decision on a pending quote.
// A rejection needs a non-empty reason.
func SetClientApproval(q *entity.Quote, action enum.ApprovalAction, reason string, now time.Time) error {
	if err := q.CheckMutable(); err != nil {
		return err
	}
	if q.Approval.IsTerminal() {
		return apperror.NewInvalidTransitionError("Quote " + q.Number + " was already " + strings.ToLower(q.Approval.String()))
	}

	switch action {
	case enum.ApprovalActionApprove:
		q.Approval = enum.ApprovalStatusApproved
		q.RejectionReason = nil
	case enum.ApprovalActionReject:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return apperror.NewInvalidTransitionError("A rejection reason is required")
		}
		q.Approval = enum.ApprovalStatusRejected
		q.RejectionReason = &reason
	default:
		return apperror.NewInvalidTransitionError("Unknown approval action " + string(action))
	}

	q.ApprovalDecidedAt = &now
	return nil
}

// MarkQuoteConverted sets the one-time link to the invoice produced from the quote
func MarkQuoteConverted(q *entity.Quote, invoice *entity.Invoice, now time.Time) error {
	if q.IsConverted() {
		return apperror.ErrAlreadyConverted
	}

	id := invoice.ID
	q.ConvertedInvoiceID = &id
	q.ConvertedAt = &now
	return nil
}
