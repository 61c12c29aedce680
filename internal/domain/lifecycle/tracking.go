package lifecycle

import (
	"time"

	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/apperror"
)

// StartTracking puts a new shipment at REQUESTED and stamps it
func StartTracking(t *entity.Tracking, now time.Time) {
	t.Stage = enum.TrackingStageRequested
	if t.RequestedAt == nil {
		t.RequestedAt = &now
	}
}

// AdvanceTracking moves a shipment to target, which must be the stage right after the current one.
// The stage's timestamp is stamped once and never overwritten.
func AdvanceTracking(t *entity.Tracking, target enum.TrackingStage, now time.Time) error {
	next, ok := t.Stage.Next()
	if !ok || target != next {
		return apperror.NewInvalidTransitionError("Cannot move tracking " + t.Reference + " from " + t.Stage.String() + " to " + target.String())
	}

	t.Stage = target
	if slot := t.StageTime(target); slot != nil && *slot == nil {
		*slot = &now
	}
	return nil
}

// MarkTrackingInvoiced sets the one-time link to the invoice produced from the shipment
func MarkTrackingInvoiced(t *entity.Tracking, invoice *entity.Invoice, now time.Time) error {
	if t.IsInvoiced() {
		return apperror.ErrAlreadyInvoiced
	}

	id := invoice.ID
	t.InvoiceID = &id
	t.InvoicedAt = &now
	return nil
}
