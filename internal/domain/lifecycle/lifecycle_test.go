package lifecycle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func invoiceWithTotals(totals ...int64) *entity.Invoice {
	inv := &entity.Invoice{ID: uuid.New(), Number: "INV-0001"}
	for _, t := range totals {
		inv.Items = append(inv.Items, entity.InvoiceItem{LineItem: entity.LineItem{Total: decimal.NewFromInt(t)}})
	}
	return inv
}

func TestValidateInvoice(t *testing.T) {
	tests := []struct {
		name    string
		inv     *entity.Invoice
		wantErr apperror.Kind
	}{
		{"one nonzero line", invoiceWithTotals(242), ""},
		{"zero line beside nonzero line", invoiceWithTotals(0, 5), ""},
		{"no lines", invoiceWithTotals(), apperror.KindEmptyDocument},
		{"only zero lines", invoiceWithTotals(0, 0), apperror.KindEmptyDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInvoice(tt.inv, now)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, enum.ValidationStatusValidated, tt.inv.ValidationStatus)
				assert.Equal(t, now, *tt.inv.ValidatedAt)
				return
			}
			assert.True(t, apperror.IsKind(err, tt.wantErr))
			assert.Equal(t, enum.ValidationStatusDraft, tt.inv.ValidationStatus)
		})
	}
}

func TestValidateTwiceIsInvalidTransition(t *testing.T) {
	inv := invoiceWithTotals(10)
	require.NoError(t, ValidateInvoice(inv, now))

	err := ValidateInvoice(inv, now)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}

func TestRevertInvoice(t *testing.T) {
	inv := invoiceWithTotals(10)
	assert.True(t, apperror.IsKind(RevertInvoice(inv), apperror.KindInvalidTransition))

	require.NoError(t, TransitionInvoice(inv, enum.ValidationStatusValidated, now))
	assert.ErrorIs(t, inv.CheckMutable(), apperror.ErrDocumentLocked)

	require.NoError(t, TransitionInvoice(inv, enum.ValidationStatusDraft, now))
	assert.Equal(t, enum.ValidationStatusDraft, inv.ValidationStatus)
	assert.Nil(t, inv.ValidatedAt)
	assert.NoError(t, inv.CheckMutable())
}

func TestPaymentAxisIsIndependent(t *testing.T) {
	inv := invoiceWithTotals(10)
	require.NoError(t, ValidateInvoice(inv, now))

	require.NoError(t, SetInvoicePayment(inv, enum.PaymentStatusPaid, now))
	assert.Equal(t, enum.PaymentStatusPaid, inv.PaymentStatus)
	assert.Equal(t, enum.ValidationStatusValidated, inv.ValidationStatus)
	assert.NotNil(t, inv.PaidAt)

	require.NoError(t, SetInvoicePayment(inv, enum.PaymentStatusUnpaid, now))
	assert.Equal(t, enum.PaymentStatusUnpaid, inv.PaymentStatus)
	assert.Nil(t, inv.PaidAt)

	err := SetInvoicePayment(inv, enum.PaymentStatus(7), now)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}

func TestSetQuoteStatus(t *testing.T) {
	q := &entity.Quote{ID: uuid.New()}

	require.NoError(t, SetQuoteStatus(q, enum.QuoteStatusOrder))
	assert.Equal(t, enum.QuoteStatusOrder, q.Status)
	require.NoError(t, SetQuoteStatus(q, enum.QuoteStatusQuote))

	inv := &entity.Invoice{ID: uuid.New()}
	require.NoError(t, MarkQuoteConverted(q, inv, now))
	assert.ErrorIs(t, SetQuoteStatus(q, enum.QuoteStatusOrder), apperror.ErrDocumentLocked)
	assert.ErrorIs(t, MarkQuoteConverted(q, inv, now), apperror.ErrAlreadyConverted)
}

func TestSetClientApproval(t *testing.T) {
	tests := []struct {
		name         string
		action       enum.ApprovalAction
		reason       string
		wantApproval enum.ApprovalStatus
		wantErr      apperror.Kind
	}{
		{"approve", enum.ApprovalActionApprove, "", enum.ApprovalStatusApproved, ""},
		{"reject with reason", enum.ApprovalActionReject, "Too expensive", enum.ApprovalStatusRejected, ""},
		{"reject without reason", enum.ApprovalActionReject, "   ", enum.ApprovalStatusPending, apperror.KindInvalidTransition},
		{"unknown action", enum.ApprovalAction("maybe"), "", enum.ApprovalStatusPending, apperror.KindInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &entity.Quote{ID: uuid.New()}
			err := SetClientApproval(q, tt.action, tt.reason, now)
			if tt.wantErr != "" {
				assert.True(t, apperror.IsKind(err, tt.wantErr))
			} else {
				require.NoError(t, err)
				assert.Equal(t, now, *q.ApprovalDecidedAt)
			}
			assert.Equal(t, tt.wantApproval, q.Approval)
		})
	}
}

func TestApprovalIsTerminal(t *testing.T) {
	q := &entity.Quote{ID: uuid.New()}
	require.NoError(t, SetClientApproval(q, enum.ApprovalActionReject, "No budget", now))

	err := SetClientApproval(q, enum.ApprovalActionApprove, "", now)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
	assert.Equal(t, enum.ApprovalStatusRejected, q.Approval)
	assert.Equal(t, "No budget", *q.RejectionReason)
}

func TestConvertedQuoteRejectsApproval(t *testing.T) {
	invoiceID := uuid.New()
	q := &entity.Quote{ID: uuid.New(), ConvertedInvoiceID: &invoiceID}

	err := SetClientApproval(q, enum.ApprovalActionApprove, "", now)
	assert.True(t, apperror.IsKind(err, apperror.KindDocumentLocked))
}

func items(progress ...enum.WorkProgress) []entity.WorkOrderItem {
	out := make([]entity.WorkOrderItem, len(progress))
	for i, p := range progress {
		out[i] = entity.WorkOrderItem{Progress: p}
	}
	return out
}

func TestDeriveStatus(t *testing.T) {
	const (
		P = enum.WorkProgressPending
		I = enum.WorkProgressInProgress
		C = enum.WorkProgressCompleted
	)

	tests := []struct {
		name  string
		items []entity.WorkOrderItem
		want  enum.WorkProgress
	}{
		{"empty", nil, P},
		{"all pending", items(P, P), P},
		{"completed and pending mix", items(C, P, P), P},
		{"any in progress", items(C, I, P), I},
		{"all completed", items(C, C, C), C},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.items))
		})
	}
}

func TestFinalizeAndReopen(t *testing.T) {
	earlier := now.Add(-time.Hour)
	wo := &entity.WorkOrder{Items: items(enum.WorkProgressCompleted, enum.WorkProgressPending, enum.WorkProgressPending)}
	wo.Items[0].CompletedAt = &earlier

	Finalize(wo, now)
	assert.Equal(t, enum.WorkProgressCompleted, wo.Status)
	for _, item := range wo.Items {
		assert.Equal(t, enum.WorkProgressCompleted, item.Progress)
		require.NotNil(t, item.CompletedAt)
	}
	assert.Equal(t, earlier, *wo.Items[0].CompletedAt)
	assert.Equal(t, now, *wo.Items[1].CompletedAt)

	Reopen(wo)
	assert.Equal(t, enum.WorkProgressPending, wo.Status)
	for _, item := range wo.Items {
		assert.Equal(t, enum.WorkProgressPending, item.Progress)
		assert.Nil(t, item.CompletedAt)
	}
}

func TestSetItemProgress(t *testing.T) {
	wo := &entity.WorkOrder{Items: items(enum.WorkProgressPending, enum.WorkProgressPending)}

	require.NoError(t, SetItemProgress(wo, 0, enum.WorkProgressInProgress, now))
	assert.Equal(t, enum.WorkProgressInProgress, wo.Status)
	assert.Nil(t, wo.Items[0].CompletedAt)

	require.NoError(t, SetItemProgress(wo, 0, enum.WorkProgressCompleted, now))
	assert.Equal(t, now, *wo.Items[0].CompletedAt)
	assert.Equal(t, enum.WorkProgressPending, wo.Status)

	require.NoError(t, SetItemProgress(wo, 0, enum.WorkProgressPending, now))
	assert.Nil(t, wo.Items[0].CompletedAt)

	assert.True(t, apperror.IsKind(SetItemProgress(wo, 5, enum.WorkProgressCompleted, now), apperror.KindNotFound))
	assert.True(t, apperror.IsKind(SetItemProgress(wo, 0, enum.WorkProgress(9), now), apperror.KindInvalidTransition))
}

func TestAdvanceTracking(t *testing.T) {
	tr := &entity.Tracking{Reference: "TRK-0001"}
	StartTracking(tr, now)
	require.NoError(t, AdvanceTracking(tr, enum.TrackingStageReceived, now))

	err := AdvanceTracking(tr, enum.TrackingStageShipped, now)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
	assert.Equal(t, enum.TrackingStageReceived, tr.Stage)
	assert.Nil(t, tr.ShippedAt)

	later := now.Add(time.Hour)
	require.NoError(t, AdvanceTracking(tr, enum.TrackingStagePaid, later))
	assert.Equal(t, enum.TrackingStagePaid, tr.Stage)
	assert.Equal(t, later, *tr.PaidAt)
	assert.Equal(t, now, *tr.RequestedAt)
	assert.Equal(t, now, *tr.ReceivedAt)
}

func TestAdvanceTrackingRejectsBackwardAndBeyondLast(t *testing.T) {
	tr := &entity.Tracking{Stage: enum.TrackingStageShipped}
	assert.True(t, apperror.IsKind(AdvanceTracking(tr, enum.TrackingStagePaid, now), apperror.KindInvalidTransition))
	assert.True(t, apperror.IsKind(AdvanceTracking(tr, enum.TrackingStageShipped, now), apperror.KindInvalidTransition))

	tr.Stage = enum.TrackingStageDelivered
	assert.True(t, apperror.IsKind(AdvanceTracking(tr, enum.TrackingStage(6), now), apperror.KindInvalidTransition))
}

func TestAdvanceTrackingKeepsExistingStamp(t *testing.T) {
	stamped := now.Add(-24 * time.Hour)
	tr := &entity.Tracking{Stage: enum.TrackingStageShipped, InTransitAt: &stamped}

	require.NoError(t, AdvanceTracking(tr, enum.TrackingStageInTransit, now))
	assert.Equal(t, stamped, *tr.InTransitAt)
}

func TestMarkTrackingInvoiced(t *testing.T) {
	tr := &entity.Tracking{}
	inv := &entity.Invoice{ID: uuid.New()}

	require.NoError(t, MarkTrackingInvoiced(tr, inv, now))
	assert.Equal(t, inv.ID, *tr.InvoiceID)
	assert.ErrorIs(t, MarkTrackingInvoiced(tr, inv, now), apperror.ErrAlreadyInvoiced)
}
