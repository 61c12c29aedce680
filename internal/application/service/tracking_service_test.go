package service

import (
	"testing"

	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTrackingStartsRequested(t *testing.T) {
	f := newFixture(t)

	tr := newTracking(t, f, &f.product.ID, "4")
	assert.Equal(t, "TRK-0001", tr.Reference)
	assert.Equal(t, enum.TrackingStageRequested, tr.Stage)
	require.NotNil(t, tr.RequestedAt)
	assert.Equal(t, fixedNow(), *tr.RequestedAt)
}

func TestCreateTrackingRejectsInvalidWeight(t *testing.T) {
	for _, weight := range []string{"-1", "1.00001", "10000000000000000"} {
		t.Run(weight, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.trackings.CreateTracking(f.ctx, &CreateTrackingInput{ContactID: f.contact.ID, Weight: decp(weight)})
			assert.True(t, apperror.IsKind(err, apperror.KindInvalidAmount))
		})
	}
}

func TestAdvanceTrackingOneStageAtATime(t *testing.T) {
	f := newFixture(t)
	tr := newTracking(t, f, nil, "")

	tr, err := f.trackings.Advance(f.ctx, tr.ID, enum.TrackingStageReceived)
	require.NoError(t, err)
	require.NotNil(t, tr.ReceivedAt)

	_, err = f.trackings.Advance(f.ctx, tr.ID, enum.TrackingStageShipped)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))

	tr, err = f.trackings.Advance(f.ctx, tr.ID, enum.TrackingStagePaid)
	require.NoError(t, err)
	assert.Equal(t, enum.TrackingStagePaid, tr.Stage)

	_, err = f.trackings.Advance(f.ctx, tr.ID, enum.TrackingStageReceived)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition), "no going back")

	for _, stage := range []enum.TrackingStage{enum.TrackingStageShipped, enum.TrackingStageInTransit, enum.TrackingStageDelivered} {
		tr, err = f.trackings.Advance(f.ctx, tr.ID, stage)
		require.NoError(t, err)
	}
	assert.NotNil(t, tr.DeliveredAt)
	assert.NotNil(t, tr.RequestedAt, "earlier stamps are kept")

	_, err = f.trackings.Advance(f.ctx, tr.ID, enum.TrackingStageDelivered)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}

func TestInvoicedTrackingIsFrozen(t *testing.T) {
	f := newFixture(t)
	tr := newTracking(t, f, &f.product.ID, "1")

	tr, err := f.trackings.UpdateTracking(f.ctx, tr.ID, &UpdateTrackingInput{Weight: decp("3")})
	require.NoError(t, err)
	assert.True(t, tr.Weight.Equal(dec("3")))

	_, err = f.conversion.ConvertTrackingToInvoice(f.ctx, tr.ID)
	require.NoError(t, err)

	_, err = f.trackings.UpdateTracking(f.ctx, tr.ID, &UpdateTrackingInput{Weight: decp("5")})
	assert.True(t, apperror.IsKind(err, apperror.KindDocumentLocked))

	// stage advancement is independent of billing
	tr, err = f.trackings.Advance(f.ctx, tr.ID, enum.TrackingStageReceived)
	require.NoError(t, err)
	assert.True(t, tr.IsInvoiced())
}

func TestUpdateTrackingClearsProduct(t *testing.T) {
	f := newFixture(t)
	tr := newTracking(t, f, &f.product.ID, "1")

	tr, err := f.trackings.UpdateTracking(f.ctx, tr.ID, &UpdateTrackingInput{ClearProduct: true})
	require.NoError(t, err)
	assert.Nil(t, tr.ProductID)

	_, err = f.conversion.ConvertTrackingToInvoice(f.ctx, tr.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindMissingProduct))
}
