package lifecycle

import (
	"time"

	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/apperror"
)

// DeriveStatus computes a work order's overall progress from its items.
// An empty work order is PENDING.
func DeriveStatus(items []entity.WorkOrderItem) enum.WorkProgress {
	if len(items) == 0 {
		return enum.WorkProgressPending
	}

	allCompleted := true
	for _, item := range items {
		if item.Progress == enum.WorkProgressInProgress {
			return enum.WorkProgressInProgress
		}
		if item.Progress != enum.WorkProgressCompleted {
			allCompleted = false
		}
	}
	if allCompleted {
		return enum.WorkProgressCompleted
	}
	return enum.WorkProgressPending
}

// RefreshStatus stores the derived status on the response-only field
func RefreshStatus(wo *entity.WorkOrder) {
	wo.Status = DeriveStatus(wo.Items)
}

// SetItemProgress changes one item's progress. Completing stamps CompletedAt and
// leaving COMPLETED clears it.
func SetItemProgress(wo *entity.WorkOrder, index int, progress enum.WorkProgress, now time.Time) error {
	if index < 0 || index >= len(wo.Items) {
		return apperror.NewNotFoundError("Item")
	}
	if !progress.IsValid() {
		return apperror.NewInvalidTransitionError("Unknown progress " + progress.String())
	}

	setProgress(&wo.Items[index], progress, now)
	RefreshStatus(wo)
	return nil
}

// Finalize completes every item that is not completed yet
func Finalize(wo *entity.WorkOrder, now time.Time) {
	for i := range wo.Items {
		if wo.Items[i].Progress != enum.WorkProgressCompleted {
			setProgress(&wo.Items[i], enum.WorkProgressCompleted, now)
		}
	}
	RefreshStatus(wo)
}

// Reopen resets every item to PENDING
func Reopen(wo *entity.WorkOrder) {
	for i := range wo.Items {
		setProgress(&wo.Items[i], enum.WorkProgressPending, time.Time{})
	}
	RefreshStatus(wo)
}

func setProgress(item *entity.WorkOrderItem, progress enum.WorkProgress, now time.Time) {
	if progress == enum.WorkProgressCompleted {
		if item.Progress != enum.WorkProgressCompleted || item.CompletedAt == nil {
			item.CompletedAt = &now
		}
	} else {
		item.CompletedAt = nil
	}
	item.Progress = progress
}
