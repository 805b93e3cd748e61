package inventory

import (
	"sort"
)

// PlanFIFO plans a deduction of qty units across batches.
// Batches are consumed soonest-to-expire first; ties break by received
// date, then batch number, so the order is deterministic. Each batch
// contributes min(batch quantity, remaining) and is never overdrawn.
//
// Pure function: input batches are not modified.
func PlanFIFO(batches []*ProductBatch, qty int64) Plan {
	if qty <= 0 {
		return Plan{}
	}

	drawable := make([]*ProductBatch, 0, len(batches))
	for _, b := range batches {
		if b.IsDrawable() {
			drawable = append(drawable, b)
		}
	}

	sort.SliceStable(drawable, func(i, j int) bool {
		if !drawable[i].ExpiryDate.Equal(drawable[j].ExpiryDate) {
			return drawable[i].ExpiryDate.Before(drawable[j].ExpiryDate)
		}
		if !drawable[i].ReceivedAt.Equal(drawable[j].ReceivedAt) {
			return drawable[i].ReceivedAt.Before(drawable[j].ReceivedAt)
		}
		return drawable[i].BatchNumber < drawable[j].BatchNumber
	})

	plan := Plan{}
	remaining := qty

	for _, b := range drawable {
		if remaining == 0 {
			break
		}

		draw := b.Quantity
		if draw > remaining {
			draw = remaining
		}

		plan.Draws = append(plan.Draws, Draw{
			BatchID:     b.ID,
			BatchNumber: b.BatchNumber,
			Quantity:    draw,
		})
		remaining -= draw
	}

	plan.Shortfall = remaining
	return plan
}
