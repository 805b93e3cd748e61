package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacore/internal/core/entity"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
)

func testBatch(number string, qty int64, expiry, received time.Time) *ProductBatch {
	return &ProductBatch{
		BaseCatalog: entity.NewBaseCatalog(),
		ProductID:   id.New(),
		BatchNumber: number,
		Quantity:    qty,
		ExpiryDate:  expiry,
		Status:      BatchStatusActive,
		UnitCost:    types.MustMoney("1.00"),
		ReceivedAt:  received,
	}
}

func TestPlanFIFO_SoonestExpiryFirst(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	later := testBatch("B-LATE", 100, base.AddDate(0, 6, 0), base)
	sooner := testBatch("B-SOON", 5, base.AddDate(0, 1, 0), base)

	plan := PlanFIFO([]*ProductBatch{later, sooner}, 8)

	require.Len(t, plan.Draws, 2)
	assert.Equal(t, "B-SOON", plan.Draws[0].BatchNumber)
	assert.Equal(t, int64(5), plan.Draws[0].Quantity)
	assert.Equal(t, "B-LATE", plan.Draws[1].BatchNumber)
	assert.Equal(t, int64(3), plan.Draws[1].Quantity)
	assert.Equal(t, int64(0), plan.Shortfall)
	assert.Equal(t, int64(8), plan.Covered())
}

func TestPlanFIFO_TieBreaks(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	expiry := base.AddDate(0, 3, 0)

	// Same expiry: earlier arrival wins.
	early := testBatch("B-2", 10, expiry, base)
	late := testBatch("B-1", 10, expiry, base.Add(time.Hour))

	plan := PlanFIFO([]*ProductBatch{late, early}, 5)
	require.Len(t, plan.Draws, 1)
	assert.Equal(t, "B-2", plan.Draws[0].BatchNumber)

	// Same expiry and arrival: batch number decides.
	a := testBatch("A", 10, expiry, base)
	b := testBatch("B", 10, expiry, base)

	plan = PlanFIFO([]*ProductBatch{b, a}, 5)
	require.Len(t, plan.Draws, 1)
	assert.Equal(t, "A", plan.Draws[0].BatchNumber)
}

func TestPlanFIFO_ClampsToBatchQuantity(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	b := testBatch("B-1", 3, base.AddDate(0, 1, 0), base)

	plan := PlanFIFO([]*ProductBatch{b}, 10)

	require.Len(t, plan.Draws, 1)
	assert.Equal(t, int64(3), plan.Draws[0].Quantity)
	assert.Equal(t, int64(7), plan.Shortfall)
}

func TestPlanFIFO_SkipsUndrawableBatches(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	inactive := testBatch("B-INACTIVE", 50, base.AddDate(0, 1, 0), base)
	inactive.Status = BatchStatusInactive
	empty := testBatch("B-EMPTY", 0, base.AddDate(0, 1, 0), base)
	active := testBatch("B-ACTIVE", 4, base.AddDate(0, 2, 0), base)

	plan := PlanFIFO([]*ProductBatch{inactive, empty, active}, 4)

	require.Len(t, plan.Draws, 1)
	assert.Equal(t, "B-ACTIVE", plan.Draws[0].BatchNumber)
	assert.Equal(t, int64(0), plan.Shortfall)
}

func TestPlanFIFO_NonPositiveQuantity(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	b := testBatch("B-1", 10, base.AddDate(0, 1, 0), base)

	assert.Empty(t, PlanFIFO([]*ProductBatch{b}, 0).Draws)
	assert.Empty(t, PlanFIFO([]*ProductBatch{b}, -5).Draws)
}

func TestPlanFIFO_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	b := testBatch("B-1", 10, base.AddDate(0, 1, 0), base)

	_ = PlanFIFO([]*ProductBatch{b}, 4)

	assert.Equal(t, int64(10), b.Quantity)
	assert.Equal(t, BatchStatusActive, b.Status)
}
