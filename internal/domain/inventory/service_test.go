package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type appliedDraw struct {
	batchID id.ID
	qty     int64
}

type fakeBatchRepo struct {
	batches  []*ProductBatch
	applyErr error

	draws []appliedDraw
}

func (r *fakeBatchRepo) Create(ctx context.Context, b *ProductBatch) error {
	r.batches = append(r.batches, b)
	return nil
}

func (r *fakeBatchRepo) GetByID(ctx context.Context, batchID id.ID) (*ProductBatch, error) {
	for _, b := range r.batches {
		if b.ID == batchID {
			return b, nil
		}
	}
	return nil, apperror.NewNotFound("ProductBatch", batchID)
}

func (r *fakeBatchRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*ProductBatch, error) {
	var out []*ProductBatch
	for _, b := range r.batches {
		if b.ProductID == productID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) ListDrawableForUpdate(ctx context.Context, productID id.ID) ([]*ProductBatch, error) {
	var out []*ProductBatch
	for _, b := range r.batches {
		if b.ProductID == productID && b.IsDrawable() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) ApplyDraw(ctx context.Context, batchID id.ID, qty int64) error {
	if r.applyErr != nil {
		return r.applyErr
	}
	r.draws = append(r.draws, appliedDraw{batchID: batchID, qty: qty})
	for _, b := range r.batches {
		if b.ID == batchID {
			b.Quantity -= qty
			if b.Quantity == 0 {
				b.Status = BatchStatusInactive
			}
		}
	}
	return nil
}

func (r *fakeBatchRepo) SumDrawable(ctx context.Context, productID id.ID) (int64, error) {
	var total int64
	for _, b := range r.batches {
		if b.ProductID == productID && b.IsDrawable() {
			total += b.Quantity
		}
	}
	return total, nil
}

func TestDeduct_AppliesPlanInFIFOOrder(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	productID := id.New()

	soon := testBatch("B-SOON", 3, base.AddDate(0, 1, 0), base)
	soon.ProductID = productID
	late := testBatch("B-LATE", 10, base.AddDate(0, 6, 0), base)
	late.ProductID = productID

	repo := &fakeBatchRepo{batches: []*ProductBatch{late, soon}}
	svc := NewService(repo, fakeTxManager{})

	plan, err := svc.Deduct(context.Background(), productID, "Paracetamol", 5)
	require.NoError(t, err)

	require.Len(t, repo.draws, 2)
	assert.Equal(t, soon.ID, repo.draws[0].batchID)
	assert.Equal(t, int64(3), repo.draws[0].qty)
	assert.Equal(t, late.ID, repo.draws[1].batchID)
	assert.Equal(t, int64(2), repo.draws[1].qty)

	assert.Equal(t, int64(5), plan.Covered())
	assert.Equal(t, BatchStatusInactive, soon.Status)
	assert.Equal(t, int64(8), late.Quantity)
}

func TestDeduct_ShortfallWritesNothing(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	productID := id.New()

	b := testBatch("B-1", 4, base.AddDate(0, 1, 0), base)
	b.ProductID = productID

	repo := &fakeBatchRepo{batches: []*ProductBatch{b}}
	svc := NewService(repo, fakeTxManager{})

	_, err := svc.Deduct(context.Background(), productID, "Ibuprofen", 10)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientBatch, appErr.Code)

	// Shortfall must abort before a single draw.
	assert.Empty(t, repo.draws)
	assert.Equal(t, int64(4), b.Quantity)
}

func TestDeduct_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(&fakeBatchRepo{}, fakeTxManager{})

	for _, qty := range []int64{0, -1} {
		_, err := svc.Deduct(context.Background(), id.New(), "X", qty)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}
}

func TestAddBatch_Validates(t *testing.T) {
	repo := &fakeBatchRepo{}
	svc := NewService(repo, fakeTxManager{})

	bad := &ProductBatch{}
	err := svc.AddBatch(context.Background(), bad)
	require.Error(t, err)
	assert.Empty(t, repo.batches)
}
