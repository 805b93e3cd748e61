package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacore/internal/core/id"
)

func TestNewThresholdAlert(t *testing.T) {
	productID := id.New()

	tests := []struct {
		name       string
		stockQty   int64
		alertQty   int64
		wantNil    bool
		wantStatus Status
		wantText   string
		wantMsg    string
	}{
		{
			name:     "above threshold produces nothing",
			stockQty: 11, alertQty: 10,
			wantNil: true,
		},
		{
			name:     "at threshold warns",
			stockQty: 10, alertQty: 10,
			wantStatus: StatusWarning,
			wantText:   "Warning",
			wantMsg:    "Aspirin is low on stock, only 10 left",
		},
		{
			name:     "below threshold warns",
			stockQty: 3, alertQty: 10,
			wantStatus: StatusWarning,
			wantText:   "Warning",
			wantMsg:    "Aspirin is low on stock, only 3 left",
		},
		{
			name:     "zero stock is danger",
			stockQty: 0, alertQty: 10,
			wantStatus: StatusDanger,
			wantText:   "Stock Out",
			wantMsg:    "Aspirin is out of stock",
		},
		{
			name:     "zero stock with zero threshold is still danger",
			stockQty: 0, alertQty: 0,
			wantStatus: StatusDanger,
			wantText:   "Stock Out",
			wantMsg:    "Aspirin is out of stock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewThresholdAlert(productID, "Aspirin", tt.stockQty, tt.alertQty)

			if tt.wantNil {
				assert.Nil(t, n)
				return
			}

			require.NotNil(t, n)
			assert.Equal(t, productID, n.ProductID)
			assert.Equal(t, tt.wantStatus, n.Status)
			assert.Equal(t, tt.wantText, n.StatusText)
			assert.Equal(t, tt.wantMsg, n.Message)
			assert.False(t, n.Read)
		})
	}
}
