// Package notifications provides low-stock notifications and the custom
// alert rule engine.
package notifications

import (
	"fmt"
	"time"

	"pharmacore/internal/core/entity"
	"pharmacore/internal/core/id"
)

// Status is the notification severity.
type Status string

const (
	StatusWarning Status = "WARNING"
	StatusDanger  Status = "DANGER"
)

// Notification is a low-stock or rule-generated alert shown to operators.
type Notification struct {
	entity.BaseCatalog

	ProductID id.ID `db:"product_id" json:"productId"`

	Message    string `db:"message" json:"message"`
	Status     Status `db:"status" json:"status"`
	StatusText string `db:"status_text" json:"statusText"`
	Read       bool   `db:"read" json:"read"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewThresholdAlert derives a notification from the live stock level after
// a deduction, or nil when stock is above the alert threshold.
//
// stockQty == 0            -> DANGER  "Stock Out"
// 0 < stockQty <= alertQty -> WARNING "Warning"
func NewThresholdAlert(productID id.ID, productName string, stockQty, alertQty int64) *Notification {
	if stockQty > alertQty {
		return nil
	}

	n := &Notification{
		BaseCatalog: entity.NewBaseCatalog(),
		ProductID:   productID,
		CreatedAt:   time.Now().UTC(),
	}

	if stockQty <= 0 {
		n.Status = StatusDanger
		n.StatusText = "Stock Out"
		n.Message = fmt.Sprintf("%s is out of stock", productName)
		return n
	}

	n.Status = StatusWarning
	n.StatusText = "Warning"
	n.Message = fmt.Sprintf("%s is low on stock, only %d left", productName, stockQty)
	return n
}

// NewRuleAlert creates a notification produced by a custom alert rule.
func NewRuleAlert(productID id.ID, ruleName, message string) *Notification {
	return &Notification{
		BaseCatalog: entity.NewBaseCatalog(),
		ProductID:   productID,
		Status:      StatusWarning,
		StatusText:  ruleName,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}
}
