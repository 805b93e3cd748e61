package notifications

import (
	"context"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain"
)

// Repository defines storage operations for notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateMany(ctx context.Context, ns []*Notification) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Notification], error)
	MarkRead(ctx context.Context, notificationID id.ID) error
	MarkAllRead(ctx context.Context) error
	CountUnread(ctx context.Context) (int64, error)
}
