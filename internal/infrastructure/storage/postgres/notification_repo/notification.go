// Package notification_repo provides the PostgreSQL notification repository.
package notification_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/domain/notifications"
	"pharmacore/internal/infrastructure/storage/postgres"
	"pharmacore/internal/infrastructure/storage/postgres/catalog_repo"
)

const notificationsTable = "cat_notifications"

// NotificationRepo implements notifications.Repository.
type NotificationRepo struct {
	*catalog_repo.BaseCatalogRepo[*notifications.Notification]
}

// NewNotificationRepo creates a new notification repository.
func NewNotificationRepo(txManager *postgres.TxManager) *NotificationRepo {
	return &NotificationRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo(
			txManager,
			notificationsTable,
			postgres.ExtractDBColumns[notifications.Notification](),
			func() *notifications.Notification { return &notifications.Notification{} },
		),
	}
}

// CreateMany inserts a batch of notifications in one statement.
func (r *NotificationRepo) CreateMany(ctx context.Context, ns []*notifications.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(notificationsTable).
		Columns(
			"id", "deletion_mark", "version",
			"product_id", "message", "status", "status_text", "read", "created_at",
		)

	for _, n := range ns {
		q = q.Values(
			n.ID, n.DeletionMark, n.Version,
			n.ProductID, n.Message, n.Status, n.StatusText, n.Read, n.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert notifications: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}

	return nil
}

// MarkRead marks one notification as read.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID id.ID) error {
	q := r.Builder().
		Update(notificationsTable).
		Set("read", true).
		Where(squirrel.Eq{"id": notificationID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build mark read: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("notification", notificationID.String())
	}

	return nil
}

// MarkAllRead marks every unread notification as read.
func (r *NotificationRepo) MarkAllRead(ctx context.Context) error {
	q := r.Builder().
		Update(notificationsTable).
		Set("read", true).
		Where(squirrel.Eq{"read": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build mark all read: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}

	return nil
}

// CountUnread returns the number of unread notifications.
func (r *NotificationRepo) CountUnread(ctx context.Context) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(notificationsTable).
		Where(squirrel.Eq{"read": false}).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count unread: %w", err)
	}

	var count int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	return count, nil
}

var _ notifications.Repository = (*NotificationRepo)(nil)
