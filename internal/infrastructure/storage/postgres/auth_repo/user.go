// Package auth_repo provides the PostgreSQL user account repository.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/domain/auth"
	"pharmacore/internal/infrastructure/storage/postgres"
	"pharmacore/internal/infrastructure/storage/postgres/catalog_repo"
)

const usersTable = "sys_users"

// UserRepo implements auth.Repository.
type UserRepo struct {
	*catalog_repo.BaseCatalogRepo[*auth.User]
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo(
			txManager,
			usersTable,
			postgres.ExtractDBColumns[auth.User](),
			func() *auth.User { return &auth.User{} },
		),
	}
}

// GetByEmail retrieves a user by email, ignoring soft-deleted accounts.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[auth.User]()...).
		From(usersTable).
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.Querier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, fmt.Errorf("get by email: %w", err)
	}

	return &u, nil
}

var _ auth.Repository = (*UserRepo)(nil)
