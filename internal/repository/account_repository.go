package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/spec-kit/trackswift/internal/domain"
	"github.com/spec-kit/trackswift/internal/persistence"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// AccountRepository defines persistence access for login accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

type accountRepository struct {
	store *persistence.Store
}

// NewAccountRepository returns a SQLite-backed implementation.
func NewAccountRepository(store *persistence.Store) AccountRepository {
	return &accountRepository{store: store}
}

// Create inserts a new account. A duplicate username is rejected, never
// overwritten, and is reported as a conflict to the caller.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	res, err := r.store.ExecContext(ctx,
		`INSERT INTO accounts (username, secret_hash, role, created_at) VALUES (?, ?, ?, ?)`,
		account.Username, account.SecretHash, string(account.Role), account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return util.NewConflict("username already taken", map[string]any{"username": account.Username})
		}
		return util.NewUnavailable("account insert failed", err)
	}

	account.ID, err = res.LastInsertId()
	return err
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	const query = `
		SELECT id, username, secret_hash, role, created_at
		FROM accounts WHERE username = ?`
	return r.fetchSingle(ctx, query, username)
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	const query = `
		SELECT id, username, secret_hash, role, created_at
		FROM accounts WHERE id = ?`
	return r.fetchSingle(ctx, query, id)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.store.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.SecretHash,
		&account.Role,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.NewNotFound("account", nil)
		}
		return nil, util.NewUnavailable("account lookup failed", err)
	}
	return &account, nil
}
