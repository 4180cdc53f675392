package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digibank/backend/internal/models"
)

type accountsRepo struct{ pool *pgxpool.Pool }

const accountCols = `id, owner_id, type, balance, available_balance, pending_balance, currency, is_primary, is_active, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }, a *models.Account) error {
	return row.Scan(&a.ID, &a.OwnerID, &a.Type, &a.Balance, &a.AvailableBalance, &a.PendingBalance,
		&a.Currency, &a.IsPrimary, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
}

func (r *accountsRepo) Create(ctx context.Context, a models.Account) (models.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	err := scanAccount(r.pool.QueryRow(ctx,
		`INSERT INTO accounts(id, owner_id, type, balance, available_balance, pending_balance, currency, is_primary)
		 VALUES($1,$2,$3,0,0,0,$4,$5)
		 RETURNING `+accountCols,
		a.ID, a.OwnerID, a.Type, a.Currency, a.IsPrimary,
	), &a)
	return a, err
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (models.Account, error) {
	var a models.Account
	err := scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountCols+` FROM accounts WHERE id=$1`, id), &a)
	return a, notFound(err, "account")
}

func (r *accountsRepo) GetOwned(ctx context.Context, id, ownerID string) (models.Account, error) {
	var a models.Account
	err := scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id=$1 AND owner_id=$2`, id, ownerID), &a)
	return a, notFound(err, "account")
}

func (r *accountsRepo) GetPrimary(ctx context.Context, ownerID string) (models.Account, error) {
	var a models.Account
	err := scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE owner_id=$1 AND is_primary AND is_active`, ownerID), &a)
	return a, notFound(err, "primary account")
}

func (r *accountsRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE owner_id=$1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		var a models.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
