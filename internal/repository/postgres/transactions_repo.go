package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digibank/backend/internal/models"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	var t models.Transaction
	err := r.pool.QueryRow(ctx,
		`SELECT `+txnCols+` FROM transactions WHERE id=$1`, id,
	).Scan(&t.ID, &t.AccountID, &t.Amount, &t.Type, &t.Status, &t.Category, &t.Description, &t.Reference, &t.CreatedAt)
	return t, notFound(err, "transaction")
}

func (r *transactionsRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txnCols+` FROM transactions
		  WHERE account_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Amount, &t.Type, &t.Status, &t.Category, &t.Description, &t.Reference, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) SumByStatus(ctx context.Context, accountID string) (completed, pending int64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
		    COALESCE(SUM(amount) FILTER (WHERE status='completed'), 0),
		    COALESCE(SUM(amount) FILTER (WHERE status='pending'), 0)
		   FROM transactions WHERE account_id=$1`,
		accountID,
	).Scan(&completed, &pending)
	return completed, pending, err
}
