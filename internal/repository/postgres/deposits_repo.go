package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/models"
)

type depositsRepo struct{ pool *pgxpool.Pool }

const depositCols = `id, user_id, amount, method, status, reason, admin_id, processed_at, created_at`

func scanDeposit(row interface{ Scan(...any) error }, d *models.DepositRequest) error {
	return row.Scan(&d.ID, &d.UserID, &d.Amount, &d.Method, &d.Status, &d.Reason,
		&d.AdminID, &d.ProcessedAt, &d.CreatedAt)
}

func (r *depositsRepo) Create(ctx context.Context, d models.DepositRequest) (models.DepositRequest, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	err := scanDeposit(r.pool.QueryRow(ctx,
		`INSERT INTO deposit_requests(id, user_id, amount, method, status)
		 VALUES($1,$2,$3,$4,'pending')
		 RETURNING `+depositCols,
		d.ID, d.UserID, d.Amount, d.Method,
	), &d)
	return d, err
}

func (r *depositsRepo) GetByID(ctx context.Context, id string) (models.DepositRequest, error) {
	var d models.DepositRequest
	err := scanDeposit(r.pool.QueryRow(ctx,
		`SELECT `+depositCols+` FROM deposit_requests WHERE id=$1`, id), &d)
	return d, notFound(err, "deposit request")
}

func (r *depositsRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.DepositRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+depositCols+` FROM deposit_requests
		  WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DepositRequest
	for rows.Next() {
		var d models.DepositRequest
		if err := scanDeposit(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Approve credits the user's primary account in the same commit unit as
// the status transition. The funds arrive from outside the system, so
// balance and available both grow.
func (r *depositsRepo) Approve(ctx context.Context, id, adminID string) (models.DepositRequest, error) {
	var d models.DepositRequest
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := scanDeposit(tx.QueryRow(ctx,
			`UPDATE deposit_requests
			    SET status='approved', admin_id=$2, processed_at=now()
			  WHERE id=$1 AND status='pending'
			  RETURNING `+depositCols,
			id, adminID,
		), &d)
		if errors.Is(err, pgx.ErrNoRows) {
			return decidedErr(ctx, tx, `SELECT EXISTS(SELECT 1 FROM deposit_requests WHERE id=$1)`, id, "deposit request")
		}
		if err != nil {
			return err
		}

		var accountID string
		err = tx.QueryRow(ctx,
			`SELECT id FROM accounts WHERE owner_id=$1 AND is_primary AND is_active`, d.UserID,
		).Scan(&accountID)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("primary account")
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE accounts
			    SET balance = balance + $2,
			        available_balance = available_balance + $2,
			        updated_at = now()
			  WHERE id = $1`,
			accountID, d.Amount); err != nil {
			return err
		}

		_, err = insertTxn(ctx, tx, models.Transaction{
			AccountID:   accountID,
			Amount:      d.Amount,
			Type:        models.TxnDeposit,
			Status:      models.TxnCompleted,
			Category:    "deposit",
			Description: d.Method + " deposit",
			Reference:   d.ID,
		})
		return err
	})
	if err != nil {
		return models.DepositRequest{}, err
	}
	return d, nil
}

func (r *depositsRepo) Decline(ctx context.Context, id, adminID, reason string) (models.DepositRequest, error) {
	var d models.DepositRequest
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := scanDeposit(tx.QueryRow(ctx,
			`UPDATE deposit_requests
			    SET status='declined', admin_id=$2, reason=$3, processed_at=now()
			  WHERE id=$1 AND status='pending'
			  RETURNING `+depositCols,
			id, adminID, reason,
		), &d)
		if errors.Is(err, pgx.ErrNoRows) {
			return decidedErr(ctx, tx, `SELECT EXISTS(SELECT 1 FROM deposit_requests WHERE id=$1)`, id, "deposit request")
		}
		return err
	})
	if err != nil {
		return models.DepositRequest{}, err
	}
	return d, nil
}
