package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digibank/backend/internal/models"
)

type withdrawalsRepo struct{ pool *pgxpool.Pool }

const withdrawalCols = `id, user_id, account_id, amount, backup_code, status, reason, admin_id, processed_at, created_at`

func scanWithdrawal(row interface{ Scan(...any) error }, w *models.WithdrawalRequest) error {
	return row.Scan(&w.ID, &w.UserID, &w.AccountID, &w.Amount, &w.BackupCode, &w.Status,
		&w.Reason, &w.AdminID, &w.ProcessedAt, &w.CreatedAt)
}

func (r *withdrawalsRepo) Create(ctx context.Context, w models.WithdrawalRequest) (models.WithdrawalRequest, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := holdFunds(ctx, tx, w.AccountID, w.Amount); err != nil {
			return err
		}

		err := scanWithdrawal(tx.QueryRow(ctx,
			`INSERT INTO withdrawal_requests(id, user_id, account_id, amount, backup_code, status)
			 VALUES($1,$2,$3,$4,$5,'pending')
			 RETURNING `+withdrawalCols,
			w.ID, w.UserID, w.AccountID, w.Amount, w.BackupCode,
		), &w)
		if err != nil {
			return err
		}

		_, err = insertTxn(ctx, tx, models.Transaction{
			AccountID: w.AccountID,
			Amount:    -w.Amount,
			Type:      models.TxnWithdrawal,
			Status:    models.TxnPending,
			Category:  "withdrawal",
			Reference: w.ID,
		})
		return err
	})
	if err != nil {
		return models.WithdrawalRequest{}, err
	}
	return w, nil
}

func (r *withdrawalsRepo) GetByID(ctx context.Context, id string) (models.WithdrawalRequest, error) {
	var w models.WithdrawalRequest
	err := scanWithdrawal(r.pool.QueryRow(ctx,
		`SELECT `+withdrawalCols+` FROM withdrawal_requests WHERE id=$1`, id), &w)
	return w, notFound(err, "withdrawal request")
}

func (r *withdrawalsRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.WithdrawalRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+withdrawalCols+` FROM withdrawal_requests
		  WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WithdrawalRequest
	for rows.Next() {
		var w models.WithdrawalRequest
		if err := scanWithdrawal(rows, &w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *withdrawalsRepo) decide(ctx context.Context, id, adminID, reason string, to models.RequestStatus, settle bool) (models.WithdrawalRequest, error) {
	var w models.WithdrawalRequest
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := scanWithdrawal(tx.QueryRow(ctx,
			`UPDATE withdrawal_requests
			    SET status=$2, admin_id=$3, reason=$4, processed_at=now()
			  WHERE id=$1 AND status='pending'
			  RETURNING `+withdrawalCols,
			id, string(to), adminID, reason,
		), &w)
		if errors.Is(err, pgx.ErrNoRows) {
			return decidedErr(ctx, tx, `SELECT EXISTS(SELECT 1 FROM withdrawal_requests WHERE id=$1)`, id, "withdrawal request")
		}
		if err != nil {
			return err
		}

		if settle {
			if err := settleHold(ctx, tx, w.AccountID, w.Amount); err != nil {
				return err
			}
			_, err = tx.Exec(ctx,
				`UPDATE transactions SET status='completed' WHERE reference=$1 AND status='pending'`, w.ID)
			return err
		}

		if err := releaseHold(ctx, tx, w.AccountID, w.Amount); err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE transactions SET status='reversed' WHERE reference=$1 AND status='pending'`, w.ID)
		return err
	})
	if err != nil {
		return models.WithdrawalRequest{}, err
	}
	return w, nil
}

func (r *withdrawalsRepo) Approve(ctx context.Context, id, adminID string) (models.WithdrawalRequest, error) {
	return r.decide(ctx, id, adminID, "", models.StatusApproved, true)
}

func (r *withdrawalsRepo) Decline(ctx context.Context, id, adminID, reason string) (models.WithdrawalRequest, error) {
	return r.decide(ctx, id, adminID, reason, models.StatusDeclined, false)
}
