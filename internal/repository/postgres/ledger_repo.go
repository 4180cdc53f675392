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

type ledgerRepo struct{ pool *pgxpool.Pool }

const txnCols = `id, account_id, amount, type, status, category, description, reference, created_at`

func insertTxn(ctx context.Context, tx pgx.Tx, t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	err := tx.QueryRow(ctx,
		`INSERT INTO transactions(id, account_id, amount, type, status, category, description, reference)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+txnCols,
		t.ID, t.AccountID, t.Amount, t.Type, t.Status, t.Category, t.Description, t.Reference,
	).Scan(&t.ID, &t.AccountID, &t.Amount, &t.Type, &t.Status, &t.Category, &t.Description, &t.Reference, &t.CreatedAt)
	return t, err
}

func (r *ledgerRepo) Credit(ctx context.Context, accountID string, amount int64, txn models.Transaction) (models.Account, models.Transaction, error) {
	var a models.Account
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := scanAccount(tx.QueryRow(ctx,
			`UPDATE accounts
			    SET balance = balance + $2,
			        available_balance = available_balance + $2,
			        updated_at = now()
			  WHERE id = $1 AND is_active
			  RETURNING `+accountCols,
			accountID, amount,
		), &a)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("account")
		}
		if err != nil {
			return err
		}

		txn.AccountID = accountID
		txn.Amount = amount
		txn.Status = models.TxnCompleted
		txn, err = insertTxn(ctx, tx, txn)
		return err
	})
	return a, txn, err
}

func (r *ledgerRepo) Debit(ctx context.Context, accountID string, amount int64, txn models.Transaction) (models.Account, models.Transaction, error) {
	var a models.Account
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := scanAccount(tx.QueryRow(ctx,
			`UPDATE accounts
			    SET balance = balance - $2,
			        available_balance = available_balance - $2,
			        updated_at = now()
			  WHERE id = $1 AND is_active AND available_balance >= $2
			  RETURNING `+accountCols,
			accountID, amount,
		), &a)
		if errors.Is(err, pgx.ErrNoRows) {
			return debitFailure(ctx, tx, accountID)
		}
		if err != nil {
			return err
		}

		txn.AccountID = accountID
		txn.Amount = -amount
		txn.Status = models.TxnCompleted
		txn, err = insertTxn(ctx, tx, txn)
		return err
	})
	return a, txn, err
}

// debitFailure decides between not_found and insufficient_funds after a
// guarded debit touched zero rows.
func debitFailure(ctx context.Context, tx pgx.Tx, accountID string) error {
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE id=$1 AND is_active)`, accountID,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("account")
	}
	return apperr.InsufficientFunds()
}

func (r *ledgerRepo) TransferBetween(ctx context.Context, fromID, toID string, amount int64, description string) (models.Transaction, models.Transaction, error) {
	var out, in models.Transaction
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx,
			`UPDATE accounts
			    SET balance = balance - $2,
			        available_balance = available_balance - $2,
			        updated_at = now()
			  WHERE id = $1 AND is_active AND available_balance >= $2`,
			fromID, amount)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return debitFailure(ctx, tx, fromID)
		}

		ct, err = tx.Exec(ctx,
			`UPDATE accounts
			    SET balance = balance + $2,
			        available_balance = available_balance + $2,
			        updated_at = now()
			  WHERE id = $1 AND is_active`,
			toID, amount)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return apperr.NotFound("destination account")
		}

		ref := uuid.NewString()
		out, err = insertTxn(ctx, tx, models.Transaction{
			AccountID:   fromID,
			Amount:      -amount,
			Type:        models.TxnTransferOut,
			Status:      models.TxnCompleted,
			Category:    "transfer",
			Description: description,
			Reference:   ref,
		})
		if err != nil {
			return err
		}
		in, err = insertTxn(ctx, tx, models.Transaction{
			AccountID:   toID,
			Amount:      amount,
			Type:        models.TxnTransferIn,
			Status:      models.TxnCompleted,
			Category:    "transfer",
			Description: description,
			Reference:   ref,
		})
		return err
	})
	return out, in, err
}

func (r *ledgerRepo) FundCard(ctx context.Context, accountID, cardID string, amount int64) (models.Transaction, error) {
	var txn models.Transaction
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx,
			`UPDATE accounts
			    SET balance = balance - $2,
			        available_balance = available_balance - $2,
			        updated_at = now()
			  WHERE id = $1 AND is_active AND available_balance >= $2`,
			accountID, amount)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return debitFailure(ctx, tx, accountID)
		}

		ct, err = tx.Exec(ctx,
			`UPDATE cards SET balance = balance + $2 WHERE id = $1 AND status = 'active'`,
			cardID, amount)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return apperr.Validation("card is not active")
		}

		txn, err = insertTxn(ctx, tx, models.Transaction{
			AccountID: accountID,
			Amount:    -amount,
			Type:      models.TxnCardFunding,
			Status:    models.TxnCompleted,
			Category:  "card",
			Reference: cardID,
		})
		return err
	})
	return txn, err
}
