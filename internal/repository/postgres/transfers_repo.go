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

type transfersRepo struct{ pool *pgxpool.Pool }

const transferCols = `id, user_id, from_account_id, destination_bank, routing_number, account_number,
	account_name, amount, currency, reference, status, reason, admin_id, processed_at, created_at`

func scanTransfer(row interface{ Scan(...any) error }, t *models.TransferRequest) error {
	return row.Scan(&t.ID, &t.UserID, &t.FromAccountID, &t.DestinationBank, &t.RoutingNumber,
		&t.AccountNumber, &t.AccountName, &t.Amount, &t.Currency, &t.Reference, &t.Status,
		&t.Reason, &t.AdminID, &t.ProcessedAt, &t.CreatedAt)
}

// holdFunds moves amount available->pending on the source account. Zero
// rows affected means either a missing account or not enough available
// balance; the request insert never happens in that case.
func holdFunds(ctx context.Context, tx pgx.Tx, accountID string, amount int64) error {
	ct, err := tx.Exec(ctx,
		`UPDATE accounts
		    SET available_balance = available_balance - $2,
		        pending_balance = pending_balance + $2,
		        updated_at = now()
		  WHERE id = $1 AND is_active AND available_balance >= $2`,
		accountID, amount)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return debitFailure(ctx, tx, accountID)
	}
	return nil
}

// releaseHold moves amount pending->available; balance unchanged.
func releaseHold(ctx context.Context, tx pgx.Tx, accountID string, amount int64) error {
	ct, err := tx.Exec(ctx,
		`UPDATE accounts
		    SET available_balance = available_balance + $2,
		        pending_balance = pending_balance - $2,
		        updated_at = now()
		  WHERE id = $1 AND pending_balance >= $2`,
		accountID, amount)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.New(apperr.KindInternal, "pending hold out of sync")
	}
	return nil
}

// settleHold removes amount from pending and balance; the held funds
// leave the account for good.
func settleHold(ctx context.Context, tx pgx.Tx, accountID string, amount int64) error {
	ct, err := tx.Exec(ctx,
		`UPDATE accounts
		    SET pending_balance = pending_balance - $2,
		        balance = balance - $2,
		        updated_at = now()
		  WHERE id = $1 AND pending_balance >= $2`,
		accountID, amount)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.New(apperr.KindInternal, "pending hold out of sync")
	}
	return nil
}

func (r *transfersRepo) Create(ctx context.Context, tr models.TransferRequest) (models.TransferRequest, error) {
	if tr.ID == "" {
		tr.ID = uuid.NewString()
	}
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := holdFunds(ctx, tx, tr.FromAccountID, tr.Amount); err != nil {
			return err
		}

		err := scanTransfer(tx.QueryRow(ctx,
			`INSERT INTO transfer_requests(id, user_id, from_account_id, destination_bank, routing_number,
			        account_number, account_name, amount, currency, reference, status)
			 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,'pending')
			 RETURNING `+transferCols,
			tr.ID, tr.UserID, tr.FromAccountID, tr.DestinationBank, tr.RoutingNumber,
			tr.AccountNumber, tr.AccountName, tr.Amount, tr.Currency, tr.Reference,
		), &tr)
		if err != nil {
			return err
		}

		_, err = insertTxn(ctx, tx, models.Transaction{
			AccountID:   tr.FromAccountID,
			Amount:      -tr.Amount,
			Type:        models.TxnTransferOut,
			Status:      models.TxnPending,
			Category:    "external_transfer",
			Description: "transfer to " + tr.DestinationBank,
			Reference:   tr.Reference,
		})
		return err
	})
	if err != nil {
		return models.TransferRequest{}, err
	}
	return tr, nil
}

func (r *transfersRepo) GetByID(ctx context.Context, id string) (models.TransferRequest, error) {
	var t models.TransferRequest
	err := scanTransfer(r.pool.QueryRow(ctx,
		`SELECT `+transferCols+` FROM transfer_requests WHERE id=$1`, id), &t)
	return t, notFound(err, "transfer request")
}

func (r *transfersRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.TransferRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transferCols+` FROM transfer_requests
		  WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransfers(rows)
}

func (r *transfersRepo) List(ctx context.Context, status models.RequestStatus) ([]models.TransferRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transferCols+` FROM transfer_requests
		  WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC`,
		string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransfers(rows)
}

func collectTransfers(rows pgx.Rows) ([]models.TransferRequest, error) {
	var out []models.TransferRequest
	for rows.Next() {
		var t models.TransferRequest
		if err := scanTransfer(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// decide performs the pending->terminal transition as one conditional
// update. Zero rows updated means the request was already decided (or
// never existed); concurrent decisions cannot both pass.
func (r *transfersRepo) decide(ctx context.Context, id, adminID, reason string, to models.RequestStatus, settle bool) (models.TransferRequest, error) {
	var tr models.TransferRequest
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := scanTransfer(tx.QueryRow(ctx,
			`UPDATE transfer_requests
			    SET status=$2, admin_id=$3, reason=$4, processed_at=now()
			  WHERE id=$1 AND status='pending'
			  RETURNING `+transferCols,
			id, string(to), adminID, reason,
		), &tr)
		if errors.Is(err, pgx.ErrNoRows) {
			return decidedErr(ctx, tx, `SELECT EXISTS(SELECT 1 FROM transfer_requests WHERE id=$1)`, id, "transfer request")
		}
		if err != nil {
			return err
		}

		if settle {
			if err := settleHold(ctx, tx, tr.FromAccountID, tr.Amount); err != nil {
				return err
			}
			_, err = tx.Exec(ctx,
				`UPDATE transactions SET status='completed' WHERE reference=$1 AND status='pending'`,
				tr.Reference)
			return err
		}

		if err := releaseHold(ctx, tx, tr.FromAccountID, tr.Amount); err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE transactions SET status='reversed' WHERE reference=$1 AND status='pending'`,
			tr.Reference)
		return err
	})
	if err != nil {
		return models.TransferRequest{}, err
	}
	return tr, nil
}

// decidedErr distinguishes a missing request from one already decided.
func decidedErr(ctx context.Context, tx pgx.Tx, existsQuery, id, what string) error {
	var exists bool
	if err := tx.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(what)
	}
	return apperr.AlreadyProcessed(what)
}

func (r *transfersRepo) Approve(ctx context.Context, id, adminID string) (models.TransferRequest, error) {
	return r.decide(ctx, id, adminID, "", models.StatusApproved, true)
}

func (r *transfersRepo) Decline(ctx context.Context, id, adminID, reason string) (models.TransferRequest, error) {
	return r.decide(ctx, id, adminID, reason, models.StatusDeclined, false)
}

func (r *transfersRepo) Reverse(ctx context.Context, id, adminID, notes string) (models.TransferRequest, error) {
	return r.decide(ctx, id, adminID, notes, models.StatusReversed, false)
}
