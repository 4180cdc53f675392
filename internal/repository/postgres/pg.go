package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digibank/backend/internal/apperr"
	repo "github.com/digibank/backend/internal/repository"
)

type Repositories struct {
	Users       repo.Users
	Accounts    repo.Accounts
	Ledger      repo.Ledger
	Transfers   repo.TransferRequests
	Deposits    repo.DepositRequests
	Withdrawals repo.WithdrawalRequests
	Cards       repo.Cards
	KYC         repo.KYCSubmissions
	Txns        repo.Transactions
	AuditLogs   repo.AuditLogs
	WebhookJobs repo.WebhookJobs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:       &usersRepo{pool},
		Accounts:    &accountsRepo{pool},
		Ledger:      &ledgerRepo{pool},
		Transfers:   &transfersRepo{pool},
		Deposits:    &depositsRepo{pool},
		Withdrawals: &withdrawalsRepo{pool},
		Cards:       &cardsRepo{pool},
		KYC:         &kycRepo{pool},
		Txns:        &transactionsRepo{pool},
		AuditLogs:   &auditLogsRepo{pool},
		WebhookJobs: &webhookJobsRepo{pool},
	}
}

// withTx runs fn inside one DB transaction; rollback on error.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// notFound translates pgx.ErrNoRows into a tagged not_found error.
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(what)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
