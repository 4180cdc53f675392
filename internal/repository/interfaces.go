package repository

import (
	"context"
	"time"

	"github.com/digibank/backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetKYCVerified(ctx context.Context, id string, verified bool) error
}

type Accounts interface {
	Create(ctx context.Context, a models.Account) (models.Account, error)
	GetByID(ctx context.Context, id string) (models.Account, error)
	// GetOwned returns not_found when the account exists but belongs to
	// someone else.
	GetOwned(ctx context.Context, id, ownerID string) (models.Account, error)
	GetPrimary(ctx context.Context, ownerID string) (models.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Account, error)
}

// Ledger owns direct money movement. Every method is a single commit
// unit: the balance deltas and the coupled transaction rows land together
// or not at all. Mutations are expressed as increment/decrement deltas
// guarded by balance predicates, never absolute overwrites.
type Ledger interface {
	// Credit adds amount to balance and available balance.
	Credit(ctx context.Context, accountID string, amount int64, txn models.Transaction) (models.Account, models.Transaction, error)
	// Debit subtracts amount from balance and available balance; fails
	// with insufficient_funds when available < amount, with no side
	// effects.
	Debit(ctx context.Context, accountID string, amount int64, txn models.Transaction) (models.Account, models.Transaction, error)
	// TransferBetween moves amount between two accounts instantly,
	// writing a transfer_out and a transfer_in transaction row.
	TransferBetween(ctx context.Context, fromID, toID string, amount int64, description string) (models.Transaction, models.Transaction, error)
	// FundCard debits the account and credits the card balance.
	FundCard(ctx context.Context, accountID, cardID string, amount int64) (models.Transaction, error)
}

// TransferRequests implements the external-transfer approval workflow.
// The terminal transitions are atomic conditional updates on
// status='pending'; a request already decided surfaces already_processed
// and leaves every balance untouched.
type TransferRequests interface {
	// Create inserts the request and holds amount available->pending on
	// the source account plus a pending transaction row, one commit unit.
	Create(ctx context.Context, tr models.TransferRequest) (models.TransferRequest, error)
	GetByID(ctx context.Context, id string) (models.TransferRequest, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.TransferRequest, error)
	// List returns requests filtered by status; empty status means all.
	List(ctx context.Context, status models.RequestStatus) ([]models.TransferRequest, error)
	// Approve releases the hold and debits the balance (pending -= n,
	// balance -= n).
	Approve(ctx context.Context, id, adminID string) (models.TransferRequest, error)
	// Decline releases the hold back to available; balance unchanged.
	Decline(ctx context.Context, id, adminID, reason string) (models.TransferRequest, error)
	// Reverse has decline's balance semantics but is recorded distinctly.
	Reverse(ctx context.Context, id, adminID, notes string) (models.TransferRequest, error)
}

type DepositRequests interface {
	Create(ctx context.Context, d models.DepositRequest) (models.DepositRequest, error)
	GetByID(ctx context.Context, id string) (models.DepositRequest, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.DepositRequest, error)
	// Approve credits the user's primary account in the same commit unit
	// as the status transition.
	Approve(ctx context.Context, id, adminID string) (models.DepositRequest, error)
	Decline(ctx context.Context, id, adminID, reason string) (models.DepositRequest, error)
}

type WithdrawalRequests interface {
	// Create holds amount available->pending like a transfer request.
	Create(ctx context.Context, w models.WithdrawalRequest) (models.WithdrawalRequest, error)
	GetByID(ctx context.Context, id string) (models.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.WithdrawalRequest, error)
	Approve(ctx context.Context, id, adminID string) (models.WithdrawalRequest, error)
	Decline(ctx context.Context, id, adminID, reason string) (models.WithdrawalRequest, error)
}

type Cards interface {
	Create(ctx context.Context, c models.Card) (models.Card, error)
	GetOwned(ctx context.Context, id, userID string) (models.Card, error)
	ListByUser(ctx context.Context, userID string) ([]models.Card, error)
	Approve(ctx context.Context, id, adminID string) (models.Card, error)
	Decline(ctx context.Context, id, adminID, reason string) (models.Card, error)
}

type KYCSubmissions interface {
	Create(ctx context.Context, k models.KYCSubmission) (models.KYCSubmission, error)
	GetByID(ctx context.Context, id string) (models.KYCSubmission, error)
	// Approve also flips users.kyc_verified in the same commit unit.
	Approve(ctx context.Context, id, adminID string) (models.KYCSubmission, error)
	Decline(ctx context.Context, id, adminID, notes string) (models.KYCSubmission, error)
}

type Transactions interface {
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.Transaction, error)
	// SumByStatus recomputes completed and pending totals from the
	// transaction log; reconciliation only.
	SumByStatus(ctx context.Context, accountID string) (completed, pending int64, err error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

type WebhookJobs interface {
	Enqueue(ctx context.Context, url string, payload []byte) error
	// NextPending claims one due job and marks it processing, so a job
	// whose delivery is still in flight is never handed out twice;
	// ok=false when the queue is empty.
	NextPending(ctx context.Context) (job models.WebhookJob, ok bool, err error)
	MarkCompleted(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
	// Reschedule returns a claimed job to pending for a later retry.
	Reschedule(ctx context.Context, id string, at time.Time) error
}
