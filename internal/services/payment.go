package services

import (
	"context"
	"time"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/metrics"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/notify"
	repo "github.com/digibank/backend/internal/repository"
)

// PaymentService handles instant internal transfers and withdrawal
// requests.
type PaymentService struct {
	ledger      repo.Ledger
	accounts    repo.Accounts
	withdrawals repo.WithdrawalRequests
	notifier    notify.Notifier
	auditor
}

func NewPaymentService(ledger repo.Ledger, accounts repo.Accounts, withdrawals repo.WithdrawalRequests, logs repo.AuditLogs, n notify.Notifier) *PaymentService {
	return &PaymentService{ledger: ledger, accounts: accounts, withdrawals: withdrawals, notifier: n, auditor: auditor{logs}}
}

type TransferMoneyInput struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
}

type Payment struct {
	Reference     string    `json:"reference"`
	FromAccountID string    `json:"from_account_id"`
	ToAccountID   string    `json:"to_account_id"`
	Amount        int64     `json:"amount"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type TransferMoneyResult struct {
	Payment      Payment              `json:"payment"`
	Transactions []models.Transaction `json:"transactions"`
}

// TransferMoney moves funds between two accounts in one commit unit;
// both transaction rows land completed immediately, no admin gate.
func (s *PaymentService) TransferMoney(ctx context.Context, userID string, in TransferMoneyInput) (TransferMoneyResult, error) {
	if in.Amount <= 0 {
		return TransferMoneyResult{}, apperr.Validation("amount must be > 0")
	}
	if in.FromAccountID == in.ToAccountID {
		return TransferMoneyResult{}, apperr.Validation("cannot transfer to the same account")
	}

	from, err := s.accounts.GetOwned(ctx, in.FromAccountID, userID)
	if err != nil {
		return TransferMoneyResult{}, err
	}
	to, err := s.accounts.GetByID(ctx, in.ToAccountID)
	if err != nil {
		return TransferMoneyResult{}, err
	}
	if from.Currency != to.Currency {
		return TransferMoneyResult{}, apperr.Validation("currency mismatch")
	}

	out, inTxn, err := s.ledger.TransferBetween(ctx, from.ID, to.ID, in.Amount, in.Description)
	if err != nil {
		return TransferMoneyResult{}, err
	}
	metrics.TransactionsTotal.WithLabelValues(string(models.TxnTransferOut)).Inc()

	s.record(ctx, "payment", out.Reference, userID, "transferred", map[string]any{
		"from": from.ID, "to": to.ID, "amount": in.Amount,
	})
	s.notifier.Emit(ctx, notify.Event{
		Type:     "payment.completed",
		EntityID: out.Reference,
		UserID:   userID,
		Data:     map[string]any{"amount": in.Amount, "to_account": to.ID},
	})

	return TransferMoneyResult{
		Payment: Payment{
			Reference:     out.Reference,
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        in.Amount,
			Description:   in.Description,
			CreatedAt:     out.CreatedAt,
		},
		Transactions: []models.Transaction{out, inTxn},
	}, nil
}

type WithdrawalInput struct {
	AccountID  string `json:"account_id"`
	Amount     int64  `json:"amount"`
	BackupCode string `json:"backup_code"`
}

// RequestWithdrawal holds the funds and leaves the rest to the admin
// gate.
func (s *PaymentService) RequestWithdrawal(ctx context.Context, userID string, in WithdrawalInput) (models.WithdrawalRequest, error) {
	if in.Amount <= 0 {
		return models.WithdrawalRequest{}, apperr.Validation("amount must be > 0")
	}
	if in.BackupCode == "" {
		return models.WithdrawalRequest{}, apperr.Validation("backup code is required")
	}

	account, err := s.accounts.GetOwned(ctx, in.AccountID, userID)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}

	w, err := s.withdrawals.Create(ctx, models.WithdrawalRequest{
		UserID:     userID,
		AccountID:  account.ID,
		Amount:     in.Amount,
		BackupCode: in.BackupCode,
	})
	if err != nil {
		return models.WithdrawalRequest{}, err
	}

	s.record(ctx, "withdrawal_request", w.ID, userID, "created", map[string]any{"amount": w.Amount})
	s.notifier.Emit(ctx, notify.Event{
		Type:     "withdrawal.created",
		EntityID: w.ID,
		UserID:   userID,
		Data:     map[string]any{"amount": w.Amount},
	})
	return w, nil
}

func (s *PaymentService) ListWithdrawals(ctx context.Context, userID string, limit, offset int) ([]models.WithdrawalRequest, error) {
	return s.withdrawals.ListByUser(ctx, userID, limit, offset)
}
