package services

import (
	"context"
	"strings"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/metrics"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/notify"
	repo "github.com/digibank/backend/internal/repository"
)

// AdminService is the approval gate for deposits, withdrawals, cards and
// KYC, plus direct admin credit/debit adjustments. Transfer decisions
// live on TransferService.
type AdminService struct {
	ledger      repo.Ledger
	accounts    repo.Accounts
	deposits    repo.DepositRequests
	withdrawals repo.WithdrawalRequests
	cards       repo.Cards
	kyc         repo.KYCSubmissions
	notifier    notify.Notifier
	auditor
}

func NewAdminService(
	ledger repo.Ledger,
	accounts repo.Accounts,
	deposits repo.DepositRequests,
	withdrawals repo.WithdrawalRequests,
	cards repo.Cards,
	kyc repo.KYCSubmissions,
	logs repo.AuditLogs,
	n notify.Notifier,
) *AdminService {
	return &AdminService{
		ledger:      ledger,
		accounts:    accounts,
		deposits:    deposits,
		withdrawals: withdrawals,
		cards:       cards,
		kyc:         kyc,
		notifier:    n,
		auditor:     auditor{logs},
	}
}

type CreditDebitInput struct {
	Type        string `json:"type"` // credit | debit
	Amount      int64  `json:"amount"`
	AccountID   string `json:"account_id,omitempty"` // empty = primary account
	Description string `json:"description,omitempty"`
}

// CreditDebit applies a direct balance adjustment to a user's account.
func (s *AdminService) CreditDebit(ctx context.Context, adminID, userID string, in CreditDebitInput) (models.Account, models.Transaction, error) {
	if in.Amount <= 0 {
		return models.Account{}, models.Transaction{}, apperr.Validation("amount must be > 0")
	}

	var account models.Account
	var err error
	if in.AccountID == "" {
		account, err = s.accounts.GetPrimary(ctx, userID)
	} else {
		account, err = s.accounts.GetOwned(ctx, in.AccountID, userID)
	}
	if err != nil {
		return models.Account{}, models.Transaction{}, err
	}

	var txn models.Transaction
	switch strings.ToLower(in.Type) {
	case "credit":
		account, txn, err = s.ledger.Credit(ctx, account.ID, in.Amount, models.Transaction{
			Type:        models.TxnAdminCredit,
			Category:    "adjustment",
			Description: in.Description,
		})
	case "debit":
		account, txn, err = s.ledger.Debit(ctx, account.ID, in.Amount, models.Transaction{
			Type:        models.TxnAdminDebit,
			Category:    "adjustment",
			Description: in.Description,
		})
	default:
		return models.Account{}, models.Transaction{}, apperr.Validation("type must be credit or debit")
	}
	if err != nil {
		return models.Account{}, models.Transaction{}, err
	}
	metrics.TransactionsTotal.WithLabelValues(string(txn.Type)).Inc()

	s.record(ctx, "account", account.ID, adminID, "adjusted", map[string]any{
		"type": in.Type, "amount": in.Amount, "user": userID,
	})
	s.notifier.Emit(ctx, notify.Event{
		Type:     "account.adjusted",
		EntityID: account.ID,
		UserID:   userID,
		Data:     map[string]any{"type": in.Type, "amount": in.Amount},
	})
	return account, txn, nil
}

func (s *AdminService) ApproveDeposit(ctx context.Context, id, adminID string) (models.DepositRequest, error) {
	d, err := s.deposits.Approve(ctx, id, adminID)
	if err != nil {
		return models.DepositRequest{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("deposit", "approved").Inc()
	metrics.TransactionsTotal.WithLabelValues(string(models.TxnDeposit)).Inc()
	s.record(ctx, "deposit_request", d.ID, adminID, "approved", map[string]any{"amount": d.Amount})
	s.notifier.Emit(ctx, notify.Event{Type: "deposit.approved", EntityID: d.ID, UserID: d.UserID,
		Data: map[string]any{"amount": d.Amount}})
	return d, nil
}

func (s *AdminService) DeclineDeposit(ctx context.Context, id, adminID, reason string) (models.DepositRequest, error) {
	d, err := s.deposits.Decline(ctx, id, adminID, reason)
	if err != nil {
		return models.DepositRequest{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("deposit", "declined").Inc()
	s.record(ctx, "deposit_request", d.ID, adminID, "declined", map[string]any{"reason": reason})
	s.notifier.Emit(ctx, notify.Event{Type: "deposit.declined", EntityID: d.ID, UserID: d.UserID})
	return d, nil
}

func (s *AdminService) ApproveWithdrawal(ctx context.Context, id, adminID string) (models.WithdrawalRequest, error) {
	w, err := s.withdrawals.Approve(ctx, id, adminID)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("withdrawal", "approved").Inc()
	s.record(ctx, "withdrawal_request", w.ID, adminID, "approved", map[string]any{"amount": w.Amount})
	s.notifier.Emit(ctx, notify.Event{Type: "withdrawal.approved", EntityID: w.ID, UserID: w.UserID,
		Data: map[string]any{"amount": w.Amount}})
	return w, nil
}

func (s *AdminService) DeclineWithdrawal(ctx context.Context, id, adminID, reason string) (models.WithdrawalRequest, error) {
	w, err := s.withdrawals.Decline(ctx, id, adminID, reason)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("withdrawal", "declined").Inc()
	s.record(ctx, "withdrawal_request", w.ID, adminID, "declined", map[string]any{"reason": reason})
	s.notifier.Emit(ctx, notify.Event{Type: "withdrawal.declined", EntityID: w.ID, UserID: w.UserID})
	return w, nil
}

func (s *AdminService) ApproveCard(ctx context.Context, id, adminID string) (models.Card, error) {
	c, err := s.cards.Approve(ctx, id, adminID)
	if err != nil {
		return models.Card{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("card", "approved").Inc()
	s.record(ctx, "card", c.ID, adminID, "approved", nil)
	s.notifier.Emit(ctx, notify.Event{Type: "card.approved", EntityID: c.ID, UserID: c.UserID})
	return c, nil
}

func (s *AdminService) DeclineCard(ctx context.Context, id, adminID, reason string) (models.Card, error) {
	c, err := s.cards.Decline(ctx, id, adminID, reason)
	if err != nil {
		return models.Card{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("card", "declined").Inc()
	s.record(ctx, "card", c.ID, adminID, "declined", map[string]any{"reason": reason})
	s.notifier.Emit(ctx, notify.Event{Type: "card.declined", EntityID: c.ID, UserID: c.UserID})
	return c, nil
}

func (s *AdminService) ApproveKYC(ctx context.Context, id, adminID string) (models.KYCSubmission, error) {
	k, err := s.kyc.Approve(ctx, id, adminID)
	if err != nil {
		return models.KYCSubmission{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("kyc", "approved").Inc()
	s.record(ctx, "kyc_submission", k.ID, adminID, "approved", nil)
	s.notifier.Emit(ctx, notify.Event{Type: "kyc.approved", EntityID: k.ID, UserID: k.UserID})
	return k, nil
}

func (s *AdminService) DeclineKYC(ctx context.Context, id, adminID, notes string) (models.KYCSubmission, error) {
	k, err := s.kyc.Decline(ctx, id, adminID, notes)
	if err != nil {
		return models.KYCSubmission{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("kyc", "declined").Inc()
	s.record(ctx, "kyc_submission", k.ID, adminID, "declined", map[string]any{"notes": notes})
	s.notifier.Emit(ctx, notify.Event{Type: "kyc.declined", EntityID: k.ID, UserID: k.UserID})
	return k, nil
}
