package services

import (
	"context"

	repo "github.com/digibank/backend/internal/repository"
)

// ReconcileService recomputes balances from the transaction log and
// compares them to the authoritative ledger columns. It is a diagnostic,
// never part of the money-movement hot path: completed rows sum to the
// balance, pending rows are outstanding holds.
type ReconcileService struct {
	accounts repo.Accounts
	txns     repo.Transactions
}

func NewReconcileService(accounts repo.Accounts, txns repo.Transactions) *ReconcileService {
	return &ReconcileService{accounts: accounts, txns: txns}
}

type BalanceReport struct {
	AccountID string          `json:"account_id"`
	Ledger    BalanceSnapshot `json:"ledger"`
	Computed  BalanceSnapshot `json:"computed"`
	InSync    bool            `json:"in_sync"`
}

type BalanceSnapshot struct {
	Balance          int64 `json:"balance"`
	AvailableBalance int64 `json:"available_balance"`
	PendingBalance   int64 `json:"pending_balance"`
}

func (s *ReconcileService) Recompute(ctx context.Context, accountID string) (BalanceReport, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return BalanceReport{}, err
	}

	completed, pending, err := s.txns.SumByStatus(ctx, accountID)
	if err != nil {
		return BalanceReport{}, err
	}

	// Holds are recorded as negative pending rows: a pending sum of -40
	// means 40 is earmarked. Pending rows do not touch the balance until
	// they complete.
	computed := BalanceSnapshot{
		Balance:          completed,
		AvailableBalance: completed + pending,
		PendingBalance:   -pending,
	}
	ledger := BalanceSnapshot{
		Balance:          a.Balance,
		AvailableBalance: a.AvailableBalance,
		PendingBalance:   a.PendingBalance,
	}

	return BalanceReport{
		AccountID: accountID,
		Ledger:    ledger,
		Computed:  computed,
		InSync:    ledger == computed,
	}, nil
}
