package services

import (
	"context"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/models"
	repo "github.com/digibank/backend/internal/repository"
)

type AccountService struct {
	accounts repo.Accounts
	txns     repo.Transactions
	auditor
}

func NewAccountService(accounts repo.Accounts, txns repo.Transactions, logs repo.AuditLogs) *AccountService {
	return &AccountService{accounts: accounts, txns: txns, auditor: auditor{logs}}
}

// Open creates an additional (non-primary) account for the user; the
// primary checking account is created at registration.
func (s *AccountService) Open(ctx context.Context, userID string, accType models.AccountType, currency string) (models.Account, error) {
	if !models.ValidAccountType(accType) {
		return models.Account{}, apperr.Validation("invalid account type")
	}
	if currency == "" {
		currency = "USD"
	}

	a, err := s.accounts.Create(ctx, models.Account{
		OwnerID:  userID,
		Type:     accType,
		Currency: currency,
	})
	if err != nil {
		return models.Account{}, err
	}
	s.record(ctx, "account", a.ID, userID, "opened", map[string]any{"type": string(accType)})
	return a, nil
}

func (s *AccountService) Get(ctx context.Context, id, userID string) (models.Account, error) {
	return s.accounts.GetOwned(ctx, id, userID)
}

func (s *AccountService) List(ctx context.Context, userID string) ([]models.Account, error) {
	return s.accounts.ListByOwner(ctx, userID)
}

func (s *AccountService) Transactions(ctx context.Context, accountID, userID string, limit, offset int) ([]models.Transaction, error) {
	// Ownership check first: a foreign account reads as not found.
	if _, err := s.accounts.GetOwned(ctx, accountID, userID); err != nil {
		return nil, err
	}
	return s.txns.ListByAccount(ctx, accountID, limit, offset)
}
