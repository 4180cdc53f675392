package services

import (
	"context"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/notify"
	repo "github.com/digibank/backend/internal/repository"
)

type DepositService struct {
	deposits repo.DepositRequests
	notifier notify.Notifier
	auditor
}

func NewDepositService(deposits repo.DepositRequests, logs repo.AuditLogs, n notify.Notifier) *DepositService {
	return &DepositService{deposits: deposits, notifier: n, auditor: auditor{logs}}
}

// Request records an inbound deposit awaiting admin confirmation. No
// money moves until the gate approves; the funds come from outside the
// system.
func (s *DepositService) Request(ctx context.Context, userID string, amount int64, method string) (models.DepositRequest, error) {
	if amount <= 0 {
		return models.DepositRequest{}, apperr.Validation("amount must be > 0")
	}
	if method == "" {
		method = "bank_transfer"
	}

	d, err := s.deposits.Create(ctx, models.DepositRequest{
		UserID: userID,
		Amount: amount,
		Method: method,
	})
	if err != nil {
		return models.DepositRequest{}, err
	}

	s.record(ctx, "deposit_request", d.ID, userID, "created", map[string]any{"amount": amount, "method": method})
	s.notifier.Emit(ctx, notify.Event{
		Type:     "deposit.created",
		EntityID: d.ID,
		UserID:   userID,
		Data:     map[string]any{"amount": amount},
	})
	return d, nil
}

func (s *DepositService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.DepositRequest, error) {
	return s.deposits.ListByUser(ctx, userID, limit, offset)
}
