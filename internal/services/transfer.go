package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/metrics"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/notify"
	"github.com/digibank/backend/internal/registry"
	repo "github.com/digibank/backend/internal/repository"
)

// TransferService runs the external-transfer approval workflow: a
// request holds funds on creation and the admin gate settles or releases
// the hold.
type TransferService struct {
	transfers repo.TransferRequests
	accounts  repo.Accounts
	notifier  notify.Notifier
	auditor
}

func NewTransferService(transfers repo.TransferRequests, accounts repo.Accounts, logs repo.AuditLogs, n notify.Notifier) *TransferService {
	return &TransferService{transfers: transfers, accounts: accounts, notifier: n, auditor: auditor{logs}}
}

type CreateTransferInput struct {
	FromAccountID   string `json:"from_account_id"`
	DestinationBank string `json:"destination_bank"`
	RoutingNumber   string `json:"routing_number"`
	AccountNumber   string `json:"account_number"`
	AccountName     string `json:"account_name"`
	Amount          int64  `json:"amount"`
}

// newReference issues a fresh human-quotable reference per request.
// There is deliberately no dedup key: a duplicate submission creates a
// second pending request holding its own funds, which the admin gate
// resolves.
func newReference() string {
	return "TRF-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

func (s *TransferService) Create(ctx context.Context, userID string, in CreateTransferInput) (models.TransferRequest, error) {
	if in.Amount <= 0 {
		return models.TransferRequest{}, apperr.Validation("amount must be > 0")
	}
	if in.AccountNumber == "" || in.AccountName == "" {
		return models.TransferRequest{}, apperr.Validation("destination account number and name are required")
	}

	bank, ok := registry.LookupBank(in.RoutingNumber)
	if !ok {
		metrics.TransfersFailed.Inc()
		return models.TransferRequest{}, apperr.Validation("unknown routing number")
	}
	if in.DestinationBank == "" {
		in.DestinationBank = bank
	}

	account, err := s.accounts.GetOwned(ctx, in.FromAccountID, userID)
	if err != nil {
		return models.TransferRequest{}, err
	}
	if !account.IsActive {
		return models.TransferRequest{}, apperr.Validation("account is not active")
	}

	tr, err := s.transfers.Create(ctx, models.TransferRequest{
		UserID:          userID,
		FromAccountID:   account.ID,
		DestinationBank: in.DestinationBank,
		RoutingNumber:   in.RoutingNumber,
		AccountNumber:   in.AccountNumber,
		AccountName:     in.AccountName,
		Amount:          in.Amount,
		Currency:        account.Currency,
		Reference:       newReference(),
	})
	if err != nil {
		metrics.TransfersFailed.Inc()
		return models.TransferRequest{}, err
	}

	s.record(ctx, "transfer_request", tr.ID, userID, "created", map[string]any{
		"reference": tr.Reference,
		"amount":    tr.Amount,
	})
	s.notifier.Emit(ctx, notify.Event{
		Type:     "transfer.created",
		EntityID: tr.ID,
		UserID:   userID,
		Data:     map[string]any{"reference": tr.Reference, "amount": tr.Amount, "status": string(tr.Status)},
	})
	return tr, nil
}

func (s *TransferService) GetForUser(ctx context.Context, id, userID string) (models.TransferRequest, error) {
	tr, err := s.transfers.GetByID(ctx, id)
	if err != nil {
		return models.TransferRequest{}, err
	}
	if tr.UserID != userID {
		return models.TransferRequest{}, apperr.NotFound("transfer request")
	}
	return tr, nil
}

func (s *TransferService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.TransferRequest, error) {
	return s.transfers.ListByUser(ctx, userID, limit, offset)
}

func (s *TransferService) List(ctx context.Context, status models.RequestStatus) ([]models.TransferRequest, error) {
	if status != "" {
		switch status {
		case models.StatusPending, models.StatusApproved, models.StatusDeclined, models.StatusReversed:
		default:
			return nil, apperr.Validation("invalid status filter")
		}
	}
	return s.transfers.List(ctx, status)
}

// Approve settles the hold: pending and balance both drop by amount.
// The repo transition is conditional on status=pending, so a second
// approval attempt fails with already_processed and touches nothing.
func (s *TransferService) Approve(ctx context.Context, id, adminID string) (models.TransferRequest, error) {
	tr, err := s.transfers.Approve(ctx, id, adminID)
	if err != nil {
		return models.TransferRequest{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("transfer", "approved").Inc()
	s.record(ctx, "transfer_request", tr.ID, adminID, "approved", map[string]any{"reference": tr.Reference})
	s.notifier.Emit(ctx, notify.Event{
		Type:     "transfer.approved",
		EntityID: tr.ID,
		UserID:   tr.UserID,
		Data:     map[string]any{"reference": tr.Reference, "amount": tr.Amount},
	})
	return tr, nil
}

// Decline releases the hold back to available; balance is unchanged.
func (s *TransferService) Decline(ctx context.Context, id, adminID, reason string) (models.TransferRequest, error) {
	tr, err := s.transfers.Decline(ctx, id, adminID, reason)
	if err != nil {
		return models.TransferRequest{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("transfer", "declined").Inc()
	s.record(ctx, "transfer_request", tr.ID, adminID, "declined", map[string]any{"reason": reason})
	s.notifier.Emit(ctx, notify.Event{
		Type:     "transfer.declined",
		EntityID: tr.ID,
		UserID:   tr.UserID,
		Data:     map[string]any{"reference": tr.Reference, "reason": reason},
	})
	return tr, nil
}

// Reverse has decline's balance semantics but is logged as a distinct
// action.
func (s *TransferService) Reverse(ctx context.Context, id, adminID, notes string) (models.TransferRequest, error) {
	tr, err := s.transfers.Reverse(ctx, id, adminID, notes)
	if err != nil {
		return models.TransferRequest{}, err
	}
	metrics.ApprovalsTotal.WithLabelValues("transfer", "reversed").Inc()
	s.record(ctx, "transfer_request", tr.ID, adminID, "reversed", map[string]any{"notes": notes})
	s.notifier.Emit(ctx, notify.Event{
		Type:     "transfer.reversed",
		EntityID: tr.ID,
		UserID:   tr.UserID,
		Data:     map[string]any{"reference": tr.Reference},
	})
	return tr, nil
}
