package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/metrics"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/notify"
	"github.com/digibank/backend/internal/registry"
	repo "github.com/digibank/backend/internal/repository"
)

type CardService struct {
	cards    repo.Cards
	accounts repo.Accounts
	ledger   repo.Ledger
	notifier notify.Notifier
	auditor
}

func NewCardService(cards repo.Cards, accounts repo.Accounts, ledger repo.Ledger, logs repo.AuditLogs, n notify.Notifier) *CardService {
	return &CardService{cards: cards, accounts: accounts, ledger: ledger, notifier: n, auditor: auditor{logs}}
}

// Request issues a pending card bound to one of the user's accounts; it
// becomes usable only after admin approval.
func (s *CardService) Request(ctx context.Context, userID, accountID, brand string) (models.Card, error) {
	switch registry.CardBrand(brand) {
	case registry.Visa, registry.Mastercard:
	default:
		return models.Card{}, apperr.Validation("unsupported card brand")
	}

	account, err := s.accounts.GetOwned(ctx, accountID, userID)
	if err != nil {
		return models.Card{}, err
	}

	c, err := s.cards.Create(ctx, models.Card{
		UserID:       userID,
		AccountID:    account.ID,
		MaskedNumber: fmt.Sprintf("**** **** **** %04d", rand.Intn(10000)),
		Brand:        brand,
		Currency:     account.Currency,
	})
	if err != nil {
		return models.Card{}, err
	}

	s.record(ctx, "card", c.ID, userID, "requested", map[string]any{"brand": brand})
	s.notifier.Emit(ctx, notify.Event{Type: "card.requested", EntityID: c.ID, UserID: userID})
	return c, nil
}

type FundCardInput struct {
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
}

// Fund moves money from the user's account onto the card in one commit
// unit. Only active cards can be funded.
func (s *CardService) Fund(ctx context.Context, userID, cardID string, in FundCardInput) (models.Card, models.Transaction, error) {
	if in.Amount <= 0 {
		return models.Card{}, models.Transaction{}, apperr.Validation("amount must be > 0")
	}

	card, err := s.cards.GetOwned(ctx, cardID, userID)
	if err != nil {
		return models.Card{}, models.Transaction{}, err
	}
	account, err := s.accounts.GetOwned(ctx, in.AccountID, userID)
	if err != nil {
		return models.Card{}, models.Transaction{}, err
	}

	txn, err := s.ledger.FundCard(ctx, account.ID, card.ID, in.Amount)
	if err != nil {
		return models.Card{}, models.Transaction{}, err
	}
	metrics.TransactionsTotal.WithLabelValues(string(models.TxnCardFunding)).Inc()

	card, err = s.cards.GetOwned(ctx, cardID, userID)
	if err != nil {
		return models.Card{}, models.Transaction{}, err
	}

	s.record(ctx, "card", card.ID, userID, "funded", map[string]any{"amount": in.Amount, "account": account.ID})
	s.notifier.Emit(ctx, notify.Event{
		Type:     "card.funded",
		EntityID: card.ID,
		UserID:   userID,
		Data:     map[string]any{"amount": in.Amount},
	})
	return card, txn, nil
}

func (s *CardService) List(ctx context.Context, userID string) ([]models.Card, error) {
	return s.cards.ListByUser(ctx, userID)
}
