package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/notify"
)

// memStore is an in-memory stand-in for the postgres repositories with
// the same conditional-transition semantics: holds, settlements and
// status changes refuse to double-apply.
type memStore struct {
	accounts    map[string]*models.Account
	txns        []*models.Transaction
	transfers   map[string]*models.TransferRequest
	deposits    map[string]*models.DepositRequest
	withdrawals map[string]*models.WithdrawalRequest
	cards       map[string]*models.Card
	kycs        map[string]*models.KYCSubmission
	users       map[string]*models.User
	audits      []models.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		accounts:    map[string]*models.Account{},
		transfers:   map[string]*models.TransferRequest{},
		deposits:    map[string]*models.DepositRequest{},
		withdrawals: map[string]*models.WithdrawalRequest{},
		cards:       map[string]*models.Card{},
		kycs:        map[string]*models.KYCSubmission{},
		users:       map[string]*models.User{},
	}
}

func (s *memStore) seedAccount(ownerID string, balance int64, primary bool) *models.Account {
	a := &models.Account{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		Type:             models.AccountChecking,
		Balance:          balance,
		AvailableBalance: balance,
		Currency:         "USD",
		IsPrimary:        primary,
		IsActive:         true,
		CreatedAt:        time.Now(),
	}
	s.accounts[a.ID] = a
	return a
}

func (s *memStore) addTxn(t models.Transaction) *models.Transaction {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now()
	cp := t
	s.txns = append(s.txns, &cp)
	return &cp
}

func (s *memStore) hold(accountID string, amount int64) error {
	a, ok := s.accounts[accountID]
	if !ok || !a.IsActive {
		return apperr.NotFound("account")
	}
	if a.AvailableBalance < amount {
		return apperr.InsufficientFunds()
	}
	a.AvailableBalance -= amount
	a.PendingBalance += amount
	return nil
}

func (s *memStore) release(accountID string, amount int64) {
	a := s.accounts[accountID]
	a.AvailableBalance += amount
	a.PendingBalance -= amount
}

func (s *memStore) settle(accountID string, amount int64) {
	a := s.accounts[accountID]
	a.PendingBalance -= amount
	a.Balance -= amount
}

func (s *memStore) setTxnStatus(reference string, from, to models.TransactionStatus) {
	for _, t := range s.txns {
		if t.Reference == reference && t.Status == from {
			t.Status = to
		}
	}
}

// ---- Accounts ----

type memAccounts struct{ s *memStore }

func (r memAccounts) Create(_ context.Context, a models.Account) (models.Account, error) {
	a.ID = uuid.NewString()
	a.IsActive = true
	a.CreatedAt = time.Now()
	cp := a
	r.s.accounts[a.ID] = &cp
	return a, nil
}

func (r memAccounts) GetByID(_ context.Context, id string) (models.Account, error) {
	a, ok := r.s.accounts[id]
	if !ok {
		return models.Account{}, apperr.NotFound("account")
	}
	return *a, nil
}

func (r memAccounts) GetOwned(_ context.Context, id, ownerID string) (models.Account, error) {
	a, ok := r.s.accounts[id]
	if !ok || a.OwnerID != ownerID {
		return models.Account{}, apperr.NotFound("account")
	}
	return *a, nil
}

func (r memAccounts) GetPrimary(_ context.Context, ownerID string) (models.Account, error) {
	for _, a := range r.s.accounts {
		if a.OwnerID == ownerID && a.IsPrimary && a.IsActive {
			return *a, nil
		}
	}
	return models.Account{}, apperr.NotFound("primary account")
}

func (r memAccounts) ListByOwner(_ context.Context, ownerID string) ([]models.Account, error) {
	var out []models.Account
	for _, a := range r.s.accounts {
		if a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

// ---- Ledger ----

type memLedger struct{ s *memStore }

func (r memLedger) Credit(_ context.Context, accountID string, amount int64, txn models.Transaction) (models.Account, models.Transaction, error) {
	a, ok := r.s.accounts[accountID]
	if !ok || !a.IsActive {
		return models.Account{}, models.Transaction{}, apperr.NotFound("account")
	}
	a.Balance += amount
	a.AvailableBalance += amount
	txn.AccountID = accountID
	txn.Amount = amount
	txn.Status = models.TxnCompleted
	return *a, *r.s.addTxn(txn), nil
}

func (r memLedger) Debit(_ context.Context, accountID string, amount int64, txn models.Transaction) (models.Account, models.Transaction, error) {
	a, ok := r.s.accounts[accountID]
	if !ok || !a.IsActive {
		return models.Account{}, models.Transaction{}, apperr.NotFound("account")
	}
	if a.AvailableBalance < amount {
		return models.Account{}, models.Transaction{}, apperr.InsufficientFunds()
	}
	a.Balance -= amount
	a.AvailableBalance -= amount
	txn.AccountID = accountID
	txn.Amount = -amount
	txn.Status = models.TxnCompleted
	return *a, *r.s.addTxn(txn), nil
}

func (r memLedger) TransferBetween(_ context.Context, fromID, toID string, amount int64, description string) (models.Transaction, models.Transaction, error) {
	from, ok := r.s.accounts[fromID]
	if !ok || !from.IsActive {
		return models.Transaction{}, models.Transaction{}, apperr.NotFound("account")
	}
	to, ok := r.s.accounts[toID]
	if !ok || !to.IsActive {
		return models.Transaction{}, models.Transaction{}, apperr.NotFound("destination account")
	}
	if from.AvailableBalance < amount {
		return models.Transaction{}, models.Transaction{}, apperr.InsufficientFunds()
	}
	from.Balance -= amount
	from.AvailableBalance -= amount
	to.Balance += amount
	to.AvailableBalance += amount

	ref := uuid.NewString()
	out := r.s.addTxn(models.Transaction{
		AccountID: fromID, Amount: -amount, Type: models.TxnTransferOut,
		Status: models.TxnCompleted, Category: "transfer", Description: description, Reference: ref,
	})
	in := r.s.addTxn(models.Transaction{
		AccountID: toID, Amount: amount, Type: models.TxnTransferIn,
		Status: models.TxnCompleted, Category: "transfer", Description: description, Reference: ref,
	})
	return *out, *in, nil
}

func (r memLedger) FundCard(_ context.Context, accountID, cardID string, amount int64) (models.Transaction, error) {
	a, ok := r.s.accounts[accountID]
	if !ok || !a.IsActive {
		return models.Transaction{}, apperr.NotFound("account")
	}
	if a.AvailableBalance < amount {
		return models.Transaction{}, apperr.InsufficientFunds()
	}
	c, ok := r.s.cards[cardID]
	if !ok || c.Status != models.CardActive {
		return models.Transaction{}, apperr.Validation("card is not active")
	}
	a.Balance -= amount
	a.AvailableBalance -= amount
	c.Balance += amount
	return *r.s.addTxn(models.Transaction{
		AccountID: accountID, Amount: -amount, Type: models.TxnCardFunding,
		Status: models.TxnCompleted, Category: "card", Reference: cardID,
	}), nil
}

// ---- TransferRequests ----

type memTransfers struct{ s *memStore }

func (r memTransfers) Create(_ context.Context, tr models.TransferRequest) (models.TransferRequest, error) {
	if err := r.s.hold(tr.FromAccountID, tr.Amount); err != nil {
		return models.TransferRequest{}, err
	}
	tr.ID = uuid.NewString()
	tr.Status = models.StatusPending
	tr.CreatedAt = time.Now()
	cp := tr
	r.s.transfers[tr.ID] = &cp
	r.s.addTxn(models.Transaction{
		AccountID: tr.FromAccountID, Amount: -tr.Amount, Type: models.TxnTransferOut,
		Status: models.TxnPending, Category: "external_transfer", Reference: tr.Reference,
	})
	return tr, nil
}

func (r memTransfers) GetByID(_ context.Context, id string) (models.TransferRequest, error) {
	tr, ok := r.s.transfers[id]
	if !ok {
		return models.TransferRequest{}, apperr.NotFound("transfer request")
	}
	return *tr, nil
}

func (r memTransfers) ListByUser(_ context.Context, userID string, _, _ int) ([]models.TransferRequest, error) {
	var out []models.TransferRequest
	for _, tr := range r.s.transfers {
		if tr.UserID == userID {
			out = append(out, *tr)
		}
	}
	return out, nil
}

func (r memTransfers) List(_ context.Context, status models.RequestStatus) ([]models.TransferRequest, error) {
	var out []models.TransferRequest
	for _, tr := range r.s.transfers {
		if status == "" || tr.Status == status {
			out = append(out, *tr)
		}
	}
	return out, nil
}

func (r memTransfers) decide(id, adminID, reason string, to models.RequestStatus, settle bool) (models.TransferRequest, error) {
	tr, ok := r.s.transfers[id]
	if !ok {
		return models.TransferRequest{}, apperr.NotFound("transfer request")
	}
	if tr.Status != models.StatusPending {
		return models.TransferRequest{}, apperr.AlreadyProcessed("transfer request")
	}
	now := time.Now()
	tr.Status = to
	tr.AdminID = &adminID
	tr.Reason = reason
	tr.ProcessedAt = &now
	if settle {
		r.s.settle(tr.FromAccountID, tr.Amount)
		r.s.setTxnStatus(tr.Reference, models.TxnPending, models.TxnCompleted)
	} else {
		r.s.release(tr.FromAccountID, tr.Amount)
		r.s.setTxnStatus(tr.Reference, models.TxnPending, models.TxnReversed)
	}
	return *tr, nil
}

func (r memTransfers) Approve(_ context.Context, id, adminID string) (models.TransferRequest, error) {
	return r.decide(id, adminID, "", models.StatusApproved, true)
}

func (r memTransfers) Decline(_ context.Context, id, adminID, reason string) (models.TransferRequest, error) {
	return r.decide(id, adminID, reason, models.StatusDeclined, false)
}

func (r memTransfers) Reverse(_ context.Context, id, adminID, notes string) (models.TransferRequest, error) {
	return r.decide(id, adminID, notes, models.StatusReversed, false)
}

// ---- DepositRequests ----

type memDeposits struct{ s *memStore }

func (r memDeposits) Create(_ context.Context, d models.DepositRequest) (models.DepositRequest, error) {
	d.ID = uuid.NewString()
	d.Status = models.StatusPending
	d.CreatedAt = time.Now()
	cp := d
	r.s.deposits[d.ID] = &cp
	return d, nil
}

func (r memDeposits) GetByID(_ context.Context, id string) (models.DepositRequest, error) {
	d, ok := r.s.deposits[id]
	if !ok {
		return models.DepositRequest{}, apperr.NotFound("deposit request")
	}
	return *d, nil
}

func (r memDeposits) ListByUser(_ context.Context, userID string, _, _ int) ([]models.DepositRequest, error) {
	var out []models.DepositRequest
	for _, d := range r.s.deposits {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r memDeposits) Approve(_ context.Context, id, adminID string) (models.DepositRequest, error) {
	d, ok := r.s.deposits[id]
	if !ok {
		return models.DepositRequest{}, apperr.NotFound("deposit request")
	}
	if d.Status != models.StatusPending {
		return models.DepositRequest{}, apperr.AlreadyProcessed("deposit request")
	}
	var primary *models.Account
	for _, a := range r.s.accounts {
		if a.OwnerID == d.UserID && a.IsPrimary && a.IsActive {
			primary = a
		}
	}
	if primary == nil {
		return models.DepositRequest{}, apperr.NotFound("primary account")
	}
	now := time.Now()
	d.Status = models.StatusApproved
	d.AdminID = &adminID
	d.ProcessedAt = &now
	primary.Balance += d.Amount
	primary.AvailableBalance += d.Amount
	r.s.addTxn(models.Transaction{
		AccountID: primary.ID, Amount: d.Amount, Type: models.TxnDeposit,
		Status: models.TxnCompleted, Category: "deposit", Reference: d.ID,
	})
	return *d, nil
}

func (r memDeposits) Decline(_ context.Context, id, adminID, reason string) (models.DepositRequest, error) {
	d, ok := r.s.deposits[id]
	if !ok {
		return models.DepositRequest{}, apperr.NotFound("deposit request")
	}
	if d.Status != models.StatusPending {
		return models.DepositRequest{}, apperr.AlreadyProcessed("deposit request")
	}
	now := time.Now()
	d.Status = models.StatusDeclined
	d.AdminID = &adminID
	d.Reason = reason
	d.ProcessedAt = &now
	return *d, nil
}

// ---- WithdrawalRequests ----

type memWithdrawals struct{ s *memStore }

func (r memWithdrawals) Create(_ context.Context, w models.WithdrawalRequest) (models.WithdrawalRequest, error) {
	if err := r.s.hold(w.AccountID, w.Amount); err != nil {
		return models.WithdrawalRequest{}, err
	}
	w.ID = uuid.NewString()
	w.Status = models.StatusPending
	w.CreatedAt = time.Now()
	cp := w
	r.s.withdrawals[w.ID] = &cp
	r.s.addTxn(models.Transaction{
		AccountID: w.AccountID, Amount: -w.Amount, Type: models.TxnWithdrawal,
		Status: models.TxnPending, Category: "withdrawal", Reference: w.ID,
	})
	return w, nil
}

func (r memWithdrawals) GetByID(_ context.Context, id string) (models.WithdrawalRequest, error) {
	w, ok := r.s.withdrawals[id]
	if !ok {
		return models.WithdrawalRequest{}, apperr.NotFound("withdrawal request")
	}
	return *w, nil
}

func (r memWithdrawals) ListByUser(_ context.Context, userID string, _, _ int) ([]models.WithdrawalRequest, error) {
	var out []models.WithdrawalRequest
	for _, w := range r.s.withdrawals {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r memWithdrawals) decide(id, adminID, reason string, to models.RequestStatus, settle bool) (models.WithdrawalRequest, error) {
	w, ok := r.s.withdrawals[id]
	if !ok {
		return models.WithdrawalRequest{}, apperr.NotFound("withdrawal request")
	}
	if w.Status != models.StatusPending {
		return models.WithdrawalRequest{}, apperr.AlreadyProcessed("withdrawal request")
	}
	now := time.Now()
	w.Status = to
	w.AdminID = &adminID
	w.Reason = reason
	w.ProcessedAt = &now
	if settle {
		r.s.settle(w.AccountID, w.Amount)
		r.s.setTxnStatus(w.ID, models.TxnPending, models.TxnCompleted)
	} else {
		r.s.release(w.AccountID, w.Amount)
		r.s.setTxnStatus(w.ID, models.TxnPending, models.TxnReversed)
	}
	return *w, nil
}

func (r memWithdrawals) Approve(_ context.Context, id, adminID string) (models.WithdrawalRequest, error) {
	return r.decide(id, adminID, "", models.StatusApproved, true)
}

func (r memWithdrawals) Decline(_ context.Context, id, adminID, reason string) (models.WithdrawalRequest, error) {
	return r.decide(id, adminID, reason, models.StatusDeclined, false)
}

// ---- Cards ----

type memCards struct{ s *memStore }

func (r memCards) Create(_ context.Context, c models.Card) (models.Card, error) {
	c.ID = uuid.NewString()
	c.Status = models.CardPending
	c.CreatedAt = time.Now()
	cp := c
	r.s.cards[c.ID] = &cp
	return c, nil
}

func (r memCards) GetOwned(_ context.Context, id, userID string) (models.Card, error) {
	c, ok := r.s.cards[id]
	if !ok || c.UserID != userID {
		return models.Card{}, apperr.NotFound("card")
	}
	return *c, nil
}

func (r memCards) ListByUser(_ context.Context, userID string) ([]models.Card, error) {
	var out []models.Card
	for _, c := range r.s.cards {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r memCards) decide(id, adminID string, to models.CardStatus) (models.Card, error) {
	c, ok := r.s.cards[id]
	if !ok {
		return models.Card{}, apperr.NotFound("card")
	}
	if c.Status != models.CardPending {
		return models.Card{}, apperr.AlreadyProcessed("card")
	}
	now := time.Now()
	c.Status = to
	c.AdminID = &adminID
	c.ProcessedAt = &now
	return *c, nil
}

func (r memCards) Approve(_ context.Context, id, adminID string) (models.Card, error) {
	return r.decide(id, adminID, models.CardActive)
}

func (r memCards) Decline(_ context.Context, id, adminID, _ string) (models.Card, error) {
	return r.decide(id, adminID, models.CardDeclined)
}

// ---- KYC ----

type memKYC struct{ s *memStore }

func (r memKYC) Create(_ context.Context, k models.KYCSubmission) (models.KYCSubmission, error) {
	k.ID = uuid.NewString()
	k.Status = models.StatusPending
	k.CreatedAt = time.Now()
	cp := k
	r.s.kycs[k.ID] = &cp
	return k, nil
}

func (r memKYC) GetByID(_ context.Context, id string) (models.KYCSubmission, error) {
	k, ok := r.s.kycs[id]
	if !ok {
		return models.KYCSubmission{}, apperr.NotFound("kyc submission")
	}
	return *k, nil
}

func (r memKYC) decide(id, adminID, notes string, to models.RequestStatus) (models.KYCSubmission, error) {
	k, ok := r.s.kycs[id]
	if !ok {
		return models.KYCSubmission{}, apperr.NotFound("kyc submission")
	}
	if k.Status != models.StatusPending {
		return models.KYCSubmission{}, apperr.AlreadyProcessed("kyc submission")
	}
	now := time.Now()
	k.Status = to
	k.AdminID = &adminID
	k.Notes = notes
	k.ProcessedAt = &now
	if to == models.StatusApproved {
		if u, ok := r.s.users[k.UserID]; ok {
			u.KYCVerified = true
		}
	}
	return *k, nil
}

func (r memKYC) Approve(_ context.Context, id, adminID string) (models.KYCSubmission, error) {
	return r.decide(id, adminID, "", models.StatusApproved)
}

func (r memKYC) Decline(_ context.Context, id, adminID, notes string) (models.KYCSubmission, error) {
	return r.decide(id, adminID, notes, models.StatusDeclined)
}

// ---- Transactions ----

type memTxns struct{ s *memStore }

func (r memTxns) GetByID(_ context.Context, id string) (models.Transaction, error) {
	for _, t := range r.s.txns {
		if t.ID == id {
			return *t, nil
		}
	}
	return models.Transaction{}, apperr.NotFound("transaction")
}

func (r memTxns) ListByAccount(_ context.Context, accountID string, _, _ int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range r.s.txns {
		if t.AccountID == accountID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r memTxns) SumByStatus(_ context.Context, accountID string) (completed, pending int64, err error) {
	for _, t := range r.s.txns {
		if t.AccountID != accountID {
			continue
		}
		switch t.Status {
		case models.TxnCompleted:
			completed += t.Amount
		case models.TxnPending:
			pending += t.Amount
		}
	}
	return completed, pending, nil
}

// ---- Users ----

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u models.User) (models.User, error) {
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return models.User{}, apperr.New(apperr.KindConflict, "email already registered")
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r memUsers) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, apperr.NotFound("user")
	}
	return *u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return models.User{}, apperr.NotFound("user")
}

func (r memUsers) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r memUsers) SetKYCVerified(_ context.Context, id string, verified bool) error {
	u, ok := r.s.users[id]
	if !ok {
		return apperr.NotFound("user")
	}
	u.KYCVerified = verified
	return nil
}

// ---- AuditLogs / Notifier ----

type memAudit struct{ s *memStore }

func (r memAudit) Create(_ context.Context, l models.AuditLog) error {
	r.s.audits = append(r.s.audits, l)
	return nil
}

type memNotifier struct{ events []notify.Event }

func (n *memNotifier) Emit(_ context.Context, e notify.Event) {
	n.events = append(n.events, e)
}
