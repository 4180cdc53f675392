package models

import "time"

type TransactionType string

const (
	TxnDeposit     TransactionType = "deposit"
	TxnWithdrawal  TransactionType = "withdrawal"
	TxnTransferIn  TransactionType = "transfer_in"
	TxnTransferOut TransactionType = "transfer_out"
	TxnCardFunding TransactionType = "card_funding"
	TxnAdminCredit TransactionType = "admin_credit"
	TxnAdminDebit  TransactionType = "admin_debit"
)

type TransactionStatus string

const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
	TxnReversed  TransactionStatus = "reversed"
)

// Transaction is an immutable audit row; exactly one is written per
// ledger mutation. Only Status may change afterwards (pending->completed
// on approval, pending->reversed on decline/reverse).
type Transaction struct {
	ID          string            `json:"id"`
	AccountID   string            `json:"account_id"`
	Amount      int64             `json:"amount"` // signed: credits > 0, debits < 0
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	Category    string            `json:"category"`
	Description string            `json:"description,omitempty"`
	Reference   string            `json:"reference,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
