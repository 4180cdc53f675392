package models

import "time"

// RequestStatus is shared by every admin-gated money-movement request.
// pending -> approved | declined are terminal; reversed exists only for
// transfers and is logged distinctly from a decline.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusDeclined RequestStatus = "declined"
	StatusReversed RequestStatus = "reversed"
)

// TransferRequest is an external (outbound) transfer awaiting an admin
// decision. Creating one holds Amount from the source account's available
// balance into pending until the gate resolves it.
type TransferRequest struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	FromAccountID   string        `json:"from_account_id"`
	DestinationBank string        `json:"destination_bank"`
	RoutingNumber   string        `json:"routing_number"`
	AccountNumber   string        `json:"account_number"`
	AccountName     string        `json:"account_name"`
	Amount          int64         `json:"amount"`
	Currency        string        `json:"currency"`
	Reference       string        `json:"reference"`
	Status          RequestStatus `json:"status"`
	Reason          string        `json:"reason,omitempty"`
	AdminID         *string       `json:"admin_id,omitempty"`
	ProcessedAt     *time.Time    `json:"processed_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type DepositRequest struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Amount      int64         `json:"amount"`
	Method      string        `json:"method"`
	Status      RequestStatus `json:"status"`
	Reason      string        `json:"reason,omitempty"`
	AdminID     *string       `json:"admin_id,omitempty"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// WithdrawalRequest holds funds the same way a TransferRequest does; on
// approval the hold settles against the balance, on decline it releases.
type WithdrawalRequest struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	AccountID   string        `json:"account_id"`
	Amount      int64         `json:"amount"`
	BackupCode  string        `json:"-"`
	Status      RequestStatus `json:"status"`
	Reason      string        `json:"reason,omitempty"`
	AdminID     *string       `json:"admin_id,omitempty"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
