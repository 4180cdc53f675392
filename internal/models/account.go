package models

import "time"

type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountBusiness AccountType = "business"
	AccountCrypto   AccountType = "crypto"
)

// Account carries the authoritative balance columns. Amounts are int64
// minor units (cents). Invariant after every committed operation:
// Balance == AvailableBalance + PendingBalance.
type Account struct {
	ID               string      `json:"id"`
	OwnerID          string      `json:"owner_id"`
	Type             AccountType `json:"type"`
	Balance          int64       `json:"balance"`
	AvailableBalance int64       `json:"available_balance"`
	PendingBalance   int64       `json:"pending_balance"`
	Currency         string      `json:"currency"`
	IsPrimary        bool        `json:"is_primary"`
	IsActive         bool        `json:"is_active"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountChecking, AccountSavings, AccountBusiness, AccountCrypto:
		return true
	}
	return false
}
