package models

import "time"

type CardStatus string

const (
	CardPending  CardStatus = "pending"
	CardActive   CardStatus = "active"
	CardDeclined CardStatus = "declined"
	CardBlocked  CardStatus = "blocked"
)

// Card is a prepaid card funded from one of the owner's accounts. Cards
// start pending and become usable only after admin approval.
type Card struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	AccountID    string     `json:"account_id"`
	MaskedNumber string     `json:"masked_number"`
	Brand        string     `json:"brand"`
	Balance      int64      `json:"balance"`
	Currency     string     `json:"currency"`
	Status       CardStatus `json:"status"`
	AdminID      *string    `json:"admin_id,omitempty"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
