package models

import "time"

type KYCSubmission struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	DocumentType   string        `json:"document_type"`
	DocumentNumber string        `json:"document_number"`
	Status         RequestStatus `json:"status"`
	Notes          string        `json:"notes,omitempty"`
	AdminID        *string       `json:"admin_id,omitempty"`
	ProcessedAt    *time.Time    `json:"processed_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}
