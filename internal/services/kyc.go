package services

import (
	"context"
	"strings"

	"github.com/digibank/backend/internal/apperr"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/notify"
	repo "github.com/digibank/backend/internal/repository"
)

type KYCService struct {
	kyc      repo.KYCSubmissions
	notifier notify.Notifier
	auditor
}

func NewKYCService(kyc repo.KYCSubmissions, logs repo.AuditLogs, n notify.Notifier) *KYCService {
	return &KYCService{kyc: kyc, notifier: n, auditor: auditor{logs}}
}

var kycDocumentTypes = map[string]bool{
	"passport":        true,
	"drivers_license": true,
	"national_id":     true,
}

func (s *KYCService) Submit(ctx context.Context, userID, docType, docNumber string) (models.KYCSubmission, error) {
	docType = strings.ToLower(strings.TrimSpace(docType))
	if !kycDocumentTypes[docType] {
		return models.KYCSubmission{}, apperr.Validation("unsupported document type")
	}
	if strings.TrimSpace(docNumber) == "" {
		return models.KYCSubmission{}, apperr.Validation("document number is required")
	}

	k, err := s.kyc.Create(ctx, models.KYCSubmission{
		UserID:         userID,
		DocumentType:   docType,
		DocumentNumber: docNumber,
	})
	if err != nil {
		return models.KYCSubmission{}, err
	}

	s.record(ctx, "kyc_submission", k.ID, userID, "submitted", map[string]any{"document_type": docType})
	s.notifier.Emit(ctx, notify.Event{Type: "kyc.submitted", EntityID: k.ID, UserID: userID})
	return k, nil
}
