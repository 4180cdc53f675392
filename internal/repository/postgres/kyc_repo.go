package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digibank/backend/internal/models"
)

type kycRepo struct{ pool *pgxpool.Pool }

const kycCols = `id, user_id, document_type, document_number, status, notes, admin_id, processed_at, created_at`

func scanKYC(row interface{ Scan(...any) error }, k *models.KYCSubmission) error {
	return row.Scan(&k.ID, &k.UserID, &k.DocumentType, &k.DocumentNumber, &k.Status,
		&k.Notes, &k.AdminID, &k.ProcessedAt, &k.CreatedAt)
}

func (r *kycRepo) Create(ctx context.Context, k models.KYCSubmission) (models.KYCSubmission, error) {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	err := scanKYC(r.pool.QueryRow(ctx,
		`INSERT INTO kyc_submissions(id, user_id, document_type, document_number, status)
		 VALUES($1,$2,$3,$4,'pending')
		 RETURNING `+kycCols,
		k.ID, k.UserID, k.DocumentType, k.DocumentNumber,
	), &k)
	return k, err
}

func (r *kycRepo) GetByID(ctx context.Context, id string) (models.KYCSubmission, error) {
	var k models.KYCSubmission
	err := scanKYC(r.pool.QueryRow(ctx,
		`SELECT `+kycCols+` FROM kyc_submissions WHERE id=$1`, id), &k)
	return k, notFound(err, "kyc submission")
}

func (r *kycRepo) decide(ctx context.Context, id, adminID, notes string, to models.RequestStatus) (models.KYCSubmission, error) {
	var k models.KYCSubmission
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := scanKYC(tx.QueryRow(ctx,
			`UPDATE kyc_submissions
			    SET status=$2, admin_id=$3, notes=$4, processed_at=now()
			  WHERE id=$1 AND status='pending'
			  RETURNING `+kycCols,
			id, string(to), adminID, notes,
		), &k)
		if errors.Is(err, pgx.ErrNoRows) {
			return decidedErr(ctx, tx, `SELECT EXISTS(SELECT 1 FROM kyc_submissions WHERE id=$1)`, id, "kyc submission")
		}
		if err != nil {
			return err
		}

		if to == models.StatusApproved {
			_, err = tx.Exec(ctx,
				`UPDATE users SET kyc_verified=true, updated_at=now() WHERE id=$1`, k.UserID)
		}
		return err
	})
	if err != nil {
		return models.KYCSubmission{}, err
	}
	return k, nil
}

func (r *kycRepo) Approve(ctx context.Context, id, adminID string) (models.KYCSubmission, error) {
	return r.decide(ctx, id, adminID, "", models.StatusApproved)
}

func (r *kycRepo) Decline(ctx context.Context, id, adminID, notes string) (models.KYCSubmission, error) {
	return r.decide(ctx, id, adminID, notes, models.StatusDeclined)
}
