package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digibank/backend/internal/models"
)

type cardsRepo struct{ pool *pgxpool.Pool }

const cardCols = `id, user_id, account_id, masked_number, brand, balance, currency, status, admin_id, processed_at, created_at`

func scanCard(row interface{ Scan(...any) error }, c *models.Card) error {
	return row.Scan(&c.ID, &c.UserID, &c.AccountID, &c.MaskedNumber, &c.Brand, &c.Balance,
		&c.Currency, &c.Status, &c.AdminID, &c.ProcessedAt, &c.CreatedAt)
}

func (r *cardsRepo) Create(ctx context.Context, c models.Card) (models.Card, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := scanCard(r.pool.QueryRow(ctx,
		`INSERT INTO cards(id, user_id, account_id, masked_number, brand, balance, currency, status)
		 VALUES($1,$2,$3,$4,$5,0,$6,'pending')
		 RETURNING `+cardCols,
		c.ID, c.UserID, c.AccountID, c.MaskedNumber, c.Brand, c.Currency,
	), &c)
	return c, err
}

func (r *cardsRepo) GetOwned(ctx context.Context, id, userID string) (models.Card, error) {
	var c models.Card
	err := scanCard(r.pool.QueryRow(ctx,
		`SELECT `+cardCols+` FROM cards WHERE id=$1 AND user_id=$2`, id, userID), &c)
	return c, notFound(err, "card")
}

func (r *cardsRepo) ListByUser(ctx context.Context, userID string) ([]models.Card, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cardCols+` FROM cards WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Card
	for rows.Next() {
		var c models.Card
		if err := scanCard(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *cardsRepo) decide(ctx context.Context, id, adminID string, to models.CardStatus) (models.Card, error) {
	var c models.Card
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := scanCard(tx.QueryRow(ctx,
			`UPDATE cards
			    SET status=$2, admin_id=$3, processed_at=now()
			  WHERE id=$1 AND status='pending'
			  RETURNING `+cardCols,
			id, string(to), adminID,
		), &c)
		if errors.Is(err, pgx.ErrNoRows) {
			return decidedErr(ctx, tx, `SELECT EXISTS(SELECT 1 FROM cards WHERE id=$1)`, id, "card")
		}
		return err
	})
	if err != nil {
		return models.Card{}, err
	}
	return c, nil
}

func (r *cardsRepo) Approve(ctx context.Context, id, adminID string) (models.Card, error) {
	return r.decide(ctx, id, adminID, models.CardActive)
}

func (r *cardsRepo) Decline(ctx context.Context, id, adminID, _ string) (models.Card, error) {
	return r.decide(ctx, id, adminID, models.CardDeclined)
}
