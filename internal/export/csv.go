// Package export writes and reads transfer requests as CSV for
// back-office reporting. Amounts are stored as int64 minor units but
// exported as decimal strings ("40.00") so the files open cleanly in
// spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/digibank/backend/internal/models"
)

var header = []string{
	"id", "user_id", "from_account_id", "destination_bank", "routing_number",
	"account_number", "account_name", "amount", "currency", "reference",
	"status", "reason", "created_at",
}

// WriteTransfers emits one row per request, header first.
func WriteTransfers(w io.Writer, transfers []models.TransferRequest) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, tr := range transfers {
		row := []string{
			tr.ID,
			tr.UserID,
			tr.FromAccountID,
			tr.DestinationBank,
			tr.RoutingNumber,
			tr.AccountNumber,
			tr.AccountName,
			formatAmount(tr.Amount),
			tr.Currency,
			tr.Reference,
			string(tr.Status),
			tr.Reason,
			tr.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", tr.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTransfers parses a file produced by WriteTransfers.
func ReadTransfers(r io.Reader) ([]models.TransferRequest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if !slices.Equal(records[0], header) {
		return nil, fmt.Errorf("unexpected header row %q", records[0])
	}

	out := make([]models.TransferRequest, 0, len(records)-1)
	for i, rec := range records[1:] {
		amount, err := parseAmount(rec[7])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		createdAt, err := time.Parse(time.RFC3339, rec[12])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse created_at: %w", i+2, err)
		}
		out = append(out, models.TransferRequest{
			ID:              rec[0],
			UserID:          rec[1],
			FromAccountID:   rec[2],
			DestinationBank: rec[3],
			RoutingNumber:   rec[4],
			AccountNumber:   rec[5],
			AccountName:     rec[6],
			Amount:          amount,
			Currency:        rec[8],
			Reference:       rec[9],
			Status:          models.RequestStatus(rec[10]),
			Reason:          rec[11],
			CreatedAt:       createdAt,
		})
	}
	return out, nil
}

// formatAmount renders minor units as a fixed two-decimal string:
// 4000 -> "40.00".
func formatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-cent precision", s)
	}
	return strconv.ParseInt(minor.String(), 10, 64)
}
