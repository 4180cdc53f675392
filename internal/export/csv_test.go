package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digibank/backend/internal/models"
)

func sampleTransfers() []models.TransferRequest {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return []models.TransferRequest{
		{
			ID:              "tr-1",
			UserID:          "user-1",
			FromAccountID:   "acct-1",
			DestinationBank: "JPMorgan Chase",
			RoutingNumber:   "021000021",
			AccountNumber:   "000123456789",
			AccountName:     "Jane Receiver",
			Amount:          4000,
			Currency:        "USD",
			Reference:       "TRF-AB12CD34EF56",
			Status:          models.StatusPending,
			CreatedAt:       created,
		},
		{
			ID:              "tr-2",
			UserID:          "user-2",
			FromAccountID:   "acct-2",
			DestinationBank: "Wells Fargo",
			RoutingNumber:   "121000248",
			AccountNumber:   "000987654321",
			AccountName:     "Bob Vendor",
			Amount:          123456789,
			Currency:        "USD",
			Reference:       "TRF-FFEEDDCCBBAA",
			Status:          models.StatusDeclined,
			Reason:          "limit exceeded",
			CreatedAt:       created.Add(time.Hour),
		},
	}
}

func TestWriteTransfersFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransfers(&buf, sampleTransfers()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,user_id,"))
	assert.Contains(t, lines[1], "40.00")
	assert.Contains(t, lines[2], "1234567.89")
	assert.Contains(t, lines[2], "limit exceeded")
}

func TestTransfersRoundTrip(t *testing.T) {
	in := sampleTransfers()

	var buf bytes.Buffer
	require.NoError(t, WriteTransfers(&buf, in))

	out, err := ReadTransfers(&buf)
	require.NoError(t, err)
	require.Len(t, out, len(in))

	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Amount, out[i].Amount)
		assert.Equal(t, in[i].Status, out[i].Status)
		assert.Equal(t, in[i].Reference, out[i].Reference)
		assert.True(t, in[i].CreatedAt.Equal(out[i].CreatedAt))
	}
}

func TestReadTransfersRejectsSubCentAmounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransfers(&buf, sampleTransfers()[:1]))

	corrupted := strings.Replace(buf.String(), "40.00", "40.005", 1)
	_, err := ReadTransfers(strings.NewReader(corrupted))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sub-cent")
}

func TestReadTransfersEmptyFile(t *testing.T) {
	_, err := ReadTransfers(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadTransfersRejectsMissingHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransfers(&buf, sampleTransfers()))

	// strip the header: the first data row must not be swallowed as one
	lines := strings.SplitN(buf.String(), "\n", 2)
	require.Len(t, lines, 2)

	_, err := ReadTransfers(strings.NewReader(lines[1]))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}
