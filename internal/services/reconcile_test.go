package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeMatchesLedgerThroughWorkflow(t *testing.T) {
	store := newMemStore()
	reconcile := NewReconcileService(memAccounts{store}, memTxns{store})
	admin := newAdminService(store)
	transfers, _ := newTransferService(store)
	acct := store.seedAccount("user-1", 0, true)

	ctx := context.Background()

	// credit 100.00, hold 40.00 behind a transfer request
	_, _, err := admin.CreditDebit(ctx, "admin-1", "user-1", CreditDebitInput{
		Type: "credit", Amount: 10000, AccountID: acct.ID,
	})
	require.NoError(t, err)

	tr, err := transfers.Create(ctx, "user-1", transferInput(acct.ID, 4000))
	require.NoError(t, err)

	rep, err := reconcile.Recompute(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, rep.InSync)
	assert.Equal(t, int64(10000), rep.Computed.Balance)
	assert.Equal(t, int64(6000), rep.Computed.AvailableBalance)
	assert.Equal(t, int64(4000), rep.Computed.PendingBalance)

	// settle the hold and reconcile again
	_, err = transfers.Approve(ctx, tr.ID, "admin-1")
	require.NoError(t, err)

	rep, err = reconcile.Recompute(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, rep.InSync)
	assert.Equal(t, int64(6000), rep.Computed.Balance)
	assert.Equal(t, int64(6000), rep.Computed.AvailableBalance)
	assert.Equal(t, int64(0), rep.Computed.PendingBalance)
}

func TestRecomputeFlagsDrift(t *testing.T) {
	store := newMemStore()
	reconcile := NewReconcileService(memAccounts{store}, memTxns{store})
	acct := store.seedAccount("user-1", 0, true)

	// ledger columns mutated without a matching transaction row
	acct.Balance = 500
	acct.AvailableBalance = 500

	rep, err := reconcile.Recompute(context.Background(), acct.ID)
	require.NoError(t, err)
	assert.False(t, rep.InSync)
	assert.Equal(t, int64(500), rep.Ledger.Balance)
	assert.Equal(t, int64(0), rep.Computed.Balance)
}
