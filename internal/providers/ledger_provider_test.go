package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vestd/internal/structures"
)

func ledgerConfig() *structures.Config {
	return &structures.Config{
		Treasury: structures.TreasuryConfig{
			PooledAccount:  "pooled",
			ReserveAccount: "reserve",
			MintAuthority:  "authority",
			Accounts:       []string{"alpha", "beta"},
		},
	}
}

func newTestLedger() LedgerProviderInterface {
	return NewLedgerProvider(ledgerConfig(), &cacheTestLogger{})
}

func TestLedgerProvider_SeedsConfiguredAccounts(t *testing.T) {
	lp := newTestLedger()

	assert.True(t, lp.HasAccount("pooled"))
	assert.True(t, lp.HasAccount("reserve"))
	assert.True(t, lp.HasAccount("alpha"))
	assert.True(t, lp.HasAccount("beta"))
	assert.False(t, lp.HasAccount("gamma"))
	assert.Equal(t, uint64(0), lp.BalanceOf("pooled"))
}

func TestLedgerProvider_MintAndTransfer(t *testing.T) {
	lp := newTestLedger()

	require.NoError(t, lp.Mint("pooled", "authority", 1000))
	assert.Equal(t, uint64(1000), lp.BalanceOf("pooled"))

	require.NoError(t, lp.Transfer("pooled", "alpha", 400))
	assert.Equal(t, uint64(600), lp.BalanceOf("pooled"))
	assert.Equal(t, uint64(400), lp.BalanceOf("alpha"))
}

func TestLedgerProvider_Mint_WrongAuthority(t *testing.T) {
	lp := newTestLedger()
	err := lp.Mint("pooled", "impostor", 1000)
	assert.ErrorIs(t, err, ErrLedger)
	assert.Equal(t, uint64(0), lp.BalanceOf("pooled"))
}

func TestLedgerProvider_Mint_UnknownAccount(t *testing.T) {
	lp := newTestLedger()
	assert.ErrorIs(t, lp.Mint("gamma", "authority", 1), ErrLedger)
}

func TestLedgerProvider_Mint_Overflow(t *testing.T) {
	lp := newTestLedger()
	require.NoError(t, lp.Mint("pooled", "authority", ^uint64(0)))
	assert.ErrorIs(t, lp.Mint("pooled", "authority", 1), ErrLedger)
}

func TestLedgerProvider_Transfer_InsufficientFunds(t *testing.T) {
	lp := newTestLedger()
	require.NoError(t, lp.Mint("alpha", "authority", 10))

	err := lp.Transfer("alpha", "beta", 11)
	assert.ErrorIs(t, err, ErrLedger)
	assert.Equal(t, uint64(10), lp.BalanceOf("alpha"))
	assert.Equal(t, uint64(0), lp.BalanceOf("beta"))
}

func TestLedgerProvider_Transfer_UnknownAccounts(t *testing.T) {
	lp := newTestLedger()
	require.NoError(t, lp.Mint("alpha", "authority", 10))

	assert.ErrorIs(t, lp.Transfer("gamma", "alpha", 1), ErrLedger)
	assert.ErrorIs(t, lp.Transfer("alpha", "gamma", 1), ErrLedger)
}

func TestLedgerProvider_Burn(t *testing.T) {
	lp := newTestLedger()
	require.NoError(t, lp.Mint("reserve", "authority", 100))

	require.NoError(t, lp.Burn("reserve", "authority", 5))
	assert.Equal(t, uint64(95), lp.BalanceOf("reserve"))

	assert.ErrorIs(t, lp.Burn("reserve", "impostor", 5), ErrLedger)
	assert.ErrorIs(t, lp.Burn("reserve", "authority", 96), ErrLedger)
}

func TestLedgerProvider_BurnZeroAmount(t *testing.T) {
	lp := newTestLedger()
	assert.NoError(t, lp.Burn("reserve", "authority", 0))
}
