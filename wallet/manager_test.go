package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewManager()
}

func TestInitializeAndUnlock(t *testing.T) {
	manager := testManager(t)
	require.False(t, manager.VaultExists())

	require.NoError(t, manager.Initialize("pw12345678"))
	assert.True(t, manager.VaultExists())
	assert.True(t, manager.IsUnlocked())

	mnemonic, err := manager.GetMnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 24)

	// A fresh manager picks up the session without a password.
	again := NewManager()
	assert.True(t, again.IsUnlocked())

	again.Lock()
	assert.False(t, again.IsUnlocked())

	require.Error(t, again.Unlock("wrong password"))
	require.NoError(t, again.Unlock("pw12345678"))
	assert.True(t, again.IsUnlocked())
}

func TestImportDerivesSameAddresses(t *testing.T) {
	manager := testManager(t)
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	require.NoError(t, manager.ImportFromMnemonic(mnemonic, "pw12345678"))

	ethAddr, err := manager.GetEthereumAddress()
	require.NoError(t, err)
	btcAddr, err := manager.GetBitcoinAddress()
	require.NoError(t, err)
	solAddr, err := manager.GetSolanaAddress()
	require.NoError(t, err)
	tonAddr, err := manager.GetTONAddress()
	require.NoError(t, err)

	// Re-import into a fresh home: the same mnemonic must give the same
	// addresses on every chain.
	other := testManager(t)
	require.NoError(t, other.ImportFromMnemonic(mnemonic, "other-password"))

	otherEth, err := other.GetEthereumAddress()
	require.NoError(t, err)
	assert.Equal(t, ethAddr, otherEth)

	otherBtc, err := other.GetBitcoinAddress()
	require.NoError(t, err)
	assert.Equal(t, btcAddr.String(), otherBtc.String())

	otherSol, err := other.GetSolanaAddress()
	require.NoError(t, err)
	assert.Equal(t, solAddr, otherSol)

	otherTon, err := other.GetTONAddress()
	require.NoError(t, err)
	assert.Equal(t, tonAddr.String(), otherTon.String())
}

func TestImportRejectsInvalidMnemonic(t *testing.T) {
	manager := testManager(t)
	err := manager.ImportFromMnemonic("not a real mnemonic", "pw12345678")
	assert.Error(t, err)
	assert.False(t, manager.VaultExists())
}

func TestBitcoinWIFMatchesKey(t *testing.T) {
	manager := testManager(t)
	require.NoError(t, manager.Initialize("pw12345678"))

	wif, err := manager.GetBitcoinWIF()
	require.NoError(t, err)
	assert.NotEmpty(t, wif)

	// WIF and address must be derived from the same key.
	key, err := manager.GetBitcoinKey()
	require.NoError(t, err)
	require.NotNil(t, key)
}
