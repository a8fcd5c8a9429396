package crypto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestVaultRoundtrip(t *testing.T) {
	vault, err := NewVault(testMnemonic, "correct horse battery staple")
	require.NoError(t, err)

	mnemonic, err := vault.Decrypt("correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, mnemonic)
}

func TestVaultWrongPassword(t *testing.T) {
	vault, err := NewVault(testMnemonic, "correct horse battery staple")
	require.NoError(t, err)

	_, err = vault.Decrypt("incorrect horse")
	assert.Error(t, err)
	assert.False(t, vault.ValidatePassword("incorrect horse"))
	assert.True(t, vault.ValidatePassword("correct horse battery staple"))
}

func TestVaultTamperedCiphertext(t *testing.T) {
	vault, err := NewVault(testMnemonic, "pw12345678")
	require.NoError(t, err)

	vault.Data[0] ^= 0xff
	_, err = vault.Decrypt("pw12345678")
	assert.Error(t, err)
}

func TestVaultSerializesToJSON(t *testing.T) {
	vault, err := NewVault(testMnemonic, "pw12345678")
	require.NoError(t, err)

	data, err := json.Marshal(vault)
	require.NoError(t, err)

	var loaded Vault
	require.NoError(t, json.Unmarshal(data, &loaded))

	mnemonic, err := loaded.Decrypt("pw12345678")
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, mnemonic)
}

func TestVaultUniqueSaltAndNonce(t *testing.T) {
	a, err := NewVault(testMnemonic, "pw12345678")
	require.NoError(t, err)
	b, err := NewVault(testMnemonic, "pw12345678")
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.NotEqual(t, a.Data, b.Data)
}
