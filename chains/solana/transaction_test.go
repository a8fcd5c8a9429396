package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBlockhash = "11111111111111111111111111111111"

func TestTransferBuildAndSign(t *testing.T) {
	from, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	to, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	tx := CreateTransferTransaction(from, to.PublicKey(), 1_000_000)
	tx.SetRecentBlockhash(testBlockhash)

	signed, err := tx.BuildAndSign()
	require.NoError(t, err)

	raw, err := base58.Decode(signed)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	// One required signature for the single fee payer.
	assert.EqualValues(t, 1, raw[0])
}

func TestBuildAndSignRequiresBlockhash(t *testing.T) {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	tx := CreateTransferTransaction(key, key.PublicKey(), 1)
	_, err = tx.BuildAndSign()
	assert.ErrorContains(t, err, "blockhash")
}

func TestBuildAndSignRequiresInstructionsAndSigners(t *testing.T) {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	empty := NewTransaction(key.PublicKey())
	empty.SetRecentBlockhash(testBlockhash)
	_, err = empty.BuildAndSign()
	assert.ErrorContains(t, err, "no instructions")

	unsigned := NewTransaction(key.PublicKey())
	unsigned.AddTransferInstruction(key.PublicKey(), key.PublicKey(), 1)
	unsigned.SetRecentBlockhash(testBlockhash)
	_, err = unsigned.BuildAndSign()
	assert.ErrorContains(t, err, "no signers")
}

func TestCreateCloseAccountsTransaction(t *testing.T) {
	owner, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	accounts := make([]solana.PublicKey, 3)
	for i := range accounts {
		key, err := solana.NewRandomPrivateKey()
		require.NoError(t, err)
		accounts[i] = key.PublicKey()
	}

	tx := CreateCloseAccountsTransaction(owner, accounts)
	assert.Len(t, tx.Instructions, 3)

	tx.SetRecentBlockhash(testBlockhash)
	signed, err := tx.BuildAndSign()
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	for _, instruction := range tx.Instructions {
		assert.Equal(t, solana.TokenProgramID, instruction.ProgramID())
	}
}

func TestParseAddress(t *testing.T) {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	parsed, err := ParseAddress(key.PublicKey().String())
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), parsed)

	_, err = ParseAddress("not-base58-0OIl")
	assert.Error(t, err)
	assert.Error(t, ValidateAddress("bad"))
}

func TestLamportConversions(t *testing.T) {
	assert.Equal(t, 1.5, LamportsToSOL(1_500_000_000))
	assert.Equal(t, uint64(1_500_000_000), SOLToLamports(1.5))
	assert.Equal(t, "0.000000001 SOL", FormatBalance(1))
}
