package wallet

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

func testSeed(t *testing.T) []byte {
	t.Helper()
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	require.True(t, bip39.IsMnemonicValid(mnemonic))
	return bip39.NewSeed(mnemonic, "")
}

func TestDerivationIsDeterministic(t *testing.T) {
	seed := testSeed(t)

	path, err := accounts.ParseDerivationPath(EthDerivationPath)
	require.NoError(t, err)

	a, err := deriveEthereumKey(seed, path)
	require.NoError(t, err)
	b, err := deriveEthereumKey(seed, path)
	require.NoError(t, err)
	assert.Equal(t, a.D, b.D)

	btcA, err := deriveBitcoinKey(seed, BtcDerivationPath)
	require.NoError(t, err)
	btcB, err := deriveBitcoinKey(seed, BtcDerivationPath)
	require.NoError(t, err)
	assert.Equal(t, btcA.Serialize(), btcB.Serialize())

	solA, err := deriveSolanaKey(seed, SolDerivationPath)
	require.NoError(t, err)
	solB, err := deriveSolanaKey(seed, SolDerivationPath)
	require.NoError(t, err)
	assert.Equal(t, solA, solB)
}

func TestDifferentPathsGiveDifferentKeys(t *testing.T) {
	seed := testSeed(t)

	mainnet, err := deriveSolanaKey(seed, SolDerivationPath)
	require.NoError(t, err)
	testnet, err := deriveSolanaKey(seed, SolTestnetDerivationPath)
	require.NoError(t, err)
	assert.NotEqual(t, mainnet, testnet)

	sol, err := deriveEd25519Key(seed, SolDerivationPath)
	require.NoError(t, err)
	ton, err := deriveEd25519Key(seed, TonDerivationPath)
	require.NoError(t, err)
	assert.NotEqual(t, sol, ton)
}

func TestDifferentSeedsGiveDifferentKeys(t *testing.T) {
	seedA := testSeed(t)
	seedB := bip39.NewSeed("legal winner thank year wave sausage worth useful legal winner thank yellow", "")

	a, err := deriveBitcoinKey(seedA, BtcDerivationPath)
	require.NoError(t, err)
	b, err := deriveBitcoinKey(seedB, BtcDerivationPath)
	require.NoError(t, err)
	assert.NotEqual(t, a.Serialize(), b.Serialize())
}

func TestEd25519KeyLength(t *testing.T) {
	key, err := deriveEd25519Key(testSeed(t), TonDerivationPath)
	require.NoError(t, err)
	assert.Len(t, []byte(key), 64)

	_, err = deriveEd25519Key(nil, TonDerivationPath)
	assert.Error(t, err)
}

func TestParsePath(t *testing.T) {
	components, err := parsePath("m/44'/0'/0'/0/0")
	require.NoError(t, err)
	assert.Equal(t, []uint32{
		44 + hardenedOffset,
		0 + hardenedOffset,
		0 + hardenedOffset,
		0,
		0,
	}, components)

	_, err = parsePath("44'/0'")
	assert.Error(t, err)

	_, err = parsePath("m/44'/x")
	assert.Error(t, err)
}
