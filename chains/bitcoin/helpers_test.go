package bitcoin

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"
)

const (
	txidA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	txidB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	txidC = "cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"
)

// newTestKey generates a throwaway key with its P2WPKH address and script.
func newTestKey(t *testing.T) (*btcec.PrivateKey, btcutil.Address, []byte) {
	t.Helper()

	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	addr, err := CreateP2WPKHAddress(key.PubKey())
	require.NoError(t, err)

	script, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)

	return key, addr, script
}

// testWIF encodes a key the way the funding key is supplied to Send.
func testWIF(t *testing.T, key *btcec.PrivateKey) string {
	t.Helper()

	wif, err := btcutil.NewWIF(key, &chaincfg.MainNetParams, true)
	require.NoError(t, err)
	return wif.String()
}
