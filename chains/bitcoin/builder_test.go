package bitcoin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWithChange(t *testing.T) {
	_, destAddr, _ := newTestKey(t)
	_, changeAddr, _ := newTestKey(t)

	sel := &Selection{
		Inputs: []UTXO{
			{TxID: txidA, Vout: 0, Value: 50_000},
			{TxID: txidB, Vout: 1, Value: 60_000},
		},
		Total: 110_000,
		Fee:   990,
	}

	unsigned, err := Build(sel, destAddr, 80_000, changeAddr)
	require.NoError(t, err)

	tx := unsigned.Tx
	require.Len(t, tx.TxIn, 2)
	require.Len(t, tx.TxOut, 2)
	assert.Equal(t, int64(80_000), tx.TxOut[0].Value)
	assert.Equal(t, int64(29_010), tx.TxOut[1].Value)

	// Conservation: inputs == outputs + fee, exactly.
	var out int64
	for _, o := range tx.TxOut {
		out += o.Value
	}
	assert.Equal(t, sel.Total, out+sel.Fee)
}

func TestBuildSuppressesDustChange(t *testing.T) {
	_, destAddr, _ := newTestKey(t)
	_, changeAddr, _ := newTestKey(t)

	// Change of exactly the dust limit is not worth emitting:
	// 100000 - 99000 - 454 = 546.
	sel := &Selection{
		Inputs: []UTXO{{TxID: txidA, Vout: 0, Value: 100_000}},
		Total:  100_000,
		Fee:    454,
	}

	unsigned, err := Build(sel, destAddr, 99_000, changeAddr)
	require.NoError(t, err)

	require.Len(t, unsigned.Tx.TxOut, 1)
	assert.Equal(t, int64(99_000), unsigned.Tx.TxOut[0].Value)
}

func TestBuildEmitsChangeJustAboveDust(t *testing.T) {
	_, destAddr, _ := newTestKey(t)
	_, changeAddr, _ := newTestKey(t)

	sel := &Selection{
		Inputs: []UTXO{{TxID: txidA, Vout: 0, Value: 100_000}},
		Total:  100_000,
		Fee:    453, // change = 547, one above the dust limit
	}

	unsigned, err := Build(sel, destAddr, 99_000, changeAddr)
	require.NoError(t, err)

	require.Len(t, unsigned.Tx.TxOut, 2)
	assert.Equal(t, int64(547), unsigned.Tx.TxOut[1].Value)
}

func TestBuildIsDeterministic(t *testing.T) {
	_, destAddr, _ := newTestKey(t)
	_, changeAddr, _ := newTestKey(t)

	sel := &Selection{
		Inputs: []UTXO{
			{TxID: txidB, Vout: 3, Value: 70_000},
			{TxID: txidC, Vout: 0, Value: 40_000},
		},
		Total: 110_000,
		Fee:   1_200,
	}

	first, err := Build(sel, destAddr, 90_000, changeAddr)
	require.NoError(t, err)
	second, err := Build(sel, destAddr, 90_000, changeAddr)
	require.NoError(t, err)

	var bufA, bufB bytes.Buffer
	require.NoError(t, first.Tx.Serialize(&bufA))
	require.NoError(t, second.Tx.Serialize(&bufB))
	assert.Equal(t, bufA.Bytes(), bufB.Bytes())
}

func TestBuildRejectsMalformedTxID(t *testing.T) {
	_, destAddr, _ := newTestKey(t)
	_, changeAddr, _ := newTestKey(t)

	sel := &Selection{
		Inputs: []UTXO{{TxID: "not-a-txid", Vout: 0, Value: 100_000}},
		Total:  100_000,
		Fee:    500,
	}

	_, err := Build(sel, destAddr, 50_000, changeAddr)
	require.Error(t, err)
}
