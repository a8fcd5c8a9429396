package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFirstFitStopsAtPreFeeTarget(t *testing.T) {
	// 50000 < 80000 so selection continues; 110000 >= 80000 so it stops.
	utxos := []UTXO{
		{TxID: txidA, Vout: 0, Value: 50_000},
		{TxID: txidB, Vout: 1, Value: 60_000},
		{TxID: txidC, Vout: 0, Value: 1_000_000},
	}

	sel, err := Select(utxos, 80_000, 5)
	require.NoError(t, err)

	require.Len(t, sel.Inputs, 2)
	assert.Equal(t, int64(110_000), sel.Total)
	// 2 inputs * 68 + 62 = 198 vbytes at 5 sat/vbyte.
	assert.Equal(t, int64(990), sel.Fee)
	assert.GreaterOrEqual(t, sel.Total, int64(80_000)+sel.Fee)
}

func TestSelectPostLoopFeeCheck(t *testing.T) {
	// The loop stops as soon as the pre-fee target is covered; the fee
	// computed afterwards pushes the requirement past the selection.
	utxos := []UTXO{{TxID: txidA, Vout: 0, Value: 100_000}}

	_, err := Select(utxos, 99_900, 1)

	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	// 68 + 62 = 130 vbytes at 1 sat/vbyte; 100000 - 99900 - 130 = -30.
	assert.Equal(t, int64(130), insufficient.Fee)
	assert.Equal(t, int64(30), insufficient.Shortfall)
	assert.Equal(t, int64(100_000), insufficient.Available)
}

func TestSelectEmptyUTXOSet(t *testing.T) {
	_, err := Select(nil, 10_000, 5)

	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available)
}

func TestSelectTotalBelowTarget(t *testing.T) {
	utxos := []UTXO{
		{TxID: txidA, Vout: 0, Value: 1_000},
		{TxID: txidB, Vout: 0, Value: 2_000},
	}

	_, err := Select(utxos, 10_000, 2)

	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(3_000), insufficient.Available)
}

func TestSelectPreservesSupplyOrder(t *testing.T) {
	// No sorting: a large late UTXO must not jump ahead of small early ones.
	utxos := []UTXO{
		{TxID: txidA, Vout: 0, Value: 1_000},
		{TxID: txidB, Vout: 0, Value: 1_000},
		{TxID: txidC, Vout: 0, Value: 500_000},
	}

	sel, err := Select(utxos, 100_000, 1)
	require.NoError(t, err)

	require.Len(t, sel.Inputs, 3)
	assert.Equal(t, txidA, sel.Inputs[0].TxID)
	assert.Equal(t, txidB, sel.Inputs[1].TxID)
	assert.Equal(t, txidC, sel.Inputs[2].TxID)
}

func TestSelectSucceedsWheneverTotalCoversTargetPlusFee(t *testing.T) {
	cases := []struct {
		name    string
		values  []int64
		target  int64
		feeRate int64
	}{
		{"single large", []int64{1_000_000}, 500_000, 10},
		{"many small", []int64{30_000, 30_000, 30_000, 30_000}, 100_000, 3},
		{"exact-ish", []int64{50_000, 51_000}, 100_000, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			utxos := make([]UTXO, len(tc.values))
			for i, v := range tc.values {
				utxos[i] = UTXO{TxID: txidA, Vout: uint32(i), Value: v}
			}

			sel, err := Select(utxos, tc.target, tc.feeRate)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, sel.Total, tc.target+sel.Fee)
		})
	}
}
