package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveAndRelease(t *testing.T) {
	ledger := NewReservationLedger()
	inputs := []UTXO{
		{TxID: txidA, Vout: 0, Value: 1},
		{TxID: txidA, Vout: 1, Value: 1},
	}

	require.NoError(t, ledger.Reserve(inputs))
	assert.ErrorIs(t, ledger.Reserve(inputs[:1]), ErrOutputReserved)

	ledger.Release(inputs)
	require.NoError(t, ledger.Reserve(inputs))
}

func TestReserveIsAllOrNothing(t *testing.T) {
	ledger := NewReservationLedger()
	first := []UTXO{{TxID: txidA, Vout: 0, Value: 1}}
	overlapping := []UTXO{
		{TxID: txidB, Vout: 0, Value: 1},
		{TxID: txidA, Vout: 0, Value: 1},
	}

	require.NoError(t, ledger.Reserve(first))
	require.ErrorIs(t, ledger.Reserve(overlapping), ErrOutputReserved)

	// The non-conflicting outpoint must not have been reserved.
	require.NoError(t, ledger.Reserve([]UTXO{{TxID: txidB, Vout: 0, Value: 1}}))
}

func TestReleaseUnknownOutpointIsNoop(t *testing.T) {
	ledger := NewReservationLedger()
	ledger.Release([]UTXO{{TxID: txidC, Vout: 9, Value: 1}})
	require.NoError(t, ledger.Reserve([]UTXO{{TxID: txidC, Vout: 9, Value: 1}}))
}
