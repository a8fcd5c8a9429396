package bitcoin

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	utxos     []UTXO
	utxosErr  error
	feeRate   int64
	feeErr    error
	broadcast func(txHex string) (string, error)

	mu        sync.Mutex
	submitted []string
}

func (f *fakeBackend) GetBitcoinUTXOs(address string) ([]UTXO, error) {
	return f.utxos, f.utxosErr
}

func (f *fakeBackend) GetBitcoinFeeEstimate() (int64, error) {
	return f.feeRate, f.feeErr
}

func (f *fakeBackend) SendBitcoinTransaction(txHex string) (string, error) {
	f.mu.Lock()
	f.submitted = append(f.submitted, txHex)
	f.mu.Unlock()
	if f.broadcast != nil {
		return f.broadcast(txHex)
	}
	return "deadbeef", nil
}

func TestSendHappyPath(t *testing.T) {
	key, _, _ := newTestKey(t)
	_, destAddr, _ := newTestKey(t)

	backend := &fakeBackend{
		utxos: []UTXO{
			{TxID: txidA, Vout: 0, Value: 50_000},
			{TxID: txidB, Vout: 1, Value: 60_000},
		},
		feeRate: 5,
	}
	sender := NewSender(backend)

	receipt, err := sender.Send(testWIF(t, key), destAddr.String(), "0.0008")
	require.NoError(t, err)

	assert.Equal(t, "deadbeef", receipt.TxID)
	assert.Equal(t, int64(80_000), receipt.Amount)
	assert.Equal(t, int64(990), receipt.Fee)
	assert.Equal(t, int64(29_010), receipt.Change)
	require.Len(t, backend.submitted, 1)
}

func TestSendInsufficientFunds(t *testing.T) {
	key, _, _ := newTestKey(t)
	_, destAddr, _ := newTestKey(t)

	backend := &fakeBackend{
		utxos:   []UTXO{{TxID: txidA, Vout: 0, Value: 100_000}},
		feeRate: 1,
	}
	sender := NewSender(backend)

	_, err := sender.Send(testWIF(t, key), destAddr.String(), "0.000999")

	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(30), insufficient.Shortfall)
	assert.Empty(t, backend.submitted)
}

func TestSendDustChangeFoldedIntoFee(t *testing.T) {
	key, _, _ := newTestKey(t)
	_, destAddr, _ := newTestKey(t)

	// 100000 total, target 99340, fee (68+62)*1 = 130, change = 530 <= dust.
	backend := &fakeBackend{
		utxos:   []UTXO{{TxID: txidA, Vout: 0, Value: 100_000}},
		feeRate: 1,
	}
	sender := NewSender(backend)

	receipt, err := sender.Send(testWIF(t, key), destAddr.String(), "0.0009934")
	require.NoError(t, err)

	assert.Equal(t, int64(0), receipt.Change)
	assert.Equal(t, int64(660), receipt.Fee)
	assert.Equal(t, receipt.Amount+receipt.Fee, int64(100_000))
}

func TestSendBroadcastErrorPassthrough(t *testing.T) {
	key, _, _ := newTestKey(t)
	_, destAddr, _ := newTestKey(t)

	backend := &fakeBackend{
		utxos:   []UTXO{{TxID: txidA, Vout: 0, Value: 200_000}},
		feeRate: 2,
		broadcast: func(string) (string, error) {
			return "", &BroadcastError{Payload: "sendrawtransaction RPC error: min relay fee not met"}
		},
	}
	sender := NewSender(backend)

	_, err := sender.Send(testWIF(t, key), destAddr.String(), "0.001")

	var broadcastErr *BroadcastError
	require.ErrorAs(t, err, &broadcastErr)
	assert.Contains(t, broadcastErr.Payload, "min relay fee")
	// Broadcast is never retried here.
	assert.Len(t, backend.submitted, 1)
}

func TestSendRejectsBadInputs(t *testing.T) {
	key, _, _ := newTestKey(t)
	_, destAddr, _ := newTestKey(t)
	backend := &fakeBackend{feeRate: 1}
	sender := NewSender(backend)

	_, err := sender.Send("garbage-wif", destAddr.String(), "0.001")
	require.Error(t, err)

	_, err = sender.Send(testWIF(t, key), "not-an-address", "0.001")
	require.Error(t, err)

	_, err = sender.Send(testWIF(t, key), destAddr.String(), "-1")
	require.Error(t, err)

	_, err = sender.Send(testWIF(t, key), destAddr.String(), "lots")
	require.Error(t, err)
}

func TestConcurrentSendsCannotShareInputs(t *testing.T) {
	key, _, _ := newTestKey(t)
	_, destAddr, _ := newTestKey(t)

	inFlight := make(chan struct{})
	proceed := make(chan struct{})
	backend := &fakeBackend{
		utxos:   []UTXO{{TxID: txidA, Vout: 0, Value: 200_000}},
		feeRate: 1,
		broadcast: func(string) (string, error) {
			close(inFlight)
			<-proceed
			return "deadbeef", nil
		},
	}
	sender := NewSender(backend)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = sender.Send(testWIF(t, key), destAddr.String(), "0.001")
	}()

	<-inFlight

	// While the first send holds the UTXO, a second send must not be able
	// to select it.
	_, err := sender.Send(testWIF(t, key), destAddr.String(), "0.001")
	require.ErrorIs(t, err, ErrOutputReserved)

	close(proceed)
	wg.Wait()
	require.NoError(t, firstErr)

	// After the first send finished its inputs are released again.
	sender.backend = &fakeBackend{
		utxos:   []UTXO{{TxID: txidA, Vout: 0, Value: 200_000}},
		feeRate: 1,
	}
	_, err = sender.Send(testWIF(t, key), destAddr.String(), "0.001")
	require.NoError(t, err)
}

func TestSendPropagatesBackendFailures(t *testing.T) {
	key, _, _ := newTestKey(t)
	_, destAddr, _ := newTestKey(t)

	sender := NewSender(&fakeBackend{utxosErr: errors.New("indexer down")})
	_, err := sender.Send(testWIF(t, key), destAddr.String(), "0.001")
	require.ErrorContains(t, err, "indexer down")

	sender = NewSender(&fakeBackend{
		utxos:  []UTXO{{TxID: txidA, Vout: 0, Value: 200_000}},
		feeErr: errors.New("fee service down"),
	})
	_, err = sender.Send(testWIF(t, key), destAddr.String(), "0.001")
	require.ErrorContains(t, err, "fee service down")
}
