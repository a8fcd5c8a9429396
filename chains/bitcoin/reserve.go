package bitcoin

import "sync"

// ReservationLedger tracks outpoints held by in-flight sends. Without it,
// two concurrent sends from the same funding address can race to spend the
// same UTXO: the indexer keeps reporting an output as unspent until the
// first transaction propagates. Outpoints are globally unique, so a single
// process-wide set is equivalent to per-funding-address coordination.
type ReservationLedger struct {
	mu       sync.Mutex
	reserved map[string]struct{}
}

func NewReservationLedger() *ReservationLedger {
	return &ReservationLedger{reserved: make(map[string]struct{})}
}

// Reserve marks every input as held. If any input is already held by
// another send, nothing is reserved and ErrOutputReserved is returned.
func (l *ReservationLedger) Reserve(inputs []UTXO) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, utxo := range inputs {
		if _, held := l.reserved[utxo.OutPoint()]; held {
			return ErrOutputReserved
		}
	}
	for _, utxo := range inputs {
		l.reserved[utxo.OutPoint()] = struct{}{}
	}
	return nil
}

// Release frees previously reserved inputs. Releasing an outpoint that is
// not held is a no-op.
func (l *ReservationLedger) Release(inputs []UTXO) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, utxo := range inputs {
		delete(l.reserved, utxo.OutPoint())
	}
}
