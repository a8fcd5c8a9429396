// Package bitcoin implements the outbound Bitcoin payment pipeline:
// coin selection over externally fetched UTXOs, fee estimation, unsigned
// transaction assembly, P2WPKH witness signing and serialization for
// broadcast. Only single-key native-segwit spends are supported.
package bitcoin

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// UTXO is an unspent output as reported by the chain indexer. Values are
// always integer satoshis. PkScript may be empty when the indexer does not
// return it; the sender fills it in from the funding address before signing.
type UTXO struct {
	TxID     string
	Vout     uint32
	Value    int64
	PkScript []byte
}

// OutPoint renders the canonical txid:vout form used as reservation key.
func (u UTXO) OutPoint() string {
	return fmt.Sprintf("%s:%d", u.TxID, u.Vout)
}

// Selection is the result of coin selection. Invariant on success:
// Total >= target + Fee.
type Selection struct {
	Inputs []UTXO
	Total  int64
	Fee    int64
}

// UnsignedTx pairs the assembled wire transaction with the previous outputs
// backing each input, in input order. The prev outputs are needed for
// witness sighash computation.
type UnsignedTx struct {
	Tx     *wire.MsgTx
	Inputs []UTXO
}

// SignedTx is a fully signed, serialized transaction ready for broadcast.
// It is consumed exactly once by the broadcaster.
type SignedTx struct {
	Hex  string
	TxID string
}

func newSignedTx(tx *wire.MsgTx) (*SignedTx, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return &SignedTx{
		Hex:  hex.EncodeToString(buf.Bytes()),
		TxID: tx.TxHash().String(),
	}, nil
}
