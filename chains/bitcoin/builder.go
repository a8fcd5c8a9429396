package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Build assembles an unsigned transaction from a selection: one output of
// target satoshis to the destination, plus a change output back to the
// funding address when the change exceeds the dust limit. Dust change is
// left to the network as extra fee. Building is deterministic: identical
// arguments yield a byte-identical transaction.
func Build(sel *Selection, dest btcutil.Address, target int64, change btcutil.Address) (*UnsignedTx, error) {
	tx := wire.NewMsgTx(2)

	for _, utxo := range sel.Inputs {
		prevHash, err := chainhash.NewHashFromStr(utxo.TxID)
		if err != nil {
			return nil, fmt.Errorf("invalid previous transaction hash %q: %w", utxo.TxID, err)
		}
		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(prevHash, utxo.Vout), nil, nil))
	}

	destScript, err := txscript.PayToAddrScript(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination script: %w", err)
	}
	tx.AddTxOut(wire.NewTxOut(target, destScript))

	changeValue := sel.Total - target - sel.Fee
	if changeValue > DustLimit {
		changeScript, err := txscript.PayToAddrScript(change)
		if err != nil {
			return nil, fmt.Errorf("failed to create change script: %w", err)
		}
		tx.AddTxOut(wire.NewTxOut(changeValue, changeScript))
	}

	return &UnsignedTx{Tx: tx, Inputs: sel.Inputs}, nil
}
