package bitcoin

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Sign signs every input with the single funding key and finalizes witness
// data. All inputs must be P2WPKH outputs paying to the supplied key; any
// input whose previous-output script disagrees fails with *SigningError.
func Sign(unsigned *UnsignedTx, key *btcec.PrivateKey) (*SignedTx, error) {
	if len(unsigned.Inputs) != len(unsigned.Tx.TxIn) {
		return nil, &SigningError{
			InputIndex: -1,
			Reason: fmt.Sprintf("have %d previous outputs for %d inputs",
				len(unsigned.Inputs), len(unsigned.Tx.TxIn)),
		}
	}

	keyScript, err := p2wpkhScript(key.PubKey())
	if err != nil {
		return nil, &SigningError{InputIndex: -1, Reason: err.Error()}
	}

	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for i, utxo := range unsigned.Inputs {
		script := utxo.PkScript
		if len(script) == 0 {
			script = keyScript
		}
		if !bytes.Equal(script, keyScript) {
			return nil, &SigningError{
				InputIndex: i,
				Reason:     "previous output is not the P2WPKH script of the funding key",
			}
		}
		fetcher.AddPrevOut(unsigned.Tx.TxIn[i].PreviousOutPoint,
			wire.NewTxOut(utxo.Value, script))
	}

	hashes := txscript.NewTxSigHashes(unsigned.Tx, fetcher)
	for i, utxo := range unsigned.Inputs {
		witness, err := txscript.WitnessSignature(
			unsigned.Tx, hashes, i, utxo.Value, keyScript,
			txscript.SigHashAll, key, true)
		if err != nil {
			return nil, &SigningError{InputIndex: i, Reason: err.Error()}
		}
		unsigned.Tx.TxIn[i].Witness = witness
	}

	return newSignedTx(unsigned.Tx)
}

// p2wpkhScript returns the pay-to-witness-pubkey-hash script for a key.
func p2wpkhScript(pub *btcec.PublicKey) ([]byte, error) {
	hash := btcutil.Hash160(pub.SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(hash, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to derive witness address: %w", err)
	}
	return txscript.PayToAddrScript(addr)
}
