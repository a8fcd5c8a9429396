package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// Backend is the narrow contract the send pipeline needs from the chain
// indexer and relay. The api package implements it over mempool.space.
type Backend interface {
	// GetBitcoinUTXOs returns the unspent outputs of an address.
	GetBitcoinUTXOs(address string) ([]UTXO, error)
	// GetBitcoinFeeEstimate returns the recommended fee rate in sat/vbyte.
	GetBitcoinFeeEstimate() (int64, error)
	// SendBitcoinTransaction submits raw transaction hex and returns the
	// txid. It must not retry: resubmitting is a double-spend risk and is
	// the caller's decision after inspecting the error payload.
	SendBitcoinTransaction(txHex string) (string, error)
}

// Receipt describes a successfully broadcast payment. Fee includes any
// dust change that was folded into it.
type Receipt struct {
	TxID   string
	Amount int64
	Fee    int64
	Change int64
}

// Sender runs the send pipeline: fetch UTXOs and fee rate, select coins,
// reserve them, build, sign, broadcast. Each stage fails fast with a typed
// error; nothing is retried here and no defaults are substituted.
type Sender struct {
	backend      Backend
	reservations *ReservationLedger
}

func NewSender(backend Backend) *Sender {
	return &Sender{
		backend:      backend,
		reservations: NewReservationLedger(),
	}
}

// Send pays amountBTC (a decimal string denominated in whole BTC) from the
// WIF-encoded funding key to the destination address. The funding address
// is derived from the key; it is never configured independently.
func (s *Sender) Send(privateKeyWIF, destination, amountBTC string) (*Receipt, error) {
	wif, err := btcutil.DecodeWIF(privateKeyWIF)
	if err != nil {
		return nil, fmt.Errorf("invalid funding key: %w", err)
	}

	fundingAddr, err := addressForKey(wif)
	if err != nil {
		return nil, err
	}

	dest, err := ParseAddress(destination)
	if err != nil {
		return nil, fmt.Errorf("invalid destination address: %w", err)
	}

	target, err := ParseAmount(amountBTC)
	if err != nil {
		return nil, err
	}

	utxos, err := s.backend.GetBitcoinUTXOs(fundingAddr.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unspent outputs: %w", err)
	}

	feeRate, err := s.backend.GetBitcoinFeeEstimate()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fee rate: %w", err)
	}

	sel, err := Select(utxos, target, feeRate)
	if err != nil {
		return nil, err
	}

	if err := s.reservations.Reserve(sel.Inputs); err != nil {
		return nil, err
	}
	defer s.reservations.Release(sel.Inputs)

	// The indexer's UTXO listing omits the script; every output of the
	// funding address pays to the same P2WPKH script.
	fundingScript, err := txscript.PayToAddrScript(fundingAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to create funding script: %w", err)
	}
	for i := range sel.Inputs {
		if len(sel.Inputs[i].PkScript) == 0 {
			sel.Inputs[i].PkScript = fundingScript
		}
	}

	unsigned, err := Build(sel, dest, target, fundingAddr)
	if err != nil {
		return nil, err
	}

	signed, err := Sign(unsigned, wif.PrivKey)
	if err != nil {
		return nil, err
	}

	txid, err := s.backend.SendBitcoinTransaction(signed.Hex)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{TxID: txid, Amount: target, Fee: sel.Fee}
	if change := sel.Total - target - sel.Fee; change > DustLimit {
		receipt.Change = change
	} else {
		receipt.Fee += change
	}
	return receipt, nil
}

// addressForKey derives the native-segwit funding address of a WIF key.
func addressForKey(wif *btcutil.WIF) (btcutil.Address, error) {
	hash := btcutil.Hash160(wif.PrivKey.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(hash, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to derive funding address: %w", err)
	}
	return addr, nil
}
