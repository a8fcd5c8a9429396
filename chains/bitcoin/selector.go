package bitcoin

// Virtual-size model for a single-key native-segwit spend. Each P2WPKH
// input weighs 68 vbytes; the destination and change outputs plus the
// transaction overhead weigh 62 vbytes and are counted once.
const (
	InputVBytes   = 68
	OutputsVBytes = 62

	// DustLimit is the minimum change worth emitting. Change at or below
	// it is folded into the fee.
	DustLimit = 546
)

// Select picks inputs for target satoshis at the given fee rate
// (sat/vbyte). Selection is greedy first-fit in the order UTXOs are
// supplied: inputs are accumulated until the running total covers the
// pre-fee target, and only then is the fee computed over the full
// selection. The fee-inclusive requirement is checked after the loop, so a
// selection that covers the target but not target+fee fails with
// *InsufficientFundsError rather than picking up more inputs.
func Select(utxos []UTXO, target, feeRate int64) (*Selection, error) {
	var (
		inputs []UTXO
		total  int64
		vbytes int64
	)

	for _, utxo := range utxos {
		inputs = append(inputs, utxo)
		total += utxo.Value
		vbytes += InputVBytes
		if total >= target {
			break
		}
	}

	fee := (vbytes + OutputsVBytes) * feeRate
	if total < target+fee {
		return nil, &InsufficientFundsError{
			Target:    target,
			Fee:       fee,
			Available: total,
			Shortfall: target + fee - total,
		}
	}

	return &Selection{Inputs: inputs, Total: total, Fee: fee}, nil
}
