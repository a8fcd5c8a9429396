package bitcoin

import (
	"errors"
	"fmt"
)

// ErrOutputReserved is returned when a send tries to select an input that a
// concurrent send already holds.
var ErrOutputReserved = errors.New("unspent output is reserved by another send")

// InsufficientFundsError reports that the available UTXOs cannot cover the
// requested amount plus the estimated fee. Shortfall is how many satoshis
// are missing, for user display.
type InsufficientFundsError struct {
	Target    int64
	Fee       int64
	Available int64
	Shortfall int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"insufficient funds: need %d sats (%d + %d fee) but only %d available, short %d",
		e.Target+e.Fee, e.Target, e.Fee, e.Available, e.Shortfall)
}

// SigningError reports that an input could not be signed, typically because
// its previous-output script is not the P2WPKH script of the supplied key.
type SigningError struct {
	InputIndex int
	Reason     string
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("failed to sign input %d: %s", e.InputIndex, e.Reason)
}

// BroadcastError reports a relay rejection or transport failure. Payload
// carries the relay's raw error body verbatim when available, so users can
// diagnose relay-specific reasons (fee too low, already spent, ...).
type BroadcastError struct {
	Payload string
	Err     error
}

func (e *BroadcastError) Error() string {
	if e.Payload != "" {
		return fmt.Sprintf("broadcast rejected: %s", e.Payload)
	}
	return fmt.Sprintf("broadcast failed: %v", e.Err)
}

func (e *BroadcastError) Unwrap() error {
	return e.Err
}
