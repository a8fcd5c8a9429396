package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/shopspring/decimal"
)

// ParseAddress parses a Bitcoin mainnet address.
func ParseAddress(address string) (btcutil.Address, error) {
	return btcutil.DecodeAddress(address, &chaincfg.MainNetParams)
}

// ValidateAddress validates a Bitcoin address.
func ValidateAddress(address string) error {
	_, err := ParseAddress(address)
	return err
}

// CreateP2WPKHAddress creates a native-segwit address from a public key.
func CreateP2WPKHAddress(publicKey *btcec.PublicKey) (btcutil.Address, error) {
	pubKeyHash := btcutil.Hash160(publicKey.SerializeCompressed())
	return btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, &chaincfg.MainNetParams)
}

// ParseAmount converts a whole-BTC decimal string into satoshis, rounding
// down. Fractional amounts only exist at this boundary; everything past it
// is integer satoshis.
func ParseAmount(amount string) (int64, error) {
	btc, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if !btc.IsPositive() {
		return 0, fmt.Errorf("amount must be positive, got %q", amount)
	}
	return btc.Mul(decimal.NewFromInt(100_000_000)).Floor().IntPart(), nil
}

// SatoshisToBTC converts satoshis to BTC for display.
func SatoshisToBTC(satoshis int64) float64 {
	return float64(satoshis) / 100_000_000
}

// FormatBalance formats a satoshi balance in a human-readable form.
func FormatBalance(satoshis int64) string {
	return fmt.Sprintf("%.8f BTC", SatoshisToBTC(satoshis))
}
