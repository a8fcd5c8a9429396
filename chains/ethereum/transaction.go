package ethereum

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Gas limit for a plain ETH transfer. Transfers with data cost more; the
// estimator adds 68 gas per payload byte as a rough upper bound.
const TransferGasLimit = 21000

// ParseAddress parses and validates an Ethereum address.
func ParseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("invalid Ethereum address: %s", address)
	}
	return common.HexToAddress(address), nil
}

// ValidateAddress checks if an address string is a valid Ethereum address.
func ValidateAddress(address string) error {
	_, err := ParseAddress(address)
	return err
}

// NewTransaction creates an unsigned legacy transaction.
func NewTransaction(nonce uint64, to common.Address, value *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *types.Transaction {
	return types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
}

// ValidateTransaction performs basic sanity checks before signing.
func ValidateTransaction(tx *types.Transaction) error {
	if tx.To() == nil {
		return fmt.Errorf("transaction has no recipient")
	}
	if tx.Value() == nil || tx.Value().Sign() < 0 {
		return fmt.Errorf("transaction has invalid value")
	}
	if tx.Gas() < TransferGasLimit {
		return fmt.Errorf("gas limit %d is below the minimum of %d", tx.Gas(), TransferGasLimit)
	}
	if tx.GasPrice() == nil || tx.GasPrice().Sign() <= 0 {
		return fmt.Errorf("transaction has invalid gas price")
	}
	return nil
}

// SignTransaction signs a transaction with EIP-155 replay protection for
// the given chain ID and returns the raw transaction hex ready for
// eth_sendRawTransaction.
func SignTransaction(tx *types.Transaction, privateKey *ecdsa.PrivateKey, chainID *big.Int) (string, error) {
	if chainID == nil || chainID.Sign() <= 0 {
		return "", fmt.Errorf("invalid chain ID")
	}

	signer := types.NewEIP155Signer(chainID)
	signedTx, err := types.SignTx(tx, signer, privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to encode transaction: %w", err)
	}

	return "0x" + hex.EncodeToString(raw), nil
}

// EstimateGasLimit gives a static gas estimate when the RPC estimator is
// unavailable.
func EstimateGasLimit(data []byte) uint64 {
	return TransferGasLimit + uint64(len(data))*68
}

// EtherToWei converts an ether amount to wei.
func EtherToWei(ether *big.Float) *big.Int {
	wei := new(big.Float).Mul(ether, big.NewFloat(1e18))
	result, _ := wei.Int(nil)
	return result
}

// WeiToEther converts a wei amount to ether as a float64 for display.
func WeiToEther(wei *big.Int) float64 {
	ether := new(big.Float).SetInt(wei)
	ether.Quo(ether, big.NewFloat(1e18))
	value, _ := ether.Float64()
	return value
}

// FormatBalance formats a wei balance for display.
func FormatBalance(wei *big.Int) string {
	return fmt.Sprintf("%.6f ETH", WeiToEther(wei))
}
