package api

import (
	"github.com/shopspring/decimal"
)

// PriceData represents cryptocurrency price information
type PriceData struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"current_price"`
	USD    decimal.Decimal `json:"usd"`
}

// EthereumRPCResponse represents Ethereum RPC response
type EthereumRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Result  interface{} `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SolanaRPCResponse represents Solana RPC response
type SolanaRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Result  interface{} `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// TokenAccount is an SPL token account owned by the wallet.
type TokenAccount struct {
	Pubkey   string
	Mint     string
	Amount   uint64
	Decimals int
}

// IsEmpty reports whether the account holds no tokens and can be closed to
// reclaim its rent.
func (a TokenAccount) IsEmpty() bool {
	return a.Amount == 0
}
