package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Opikz-Nrdyth/sol-incinerator/retry"
)

// The public Solana RPC endpoints rate-limit hard, so every call in this
// file goes through the retry wrapper.

// GetSolanaRPC returns the appropriate Solana RPC URL
func (c *Client) GetSolanaRPC() string {
	if c.IsTestnet() {
		return TestnetSolanaRPC
	}
	return MainnetSolanaRPC
}

// GetSolanaBalance fetches Solana balance in lamports.
func (c *Client) GetSolanaBalance(address string) (uint64, error) {
	url := c.GetSolanaRPC()

	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  "getBalance",
		"params":  []interface{}{address},
		"id":      1,
	}

	return retry.Do(c.retry, func() (uint64, error) {
		response, err := c.postJSON(url, payload)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch Solana balance: %w", err)
		}

		var rpcResp SolanaRPCResponse
		if err := json.Unmarshal(response, &rpcResp); err != nil {
			return 0, fmt.Errorf("failed to parse response: %w", err)
		}

		if rpcResp.Error != nil {
			// Accounts don't exist until they receive SOL; that's a zero
			// balance, not an error.
			if strings.Contains(rpcResp.Error.Message, "could not find account") {
				return 0, nil
			}
			return 0, fmt.Errorf("RPC error: %s", rpcResp.Error.Message)
		}

		if rpcResp.Result == nil {
			return 0, fmt.Errorf("no result in response")
		}

		resultMap, ok := rpcResp.Result.(map[string]interface{})
		if !ok {
			if value, ok := rpcResp.Result.(float64); ok {
				return uint64(value), nil
			}
			return 0, fmt.Errorf("invalid balance format")
		}

		if valueFloat, ok := resultMap["value"].(float64); ok {
			return uint64(valueFloat), nil
		}

		return 0, fmt.Errorf("could not find balance value in response")
	})
}

// GetSolanaRecentBlockhash gets a recent blockhash for Solana transactions
func (c *Client) GetSolanaRecentBlockhash() (string, error) {
	url := c.GetSolanaRPC()

	// "finalized" commitment gives the freshest blockhash that's already
	// confirmed.
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "getLatestBlockhash",
		"params":  []interface{}{map[string]interface{}{"commitment": "finalized"}},
	}

	return retry.Do(c.retry, func() (string, error) {
		response, err := c.postJSON(url, payload)
		if err != nil {
			return "", fmt.Errorf("failed to get recent blockhash: %w", err)
		}

		var rpcResp SolanaRPCResponse
		if err := json.Unmarshal(response, &rpcResp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}

		if rpcResp.Error != nil {
			return "", fmt.Errorf("RPC error: %s", rpcResp.Error.Message)
		}

		resultMap, ok := rpcResp.Result.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("unexpected result format")
		}

		valueMap, ok := resultMap["value"].(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("missing 'value' in result")
		}

		blockhash, ok := valueMap["blockhash"].(string)
		if !ok {
			return "", fmt.Errorf("missing 'blockhash' in result")
		}

		return blockhash, nil
	})
}

// SendSolanaTransaction sends a signed, base58-encoded Solana transaction
// and returns its signature.
func (c *Client) SendSolanaTransaction(signedTx string) (string, error) {
	url := c.GetSolanaRPC()

	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  "sendTransaction",
		"params":  []string{signedTx},
		"id":      1,
	}

	return retry.Do(c.retry, func() (string, error) {
		response, err := c.postJSON(url, payload)
		if err != nil {
			return "", fmt.Errorf("failed to send transaction: %w", err)
		}

		var rpcResp SolanaRPCResponse
		if err := json.Unmarshal(response, &rpcResp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}

		if rpcResp.Error != nil {
			return "", fmt.Errorf("RPC error: %s", rpcResp.Error.Message)
		}

		if rpcResp.Result == nil {
			return "", fmt.Errorf("no result in response")
		}

		txHash, ok := rpcResp.Result.(string)
		if !ok {
			return "", fmt.Errorf("invalid transaction hash format")
		}

		return txHash, nil
	})
}

// GetSolanaTokenAccounts enumerates the SPL token accounts owned by an
// address, including empty ones (those are the candidates for closing).
func (c *Client) GetSolanaTokenAccounts(owner string) ([]TokenAccount, error) {
	url := c.GetSolanaRPC()

	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "getTokenAccountsByOwner",
		"params": []interface{}{
			owner,
			map[string]interface{}{"programId": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"},
			map[string]interface{}{"encoding": "jsonParsed"},
		},
	}

	return retry.Do(c.retry, func() ([]TokenAccount, error) {
		response, err := c.postJSON(url, payload)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch token accounts: %w", err)
		}

		var result struct {
			Result struct {
				Value []struct {
					Pubkey  string `json:"pubkey"`
					Account struct {
						Data struct {
							Parsed struct {
								Info struct {
									Mint        string `json:"mint"`
									TokenAmount struct {
										Amount   string `json:"amount"`
										Decimals int    `json:"decimals"`
									} `json:"tokenAmount"`
								} `json:"info"`
							} `json:"parsed"`
						} `json:"data"`
					} `json:"account"`
				} `json:"value"`
			} `json:"result"`
			Error *struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}

		if err := json.Unmarshal(response, &result); err != nil {
			return nil, fmt.Errorf("failed to parse token accounts: %w", err)
		}

		if result.Error != nil {
			if strings.Contains(result.Error.Message, "could not find account") {
				return []TokenAccount{}, nil
			}
			return nil, fmt.Errorf("RPC error: %s", result.Error.Message)
		}

		accounts := make([]TokenAccount, 0, len(result.Result.Value))
		for _, item := range result.Result.Value {
			amount, err := strconv.ParseUint(item.Account.Data.Parsed.Info.TokenAmount.Amount, 10, 64)
			if err != nil {
				continue // skip accounts with unparseable amounts
			}
			accounts = append(accounts, TokenAccount{
				Pubkey:   item.Pubkey,
				Mint:     item.Account.Data.Parsed.Info.Mint,
				Amount:   amount,
				Decimals: item.Account.Data.Parsed.Info.TokenAmount.Decimals,
			})
		}
		return accounts, nil
	})
}
