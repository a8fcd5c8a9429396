package api

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Opikz-Nrdyth/sol-incinerator/chains/bitcoin"
	"github.com/Opikz-Nrdyth/sol-incinerator/retry"
)

// GetBitcoinAPI returns the mempool.space API base URL (mainnet only).
func (c *Client) GetBitcoinAPI() string {
	return MainnetMempoolAPI
}

// GetBitcoinBalance fetches the confirmed balance of an address in satoshis.
func (c *Client) GetBitcoinBalance(address string) (int64, error) {
	// Bitcoin only supported in mainnet
	if c.IsTestnet() {
		return 0, fmt.Errorf("bitcoin is not supported in testnet mode")
	}

	url := fmt.Sprintf("%s/address/%s", c.GetBitcoinAPI(), address)

	return retry.Do(c.retry, func() (int64, error) {
		body, err := c.getJSON(url)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch balance: %w", err)
		}

		var result struct {
			ChainStats struct {
				FundedTxoSum int64 `json:"funded_txo_sum"`
				SpentTxoSum  int64 `json:"spent_txo_sum"`
			} `json:"chain_stats"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return 0, fmt.Errorf("failed to parse response: %w", err)
		}

		return result.ChainStats.FundedTxoSum - result.ChainStats.SpentTxoSum, nil
	})
}

// GetBitcoinUTXOs fetches the unspent outputs of an address. The indexer
// reports txid, vout and value; scripts are filled in later by the sender.
func (c *Client) GetBitcoinUTXOs(address string) ([]bitcoin.UTXO, error) {
	// Bitcoin only supported in mainnet
	if c.IsTestnet() {
		return nil, fmt.Errorf("bitcoin is not supported in testnet mode")
	}

	url := fmt.Sprintf("%s/address/%s/utxo", c.GetBitcoinAPI(), address)

	return retry.Do(c.retry, func() ([]bitcoin.UTXO, error) {
		body, err := c.getJSON(url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch UTXOs: %w", err)
		}

		var result []struct {
			TxID  string `json:"txid"`
			Vout  uint32 `json:"vout"`
			Value int64  `json:"value"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		utxos := make([]bitcoin.UTXO, 0, len(result))
		for _, item := range result {
			utxos = append(utxos, bitcoin.UTXO{
				TxID:  item.TxID,
				Vout:  item.Vout,
				Value: item.Value,
			})
		}
		return utxos, nil
	})
}

// GetBitcoinFeeEstimate returns the recommended half-hour fee rate in
// satoshis per vbyte. Every send fetches a fresh estimate; nothing is
// cached and no default is silently substituted.
func (c *Client) GetBitcoinFeeEstimate() (int64, error) {
	if c.IsTestnet() {
		return 0, fmt.Errorf("bitcoin is not supported in testnet mode")
	}

	url := fmt.Sprintf("%s/v1/fees/recommended", c.GetBitcoinAPI())

	return retry.Do(c.retry, func() (int64, error) {
		body, err := c.getJSON(url)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch fee estimate: %w", err)
		}

		var feeResponse struct {
			FastestFee  int64 `json:"fastestFee"`
			HalfHourFee int64 `json:"halfHourFee"`
			HourFee     int64 `json:"hourFee"`
		}
		if err := json.Unmarshal(body, &feeResponse); err != nil {
			return 0, fmt.Errorf("failed to parse response: %w", err)
		}

		if feeResponse.HalfHourFee <= 0 {
			return 0, fmt.Errorf("fee service returned no usable rate")
		}
		return feeResponse.HalfHourFee, nil
	})
}

// SendBitcoinTransaction submits raw transaction hex to the relay. The
// submission happens exactly once: retrying a broadcast risks duplicate
// submission, so the decision to resubmit belongs to the caller, who can
// read the relay's reason from the BroadcastError payload.
func (c *Client) SendBitcoinTransaction(txHex string) (string, error) {
	// Bitcoin only supported in mainnet
	if c.IsTestnet() {
		return "", fmt.Errorf("bitcoin is not supported in testnet mode")
	}

	url := fmt.Sprintf("%s/tx", c.GetBitcoinAPI())

	resp, err := c.httpClient.Post(url, "text/plain", strings.NewReader(txHex))
	if err != nil {
		return "", &bitcoin.BroadcastError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &bitcoin.BroadcastError{Err: err}
	}

	if resp.StatusCode != 200 {
		return "", &bitcoin.BroadcastError{Payload: string(body)}
	}

	// The relay answers with the txid as plain text.
	return strings.TrimSpace(string(body)), nil
}
