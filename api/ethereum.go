package api

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// GetEthereumRPC returns the appropriate Ethereum RPC URL
func (c *Client) GetEthereumRPC() string {
	if c.IsTestnet() {
		return TestnetEthereumRPC
	}
	return MainnetEthereumRPC
}

// GetEthereumChainID returns the chain ID used for EIP-155 signing.
func (c *Client) GetEthereumChainID() *big.Int {
	if c.IsTestnet() {
		return big.NewInt(SepoliaChainID)
	}
	return big.NewInt(MainnetChainID)
}

// GetEthereumBalance fetches Ethereum balance in wei.
func (c *Client) GetEthereumBalance(address string) (*big.Int, error) {
	result, err := c.ethCall("eth_getBalance", []interface{}{address, "latest"})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance: %w", err)
	}
	return parseHexBigInt(result)
}

// GetEthereumNonce fetches the next nonce for an address.
func (c *Client) GetEthereumNonce(address string) (uint64, error) {
	result, err := c.ethCall("eth_getTransactionCount", []interface{}{address, "latest"})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch nonce: %w", err)
	}
	return parseHexInt(result)
}

// GetEthereumGasPrice fetches current gas price
func (c *Client) GetEthereumGasPrice() (*big.Int, error) {
	result, err := c.ethCall("eth_gasPrice", []interface{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}
	return parseHexBigInt(result)
}

// GetEthereumGasEstimate estimates the gas needed for an ETH transaction
func (c *Client) GetEthereumGasEstimate(from, to string, value *big.Int, data []byte) (uint64, error) {
	txObject := map[string]interface{}{
		"from": from,
		"to":   to,
	}
	if value != nil && value.Sign() > 0 {
		txObject["value"] = "0x" + value.Text(16)
	}
	if len(data) > 0 {
		txObject["data"] = fmt.Sprintf("0x%x", data)
	}

	result, err := c.ethCall("eth_estimateGas", []interface{}{txObject})
	if err != nil {
		// Estimation failing is not fatal; fall back to a conservative
		// default for a plain transfer.
		return 50000, nil
	}

	gas, err := parseHexInt(result)
	if err != nil {
		return 50000, nil
	}

	// 20% buffer to account for state changes between estimate and send.
	return gas + gas/5, nil
}

// SendEthereumTransaction sends a signed raw transaction and returns its hash.
func (c *Client) SendEthereumTransaction(signedTx string) (string, error) {
	result, err := c.ethCall("eth_sendRawTransaction", []interface{}{signedTx})
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}
	return result, nil
}

// ethCall performs a JSON-RPC call and returns the string result.
func (c *Client) ethCall(method string, params []interface{}) (string, error) {
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
		"id":      1,
	}

	response, err := c.postJSON(c.GetEthereumRPC(), payload)
	if err != nil {
		return "", err
	}

	var rpcResp EthereumRPCResponse
	if err := json.Unmarshal(response, &rpcResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if rpcResp.Error != nil {
		return "", fmt.Errorf("RPC error: %s", rpcResp.Error.Message)
	}

	if rpcResp.Result == nil {
		return "", fmt.Errorf("no result in response")
	}

	result, ok := rpcResp.Result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected result format for %s", method)
	}

	return result, nil
}

// Helper to convert hex string to int
func parseHexInt(hexStr string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(hexStr, "0x"), 16, 64)
}

// Helper to convert hex string to big.Int
func parseHexBigInt(hexStr string) (*big.Int, error) {
	value := new(big.Int)
	if _, ok := value.SetString(strings.TrimPrefix(hexStr, "0x"), 16); !ok {
		return nil, fmt.Errorf("invalid hex value: %s", hexStr)
	}
	return value, nil
}
