package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Opikz-Nrdyth/sol-incinerator/retry"
)

// Config is passed explicitly into NewClient; the client itself never reads
// ambient state (environment, config files) once constructed.
type Config struct {
	Network string
	Timeout time.Duration
	Retry   retry.Policy
}

// LoadConfig resolves the user's configuration at the CLI edge: the network
// selection lives in ~/.incinerator/network.txt, everything else defaults.
func LoadConfig() Config {
	cfg := Config{
		Network: NetworkMainnet,
		Timeout: 30 * time.Second,
		Retry:   retry.DefaultPolicy,
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}

	networkPath := filepath.Join(homeDir, ".incinerator", "network.txt")
	data, err := os.ReadFile(networkPath)
	if err != nil {
		return cfg
	}

	network := strings.TrimSpace(string(data))
	if network == NetworkMainnet || network == NetworkTestnet {
		cfg.Network = network
	}
	return cfg
}

// Client handles API calls to external chain services.
type Client struct {
	httpClient *http.Client
	network    string
	retry      retry.Policy
}

// NewClient creates a new API client from an explicit configuration.
func NewClient(cfg Config) *Client {
	if cfg.Network == "" {
		cfg.Network = NetworkMainnet
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.DefaultPolicy
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		network:    cfg.Network,
		retry:      cfg.Retry,
	}
}

// IsTestnet returns true if the client is using testnet
func (c *Client) IsTestnet() bool {
	return c.network == NetworkTestnet
}

// GetPrice fetches current price for a cryptocurrency
func (c *Client) GetPrice(symbol string) (*PriceData, error) {
	// Use CoinGecko API
	url := fmt.Sprintf("https://api.coingecko.com/api/v3/simple/price?ids=%s&vs_currencies=usd", symbol)

	body, err := c.getJSON(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price: %w", err)
	}

	var result map[string]map[string]float64
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if priceData, exists := result[symbol]; exists {
		if usdPrice, exists := priceData["usd"]; exists {
			return &PriceData{
				Symbol: symbol,
				Price:  decimal.NewFromFloat(usdPrice),
				USD:    decimal.NewFromFloat(usdPrice),
			}, nil
		}
	}

	return nil, fmt.Errorf("price not found for symbol: %s", symbol)
}

// getJSON sends a GET request and returns the body. Non-200 responses
// become errors carrying the status code, which lets the retry wrapper
// recognize rate limiting.
func (c *Client) getJSON(url string) ([]byte, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// postJSON sends a POST request with JSON payload
func (c *Client) postJSON(url string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := c.httpClient.Post(url, "application/json", strings.NewReader(string(jsonData)))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
