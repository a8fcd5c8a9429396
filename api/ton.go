package api

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/wallet"
)

// GetTONConfig returns the liteserver config URL for the current network.
func (c *Client) GetTONConfig() string {
	if c.IsTestnet() {
		return TestnetTONConfig
	}
	return MainnetTONConfig
}

// tonAPI dials the public liteservers. TON has no HTTP JSON interface like
// the other chains, so this goes through tonutils-go instead of postJSON.
func (c *Client) tonAPI(ctx context.Context) (ton.APIClientWrapped, error) {
	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, c.GetTONConfig()); err != nil {
		return nil, fmt.Errorf("failed to connect to TON liteservers: %w", err)
	}
	return ton.NewAPIClient(pool).WithRetry(), nil
}

// GetTONBalance fetches the balance of the V4R2 wallet contract derived
// from the given public key. An undeployed wallet has a zero balance.
func (c *Client) GetTONBalance(ctx context.Context, pub ed25519.PublicKey) (tlb.Coins, error) {
	api, err := c.tonAPI(ctx)
	if err != nil {
		return tlb.Coins{}, err
	}

	addr, err := wallet.AddressFromPubKey(pub, wallet.V4R2, wallet.DefaultSubwallet)
	if err != nil {
		return tlb.Coins{}, fmt.Errorf("failed to derive TON address: %w", err)
	}

	block, err := api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return tlb.Coins{}, fmt.Errorf("failed to fetch masterchain info: %w", err)
	}

	acc, err := api.GetAccount(ctx, block, addr)
	if err != nil {
		return tlb.Coins{}, fmt.Errorf("failed to fetch account: %w", err)
	}

	if !acc.IsActive {
		return tlb.FromNanoTONU(0), nil
	}
	return acc.State.Balance, nil
}

// SendTON transfers amountTON (a decimal string in whole TON) to the
// destination address and waits for the transfer to confirm.
func (c *Client) SendTON(ctx context.Context, key ed25519.PrivateKey, to, amountTON, comment string) error {
	api, err := c.tonAPI(ctx)
	if err != nil {
		return err
	}

	w, err := wallet.FromPrivateKey(api, key, wallet.V4R2)
	if err != nil {
		return fmt.Errorf("failed to open TON wallet: %w", err)
	}

	dest, err := address.ParseAddr(to)
	if err != nil {
		return fmt.Errorf("invalid TON address: %w", err)
	}

	coins, err := tlb.FromTON(amountTON)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	if err := w.Transfer(ctx, dest, coins, comment, true); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}
	return nil
}
