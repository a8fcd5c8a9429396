package cmd

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Opikz-Nrdyth/sol-incinerator/api"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/bitcoin"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/ethereum"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/solana"
	"github.com/Opikz-Nrdyth/sol-incinerator/wallet"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [chain]",
	Short: "Check cryptocurrency balances",
	Long: `Check your cryptocurrency balances for supported chains.

Supported chains: eth, btc, sol, ton

Examples:
  incinerator balance        # Check all balances
  incinerator balance eth    # Check Ethereum balance
  incinerator balance btc    # Check Bitcoin balance
  incinerator balance sol    # Check Solana balance
  incinerator balance ton    # Check TON balance`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	manager := wallet.NewManager()
	client := api.NewClient(api.LoadConfig())

	if !manager.IsUnlocked() {
		return fmt.Errorf("wallet is locked. Run 'incinerator unlock' first")
	}

	usdFlag, _ := cmd.Flags().GetBool("usd")

	var chains []string
	if len(args) == 0 {
		if manager.IsTestnet() {
			// Bitcoin not supported in testnet mode
			chains = []string{"eth", "sol", "ton"}
		} else {
			chains = []string{"eth", "btc", "sol", "ton"}
		}
	} else {
		chain := strings.ToLower(args[0])
		switch chain {
		case "eth", "ethereum":
			chains = []string{"eth"}
		case "btc", "bitcoin":
			if manager.IsTestnet() {
				return fmt.Errorf("bitcoin is not supported in testnet mode")
			}
			chains = []string{"btc"}
		case "sol", "solana":
			chains = []string{"sol"}
		case "ton":
			chains = []string{"ton"}
		default:
			return fmt.Errorf("unsupported chain: %s. Supported chains: eth, btc, sol, ton", chain)
		}
	}

	fmt.Println("💰 Wallet Balances")
	fmt.Printf("🌐 Network: %s\n", networkLabel(manager))
	fmt.Println()

	for _, chain := range chains {
		switch chain {
		case "eth":
			if err := displayEthereumBalance(manager, client, usdFlag); err != nil {
				fmt.Printf("❌ Ethereum: Error - %v\n", err)
			}
		case "btc":
			if err := displayBitcoinBalance(manager, client, usdFlag); err != nil {
				fmt.Printf("❌ Bitcoin: Error - %v\n", err)
			}
		case "sol":
			if err := displaySolanaBalance(manager, client, usdFlag); err != nil {
				fmt.Printf("❌ Solana: Error - %v\n", err)
			}
		case "ton":
			if err := displayTONBalance(manager, client, usdFlag); err != nil {
				fmt.Printf("❌ TON: Error - %v\n", err)
			}
		}
	}

	return nil
}

func displayEthereumBalance(manager *wallet.Manager, client *api.Client, usdFlag bool) error {
	address, err := manager.GetEthereumAddress()
	if err != nil {
		return fmt.Errorf("failed to get address: %w", err)
	}

	balance, err := client.GetEthereumBalance(address.Hex())
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	if manager.IsTestnet() {
		fmt.Printf("🔷 Ethereum (Sepolia): %s\n", ethereum.FormatBalance(balance))
	} else {
		fmt.Printf("🔷 Ethereum: %s\n", ethereum.FormatBalance(balance))
	}

	if usdFlag && !manager.IsTestnet() {
		displayUSDValue(client, "ethereum", ethereum.WeiToEther(balance))
	}

	fmt.Printf("   📍 Address: %s\n", address.Hex())
	fmt.Println()
	return nil
}

func displayBitcoinBalance(manager *wallet.Manager, client *api.Client, usdFlag bool) error {
	if manager.IsTestnet() {
		return fmt.Errorf("bitcoin is not supported in testnet mode")
	}

	address, err := manager.GetBitcoinAddress()
	if err != nil {
		return fmt.Errorf("failed to get address: %w", err)
	}

	balance, err := client.GetBitcoinBalance(address.String())
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	fmt.Printf("🟠 Bitcoin: %s\n", bitcoin.FormatBalance(balance))

	if usdFlag {
		displayUSDValue(client, "bitcoin", bitcoin.SatoshisToBTC(balance))
	}

	fmt.Printf("   📍 Address: %s\n", address.String())
	fmt.Println()
	return nil
}

func displaySolanaBalance(manager *wallet.Manager, client *api.Client, usdFlag bool) error {
	address, err := manager.GetSolanaAddress()
	if err != nil {
		return fmt.Errorf("failed to get address: %w", err)
	}

	balance, err := client.GetSolanaBalance(address.String())
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	if manager.IsTestnet() {
		fmt.Printf("🟣 Solana (Devnet): %s\n", solana.FormatBalance(balance))
	} else {
		fmt.Printf("🟣 Solana: %s\n", solana.FormatBalance(balance))
	}

	if balance == 0 {
		fmt.Printf("   ℹ️ Note: This account doesn't exist on-chain yet. Send SOL to this address to activate it.\n")
	}

	if usdFlag && !manager.IsTestnet() {
		displayUSDValue(client, "solana", solana.LamportsToSOL(balance))
	}

	fmt.Printf("   📍 Address: %s\n", address.String())
	fmt.Println()
	return nil
}

func displayTONBalance(manager *wallet.Manager, client *api.Client, usdFlag bool) error {
	key, err := manager.GetTONKey()
	if err != nil {
		return fmt.Errorf("failed to get key: %w", err)
	}
	address, err := manager.GetTONAddress()
	if err != nil {
		return fmt.Errorf("failed to get address: %w", err)
	}

	balance, err := client.GetTONBalance(context.Background(), key.Public().(ed25519.PublicKey))
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	fmt.Printf("💎 TON: %s TON\n", balance.String())

	if usdFlag && !manager.IsTestnet() {
		tonValue, _ := balanceFloat(balance.String())
		displayUSDValue(client, "the-open-network", tonValue)
	}

	fmt.Printf("   📍 Address: %s\n", address.String())
	fmt.Println()
	return nil
}

func displayUSDValue(client *api.Client, coin string, amount float64) {
	price, err := client.GetPrice(coin)
	if err != nil {
		fmt.Printf("   💵 USD: Error fetching price - %v\n", err)
		return
	}
	fmt.Printf("   💵 USD: $%.2f\n", amount*price.USD.InexactFloat64())
}

func balanceFloat(s string) (float64, error) {
	var result float64
	_, err := fmt.Sscanf(s, "%f", &result)
	return result, err
}

func init() {
	balanceCmd.Flags().Bool("usd", false, "Show balances in USD")
}
