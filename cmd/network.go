package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Opikz-Nrdyth/sol-incinerator/api"
)

var networkCmd = &cobra.Command{
	Use:   "network [mainnet|testnet]",
	Short: "Show or change network",
	Long: `Show the current network or switch between mainnet and testnet.

Testnet covers Ethereum Sepolia, Solana devnet, and the TON testnet.
Bitcoin is only supported on mainnet.

Examples:
  incinerator network            # Show current network
  incinerator network mainnet    # Switch to mainnet
  incinerator network testnet    # Switch to testnet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return showCurrentNetwork()
	}

	network := strings.ToLower(args[0])
	if network != api.NetworkMainnet && network != api.NetworkTestnet {
		return fmt.Errorf("invalid network: %s. Use 'mainnet' or 'testnet'", network)
	}

	return setNetwork(network)
}

func showCurrentNetwork() error {
	cfg := api.LoadConfig()

	if cfg.Network == api.NetworkMainnet {
		fmt.Printf("🌐 Current network: %s\n", color.GreenString("Mainnet"))
		fmt.Println()
		fmt.Println("Network details:")
		fmt.Println("   - Ethereum: Mainnet")
		fmt.Println("   - Bitcoin: Mainnet")
		fmt.Println("   - Solana: Mainnet")
		fmt.Println("   - TON: Mainnet")
	} else {
		fmt.Printf("🌐 Current network: %s\n", color.YellowString("Testnet"))
		fmt.Println()
		fmt.Println("Network details:")
		fmt.Println("   - Ethereum: Sepolia")
		fmt.Printf("   - Bitcoin: %s\n", color.RedString("Not supported"))
		fmt.Println("   - Solana: Devnet")
		fmt.Println("   - TON: Testnet")
		fmt.Println()
		fmt.Println("⚠️  Warning: Bitcoin is not supported in testnet mode")
	}

	fmt.Println("💡 Incinerator uses different wallets per network for your safety")
	fmt.Println("🔐 Your mainnet and testnet addresses are all separate")

	return nil
}

func setNetwork(network string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".incinerator")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	networkPath := filepath.Join(configDir, "network.txt")
	if err := os.WriteFile(networkPath, []byte(network), 0600); err != nil {
		return fmt.Errorf("failed to write network file: %w", err)
	}

	fmt.Printf("🌐 Switched to %s network\n", strings.ToUpper(network))
	fmt.Println()

	if network == api.NetworkTestnet {
		fmt.Println("⚠️  You are now on TESTNET mode")
		fmt.Println("   - Ethereum: Sepolia Testnet")
		fmt.Println("   - Solana: Devnet")
		fmt.Println("   - TON: Testnet")
		fmt.Println("   - Bitcoin: Not supported in testnet mode")
	} else {
		fmt.Println("✅ You are now on MAINNET mode")
		fmt.Println("   All features are available in mainnet mode")
	}
	fmt.Println("💡 Incinerator uses different wallets per network for your safety")
	fmt.Println("🔐 Your mainnet and testnet addresses are all separate")

	return nil
}

func init() {
	rootCmd.AddCommand(networkCmd)
}
