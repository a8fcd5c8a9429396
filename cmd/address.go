package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Opikz-Nrdyth/sol-incinerator/wallet"
)

var addressCmd = &cobra.Command{
	Use:   "address [chain]",
	Short: "Show wallet address",
	Long: `Show your wallet address for the specified blockchain.
Supported chains: eth, btc, sol, ton

Examples:
  incinerator address eth     # Show Ethereum address
  incinerator address btc     # Show Bitcoin address
  incinerator address sol     # Show Solana address
  incinerator address ton     # Show TON address
  incinerator address         # Show all addresses`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAddress,
}

func runAddress(cmd *cobra.Command, args []string) error {
	manager := wallet.NewManager()

	if !manager.IsUnlocked() {
		return fmt.Errorf("wallet is locked. Run 'incinerator unlock' first")
	}

	if len(args) == 0 {
		return showAllAddresses(manager)
	}

	chain := strings.ToLower(args[0])
	return showChainAddress(manager, chain)
}

func showAllAddresses(manager *wallet.Manager) error {
	fmt.Println("🔑 Your wallet addresses:")
	fmt.Printf("🌐 Network: %s\n", networkLabel(manager))
	fmt.Println()

	ethAddress, err := manager.GetEthereumAddress()
	if err != nil {
		return fmt.Errorf("failed to get Ethereum address: %w", err)
	}
	if manager.IsTestnet() {
		fmt.Printf("Ethereum (ETH - Sepolia): %s\n", ethAddress.Hex())
	} else {
		fmt.Printf("Ethereum (ETH): %s\n", ethAddress.Hex())
	}

	// Bitcoin address - only on mainnet
	if !manager.IsTestnet() {
		btcAddress, err := manager.GetBitcoinAddress()
		if err != nil {
			return fmt.Errorf("failed to get Bitcoin address: %w", err)
		}
		fmt.Printf("Bitcoin (BTC):  %s\n", btcAddress.String())
	} else {
		fmt.Println("Bitcoin (BTC):  Not supported in testnet mode")
	}

	solAddress, err := manager.GetSolanaAddress()
	if err != nil {
		return fmt.Errorf("failed to get Solana address: %w", err)
	}
	if manager.IsTestnet() {
		fmt.Printf("Solana (SOL - Devnet): %s\n", solAddress.String())
	} else {
		fmt.Printf("Solana (SOL): %s\n", solAddress.String())
	}

	tonAddress, err := manager.GetTONAddress()
	if err != nil {
		return fmt.Errorf("failed to get TON address: %w", err)
	}
	fmt.Printf("TON (TON):    %s\n", tonAddress.String())

	return nil
}

func showChainAddress(manager *wallet.Manager, chain string) error {
	fmt.Printf("🌐 Network: %s\n\n", networkLabel(manager))

	switch chain {
	case "eth", "ethereum":
		address, err := manager.GetEthereumAddress()
		if err != nil {
			return fmt.Errorf("failed to get Ethereum address: %w", err)
		}
		if manager.IsTestnet() {
			fmt.Printf("Ethereum (ETH - Sepolia): %s\n", address.Hex())
		} else {
			fmt.Printf("Ethereum (ETH): %s\n", address.Hex())
		}

	case "btc", "bitcoin":
		if manager.IsTestnet() {
			fmt.Println("Bitcoin (BTC): Not supported in testnet mode")
		} else {
			address, err := manager.GetBitcoinAddress()
			if err != nil {
				return fmt.Errorf("failed to get Bitcoin address: %w", err)
			}
			fmt.Printf("Bitcoin (BTC): %s\n", address.String())
		}

	case "sol", "solana":
		address, err := manager.GetSolanaAddress()
		if err != nil {
			return fmt.Errorf("failed to get Solana address: %w", err)
		}
		if manager.IsTestnet() {
			fmt.Printf("Solana (SOL - Devnet): %s\n", address.String())
		} else {
			fmt.Printf("Solana (SOL): %s\n", address.String())
		}

	case "ton":
		address, err := manager.GetTONAddress()
		if err != nil {
			return fmt.Errorf("failed to get TON address: %w", err)
		}
		fmt.Printf("TON (TON): %s\n", address.String())

	default:
		return fmt.Errorf("unsupported chain: %s. Supported chains: eth, btc, sol, ton", chain)
	}

	return nil
}

func networkLabel(manager *wallet.Manager) string {
	if manager.IsTestnet() {
		return "Testnet"
	}
	return "Mainnet"
}
