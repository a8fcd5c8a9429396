package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "1.2.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "incinerator",
	Aliases: []string{"inc"},
	Short:   "A command-line multi-chain wallet with Solana account cleanup",
	Long: `Incinerator is a deterministic multi-chain wallet for Ethereum, Bitcoin,
Solana, and TON. It generates keys locally, stores them in an encrypted
vault, signs transactions offline, and can burn empty Solana token accounts
to reclaim their rent.

Features:
  • Multi-chain support (ETH, BTC, SOL, TON)
  • BIP-39 mnemonic generation
  • BIP-44 hierarchical deterministic wallets
  • AES-256-GCM encrypted vault storage
  • UTXO coin selection and offline signing for Bitcoin
  • Empty token account burning on Solana (rent reclaim)
  • Mainnet and Testnet support

Examples:
  incinerator init                     # Create new wallet
  incinerator unlock                   # Unlock wallet
  incinerator address                  # Show all addresses
  incinerator balance --usd            # Check balances with USD values
  incinerator pay eth 0.1 0x1234...    # Send 0.1 ETH
  incinerator burn                     # Close empty Solana token accounts
  incinerator network testnet          # Switch to testnet mode`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(burnCmd)
	rootCmd.AddCommand(recoveryPhraseCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Incinerator Wallet v%s\n", version)
	},
}
