package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Opikz-Nrdyth/sol-incinerator/wallet"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock wallet for session",
	Long: `Unlock your Incinerator wallet for the current session.
This command will decrypt your vault and load your keys into memory.
The wallet stays unlocked for 30 minutes.

Example:
  incinerator unlock`,
	RunE: runUnlock,
}

func runUnlock(cmd *cobra.Command, args []string) error {
	manager := wallet.NewManager()

	if !manager.VaultExists() {
		return fmt.Errorf("no wallet found. Run 'incinerator init' to create a new wallet")
	}

	if manager.IsUnlocked() {
		fmt.Println("✅ Wallet is already unlocked")
		return nil
	}

	fmt.Print("Enter your wallet password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Println("Unlocking wallet...")
	if err := manager.Unlock(string(password)); err != nil {
		return fmt.Errorf("failed to unlock wallet: %w", err)
	}

	fmt.Println("✅ Wallet unlocked successfully!")
	fmt.Println("💡 Use 'incinerator address [chain]' to see your addresses")
	fmt.Println("💡 Use 'incinerator balance [chain]' to check your balances")

	return nil
}
