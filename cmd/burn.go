package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Opikz-Nrdyth/sol-incinerator/api"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/solana"
	"github.com/Opikz-Nrdyth/sol-incinerator/wallet"
)

// Rent-exempt deposit of an SPL token account, reclaimed when the account
// is closed.
const tokenAccountRentLamports = uint64(2_039_280)

// Token accounts closed per transaction. Close instructions are small, but
// each adds an account reference; this stays well under the 1232-byte
// packet limit.
const closeBatchSize = 12

var burnCmd = &cobra.Command{
	Use:   "burn",
	Short: "Close empty Solana token accounts and reclaim rent",
	Long: `Scan your Solana wallet for SPL token accounts with a zero balance and
close them, returning the rent-exempt deposit (~0.002 SOL per account) to
your wallet.

Accounts that still hold tokens are never touched.

Examples:
  incinerator burn            # Scan and close after confirmation
  incinerator burn --dry-run  # Only list what would be closed
  incinerator burn --yes      # Skip the confirmation prompt`,
	RunE: runBurn,
}

func runBurn(cmd *cobra.Command, args []string) error {
	manager := wallet.NewManager()
	client := api.NewClient(api.LoadConfig())

	if !manager.IsUnlocked() {
		return fmt.Errorf("wallet is locked. Run 'incinerator unlock' first")
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	owner, err := manager.GetSolanaAddress()
	if err != nil {
		return fmt.Errorf("failed to get address: %w", err)
	}

	fmt.Println("🔥 Solana Token Account Burn")
	fmt.Printf("🌐 Network: %s\n", networkLabel(manager))
	fmt.Printf("📍 Address: %s\n", owner.String())
	fmt.Println()

	fmt.Println("⏳ Scanning token accounts...")
	accounts, err := client.GetSolanaTokenAccounts(owner.String())
	if err != nil {
		return fmt.Errorf("failed to scan token accounts: %w", err)
	}

	var empty []api.TokenAccount
	var funded int
	for _, account := range accounts {
		if account.IsEmpty() {
			empty = append(empty, account)
		} else {
			funded++
		}
	}

	fmt.Printf("📊 Found %d token accounts: %s empty, %d holding tokens\n",
		len(accounts), color.YellowString("%d", len(empty)), funded)

	if len(empty) == 0 {
		fmt.Println("✅ Nothing to burn. All token accounts hold tokens or none exist.")
		return nil
	}

	reclaimable := tokenAccountRentLamports * uint64(len(empty))
	fmt.Printf("💰 Reclaimable rent: %s\n", color.GreenString("%.9f SOL", solana.LamportsToSOL(reclaimable)))
	fmt.Println()

	for _, account := range empty {
		fmt.Printf("   %s  (mint %s)\n", account.Pubkey, account.Mint)
	}
	fmt.Println()

	if dryRun {
		fmt.Println("💡 Dry run: no accounts were closed.")
		return nil
	}

	if !skipConfirm && !getBurnConfirmation(len(empty)) {
		fmt.Println("❌ Burn cancelled by user")
		return nil
	}

	privateKey, err := manager.GetSolanaKey()
	if err != nil {
		return fmt.Errorf("failed to get private key: %w", err)
	}

	bar := progressbar.NewOptions(len(empty),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetDescription("[cyan]Closing accounts...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:     "[green]=[reset]",
			SaucerHead: "[green]>[reset]",
			BarStart:   "[",
			BarEnd:     "]",
		}),
	)

	var closed int
	var signatures []string
	for start := 0; start < len(empty); start += closeBatchSize {
		end := start + closeBatchSize
		if end > len(empty) {
			end = len(empty)
		}
		batch := empty[start:end]

		targets := make([]solanago.PublicKey, 0, len(batch))
		for _, account := range batch {
			pubkey, err := solana.ParseAddress(account.Pubkey)
			if err != nil {
				return fmt.Errorf("invalid account pubkey from RPC: %w", err)
			}
			targets = append(targets, pubkey)
		}

		tx := solana.CreateCloseAccountsTransaction(privateKey, targets)

		// Fresh blockhash per batch; closing many accounts can outlive a
		// single blockhash window.
		blockhash, err := client.GetSolanaRecentBlockhash()
		if err != nil {
			return fmt.Errorf("failed to get blockhash: %w", err)
		}
		tx.SetRecentBlockhash(blockhash)

		signedTx, err := tx.BuildAndSign()
		if err != nil {
			return fmt.Errorf("failed to sign transaction: %w", err)
		}

		signature, err := client.SendSolanaTransaction(signedTx)
		if err != nil {
			bar.Finish()
			if closed > 0 {
				fmt.Println()
				fmt.Printf("⚠️  Closed %d of %d accounts before the failure.\n", closed, len(empty))
			}
			return fmt.Errorf("failed to send close transaction: %w", err)
		}

		signatures = append(signatures, signature)
		closed += len(batch)
		bar.Add(len(batch))
	}

	bar.Finish()
	fmt.Println()
	fmt.Println()

	reclaimed := tokenAccountRentLamports * uint64(closed)
	fmt.Printf("✅ Closed %s token accounts!\n", color.GreenString("%d", closed))
	fmt.Printf("💰 Reclaimed ~%s\n", color.GreenString("%.9f SOL", solana.LamportsToSOL(reclaimed)))
	for _, signature := range signatures {
		if manager.IsTestnet() {
			fmt.Printf("🔗 https://solscan.io/tx/%s?cluster=devnet\n", signature)
		} else {
			fmt.Printf("🔗 https://solscan.io/tx/%s\n", signature)
		}
	}

	return nil
}

func getBurnConfirmation(count int) bool {
	fmt.Printf("Press y to close %d accounts or n to stop (y/n): ", count)

	var response string
	fmt.Scanln(&response)

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func init() {
	burnCmd.Flags().Bool("dry-run", false, "List closable accounts without closing them")
	burnCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
