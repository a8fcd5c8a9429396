package cmd

import (
	"context"
	"crypto/ed25519"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Opikz-Nrdyth/sol-incinerator/api"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/bitcoin"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/ethereum"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/solana"
	"github.com/Opikz-Nrdyth/sol-incinerator/wallet"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export wallet data",
	Long: `Export your wallet addresses and balances.

File formats:
  --csv        Export to CSV format (default)
  --json       Export to JSON format

Data exported:
  • All supported currencies (ETH, BTC, SOL, TON)
  • Current balances with USD values
  • Data from your current network (mainnet or testnet)

Examples:
  incinerator export                # Export to CSV (default)
  incinerator export --json         # Export to JSON
  incinerator export --csv --json   # Export to both formats`,
	RunE: runExport,
}

var (
	csvFlag  bool
	jsonFlag bool
)

func init() {
	exportCmd.Flags().BoolVar(&csvFlag, "csv", false, "Export to CSV format")
	exportCmd.Flags().BoolVar(&jsonFlag, "json", false, "Export to JSON format")
}

// export structure
type ExportData struct {
	ExportDate     string         `json:"export_date"`
	CurrentNetwork string         `json:"current_network"`
	Currencies     []CurrencyData `json:"currencies"`
}

// currency data
type CurrencyData struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Balance  string `json:"balance"`
	USDValue string `json:"usd_value"`
	Address  string `json:"address"`
}

func runExport(cmd *cobra.Command, args []string) error {
	manager := wallet.NewManager()
	client := api.NewClient(api.LoadConfig())
	if !manager.IsUnlocked() {
		return fmt.Errorf("wallet is locked. Run 'incinerator unlock' first")
	}
	if !csvFlag && !jsonFlag {
		csvFlag = true
	}
	currentNetwork := manager.GetCurrentNetwork()

	fmt.Printf("🌐 Current Network: %s\n", strings.ToUpper(currentNetwork))
	fmt.Printf("📊 Exporting %s data...\n", strings.ToUpper(currentNetwork))
	fmt.Println()

	exportData := &ExportData{
		ExportDate:     time.Now().Format("2006-01-02 15:04:05"),
		CurrentNetwork: currentNetwork,
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetDescription("[cyan][1/2][reset] Collecting balances..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:     "[green]=[reset]",
			SaucerHead: "[green]>[reset]",
			BarStart:   "[",
			BarEnd:     "]",
		}),
	)

	if err := collectCurrencies(manager, client, exportData, bar); err != nil {
		return fmt.Errorf("failed to collect data: %w", err)
	}

	bar.Set(80)
	bar.Describe("[cyan][2/2][reset] Writing export files...")
	exportDir, err := prepareExportDirectory()
	if err != nil {
		return fmt.Errorf("failed to prepare export directory: %w", err)
	}

	if err := writeExportFiles(exportData, exportDir); err != nil {
		return fmt.Errorf("failed to write export files: %w", err)
	}

	bar.Set(100)
	bar.Describe("[green][✓][reset] Export completed!")
	fmt.Println()

	fmt.Println("📁 Export completed successfully!")
	fmt.Printf("📍 Files saved to: %s\n", exportDir)
	fmt.Println()
	fmt.Println("📊 Export Summary:")
	fmt.Printf("   Network: %s\n", strings.ToUpper(currentNetwork))
	fmt.Printf("   Currencies: %d\n", len(exportData.Currencies))

	return nil
}

func collectCurrencies(manager *wallet.Manager, client *api.Client, data *ExportData, bar *progressbar.ProgressBar) error {
	// Each chain's failure degrades to an empty row rather than aborting
	// the whole export.

	if address, err := manager.GetEthereumAddress(); err == nil {
		row := CurrencyData{Symbol: "ETH", Name: "Ethereum", Address: address.Hex()}
		if balance, err := client.GetEthereumBalance(address.Hex()); err == nil {
			row.Balance = ethereum.FormatBalance(balance)
			row.USDValue = usdValue(manager, client, "ethereum", ethereum.WeiToEther(balance))
		}
		data.Currencies = append(data.Currencies, row)
	}
	bar.Set(20)

	if !manager.IsTestnet() {
		if address, err := manager.GetBitcoinAddress(); err == nil {
			row := CurrencyData{Symbol: "BTC", Name: "Bitcoin", Address: address.String()}
			if balance, err := client.GetBitcoinBalance(address.String()); err == nil {
				row.Balance = bitcoin.FormatBalance(balance)
				row.USDValue = usdValue(manager, client, "bitcoin", bitcoin.SatoshisToBTC(balance))
			}
			data.Currencies = append(data.Currencies, row)
		}
	}
	bar.Set(40)

	if address, err := manager.GetSolanaAddress(); err == nil {
		row := CurrencyData{Symbol: "SOL", Name: "Solana", Address: address.String()}
		if balance, err := client.GetSolanaBalance(address.String()); err == nil {
			row.Balance = solana.FormatBalance(balance)
			row.USDValue = usdValue(manager, client, "solana", solana.LamportsToSOL(balance))
		}
		data.Currencies = append(data.Currencies, row)
	}
	bar.Set(60)

	if address, err := manager.GetTONAddress(); err == nil {
		row := CurrencyData{Symbol: "TON", Name: "TON", Address: address.String()}
		if key, err := manager.GetTONKey(); err == nil {
			if balance, err := client.GetTONBalance(context.Background(), key.Public().(ed25519.PublicKey)); err == nil {
				row.Balance = balance.String() + " TON"
				if tonAmount, err := balanceFloat(balance.String()); err == nil {
					row.USDValue = usdValue(manager, client, "the-open-network", tonAmount)
				}
			}
		}
		data.Currencies = append(data.Currencies, row)
	}
	bar.Set(75)

	return nil
}

func usdValue(manager *wallet.Manager, client *api.Client, coin string, amount float64) string {
	if manager.IsTestnet() {
		return ""
	}
	price, err := client.GetPrice(coin)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("$%.2f", amount*price.USD.InexactFloat64())
}

func prepareExportDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	exportDir := filepath.Join(homeDir, ".incinerator", "exports", time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(exportDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return exportDir, nil
}

func writeExportFiles(data *ExportData, exportDir string) error {
	if csvFlag {
		if err := writeCSVExport(data, filepath.Join(exportDir, "wallet.csv")); err != nil {
			return err
		}
	}
	if jsonFlag {
		if err := writeJSONExport(data, filepath.Join(exportDir, "wallet.json")); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVExport(data *ExportData, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Symbol", "Name", "Balance", "USD Value", "Address"}); err != nil {
		return err
	}
	for _, currency := range data.Currencies {
		record := []string{currency.Symbol, currency.Name, currency.Balance, currency.USDValue, currency.Address}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONExport(data *ExportData, path string) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return os.WriteFile(path, encoded, 0600)
}
