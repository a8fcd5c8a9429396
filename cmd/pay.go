package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Opikz-Nrdyth/sol-incinerator/api"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/bitcoin"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/ethereum"
	"github.com/Opikz-Nrdyth/sol-incinerator/chains/solana"
	"github.com/Opikz-Nrdyth/sol-incinerator/wallet"
)

var payCmd = &cobra.Command{
	Use:   "pay [chain] [amount] [address]",
	Short: "Send cryptocurrency",
	Long: `Send cryptocurrency to another address.

Supported chains: eth, btc, sol, ton

Examples:
  incinerator pay eth 0.1 0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6
  incinerator pay btc 0.001 bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh
  incinerator pay sol 1.5 7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU
  incinerator pay ton 2 UQBvW8Z5huBkMJYdnfAEM5JqTNkuWX3diqYENkWsIL0XggGG`,
	Args: cobra.ExactArgs(3),
	RunE: runPay,
}

func runPay(cmd *cobra.Command, args []string) error {
	manager := wallet.NewManager()
	client := api.NewClient(api.LoadConfig())

	if !manager.IsUnlocked() {
		return fmt.Errorf("wallet is locked. Run 'incinerator unlock' first")
	}

	if !getTransactionConfirmation(manager) {
		fmt.Println("❌ Transaction cancelled by user")
		return nil
	}

	chain := strings.ToLower(args[0])
	amountStr := args[1]
	recipientAddress := args[2]

	usdFlag, _ := cmd.Flags().GetBool("usd")

	switch chain {
	case "eth", "ethereum":
		return sendEthereum(manager, client, amountStr, recipientAddress, usdFlag)
	case "btc", "bitcoin":
		return sendBitcoin(manager, client, amountStr, recipientAddress, usdFlag)
	case "sol", "solana":
		return sendSolana(manager, client, amountStr, recipientAddress, usdFlag)
	case "ton":
		return sendTON(manager, client, amountStr, recipientAddress, usdFlag)
	default:
		return fmt.Errorf("unsupported chain: %s. Supported chains: eth, btc, sol, ton", chain)
	}
}

func sendEthereum(manager *wallet.Manager, client *api.Client, amountStr, recipientAddress string, usdFlag bool) error {
	fmt.Println("🔷 Sending Ethereum Transaction")
	fmt.Println()

	recipient, err := ethereum.ParseAddress(recipientAddress)
	if err != nil {
		return err
	}

	senderAddress, err := manager.GetEthereumAddress()
	if err != nil {
		return fmt.Errorf("failed to get sender address: %w", err)
	}

	amount, err := resolveAmount(client, "ethereum", amountStr, usdFlag)
	if err != nil {
		return err
	}

	value := ethereum.EtherToWei(big.NewFloat(amount))

	balance, err := client.GetEthereumBalance(senderAddress.Hex())
	if err != nil {
		return fmt.Errorf("failed to check balance: %w", err)
	}

	if balance.Cmp(value) < 0 {
		return fmt.Errorf("insufficient funds in your Ethereum wallet. You're trying to send %.6f ETH but your balance is only %.6f ETH. Please deposit more ETH to your address (%s) before making this payment",
			ethereum.WeiToEther(value), ethereum.WeiToEther(balance), senderAddress.Hex())
	}

	nonce, err := client.GetEthereumNonce(senderAddress.Hex())
	if err != nil {
		return fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := client.GetEthereumGasPrice()
	if err != nil {
		return fmt.Errorf("failed to get gas price: %w", err)
	}

	// 20% gas price bump for faster inclusion.
	gasPrice.Mul(gasPrice, big.NewInt(120))
	gasPrice.Div(gasPrice, big.NewInt(100))

	gasLimit, err := client.GetEthereumGasEstimate(senderAddress.Hex(), recipient.Hex(), value, nil)
	if err != nil {
		gasLimit = ethereum.EstimateGasLimit(nil)
	}

	tx := ethereum.NewTransaction(nonce, recipient, value, gasLimit, gasPrice, nil)
	if err := ethereum.ValidateTransaction(tx); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	maxFee := new(big.Int).Mul(gasPrice, big.NewInt(int64(gasLimit)))
	totalCost := new(big.Int).Add(value, maxFee)

	if balance.Cmp(totalCost) < 0 {
		return fmt.Errorf("insufficient funds for transaction with gas. You're trying to send %.6f ETH with approximately %.6f ETH in gas fees (total %.6f ETH) but your balance is only %.6f ETH",
			ethereum.WeiToEther(value), ethereum.WeiToEther(maxFee), ethereum.WeiToEther(totalCost), ethereum.WeiToEther(balance))
	}

	fmt.Printf("📊 Transaction Details:\n")
	fmt.Printf("   From:    %s\n", senderAddress.Hex())
	fmt.Printf("   To:      %s\n", recipient.Hex())
	printAmountWithUSD(manager, client, "ethereum", "Amount", ethereum.WeiToEther(value), "%.6f ETH")
	printAmountWithUSD(manager, client, "ethereum", "Max Fee", ethereum.WeiToEther(maxFee), "~%.6f ETH")
	fmt.Printf("   Gas:     %d units\n", gasLimit)
	fmt.Printf("   Gas Price: %.2f Gwei\n", float64(gasPrice.Uint64())/1e9)
	fmt.Printf("   Network: %s\n", manager.GetCurrentNetwork())
	fmt.Println()

	privateKey, err := manager.GetEthereumKey()
	if err != nil {
		return fmt.Errorf("failed to get private key: %w", err)
	}

	signedTx, err := ethereum.SignTransaction(tx, privateKey, client.GetEthereumChainID())
	if err != nil {
		return err
	}

	txHash, err := client.SendEthereumTransaction(signedTx)
	if err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	fmt.Printf("✅ Transaction sent successfully!\n")
	fmt.Printf("📝 Transaction Hash: %s\n", txHash)
	if manager.IsTestnet() {
		fmt.Printf("🔗 Explorer: https://sepolia.etherscan.io/tx/%s\n", txHash)
	} else {
		fmt.Printf("🔗 Explorer: https://etherscan.io/tx/%s\n", txHash)
	}

	return nil
}

func sendBitcoin(manager *wallet.Manager, client *api.Client, amountStr, recipientAddress string, usdFlag bool) error {
	fmt.Println("🟠 Sending Bitcoin Transaction")
	fmt.Println()

	if usdFlag {
		amount, err := resolveAmount(client, "bitcoin", amountStr, true)
		if err != nil {
			return err
		}
		amountStr = fmt.Sprintf("%.8f", amount)
	}

	wif, err := manager.GetBitcoinWIF()
	if err != nil {
		return fmt.Errorf("failed to get private key: %w", err)
	}

	senderAddress, err := manager.GetBitcoinAddress()
	if err != nil {
		return fmt.Errorf("failed to get sender address: %w", err)
	}

	receipt, err := bitcoin.NewSender(client).Send(wif, recipientAddress, amountStr)
	if err != nil {
		var insufficient *bitcoin.InsufficientFundsError
		if errors.As(err, &insufficient) {
			return fmt.Errorf("insufficient funds for transaction with fees. You're trying to send %s with a fee of %s but your available balance is only %s; you are short %s. Deposit more BTC to your address (%s) before making this payment",
				bitcoin.FormatBalance(insufficient.Target),
				bitcoin.FormatBalance(insufficient.Fee),
				bitcoin.FormatBalance(insufficient.Available),
				bitcoin.FormatBalance(insufficient.Shortfall),
				senderAddress.String())
		}

		// BroadcastError already carries the relay's reason verbatim; it
		// tells the user whether resubmitting is safe.
		return err
	}

	fmt.Printf("📊 Transaction Details:\n")
	fmt.Printf("   From:    %s\n", senderAddress.String())
	fmt.Printf("   To:      %s\n", recipientAddress)
	printAmountWithUSD(manager, client, "bitcoin", "Amount", bitcoin.SatoshisToBTC(receipt.Amount), "%.8f BTC")
	printAmountWithUSD(manager, client, "bitcoin", "Fee", bitcoin.SatoshisToBTC(receipt.Fee), "%.8f BTC")
	if receipt.Change > 0 {
		printAmountWithUSD(manager, client, "bitcoin", "Change", bitcoin.SatoshisToBTC(receipt.Change), "%.8f BTC")
	}
	fmt.Println()

	fmt.Printf("✅ Transaction sent successfully!\n")
	fmt.Printf("📝 Transaction Hash: %s\n", receipt.TxID)
	fmt.Printf("🔗 Explorer: https://mempool.space/tx/%s\n", receipt.TxID)

	return nil
}

func sendSolana(manager *wallet.Manager, client *api.Client, amountStr, recipientAddress string, usdFlag bool) error {
	fmt.Println("🟣 Sending Solana Transaction")
	fmt.Println()

	recipient, err := solana.ParseAddress(recipientAddress)
	if err != nil {
		return err
	}

	amount, err := resolveAmount(client, "solana", amountStr, usdFlag)
	if err != nil {
		return err
	}
	value := solana.SOLToLamports(amount)

	senderAddress, err := manager.GetSolanaAddress()
	if err != nil {
		return fmt.Errorf("failed to get sender address: %w", err)
	}

	balance, err := client.GetSolanaBalance(senderAddress.String())
	if err != nil {
		return fmt.Errorf("failed to check balance: %w", err)
	}

	// Solana transaction fees are currently fixed at 5000 lamports.
	const solanaFee = uint64(5000)
	if balance < value+solanaFee {
		return fmt.Errorf("insufficient funds in your Solana wallet. You're trying to send %.9f SOL plus %.9f SOL in fees but your balance is only %.9f SOL. Please deposit more SOL to your address (%s) before making this payment",
			solana.LamportsToSOL(value), solana.LamportsToSOL(solanaFee), solana.LamportsToSOL(balance), senderAddress.String())
	}

	fmt.Printf("📊 Transaction Details:\n")
	fmt.Printf("   From:    %s\n", senderAddress.String())
	fmt.Printf("   To:      %s\n", recipient.String())
	printAmountWithUSD(manager, client, "solana", "Amount", solana.LamportsToSOL(value), "%.9f SOL")
	printAmountWithUSD(manager, client, "solana", "Fee", solana.LamportsToSOL(solanaFee), "%.9f SOL")
	fmt.Printf("   Network: %s\n", manager.GetCurrentNetwork())
	fmt.Println()

	privateKey, err := manager.GetSolanaKey()
	if err != nil {
		return fmt.Errorf("failed to get private key: %w", err)
	}

	fmt.Println("⏳ Preparing transaction...")
	tx := solana.CreateTransferTransaction(privateKey, recipient, value)

	// Fetch the blockhash immediately before signing so it cannot expire
	// between fetch and send.
	fmt.Println("⏳ Getting fresh blockhash and sending immediately...")
	recentBlockhash, err := client.GetSolanaRecentBlockhash()
	if err != nil {
		return fmt.Errorf("failed to get blockhash: %w", err)
	}

	tx.SetRecentBlockhash(recentBlockhash)
	signedTx, err := tx.BuildAndSign()
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	txHash, err := client.SendSolanaTransaction(signedTx)
	if err != nil {
		if strings.Contains(err.Error(), "insufficient funds") || strings.Contains(err.Error(), "0x1") {
			return fmt.Errorf("transaction failed: insufficient funds. Ensure your account has enough SOL for the payment plus network fees")
		}
		if strings.Contains(err.Error(), "BlockhashNotFound") || strings.Contains(err.Error(), "blockhash expired") {
			return fmt.Errorf("transaction failed: blockhash expired. The network is busy, please try again")
		}
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	fmt.Printf("✅ Transaction sent successfully!\n")
	fmt.Printf("📝 Transaction Hash: %s\n", txHash)
	if manager.IsTestnet() {
		fmt.Printf("🔗 Explorer: https://solscan.io/tx/%s?cluster=devnet\n", txHash)
	} else {
		fmt.Printf("🔗 Explorer: https://solscan.io/tx/%s\n", txHash)
	}

	return nil
}

func sendTON(manager *wallet.Manager, client *api.Client, amountStr, recipientAddress string, usdFlag bool) error {
	fmt.Println("💎 Sending TON Transaction")
	fmt.Println()

	if usdFlag {
		amount, err := resolveAmount(client, "the-open-network", amountStr, true)
		if err != nil {
			return err
		}
		amountStr = fmt.Sprintf("%.9f", amount)
	}

	senderAddress, err := manager.GetTONAddress()
	if err != nil {
		return fmt.Errorf("failed to get sender address: %w", err)
	}

	fmt.Printf("📊 Transaction Details:\n")
	fmt.Printf("   From:    %s\n", senderAddress.String())
	fmt.Printf("   To:      %s\n", recipientAddress)
	fmt.Printf("   Amount:  %s TON\n", amountStr)
	fmt.Printf("   Network: %s\n", manager.GetCurrentNetwork())
	fmt.Println()

	privateKey, err := manager.GetTONKey()
	if err != nil {
		return fmt.Errorf("failed to get private key: %w", err)
	}

	fmt.Println("⏳ Sending and waiting for confirmation...")
	if err := client.SendTON(context.Background(), privateKey, recipientAddress, amountStr, ""); err != nil {
		return err
	}

	fmt.Printf("✅ Transaction sent successfully!\n")
	fmt.Printf("🔗 Explorer: https://tonviewer.com/%s\n", senderAddress.String())

	return nil
}

// resolveAmount parses the amount argument, converting from USD when the
// flag is set.
func resolveAmount(client *api.Client, coin, amountStr string, usdFlag bool) (float64, error) {
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}

	if !usdFlag {
		return amount, nil
	}

	price, err := client.GetPrice(coin)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s price: %w", coin, err)
	}
	return amount / price.USD.InexactFloat64(), nil
}

// printAmountWithUSD prints a labeled native amount, with the USD value
// appended on mainnet when the price lookup succeeds.
func printAmountWithUSD(manager *wallet.Manager, client *api.Client, coin, label string, amount float64, format string) {
	native := fmt.Sprintf(format, amount)
	if manager.IsTestnet() {
		fmt.Printf("   %s:  %s\n", label, native)
		return
	}

	price, err := client.GetPrice(coin)
	if err != nil {
		fmt.Printf("   %s:  %s\n", label, native)
		return
	}
	fmt.Printf("   %s:  %s (~$%.2f)\n", label, native, amount*price.USD.InexactFloat64())
}

func getTransactionConfirmation(manager *wallet.Manager) bool {
	fmt.Println()
	if manager.IsTestnet() {
		fmt.Printf("⚠️ You are on testnet (Ethereum Sepolia Testnet / Solana Devnet). By confirming this transaction no real funds will be sent to this address.\n")
	} else {
		fmt.Printf("🚨 You are on main network. By confirming this transaction real funds will be sent to this address.\n")
	}

	fmt.Printf("Press y to confirm or n to stop (y/n): ")

	var response string
	fmt.Scanln(&response)

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func init() {
	payCmd.Flags().Bool("usd", false, "Specify amount in USD")
}
