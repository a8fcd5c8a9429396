package api

// API client.
//
// Files:
//   config.go    - RPC endpoints and network constants
//   types.go     - Struct definitions (price data, token accounts, RPC envelopes)
//   base.go      - Core client functionality (Config, Client, helpers)
//   ethereum.go  - Ethereum-specific functions (balance, nonce, gas, send)
//   bitcoin.go   - Bitcoin-specific functions (balance, utxos, fee rate, broadcast)
//   solana.go    - Solana-specific functions (balance, blockhash, token accounts, send)
//   ton.go       - TON-specific functions (balance, transfer)
//
// Usage:
//   client := api.NewClient(api.LoadConfig())
//   balance, err := client.GetEthereumBalance(address)
//   utxos, err := client.GetBitcoinUTXOs(address)
//   accounts, err := client.GetSolanaTokenAccounts(owner)
//
// Rate-limited endpoints (Solana RPC, mempool.space) are wrapped with the
// retry package; the Bitcoin broadcast is deliberately not.
