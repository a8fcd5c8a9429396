package api

// network type constants
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// EVM chain IDs for EIP-155 signing
const (
	MainnetChainID = 1
	SepoliaChainID = 11155111
)

// RPC endpoints
const (
	// mainnet rpc's
	MainnetEthereumRPC = "https://ethereum-rpc.publicnode.com"
	MainnetSolanaRPC   = "https://api.mainnet-beta.solana.com"
	MainnetMempoolAPI  = "https://mempool.space/api"
	MainnetTONConfig   = "https://ton.org/global.config.json"

	// testnet rpc's
	TestnetEthereumRPC = "https://ethereum-sepolia.publicnode.com"
	TestnetSolanaRPC   = "https://api.devnet.solana.com"
	TestnetTONConfig   = "https://ton-blockchain.github.io/testnet-global.config.json"
	// bitcoin is not supported for testnet
)
