// Package wallet manages the encrypted vault, the unlock session, and
// per-chain key derivation from the BIP-39 recovery phrase.
package wallet

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/tyler-smith/go-bip39"
	tonaddr "github.com/xssnick/tonutils-go/address"
	tonwallet "github.com/xssnick/tonutils-go/ton/wallet"

	"github.com/Opikz-Nrdyth/sol-incinerator/crypto"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"

	// Derivation paths for different chains (mainnet)
	EthDerivationPath = "m/44'/60'/0'/0/0"
	BtcDerivationPath = "m/44'/0'/0'/0/0"
	SolDerivationPath = "m/44'/501'/0'/0'"
	TonDerivationPath = "m/44'/607'/0'"

	// Derivation paths for testnet
	EthTestnetDerivationPath = "m/44'/1'/0'/0/0"  // coin type 1 for testnet
	SolTestnetDerivationPath = "m/44'/501'/0'/1'" // different account index for testnet
	TonTestnetDerivationPath = "m/44'/607'/1'"

	// Session duration in minutes
	SessionDuration = 30
)

// SessionData holds the wallet session information.
type SessionData struct {
	Token      string    `json:"token"`
	Mnemonic   string    `json:"mnemonic"`
	Expiration time.Time `json:"expiration"`
	Network    string    `json:"network"`
}

// Manager handles wallet operations and key derivation.
type Manager struct {
	vaultPath   string
	sessionPath string
	vault       *crypto.Vault
	mnemonic    string
	mu          sync.RWMutex
	unlocked    bool
	network     string
}

// NewManager creates a wallet manager bound to ~/.incinerator.
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}

	network := NetworkMainnet
	networkPath := filepath.Join(homeDir, ".incinerator", "network.txt")
	if data, err := os.ReadFile(networkPath); err == nil {
		if n := strings.TrimSpace(string(data)); n == NetworkMainnet || n == NetworkTestnet {
			network = n
		}
	}

	return &Manager{
		vaultPath:   filepath.Join(homeDir, ".incinerator", "wallet.vault"),
		sessionPath: filepath.Join(homeDir, ".incinerator", "session.json"),
		network:     network,
	}
}

func generateSessionToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}

func (m *Manager) createSession() error {
	token, err := generateSessionToken()
	if err != nil {
		return fmt.Errorf("failed to generate session token: %w", err)
	}

	session := SessionData{
		Token:      token,
		Mnemonic:   m.mnemonic,
		Expiration: time.Now().Add(SessionDuration * time.Minute),
		Network:    m.network,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.sessionPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// loadSession loads the session if it exists, is unexpired, and was
// created for the current network.
func (m *Manager) loadSession() bool {
	data, err := os.ReadFile(m.sessionPath)
	if err != nil {
		return false
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		os.Remove(m.sessionPath)
		return false
	}

	if time.Now().After(session.Expiration) {
		os.Remove(m.sessionPath)
		return false
	}

	if session.Network != m.network {
		return false
	}

	m.mnemonic = session.Mnemonic
	m.unlocked = true
	return true
}

func (m *Manager) clearSession() {
	os.Remove(m.sessionPath)
}

// Initialize creates a new wallet with a fresh 24-word mnemonic.
func (m *Manager) Initialize(password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return fmt.Errorf("failed to generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return fmt.Errorf("failed to generate mnemonic: %w", err)
	}

	return m.storeWallet(mnemonic, password)
}

// ImportFromMnemonic imports a wallet from an existing mnemonic.
func (m *Manager) ImportFromMnemonic(mnemonic, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !bip39.IsMnemonicValid(mnemonic) {
		return fmt.Errorf("invalid mnemonic")
	}

	return m.storeWallet(mnemonic, password)
}

// storeWallet seals the mnemonic, persists the vault and opens a session.
// Caller holds the write lock.
func (m *Manager) storeWallet(mnemonic, password string) error {
	vault, err := crypto.NewVault(mnemonic, password)
	if err != nil {
		return fmt.Errorf("failed to create vault: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.vaultPath), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := m.saveVault(vault); err != nil {
		return err
	}

	m.vault = vault
	m.mnemonic = mnemonic
	m.unlocked = true

	if err := m.createSession(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Unlock unlocks the wallet with the provided password.
func (m *Manager) Unlock(password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadSession() {
		return nil
	}

	if m.vault == nil {
		vault, err := m.loadVault()
		if err != nil {
			return fmt.Errorf("failed to load vault: %w", err)
		}
		m.vault = vault
	}

	mnemonic, err := m.vault.Decrypt(password)
	if err != nil {
		return fmt.Errorf("invalid password")
	}

	m.mnemonic = mnemonic
	m.unlocked = true

	if err := m.createSession(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Lock locks the wallet and clears sensitive data from memory.
func (m *Manager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unlocked = false
	m.mnemonic = ""
	m.clearSession()
}

// IsUnlocked returns whether the wallet is currently unlocked.
func (m *Manager) IsUnlocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unlocked && m.mnemonic != "" {
		return true
	}
	return m.loadSession()
}

// GetMnemonic returns the current mnemonic (only if unlocked).
func (m *Manager) GetMnemonic() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.unlocked && m.mnemonic != "" {
		return m.mnemonic, nil
	}
	if !m.loadSession() {
		return "", fmt.Errorf("wallet is locked")
	}
	return m.mnemonic, nil
}

// seed returns the BIP-39 seed, loading a session if needed. Caller holds
// at least the read lock.
func (m *Manager) seed() ([]byte, error) {
	if !m.unlocked {
		if !m.loadSession() {
			return nil, fmt.Errorf("wallet is locked")
		}
	}
	return bip39.NewSeed(m.mnemonic, ""), nil
}

// GetEthereumKey returns the Ethereum private key.
func (m *Manager) GetEthereumKey() (*ecdsa.PrivateKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seed, err := m.seed()
	if err != nil {
		return nil, err
	}

	derivationPath := EthDerivationPath
	if m.network == NetworkTestnet {
		derivationPath = EthTestnetDerivationPath
	}

	path, err := accounts.ParseDerivationPath(derivationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse derivation path: %w", err)
	}

	key, err := deriveEthereumKey(seed, path)
	if err != nil {
		return nil, fmt.Errorf("failed to derive Ethereum key: %w", err)
	}
	return key, nil
}

// GetEthereumAddress returns the Ethereum address.
func (m *Manager) GetEthereumAddress() (common.Address, error) {
	key, err := m.GetEthereumKey()
	if err != nil {
		return common.Address{}, err
	}

	publicKey := key.Public().(*ecdsa.PublicKey)
	return ethcrypto.PubkeyToAddress(*publicKey), nil
}

// GetBitcoinKey returns the Bitcoin private key. Bitcoin is mainnet only.
func (m *Manager) GetBitcoinKey() (*btcec.PrivateKey, error) {
	if m.network == NetworkTestnet {
		return nil, fmt.Errorf("bitcoin is not supported in testnet mode")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	seed, err := m.seed()
	if err != nil {
		return nil, err
	}

	key, err := deriveBitcoinKey(seed, BtcDerivationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive Bitcoin key: %w", err)
	}
	return key, nil
}

// GetBitcoinWIF returns the Bitcoin key in WIF encoding, which is what the
// send pipeline consumes.
func (m *Manager) GetBitcoinWIF() (string, error) {
	key, err := m.GetBitcoinKey()
	if err != nil {
		return "", err
	}

	wif, err := btcutil.NewWIF(key, &chaincfg.MainNetParams, true)
	if err != nil {
		return "", fmt.Errorf("failed to encode WIF: %w", err)
	}
	return wif.String(), nil
}

// GetBitcoinAddress returns the native-segwit Bitcoin address.
func (m *Manager) GetBitcoinAddress() (btcutil.Address, error) {
	key, err := m.GetBitcoinKey()
	if err != nil {
		return nil, err
	}

	witnessProg := btcutil.Hash160(key.PubKey().SerializeCompressed())
	address, err := btcutil.NewAddressWitnessPubKeyHash(witnessProg, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bitcoin address: %w", err)
	}
	return address, nil
}

// GetSolanaKey returns the Solana private key.
func (m *Manager) GetSolanaKey() (solana.PrivateKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seed, err := m.seed()
	if err != nil {
		return nil, err
	}

	derivationPath := SolDerivationPath
	if m.network == NetworkTestnet {
		derivationPath = SolTestnetDerivationPath
	}

	key, err := deriveSolanaKey(seed, derivationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive Solana key: %w", err)
	}
	return key, nil
}

// GetSolanaAddress returns the Solana address.
func (m *Manager) GetSolanaAddress() (solana.PublicKey, error) {
	key, err := m.GetSolanaKey()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return key.PublicKey(), nil
}

// GetTONKey returns the TON private key.
func (m *Manager) GetTONKey() (ed25519.PrivateKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seed, err := m.seed()
	if err != nil {
		return nil, err
	}

	derivationPath := TonDerivationPath
	if m.network == NetworkTestnet {
		derivationPath = TonTestnetDerivationPath
	}

	key, err := deriveEd25519Key(seed, derivationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive TON key: %w", err)
	}
	return key, nil
}

// GetTONAddress returns the address of the V4R2 wallet contract for the
// TON key. Derivation is offline; the contract may not be deployed yet.
func (m *Manager) GetTONAddress() (*tonaddr.Address, error) {
	key, err := m.GetTONKey()
	if err != nil {
		return nil, err
	}

	pub := key.Public().(ed25519.PublicKey)
	addr, err := tonwallet.AddressFromPubKey(pub, tonwallet.V4R2, tonwallet.DefaultSubwallet)
	if err != nil {
		return nil, fmt.Errorf("failed to derive TON address: %w", err)
	}
	return addr, nil
}

func (m *Manager) saveVault(vault *crypto.Vault) error {
	data, err := json.Marshal(vault)
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}

	if err := os.WriteFile(m.vaultPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault file: %w", err)
	}
	return nil
}

func (m *Manager) loadVault() (*crypto.Vault, error) {
	data, err := os.ReadFile(m.vaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}

	var vault crypto.Vault
	if err := json.Unmarshal(data, &vault); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault: %w", err)
	}
	return &vault, nil
}

// VaultExists checks if a vault file exists.
func (m *Manager) VaultExists() bool {
	_, err := os.Stat(m.vaultPath)
	return err == nil
}

// IsTestnet returns true if the wallet is in testnet mode.
func (m *Manager) IsTestnet() bool {
	return m.network == NetworkTestnet
}

// GetCurrentNetwork returns the current network (mainnet or testnet).
func (m *Manager) GetCurrentNetwork() string {
	return m.network
}
