package wallet

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/accounts"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
)

const hardenedOffset = 0x80000000

// hdKey is a BIP-32 extended key. Only the private key and chain code
// matter for derivation; metadata like depth and fingerprints is not
// tracked because nothing here exports xpubs.
type hdKey struct {
	privateKey []byte
	chainCode  []byte
}

// deriveEthereumKey derives a secp256k1 key for the given BIP-44 path.
func deriveEthereumKey(seed []byte, path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	key, err := newMasterKey(seed)
	if err != nil {
		return nil, err
	}

	for _, childNum := range path {
		key, err = deriveChild(key, childNum)
		if err != nil {
			return nil, err
		}
	}

	privateKey, err := ethcrypto.ToECDSA(key.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to ECDSA key: %w", err)
	}
	return privateKey, nil
}

// deriveBitcoinKey derives a secp256k1 key for a string derivation path
// like "m/44'/0'/0'/0/0".
func deriveBitcoinKey(seed []byte, path string) (*btcec.PrivateKey, error) {
	key, err := newMasterKey(seed)
	if err != nil {
		return nil, err
	}

	components, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	for _, childNum := range components {
		key, err = deriveChild(key, childNum)
		if err != nil {
			return nil, err
		}
	}

	privateKey, _ := btcec.PrivKeyFromBytes(key.privateKey)
	return privateKey, nil
}

// deriveEd25519Key derives an ed25519 key for chains that do not use
// secp256k1. Ed25519 has no normal (non-hardened) derivation, so the path
// is mixed into the seed as HMAC context instead of walking BIP-32 children.
func deriveEd25519Key(seed []byte, path string) (ed25519.PrivateKey, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("empty seed")
	}

	h := hmac.New(sha512.New, []byte("ed25519 seed"))
	h.Write(seed)
	h.Write([]byte(path))
	sum := h.Sum(nil)

	return ed25519.NewKeyFromSeed(sum[:32]), nil
}

// deriveSolanaKey derives a Solana key for a string derivation path.
func deriveSolanaKey(seed []byte, path string) (solana.PrivateKey, error) {
	key, err := deriveEd25519Key(seed, path)
	if err != nil {
		return nil, err
	}
	return solana.PrivateKey(key), nil
}

func newMasterKey(seed []byte) (*hdKey, error) {
	sum := hmacSHA512([]byte("Bitcoin seed"), seed)

	key := &hdKey{
		privateKey: sum[:32],
		chainCode:  sum[32:],
	}
	if !isValidPrivateKey(key.privateKey) {
		return nil, fmt.Errorf("invalid master key for seed")
	}
	return key, nil
}

func deriveChild(parent *hdKey, childNum uint32) (*hdKey, error) {
	var data []byte
	if childNum >= hardenedOffset {
		data = append([]byte{0x00}, parent.privateKey...)
	} else {
		data = compressedPublicKey(parent.privateKey)
	}
	data = binary.BigEndian.AppendUint32(data, childNum)

	sum := hmacSHA512(parent.chainCode, data)
	il := new(big.Int).SetBytes(sum[:32])

	n := ethcrypto.S256().Params().N
	if il.Cmp(n) >= 0 {
		return nil, fmt.Errorf("derived key out of range")
	}

	child := new(big.Int).SetBytes(parent.privateKey)
	child.Add(child, il)
	child.Mod(child, n)
	if child.Sign() == 0 {
		return nil, fmt.Errorf("derived zero key")
	}

	return &hdKey{
		privateKey: child.FillBytes(make([]byte, 32)),
		chainCode:  sum[32:],
	}, nil
}

func compressedPublicKey(privateKey []byte) []byte {
	x, y := ethcrypto.S256().ScalarBaseMult(privateKey)
	prefix := byte(0x02)
	if y.Bit(0) == 1 {
		prefix = 0x03
	}
	return append([]byte{prefix}, x.FillBytes(make([]byte, 32))...)
}

func hmacSHA512(key, data []byte) []byte {
	h := hmac.New(sha512.New, key)
	h.Write(data)
	return h.Sum(nil)
}

func isValidPrivateKey(privateKey []byte) bool {
	if len(privateKey) != 32 {
		return false
	}
	k := new(big.Int).SetBytes(privateKey)
	return k.Sign() != 0 && k.Cmp(ethcrypto.S256().Params().N) < 0
}

// parsePath parses "m/44'/0'/0'/0/0" into child numbers.
func parsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, fmt.Errorf("invalid derivation path: %s", path)
	}

	components := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")

		num, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path component %q: %w", part, err)
		}
		if hardened {
			num += hardenedOffset
		}
		components = append(components, uint32(num))
	}
	return components, nil
}
