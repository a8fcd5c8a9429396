// Package crypto implements the encrypted vault that stores the wallet
// recovery phrase at rest. Keys are derived with scrypt and the payload is
// sealed with AES-256-GCM.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	ScryptN = 32768 // 2^15
	ScryptR = 8
	ScryptP = 1
	KeyLen  = 32 // AES-256

	saltLen  = 32
	nonceLen = 12

	vaultVersion = 1
)

// Vault is the on-disk form of the sealed recovery phrase. The GCM tag is
// part of Data, so tampering with any field makes decryption fail.
type Vault struct {
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Data    []byte `json:"data"`
}

type vaultPayload struct {
	Mnemonic string `json:"mnemonic"`
}

// NewVault seals a mnemonic under a password.
func NewVault(mnemonic, password string) (*Vault, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	plaintext, err := json.Marshal(vaultPayload{Mnemonic: mnemonic})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize vault payload: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	return &Vault{
		Version: vaultVersion,
		Salt:    salt,
		Nonce:   nonce,
		Data:    aead.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// Decrypt opens the vault and returns the mnemonic. A wrong password fails
// the GCM authentication check.
func (v *Vault) Decrypt(password string) (string, error) {
	key, err := deriveKey(password, v.Salt)
	if err != nil {
		return "", err
	}
	defer clearBytes(key)

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(nil, v.Nonce, v.Data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt vault: %w", err)
	}

	var payload vaultPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return "", fmt.Errorf("failed to deserialize vault payload: %w", err)
	}

	return payload.Mnemonic, nil
}

// ValidatePassword reports whether the password opens the vault.
func (v *Vault) ValidatePassword(password string) bool {
	_, err := v.Decrypt(password)
	return err == nil
}

func deriveKey(password string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, ScryptN, ScryptR, ScryptP, KeyLen)
	if err != nil {
		return nil, fmt.Errorf("scrypt key derivation failed: %w", err)
	}
	return key, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
