// Package solana builds and signs Solana transactions: plain SOL transfers
// and SPL token-account closes (the rent-reclaim path).
package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/mr-tron/base58"
)

// Transaction collects instructions and signers before the blockhash is
// known. The blockhash is fetched as late as possible and set just before
// BuildAndSign so it does not expire in flight.
type Transaction struct {
	Instructions    []solana.Instruction
	Signers         []solana.PrivateKey
	FeePayer        solana.PublicKey
	RecentBlockhash string
}

func NewTransaction(feePayer solana.PublicKey) *Transaction {
	return &Transaction{
		Instructions: make([]solana.Instruction, 0),
		Signers:      make([]solana.PrivateKey, 0),
		FeePayer:     feePayer,
	}
}

func (tx *Transaction) AddTransferInstruction(from, to solana.PublicKey, lamports uint64) {
	instruction := system.NewTransferInstruction(lamports, from, to).Build()
	tx.Instructions = append(tx.Instructions, instruction)
}

// AddCloseAccountInstruction closes an SPL token account and sends its rent
// lamports back to the owner.
func (tx *Transaction) AddCloseAccountInstruction(account, owner solana.PublicKey) {
	instruction := token.NewCloseAccountInstructionBuilder().
		SetAccount(account).
		SetDestinationAccount(owner).
		SetOwnerAccount(owner).
		Build()
	tx.Instructions = append(tx.Instructions, instruction)
}

func (tx *Transaction) AddSigner(signer solana.PrivateKey) {
	tx.Signers = append(tx.Signers, signer)
}

func (tx *Transaction) SetRecentBlockhash(blockhash string) {
	tx.RecentBlockhash = blockhash
}

// BuildAndSign assembles the transaction, signs it with every registered
// signer and returns it base58-encoded for sendTransaction.
func (tx *Transaction) BuildAndSign() (string, error) {
	if tx.RecentBlockhash == "" {
		return "", fmt.Errorf("blockhash is empty")
	}

	blockhash, err := solana.HashFromBase58(tx.RecentBlockhash)
	if err != nil {
		return "", fmt.Errorf("invalid blockhash format: %w", err)
	}

	if len(tx.Instructions) == 0 {
		return "", fmt.Errorf("no instructions in transaction")
	}

	stx, err := solana.NewTransaction(
		tx.Instructions,
		blockhash,
		solana.TransactionPayer(tx.FeePayer),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}

	if len(tx.Signers) == 0 {
		return "", fmt.Errorf("no signers provided for transaction")
	}

	_, err = stx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for _, signer := range tx.Signers {
			if key.Equals(signer.PublicKey()) {
				return &signer
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	serialized, err := stx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}

	return base58.Encode(serialized), nil
}

// CreateTransferTransaction prepares a SOL transfer; the caller sets a
// fresh blockhash right before signing.
func CreateTransferTransaction(from solana.PrivateKey, to solana.PublicKey, lamports uint64) *Transaction {
	tx := NewTransaction(from.PublicKey())
	tx.AddTransferInstruction(from.PublicKey(), to, lamports)
	tx.AddSigner(from)
	return tx
}

// CreateCloseAccountsTransaction prepares a transaction closing a batch of
// token accounts owned by the key; rent flows back to the owner.
func CreateCloseAccountsTransaction(owner solana.PrivateKey, accounts []solana.PublicKey) *Transaction {
	tx := NewTransaction(owner.PublicKey())
	for _, account := range accounts {
		tx.AddCloseAccountInstruction(account, owner.PublicKey())
	}
	tx.AddSigner(owner)
	return tx
}

func ParseAddress(address string) (solana.PublicKey, error) {
	pubKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid Solana address (%s): %w", address, err)
	}
	return pubKey, nil
}

func LamportsToSOL(lamports uint64) float64 {
	return float64(lamports) / 1000000000.0
}

func SOLToLamports(sol float64) uint64 {
	return uint64(sol * 1000000000.0)
}

func FormatBalance(lamports uint64) string {
	return fmt.Sprintf("%.9f SOL", LamportsToSOL(lamports))
}

func ValidateAddress(address string) error {
	_, err := ParseAddress(address)
	return err
}
