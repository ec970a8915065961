package walletmanager

import (
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type WalletManager struct {
	log                    *slog.Logger
	Client                 RPCClient
	Commitment             rpc.CommitmentType
	ConfirmationStatusType rpc.ConfirmationStatusType
	ConfirmationTimeout    time.Duration
	ConfirmationDelay      time.Duration
	SkipPreflight          bool
}

type Option func(*WalletManager)

func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(wm *WalletManager) {
		wm.Commitment = commitment
	}
}

func WithConfirmationStatus(status rpc.ConfirmationStatusType) Option {
	return func(wm *WalletManager) {
		wm.ConfirmationStatusType = status
	}
}

func WithConfirmationTimeout(timeout time.Duration) Option {
	return func(wm *WalletManager) {
		wm.ConfirmationTimeout = timeout
	}
}

func WithConfirmationDelay(delay time.Duration) Option {
	return func(wm *WalletManager) {
		wm.ConfirmationDelay = delay
	}
}

func WithSkipPreflight(skip bool) Option {
	return func(wm *WalletManager) {
		wm.SkipPreflight = skip
	}
}

type SendLamportsInstructionParams struct {
	From     solana.PrivateKey
	To       solana.PublicKey
	Lamports uint64
}

type SendSolInstructionParams struct {
	From solana.PrivateKey
	To   solana.PublicKey
	Sol  float64
}

func (params *SendSolInstructionParams) toLamports() SendLamportsInstructionParams {
	return SendLamportsInstructionParams{
		params.From,
		params.To,
		SolToLamports(params.Sol),
	}
}

type SendTokensInstructionParams struct {
	From   solana.PrivateKey
	To     solana.PublicKey
	Mint   solana.PublicKey
	Amount uint64
}

// Mint is a freshly created SPL token mint together with the owner's
// associated token account holding the initial supply.
type Mint struct {
	Address      solana.PublicKey
	TokenAccount solana.PublicKey
	Signature    solana.Signature
}
