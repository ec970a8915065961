package walletmanager

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

var (
	ErrNoSigners           = errors.New("no signers")
	ErrTransactionRejected = errors.New("transaction rejected")
	ErrConfirmationTimeout = errors.New("confirmation timeout")

	errNotConfirmed = errors.New("not confirmed yet")
)

func NewWalletManager(log *slog.Logger, client RPCClient, opts ...Option) *WalletManager {
	wm := &WalletManager{
		log:                    log,
		Client:                 client,
		Commitment:             rpc.CommitmentFinalized,
		ConfirmationStatusType: rpc.ConfirmationStatusFinalized,
		ConfirmationTimeout:    30 * time.Second,
		ConfirmationDelay:      5 * time.Second,
	}
	for _, opt := range opts {
		opt(wm)
	}
	if wm.log == nil {
		wm.log = slog.New(slog.DiscardHandler)
	}
	return wm
}

func (wm *WalletManager) SendAndConfirmInstructions(
	ctx context.Context,
	feePayer solana.PublicKey,
	instructions []solana.Instruction,
	signers []solana.PrivateKey,
) (solana.Signature, error) {
	if len(signers) == 0 {
		return solana.Signature{}, ErrNoSigners
	}
	recent, err := wm.Client.GetLatestBlockhash(ctx, wm.Commitment)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to get latest blockhash")
	}
	tx, err := solana.NewTransaction(instructions, recent.Value.Blockhash, solana.TransactionPayer(feePayer))
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to build transaction")
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for _, candidate := range signers {
			if candidate.PublicKey().Equals(key) {
				return &candidate
			}
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to sign transaction")
	}
	return wm.SendAndConfirmTransaction(ctx, tx)
}

func (wm *WalletManager) SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := wm.Client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       wm.SkipPreflight,
		PreflightCommitment: wm.Commitment,
	})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to send transaction")
	}
	wm.log.Debug("--> Transaction sent", "sig", sig)
	return wm.AwaitSignaturesConfirmation(ctx, sig)
}

// AwaitSignaturesConfirmation polls until one of signatures reaches the
// configured confirmation status and returns it.
func (wm *WalletManager) AwaitSignaturesConfirmation(ctx context.Context, signatures ...solana.Signature) (solana.Signature, error) {
	if len(signatures) == 0 {
		return solana.Signature{}, errors.New("signatures array is empty")
	}
	start := time.Now()
	sig, err := backoff.Retry(ctx, func() (solana.Signature, error) {
		result, err := wm.Client.GetSignatureStatuses(ctx, true, signatures...)
		if err != nil {
			return solana.Signature{}, err
		}
		for idx, res := range result.Value {
			if res == nil || idx >= len(signatures) {
				continue
			}
			if res.Err != nil {
				return solana.Signature{}, backoff.Permanent(errors.Wrapf(ErrTransactionRejected, "%s: %v", signatures[idx], res.Err))
			}
			if reached(res.ConfirmationStatus, wm.ConfirmationStatusType) {
				return signatures[idx], nil
			}
		}
		return solana.Signature{}, errNotConfirmed
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(wm.ConfirmationDelay)),
		backoff.WithMaxElapsedTime(wm.ConfirmationTimeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			wm.log.Debug("--> Still waiting for confirmation", "status", wm.ConfirmationStatusType, "elapsed", time.Since(start), "err", err)
		}),
	)
	if err != nil {
		if errors.Is(err, errNotConfirmed) {
			return solana.Signature{}, errors.Wrapf(ErrConfirmationTimeout, "%s after %s", signatures[0], wm.ConfirmationTimeout)
		}
		return solana.Signature{}, err
	}
	wm.log.Debug("--> Transaction confirmed", "sig", sig, "status", wm.ConfirmationStatusType, "duration", time.Since(start))
	return sig, nil
}
