package walletmanager

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Airdrop requests lamports from the cluster faucet and waits for the
// airdrop to confirm. Only localnet, devnet and testnet have a faucet.
func (wm *WalletManager) Airdrop(ctx context.Context, to solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := wm.Client.RequestAirdrop(ctx, to, lamports, wm.Commitment)
	if err != nil {
		return solana.Signature{}, errors.Wrapf(err, "failed to request airdrop to %s", to)
	}
	confirmed, err := wm.AwaitSignaturesConfirmation(ctx, sig)
	if err != nil {
		return solana.Signature{}, errors.Wrapf(err, "failed to confirm airdrop to %s", to)
	}
	return confirmed, nil
}

// Fund airdrops lamports to every wallet concurrently.
func (wm *WalletManager) Fund(ctx context.Context, lamports uint64, wallets ...solana.PublicKey) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, wallet := range wallets {
		g.Go(func() error {
			_, err := wm.Airdrop(ctx, wallet, lamports)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	wm.log.Info("Wallets funded", "count", len(wallets), "lamports", lamports)
	return nil
}
