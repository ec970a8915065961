package walletmanager

import (
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
)

// Runs against a cluster with a faucet, e.g.
// AUCTION_HOUSE_LIVE_RPC_URL=http://127.0.0.1:8899 go test ./walletmanager -run Live
func newLiveWalletManager(t *testing.T) (*WalletManager, *rpc.Client) {
	t.Helper()
	url := os.Getenv("AUCTION_HOUSE_LIVE_RPC_URL")
	if url == "" {
		t.Skip("AUCTION_HOUSE_LIVE_RPC_URL is not set")
	}
	client := rpc.New(url)
	return NewWalletManager(log, client,
		WithCommitment(rpc.CommitmentConfirmed),
		WithConfirmationStatus(rpc.ConfirmationStatusConfirmed),
		WithConfirmationTimeout(2*time.Minute),
		WithConfirmationDelay(time.Second),
	), client
}

func TestWalletManager_Live_SpreadAndCollect(t *testing.T) {
	wm, client := newLiveWalletManager(t)
	ctx := t.Context()

	const receivers = 3
	lamportsPerReceiver := SolToLamports(0.001)
	from := solana.NewWallet()
	_, err := wm.Airdrop(ctx, from.PublicKey(), (receivers+1)*lamportsPerReceiver)
	require.NoError(t, err)

	var wallets []*solana.Wallet
	var publicKeys []solana.PublicKey
	for range receivers {
		w := solana.NewWallet()
		wallets = append(wallets, w)
		publicKeys = append(publicKeys, w.PublicKey())
	}
	_, err = wm.SpreadLamports(ctx, from.PrivateKey, publicKeys, lamportsPerReceiver)
	require.NoError(t, err)
	for _, pk := range publicKeys {
		balance, err := client.GetBalance(ctx, pk, rpc.CommitmentConfirmed)
		require.NoError(t, err)
		require.Equal(t, lamportsPerReceiver, balance.Value)
	}

	_, err = wm.SendAllSol(ctx, wallets[0].PrivateKey, from.PublicKey())
	require.NoError(t, err)
	balance, err := client.GetBalance(ctx, wallets[0].PublicKey(), rpc.CommitmentConfirmed)
	require.NoError(t, err)
	require.Zero(t, balance.Value)
}

func TestWalletManager_Live_CreateMintAndSendTokens(t *testing.T) {
	wm, client := newLiveWalletManager(t)
	ctx := t.Context()

	owner := solana.NewWallet()
	require.NoError(t, wm.Fund(ctx, SolToLamports(0.05), owner.PublicKey()))

	mint, err := wm.CreateMint(ctx, owner.PrivateKey, 0, 10)
	require.NoError(t, err)

	receiver := solana.NewWallet().PublicKey()
	_, err = wm.SendTokens(ctx, owner.PrivateKey, receiver, mint.Address, 4)
	require.NoError(t, err)

	ata, _, err := solana.FindAssociatedTokenAddress(receiver, mint.Address)
	require.NoError(t, err)
	balance, err := client.GetTokenAccountBalance(ctx, ata, rpc.CommitmentConfirmed)
	require.NoError(t, err)
	require.Equal(t, "4", balance.Value.Amount)
}
