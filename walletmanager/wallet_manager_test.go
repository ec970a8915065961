package walletmanager

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func programOf(tx *solana.Transaction, ix solana.CompiledInstruction) solana.PublicKey {
	return tx.Message.AccountKeys[ix.ProgramIDIndex]
}

func transferLamports(t *testing.T, ix solana.CompiledInstruction) uint64 {
	t.Helper()
	require.Len(t, ix.Data, 12)
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(ix.Data[:4]))
	return binary.LittleEndian.Uint64(ix.Data[4:])
}

func TestWalletManager_SendAndConfirmInstructions(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	wm := newTestWalletManager(client)
	from := solana.NewWallet().PrivateKey
	to := solana.NewWallet().PublicKey()

	sig, err := wm.SendLamports(t.Context(), from, to, 1_000)
	require.NoError(t, err)
	assert.Equal(t, testSignature, sig)

	tx := client.lastTransaction()
	require.NotNil(t, tx)
	assert.Equal(t, testBlockhash, tx.Message.RecentBlockhash)
	assert.Equal(t, from.PublicKey(), tx.Message.AccountKeys[0])
	require.Len(t, tx.Signatures, 1)
	require.Len(t, tx.Message.Instructions, 1)
	assert.Equal(t, solana.SystemProgramID, programOf(tx, tx.Message.Instructions[0]))
	assert.Equal(t, uint64(1_000), transferLamports(t, tx.Message.Instructions[0]))
}

func TestWalletManager_NoSigners(t *testing.T) {
	t.Parallel()

	wm := newTestWalletManager(newMockRPCClient())
	_, err := wm.SendAndConfirmInstructions(t.Context(), solana.NewWallet().PublicKey(), nil, nil)
	require.ErrorIs(t, err, ErrNoSigners)

	_, err = wm.CollectAllSol(t.Context(), nil, solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrNoSigners)
}

func TestWalletManager_BlockhashError(t *testing.T) {
	t.Parallel()

	cause := errors.New("rpc unavailable")
	client := newMockRPCClient()
	client.GetLatestBlockhashFunc = func(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
		return nil, cause
	}
	wm := newTestWalletManager(client)

	_, err := wm.SendLamports(t.Context(), solana.NewWallet().PrivateKey, solana.NewWallet().PublicKey(), 1)
	require.ErrorIs(t, err, cause)
	assert.Nil(t, client.lastTransaction())
}

func TestWalletManager_TransactionRejected(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newMockRPCClient()
	client.GetSignatureStatusesFunc = func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
		calls.Add(1)
		return &rpc.GetSignatureStatusesResult{
			Value: []*rpc.SignatureStatusesResult{{
				ConfirmationStatus: rpc.ConfirmationStatusProcessed,
				Err:                map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}},
			}},
		}, nil
	}
	wm := newTestWalletManager(client)

	_, err := wm.SendLamports(t.Context(), solana.NewWallet().PrivateKey, solana.NewWallet().PublicKey(), 1)
	require.ErrorIs(t, err, ErrTransactionRejected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWalletManager_ConfirmationTimeout(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	client.GetSignatureStatusesFunc = func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
		return &rpc.GetSignatureStatusesResult{
			Value: []*rpc.SignatureStatusesResult{{ConfirmationStatus: rpc.ConfirmationStatusConfirmed}},
		}, nil
	}
	wm := NewWalletManager(log, client,
		WithConfirmationStatus(rpc.ConfirmationStatusFinalized),
		WithConfirmationDelay(5*time.Millisecond),
		WithConfirmationTimeout(50*time.Millisecond),
	)

	_, err := wm.AwaitSignaturesConfirmation(t.Context(), testSignature)
	require.ErrorIs(t, err, ErrConfirmationTimeout)
}

func TestWalletManager_ConfirmationWaitsForStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newMockRPCClient()
	client.GetSignatureStatusesFunc = func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
		n := calls.Add(1)
		switch {
		case n == 1:
			return &rpc.GetSignatureStatusesResult{Value: []*rpc.SignatureStatusesResult{nil}}, nil
		case n == 2:
			return nil, errors.New("transient")
		default:
			return &rpc.GetSignatureStatusesResult{
				Value: []*rpc.SignatureStatusesResult{{ConfirmationStatus: rpc.ConfirmationStatusFinalized}},
			}, nil
		}
	}
	wm := newTestWalletManager(client)
	wm.ConfirmationStatusType = rpc.ConfirmationStatusConfirmed

	sig, err := wm.AwaitSignaturesConfirmation(t.Context(), testSignature)
	require.NoError(t, err)
	assert.Equal(t, testSignature, sig)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWalletManager_ConfirmationContextCancelled(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	client.GetSignatureStatusesFunc = func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
		return &rpc.GetSignatureStatusesResult{Value: []*rpc.SignatureStatusesResult{nil}}, nil
	}
	wm := NewWalletManager(log, client, WithConfirmationDelay(10*time.Millisecond), WithConfirmationTimeout(time.Minute))

	ctx, cancel := context.WithTimeout(t.Context(), 30*time.Millisecond)
	defer cancel()
	_, err := wm.AwaitSignaturesConfirmation(ctx, testSignature)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReached(t *testing.T) {
	t.Parallel()

	assert.True(t, reached(rpc.ConfirmationStatusFinalized, rpc.ConfirmationStatusConfirmed))
	assert.True(t, reached(rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusConfirmed))
	assert.True(t, reached(rpc.ConfirmationStatusProcessed, rpc.ConfirmationStatusProcessed))
	assert.False(t, reached(rpc.ConfirmationStatusProcessed, rpc.ConfirmationStatusFinalized))
	assert.False(t, reached("", rpc.ConfirmationStatusProcessed))
}

func TestWalletManager_SpreadLamports(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	wm := newTestWalletManager(client)
	from := solana.NewWallet().PrivateKey
	receivers := []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}

	_, err := wm.SpreadLamports(t.Context(), from, receivers, 42)
	require.NoError(t, err)

	tx := client.lastTransaction()
	require.Len(t, tx.Message.Instructions, len(receivers))
	for _, ix := range tx.Message.Instructions {
		assert.Equal(t, uint64(42), transferLamports(t, ix))
	}
}

func TestWalletManager_SendSolTransaction_DeduplicatesSigners(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	wm := newTestWalletManager(client)
	from := solana.NewWallet().PrivateKey

	_, err := wm.SendSolTransaction(t.Context(), from, []SendSolInstructionParams{
		{From: from, To: solana.NewWallet().PublicKey(), Sol: 0.5},
		{From: from, To: solana.NewWallet().PublicKey(), Sol: 0.25},
	})
	require.NoError(t, err)

	tx := client.lastTransaction()
	require.Len(t, tx.Signatures, 1)
	assert.Equal(t, uint64(500_000_000), transferLamports(t, tx.Message.Instructions[0]))
	assert.Equal(t, uint64(250_000_000), transferLamports(t, tx.Message.Instructions[1]))
}

func TestWalletManager_CollectAllSol(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	balances := map[solana.PublicKey]uint64{}
	wallets := []solana.PrivateKey{solana.NewWallet().PrivateKey, solana.NewWallet().PrivateKey}
	balances[wallets[0].PublicKey()] = 1_000_000
	balances[wallets[1].PublicKey()] = 2_000_000
	client.GetBalanceFunc = func(_ context.Context, pk solana.PublicKey, _ rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
		return &rpc.GetBalanceResult{Value: balances[pk]}, nil
	}
	wm := newTestWalletManager(client)
	to := solana.NewWallet().PublicKey()

	_, err := wm.CollectAllSol(t.Context(), wallets, to)
	require.NoError(t, err)

	tx := client.lastTransaction()
	require.Len(t, tx.Signatures, 2)
	require.Len(t, tx.Message.Instructions, 2)
	assert.Equal(t, uint64(1_000_000-2*5000), transferLamports(t, tx.Message.Instructions[0]))
	assert.Equal(t, uint64(2_000_000), transferLamports(t, tx.Message.Instructions[1]))
}

func TestWalletManager_CollectAllSol_InsufficientBalance(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	wm := newTestWalletManager(client)

	_, err := wm.SendAllSol(t.Context(), solana.NewWallet().PrivateKey, solana.NewWallet().PublicKey())
	require.Error(t, err)
	assert.Nil(t, client.lastTransaction())
}

func TestWalletManager_SendTokens_CreatesMissingAccounts(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	from := solana.NewWallet().PrivateKey
	mint := solana.NewWallet().PublicKey()
	fromATA, _, err := solana.FindAssociatedTokenAddress(from.PublicKey(), mint)
	require.NoError(t, err)
	client.GetAccountInfoWithOptsFunc = func(_ context.Context, pk solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
		if pk == fromATA {
			return &rpc.GetAccountInfoResult{}, nil
		}
		return nil, rpc.ErrNotFound
	}
	wm := newTestWalletManager(client)

	_, err = wm.SendTokens(t.Context(), from, solana.NewWallet().PublicKey(), mint, 1)
	require.NoError(t, err)

	tx := client.lastTransaction()
	require.Len(t, tx.Message.Instructions, 2)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, programOf(tx, tx.Message.Instructions[0]))
	assert.Equal(t, solana.TokenProgramID, programOf(tx, tx.Message.Instructions[1]))
}

func TestWalletManager_SendTokens_AccountLookupError(t *testing.T) {
	t.Parallel()

	cause := errors.New("rpc unavailable")
	client := newMockRPCClient()
	client.GetAccountInfoWithOptsFunc = func(context.Context, solana.PublicKey, *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
		return nil, cause
	}
	wm := newTestWalletManager(client)

	_, err := wm.SendTokens(t.Context(), solana.NewWallet().PrivateKey, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 1)
	require.ErrorIs(t, err, cause)
}

func TestWalletManager_CreateMint(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	wm := newTestWalletManager(client)
	owner := solana.NewWallet().PrivateKey

	mint, err := wm.CreateMint(t.Context(), owner, 0, 1)
	require.NoError(t, err)

	expectedATA, _, err := solana.FindAssociatedTokenAddress(owner.PublicKey(), mint.Address)
	require.NoError(t, err)
	assert.Equal(t, expectedATA, mint.TokenAccount)

	tx := client.lastTransaction()
	require.Len(t, tx.Signatures, 2)
	require.Len(t, tx.Message.Instructions, 4)
	assert.Equal(t, solana.SystemProgramID, programOf(tx, tx.Message.Instructions[0]))
	assert.Equal(t, solana.TokenProgramID, programOf(tx, tx.Message.Instructions[1]))
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, programOf(tx, tx.Message.Instructions[2]))
	assert.Equal(t, solana.TokenProgramID, programOf(tx, tx.Message.Instructions[3]))
}

func TestWalletManager_Fund(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	funded := map[solana.PublicKey]uint64{}
	client := newMockRPCClient()
	client.RequestAirdropFunc = func(_ context.Context, pk solana.PublicKey, lamports uint64, _ rpc.CommitmentType) (solana.Signature, error) {
		mu.Lock()
		defer mu.Unlock()
		funded[pk] = lamports
		return testSignature, nil
	}
	wm := newTestWalletManager(client)
	wallets := []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}

	require.NoError(t, wm.Fund(t.Context(), solana.LAMPORTS_PER_SOL, wallets...))
	require.Len(t, funded, 3)
	for _, w := range wallets {
		assert.Equal(t, solana.LAMPORTS_PER_SOL, funded[w])
	}
}

func TestWalletManager_Fund_Error(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	client.RequestAirdropFunc = func(context.Context, solana.PublicKey, uint64, rpc.CommitmentType) (solana.Signature, error) {
		return solana.Signature{}, errors.New("faucet dry")
	}
	wm := newTestWalletManager(client)

	err := wm.Fund(t.Context(), 1, solana.NewWallet().PublicKey())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "faucet dry")
}

func TestWalletManager_NilLogger(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	wm := NewWalletManager(nil, client,
		WithConfirmationDelay(time.Millisecond),
		WithConfirmationTimeout(time.Second),
	)

	sig, err := wm.SendLamports(t.Context(), solana.NewWallet().PrivateKey, solana.NewWallet().PublicKey(), 1_000)
	require.NoError(t, err)
	assert.Equal(t, testSignature, sig)
	assert.NotNil(t, client.lastTransaction())
}

func TestWalletManager_SendSol(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	wm := newTestWalletManager(client)
	from := solana.NewWallet().PrivateKey
	to := solana.NewWallet().PublicKey()

	_, err := wm.SendSol(t.Context(), from, to, 0.001)
	require.NoError(t, err)

	tx := client.lastTransaction()
	require.Len(t, tx.Signatures, 1)
	require.Len(t, tx.Message.Instructions, 1)
	assert.Equal(t, solana.SystemProgramID, programOf(tx, tx.Message.Instructions[0]))
	assert.Equal(t, uint64(1_000_000), transferLamports(t, tx.Message.Instructions[0]))
	assert.Equal(t, to, tx.Message.AccountKeys[tx.Message.Instructions[0].Accounts[1]])
}

func TestWalletManager_SendTokensTransaction_CreatesAccountOnce(t *testing.T) {
	t.Parallel()

	client := newMockRPCClient()
	from := solana.NewWallet().PrivateKey
	to := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	fromATA, _, err := solana.FindAssociatedTokenAddress(from.PublicKey(), mint)
	require.NoError(t, err)
	var lookups atomic.Int32
	client.GetAccountInfoWithOptsFunc = func(_ context.Context, pk solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
		lookups.Add(1)
		if pk == fromATA {
			return &rpc.GetAccountInfoResult{}, nil
		}
		return nil, rpc.ErrNotFound
	}
	wm := newTestWalletManager(client)

	_, err = wm.SendTokensTransaction(t.Context(), from, []SendTokensInstructionParams{
		{From: from, To: to, Mint: mint, Amount: 1},
		{From: from, To: to, Mint: mint, Amount: 2},
	})
	require.NoError(t, err)

	tx := client.lastTransaction()
	require.Len(t, tx.Message.Instructions, 3)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, programOf(tx, tx.Message.Instructions[0]))
	assert.Equal(t, solana.TokenProgramID, programOf(tx, tx.Message.Instructions[1]))
	assert.Equal(t, solana.TokenProgramID, programOf(tx, tx.Message.Instructions[2]))
	assert.Equal(t, int32(2), lookups.Load())
}
