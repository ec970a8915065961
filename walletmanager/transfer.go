package walletmanager

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/pkg/errors"
)

func (wm *WalletManager) SendSol(ctx context.Context, from solana.PrivateKey, to solana.PublicKey, amountSol float64) (solana.Signature, error) {
	return wm.SendSolTransaction(ctx, from, []SendSolInstructionParams{{from, to, amountSol}})
}

func (wm *WalletManager) SendLamports(ctx context.Context, from solana.PrivateKey, to solana.PublicKey, lamports uint64) (solana.Signature, error) {
	return wm.SendLamportsTransaction(ctx, from, []SendLamportsInstructionParams{{from, to, lamports}})
}

func (wm *WalletManager) SendSolTransaction(ctx context.Context, feePayer solana.PrivateKey, instructionsParams []SendSolInstructionParams) (solana.Signature, error) {
	var params []SendLamportsInstructionParams
	for _, solParams := range instructionsParams {
		params = append(params, solParams.toLamports())
	}
	return wm.SendLamportsTransaction(ctx, feePayer, params)
}

func (wm *WalletManager) SendLamportsTransaction(ctx context.Context, feePayer solana.PrivateKey, instructionsParams []SendLamportsInstructionParams) (solana.Signature, error) {
	var instructions []solana.Instruction
	var signers []solana.PrivateKey
	for _, params := range instructionsParams {
		instructions = append(instructions, makeTransferInstruction(params.From.PublicKey(), params.To, params.Lamports))
		signers = appendSignerIfNotPresented(signers, params.From)
	}
	signers = appendSignerIfNotPresented(signers, feePayer)
	return wm.SendAndConfirmInstructions(ctx, feePayer.PublicKey(), instructions, signers)
}

func (wm *WalletManager) SpreadLamports(ctx context.Context, from solana.PrivateKey, receivers []solana.PublicKey, lamports uint64) (solana.Signature, error) {
	var instructions []solana.Instruction
	for _, receiver := range receivers {
		instructions = append(instructions, makeTransferInstruction(from.PublicKey(), receiver, lamports))
	}
	return wm.SendAndConfirmInstructions(ctx, from.PublicKey(), instructions, []solana.PrivateKey{from})
}

func (wm *WalletManager) SendAllSol(ctx context.Context, from solana.PrivateKey, to solana.PublicKey) (solana.Signature, error) {
	return wm.CollectAllSol(ctx, []solana.PrivateKey{from}, to)
}

// CollectAllSol drains every wallet into to. The first wallet pays the fee
// for the whole transaction.
func (wm *WalletManager) CollectAllSol(ctx context.Context, fromWallets []solana.PrivateKey, to solana.PublicKey) (solana.Signature, error) {
	if len(fromWallets) == 0 {
		return solana.Signature{}, ErrNoSigners
	}
	feePayer := fromWallets[0]
	fee, err := wm.transferFee(ctx, feePayer.PublicKey(), to)
	if err != nil {
		return solana.Signature{}, err
	}
	totalFee := fee * uint64(len(fromWallets))
	var instructions []solana.Instruction
	for i, from := range fromWallets {
		var payed uint64
		if i == 0 {
			payed = totalFee
		}
		balance, err := wm.Client.GetBalance(ctx, from.PublicKey(), wm.Commitment)
		if err != nil {
			return solana.Signature{}, errors.Wrapf(err, "failed to get balance of %s", from.PublicKey())
		}
		if balance.Value < payed {
			return solana.Signature{}, errors.Errorf("balance of %s is %d, fee is %d", from.PublicKey(), balance.Value, payed)
		}
		instructions = append(instructions, makeTransferInstruction(from.PublicKey(), to, balance.Value-payed))
	}
	return wm.SendAndConfirmInstructions(ctx, feePayer.PublicKey(), instructions, fromWallets)
}

func (wm *WalletManager) transferFee(ctx context.Context, from, to solana.PublicKey) (uint64, error) {
	recent, err := wm.Client.GetLatestBlockhash(ctx, wm.Commitment)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get latest blockhash")
	}
	tx, err := solana.NewTransaction(
		[]solana.Instruction{makeTransferInstruction(from, to, 0)},
		recent.Value.Blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to make transfer transaction from %s to %s", from, to)
	}
	result, err := wm.Client.GetFeeForMessage(ctx, tx.Message.ToBase64(), wm.Commitment)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get fee for transfer from %s", from)
	}
	if result.Value == nil {
		return 0, errors.New("fee for message is unavailable")
	}
	return *result.Value, nil
}

func makeTransferInstruction(from, to solana.PublicKey, lamports uint64) solana.Instruction {
	return system.NewTransferInstructionBuilder().
		SetFundingAccount(from).
		SetRecipientAccount(to).
		SetLamports(lamports).
		Build()
}
