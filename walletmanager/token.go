package walletmanager

import (
	"context"

	"github.com/gagliardetto/solana-go"
	atok "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

func (wm *WalletManager) SendTokens(ctx context.Context, feePayer solana.PrivateKey, to, mint solana.PublicKey, amount uint64) (solana.Signature, error) {
	return wm.SendTokensTransaction(ctx, feePayer, []SendTokensInstructionParams{{feePayer, to, mint, amount}})
}

func (wm *WalletManager) SendTokensTransaction(ctx context.Context, feePayer solana.PrivateKey, instructionsParams []SendTokensInstructionParams) (solana.Signature, error) {
	var instructions []solana.Instruction
	var signers []solana.PrivateKey
	// token accounts already looked up or scheduled for creation
	resolved := make(map[solana.PublicKey]bool)
	for _, params := range instructionsParams {
		processAddress := func(owner solana.PublicKey) (solana.PublicKey, error) {
			ata, _, err := solana.FindAssociatedTokenAddress(owner, params.Mint)
			if err != nil {
				return solana.PublicKey{}, errors.Wrapf(err, "failed to find associated token address for %s", owner)
			}
			if resolved[ata] {
				return ata, nil
			}
			ata, createInst, err := wm.getOrCreateAssociatedTokenAddress(ctx, feePayer.PublicKey(), owner, params.Mint)
			if err != nil {
				return solana.PublicKey{}, errors.Wrapf(err, "failed to find associated token address for %s", owner)
			}
			if createInst != nil {
				instructions = append(instructions, createInst)
			}
			resolved[ata] = true
			return ata, nil
		}
		fromAssociatedAddress, err := processAddress(params.From.PublicKey())
		if err != nil {
			return solana.Signature{}, err
		}
		toAssociatedAddress, err := processAddress(params.To)
		if err != nil {
			return solana.Signature{}, err
		}
		instruction := token.NewTransferInstructionBuilder().
			SetAmount(params.Amount).
			SetSourceAccount(fromAssociatedAddress).
			SetDestinationAccount(toAssociatedAddress).
			SetOwnerAccount(params.From.PublicKey()).
			Build()
		instructions = append(instructions, instruction)
		signers = appendSignerIfNotPresented(signers, params.From)
	}
	signers = appendSignerIfNotPresented(signers, feePayer)
	return wm.SendAndConfirmInstructions(ctx, feePayer.PublicKey(), instructions, signers)
}

// getOrCreateAssociatedTokenAddress returns the associated token account of
// owner for mint, plus a create instruction when it does not exist yet.
func (wm *WalletManager) getOrCreateAssociatedTokenAddress(
	ctx context.Context,
	payer,
	owner,
	mint solana.PublicKey,
) (solana.PublicKey, *atok.Instruction, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	_, err = wm.Client.GetAccountInfoWithOpts(ctx, ata, &rpc.GetAccountInfoOpts{
		Commitment: wm.Commitment,
	})
	if err == nil {
		return ata, nil, nil
	}
	if !errors.Is(err, rpc.ErrNotFound) {
		return solana.PublicKey{}, nil, err
	}
	createInstruction := atok.NewCreateInstructionBuilder().
		SetPayer(payer).
		SetMint(mint).
		SetWallet(owner).
		Build()
	return ata, createInstruction, nil
}

// CreateMint creates a new mint owned by owner and mints supply tokens to the
// owner's associated token account, all in one transaction.
func (wm *WalletManager) CreateMint(ctx context.Context, owner solana.PrivateKey, decimals uint8, supply uint64) (*Mint, error) {
	mint := solana.NewWallet().PrivateKey
	rent, err := wm.Client.GetMinimumBalanceForRentExemption(ctx, token.MINT_SIZE, wm.Commitment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get rent exemption for mint")
	}
	ata, _, err := solana.FindAssociatedTokenAddress(owner.PublicKey(), mint.PublicKey())
	if err != nil {
		return nil, err
	}
	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(rent, token.MINT_SIZE, solana.TokenProgramID, owner.PublicKey(), mint.PublicKey()).Build(),
		token.NewInitializeMint2Instruction(decimals, owner.PublicKey(), owner.PublicKey(), mint.PublicKey()).Build(),
		atok.NewCreateInstruction(owner.PublicKey(), owner.PublicKey(), mint.PublicKey()).Build(),
	}
	if supply > 0 {
		instructions = append(instructions, token.NewMintToInstruction(supply, mint.PublicKey(), ata, owner.PublicKey(), nil).Build())
	}
	sig, err := wm.SendAndConfirmInstructions(ctx, owner.PublicKey(), instructions, []solana.PrivateKey{owner, mint})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create mint %s", mint.PublicKey())
	}
	wm.log.Info("Mint created", "mint", mint.PublicKey(), "owner", owner.PublicKey(), "supply", supply)
	return &Mint{Address: mint.PublicKey(), TokenAccount: ata, Signature: sig}, nil
}
