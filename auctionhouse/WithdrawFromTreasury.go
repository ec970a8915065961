package auctionhouse

import (
	"github.com/gagliardetto/solana-go"
)

type WithdrawFromTreasuryArgs struct {
	Amount uint64
}

type WithdrawFromTreasury struct {
	Args     WithdrawFromTreasuryArgs
	accounts accountList
}

func NewWithdrawFromTreasuryInstructionBuilder() *WithdrawFromTreasury {
	nd := &WithdrawFromTreasury{
		accounts: newAccountList([]accountSlot{
			{name: "treasuryMint"},
			{name: "authority", signer: true},
			{name: "treasuryWithdrawalDestination", writable: true},
			{name: "auctionHouseTreasury", writable: true},
			{name: "auctionHouse", writable: true},
			{name: "tokenProgram"},
			{name: "systemProgram"},
		}),
	}
	nd.accounts.set(5, solana.TokenProgramID)
	nd.accounts.set(6, solana.SystemProgramID)
	return nd
}

func (inst *WithdrawFromTreasury) SetAmount(amount uint64) *WithdrawFromTreasury {
	inst.Args.Amount = amount
	return inst
}

func (inst *WithdrawFromTreasury) SetTreasuryMintAccount(pk solana.PublicKey) *WithdrawFromTreasury {
	inst.accounts.set(0, pk)
	return inst
}

func (inst *WithdrawFromTreasury) SetAuthorityAccount(pk solana.PublicKey) *WithdrawFromTreasury {
	inst.accounts.set(1, pk)
	return inst
}

func (inst *WithdrawFromTreasury) SetTreasuryWithdrawalDestinationAccount(pk solana.PublicKey) *WithdrawFromTreasury {
	inst.accounts.set(2, pk)
	return inst
}

func (inst *WithdrawFromTreasury) SetAuctionHouseTreasuryAccount(pk solana.PublicKey) *WithdrawFromTreasury {
	inst.accounts.set(3, pk)
	return inst
}

func (inst *WithdrawFromTreasury) SetAuctionHouseAccount(pk solana.PublicKey) *WithdrawFromTreasury {
	inst.accounts.set(4, pk)
	return inst
}

func (inst WithdrawFromTreasury) Build() *Instruction {
	return build(Instruction_WithdrawFromTreasury, inst.Args, &inst.accounts)
}

func (inst WithdrawFromTreasury) ValidateAndBuild() (*Instruction, error) {
	return validateAndBuild(Instruction_WithdrawFromTreasury, inst.Args, &inst.accounts)
}
