package auctionhouse

import (
	"github.com/gagliardetto/solana-go"
)

type CreateAuctionHouseArgs struct {
	Bump                 uint8
	FeePayerBump         uint8
	TreasuryBump         uint8
	SellerFeeBasisPoints uint16
	RequiresSignOff      bool
	CanChangeSalePrice   bool
}

type CreateAuctionHouse struct {
	Args     CreateAuctionHouseArgs
	accounts accountList
}

func NewCreateAuctionHouseInstructionBuilder() *CreateAuctionHouse {
	nd := &CreateAuctionHouse{
		accounts: newAccountList([]accountSlot{
			{name: "treasuryMint"},
			{name: "payer", writable: true, signer: true},
			{name: "authority"},
			{name: "feeWithdrawalDestination", writable: true},
			{name: "treasuryWithdrawalDestination", writable: true},
			{name: "treasuryWithdrawalDestinationOwner"},
			{name: "auctionHouse", writable: true},
			{name: "auctionHouseFeeAccount", writable: true},
			{name: "auctionHouseTreasury", writable: true},
			{name: "tokenProgram"},
			{name: "systemProgram"},
			{name: "ataProgram"},
			{name: "rent"},
		}),
	}
	nd.accounts.set(9, solana.TokenProgramID)
	nd.accounts.set(10, solana.SystemProgramID)
	nd.accounts.set(11, solana.SPLAssociatedTokenAccountProgramID)
	nd.accounts.set(12, solana.SysVarRentPubkey)
	return nd
}

func (inst *CreateAuctionHouse) SetBump(bump uint8) *CreateAuctionHouse {
	inst.Args.Bump = bump
	return inst
}

func (inst *CreateAuctionHouse) SetFeePayerBump(bump uint8) *CreateAuctionHouse {
	inst.Args.FeePayerBump = bump
	return inst
}

func (inst *CreateAuctionHouse) SetTreasuryBump(bump uint8) *CreateAuctionHouse {
	inst.Args.TreasuryBump = bump
	return inst
}

func (inst *CreateAuctionHouse) SetSellerFeeBasisPoints(bps uint16) *CreateAuctionHouse {
	inst.Args.SellerFeeBasisPoints = bps
	return inst
}

func (inst *CreateAuctionHouse) SetRequiresSignOff(v bool) *CreateAuctionHouse {
	inst.Args.RequiresSignOff = v
	return inst
}

func (inst *CreateAuctionHouse) SetCanChangeSalePrice(v bool) *CreateAuctionHouse {
	inst.Args.CanChangeSalePrice = v
	return inst
}

func (inst *CreateAuctionHouse) SetTreasuryMintAccount(pk solana.PublicKey) *CreateAuctionHouse {
	inst.accounts.set(0, pk)
	return inst
}

func (inst *CreateAuctionHouse) SetPayerAccount(pk solana.PublicKey) *CreateAuctionHouse {
	inst.accounts.set(1, pk)
	return inst
}

func (inst *CreateAuctionHouse) SetAuthorityAccount(pk solana.PublicKey) *CreateAuctionHouse {
	inst.accounts.set(2, pk)
	return inst
}

func (inst *CreateAuctionHouse) SetFeeWithdrawalDestinationAccount(pk solana.PublicKey) *CreateAuctionHouse {
	inst.accounts.set(3, pk)
	return inst
}

func (inst *CreateAuctionHouse) SetTreasuryWithdrawalDestinationAccount(pk solana.PublicKey) *CreateAuctionHouse {
	inst.accounts.set(4, pk)
	return inst
}

func (inst *CreateAuctionHouse) SetTreasuryWithdrawalDestinationOwnerAccount(pk solana.PublicKey) *CreateAuctionHouse {
	inst.accounts.set(5, pk)
	return inst
}

func (inst *CreateAuctionHouse) SetAuctionHouseAccount(pk solana.PublicKey) *CreateAuctionHouse {
	inst.accounts.set(6, pk)
	return inst
}

func (inst *CreateAuctionHouse) SetAuctionHouseFeeAccountAccount(pk solana.PublicKey) *CreateAuctionHouse {
	inst.accounts.set(7, pk)
	return inst
}

func (inst *CreateAuctionHouse) SetAuctionHouseTreasuryAccount(pk solana.PublicKey) *CreateAuctionHouse {
	inst.accounts.set(8, pk)
	return inst
}

func (inst *CreateAuctionHouse) GetAuctionHouseTreasuryAccount() *solana.AccountMeta {
	return inst.accounts.get(8)
}

func (inst CreateAuctionHouse) Build() *Instruction {
	return build(Instruction_CreateAuctionHouse, inst.Args, &inst.accounts)
}

func (inst CreateAuctionHouse) ValidateAndBuild() (*Instruction, error) {
	return validateAndBuild(Instruction_CreateAuctionHouse, inst.Args, &inst.accounts)
}
