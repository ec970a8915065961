package auctionhouse

import (
	"github.com/gagliardetto/solana-go"
)

type DepositArgs struct {
	EscrowPaymentBump uint8
	Amount            uint64
}

type Deposit struct {
	Args     DepositArgs
	accounts accountList
}

func NewDepositInstructionBuilder() *Deposit {
	nd := &Deposit{
		accounts: newAccountList([]accountSlot{
			{name: "wallet", signer: true},
			{name: "paymentAccount", writable: true},
			{name: "transferAuthority"},
			{name: "escrowPaymentAccount", writable: true},
			{name: "treasuryMint"},
			{name: "authority"},
			{name: "auctionHouse"},
			{name: "auctionHouseFeeAccount", writable: true},
			{name: "tokenProgram"},
			{name: "systemProgram"},
			{name: "rent"},
		}),
	}
	nd.accounts.set(8, solana.TokenProgramID)
	nd.accounts.set(9, solana.SystemProgramID)
	nd.accounts.set(10, solana.SysVarRentPubkey)
	return nd
}

func (inst *Deposit) SetEscrowPaymentBump(bump uint8) *Deposit {
	inst.Args.EscrowPaymentBump = bump
	return inst
}

func (inst *Deposit) SetAmount(amount uint64) *Deposit {
	inst.Args.Amount = amount
	return inst
}

func (inst *Deposit) SetWalletAccount(pk solana.PublicKey) *Deposit {
	inst.accounts.set(0, pk)
	return inst
}

func (inst *Deposit) SetPaymentAccountAccount(pk solana.PublicKey) *Deposit {
	inst.accounts.set(1, pk)
	return inst
}

func (inst *Deposit) SetTransferAuthorityAccount(pk solana.PublicKey) *Deposit {
	inst.accounts.set(2, pk)
	return inst
}

func (inst *Deposit) SetEscrowPaymentAccountAccount(pk solana.PublicKey) *Deposit {
	inst.accounts.set(3, pk)
	return inst
}

func (inst *Deposit) SetTreasuryMintAccount(pk solana.PublicKey) *Deposit {
	inst.accounts.set(4, pk)
	return inst
}

func (inst *Deposit) SetAuthorityAccount(pk solana.PublicKey) *Deposit {
	inst.accounts.set(5, pk)
	return inst
}

func (inst *Deposit) SetAuctionHouseAccount(pk solana.PublicKey) *Deposit {
	inst.accounts.set(6, pk)
	return inst
}

func (inst *Deposit) SetAuctionHouseFeeAccountAccount(pk solana.PublicKey) *Deposit {
	inst.accounts.set(7, pk)
	return inst
}

func (inst Deposit) Build() *Instruction {
	return build(Instruction_Deposit, inst.Args, &inst.accounts)
}

func (inst Deposit) ValidateAndBuild() (*Instruction, error) {
	return validateAndBuild(Instruction_Deposit, inst.Args, &inst.accounts)
}
