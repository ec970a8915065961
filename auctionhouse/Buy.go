package auctionhouse

import (
	"github.com/gagliardetto/solana-go"
)

type BuyArgs struct {
	TradeStateBump    uint8
	EscrowPaymentBump uint8
	BuyerPrice        uint64
	TokenSize         uint64
}

type Buy struct {
	Args     BuyArgs
	accounts accountList
}

func NewBuyInstructionBuilder() *Buy {
	nd := &Buy{
		accounts: newAccountList([]accountSlot{
			{name: "wallet", signer: true},
			{name: "paymentAccount", writable: true},
			{name: "transferAuthority"},
			{name: "treasuryMint"},
			{name: "tokenAccount"},
			{name: "metadata"},
			{name: "escrowPaymentAccount", writable: true},
			{name: "authority"},
			{name: "auctionHouse"},
			{name: "auctionHouseFeeAccount", writable: true},
			{name: "buyerTradeState", writable: true},
			{name: "tokenProgram"},
			{name: "systemProgram"},
			{name: "rent"},
		}),
	}
	nd.accounts.set(11, solana.TokenProgramID)
	nd.accounts.set(12, solana.SystemProgramID)
	nd.accounts.set(13, solana.SysVarRentPubkey)
	return nd
}

func (inst *Buy) SetTradeStateBump(bump uint8) *Buy {
	inst.Args.TradeStateBump = bump
	return inst
}

func (inst *Buy) SetEscrowPaymentBump(bump uint8) *Buy {
	inst.Args.EscrowPaymentBump = bump
	return inst
}

func (inst *Buy) SetBuyerPrice(price uint64) *Buy {
	inst.Args.BuyerPrice = price
	return inst
}

func (inst *Buy) SetTokenSize(size uint64) *Buy {
	inst.Args.TokenSize = size
	return inst
}

func (inst *Buy) SetWalletAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(0, pk)
	return inst
}

func (inst *Buy) SetPaymentAccountAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(1, pk)
	return inst
}

func (inst *Buy) SetTransferAuthorityAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(2, pk)
	return inst
}

func (inst *Buy) SetTreasuryMintAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(3, pk)
	return inst
}

func (inst *Buy) SetTokenAccountAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(4, pk)
	return inst
}

func (inst *Buy) SetMetadataAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(5, pk)
	return inst
}

func (inst *Buy) SetEscrowPaymentAccountAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(6, pk)
	return inst
}

func (inst *Buy) SetAuthorityAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(7, pk)
	return inst
}

func (inst *Buy) SetAuctionHouseAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(8, pk)
	return inst
}

func (inst *Buy) SetAuctionHouseFeeAccountAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(9, pk)
	return inst
}

func (inst *Buy) SetBuyerTradeStateAccount(pk solana.PublicKey) *Buy {
	inst.accounts.set(10, pk)
	return inst
}

func (inst Buy) Build() *Instruction {
	return build(Instruction_Buy, inst.Args, &inst.accounts)
}

func (inst Buy) ValidateAndBuild() (*Instruction, error) {
	return validateAndBuild(Instruction_Buy, inst.Args, &inst.accounts)
}
