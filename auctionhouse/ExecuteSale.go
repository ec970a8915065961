package auctionhouse

import (
	"github.com/gagliardetto/solana-go"
)

type ExecuteSaleArgs struct {
	EscrowPaymentBump   uint8
	FreeTradeStateBump  uint8
	ProgramAsSignerBump uint8
	BuyerPrice          uint64
	TokenSize           uint64
}

// ExecuteSale settles a matched listing and offer. Creator wallets that
// receive royalties follow the fixed accounts, in metadata order.
type ExecuteSale struct {
	Args     ExecuteSaleArgs
	accounts accountList
}

func NewExecuteSaleInstructionBuilder() *ExecuteSale {
	nd := &ExecuteSale{
		accounts: newAccountList([]accountSlot{
			{name: "buyer", writable: true},
			{name: "seller", writable: true},
			{name: "tokenAccount", writable: true},
			{name: "tokenMint"},
			{name: "metadata"},
			{name: "treasuryMint"},
			{name: "escrowPaymentAccount", writable: true},
			{name: "sellerPaymentReceiptAccount", writable: true},
			{name: "buyerReceiptTokenAccount", writable: true},
			{name: "authority"},
			{name: "auctionHouse"},
			{name: "auctionHouseFeeAccount", writable: true},
			{name: "auctionHouseTreasury", writable: true},
			{name: "buyerTradeState", writable: true},
			{name: "sellerTradeState", writable: true},
			{name: "freeTradeState", writable: true},
			{name: "tokenProgram"},
			{name: "systemProgram"},
			{name: "ataProgram"},
			{name: "programAsSigner"},
			{name: "rent"},
		}),
	}
	nd.accounts.set(16, solana.TokenProgramID)
	nd.accounts.set(17, solana.SystemProgramID)
	nd.accounts.set(18, solana.SPLAssociatedTokenAccountProgramID)
	nd.accounts.set(20, solana.SysVarRentPubkey)
	return nd
}

func (inst *ExecuteSale) SetEscrowPaymentBump(bump uint8) *ExecuteSale {
	inst.Args.EscrowPaymentBump = bump
	return inst
}

func (inst *ExecuteSale) SetFreeTradeStateBump(bump uint8) *ExecuteSale {
	inst.Args.FreeTradeStateBump = bump
	return inst
}

func (inst *ExecuteSale) SetProgramAsSignerBump(bump uint8) *ExecuteSale {
	inst.Args.ProgramAsSignerBump = bump
	return inst
}

func (inst *ExecuteSale) SetBuyerPrice(price uint64) *ExecuteSale {
	inst.Args.BuyerPrice = price
	return inst
}

func (inst *ExecuteSale) SetTokenSize(size uint64) *ExecuteSale {
	inst.Args.TokenSize = size
	return inst
}

func (inst *ExecuteSale) SetBuyerAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(0, pk)
	return inst
}

func (inst *ExecuteSale) SetSellerAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(1, pk)
	return inst
}

func (inst *ExecuteSale) SetTokenAccountAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(2, pk)
	return inst
}

func (inst *ExecuteSale) SetTokenMintAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(3, pk)
	return inst
}

func (inst *ExecuteSale) SetMetadataAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(4, pk)
	return inst
}

func (inst *ExecuteSale) SetTreasuryMintAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(5, pk)
	return inst
}

func (inst *ExecuteSale) SetEscrowPaymentAccountAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(6, pk)
	return inst
}

func (inst *ExecuteSale) SetSellerPaymentReceiptAccountAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(7, pk)
	return inst
}

func (inst *ExecuteSale) SetBuyerReceiptTokenAccountAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(8, pk)
	return inst
}

func (inst *ExecuteSale) SetAuthorityAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(9, pk)
	return inst
}

func (inst *ExecuteSale) SetAuctionHouseAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(10, pk)
	return inst
}

func (inst *ExecuteSale) SetAuctionHouseFeeAccountAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(11, pk)
	return inst
}

func (inst *ExecuteSale) SetAuctionHouseTreasuryAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(12, pk)
	return inst
}

func (inst *ExecuteSale) SetBuyerTradeStateAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(13, pk)
	return inst
}

func (inst *ExecuteSale) SetSellerTradeStateAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(14, pk)
	return inst
}

func (inst *ExecuteSale) SetFreeTradeStateAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(15, pk)
	return inst
}

func (inst *ExecuteSale) SetProgramAsSignerAccount(pk solana.PublicKey) *ExecuteSale {
	inst.accounts.set(19, pk)
	return inst
}

// Append adds remaining accounts after the fixed layout.
func (inst *ExecuteSale) Append(metas ...*solana.AccountMeta) *ExecuteSale {
	inst.accounts.remaining = append(inst.accounts.remaining, metas...)
	return inst
}

func (inst ExecuteSale) Build() *Instruction {
	return build(Instruction_ExecuteSale, inst.Args, &inst.accounts)
}

func (inst ExecuteSale) ValidateAndBuild() (*Instruction, error) {
	return validateAndBuild(Instruction_ExecuteSale, inst.Args, &inst.accounts)
}
