package auctionhouse

import (
	"github.com/gagliardetto/solana-go"
)

type SellArgs struct {
	TradeStateBump      uint8
	FreeTradeStateBump  uint8
	ProgramAsSignerBump uint8
	BuyerPrice          uint64
	TokenSize           uint64
}

type Sell struct {
	Args     SellArgs
	accounts accountList
}

func NewSellInstructionBuilder() *Sell {
	nd := &Sell{
		accounts: newAccountList([]accountSlot{
			{name: "wallet", signer: true},
			{name: "tokenAccount", writable: true},
			{name: "metadata"},
			{name: "authority"},
			{name: "auctionHouse"},
			{name: "auctionHouseFeeAccount", writable: true},
			{name: "sellerTradeState", writable: true},
			{name: "freeSellerTradeState", writable: true},
			{name: "tokenProgram"},
			{name: "systemProgram"},
			{name: "programAsSigner"},
			{name: "rent"},
		}),
	}
	nd.accounts.set(8, solana.TokenProgramID)
	nd.accounts.set(9, solana.SystemProgramID)
	nd.accounts.set(11, solana.SysVarRentPubkey)
	return nd
}

func (inst *Sell) SetTradeStateBump(bump uint8) *Sell {
	inst.Args.TradeStateBump = bump
	return inst
}

func (inst *Sell) SetFreeTradeStateBump(bump uint8) *Sell {
	inst.Args.FreeTradeStateBump = bump
	return inst
}

func (inst *Sell) SetProgramAsSignerBump(bump uint8) *Sell {
	inst.Args.ProgramAsSignerBump = bump
	return inst
}

func (inst *Sell) SetBuyerPrice(price uint64) *Sell {
	inst.Args.BuyerPrice = price
	return inst
}

func (inst *Sell) SetTokenSize(size uint64) *Sell {
	inst.Args.TokenSize = size
	return inst
}

func (inst *Sell) SetWalletAccount(pk solana.PublicKey) *Sell {
	inst.accounts.set(0, pk)
	return inst
}

func (inst *Sell) SetTokenAccountAccount(pk solana.PublicKey) *Sell {
	inst.accounts.set(1, pk)
	return inst
}

func (inst *Sell) SetMetadataAccount(pk solana.PublicKey) *Sell {
	inst.accounts.set(2, pk)
	return inst
}

func (inst *Sell) SetAuthorityAccount(pk solana.PublicKey) *Sell {
	inst.accounts.set(3, pk)
	return inst
}

func (inst *Sell) SetAuctionHouseAccount(pk solana.PublicKey) *Sell {
	inst.accounts.set(4, pk)
	return inst
}

func (inst *Sell) SetAuctionHouseFeeAccountAccount(pk solana.PublicKey) *Sell {
	inst.accounts.set(5, pk)
	return inst
}

func (inst *Sell) SetSellerTradeStateAccount(pk solana.PublicKey) *Sell {
	inst.accounts.set(6, pk)
	return inst
}

func (inst *Sell) SetFreeSellerTradeStateAccount(pk solana.PublicKey) *Sell {
	inst.accounts.set(7, pk)
	return inst
}

func (inst *Sell) SetProgramAsSignerAccount(pk solana.PublicKey) *Sell {
	inst.accounts.set(10, pk)
	return inst
}

func (inst *Sell) GetSellerTradeStateAccount() *solana.AccountMeta {
	return inst.accounts.get(6)
}

func (inst Sell) Build() *Instruction {
	return build(Instruction_Sell, inst.Args, &inst.accounts)
}

func (inst Sell) ValidateAndBuild() (*Instruction, error) {
	return validateAndBuild(Instruction_Sell, inst.Args, &inst.accounts)
}
