package pda

import (
	"github.com/gagliardetto/solana-go"
)

// AuctionHouseProgramID is the mainnet and devnet deployment of the Metaplex
// auction house program.
var AuctionHouseProgramID = solana.MustPublicKeyFromBase58("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk")

// Deriver derives auction house resources for a single program.
type Deriver struct {
	ProgramID solana.PublicKey
}

func NewDeriver(programID solana.PublicKey) Deriver {
	return Deriver{ProgramID: programID}
}

func AuctionHouseDeriver() Deriver {
	return NewDeriver(AuctionHouseProgramID)
}

func (d Deriver) Find(r Resource) (DerivedAddress, error) {
	seeds, err := Seeds(r)
	if err != nil {
		return DerivedAddress{}, err
	}
	return Derive(d.ProgramID, seeds)
}

func (d Deriver) AuctionHouse(creator, treasuryMint solana.PublicKey) (DerivedAddress, error) {
	return d.Find(AuctionHouse{Creator: creator, TreasuryMint: treasuryMint})
}

func (d Deriver) Fee(auctionHouse solana.PublicKey) (DerivedAddress, error) {
	return d.Find(Fee{AuctionHouse: auctionHouse})
}

func (d Deriver) Treasury(auctionHouse solana.PublicKey) (DerivedAddress, error) {
	return d.Find(Treasury{AuctionHouse: auctionHouse})
}

func (d Deriver) BuyerEscrow(auctionHouse, buyer solana.PublicKey) (DerivedAddress, error) {
	return d.Find(BuyerEscrow{AuctionHouse: auctionHouse, Buyer: buyer})
}

func (d Deriver) TradeState(ts TradeState) (DerivedAddress, error) {
	return d.Find(ts)
}

func (d Deriver) ProgramAsSigner() (DerivedAddress, error) {
	return d.Find(ProgramAsSigner{})
}
