package auctionhouse

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

var AuctionHouseDiscriminator = bin.TypeIDFromBytes(bin.SighashAccount("AuctionHouse"))

var ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")

// AuctionHouse is the on-chain state of a marketplace instance.
type AuctionHouse struct {
	AuctionHouseFeeAccount        solana.PublicKey
	AuctionHouseTreasury          solana.PublicKey
	TreasuryWithdrawalDestination solana.PublicKey
	FeeWithdrawalDestination      solana.PublicKey
	TreasuryMint                  solana.PublicKey
	Authority                     solana.PublicKey
	Creator                       solana.PublicKey
	Bump                          uint8
	TreasuryBump                  uint8
	FeePayerBump                  uint8
	SellerFeeBasisPoints          uint16
	RequiresSignOff               bool
	CanChangeSalePrice            bool
}

func (obj AuctionHouse) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if _, err = encoder.Write(AuctionHouseDiscriminator[:]); err != nil {
		return err
	}
	for _, pk := range []solana.PublicKey{
		obj.AuctionHouseFeeAccount,
		obj.AuctionHouseTreasury,
		obj.TreasuryWithdrawalDestination,
		obj.FeeWithdrawalDestination,
		obj.TreasuryMint,
		obj.Authority,
		obj.Creator,
	} {
		if _, err = encoder.Write(pk[:]); err != nil {
			return err
		}
	}
	for _, b := range []uint8{obj.Bump, obj.TreasuryBump, obj.FeePayerBump} {
		if err = encoder.WriteUint8(b); err != nil {
			return err
		}
	}
	if err = encoder.WriteUint16(obj.SellerFeeBasisPoints, bin.LE); err != nil {
		return err
	}
	if err = encoder.WriteBool(obj.RequiresSignOff); err != nil {
		return err
	}
	return encoder.WriteBool(obj.CanChangeSalePrice)
}

func (obj *AuctionHouse) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	discriminator, err := decoder.ReadDiscriminator()
	if err != nil {
		return err
	}
	if !discriminator.Equal(AuctionHouseDiscriminator[:]) {
		return errors.Wrapf(ErrDiscriminatorMismatch, "expected %v, got %v", AuctionHouseDiscriminator[:], discriminator[:])
	}
	for _, pk := range []*solana.PublicKey{
		&obj.AuctionHouseFeeAccount,
		&obj.AuctionHouseTreasury,
		&obj.TreasuryWithdrawalDestination,
		&obj.FeeWithdrawalDestination,
		&obj.TreasuryMint,
		&obj.Authority,
		&obj.Creator,
	} {
		raw, err := decoder.ReadBytes(solana.PublicKeyLength)
		if err != nil {
			return err
		}
		copy(pk[:], raw)
	}
	for _, b := range []*uint8{&obj.Bump, &obj.TreasuryBump, &obj.FeePayerBump} {
		if *b, err = decoder.ReadUint8(); err != nil {
			return err
		}
	}
	if obj.SellerFeeBasisPoints, err = decoder.ReadUint16(bin.LE); err != nil {
		return err
	}
	if obj.RequiresSignOff, err = decoder.ReadBool(); err != nil {
		return err
	}
	obj.CanChangeSalePrice, err = decoder.ReadBool()
	return err
}

func (obj AuctionHouse) String() string {
	return fmt.Sprintf("AuctionHouse{authority=%s creator=%s treasuryMint=%s fee=%s treasury=%s sellerFeeBasisPoints=%d}",
		obj.Authority, obj.Creator, obj.TreasuryMint, obj.AuctionHouseFeeAccount, obj.AuctionHouseTreasury, obj.SellerFeeBasisPoints)
}

// DecodeAuctionHouse parses raw account data fetched from the cluster.
func DecodeAuctionHouse(data []byte) (*AuctionHouse, error) {
	var obj AuctionHouse
	if err := obj.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, errors.Wrap(err, "failed to decode auction house account")
	}
	return &obj, nil
}
