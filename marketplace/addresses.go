package marketplace

import (
	token_metadata "github.com/gagliardetto/metaplex-go/clients/token-metadata"
	"github.com/gagliardetto/solana-go"
	"github.com/lincot/solana-marketplace/pda"
	"github.com/pkg/errors"
)

// Addresses are the program derived accounts of one auction house.
type Addresses struct {
	AuctionHouse    pda.DerivedAddress
	Fee             pda.DerivedAddress
	Treasury        pda.DerivedAddress
	ProgramAsSigner pda.DerivedAddress
}

func (m *Marketplace) Addresses(authority solana.PublicKey) (Addresses, error) {
	ah, err := m.deriver.AuctionHouse(authority, m.treasuryMint)
	if err != nil {
		return Addresses{}, errors.Wrap(err, "failed to derive auction house")
	}
	fee, err := m.deriver.Fee(ah.Address)
	if err != nil {
		return Addresses{}, errors.Wrap(err, "failed to derive fee account")
	}
	treasury, err := m.deriver.Treasury(ah.Address)
	if err != nil {
		return Addresses{}, errors.Wrap(err, "failed to derive treasury")
	}
	signer, err := m.deriver.ProgramAsSigner()
	if err != nil {
		return Addresses{}, errors.Wrap(err, "failed to derive program as signer")
	}
	return Addresses{
		AuctionHouse:    ah,
		Fee:             fee,
		Treasury:        treasury,
		ProgramAsSigner: signer,
	}, nil
}

// MetadataAddress returns the token metadata account of mint.
func MetadataAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	d, err := pda.Derive(token_metadata.ProgramID, [][]byte{
		[]byte("metadata"),
		token_metadata.ProgramID.Bytes(),
		mint.Bytes(),
	})
	if err != nil {
		return solana.PublicKey{}, err
	}
	return d.Address, nil
}

// listing holds every account a sell, buy or execute sale touches.
type listing struct {
	Addresses
	tokenAccount     solana.PublicKey
	metadata         solana.PublicKey
	sellerTradeState pda.DerivedAddress
	freeTradeState   pda.DerivedAddress
}

func (m *Marketplace) resolveListing(authority solana.PublicKey, p ListingParams) (*listing, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	addrs, err := m.Addresses(authority)
	if err != nil {
		return nil, err
	}
	tokenAccount, _, err := solana.FindAssociatedTokenAddress(p.Seller, p.Mint)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find token account of %s", p.Seller)
	}
	metadata := p.Metadata
	if metadata.IsZero() {
		if metadata, err = MetadataAddress(p.Mint); err != nil {
			return nil, errors.Wrapf(err, "failed to derive metadata of %s", p.Mint)
		}
	}
	ts := m.tradeState(addrs.AuctionHouse.Address, p.Seller, tokenAccount, p)
	sellerTradeState, err := m.deriver.TradeState(ts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive seller trade state")
	}
	freeTradeState, err := m.deriver.TradeState(ts.Free())
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive free trade state")
	}
	return &listing{
		Addresses:        addrs,
		tokenAccount:     tokenAccount,
		metadata:         metadata,
		sellerTradeState: sellerTradeState,
		freeTradeState:   freeTradeState,
	}, nil
}

func (m *Marketplace) tradeState(auctionHouse, wallet, tokenAccount solana.PublicKey, p ListingParams) pda.TradeState {
	return pda.TradeState{
		AuctionHouse: auctionHouse,
		Wallet:       wallet,
		TokenAccount: tokenAccount,
		TreasuryMint: m.treasuryMint,
		TokenMint:    p.Mint,
		Price:        p.Price,
		TokenSize:    p.TokenSize,
	}
}

// paymentAccount is where wallet pays from or gets paid to in the treasury
// mint: the wallet itself for native SOL, its associated token account
// otherwise.
func (m *Marketplace) paymentAccount(wallet solana.PublicKey) (solana.PublicKey, error) {
	if m.isNative() {
		return wallet, nil
	}
	ata, _, err := solana.FindAssociatedTokenAddress(wallet, m.treasuryMint)
	return ata, err
}

func (m *Marketplace) isNative() bool {
	return m.treasuryMint.Equals(solana.SolMint)
}
