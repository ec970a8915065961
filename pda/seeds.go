package pda

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	PrefixAuctionHouse = "auction_house"
	SeedFeePayer       = "fee_payer"
	SeedTreasury       = "treasury"
	SeedSigner         = "signer"
)

// Kind enumerates the accounts the auction house program derives.
type Kind uint8

const (
	KindAuctionHouse Kind = iota
	KindFee
	KindTreasury
	KindBuyerEscrow
	KindTradeState
	KindProgramAsSigner
)

func (k Kind) String() string {
	switch k {
	case KindAuctionHouse:
		return "auction_house"
	case KindFee:
		return "fee"
	case KindTreasury:
		return "treasury"
	case KindBuyerEscrow:
		return "buyer_escrow"
	case KindTradeState:
		return "trade_state"
	case KindProgramAsSigner:
		return "program_as_signer"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Resource is one of AuctionHouse, Fee, Treasury, BuyerEscrow, TradeState or
// ProgramAsSigner. The set is closed: Seeds rejects anything else.
type Resource interface {
	Kind() Kind
	isResource()
}

type AuctionHouse struct {
	Creator      solana.PublicKey
	TreasuryMint solana.PublicKey
}

type Fee struct {
	AuctionHouse solana.PublicKey
}

type Treasury struct {
	AuctionHouse solana.PublicKey
}

type BuyerEscrow struct {
	AuctionHouse solana.PublicKey
	Buyer        solana.PublicKey
}

// TradeState identifies a listing or an offer. Two trade states that differ
// only in Price or TokenSize are independent accounts.
type TradeState struct {
	AuctionHouse solana.PublicKey
	Wallet       solana.PublicKey
	TokenAccount solana.PublicKey
	TreasuryMint solana.PublicKey
	TokenMint    solana.PublicKey
	Price        uint64
	TokenSize    uint64
}

// Free returns the zero-price trade state used for open, cancelable listings.
func (t TradeState) Free() TradeState {
	t.Price = 0
	return t
}

type ProgramAsSigner struct{}

func (AuctionHouse) Kind() Kind    { return KindAuctionHouse }
func (Fee) Kind() Kind             { return KindFee }
func (Treasury) Kind() Kind        { return KindTreasury }
func (BuyerEscrow) Kind() Kind     { return KindBuyerEscrow }
func (TradeState) Kind() Kind      { return KindTradeState }
func (ProgramAsSigner) Kind() Kind { return KindProgramAsSigner }

func (AuctionHouse) isResource()    {}
func (Fee) isResource()             {}
func (Treasury) isResource()        {}
func (BuyerEscrow) isResource()     {}
func (TradeState) isResource()      {}
func (ProgramAsSigner) isResource() {}

// Seeds returns the ordered seeds the auction house program uses for r.
// The layout must match the program byte for byte. Pointers to resources are
// accepted and dereferenced.
func Seeds(r Resource) ([][]byte, error) {
	r, err := deref(r)
	if err != nil {
		return nil, err
	}
	var seeds [][]byte
	switch v := r.(type) {
	case AuctionHouse:
		seeds = [][]byte{[]byte(PrefixAuctionHouse), v.Creator.Bytes(), v.TreasuryMint.Bytes()}
	case Fee:
		seeds = [][]byte{[]byte(PrefixAuctionHouse), v.AuctionHouse.Bytes(), []byte(SeedFeePayer)}
	case Treasury:
		seeds = [][]byte{[]byte(PrefixAuctionHouse), v.AuctionHouse.Bytes(), []byte(SeedTreasury)}
	case BuyerEscrow:
		seeds = [][]byte{[]byte(PrefixAuctionHouse), v.AuctionHouse.Bytes(), v.Buyer.Bytes()}
	case TradeState:
		seeds = [][]byte{
			[]byte(PrefixAuctionHouse),
			v.Wallet.Bytes(),
			v.AuctionHouse.Bytes(),
			v.TokenAccount.Bytes(),
			v.TreasuryMint.Bytes(),
			v.TokenMint.Bytes(),
			u64LE(v.Price),
			u64LE(v.TokenSize),
		}
	case ProgramAsSigner:
		seeds = [][]byte{[]byte(PrefixAuctionHouse), []byte(SeedSigner)}
	case nil:
		return nil, errors.Wrap(ErrInvalidSeed, "nil resource")
	default:
		return nil, errors.Wrapf(ErrInvalidSeed, "unknown resource %T", r)
	}
	if len(seeds) > MaxSeeds-1 {
		return nil, errors.Wrapf(ErrInvalidSeed, "%s: %d seeds", r.Kind(), len(seeds))
	}
	if err := validateSeeds(seeds); err != nil {
		return nil, errors.Wrap(err, r.Kind().String())
	}
	return seeds, nil
}

func deref(r Resource) (Resource, error) {
	var (
		v     Resource
		isNil bool
	)
	switch p := r.(type) {
	case *AuctionHouse:
		if isNil = p == nil; !isNil {
			v = *p
		}
	case *Fee:
		if isNil = p == nil; !isNil {
			v = *p
		}
	case *Treasury:
		if isNil = p == nil; !isNil {
			v = *p
		}
	case *BuyerEscrow:
		if isNil = p == nil; !isNil {
			v = *p
		}
	case *TradeState:
		if isNil = p == nil; !isNil {
			v = *p
		}
	case *ProgramAsSigner:
		if isNil = p == nil; !isNil {
			v = *p
		}
	default:
		return r, nil
	}
	if isNil {
		return nil, errors.Wrapf(ErrInvalidSeed, "nil %T", r)
	}
	return v, nil
}

// ParseAmount parses a decimal price or token size. Values that do not fit
// in 64 bits are rejected rather than truncated.
func ParseAmount(s string) (uint64, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidSeed, "amount %q is not a decimal integer", s)
	}
	if n.Sign() < 0 {
		return 0, errors.Wrapf(ErrInvalidSeed, "amount %s is negative", n)
	}
	if !n.IsUint64() {
		return 0, errors.Wrapf(ErrInvalidSeed, "amount %s overflows 64 bits", n)
	}
	return n.Uint64(), nil
}

func u64LE(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
