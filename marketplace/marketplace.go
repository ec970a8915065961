package marketplace

import (
	"log/slog"

	"github.com/gagliardetto/solana-go"
	"github.com/lincot/solana-marketplace/auctionhouse"
	"github.com/lincot/solana-marketplace/pda"
	"github.com/lincot/solana-marketplace/walletmanager"
	"github.com/pkg/errors"
)

const maxBasisPoints = 10_000

var (
	ErrNothingToWithdraw       = errors.New("treasury holds nothing above the rent-exempt minimum")
	ErrInvalidListing          = errors.New("invalid listing")
	ErrInvalidSellerFee        = errors.New("seller fee basis points exceed 10000")
	ErrUnsupportedTreasuryMint = errors.New("operation supports only the native treasury mint")
	ErrInvalidConfig           = errors.New("invalid marketplace config")
)

type Config struct {
	Log     *slog.Logger
	Wallets *walletmanager.WalletManager
	// ProgramID defaults to the public auction house deployment.
	ProgramID solana.PublicKey
	// TreasuryMint defaults to native SOL.
	TreasuryMint solana.PublicKey
}

type Marketplace struct {
	log          *slog.Logger
	wm           *walletmanager.WalletManager
	deriver      pda.Deriver
	treasuryMint solana.PublicKey
}

func (c *Config) Validate() error {
	if c.Log == nil {
		return errors.Wrap(ErrInvalidConfig, "logger is required")
	}
	if c.Wallets == nil {
		return errors.Wrap(ErrInvalidConfig, "wallet manager is required")
	}
	if c.ProgramID.IsZero() {
		c.ProgramID = pda.AuctionHouseProgramID
	}
	if c.TreasuryMint.IsZero() {
		c.TreasuryMint = solana.SolMint
	}
	return nil
}

func New(cfg Config) (*Marketplace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Marketplace{
		log:          cfg.Log,
		wm:           cfg.Wallets,
		deriver:      pda.NewDeriver(cfg.ProgramID),
		treasuryMint: cfg.TreasuryMint,
	}, nil
}

func (m *Marketplace) ProgramID() solana.PublicKey {
	return m.deriver.ProgramID
}

func (m *Marketplace) TreasuryMint() solana.PublicKey {
	return m.treasuryMint
}

type CreateParams struct {
	SellerFeeBasisPoints uint16
	RequiresSignOff      bool
	CanChangeSalePrice   bool
}

// ListingParams identifies one listing: Price and TokenSize are part of the
// trade state seeds, so both sides of a sale must agree on them.
type ListingParams struct {
	Seller solana.PublicKey
	Mint   solana.PublicKey
	// Metadata is derived from Mint when left zero.
	Metadata  solana.PublicKey
	Price     uint64
	TokenSize uint64
}

func (p ListingParams) validate() error {
	if p.Seller.IsZero() {
		return errors.Wrap(ErrInvalidListing, "seller is required")
	}
	if p.Mint.IsZero() {
		return errors.Wrap(ErrInvalidListing, "mint is required")
	}
	if p.TokenSize == 0 {
		return errors.Wrap(ErrInvalidListing, "token size must be positive")
	}
	return nil
}

func (m *Marketplace) build(inst interface {
	ValidateAndBuild() (*auctionhouse.Instruction, error)
}) (solana.Instruction, error) {
	ix, err := inst.ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	return ix.WithProgramID(m.deriver.ProgramID), nil
}
