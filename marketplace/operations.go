package marketplace

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/lincot/solana-marketplace/auctionhouse"
	"github.com/pkg/errors"
)

// CreateAuctionHouse creates the auction house of authority and, for native
// SOL houses, funds its treasury with the rent-exempt minimum in the same
// transaction.
func (m *Marketplace) CreateAuctionHouse(ctx context.Context, authority solana.PrivateKey, params CreateParams) (solana.Signature, error) {
	if params.SellerFeeBasisPoints > maxBasisPoints {
		return solana.Signature{}, errors.Wrapf(ErrInvalidSellerFee, "got %d", params.SellerFeeBasisPoints)
	}
	addrs, err := m.Addresses(authority.PublicKey())
	if err != nil {
		return solana.Signature{}, err
	}
	treasuryWithdrawalDestination, err := m.paymentAccount(authority.PublicKey())
	if err != nil {
		return solana.Signature{}, err
	}
	createInstruction, err := m.build(auctionhouse.NewCreateAuctionHouseInstructionBuilder().
		SetBump(addrs.AuctionHouse.Bump).
		SetFeePayerBump(addrs.Fee.Bump).
		SetTreasuryBump(addrs.Treasury.Bump).
		SetSellerFeeBasisPoints(params.SellerFeeBasisPoints).
		SetRequiresSignOff(params.RequiresSignOff).
		SetCanChangeSalePrice(params.CanChangeSalePrice).
		SetTreasuryMintAccount(m.treasuryMint).
		SetPayerAccount(authority.PublicKey()).
		SetAuthorityAccount(authority.PublicKey()).
		SetFeeWithdrawalDestinationAccount(authority.PublicKey()).
		SetTreasuryWithdrawalDestinationAccount(treasuryWithdrawalDestination).
		SetTreasuryWithdrawalDestinationOwnerAccount(authority.PublicKey()).
		SetAuctionHouseAccount(addrs.AuctionHouse.Address).
		SetAuctionHouseFeeAccountAccount(addrs.Fee.Address).
		SetAuctionHouseTreasuryAccount(addrs.Treasury.Address))
	if err != nil {
		return solana.Signature{}, err
	}
	instructions := []solana.Instruction{createInstruction}
	if m.isNative() {
		rent, err := m.treasuryRent(ctx)
		if err != nil {
			return solana.Signature{}, err
		}
		instructions = append(instructions, system.NewTransferInstruction(rent, authority.PublicKey(), addrs.Treasury.Address).Build())
	}
	sig, err := m.wm.SendAndConfirmInstructions(ctx, authority.PublicKey(), instructions, []solana.PrivateKey{authority})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to create auction house")
	}
	m.log.Info("Auction house created", "auctionHouse", addrs.AuctionHouse.Address, "authority", authority.PublicKey(), "sig", sig)
	return sig, nil
}

func (m *Marketplace) Sell(ctx context.Context, authority solana.PublicKey, seller solana.PrivateKey, p ListingParams) (solana.Signature, error) {
	p.Seller = seller.PublicKey()
	l, err := m.resolveListing(authority, p)
	if err != nil {
		return solana.Signature{}, err
	}
	instruction, err := m.build(auctionhouse.NewSellInstructionBuilder().
		SetTradeStateBump(l.sellerTradeState.Bump).
		SetFreeTradeStateBump(l.freeTradeState.Bump).
		SetProgramAsSignerBump(l.ProgramAsSigner.Bump).
		SetBuyerPrice(p.Price).
		SetTokenSize(p.TokenSize).
		SetWalletAccount(seller.PublicKey()).
		SetTokenAccountAccount(l.tokenAccount).
		SetMetadataAccount(l.metadata).
		SetAuthorityAccount(authority).
		SetAuctionHouseAccount(l.AuctionHouse.Address).
		SetAuctionHouseFeeAccountAccount(l.Fee.Address).
		SetSellerTradeStateAccount(l.sellerTradeState.Address).
		SetFreeSellerTradeStateAccount(l.freeTradeState.Address).
		SetProgramAsSignerAccount(l.ProgramAsSigner.Address))
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := m.wm.SendAndConfirmInstructions(ctx, seller.PublicKey(), []solana.Instruction{instruction}, []solana.PrivateKey{seller})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to sell")
	}
	m.log.Info("Listed", "mint", p.Mint, "seller", seller.PublicKey(), "price", p.Price, "size", p.TokenSize, "sig", sig)
	return sig, nil
}

// Buy places an offer on the listing. The buyer's escrow must hold at least
// the price before the sale executes.
func (m *Marketplace) Buy(ctx context.Context, authority solana.PublicKey, buyer solana.PrivateKey, p ListingParams) (solana.Signature, error) {
	l, err := m.resolveListing(authority, p)
	if err != nil {
		return solana.Signature{}, err
	}
	instruction, err := m.buyInstruction(authority, buyer.PublicKey(), l, p)
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := m.wm.SendAndConfirmInstructions(ctx, buyer.PublicKey(), []solana.Instruction{instruction}, []solana.PrivateKey{buyer})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to buy")
	}
	m.log.Info("Offer placed", "mint", p.Mint, "buyer", buyer.PublicKey(), "price", p.Price, "sig", sig)
	return sig, nil
}

func (m *Marketplace) Deposit(ctx context.Context, authority solana.PublicKey, depositor solana.PrivateKey, amount uint64) (solana.Signature, error) {
	addrs, err := m.Addresses(authority)
	if err != nil {
		return solana.Signature{}, err
	}
	escrow, err := m.deriver.BuyerEscrow(addrs.AuctionHouse.Address, depositor.PublicKey())
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to derive buyer escrow")
	}
	paymentAccount, err := m.paymentAccount(depositor.PublicKey())
	if err != nil {
		return solana.Signature{}, err
	}
	instruction, err := m.build(auctionhouse.NewDepositInstructionBuilder().
		SetEscrowPaymentBump(escrow.Bump).
		SetAmount(amount).
		SetWalletAccount(depositor.PublicKey()).
		SetPaymentAccountAccount(paymentAccount).
		SetTransferAuthorityAccount(depositor.PublicKey()).
		SetEscrowPaymentAccountAccount(escrow.Address).
		SetTreasuryMintAccount(m.treasuryMint).
		SetAuthorityAccount(authority).
		SetAuctionHouseAccount(addrs.AuctionHouse.Address).
		SetAuctionHouseFeeAccountAccount(addrs.Fee.Address))
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := m.wm.SendAndConfirmInstructions(ctx, depositor.PublicKey(), []solana.Instruction{instruction}, []solana.PrivateKey{depositor})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to deposit")
	}
	m.log.Info("Deposited", "wallet", depositor.PublicKey(), "escrow", escrow.Address, "amount", amount, "sig", sig)
	return sig, nil
}

// ExecuteSale settles a matching listing and offer. Creators receive their
// royalties and must be given in metadata order.
func (m *Marketplace) ExecuteSale(
	ctx context.Context,
	authority solana.PublicKey,
	buyer solana.PrivateKey,
	p ListingParams,
	creators []solana.PublicKey,
) (solana.Signature, error) {
	l, err := m.resolveListing(authority, p)
	if err != nil {
		return solana.Signature{}, err
	}
	instruction, err := m.executeSaleInstruction(authority, buyer.PublicKey(), l, p, creators)
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := m.wm.SendAndConfirmInstructions(ctx, buyer.PublicKey(), []solana.Instruction{instruction}, []solana.PrivateKey{buyer})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to execute sale")
	}
	m.log.Info("Sale executed", "mint", p.Mint, "seller", p.Seller, "buyer", buyer.PublicKey(), "price", p.Price, "sig", sig)
	return sig, nil
}

// BuyNow places an offer and executes the sale in one transaction.
func (m *Marketplace) BuyNow(
	ctx context.Context,
	authority solana.PublicKey,
	buyer solana.PrivateKey,
	p ListingParams,
	creators []solana.PublicKey,
) (solana.Signature, error) {
	l, err := m.resolveListing(authority, p)
	if err != nil {
		return solana.Signature{}, err
	}
	buyInstruction, err := m.buyInstruction(authority, buyer.PublicKey(), l, p)
	if err != nil {
		return solana.Signature{}, err
	}
	executeSaleInstruction, err := m.executeSaleInstruction(authority, buyer.PublicKey(), l, p, creators)
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := m.wm.SendAndConfirmInstructions(
		ctx,
		buyer.PublicKey(),
		[]solana.Instruction{buyInstruction, executeSaleInstruction},
		[]solana.PrivateKey{buyer},
	)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to buy now")
	}
	m.log.Info("Bought", "mint", p.Mint, "seller", p.Seller, "buyer", buyer.PublicKey(), "price", p.Price, "sig", sig)
	return sig, nil
}

// WithdrawFromTreasury moves everything above the rent-exempt minimum from
// the treasury to the authority.
func (m *Marketplace) WithdrawFromTreasury(ctx context.Context, authority solana.PrivateKey) (solana.Signature, error) {
	if !m.isNative() {
		return solana.Signature{}, ErrUnsupportedTreasuryMint
	}
	addrs, err := m.Addresses(authority.PublicKey())
	if err != nil {
		return solana.Signature{}, err
	}
	balance, err := m.wm.Client.GetBalance(ctx, addrs.Treasury.Address, m.wm.Commitment)
	if err != nil {
		return solana.Signature{}, errors.Wrapf(err, "failed to get balance of treasury %s", addrs.Treasury.Address)
	}
	rent, err := m.treasuryRent(ctx)
	if err != nil {
		return solana.Signature{}, err
	}
	if balance.Value <= rent {
		return solana.Signature{}, errors.Wrapf(ErrNothingToWithdraw, "balance %d, rent-exempt minimum %d", balance.Value, rent)
	}
	amount := balance.Value - rent
	instruction, err := m.build(auctionhouse.NewWithdrawFromTreasuryInstructionBuilder().
		SetAmount(amount).
		SetTreasuryMintAccount(m.treasuryMint).
		SetAuthorityAccount(authority.PublicKey()).
		SetTreasuryWithdrawalDestinationAccount(authority.PublicKey()).
		SetAuctionHouseTreasuryAccount(addrs.Treasury.Address).
		SetAuctionHouseAccount(addrs.AuctionHouse.Address))
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := m.wm.SendAndConfirmInstructions(ctx, authority.PublicKey(), []solana.Instruction{instruction}, []solana.PrivateKey{authority})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to withdraw from treasury")
	}
	m.log.Info("Withdrawn from treasury", "treasury", addrs.Treasury.Address, "amount", amount, "sig", sig)
	return sig, nil
}

// FetchAuctionHouse reads and decodes the auction house account at address.
func (m *Marketplace) FetchAuctionHouse(ctx context.Context, address solana.PublicKey) (*auctionhouse.AuctionHouse, error) {
	info, err := m.wm.Client.GetAccountInfoWithOpts(ctx, address, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get auction house account %s", address)
	}
	if info == nil || info.Value == nil {
		return nil, errors.Wrapf(rpc.ErrNotFound, "auction house account %s", address)
	}
	if !info.Value.Owner.Equals(m.deriver.ProgramID) {
		return nil, errors.Errorf("account %s is owned by %s, not %s", address, info.Value.Owner, m.deriver.ProgramID)
	}
	return auctionhouse.DecodeAuctionHouse(info.GetBinary())
}

func (m *Marketplace) treasuryRent(ctx context.Context) (uint64, error) {
	rent, err := m.wm.Client.GetMinimumBalanceForRentExemption(ctx, 0, m.wm.Commitment)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get rent-exempt minimum")
	}
	return rent, nil
}

func (m *Marketplace) buyInstruction(authority, buyer solana.PublicKey, l *listing, p ListingParams) (solana.Instruction, error) {
	escrow, err := m.deriver.BuyerEscrow(l.AuctionHouse.Address, buyer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive buyer escrow")
	}
	buyerTradeState, err := m.deriver.TradeState(m.tradeState(l.AuctionHouse.Address, buyer, l.tokenAccount, p))
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive buyer trade state")
	}
	paymentAccount, err := m.paymentAccount(buyer)
	if err != nil {
		return nil, err
	}
	return m.build(auctionhouse.NewBuyInstructionBuilder().
		SetTradeStateBump(buyerTradeState.Bump).
		SetEscrowPaymentBump(escrow.Bump).
		SetBuyerPrice(p.Price).
		SetTokenSize(p.TokenSize).
		SetWalletAccount(buyer).
		SetPaymentAccountAccount(paymentAccount).
		SetTransferAuthorityAccount(buyer).
		SetTreasuryMintAccount(m.treasuryMint).
		SetTokenAccountAccount(l.tokenAccount).
		SetMetadataAccount(l.metadata).
		SetEscrowPaymentAccountAccount(escrow.Address).
		SetAuthorityAccount(authority).
		SetAuctionHouseAccount(l.AuctionHouse.Address).
		SetAuctionHouseFeeAccountAccount(l.Fee.Address).
		SetBuyerTradeStateAccount(buyerTradeState.Address))
}

func (m *Marketplace) executeSaleInstruction(
	authority,
	buyer solana.PublicKey,
	l *listing,
	p ListingParams,
	creators []solana.PublicKey,
) (solana.Instruction, error) {
	escrow, err := m.deriver.BuyerEscrow(l.AuctionHouse.Address, buyer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive buyer escrow")
	}
	buyerTradeState, err := m.deriver.TradeState(m.tradeState(l.AuctionHouse.Address, buyer, l.tokenAccount, p))
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive buyer trade state")
	}
	sellerPaymentReceipt, err := m.paymentAccount(p.Seller)
	if err != nil {
		return nil, err
	}
	buyerReceiptTokenAccount, _, err := solana.FindAssociatedTokenAddress(buyer, p.Mint)
	if err != nil {
		return nil, err
	}
	builder := auctionhouse.NewExecuteSaleInstructionBuilder().
		SetEscrowPaymentBump(escrow.Bump).
		SetFreeTradeStateBump(l.freeTradeState.Bump).
		SetProgramAsSignerBump(l.ProgramAsSigner.Bump).
		SetBuyerPrice(p.Price).
		SetTokenSize(p.TokenSize).
		SetBuyerAccount(buyer).
		SetSellerAccount(p.Seller).
		SetTokenAccountAccount(l.tokenAccount).
		SetTokenMintAccount(p.Mint).
		SetMetadataAccount(l.metadata).
		SetTreasuryMintAccount(m.treasuryMint).
		SetEscrowPaymentAccountAccount(escrow.Address).
		SetSellerPaymentReceiptAccountAccount(sellerPaymentReceipt).
		SetBuyerReceiptTokenAccountAccount(buyerReceiptTokenAccount).
		SetAuthorityAccount(authority).
		SetAuctionHouseAccount(l.AuctionHouse.Address).
		SetAuctionHouseFeeAccountAccount(l.Fee.Address).
		SetAuctionHouseTreasuryAccount(l.Treasury.Address).
		SetBuyerTradeStateAccount(buyerTradeState.Address).
		SetSellerTradeStateAccount(l.sellerTradeState.Address).
		SetFreeTradeStateAccount(l.freeTradeState.Address).
		SetProgramAsSignerAccount(l.ProgramAsSigner.Address)
	for _, creator := range creators {
		builder.Append(solana.NewAccountMeta(creator, true, false))
	}
	return m.build(builder)
}
