package cli

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/lincot/solana-marketplace/internal/config"
	"github.com/lincot/solana-marketplace/marketplace"
	"github.com/lincot/solana-marketplace/walletmanager"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type FlowCmd struct{}

func NewFlowCmd() *FlowCmd {
	return &FlowCmd{}
}

func (c *FlowCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Run a full sale against a fresh auction house",
		Long: "Run create, sell, buy, deposit, execute-sale and withdraw with a fresh authority and buyer. " +
			"The seller keypair must own the token of --mint and the mint must have token metadata.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			payer, err := s.signer()
			if err != nil {
				return err
			}
			sellerPath, err := cmd.Flags().GetString("seller-keypair")
			if err != nil {
				return errors.Wrap(err, "failed to get seller-keypair flag")
			}
			seller, err := config.LoadKeypair(sellerPath)
			if err != nil {
				return err
			}
			p, err := listingFlags(cmd, seller.PublicKey())
			if err != nil {
				return err
			}
			creators, err := creatorsFlag(cmd)
			if err != nil {
				return err
			}
			fee, err := cmd.Flags().GetUint16("seller-fee-basis-points")
			if err != nil {
				return errors.Wrap(err, "failed to get seller-fee-basis-points flag")
			}
			deposit, err := amountFlag(cmd.Flags().GetString("deposit"))
			if err != nil {
				return errors.Wrap(err, "invalid deposit flag")
			}
			funding, err := amountFlag(cmd.Flags().GetString("funding"))
			if err != nil {
				return errors.Wrap(err, "invalid funding flag")
			}
			airdrop, err := cmd.Flags().GetBool("airdrop")
			if err != nil {
				return errors.Wrap(err, "failed to get airdrop flag")
			}
			sweep, err := cmd.Flags().GetBool("sweep")
			if err != nil {
				return errors.Wrap(err, "failed to get sweep flag")
			}
			if airdrop && !s.network.Faucet {
				return errors.Errorf("%s has no faucet, fund the wallets from the signer instead", s.network.Moniker)
			}

			ctx, cancel := signalContext()
			defer cancel()

			return runFlow(ctx, s.wallets, s.market, flowParams{
				payer:                payer,
				seller:               seller,
				listing:              p,
				creators:             creators,
				sellerFeeBasisPoints: fee,
				deposit:              deposit,
				funding:              funding,
				airdrop:              airdrop,
				sweep:                sweep,
			})
		},
	}

	addListingFlags(cmd)
	cmd.Flags().String("seller-keypair", "", "keypair of the token owner")
	cmd.Flags().StringSlice("creator", nil, "metadata creators in order")
	cmd.Flags().Uint16("seller-fee-basis-points", 100, "marketplace fee in basis points")
	cmd.Flags().String("deposit", "10000000", "extra escrow deposit in lamports")
	cmd.Flags().String("funding", "1000000000", "lamports given to the fresh authority and buyer")
	cmd.Flags().Bool("airdrop", false, "fund the fresh wallets by airdrop instead of from the signer")
	cmd.Flags().Bool("sweep", true, "return the remaining SOL of the fresh wallets to the signer")
	_ = cmd.MarkFlagRequired("seller-keypair")

	return cmd
}

type flowParams struct {
	payer                solana.PrivateKey
	seller               solana.PrivateKey
	listing              marketplace.ListingParams
	creators             []solana.PublicKey
	sellerFeeBasisPoints uint16
	deposit              uint64
	funding              uint64
	airdrop              bool
	sweep                bool
}

func runFlow(ctx context.Context, wm *walletmanager.WalletManager, market *marketplace.Marketplace, p flowParams) error {
	authority, err := solana.NewRandomPrivateKey()
	if err != nil {
		return errors.Wrap(err, "failed to generate authority")
	}
	buyer, err := solana.NewRandomPrivateKey()
	if err != nil {
		return errors.Wrap(err, "failed to generate buyer")
	}
	if p.airdrop {
		err = wm.Fund(ctx, p.funding, authority.PublicKey(), buyer.PublicKey())
	} else {
		_, err = wm.SpreadLamports(ctx, p.payer, []solana.PublicKey{authority.PublicKey(), buyer.PublicKey()}, p.funding)
	}
	if err != nil {
		return errors.Wrap(err, "failed to fund wallets")
	}

	if _, err := market.CreateAuctionHouse(ctx, authority, marketplace.CreateParams{
		SellerFeeBasisPoints: p.sellerFeeBasisPoints,
	}); err != nil {
		return err
	}
	if _, err := market.Sell(ctx, authority.PublicKey(), p.seller, p.listing); err != nil {
		return err
	}
	if _, err := market.Buy(ctx, authority.PublicKey(), buyer, p.listing); err != nil {
		return err
	}
	if _, err := market.Deposit(ctx, authority.PublicKey(), buyer, p.deposit); err != nil {
		return err
	}
	if _, err := market.ExecuteSale(ctx, authority.PublicKey(), buyer, p.listing, p.creators); err != nil {
		return err
	}
	if _, err := market.WithdrawFromTreasury(ctx, authority); err != nil && !errors.Is(err, marketplace.ErrNothingToWithdraw) {
		return err
	}

	if p.sweep {
		if _, err := wm.CollectAllSol(ctx, []solana.PrivateKey{authority, buyer}, p.payer.PublicKey()); err != nil {
			return errors.Wrap(err, "failed to sweep wallets")
		}
	}
	return nil
}
