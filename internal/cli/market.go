package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/lincot/solana-marketplace/marketplace"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func addAuthorityFlag(cmd *cobra.Command) {
	cmd.Flags().String("authority", "", "auction house authority (defaults to the signer)")
}

// authorityFlag falls back to the signer when --authority is unset.
func authorityFlag(cmd *cobra.Command, signer solana.PrivateKey) (solana.PublicKey, error) {
	authority, err := optionalPublicKeyFlag(cmd.Flags().GetString("authority"))
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "invalid authority flag")
	}
	if authority.IsZero() {
		return signer.PublicKey(), nil
	}
	return authority, nil
}

func addListingFlags(cmd *cobra.Command) {
	cmd.Flags().String("seller", "", "seller wallet")
	cmd.Flags().String("mint", "", "token mint")
	cmd.Flags().String("metadata", "", "token metadata account (derived from --mint when unset)")
	cmd.Flags().String("price", "", "price in base units of the treasury mint")
	cmd.Flags().String("size", "1", "token size in base units")
	_ = cmd.MarkFlagRequired("mint")
	_ = cmd.MarkFlagRequired("price")
}

func listingFlags(cmd *cobra.Command, defaultSeller solana.PublicKey) (marketplace.ListingParams, error) {
	var p marketplace.ListingParams
	seller, err := optionalPublicKeyFlag(cmd.Flags().GetString("seller"))
	if err != nil {
		return p, errors.Wrap(err, "invalid seller flag")
	}
	if seller.IsZero() {
		seller = defaultSeller
	}
	mint, err := publicKeyFlag(cmd.Flags().GetString("mint"))
	if err != nil {
		return p, errors.Wrap(err, "invalid mint flag")
	}
	metadata, err := optionalPublicKeyFlag(cmd.Flags().GetString("metadata"))
	if err != nil {
		return p, errors.Wrap(err, "invalid metadata flag")
	}
	price, err := amountFlag(cmd.Flags().GetString("price"))
	if err != nil {
		return p, errors.Wrap(err, "invalid price flag")
	}
	size, err := amountFlag(cmd.Flags().GetString("size"))
	if err != nil {
		return p, errors.Wrap(err, "invalid size flag")
	}
	return marketplace.ListingParams{
		Seller:    seller,
		Mint:      mint,
		Metadata:  metadata,
		Price:     price,
		TokenSize: size,
	}, nil
}

func creatorsFlag(cmd *cobra.Command) ([]solana.PublicKey, error) {
	values, err := cmd.Flags().GetStringSlice("creator")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get creator flag")
	}
	creators := make([]solana.PublicKey, 0, len(values))
	for _, v := range values {
		creator, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid creator %q", v)
		}
		creators = append(creators, creator)
	}
	return creators, nil
}

func printSignature(sig solana.Signature) {
	fmt.Fprintln(os.Stdout, sig.String())
}

type CreateCmd struct{}

func NewCreateCmd() *CreateCmd {
	return &CreateCmd{}
}

func (c *CreateCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an auction house owned by the signer",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			signer, err := s.signer()
			if err != nil {
				return err
			}
			fee, err := cmd.Flags().GetUint16("seller-fee-basis-points")
			if err != nil {
				return errors.Wrap(err, "failed to get seller-fee-basis-points flag")
			}
			signOff, err := cmd.Flags().GetBool("requires-sign-off")
			if err != nil {
				return errors.Wrap(err, "failed to get requires-sign-off flag")
			}
			canChange, err := cmd.Flags().GetBool("can-change-sale-price")
			if err != nil {
				return errors.Wrap(err, "failed to get can-change-sale-price flag")
			}

			ctx, cancel := signalContext()
			defer cancel()

			sig, err := s.market.CreateAuctionHouse(ctx, signer, marketplace.CreateParams{
				SellerFeeBasisPoints: fee,
				RequiresSignOff:      signOff,
				CanChangeSalePrice:   canChange,
			})
			if err != nil {
				return err
			}
			printSignature(sig)
			return nil
		},
	}

	cmd.Flags().Uint16("seller-fee-basis-points", 0, "marketplace fee in basis points")
	cmd.Flags().Bool("requires-sign-off", false, "require the authority to sign every sale")
	cmd.Flags().Bool("can-change-sale-price", false, "allow the authority to change free listing prices")

	return cmd
}

type SellCmd struct{}

func NewSellCmd() *SellCmd {
	return &SellCmd{}
}

func (c *SellCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "List a token owned by the signer",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			signer, err := s.signer()
			if err != nil {
				return err
			}
			authority, err := authorityFlag(cmd, signer)
			if err != nil {
				return err
			}
			p, err := listingFlags(cmd, signer.PublicKey())
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			sig, err := s.market.Sell(ctx, authority, signer, p)
			if err != nil {
				return err
			}
			printSignature(sig)
			return nil
		},
	}

	addAuthorityFlag(cmd)
	addListingFlags(cmd)

	return cmd
}

type BuyCmd struct{}

func NewBuyCmd() *BuyCmd {
	return &BuyCmd{}
}

func (c *BuyCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Place an offer on a listing from the signer's escrow",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			signer, err := s.signer()
			if err != nil {
				return err
			}
			authority, err := authorityFlag(cmd, signer)
			if err != nil {
				return err
			}
			p, err := listingFlags(cmd, solana.PublicKey{})
			if err != nil {
				return err
			}
			now, err := cmd.Flags().GetBool("now")
			if err != nil {
				return errors.Wrap(err, "failed to get now flag")
			}

			ctx, cancel := signalContext()
			defer cancel()

			var sig solana.Signature
			if now {
				creators, err := creatorsFlag(cmd)
				if err != nil {
					return err
				}
				sig, err = s.market.BuyNow(ctx, authority, signer, p, creators)
				if err != nil {
					return err
				}
			} else {
				sig, err = s.market.Buy(ctx, authority, signer, p)
				if err != nil {
					return err
				}
			}
			printSignature(sig)
			return nil
		},
	}

	addAuthorityFlag(cmd)
	addListingFlags(cmd)
	cmd.Flags().Bool("now", false, "execute the sale in the same transaction")
	cmd.Flags().StringSlice("creator", nil, "metadata creators in order, used with --now")
	_ = cmd.MarkFlagRequired("seller")

	return cmd
}

type DepositCmd struct{}

func NewDepositCmd() *DepositCmd {
	return &DepositCmd{}
}

func (c *DepositCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Move funds from the signer into its buyer escrow",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			signer, err := s.signer()
			if err != nil {
				return err
			}
			authority, err := authorityFlag(cmd, signer)
			if err != nil {
				return err
			}
			amount, err := amountFlag(cmd.Flags().GetString("amount"))
			if err != nil {
				return errors.Wrap(err, "invalid amount flag")
			}

			ctx, cancel := signalContext()
			defer cancel()

			sig, err := s.market.Deposit(ctx, authority, signer, amount)
			if err != nil {
				return err
			}
			printSignature(sig)
			return nil
		},
	}

	addAuthorityFlag(cmd)
	cmd.Flags().String("amount", "", "amount in base units of the treasury mint")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

type ExecuteSaleCmd struct{}

func NewExecuteSaleCmd() *ExecuteSaleCmd {
	return &ExecuteSaleCmd{}
}

func (c *ExecuteSaleCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute-sale",
		Short: "Settle the signer's offer against a matching listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			signer, err := s.signer()
			if err != nil {
				return err
			}
			authority, err := authorityFlag(cmd, signer)
			if err != nil {
				return err
			}
			p, err := listingFlags(cmd, solana.PublicKey{})
			if err != nil {
				return err
			}
			creators, err := creatorsFlag(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			sig, err := s.market.ExecuteSale(ctx, authority, signer, p, creators)
			if err != nil {
				return err
			}
			printSignature(sig)
			return nil
		},
	}

	addAuthorityFlag(cmd)
	addListingFlags(cmd)
	cmd.Flags().StringSlice("creator", nil, "metadata creators in order")
	_ = cmd.MarkFlagRequired("seller")

	return cmd
}

type WithdrawCmd struct{}

func NewWithdrawCmd() *WithdrawCmd {
	return &WithdrawCmd{}
}

func (c *WithdrawCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw collected fees from the signer's auction house treasury",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			signer, err := s.signer()
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			sig, err := s.market.WithdrawFromTreasury(ctx, signer)
			if errors.Is(err, marketplace.ErrNothingToWithdraw) {
				s.log.Info("Treasury holds only its rent-exempt minimum")
				return nil
			}
			if err != nil {
				return err
			}
			printSignature(sig)
			return nil
		},
	}
}

type ShowCmd struct{}

func NewShowCmd() *ShowCmd {
	return &ShowCmd{}
}

func (c *ShowCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch and print an auction house account",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			address, err := optionalPublicKeyFlag(cmd.Flags().GetString("address"))
			if err != nil {
				return errors.Wrap(err, "invalid address flag")
			}
			if address.IsZero() {
				authority, err := publicKeyFlag(cmd.Flags().GetString("authority"))
				if err != nil {
					return errors.Wrap(err, "either --address or --authority is required")
				}
				addrs, err := s.market.Addresses(authority)
				if err != nil {
					return err
				}
				address = addrs.AuctionHouse.Address
			}

			ctx, cancel := signalContext()
			defer cancel()

			house, err := s.market.FetchAuctionHouse(ctx, address)
			if err != nil {
				return err
			}
			verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
			if err != nil {
				return errors.Wrap(err, "failed to get verbose flag")
			}
			if verbose {
				spew.Fdump(os.Stdout, house)
				return nil
			}
			fmt.Fprintln(os.Stdout, house.String())
			return nil
		},
	}

	cmd.Flags().String("address", "", "auction house account")
	cmd.Flags().String("authority", "", "derive the auction house of this authority")

	return cmd
}
