package cli

import (
	"io"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/lincot/solana-marketplace/internal/config"
	"github.com/lincot/solana-marketplace/pda"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type DeriveCmd struct{}

func NewDeriveCmd() *DeriveCmd {
	return &DeriveCmd{}
}

func (c *DeriveCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the program derived addresses of an auction house",
		Long: "Print the program derived addresses of an auction house. Buyer escrow is included when --buyer " +
			"is set and the seller trade state when --seller, --token-account and --mint are set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmd.Root().PersistentFlags().GetString("env")
			if err != nil {
				return errors.Wrap(err, "failed to get env flag")
			}
			network, err := config.NetworkConfigForEnv(env)
			if err != nil {
				return err
			}
			treasuryMint, err := publicKeyFlag(cmd.Root().PersistentFlags().GetString("treasury-mint"))
			if err != nil {
				return errors.Wrap(err, "invalid treasury-mint flag")
			}
			authority, err := publicKeyFlag(cmd.Flags().GetString("authority"))
			if err != nil {
				return errors.Wrap(err, "invalid authority flag")
			}
			buyer, err := optionalPublicKeyFlag(cmd.Flags().GetString("buyer"))
			if err != nil {
				return errors.Wrap(err, "invalid buyer flag")
			}
			seller, err := optionalPublicKeyFlag(cmd.Flags().GetString("seller"))
			if err != nil {
				return errors.Wrap(err, "invalid seller flag")
			}
			tokenAccount, err := optionalPublicKeyFlag(cmd.Flags().GetString("token-account"))
			if err != nil {
				return errors.Wrap(err, "invalid token-account flag")
			}
			mint, err := optionalPublicKeyFlag(cmd.Flags().GetString("mint"))
			if err != nil {
				return errors.Wrap(err, "invalid mint flag")
			}
			price, err := amountFlag(cmd.Flags().GetString("price"))
			if err != nil {
				return errors.Wrap(err, "invalid price flag")
			}
			size, err := amountFlag(cmd.Flags().GetString("size"))
			if err != nil {
				return errors.Wrap(err, "invalid size flag")
			}

			house := pda.AuctionHouse{Creator: authority, TreasuryMint: treasuryMint}
			rows, err := deriveAll(pda.NewDeriver(network.ProgramID), house, deriveOptions{
				buyer:        buyer,
				seller:       seller,
				tokenAccount: tokenAccount,
				mint:         mint,
				price:        price,
				size:         size,
			})
			if err != nil {
				return err
			}
			printDerived(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().String("authority", "", "auction house authority")
	cmd.Flags().String("buyer", "", "buyer wallet for the escrow address")
	cmd.Flags().String("seller", "", "seller wallet for the trade state address")
	cmd.Flags().String("token-account", "", "seller token account for the trade state address")
	cmd.Flags().String("mint", "", "token mint for the trade state address")
	cmd.Flags().String("price", "0", "listing price in base units of the treasury mint")
	cmd.Flags().String("size", "1", "listing size in base units of the token")
	_ = cmd.MarkFlagRequired("authority")

	return cmd
}

type deriveOptions struct {
	buyer        solana.PublicKey
	seller       solana.PublicKey
	tokenAccount solana.PublicKey
	mint         solana.PublicKey
	price        uint64
	size         uint64
}

type derivedRow struct {
	kind    pda.Kind
	address pda.DerivedAddress
}

func deriveAll(d pda.Deriver, house pda.AuctionHouse, opts deriveOptions) ([]derivedRow, error) {
	ah, err := d.Find(house)
	if err != nil {
		return nil, err
	}
	resources := []pda.Resource{
		house,
		pda.Fee{AuctionHouse: ah.Address},
		pda.Treasury{AuctionHouse: ah.Address},
		pda.ProgramAsSigner{},
	}
	if !opts.buyer.IsZero() {
		resources = append(resources, pda.BuyerEscrow{AuctionHouse: ah.Address, Buyer: opts.buyer})
	}
	if !opts.seller.IsZero() && !opts.tokenAccount.IsZero() && !opts.mint.IsZero() {
		resources = append(resources, pda.TradeState{
			AuctionHouse: ah.Address,
			Wallet:       opts.seller,
			TokenAccount: opts.tokenAccount,
			TreasuryMint: house.TreasuryMint,
			TokenMint:    opts.mint,
			Price:        opts.price,
			TokenSize:    opts.size,
		})
	}

	rows := make([]derivedRow, 0, len(resources))
	for _, r := range resources {
		derived, err := d.Find(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive %s", r.Kind())
		}
		rows = append(rows, derivedRow{kind: r.Kind(), address: derived})
	}
	return rows, nil
}

func printDerived(w io.Writer, rows []derivedRow) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{"Account", "Address", "Bump"})
	for _, r := range rows {
		table.Append([]string{r.kind.String(), r.address.Address.String(), strconv.Itoa(int(r.address.Bump))})
	}
	table.Render()
}

func amountFlag(value string, err error) (uint64, error) {
	if err != nil {
		return 0, err
	}
	return pda.ParseAmount(value)
}
