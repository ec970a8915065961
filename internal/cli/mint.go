package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type CreateMintCmd struct{}

func NewCreateMintCmd() *CreateMintCmd {
	return &CreateMintCmd{}
}

func (c *CreateMintCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-mint",
		Short: "Create a token mint owned by the signer and mint the supply to its associated token account",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			signer, err := s.signer()
			if err != nil {
				return err
			}
			decimals, err := cmd.Flags().GetUint8("decimals")
			if err != nil {
				return errors.Wrap(err, "failed to get decimals flag")
			}
			supply, err := amountFlag(cmd.Flags().GetString("supply"))
			if err != nil {
				return errors.Wrap(err, "invalid supply flag")
			}

			ctx, cancel := signalContext()
			defer cancel()

			mint, err := s.wallets.CreateMint(ctx, signer, decimals, supply)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "mint:          %s\ntoken account: %s\nsignature:     %s\n", mint.Address, mint.TokenAccount, mint.Signature)
			return nil
		},
	}

	cmd.Flags().Uint8("decimals", 0, "mint decimals")
	cmd.Flags().String("supply", "1", "amount to mint in base units")

	return cmd
}
