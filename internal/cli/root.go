package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/lincot/solana-marketplace/internal/config"
	"github.com/lincot/solana-marketplace/marketplace"
	"github.com/lincot/solana-marketplace/walletmanager"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

func Run() ExitCode {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "auction-house",
		Short:        "NFT marketplace client for the Metaplex auction house program.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return errors.Wrap(err, "failed to show help")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "set debug logging level")
	rootCmd.PersistentFlags().StringP("env", "e", config.EnvDevnet, "network environment (localnet, devnet, testnet, mainnet-beta)")
	rootCmd.PersistentFlags().StringP("keypair", "k", "", "path to the signer keypair (defaults to $"+config.EnvVarKeypair+" or "+config.DefaultKeypairPath+")")
	rootCmd.PersistentFlags().String("treasury-mint", solana.SolMint.String(), "treasury mint of the auction house")
	rootCmd.PersistentFlags().Duration("confirmation-timeout", 60*time.Second, "how long to wait for transaction confirmation")
	rootCmd.PersistentFlags().Bool("skip-preflight", false, "skip transaction simulation")

	rootCmd.AddCommand(
		NewDeriveCmd().Command(),
		NewCreateCmd().Command(),
		NewSellCmd().Command(),
		NewBuyCmd().Command(),
		NewDepositCmd().Command(),
		NewExecuteSaleCmd().Command(),
		NewWithdrawCmd().Command(),
		NewShowCmd().Command(),
		NewCreateMintCmd().Command(),
		NewFlowCmd().Command(),
	)
	return rootCmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// session is everything a command needs to talk to the cluster.
type session struct {
	log     *slog.Logger
	network *config.NetworkConfig
	wallets *walletmanager.WalletManager
	market  *marketplace.Marketplace
	keypair string
}

func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get verbose flag")
	}
	env, err := flags.GetString("env")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get env flag")
	}
	keypair, err := flags.GetString("keypair")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get keypair flag")
	}
	treasuryMint, err := publicKeyFlag(flags.GetString("treasury-mint"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid treasury-mint flag")
	}
	timeout, err := flags.GetDuration("confirmation-timeout")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get confirmation-timeout flag")
	}
	skipPreflight, err := flags.GetBool("skip-preflight")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get skip-preflight flag")
	}

	network, err := config.NetworkConfigForEnv(env)
	if err != nil {
		return nil, err
	}
	log := newLogger(verbose)
	log.Debug("Using network", "env", network.Moniker, "rpc", network.RPCURL, "program", network.ProgramID)

	commitment := rpc.CommitmentConfirmed
	status := rpc.ConfirmationStatusConfirmed
	if network.Moniker == config.EnvMainnetBeta {
		commitment = rpc.CommitmentFinalized
		status = rpc.ConfirmationStatusFinalized
	}
	wallets := walletmanager.NewWalletManager(log, rpc.New(network.RPCURL),
		walletmanager.WithCommitment(commitment),
		walletmanager.WithConfirmationStatus(status),
		walletmanager.WithConfirmationTimeout(timeout),
		walletmanager.WithConfirmationDelay(time.Second),
		walletmanager.WithSkipPreflight(skipPreflight),
	)
	market, err := marketplace.New(marketplace.Config{
		Log:          log,
		Wallets:      wallets,
		ProgramID:    network.ProgramID,
		TreasuryMint: treasuryMint,
	})
	if err != nil {
		return nil, err
	}
	return &session{
		log:     log,
		network: network,
		wallets: wallets,
		market:  market,
		keypair: keypair,
	}, nil
}

func (s *session) signer() (solana.PrivateKey, error) {
	return config.LoadKeypair(config.KeypairPath(s.keypair))
}

func publicKeyFlag(value string, err error) (solana.PublicKey, error) {
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBase58(value)
}

// optionalPublicKeyFlag returns the zero key for an empty flag.
func optionalPublicKeyFlag(value string, err error) (solana.PublicKey, error) {
	if err != nil || value == "" {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBase58(value)
}
