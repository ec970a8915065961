package config

import (
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

const (
	EnvLocalnet    = "localnet"
	EnvDevnet      = "devnet"
	EnvTestnet     = "testnet"
	EnvMainnetBeta = "mainnet-beta"
	EnvMainnet     = "mainnet"
)

var (
	ErrInvalidEnvironment = errors.New("invalid environment")
)

type NetworkConfig struct {
	Moniker   string
	RPCURL    string
	ProgramID solana.PublicKey
	// Faucet reports whether the cluster serves airdrops.
	Faucet bool
}

func NetworkConfigForEnv(env string) (*NetworkConfig, error) {
	var config *NetworkConfig
	switch env {
	case EnvMainnetBeta, EnvMainnet:
		config = &NetworkConfig{Moniker: EnvMainnetBeta, RPCURL: rpc.MainNetBeta_RPC}
	case EnvTestnet:
		config = &NetworkConfig{Moniker: EnvTestnet, RPCURL: rpc.TestNet_RPC, Faucet: true}
	case EnvDevnet:
		config = &NetworkConfig{Moniker: EnvDevnet, RPCURL: rpc.DevNet_RPC, Faucet: true}
	case EnvLocalnet:
		config = &NetworkConfig{Moniker: EnvLocalnet, RPCURL: rpc.LocalNet_RPC, Faucet: true}
	default:
		return nil, errors.Wrap(ErrInvalidEnvironment, env)
	}

	programID, err := solana.PublicKeyFromBase58(AuctionHouseProgramID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse auction house program ID")
	}
	config.ProgramID = programID

	if rpcURL := os.Getenv(EnvVarRPCURL); rpcURL != "" {
		config.RPCURL = rpcURL
	}
	if raw := os.Getenv(EnvVarProgramID); raw != "" {
		programID, err := solana.PublicKeyFromBase58(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", EnvVarProgramID)
		}
		config.ProgramID = programID
	}

	return config, nil
}
