package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// KeypairPath picks the keypair file: the flag value, then the environment,
// then the solana CLI default.
func KeypairPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv(EnvVarKeypair); path != "" {
		return path
	}
	return DefaultKeypairPath
}

// LoadKeypair reads a solana-keygen JSON keypair file.
func LoadKeypair(path string) (solana.PrivateKey, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load keypair from %s", path)
	}
	return key, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
