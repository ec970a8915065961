package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/lincot/solana-marketplace/internal/config"
	"github.com/stretchr/testify/require"
)

func writeKeypair(t *testing.T, dir string, key solana.PrivateKey) string {
	t.Helper()
	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}
	content, err := json.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(dir, "id.json")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestConfig_LoadKeypair(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	path := writeKeypair(t, t.TempDir(), key)

	got, err := config.LoadKeypair(path)
	require.NoError(t, err)
	require.Equal(t, key.PublicKey(), got.PublicKey())
}

func TestConfig_LoadKeypair_HomeRelative(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	key := solana.NewWallet().PrivateKey
	writeKeypair(t, home, key)

	got, err := config.LoadKeypair("~/id.json")
	require.NoError(t, err)
	require.Equal(t, key.PublicKey(), got.PublicKey())
}

func TestConfig_LoadKeypair_Missing(t *testing.T) {
	_, err := config.LoadKeypair(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestConfig_KeypairPath(t *testing.T) {
	t.Setenv(config.EnvVarKeypair, "")
	require.Equal(t, config.DefaultKeypairPath, config.KeypairPath(""))

	t.Setenv(config.EnvVarKeypair, "/tmp/env.json")
	require.Equal(t, "/tmp/env.json", config.KeypairPath(""))
	require.Equal(t, "/tmp/flag.json", config.KeypairPath("/tmp/flag.json"))
}
