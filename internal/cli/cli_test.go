package cli

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/lincot/solana-marketplace/internal/config"
	"github.com/lincot/solana-marketplace/pda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthority = "BPFLoader1111111111111111111111111111111111"

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvVarProgramID, "")
	t.Setenv(config.EnvVarRPCURL, "")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_Derive(t *testing.T) {
	out, err := executeRoot(t, "derive", "--env", config.EnvLocalnet, "--authority", testAuthority)
	require.NoError(t, err)

	for _, want := range []string{
		"vo9Go67qhkWbFT21nsWwvdt2RUF5JSWidjaKiTDRAsm",
		"FTtiqZ4kDgCGMkYjdhqR53U1TwSdGAzBRpPh4rXArjHT",
		"C4j8DZx1kiNx2SpVDGCZvjS6pxvhEk2P38UPsR6Fhj8T",
		"HS2eL9WJbh7pA4i4veK3YDwhGLRjY3uKryvG1NbHRprj",
		pda.KindAuctionHouse.String(),
		pda.KindProgramAsSigner.String(),
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, pda.KindBuyerEscrow.String())
	assert.NotContains(t, out, pda.KindTradeState.String())
}

func TestCLI_Derive_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing authority", args: []string{"derive"}},
		{name: "invalid authority", args: []string{"derive", "--authority", "not-a-key"}},
		{name: "invalid env", args: []string{"derive", "--env", "moonnet", "--authority", testAuthority}},
		{name: "invalid treasury mint", args: []string{"derive", "--authority", testAuthority, "--treasury-mint", "0"}},
		{name: "price overflow", args: []string{"derive", "--authority", testAuthority, "--price", "18446744073709551616"}},
		{name: "negative size", args: []string{"derive", "--authority", testAuthority, "--size=-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeRoot(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestCLI_DeriveAll_OptionalResources(t *testing.T) {
	d := pda.AuctionHouseDeriver()
	house := pda.AuctionHouse{Creator: solana.MustPublicKeyFromBase58(testAuthority), TreasuryMint: solana.SolMint}
	buyer := solana.NewWallet().PublicKey()
	seller := solana.NewWallet().PublicKey()
	tokenAccount := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	rows, err := deriveAll(d, house, deriveOptions{
		buyer:        buyer,
		seller:       seller,
		tokenAccount: tokenAccount,
		mint:         mint,
		price:        100_000,
		size:         1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 6)

	kinds := make([]pda.Kind, 0, len(rows))
	for _, r := range rows {
		kinds = append(kinds, r.kind)
	}
	assert.Equal(t, []pda.Kind{
		pda.KindAuctionHouse,
		pda.KindFee,
		pda.KindTreasury,
		pda.KindProgramAsSigner,
		pda.KindBuyerEscrow,
		pda.KindTradeState,
	}, kinds)

	ah, err := d.AuctionHouse(house.Creator, house.TreasuryMint)
	require.NoError(t, err)
	escrow, err := d.BuyerEscrow(ah.Address, buyer)
	require.NoError(t, err)
	assert.Equal(t, escrow, rows[4].address)

	ts, err := d.TradeState(pda.TradeState{
		AuctionHouse: ah.Address,
		Wallet:       seller,
		TokenAccount: tokenAccount,
		TreasuryMint: house.TreasuryMint,
		TokenMint:    mint,
		Price:        100_000,
		TokenSize:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, ts, rows[5].address)
}

func TestCLI_DeriveAll_PartialTradeStateIgnored(t *testing.T) {
	house := pda.AuctionHouse{Creator: solana.MustPublicKeyFromBase58(testAuthority), TreasuryMint: solana.SolMint}
	rows, err := deriveAll(pda.AuctionHouseDeriver(), house, deriveOptions{
		seller: solana.NewWallet().PublicKey(),
		mint:   solana.NewWallet().PublicKey(),
	})
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestCLI_ListingFlags(t *testing.T) {
	defaultSeller := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	cmd := NewSellCmd().Command()
	require.NoError(t, cmd.Flags().Parse([]string{"--mint", mint.String(), "--price", "100000"}))
	p, err := listingFlags(cmd, defaultSeller)
	require.NoError(t, err)
	assert.Equal(t, defaultSeller, p.Seller)
	assert.Equal(t, mint, p.Mint)
	assert.True(t, p.Metadata.IsZero())
	assert.Equal(t, uint64(100_000), p.Price)
	assert.Equal(t, uint64(1), p.TokenSize)

	seller := solana.NewWallet().PublicKey()
	cmd = NewSellCmd().Command()
	require.NoError(t, cmd.Flags().Parse([]string{"--mint", mint.String(), "--price", "5", "--size", "3", "--seller", seller.String()}))
	p, err = listingFlags(cmd, defaultSeller)
	require.NoError(t, err)
	assert.Equal(t, seller, p.Seller)
	assert.Equal(t, uint64(3), p.TokenSize)

	cmd = NewSellCmd().Command()
	require.NoError(t, cmd.Flags().Parse([]string{"--mint", mint.String(), "--price", "1.5"}))
	_, err = listingFlags(cmd, defaultSeller)
	require.Error(t, err)
}

func TestCLI_CreatorsFlag(t *testing.T) {
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	cmd := NewExecuteSaleCmd().Command()
	require.NoError(t, cmd.Flags().Parse([]string{"--creator", a.String(), "--creator", b.String()}))
	creators, err := creatorsFlag(cmd)
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{a, b}, creators)

	cmd = NewExecuteSaleCmd().Command()
	require.NoError(t, cmd.Flags().Parse([]string{"--creator", "bogus"}))
	_, err = creatorsFlag(cmd)
	require.Error(t, err)
}

func TestCLI_AuthorityFlag(t *testing.T) {
	signer := solana.NewWallet().PrivateKey

	cmd := NewDepositCmd().Command()
	require.NoError(t, cmd.Flags().Parse(nil))
	authority, err := authorityFlag(cmd, signer)
	require.NoError(t, err)
	assert.Equal(t, signer.PublicKey(), authority)

	other := solana.NewWallet().PublicKey()
	cmd = NewDepositCmd().Command()
	require.NoError(t, cmd.Flags().Parse([]string{"--authority", other.String()}))
	authority, err = authorityFlag(cmd, signer)
	require.NoError(t, err)
	assert.Equal(t, other, authority)
}
