package walletmanager

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

func SolToLamports(sol float64) uint64 {
	return uint64(sol * float64(solana.LAMPORTS_PER_SOL))
}

func appendSignerIfNotPresented(signers []solana.PrivateKey, newSigner solana.PrivateKey) []solana.PrivateKey {
	for _, signer := range signers {
		if signer.PublicKey() == newSigner.PublicKey() {
			return signers
		}
	}
	return append(signers, newSigner)
}

func confirmationRank(status rpc.ConfirmationStatusType) int {
	switch status {
	case rpc.ConfirmationStatusProcessed:
		return 1
	case rpc.ConfirmationStatusConfirmed:
		return 2
	case rpc.ConfirmationStatusFinalized:
		return 3
	default:
		return 0
	}
}

// reached reports whether status is at least as strong as target.
func reached(status, target rpc.ConfirmationStatusType) bool {
	rank := confirmationRank(status)
	return rank > 0 && rank >= confirmationRank(target)
}
