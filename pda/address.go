package pda

import (
	"crypto/sha256"
	"hash"
	"math"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	// MaxSeedLength is the longest a single seed may be.
	MaxSeedLength = 32
	// MaxSeeds is the largest number of seeds, bump included.
	MaxSeeds = 16

	programDerivedMarker = "ProgramDerivedAddress"
)

var (
	ErrInvalidSeed      = errors.New("invalid seed")
	ErrNoValidBumpFound = errors.New("no valid bump found")
	ErrOnCurve          = errors.New("derived address lies on the ed25519 curve")
)

var programHashCtor = sha256.New

// DerivedAddress is a program derived address together with the bump seed
// that moved it off the curve.
type DerivedAddress struct {
	Address solana.PublicKey
	Bump    uint8
}

func (d DerivedAddress) String() string {
	return d.Address.String()
}

// CreateProgramAddress hashes the seeds, the program id and the PDA marker and
// returns the digest as an address. Digests that decode as a valid
// compressed Edwards point are rejected with ErrOnCurve since a private key
// may exist for them.
func CreateProgramAddress(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, error) {
	if err := validateSeeds(seeds); err != nil {
		return solana.PublicKey{}, err
	}

	h := programHashCtor()
	for _, s := range seeds {
		if _, err := h.Write(s); err != nil {
			return solana.PublicKey{}, errors.Wrap(err, "failed to hash seed")
		}
	}
	for _, v := range [][]byte{programID[:], []byte(programDerivedMarker)} {
		if _, err := h.Write(v); err != nil {
			return solana.PublicKey{}, errors.Wrap(err, "failed to hash seed")
		}
	}

	candidate := solana.PublicKeyFromBytes(sum(h))
	if isOnCurve(candidate) {
		return solana.PublicKey{}, ErrOnCurve
	}
	return candidate, nil
}

// Derive searches bumps from 255 down to 0 and returns the first address off
// the curve. The bump is appended as the last seed.
func Derive(programID solana.PublicKey, seeds [][]byte) (DerivedAddress, error) {
	if len(seeds) > MaxSeeds-1 {
		return DerivedAddress{}, errors.Wrapf(ErrInvalidSeed, "%d seeds leave no room for the bump", len(seeds))
	}
	if err := validateSeeds(seeds); err != nil {
		return DerivedAddress{}, err
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bump := []byte{math.MaxUint8}
	withBump[len(seeds)] = bump

	for i := math.MaxUint8; i >= 0; i-- {
		bump[0] = uint8(i)
		addr, err := CreateProgramAddress(programID, withBump...)
		if err == nil {
			return DerivedAddress{Address: addr, Bump: bump[0]}, nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return DerivedAddress{}, err
		}
	}
	return DerivedAddress{}, ErrNoValidBumpFound
}

// Verify reports whether appending bump to seeds reproduces address.
func Verify(programID solana.PublicKey, seeds [][]byte, d DerivedAddress) bool {
	addr, err := CreateProgramAddress(programID, append(append([][]byte{}, seeds...), []byte{d.Bump})...)
	if err != nil {
		return false
	}
	return addr.Equals(d.Address)
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(ErrInvalidSeed, "too many seeds: %d > %d", len(seeds), MaxSeeds)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(ErrInvalidSeed, "seed %d is %d bytes, max %d", i, len(s), MaxSeedLength)
		}
	}
	return nil
}

func sum(h hash.Hash) []byte {
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out[:]
}

// isOnCurve mirrors curve25519-dalek's CompressedEdwardsY::decompress, which
// also accepts non-canonical encodings of valid points.
func isOnCurve(p solana.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}
