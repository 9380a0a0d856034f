package address

import (
	"crypto/sha256"

	"github.com/drand/kyber/group/edwards25519"
	"golang.org/x/xerrors"
)

// Derivation namespaces. Clients and the settlement program must derive
// with byte-identical inputs; a mismatch is an authorization failure.
var (
	NSMintAuthority  = []byte("mint_authority")
	NSTokenAuthority = []byte("token_authority")
	NSReceipt        = []byte("receipt")
	NSListing        = []byte("listing")
	NSCharter        = []byte("charter")
	NSCashier        = []byte("cashier")
	NSTreasury       = []byte("treasury")
)

// derivedMarker domain-separates derived addresses from every other use
// of the hash.
var derivedMarker = []byte("EmporiumDerivedAddress")

var curve = edwards25519.NewBlakeSHA256Ed25519()

// ErrNoBump means no disambiguation byte produced an off-curve address.
// This cannot happen in practice for honest inputs; callers treat it as a
// fatal configuration error.
var ErrNoBump = xerrors.New("no valid bump found for derivation")

// Derive maps (program, namespace, keys...) to a unique address plus the
// disambiguation byte that produced it. The search starts at bump 255 and
// walks down until the hash is not a valid curve point, guaranteeing the
// resulting address has no private key. The function is pure: identical
// inputs always yield the identical (address, bump) pair.
func Derive(program Address, ns []byte, keys ...Address) (Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		h := sha256.New()
		h.Write(ns)
		for _, k := range keys {
			h.Write(k[:])
		}
		h.Write([]byte{uint8(bump)})
		h.Write(program[:])
		h.Write(derivedMarker)

		var a Address
		copy(a[:], h.Sum(nil))
		if !onCurve(a) {
			return a, uint8(bump), nil
		}
	}
	return Undef, 0, ErrNoBump
}

// onCurve reports whether the 32 bytes decompress to a valid edwards25519
// point, i.e. whether a private key could exist for this address.
func onCurve(a Address) bool {
	return curve.Point().UnmarshalBinary(a[:]) == nil
}
