package types

import (
	"math"
	"math/big"
)

// Rate is a fractional multiplier applied to integer token amounts:
// contribution rates, cashier splits, treasury scalars. The wire
// representation is a 64-bit float; all splitting math converts the
// float to its exact rational value and floors, so results are
// deterministic across platforms and the split shares always sum back
// to the input exactly.
type Rate float64

// Valid reports whether the rate is a usable non-negative multiplier.
func (r Rate) Valid() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

// ValidFraction reports whether the rate is usable as a fraction in
// [0, 1). Contribution rates must never reach 100%.
func (r Rate) ValidFraction() bool {
	return r.Valid() && float64(r) < 1.0
}

// ValidSplit reports whether the rate is usable as a split in [0, 1].
func (r Rate) ValidSplit() bool {
	return r.Valid() && float64(r) <= 1.0
}

func (r Rate) rat() *big.Rat {
	return new(big.Rat).SetFloat64(float64(r))
}

// Cut returns floor(amount * r), computed over the exact rational value
// of the IEEE-754 rate. For r < 1 the cut is strictly less than a
// positive amount, so the remainder never goes negative.
func (r Rate) Cut(amount TokenAmount) TokenAmount {
	rat := r.rat()
	cut := new(big.Int).Mul(amount.Int, rat.Num())
	// amounts and rates are non-negative, so truncation floors
	cut.Quo(cut, rat.Denom())
	return TokenAmount{cut}
}

// CutScaled returns floor(amount * r * scalar) with a single floor over
// the exact rational product, not two successive floors.
func (r Rate) CutScaled(amount TokenAmount, scalar Rate) TokenAmount {
	rat := new(big.Rat).Mul(r.rat(), scalar.rat())
	cut := new(big.Int).Mul(amount.Int, rat.Num())
	cut.Quo(cut, rat.Denom())
	return TokenAmount{cut}
}

// Split divides amount into (share, remainder) where share goes to the
// split's beneficiary and the remainder stays with the parent. Floor
// then remainder, so share + remainder == amount exactly.
func (r Rate) Split(amount TokenAmount) (TokenAmount, TokenAmount) {
	share := r.Cut(amount)
	return share, BigSub(amount, share)
}
