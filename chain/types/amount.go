package types

import (
	"encoding/json"
	"fmt"
	"math/big"

	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/polydawn/refmt/obj/atlas"
)

func init() {
	cbor.RegisterCborType(atlas.BuildEntry(TokenAmount{}).UseTag(2).Transform().
		TransformMarshal(atlas.MakeMarshalTransformFunc(
			func(i TokenAmount) ([]byte, error) {
				if i.Int == nil {
					return []byte{}, nil
				}
				return i.Bytes(), nil
			})).
		TransformUnmarshal(atlas.MakeUnmarshalTransformFunc(
			func(x []byte) (TokenAmount, error) {
				return AmountFromBytes(x), nil
			})).
		Complete())
}

var EmptyAmount = TokenAmount{}

// TokenAmount is a non-negative quantity of a currency in its smallest
// unit. Balances and supplies are bounded to the uint64 range (§ wire
// compatibility); intermediate arithmetic is arbitrary precision so that
// overflow is detected, never wrapped.
type TokenAmount struct {
	*big.Int
}

func NewAmount(i uint64) TokenAmount {
	return TokenAmount{big.NewInt(0).SetUint64(i)}
}

func AmountFromBytes(b []byte) TokenAmount {
	i := big.NewInt(0).SetBytes(b)
	return TokenAmount{i}
}

func AmountFromString(s string) (TokenAmount, error) {
	v, ok := big.NewInt(0).SetString(s, 10)
	if !ok {
		return TokenAmount{}, fmt.Errorf("failed to parse string as a token amount")
	}
	return TokenAmount{v}, nil
}

func BigMul(a, b TokenAmount) TokenAmount {
	return TokenAmount{big.NewInt(0).Mul(a.Int, b.Int)}
}

func BigAdd(a, b TokenAmount) TokenAmount {
	return TokenAmount{big.NewInt(0).Add(a.Int, b.Int)}
}

func BigSub(a, b TokenAmount) TokenAmount {
	return TokenAmount{big.NewInt(0).Sub(a.Int, b.Int)}
}

func BigCmp(a, b TokenAmount) int {
	return a.Int.Cmp(b.Int)
}

func BigMin(a, b TokenAmount) TokenAmount {
	if BigCmp(a, b) <= 0 {
		return a
	}
	return b
}

func (bi *TokenAmount) Nil() bool {
	return bi.Int == nil
}

// FitsLedger reports whether the amount is representable as a ledger
// balance: non-negative and within uint64.
func (bi TokenAmount) FitsLedger() bool {
	return bi.Int != nil && bi.Sign() >= 0 && bi.IsUint64()
}

func (bi *TokenAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(bi.String())
}

func (bi *TokenAmount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	i, ok := big.NewInt(0).SetString(s, 10)
	if !ok {
		if s == "<nil>" {
			return nil
		}
		return fmt.Errorf("failed to parse token amount string")
	}
	bi.Int = i
	return nil
}
