package address

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"

	cbor "github.com/ipfs/go-ipld-cbor"
	base32 "github.com/multiformats/go-base32"
	"github.com/polydawn/refmt/obj/atlas"
	"golang.org/x/xerrors"
)

func init() {
	cbor.RegisterCborType(atlas.BuildEntry(Address{}).Transform().
		TransformMarshal(atlas.MakeMarshalTransformFunc(
			func(a Address) ([]byte, error) {
				return a.Bytes(), nil
			})).
		TransformUnmarshal(atlas.MakeUnmarshalTransformFunc(
			func(x []byte) (Address, error) {
				return FromBytes(x)
			})).
		Complete())
}

const (
	// Size is the raw byte length of an address.
	Size = 32

	// Prefix is the human-readable prefix of the string form.
	Prefix = "em"

	checksumSize = 4

	encodeStd = "abcdefghijklmnopqrstuvwxyz234567"
)

var addressEncoding = base32.NewEncodingCI(encodeStd)

// Undef is the zero-valued, undefined address.
var Undef = Address{}

var (
	ErrInvalidLength   = xerrors.New("invalid address length")
	ErrInvalidPrefix   = xerrors.New("invalid address prefix")
	ErrInvalidChecksum = xerrors.New("invalid address checksum")
)

// Address is a 32-byte public identifier: either a keypair's public key or
// a program-derived address with no corresponding private key.
type Address [Size]byte

func FromBytes(b []byte) (Address, error) {
	if len(b) != Size {
		return Undef, ErrInvalidLength
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// NewFromSeed deterministically maps an arbitrary seed to an address.
// Used for well-known identities (the program key) and test fixtures.
func NewFromSeed(seed []byte) Address {
	return Address(sha256.Sum256(seed))
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) Defined() bool {
	return a != Undef
}

func checksum(payload []byte) []byte {
	sum := sha256.Sum256(payload)
	return sum[:checksumSize]
}

func (a Address) String() string {
	buf := make([]byte, 0, Size+checksumSize)
	buf = append(buf, a[:]...)
	buf = append(buf, checksum(a[:])...)
	return Prefix + addressEncoding.WithPadding(-1).EncodeToString(buf)
}

func FromString(s string) (Address, error) {
	if len(s) < len(Prefix) || s[:len(Prefix)] != Prefix {
		return Undef, ErrInvalidPrefix
	}
	raw, err := addressEncoding.WithPadding(-1).DecodeString(s[len(Prefix):])
	if err != nil {
		return Undef, xerrors.Errorf("decoding address: %w", err)
	}
	if len(raw) != Size+checksumSize {
		return Undef, ErrInvalidLength
	}
	if !bytes.Equal(raw[Size:], checksum(raw[:Size])) {
		return Undef, ErrInvalidChecksum
	}
	return FromBytes(raw[:Size])
}

func MustFromString(s string) Address {
	a, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	addr, err := FromString(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
