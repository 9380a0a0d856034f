package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgram = NewFromSeed([]byte("derive-test-program"))

func TestDeriveDeterministic(t *testing.T) {
	k := NewFromSeed([]byte("some-mint"))

	a1, bump1, err := Derive(testProgram, NSCharter, k)
	require.NoError(t, err)
	a2, bump2, err := Derive(testProgram, NSCharter, k)
	require.NoError(t, err)

	require.Equal(t, a1, a2)
	require.Equal(t, bump1, bump2)
	require.True(t, a1.Defined())
}

func TestDeriveOffCurve(t *testing.T) {
	// derived addresses must never decompress to a curve point, otherwise
	// a private key could exist for them
	for i := 0; i < 64; i++ {
		k := NewFromSeed([]byte{byte(i)})
		a, _, err := Derive(testProgram, NSReceipt, k)
		require.NoError(t, err)
		assert.False(t, onCurve(a), "derived address %s is on-curve", a)
	}
}

func TestDeriveDistinct(t *testing.T) {
	k1 := NewFromSeed([]byte("k1"))
	k2 := NewFromSeed([]byte("k2"))

	byNS := map[Address]string{}
	for _, ns := range [][]byte{
		NSMintAuthority, NSTokenAuthority, NSReceipt,
		NSListing, NSCharter, NSCashier, NSTreasury,
	} {
		a, _, err := Derive(testProgram, ns, k1)
		require.NoError(t, err)
		prev, dup := byNS[a]
		require.False(t, dup, "namespace %s collides with %s", ns, prev)
		byNS[a] = string(ns)
	}

	// different keys, key order, and program all change the result
	a1, _, err := Derive(testProgram, NSTreasury, k1, k2)
	require.NoError(t, err)
	a2, _, err := Derive(testProgram, NSTreasury, k2, k1)
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2)

	a3, _, err := Derive(testProgram, NSTreasury, k1)
	require.NoError(t, err)
	assert.NotEqual(t, a1, a3)

	a4, _, err := Derive(NewFromSeed([]byte("other-program")), NSTreasury, k1, k2)
	require.NoError(t, err)
	assert.NotEqual(t, a1, a4)
}
