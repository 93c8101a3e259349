package x25519

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

// Generate lets testing/quick produce arbitrary field elements for the
// property checks below, by decoding 32 random bytes the same way
// decodeUCoordinate's setBytes does.
func (FieldElement) Generate(r *rand.Rand, size int) reflect.Value {
	var b [32]byte
	r.Read(b[:])
	var fe FieldElement
	fe.setBytes(&b)
	return reflect.ValueOf(fe)
}

func TestFieldAddCommutative(t *testing.T) {
	f := func(a, b FieldElement) bool {
		var r1, r2 FieldElement
		r1.add(&a, &b)
		r2.add(&b, &a)
		return r1.equal(&r2)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestFieldSubAddInverse(t *testing.T) {
	f := func(a, b FieldElement) bool {
		var diff, back FieldElement
		diff.sub(&a, &b)
		back.add(&diff, &b)
		return back.equal(&a)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestFieldMulCommutative(t *testing.T) {
	f := func(a, b FieldElement) bool {
		var r1, r2 FieldElement
		r1.mul(&a, &b)
		r2.mul(&b, &a)
		return r1.equal(&r2)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestFieldMulIdentity(t *testing.T) {
	f := func(a FieldElement) bool {
		var r FieldElement
		r.mul(&a, &feOne)
		return r.equal(&a)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestFieldSqrMatchesMul(t *testing.T) {
	f := func(a FieldElement) bool {
		var sq, mu FieldElement
		sq.sqr(&a)
		mu.mul(&a, &a)
		return sq.equal(&mu)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestFieldInvertIsInverse(t *testing.T) {
	f := func(a FieldElement) bool {
		a.normalize()
		if a.isZero() {
			return true
		}
		var inv, product FieldElement
		inv.invert(&a)
		product.mul(&a, &inv)
		return product.equal(&feOne)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestFieldInvertZero(t *testing.T) {
	var inv FieldElement
	inv.invert(&feZero)
	require.True(t, inv.isZero(), "invert(0) must be 0")
}

func TestFieldBytesRoundTrip(t *testing.T) {
	f := func(a FieldElement) bool {
		a.normalize()
		b := a.bytes()
		var back FieldElement
		back.setBytes(&b)
		return back.equal(&a)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestFieldNormalizeRange(t *testing.T) {
	f := func(a FieldElement) bool {
		a.normalize()
		// p = 2^255 - 19, so a normalized element's top byte must be < 0x80
		// and, if it's 0x7f, the rest must not encode a value >= p.
		b := a.bytes()
		if b[31] >= 0x80 {
			return false
		}
		// Compare against p's encoding (ed ff .. ff 7f) from the top byte down.
		pBytes := [32]byte{0xed}
		for i := 1; i < 31; i++ {
			pBytes[i] = 0xff
		}
		pBytes[31] = 0x7f
		for i := 31; i >= 0; i-- {
			if b[i] != pBytes[i] {
				return b[i] < pBytes[i]
			}
		}
		return false
	}
	require.NoError(t, quick.Check(f, nil))
}
