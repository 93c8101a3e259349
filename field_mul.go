package x25519

import "math/bits"

// This file holds the inner loop of field multiplication and squaring,
// kept apart from field.go since the schoolbook cross-product plus
// wide-product reduction reads better as its own unit.
//
// The limbs are base 2^51, so a full product of two field elements spans
// nine columns (i+j = 0..8) before reduction. Column k holds the exact sum
// of a[i]*b[j] for i+j=k, tracked as a (hi, lo) pair via bits.Mul64/Add64 so
// no partial product can silently overflow a uint64. Reduction folds
// columns 5..8 back into 0..3 using 2^(51*5) = 2^255 ≡ 19 (mod p), then a
// carry pass brings the result to five loose limbs that normalize can
// finish reducing.

// mulColumns computes the nine raw schoolbook columns of a*b, each as an
// exact (hi, lo) 128-bit pair, with no reduction applied yet.
func mulColumns(a, b *FieldElement) (hi, lo [9]uint64) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			h, l := bits.Mul64(a.n[i], b.n[j])
			k := i + j
			var c uint64
			lo[k], c = bits.Add64(lo[k], l, 0)
			hi[k] += h + c
		}
	}
	return hi, lo
}

// reduceColumns folds the nine wide columns produced by mulColumns (or the
// analogous square routine) into five loose limbs, ready for normalize.
func reduceColumns(hi, lo [9]uint64) FieldElement {
	// 2^(51*5) ≡ 19 (mod p): fold columns 5..8 into 0..3, scaled by 19.
	for k := 8; k >= 5; k-- {
		target := k - 5

		mh, ml := bits.Mul64(lo[k], 19)
		var c uint64
		lo[target], c = bits.Add64(lo[target], ml, 0)
		hi[target] += mh + c

		hi[target] += hi[k] * 19
	}

	var r FieldElement
	var carry uint64
	for k := 0; k < 5; k++ {
		v, c := bits.Add64(lo[k], carry, 0)
		h := hi[k] + c

		r.n[k] = v & maskLow51Bits
		carry = (v >> 51) | (h << 13)
	}
	// carry here represents an overflow of another 2^(51*5) = 19 (mod p).
	r.n[0] += carry * 19
	r.normalize()
	return r
}

// mul sets r = a * b mod p.
func (r *FieldElement) mul(a, b *FieldElement) *FieldElement {
	hi, lo := mulColumns(a, b)
	*r = reduceColumns(hi, lo)
	return r
}

// sqr sets r = a * a mod p. It reuses the general multiply rather than a
// dedicated squaring routine — the spec's testable contract (§4.1) is
// input/output only, and this keeps the reduction logic in one place.
func (r *FieldElement) sqr(a *FieldElement) *FieldElement {
	return r.mul(a, a)
}

// mulSmall sets r = a * c mod p for a small constant c (used by the ladder
// for the a24 = 121665 curve constant). c is assumed to fit comfortably
// under 2^51 so each limb product needs at most one bits.Mul64, unlike the
// full field-by-field multiply above.
func (r *FieldElement) mulSmall(a *FieldElement, c uint64) *FieldElement {
	var carry uint64
	for i := 0; i < 5; i++ {
		hi, lo := bits.Mul64(a.n[i], c)
		v, cc := bits.Add64(lo, carry, 0)
		r.n[i] = v & maskLow51Bits
		carry = (v >> 51) | ((hi + cc) << 13)
	}
	r.n[0] += carry * 19
	r.normalize()
	return r
}
