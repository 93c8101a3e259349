package x25519

// FieldElement represents an element of the field GF(2^255-19), the base
// field of Curve25519. Internally it is held as five 51-bit limbs in base
// 2^51 rather than a big-integer backend, which keeps every limb-to-limb
// product a single 64-bit multiply.
//
// Limbs may carry more than 51 bits inside an operation; every operation
// ends with normalize, which folds that looseness back down to five strict
// 51-bit limbs. The zero value is the field element zero.
type FieldElement struct {
	n [5]uint64
}

const maskLow51Bits = (1 << 51) - 1

// feZero and feOne are the additive and multiplicative identities.
var (
	feZero = FieldElement{}
	feOne  = FieldElement{n: [5]uint64{1, 0, 0, 0, 0}}
)

// setBytes sets r to the field element decoded from a little-endian 32-byte
// string, reducing mod p. Bit 255 (the top bit of b[31]) is ignored: limb 4
// keeps only 51 bits, so the value decoded is b mod 2^255. decodeUCoordinate
// still clears that bit explicitly before calling in.
func (r *FieldElement) setBytes(b *[32]byte) {
	var d [4]uint64
	for i := 0; i < 4; i++ {
		d[i] = uint64(b[8*i]) | uint64(b[8*i+1])<<8 | uint64(b[8*i+2])<<16 | uint64(b[8*i+3])<<24 |
			uint64(b[8*i+4])<<32 | uint64(b[8*i+5])<<40 | uint64(b[8*i+6])<<48 | uint64(b[8*i+7])<<56
	}

	r.n[0] = d[0] & maskLow51Bits
	r.n[1] = ((d[0] >> 51) | (d[1] << 13)) & maskLow51Bits
	r.n[2] = ((d[1] >> 38) | (d[2] << 26)) & maskLow51Bits
	r.n[3] = ((d[2] >> 25) | (d[3] << 39)) & maskLow51Bits
	r.n[4] = (d[3] >> 12) & 0x7ffffffffffff

	r.normalize()
}

// bytes returns the little-endian 32-byte encoding of r, fully reduced to
// [0, p) first. The high byte is always < 0x80 since p < 2^255.
func (r *FieldElement) bytes() [32]byte {
	var t FieldElement = *r
	t.normalize()

	var d [4]uint64
	d[0] = t.n[0] | (t.n[1] << 51)
	d[1] = (t.n[1] >> 13) | (t.n[2] << 38)
	d[2] = (t.n[2] >> 26) | (t.n[3] << 25)
	d[3] = (t.n[3] >> 39) | (t.n[4] << 12)

	var out [32]byte
	for i := 0; i < 4; i++ {
		out[8*i] = byte(d[i])
		out[8*i+1] = byte(d[i] >> 8)
		out[8*i+2] = byte(d[i] >> 16)
		out[8*i+3] = byte(d[i] >> 24)
		out[8*i+4] = byte(d[i] >> 32)
		out[8*i+5] = byte(d[i] >> 40)
		out[8*i+6] = byte(d[i] >> 48)
		out[8*i+7] = byte(d[i] >> 56)
	}
	return out
}

// normalize reduces r to a unique representative in [0, p), p = 2^255-19.
// Every other field operation here calls it before returning a value that
// outlives the function call, so limbs never carry loose overflow across
// calls.
func (r *FieldElement) normalize() {
	// Two carry-propagation passes: the first brings every limb under 2^51
	// except for a possible small overflow out of limb 4, which wraps
	// around into limb 0 via the 2^255 ≡ 19 (mod p) identity; the second
	// pass absorbs that wraparound so every limb is strictly under 2^51
	// before the conditional subtraction below inspects them.
	r.carryPropagate()
	r.carryPropagate()

	// Conditional subtraction of p: q = 1 iff r >= p. Adding 19 and
	// propagating carries the same way p's own limbs do detects overflow
	// out of limb 4 exactly when r's value is in [p, 2^255).
	q := (r.n[0] + 19) >> 51
	q = (r.n[1] + q) >> 51
	q = (r.n[2] + q) >> 51
	q = (r.n[3] + q) >> 51
	q = (r.n[4] + q) >> 51

	r.n[0] += 19 * q
	c := r.n[0] >> 51
	r.n[0] &= maskLow51Bits
	r.n[1] += c
	c = r.n[1] >> 51
	r.n[1] &= maskLow51Bits
	r.n[2] += c
	c = r.n[2] >> 51
	r.n[2] &= maskLow51Bits
	r.n[3] += c
	c = r.n[3] >> 51
	r.n[3] &= maskLow51Bits
	r.n[4] += c
	r.n[4] &= maskLow51Bits
}

// carryPropagate ripples each limb's overflow above 51 bits into the next,
// wrapping the overflow out of limb 4 back into limb 0 scaled by 19 (since
// 2^255 ≡ 19 mod p). It does not itself guarantee every limb ends under
// 2^51 — the wraparound addition to limb 0 can itself overflow — which is
// why normalize calls it twice.
func (r *FieldElement) carryPropagate() {
	c := r.n[0] >> 51
	r.n[0] &= maskLow51Bits
	r.n[1] += c
	c = r.n[1] >> 51
	r.n[1] &= maskLow51Bits
	r.n[2] += c
	c = r.n[2] >> 51
	r.n[2] &= maskLow51Bits
	r.n[3] += c
	c = r.n[3] >> 51
	r.n[3] &= maskLow51Bits
	r.n[4] += c
	c = r.n[4] >> 51
	r.n[4] &= maskLow51Bits
	r.n[0] += c * 19
}

// add sets r = a + b mod p.
func (r *FieldElement) add(a, b *FieldElement) *FieldElement {
	r.n[0] = a.n[0] + b.n[0]
	r.n[1] = a.n[1] + b.n[1]
	r.n[2] = a.n[2] + b.n[2]
	r.n[3] = a.n[3] + b.n[3]
	r.n[4] = a.n[4] + b.n[4]
	r.normalize()
	return r
}

// sub sets r = a - b mod p, normalized to a nonnegative representative.
// Adding 2p before subtracting keeps every limb nonnegative through the
// subtraction itself, so no limb ever borrows.
func (r *FieldElement) sub(a, b *FieldElement) *FieldElement {
	// 2p in limbs, biased so that a.n[i] + bias[i] - b.n[i] never borrows.
	const bias0 = 2 * (maskLow51Bits + 1 - 19)
	const biasHi = 2 * maskLow51Bits

	r.n[0] = a.n[0] + bias0 - b.n[0]
	r.n[1] = a.n[1] + biasHi - b.n[1]
	r.n[2] = a.n[2] + biasHi - b.n[2]
	r.n[3] = a.n[3] + biasHi - b.n[3]
	r.n[4] = a.n[4] + biasHi - b.n[4]
	r.normalize()
	return r
}

// equal reports whether a and b denote the same field element, in constant
// time. Both operands are normalized copies so the comparison never leaks
// which representative was passed in.
func (a *FieldElement) equal(b *FieldElement) bool {
	x := *a
	y := *b
	x.normalize()
	y.normalize()
	diff := uint64(0)
	for i := range x.n {
		diff |= x.n[i] ^ y.n[i]
	}
	return diff == 0
}

// isZero reports whether r denotes the field element zero.
func (r *FieldElement) isZero() bool {
	return r.equal(&feZero)
}

// cmov sets r = a if flag == 1, and leaves r unchanged if flag == 0. flag
// must be 0 or 1; any other value is a programming error. The mask-and-XOR
// construction keeps this branch-free: cswap (ladder.go) generalizes the
// same idiom into a conditional two-way exchange.
func (r *FieldElement) cmov(a *FieldElement, flag uint64) {
	mask := -flag
	for i := range r.n {
		r.n[i] ^= mask & (r.n[i] ^ a.n[i])
	}
}

// invert sets r = a^(p-2) mod p = a^-1 mod p, except invert(0) = 0. The
// only place this case arises in the ladder is z2 == 0 at the point at
// infinity, where the caller wants an encoded zero rather than an error.
//
// The addition chain below is the standard 254-squaring, 11-multiplication
// chain for this exponent: it builds up z(2^k - 1) windows by repeated
// squaring and multiplying in the missing bits, rather than a plain
// square-and-multiply over all 255 bits of p-2.
func (r *FieldElement) invert(a *FieldElement) *FieldElement {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t FieldElement

	z2.sqr(a)           // 2
	t.sqr(&z2)          // 4
	t.sqr(&t)           // 8
	z9.mul(&t, a)       // 9
	z11.mul(&z9, &z2)   // 11
	t.sqr(&z11)         // 22
	z2_5_0.mul(&t, &z9) // 2^5 - 2^0 = 31

	t.sqr(&z2_5_0)
	for i := 0; i < 4; i++ {
		t.sqr(&t)
	}
	z2_10_0.mul(&t, &z2_5_0) // 2^10 - 2^0

	t.sqr(&z2_10_0)
	for i := 0; i < 9; i++ {
		t.sqr(&t)
	}
	z2_20_0.mul(&t, &z2_10_0) // 2^20 - 2^0

	t.sqr(&z2_20_0)
	for i := 0; i < 19; i++ {
		t.sqr(&t)
	}
	t.mul(&t, &z2_20_0) // 2^40 - 2^0

	for i := 0; i < 10; i++ {
		t.sqr(&t)
	}
	z2_50_0.mul(&t, &z2_10_0) // 2^50 - 2^0

	t.sqr(&z2_50_0)
	for i := 0; i < 49; i++ {
		t.sqr(&t)
	}
	z2_100_0.mul(&t, &z2_50_0) // 2^100 - 2^0

	t.sqr(&z2_100_0)
	for i := 0; i < 99; i++ {
		t.sqr(&t)
	}
	t.mul(&t, &z2_100_0) // 2^200 - 2^0

	for i := 0; i < 50; i++ {
		t.sqr(&t)
	}
	t.mul(&t, &z2_50_0) // 2^250 - 2^0

	t.sqr(&t) // 2^251 - 2^1
	t.sqr(&t) // 2^252 - 2^2
	t.sqr(&t) // 2^253 - 2^3
	t.sqr(&t) // 2^254 - 2^4
	t.sqr(&t) // 2^255 - 2^5

	r.mul(&t, &z11) // 2^255 - 21 = p - 2

	if a.isZero() {
		*r = feZero
	}
	return r
}
