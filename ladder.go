package x25519

// a24 is the Montgomery curve constant (486662 - 2) / 4, fixed by
// Curve25519 itself.
const a24 = 121665

// cswap exchanges (x2, x3) and, independently, (z2, z3) when swap == 1, and
// leaves both pairs untouched when swap == 0. It is built from the same
// mask-and-XOR idiom as FieldElement.cmov (field.go), generalized from a
// conditional *move* into a conditional *exchange*: d = mask & (a^b) is the
// bits that differ between a and b, and XORing d into both operands swaps
// them exactly when mask is all-ones. There is no branch on swap anywhere
// in this function, so the instruction trace of a ladder step looks
// identical regardless of the scalar bit driving it.
func cswap(swap uint64, x2, x3, z2, z3 *FieldElement) {
	mask := -swap
	for i := range x2.n {
		d := mask & (x2.n[i] ^ x3.n[i])
		x2.n[i] ^= d
		x3.n[i] ^= d
	}
	for i := range z2.n {
		d := mask & (z2.n[i] ^ z3.n[i])
		z2.n[i] ^= d
		z3.n[i] ^= d
	}
}

// ladder computes the x-coordinate of [k]*P where P has affine x-coordinate
// u, via the RFC 7748 §5 Montgomery ladder. k must already be clamped
// (decodeScalar/clamp); the loop always runs all 255 iterations regardless
// of k's value, so its running time never depends on the scalar. The
// clamped scalar's bit 255 is always clear and bit 254 is always set, so
// t = 254 downto 0 covers every information-bearing bit with a fixed
// iteration count; iterating one bit further, t = 255 downto 0, would read
// a bit that is constant across every clamped scalar and waste a step.
func ladder(k [32]byte, u FieldElement) FieldElement {
	x1 := u

	x2 := feOne
	z2 := feZero
	x3 := u
	z3 := feOne

	var swap uint64

	for t := 254; t >= 0; t-- {
		kt := scalarBit(&k, uint(t))
		swap ^= kt
		cswap(swap, &x2, &x3, &z2, &z3)
		swap = kt

		var A, AA, B, BB, E, C, D, DA, CB FieldElement
		A.add(&x2, &z2)
		AA.sqr(&A)
		B.sub(&x2, &z2)
		BB.sqr(&B)
		E.sub(&AA, &BB)
		C.add(&x3, &z3)
		D.sub(&x3, &z3)
		DA.mul(&D, &A)
		CB.mul(&C, &B)

		var sum, diff FieldElement
		sum.add(&DA, &CB)
		diff.sub(&DA, &CB)

		x3.sqr(&sum)
		z3.mul(&x1, diff.sqr(&diff))

		x2.mul(&AA, &BB)

		var aE FieldElement
		aE.mulSmall(&E, a24)
		aE.add(&AA, &aE)
		z2.mul(&E, &aE)
	}

	cswap(swap, &x2, &x3, &z2, &z3)

	var zInv FieldElement
	zInv.invert(&z2)

	var out FieldElement
	out.mul(&x2, &zInv)
	return out
}

// scalarMult decodes k and u, runs the ladder, and re-encodes the result.
func scalarMult(k, u [32]byte) [32]byte {
	scalar := decodeScalar(k)
	uCoord := decodeUCoordinate(u)
	result := ladder(scalar, uCoord)
	return encodeUCoordinate(result)
}

// basepoint is the Curve25519 u-coordinate 9, per RFC 7748 §4.1.
var basepoint = [32]byte{9}

// scalarBaseMult is scalarMult(k, basepoint).
func scalarBaseMult(k [32]byte) [32]byte {
	return scalarMult(k, basepoint)
}
