// Package x25519 implements the X25519 elliptic-curve Diffie-Hellman
// function defined by RFC 7748: scalar multiplication on Curve25519 using
// x-only coordinates and a constant-iteration Montgomery ladder.
//
// The package exposes three key-agreement operations — generate a private
// scalar, derive its public key, and compute a shared secret from a private
// scalar and a peer's public value — along with the raw ScalarMult and
// ScalarBaseMult primitives, the IsValidPrivateKey and IsValidPublicKey
// checks, and the Wipe helper. It does not implement Ed25519
// signatures, a higher-level key-exchange handshake, a KDF, or any
// serialization beyond the raw 32-byte little-endian encoding RFC 7748
// itself specifies.
package x25519

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
)

// Size is the length in bytes of every scalar, public value, and shared
// secret this package handles.
const Size = 32

// ErrInvalidLength is returned, wrapped with the offending operation's
// name, whenever a caller passes a byte slice whose length is not exactly
// Size.
var ErrInvalidLength = errors.New("x25519: invalid input length")

// ErrLowOrderPoint is returned by ComputeSharedSecret when the computed
// shared secret is the all-zero string, which happens when the peer's
// public value is a low-order point. RFC 7748 does not require rejecting
// such inputs, but a caller that wants contributory behavior needs some
// way to detect it, so ComputeSharedSecret surfaces it as an error rather
// than silently returning 32 zero bytes the way the bare ScalarMult does.
var ErrLowOrderPoint = errors.New("x25519: peer public value produces a low-order shared secret")

func toArray(op string, b []byte) (out [Size]byte, err error) {
	if len(b) != Size {
		return out, fmt.Errorf("%s: %w", op, ErrInvalidLength)
	}
	copy(out[:], b)
	return out, nil
}

// ScalarMult computes the X25519 function scalarmult(k, u): the x-coordinate
// of [k]*P where P has affine x-coordinate u. k and u must each be exactly
// Size bytes, little-endian; k need not already be clamped, since ScalarMult
// clamps internally.
//
// ScalarMult never rejects its input beyond the length check: a low-order u,
// a non-canonical u in [p, 2^255), and an all-zero result are all defined
// outcomes per RFC 7748, not errors. Callers that need low-order rejection
// should use ComputeSharedSecret instead, or check the result against the
// all-zero string themselves.
func ScalarMult(k, u []byte) ([]byte, error) {
	kArr, err := toArray("ScalarMult", k)
	if err != nil {
		return nil, err
	}
	uArr, err := toArray("ScalarMult", u)
	if err != nil {
		return nil, err
	}
	out := scalarMult(kArr, uArr)
	return out[:], nil
}

// ScalarBaseMult computes scalarmult_base(k) = ScalarMult(k, basepoint),
// where basepoint is the Curve25519 generator's u-coordinate (9, encoded
// little-endian).
func ScalarBaseMult(k []byte) ([]byte, error) {
	kArr, err := toArray("ScalarBaseMult", k)
	if err != nil {
		return nil, err
	}
	out := scalarBaseMult(kArr)
	return out[:], nil
}

// GeneratePrivateKey draws Size random bytes from crypto/rand and clamps
// them, producing a private scalar that is always valid per
// IsValidPrivateKey. Clamping cannot fail on any input, so there is no
// retry loop here: every 32-byte draw becomes a valid scalar after clamp.
func GeneratePrivateKey() ([]byte, error) {
	var raw [Size]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return nil, fmt.Errorf("GeneratePrivateKey: %w", err)
	}
	priv := clamp(raw)
	return priv[:], nil
}

// GeneratePublicKey returns ScalarBaseMult(priv): the public value
// corresponding to the private scalar priv.
func GeneratePublicKey(priv []byte) ([]byte, error) {
	return ScalarBaseMult(priv)
}

// ComputeSharedSecret returns ScalarMult(priv, peerPub), the shared secret
// two parties agree on by each combining their own private scalar with the
// other's public value: ComputeSharedSecret(a, GeneratePublicKey(b)) ==
// ComputeSharedSecret(b, GeneratePublicKey(a)) for any two private scalars
// a and b. It additionally rejects an all-zero result with
// ErrLowOrderPoint; RFC 7748 permits returning it, but a caller asking for
// a *shared secret* specifically, rather than the bare
// scalar-multiplication primitive, almost always wants contributory
// behavior instead of a silently degenerate one.
func ComputeSharedSecret(priv, peerPub []byte) ([]byte, error) {
	secret, err := ScalarMult(priv, peerPub)
	if err != nil {
		return nil, err
	}
	var zero [Size]byte
	if subtle.ConstantTimeCompare(secret, zero[:]) == 1 {
		return nil, fmt.Errorf("ComputeSharedSecret: %w", ErrLowOrderPoint)
	}
	return secret, nil
}

// IsValidPrivateKey reports whether k is exactly Size bytes and already
// clamped — bit 254 set, bits 0-2 and bit 255 clear. It does not accept
// arbitrary 32-byte strings the way IsValidPublicKey does: a private key is
// expected to have come from GeneratePrivateKey or an equivalent clamp
// step, and this only confirms that it has.
func IsValidPrivateKey(k []byte) bool {
	if len(k) != Size {
		return false
	}
	return k[0]&0x07 == 0 && k[31]&0x80 == 0 && k[31]&0x40 != 0
}

// IsValidPublicKey reports whether k is exactly Size bytes. RFC 7748
// treats any 32-byte string as a valid public value; rejecting all-zero or
// otherwise low-order values is the caller's responsibility —
// ComputeSharedSecret does this for the shared-secret output, but this
// function, mirroring the input side, does not.
func IsValidPublicKey(k []byte) bool {
	return len(k) == Size
}
