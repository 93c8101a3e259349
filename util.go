package x25519

// Wipe zeroes b in place. It is offered for callers that want to scrub a
// private scalar or shared secret from memory once they are done with it;
// nothing in this package calls it on a caller's behalf, since the buffer
// belongs to the caller for as long as they still need it.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
