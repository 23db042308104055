package ecc

// Oracle is a Fiat-Shamir transcript. Writes absorb protocol values;
// reads draw digests or uniformly distributed scalars, re-seeding the
// underlying state on every draw so sequential reads never collide.
type Oracle struct {
	HashProcessor
}

// NewOracle returns an oracle with empty transcript state.
func NewOracle() *Oracle {
	return &Oracle{HashProcessor: *NewHashProcessor()}
}

// NextHash draws a 32-byte digest from the transcript.
func (o *Oracle) NextHash(out *HashValue) {
	o.Finalize(out)
}

// NextScalar draws a uniformly distributed scalar, redrawing on the
// rare digest at or above the group order. Each rejected digest has
// already been folded back into the state, so retries are distinct.
func (o *Oracle) NextScalar(s *ScalarNative) {
	var raw Scalar
	for {
		o.Finalize((*HashValue)(&raw.Value))
		if !s.Import(&raw) {
			SecureEraseBytes(raw.Value[:])
			return
		}
	}
}
