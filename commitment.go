package ecc

// Commitment is a Pedersen commitment plan: K*G + Val*H.
type Commitment struct {
	K   ScalarNative
	Val uint64
}

// Assign evaluates the commitment into res, setting or accumulating.
func (c *Commitment) Assign(res *PointNative, bSet bool, mode Mode) {
	ctx := GetContext()
	ctx.g.Assign(res, bSet, &c.K, mode)

	var v ScalarNative
	v.SetU64(c.Val)
	ctx.h.Assign(res, false, &v, mode)
}

// Commit computes res = k*G + value*H in secure mode; the blinding
// factor is secret.
func Commit(res *PointNative, k *ScalarNative, value uint64) {
	c := Commitment{Val: value}
	c.K.Set(k)
	c.Assign(res, true, ModeSecure)
	c.K.Clear()
}

// SetCommitment evaluates a commitment directly into the canonical
// point encoding.
func (p *Point) SetCommitment(c *Commitment) {
	var pt PointNative
	c.Assign(&pt, true, ModeSecure)
	pt.Export(p)
}
