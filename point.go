package ecc

import (
	"bytes"
	"unsafe"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	hex "github.com/tmthrgd/go-hex"
)

// Point is the canonical compressed encoding of a curve point: the
// 32-byte big-endian X coordinate plus a one-byte Y parity flag. The
// identity encodes as all-zero X with parity 0; no other zero-X
// encoding decodes.
type Point struct {
	X [32]byte
	Y uint8
}

// FieldOrder is the secp256k1 field prime as canonical bytes. A
// serialized X coordinate must be strictly less.
var FieldOrder = func() (v [32]byte) {
	copy(v[:], hex.MustDecodeString(
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"))
	return
}()

// Cmp compares encodings: X big-endian lexicographic, then parity.
func (p *Point) Cmp(v *Point) int {
	if n := bytes.Compare(p.X[:], v.X[:]); n != 0 {
		return n
	}
	if p.Y < v.Y {
		return -1
	}
	if p.Y > v.Y {
		return 1
	}
	return 0
}

// String returns the X coordinate and parity as lowercase hex.
func (p *Point) String() string {
	var buf [33]byte
	copy(buf[:32], p.X[:])
	buf[32] = p.Y
	return hex.EncodeToString(buf[:])
}

func (p *Point) isZero() bool {
	var acc byte
	for _, b := range p.X {
		acc |= b
	}
	return acc|p.Y == 0
}

// PointNative is the projective (Jacobian) form of a curve point.
type PointNative struct {
	p secp256k1.JacobianPoint
}

// SetZero sets the point to the group identity.
func (p *PointNative) SetZero() {
	p.p.X.SetInt(0)
	p.p.Y.SetInt(0)
	p.p.Z.SetInt(0)
}

// IsZero reports whether the point is the group identity.
func (p *PointNative) IsZero() bool {
	return (p.p.X.IsZero() && p.p.Y.IsZero()) || p.p.Z.IsZero()
}

// Import decodes a canonical encoding. A valid non-identity encoding
// yields the point and true; the all-zero encoding yields the identity
// and true; anything else yields the identity and false.
func (p *PointNative) Import(v *Point) bool {
	if p.ImportNnz(v) {
		return true
	}
	p.SetZero()
	return v.isZero()
}

// ImportNnz decodes a canonical encoding, rejecting the identity.
func (p *PointNative) ImportNnz(v *Point) bool {
	var x secp256k1.FieldVal
	if x.SetBytes(&v.X) != 0 {
		return false
	}
	if x.IsZero() {
		return false
	}
	var y secp256k1.FieldVal
	if !secp256k1.DecompressY(&x, v.Y != 0, &y) {
		return false
	}
	y.Normalize()
	var z secp256k1.FieldVal
	z.SetInt(1)
	p.p.X.Set(&x)
	p.p.Y.Set(&y)
	p.p.Z.Set(&z)
	return true
}

// Export writes the canonical encoding. The identity exports as the
// all-zero encoding and false; any other point exports normally and
// returns true.
func (p *PointNative) Export(v *Point) bool {
	if p.IsZero() {
		v.X = [32]byte{}
		v.Y = 0
		return false
	}
	aff := p.p
	aff.ToAffine()
	aff.X.PutBytes(&v.X)
	v.Y = 0
	if aff.Y.IsOdd() {
		v.Y = 1
	}
	return true
}

// Set copies v into the point.
func (p *PointNative) Set(v *PointNative) {
	p.p.Set(&v.p)
}

// Add adds v to the point.
func (p *PointNative) Add(v *PointNative) *PointNative {
	secp256k1.AddNonConst(&p.p, &v.p, &p.p)
	return p
}

// Double doubles the point.
func (p *PointNative) Double() *PointNative {
	secp256k1.DoubleNonConst(&p.p, &p.p)
	return p
}

// Negate negates the point.
func (p *PointNative) Negate() *PointNative {
	p.p.Y.Normalize()
	p.p.Y.Negate(1)
	p.p.Y.Normalize()
	return p
}

// Equals reports whether both points represent the same group element.
func (p *PointNative) Equals(v *PointNative) bool {
	if p.IsZero() {
		return v.IsZero()
	}
	if v.IsZero() {
		return false
	}
	a, b := p.p, v.p
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

// addCompact adds a stored affine table entry to the point.
func (p *PointNative) addCompact(c *compactPoint) {
	var j secp256k1.JacobianPoint
	c.toJacobian(&j)
	secp256k1.AddNonConst(&p.p, &j, &p.p)
}

// setCompact sets the point to a stored affine table entry.
func (p *PointNative) setCompact(c *compactPoint) {
	c.toJacobian(&p.p)
}

// compactPoint is the affine storage form used by precomputed tables.
type compactPoint struct {
	x, y secp256k1.FieldVal
}

// fromNative stores the affine form of a non-identity point. Returns
// false for the identity, which has no affine form.
func (c *compactPoint) fromNative(p *PointNative) bool {
	if p.IsZero() {
		return false
	}
	aff := p.p
	aff.ToAffine()
	c.x.Set(&aff.X)
	c.y.Set(&aff.Y)
	c.x.Normalize()
	c.y.Normalize()
	return true
}

func (c *compactPoint) toJacobian(j *secp256k1.JacobianPoint) {
	j.X.Set(&c.x)
	j.Y.Set(&c.y)
	j.Z.SetInt(1)
}

// cmov conditionally copies src into c if flag == 1. Constant time.
func (c *compactPoint) cmov(src *compactPoint, flag int) {
	objectCmov(unsafe.Pointer(c), unsafe.Pointer(src), unsafe.Sizeof(*c), flag)
}
