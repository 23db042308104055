package ecc

import (
	"bytes"
	"unsafe"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	hex "github.com/tmthrgd/go-hex"
)

// Scalar is the canonical serialized form of a 256-bit scalar: 32 bytes
// big endian. A valid Scalar is strictly less than the group order.
type Scalar struct {
	Value [32]byte
}

// Order is the secp256k1 group order as canonical bytes.
var Order = func() (v [32]byte) {
	copy(v[:], hex.MustDecodeString(
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"))
	return
}()

// IsValid reports whether the value is strictly below the group order.
func (s *Scalar) IsValid() bool {
	var t secp256k1.ModNScalar
	overflow := t.SetBytes(&s.Value)
	t.Zero()
	return overflow == 0
}

// TestValid returns ErrInvalidScalar when the value is not below the
// group order.
func (s *Scalar) TestValid() error {
	if !s.IsValid() {
		return makeError(ErrInvalidScalar, "scalar not below group order")
	}
	return nil
}

// IsZero reports whether all canonical bytes are zero.
func (s *Scalar) IsZero() bool {
	var acc byte
	for _, b := range s.Value {
		acc |= b
	}
	return acc == 0
}

// Cmp compares canonical values big-endian lexicographically.
func (s *Scalar) Cmp(v *Scalar) int {
	return bytes.Compare(s.Value[:], v.Value[:])
}

// String returns the canonical value as lowercase hex.
func (s *Scalar) String() string {
	return hex.EncodeToString(s.Value[:])
}

// ScalarNative is the reduced arithmetic form of a scalar.
type ScalarNative struct {
	n secp256k1.ModNScalar
}

// SetZero sets the scalar to zero.
func (s *ScalarNative) SetZero() {
	s.n.Zero()
}

// SetInt sets the scalar to a small unsigned value.
func (s *ScalarNative) SetInt(v uint32) {
	s.n.SetInt(v)
}

// SetU64 sets the scalar to a 64-bit unsigned value.
func (s *ScalarNative) SetU64(v uint64) {
	var b [32]byte
	b[24] = byte(v >> 56)
	b[25] = byte(v >> 48)
	b[26] = byte(v >> 40)
	b[27] = byte(v >> 32)
	b[28] = byte(v >> 24)
	b[29] = byte(v >> 16)
	b[30] = byte(v >> 8)
	b[31] = byte(v)
	s.n.SetBytes(&b)
}

// Import sets the scalar from canonical bytes, reducing mod the group
// order, and reports whether the value overflowed (was not canonical).
func (s *ScalarNative) Import(v *Scalar) bool {
	return s.n.SetBytes(&v.Value) != 0
}

// ImportNnz imports and reports success only for a canonical non-zero
// value.
func (s *ScalarNative) ImportNnz(v *Scalar) bool {
	if s.Import(v) {
		return false
	}
	return !s.n.IsZero()
}

// Export writes the canonical serialized form.
func (s *ScalarNative) Export(v *Scalar) {
	s.n.PutBytes(&v.Value)
}

// Bytes returns the canonical serialized form.
func (s *ScalarNative) Bytes() (b [32]byte) {
	s.n.PutBytes(&b)
	return
}

// Add adds v to the scalar.
func (s *ScalarNative) Add(v *ScalarNative) *ScalarNative {
	s.n.Add(&v.n)
	return s
}

// Mul multiplies the scalar by v.
func (s *ScalarNative) Mul(v *ScalarNative) *ScalarNative {
	s.n.Mul(&v.n)
	return s
}

// Sqr squares the scalar.
func (s *ScalarNative) Sqr() *ScalarNative {
	s.n.Square()
	return s
}

// Negate negates the scalar. Negation of zero is zero.
func (s *ScalarNative) Negate() *ScalarNative {
	s.n.Negate()
	return s
}

// Inverse replaces the scalar with its multiplicative inverse. The
// inverse of zero is zero; the caller checks when it matters. Not
// constant time.
func (s *ScalarNative) Inverse() *ScalarNative {
	s.n.InverseNonConst()
	return s
}

// IsZero reports whether the scalar is zero.
func (s *ScalarNative) IsZero() bool {
	return s.n.IsZero()
}

// Equals reports whether both scalars hold the same value.
func (s *ScalarNative) Equals(v *ScalarNative) bool {
	return s.n.Equals(&v.n)
}

// Set copies v into the scalar.
func (s *ScalarNative) Set(v *ScalarNative) {
	s.n.Set(&v.n)
}

// Clear wipes the scalar.
func (s *ScalarNative) Clear() {
	s.n.Zero()
	memclear(unsafe.Pointer(s), unsafe.Sizeof(*s))
}
