package ecc

import (
	"crypto/hmac"
	"hash"
	"unsafe"

	sha256simd "github.com/minio/sha256-simd"
	hex "github.com/tmthrgd/go-hex"
)

// HashValue is a 32-byte SHA-256 digest.
type HashValue [32]byte

// String returns the digest as lowercase hex.
func (hv HashValue) String() string {
	return hex.EncodeToString(hv[:])
}

// HashProcessor is a streaming SHA-256 transcript with typed writes.
// Finalize both emits the digest and folds it back into a fresh state,
// so the transcript remains usable for further writes and reads.
type HashProcessor struct {
	h hash.Hash
}

// NewHashProcessor returns a transcript with empty state.
func NewHashProcessor() *HashProcessor {
	return &HashProcessor{h: sha256simd.New()}
}

// Reset restores the empty state.
func (p *HashProcessor) Reset() {
	if p.h == nil {
		p.h = sha256simd.New()
	} else {
		p.h.Reset()
	}
}

func (p *HashProcessor) lazy() hash.Hash {
	if p.h == nil {
		p.h = sha256simd.New()
	}
	return p.h
}

// Write absorbs raw bytes.
func (p *HashProcessor) Write(b []byte) *HashProcessor {
	p.lazy().Write(b)
	return p
}

// WriteStr absorbs a string including its terminating NUL.
func (p *HashProcessor) WriteStr(s string) *HashProcessor {
	h := p.lazy()
	h.Write([]byte(s))
	h.Write([]byte{0})
	return p
}

// WriteU8 absorbs one byte.
func (p *HashProcessor) WriteU8(v uint8) *HashProcessor {
	p.lazy().Write([]byte{v})
	return p
}

// WriteBool absorbs a bool as one byte.
func (p *HashProcessor) WriteBool(v bool) *HashProcessor {
	var b byte
	if v {
		b = 1
	}
	return p.WriteU8(b)
}

// WriteU16 absorbs a uint16 little endian.
func (p *HashProcessor) WriteU16(v uint16) *HashProcessor {
	p.lazy().Write([]byte{byte(v), byte(v >> 8)})
	return p
}

// WriteU32 absorbs a uint32 little endian.
func (p *HashProcessor) WriteU32(v uint32) *HashProcessor {
	p.lazy().Write([]byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
	})
	return p
}

// WriteU64 absorbs a uint64 little endian.
func (p *HashProcessor) WriteU64(v uint64) *HashProcessor {
	p.lazy().Write([]byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	})
	return p
}

// WriteHash absorbs a digest.
func (p *HashProcessor) WriteHash(hv *HashValue) *HashProcessor {
	p.lazy().Write(hv[:])
	return p
}

// WriteScalar absorbs a scalar's canonical bytes.
func (p *HashProcessor) WriteScalar(s *Scalar) *HashProcessor {
	p.lazy().Write(s.Value[:])
	return p
}

// WriteScalarNative absorbs a native scalar's canonical bytes.
func (p *HashProcessor) WriteScalarNative(s *ScalarNative) *HashProcessor {
	b := s.Bytes()
	p.lazy().Write(b[:])
	SecureEraseBytes(b[:])
	return p
}

// WritePoint absorbs a point encoding: X bytes then the parity byte.
func (p *HashProcessor) WritePoint(pt *Point) *HashProcessor {
	h := p.lazy()
	h.Write(pt.X[:])
	h.Write([]byte{pt.Y})
	return p
}

// WritePointNative exports and absorbs a native point.
func (p *HashProcessor) WritePointNative(pt *PointNative) *HashProcessor {
	var v Point
	pt.Export(&v)
	return p.WritePoint(&v)
}

// Finalize emits the digest and re-seeds the state with it, leaving
// the transcript equal to a fresh state that absorbed the digest.
func (p *HashProcessor) Finalize(out *HashValue) {
	h := p.lazy()
	sum := h.Sum(nil)
	copy(out[:], sum)
	h.Reset()
	h.Write(sum)
	SecureEraseBytes(sum)
}

// HashMac is an HMAC-SHA-256 keyed transcript.
type HashMac struct {
	m hash.Hash
}

// Reset re-keys the MAC.
func (m *HashMac) Reset(secret []byte) {
	m.m = hmac.New(sha256simd.New, secret)
}

// Write absorbs raw bytes.
func (m *HashMac) Write(b []byte) {
	m.m.Write(b)
}

// Finalize emits the MAC tag.
func (m *HashMac) Finalize(out *HashValue) {
	sum := m.m.Sum(nil)
	copy(out[:], sum)
	SecureEraseBytes(sum)
}

// Clear drops the keyed state.
func (m *HashMac) Clear() {
	m.m = nil
	memclear(unsafe.Pointer(m), unsafe.Sizeof(*m))
}
