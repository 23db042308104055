package ecc

import (
	"crypto/hmac"
	"unsafe"

	sha256simd "github.com/minio/sha256-simd"
)

// nonceDRBG is the HMAC-SHA-256 generator of RFC 6979 section 3.2.
// Successive generate calls continue the same output stream.
type nonceDRBG struct {
	k, v  [32]byte
	retry bool
}

func newNonceDRBG(keydata []byte) *nonceDRBG {
	rng := &nonceDRBG{}
	for i := range rng.v {
		rng.v[i] = 0x01
	}

	// K = HMAC_K(V || 0x00 || keydata), then V = HMAC_K(V)
	m := hmac.New(sha256simd.New, rng.k[:])
	m.Write(rng.v[:])
	m.Write([]byte{0x00})
	m.Write(keydata)
	copy(rng.k[:], m.Sum(nil))

	m = hmac.New(sha256simd.New, rng.k[:])
	m.Write(rng.v[:])
	copy(rng.v[:], m.Sum(nil))

	// K = HMAC_K(V || 0x01 || keydata), then V = HMAC_K(V)
	m = hmac.New(sha256simd.New, rng.k[:])
	m.Write(rng.v[:])
	m.Write([]byte{0x01})
	m.Write(keydata)
	copy(rng.k[:], m.Sum(nil))

	m = hmac.New(sha256simd.New, rng.k[:])
	m.Write(rng.v[:])
	copy(rng.v[:], m.Sum(nil))

	return rng
}

func (rng *nonceDRBG) generate(out []byte) {
	if rng.retry {
		m := hmac.New(sha256simd.New, rng.k[:])
		m.Write(rng.v[:])
		m.Write([]byte{0x00})
		copy(rng.k[:], m.Sum(nil))

		m = hmac.New(sha256simd.New, rng.k[:])
		m.Write(rng.v[:])
		copy(rng.v[:], m.Sum(nil))
	}

	for len(out) > 0 {
		m := hmac.New(sha256simd.New, rng.k[:])
		m.Write(rng.v[:])
		copy(rng.v[:], m.Sum(nil))

		n := copy(out, rng.v[:])
		out = out[n:]
	}

	rng.retry = true
}

func (rng *nonceDRBG) clear() {
	memclear(unsafe.Pointer(rng), unsafe.Sizeof(*rng))
}

func nonceKeydata(sk, msg, msg2 *HashValue) []byte {
	keydata := make([]byte, 0, 96)
	keydata = append(keydata, sk[:]...)
	keydata = append(keydata, msg[:]...)
	if msg2 != nil {
		keydata = append(keydata, msg2[:]...)
	}
	return keydata
}

// GenerateNonce derives a deterministic 32-byte nonce from the secret
// and message, with an optional second message. The attempt counter
// selects further values from the same stream, so retries never reuse
// a nonce.
func GenerateNonce(res *HashValue, sk, msg *HashValue, msg2 *HashValue, attempt uint32) {
	keydata := nonceKeydata(sk, msg, msg2)
	rng := newNonceDRBG(keydata)
	for i := uint32(0); ; i++ {
		rng.generate(res[:])
		if i == attempt {
			break
		}
	}
	rng.clear()
	SecureEraseBytes(keydata)
}

// GenerateNonce derives a deterministic scalar nonce, skipping stream
// values at or above the group order so the result imports cleanly.
func (s *ScalarNative) GenerateNonce(sk, msg *HashValue, msg2 *HashValue, attempt uint32) {
	keydata := nonceKeydata(sk, msg, msg2)
	rng := newNonceDRBG(keydata)
	var raw Scalar
	for {
		rng.generate(raw.Value[:])
		if s.Import(&raw) {
			continue
		}
		if attempt == 0 {
			break
		}
		attempt--
	}
	rng.clear()
	SecureEraseBytes(raw.Value[:])
	SecureEraseBytes(keydata)
}

// Kdf derives child keys from a master secret. Derivation is a pure
// function of the secret and the index/flags/extra parameters.
type Kdf struct {
	Secret HashValue
}

// DeriveKey derives the child key for the given index.
func (k *Kdf) DeriveKey(out *ScalarNative, idx uint64, flags uint32, extra uint32) {
	var hv HashValue
	hp := NewHashProcessor()
	hp.WriteU64(idx).WriteU32(flags).WriteU32(extra)
	hp.Finalize(&hv)
	out.GenerateNonce(&k.Secret, &hv, nil, 0)
}
