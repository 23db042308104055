package ecc

import (
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func TestGenerateNonceDeterministic(t *testing.T) {
	sk := HashValue(sha256.Sum256([]byte("nonce-sk")))
	msg := HashValue(sha256.Sum256([]byte("nonce-msg")))

	var a, b HashValue
	GenerateNonce(&a, &sk, &msg, nil, 0)
	GenerateNonce(&b, &sk, &msg, nil, 0)
	if a != b {
		t.Error("same inputs produced different nonces")
	}
}

func TestGenerateNonceInputsMatter(t *testing.T) {
	sk := HashValue(sha256.Sum256([]byte("nonce-sk")))
	msg := HashValue(sha256.Sum256([]byte("nonce-msg")))
	msg2 := HashValue(sha256.Sum256([]byte("nonce-msg2")))
	skAlt := HashValue(sha256.Sum256([]byte("nonce-sk-alt")))

	var base, v HashValue
	GenerateNonce(&base, &sk, &msg, nil, 0)

	GenerateNonce(&v, &skAlt, &msg, nil, 0)
	if v == base {
		t.Error("secret did not affect the nonce")
	}

	GenerateNonce(&v, &sk, &msg2, nil, 0)
	if v == base {
		t.Error("message did not affect the nonce")
	}

	GenerateNonce(&v, &sk, &msg, &msg2, 0)
	if v == base {
		t.Error("second message did not affect the nonce")
	}

	GenerateNonce(&v, &sk, &msg, nil, 1)
	if v == base {
		t.Error("attempt counter did not advance the stream")
	}
}

func TestScalarGenerateNonceMatchesRFC6979(t *testing.T) {
	sk := HashValue(sha256.Sum256([]byte("rfc-sk")))
	msg := HashValue(sha256.Sum256([]byte("rfc-msg")))

	for attempt := uint32(0); attempt < 4; attempt++ {
		var s ScalarNative
		s.GenerateNonce(&sk, &msg, nil, attempt)

		ref := secp256k1.NonceRFC6979(sk[:], msg[:], nil, nil, attempt)
		var want [32]byte
		ref.PutBytes(&want)

		if s.Bytes() != want {
			t.Errorf("attempt %d diverged from the reference derivation", attempt)
		}
	}
}

func TestScalarGenerateNonceValid(t *testing.T) {
	for i := 0; i < 16; i++ {
		sk := HashValue(sha256.Sum256([]byte{byte(i)}))
		msg := HashValue(sha256.Sum256([]byte{byte(i), 1}))

		var s ScalarNative
		s.GenerateNonce(&sk, &msg, nil, 0)

		var ser Scalar
		s.Export(&ser)
		if !ser.IsValid() {
			t.Fatalf("nonce %d not canonical", i)
		}
		if s.IsZero() {
			t.Fatalf("nonce %d is zero", i)
		}
	}
}

func TestKdfDeriveKey(t *testing.T) {
	kdf := Kdf{Secret: HashValue(sha256.Sum256([]byte("master")))}

	var a, b ScalarNative
	kdf.DeriveKey(&a, 1, 0, 0)
	kdf.DeriveKey(&b, 1, 0, 0)
	if !a.Equals(&b) {
		t.Error("same index derived different keys")
	}

	cases := []struct {
		name  string
		idx   uint64
		flags uint32
		extra uint32
	}{
		{name: "index", idx: 2, flags: 0, extra: 0},
		{name: "flags", idx: 1, flags: 1, extra: 0},
		{name: "extra", idx: 1, flags: 0, extra: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var k ScalarNative
			kdf.DeriveKey(&k, tc.idx, tc.flags, tc.extra)
			if k.Equals(&a) {
				t.Error("derivation parameter did not affect the key")
			}
		})
	}

	other := Kdf{Secret: HashValue(sha256.Sum256([]byte("other-master")))}
	var c ScalarNative
	other.DeriveKey(&c, 1, 0, 0)
	if c.Equals(&a) {
		t.Error("different masters derived the same key")
	}
}
