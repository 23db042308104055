package ecc

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Cross-check helpers built on the btcec big-int curve, independent of
// the arithmetic under test.

func refCoords(t *testing.T, p *Point) (x, y *big.Int) {
	t.Helper()
	buf := make([]byte, 33)
	buf[0] = 2 + p.Y
	copy(buf[1:], p.X[:])
	pub, err := btcec.ParsePubKey(buf)
	if err != nil {
		t.Fatalf("ParsePubKey: %v", err)
	}
	ec := pub.ToECDSA()
	return ec.X, ec.Y
}

func refEncode(t *testing.T, x, y *big.Int) (p Point) {
	t.Helper()
	if x.Sign() == 0 && y.Sign() == 0 {
		t.Fatal("reference result is the identity")
	}
	x.FillBytes(p.X[:])
	p.Y = uint8(y.Bit(0))
	return
}

// refMul computes k*base on the reference curve.
func refMul(t *testing.T, base *PointNative, k *ScalarNative) Point {
	t.Helper()
	var enc Point
	if !base.Export(&enc) {
		t.Fatal("reference base is the identity")
	}
	x, y := refCoords(t, &enc)
	kb := k.Bytes()
	rx, ry := btcec.S256().ScalarMult(x, y, kb[:])
	return refEncode(t, rx, ry)
}

// refMulAdd computes the sum of k_i*base_i on the reference curve.
func refMulAdd(t *testing.T, bases []*PointNative, ks []*ScalarNative) Point {
	t.Helper()
	if len(bases) != len(ks) || len(bases) == 0 {
		t.Fatal("mismatched reference term lists")
	}
	var ax, ay *big.Int
	for i := range bases {
		var enc Point
		if !bases[i].Export(&enc) {
			t.Fatal("reference base is the identity")
		}
		x, y := refCoords(t, &enc)
		kb := ks[i].Bytes()
		px, py := btcec.S256().ScalarMult(x, y, kb[:])
		if ax == nil {
			ax, ay = px, py
		} else {
			ax, ay = btcec.S256().Add(ax, ay, px, py)
		}
	}
	return refEncode(t, ax, ay)
}

// seedPoint derives a deterministic non-identity point for tests.
func seedPoint(out *PointNative, seed string) {
	hp := NewHashProcessor()
	CreatePointNnzFromSeed(out, seed, hp)
}

// seedScalar derives a deterministic valid scalar for tests.
func seedScalar(out *ScalarNative, seed string) {
	o := NewOracle()
	o.WriteStr(seed)
	o.NextScalar(out)
}

func requireSamePoint(t *testing.T, want Point, got *PointNative, what string) {
	t.Helper()
	var enc Point
	if !got.Export(&enc) {
		t.Fatalf("%s: result is the identity", what)
	}
	if enc.Cmp(&want) != 0 {
		t.Errorf("%s: got %s, want %s", what, enc.String(), want.String())
	}
}
