package ecc

import "testing"

func preparedForTest(t *testing.T, seed string) (*Prepared, *PointNative) {
	t.Helper()
	var base PointNative
	seedPoint(&base, seed)

	p := &Prepared{}
	hp := NewHashProcessor()
	hp.WriteStr(seed + "-table")
	p.Initialize(&base, hp)
	return p, &base
}

func TestMultiMacEmpty(t *testing.T) {
	for _, mode := range []Mode{ModeFast, ModeSecure} {
		mm := NewMultiMac(0, 0)
		mm.Mode = mode

		var res PointNative
		mm.Calculate(&res)
		if !res.IsZero() {
			t.Errorf("empty plan in mode %s is not the identity", mode)
		}
	}
}

func TestMultiMacSingleCasual(t *testing.T) {
	var base PointNative
	seedPoint(&base, "mm-casual-base")

	var k ScalarNative
	seedScalar(&k, "mm-casual-k")

	want := refMul(t, &base, &k)

	for _, mode := range []Mode{ModeFast, ModeSecure} {
		mm := NewMultiMac(1, 0)
		mm.Mode = mode
		mm.AddCasual(&base, &k)

		var res PointNative
		mm.Calculate(&res)
		requireSamePoint(t, want, &res, "single casual "+mode.String())
	}
}

func TestMultiMacSinglePrepared(t *testing.T) {
	prep, base := preparedForTest(t, "mm-prep")

	var k ScalarNative
	seedScalar(&k, "mm-prep-k")

	want := refMul(t, base, &k)

	for _, mode := range []Mode{ModeFast, ModeSecure} {
		mm := NewMultiMac(0, 1)
		mm.Mode = mode
		mm.AddPrepared(prep, &k)

		var res PointNative
		mm.Calculate(&res)
		requireSamePoint(t, want, &res, "single prepared "+mode.String())
	}
}

func TestMultiMacMixedTerms(t *testing.T) {
	const nCasual, nPrepared = 6, 3

	var bases []*PointNative
	var ks []*ScalarNative

	casualBases := make([]PointNative, nCasual)
	casualKs := make([]ScalarNative, nCasual)
	for i := range casualBases {
		seedPoint(&casualBases[i], "mix-casual-"+string(rune('a'+i)))
		seedScalar(&casualKs[i], "mix-casual-k-"+string(rune('a'+i)))
		bases = append(bases, &casualBases[i])
		ks = append(ks, &casualKs[i])
	}

	preps := make([]*Prepared, nPrepared)
	prepKs := make([]ScalarNative, nPrepared)
	for i := range preps {
		var base *PointNative
		preps[i], base = preparedForTest(t, "mix-prep-"+string(rune('a'+i)))
		seedScalar(&prepKs[i], "mix-prep-k-"+string(rune('a'+i)))
		bases = append(bases, base)
		ks = append(ks, &prepKs[i])
	}

	want := refMulAdd(t, bases, ks)

	for _, mode := range []Mode{ModeFast, ModeSecure} {
		mm := NewMultiMac(nCasual, nPrepared)
		mm.Mode = mode
		for i := range casualBases {
			mm.AddCasual(&casualBases[i], &casualKs[i])
		}
		for i := range preps {
			mm.AddPrepared(preps[i], &prepKs[i])
		}

		var res PointNative
		mm.Calculate(&res)
		requireSamePoint(t, want, &res, "mixed terms "+mode.String())
	}
}

func TestMultiMacRandomTerms(t *testing.T) {
	// fresh random scalars each run, checked against the reference curve
	const n = 4

	bases := make([]PointNative, n)
	ks := make([]ScalarNative, n)
	var refBases []*PointNative
	var refKs []*ScalarNative
	for i := range bases {
		seedPoint(&bases[i], "rand-base-"+string(rune('a'+i)))
		if err := GenRandomScalar(&ks[i]); err != nil {
			t.Fatalf("GenRandomScalar: %v", err)
		}
		refBases = append(refBases, &bases[i])
		refKs = append(refKs, &ks[i])
	}

	want := refMulAdd(t, refBases, refKs)

	for _, mode := range []Mode{ModeFast, ModeSecure} {
		mm := NewMultiMac(n, 0)
		mm.Mode = mode
		for i := range bases {
			mm.AddCasual(&bases[i], &ks[i])
		}

		var res PointNative
		mm.Calculate(&res)
		requireSamePoint(t, want, &res, "random terms "+mode.String())
	}
}

func TestMultiMacReset(t *testing.T) {
	var base PointNative
	seedPoint(&base, "reset-base")

	var k ScalarNative
	seedScalar(&k, "reset-k")

	mm := NewMultiMac(2, 0)
	mm.Mode = ModeFast
	mm.AddCasual(&base, &k)
	mm.AddCasual(&base, &k)

	var twice PointNative
	mm.Calculate(&twice)

	mm.Reset()
	mm.AddCasual(&base, &k)

	var once PointNative
	mm.Calculate(&once)

	var doubled PointNative
	doubled.Set(&once)
	doubled.Double()
	if !doubled.Equals(&twice) {
		t.Error("reset plan did not recompute cleanly")
	}

	want := refMul(t, &base, &k)
	requireSamePoint(t, want, &once, "plan after reset")
}

func TestMultiMacWithBufs(t *testing.T) {
	var base PointNative
	seedPoint(&base, "bufs-base")
	prep, prepBase := preparedForTest(t, "bufs-prep")

	var k1, k2 ScalarNative
	seedScalar(&k1, "bufs-k1")
	seedScalar(&k2, "bufs-k2")

	want := refMulAdd(t,
		[]*PointNative{&base, prepBase},
		[]*ScalarNative{&k1, &k2})

	for _, mode := range []Mode{ModeFast, ModeSecure} {
		mm := NewMultiMacWithBufs()
		mm.Mode = mode
		mm.AddCasual(&base, &k1)
		mm.AddPrepared(prep, &k2)

		var res PointNative
		mm.Calculate(&res)
		requireSamePoint(t, want, &res, "buffered plan "+mode.String())
	}
}

func TestMulPoint(t *testing.T) {
	var base PointNative
	seedPoint(&base, "mulpoint-base")

	var k ScalarNative
	seedScalar(&k, "mulpoint-k")

	want := refMul(t, &base, &k)

	for _, mode := range []Mode{ModeFast, ModeSecure} {
		var res PointNative
		MulPoint(&res, &base, &k, mode)
		requireSamePoint(t, want, &res, "MulPoint "+mode.String())
	}
}

func TestGetOddAndShift(t *testing.T) {
	// scalar 0b1011 = 11: largest odd multiple within 31 is 11 itself,
	// triggered at its lowest set bit
	var kb [32]byte
	kb[31] = 0x0B

	var aux FastAux
	bitTrg, ok := getOddAndShift(&kb, nBits, casualFastMaxOdd, &aux)
	if !ok {
		t.Fatal("nonzero scalar reported no pending addition")
	}
	if aux.odd != 11 || bitTrg != 0 {
		t.Errorf("got odd=%d trigger=%d, want odd=11 trigger=0", aux.odd, bitTrg)
	}

	// zero scalar has nothing pending
	var zero [32]byte
	if _, ok := getOddAndShift(&zero, nBits, casualFastMaxOdd, &aux); ok {
		t.Error("zero scalar reported a pending addition")
	}
}
