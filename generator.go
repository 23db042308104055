package ecc

import (
	"crypto/subtle"
	"unsafe"
)

const (
	// nBits is the scalar width in bits.
	nBits = 256

	// Fixed-base tables select one entry per level from a window of
	// genBitsPerLevel scalar bits.
	genBitsPerLevel   = 4
	genPointsPerLevel = 1 << genBitsPerLevel
	genLevels         = nBits / genBitsPerLevel
)

// createPointNnz interprets x as a compressed X coordinate with even Y
// and imports it, rejecting invalid encodings and the identity.
func createPointNnz(out *PointNative, x *HashValue) bool {
	pt := Point{X: *x}
	return out.ImportNnz(&pt)
}

// createPointNnzFromHash draws a digest and attempts a point from it.
func createPointNnzFromHash(out *PointNative, hp *HashProcessor) bool {
	var hv HashValue
	hp.Finalize(&hv)
	return createPointNnz(out, &hv)
}

// CreatePointNnzFromSeed writes the seed string into the transcript and
// draws digests until one decodes to a usable point.
func CreatePointNnzFromSeed(out *PointNative, seed string, hp *HashProcessor) {
	hp.WriteStr(seed)
	for !createPointNnzFromHash(out, hp) {
	}
}

// createPts fills a windowed table for base gpos. Each level holds the
// running base offset by a per-level share of an auxiliary nums point;
// the shares sum to zero across levels, so selecting one entry per
// window of the scalar accumulates exactly k times the base. Returns
// false if any intermediate lands on the identity, in which case the
// caller restarts with fresh transcript output. gpos is consumed.
func createPts(pts []compactPoint, gpos *PointNative, nLevels uint32, hp *HashProcessor) bool {
	var nums, npos, pt PointNative

	hp.WriteStr("nums")
	if !createPointNnzFromHash(&nums, hp) {
		return false
	}

	nums.Add(gpos)
	npos.Set(&nums)

	out := pts
	for iLev := uint32(1); ; iLev++ {
		pt.Set(&npos)

		for iPt := uint32(1); ; iPt++ {
			if pt.IsZero() {
				return false
			}

			pt.exportCompact(&out[0])
			out = out[1:]

			if iPt == genPointsPerLevel {
				break
			}
			pt.Add(gpos)
		}

		if iLev == nLevels {
			break
		}

		for i := 0; i < genBitsPerLevel; i++ {
			gpos.Double()
		}

		npos.Double()
		if iLev+1 == nLevels {
			npos.Negate()
			npos.Add(&nums)
		}
	}

	return true
}

// exportCompact stores the affine form for table use. Table points are
// never the identity; createPts guarantees it.
func (p *PointNative) exportCompact(c *compactPoint) {
	if !c.fromNative(p) {
		panic("identity has no affine table form")
	}
}

// GeneratePts builds a windowed table for pt, restarting the derivation
// on the rare identity collision until it succeeds.
func GeneratePts(pt *PointNative, hp *HashProcessor, pts []compactPoint, nLevels uint32) {
	for {
		var pt2 PointNative
		pt2.Set(pt)
		if createPts(pts, &pt2, nLevels, hp) {
			break
		}
	}
}

// windowAt extracts genBitsPerLevel bits of the canonical scalar at bit
// position 4*level, counting from the least significant bit.
func windowAt(kb *[32]byte, level int) int {
	b := kb[31-level/2]
	if level&1 != 0 {
		b >>= 4
	}
	return int(b & (genPointsPerLevel - 1))
}

// setMulBytes accumulates the table multiplication for canonical scalar
// bytes kb, walking windows LSB to MSB. In secure mode every level
// scans all entries with conditional moves instead of indexing.
func setMulBytes(res *PointNative, bSet bool, pts []compactPoint, kb *[32]byte, mode Mode) {
	nLevels := len(pts) / genPointsPerLevel

	var sel compactPoint
	for lev := 0; lev < nLevels; lev++ {
		nSel := windowAt(kb, lev)
		level := pts[lev*genPointsPerLevel : (lev+1)*genPointsPerLevel]

		var pSel *compactPoint
		if mode == ModeSecure {
			// Secret window values must never index memory; scan the
			// whole level and mask the match.
			for i := range level {
				sel.cmov(&level[i], subtle.ConstantTimeEq(int32(i), int32(nSel)))
			}
			pSel = &sel
		} else {
			pSel = &level[nSel]
		}

		if bSet {
			res.setCompact(pSel)
			bSet = false
		} else {
			res.addCompact(pSel)
		}
	}

	memclear(unsafe.Pointer(&sel), unsafe.Sizeof(sel))
}

// setMul multiplies through the table by a native scalar.
func setMul(res *PointNative, bSet bool, pts []compactPoint, k *ScalarNative, mode Mode) {
	kb := k.Bytes()
	setMulBytes(res, bSet, pts, &kb, mode)
	SecureEraseBytes(kb[:])
}

// Obscured is a fixed-base windowed table paired with a blinding
// scalar and its precomputed blind point. Secure-mode multiplications
// run as (k + blind) through the table followed by the stored
// compensation, so k never selects table entries directly.
type Obscured struct {
	pts       [genLevels * genPointsPerLevel]compactPoint
	addPt     compactPoint
	addScalar ScalarNative
}

// Initialize builds the table and blinding for base pt, drawing all
// randomness from the transcript.
func (o *Obscured) Initialize(pt *PointNative, hp *HashProcessor) {
	for {
		var pt2 PointNative
		pt2.Set(pt)
		if !createPts(o.pts[:], &pt2, genLevels, hp) {
			continue
		}

		hp.WriteStr("blind-scalar")
		var s0 Scalar
		var hv HashValue
		hp.Finalize(&hv)
		s0.Value = hv
		if o.addScalar.Import(&s0) {
			continue
		}

		setMul(&pt2, true, o.pts[:], &o.addScalar, ModeFast)
		pt2.exportCompact(&o.addPt)

		o.addScalar.Negate()
		return
	}
}

// Assign computes or accumulates k times the table base into res.
func (o *Obscured) Assign(res *PointNative, bSet bool, k *ScalarNative, mode Mode) {
	if mode == ModeSecure {
		if bSet {
			res.setCompact(&o.addPt)
		} else {
			res.addCompact(&o.addPt)
		}

		var kTmp ScalarNative
		kTmp.Set(k)
		kTmp.Add(&o.addScalar)
		setMul(res, false, o.pts[:], &kTmp, mode)
		kTmp.Clear()
	} else {
		setMul(res, bSet, o.pts[:], k, mode)
	}
}

// AssignSerialized multiplies by a serialized scalar, accepting
// overflowed encodings as their reduced value.
func (o *Obscured) AssignSerialized(res *PointNative, bSet bool, k *Scalar, mode Mode) {
	var k2 ScalarNative
	k2.Import(k)
	o.Assign(res, bSet, &k2, mode)
	k2.Clear()
}
