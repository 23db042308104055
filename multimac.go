package ecc

import (
	"crypto/subtle"
	"unsafe"
)

const (
	// Prepared fast tables hold the odd multiples {1, 3, .., 1023} of
	// the base.
	preparedFastMaxOdd = (1 << 10) - 1
	preparedFastCount  = preparedFastMaxOdd>>1 + 1

	// Secure tables cover one window of secureBits scalar bits.
	secureBits  = 4
	secureCount = 1 << secureBits

	// Casual terms cache odd multiples up to 31. Slot 0 holds the
	// doubled base, slot 1 the base, odd multiple m lives at (m>>1)+1.
	casualFastMaxOdd = (1 << 5) - 1
	casualFastCount  = casualFastMaxOdd>>1 + 2
)

// FastAux is per-term scratch for the fast traversal: the pending odd
// multiple and the bucket link to the next term at the same trigger
// bit.
type FastAux struct {
	odd      uint32
	nextItem uint32
}

// Prepared is a precomputed fixed-base term: odd multiples for the
// fast path and a blinded window table with compensation for the
// secure path.
type Prepared struct {
	fastPts      [preparedFastCount]compactPoint
	securePts    [secureCount]compactPoint
	compensation compactPoint
	secureScalar ScalarNative
}

// InitializeFromSeed derives the base point from the transcript and
// builds the tables.
func (p *Prepared) InitializeFromSeed(seed string, hp *HashProcessor) {
	var val PointNative
	hp.WriteStr(seed)
	for !createPointNnzFromHash(&val, hp) {
	}
	p.Initialize(&val, hp)
}

// Initialize builds the fast and secure tables for base val, drawing
// the secure blinding from the transcript.
func (p *Prepared) Initialize(val *PointNative, hp *HashProcessor) {
	var npos, nums PointNative
	npos.Set(val)
	nums.Set(val)
	nums.Double()

	for i := range p.fastPts {
		if i != 0 {
			npos.Add(&nums)
		}
		npos.exportCompact(&p.fastPts[i])
	}

	for {
		var hv HashValue
		hp.WriteStr("nums")
		hp.Finalize(&hv)

		if !createPointNnzFromHash(&nums, hp) {
			continue
		}

		hp.WriteStr("blind-scalar")
		var s0 Scalar
		hp.Finalize((*HashValue)(&s0.Value))
		if p.secureScalar.Import(&s0) {
			continue
		}

		npos.Set(&nums)
		ok := true

		for i := 0; ; {
			if npos.IsZero() {
				ok = false
				break
			}
			npos.exportCompact(&p.securePts[i])

			i++
			if i == secureCount {
				break
			}
			npos.Add(val)
		}
		if !ok {
			continue
		}

		// compensation = -(blind*val + sum of 2^(4w)*nums over windows)
		mm := NewMultiMac(0, 1)
		mm.Mode = ModeFast
		mm.AddPrepared(p, &p.secureScalar)
		mm.Calculate(&npos)

		npos.Add(&nums)
		for i := nBits/secureBits - 1; i > 0; i-- {
			for j := 0; j < secureBits; j++ {
				nums.Double()
			}
			npos.Add(&nums)
		}

		if npos.IsZero() {
			continue
		}

		npos.Negate()
		npos.exportCompact(&p.compensation)
		return
	}
}

// Casual is a variable-base term of a multiplication plan.
type Casual struct {
	pts       [casualFastCount]PointNative
	k         ScalarNative
	kb        [32]byte
	nPrepared uint32
	aux       FastAux
}

func (c *Casual) init(p *PointNative, k *ScalarNative, mode Mode) {
	if mode == ModeFast {
		c.nPrepared = 1
		c.pts[1].Set(p)
	} else {
		ctx := GetContext()
		c.pts[0].setCompact(&ctx.casualNums)
		for i := 1; i < secureCount; i++ {
			c.pts[i].Set(&c.pts[i-1])
			c.pts[i].Add(p)
		}
	}
	c.k.Set(k)
	c.kb = c.k.Bytes()
	c.aux = FastAux{}
}

// MultiMac is a multi-scalar multiplication plan over casual and
// prepared terms. Mode selects the traversal; terms must be added
// under the same mode the plan is calculated with.
type MultiMac struct {
	Mode Mode

	casual   []Casual
	prepared []*Prepared
	kPrep    []ScalarNative
	kPrepB   [][32]byte
	auxPrep  []FastAux
}

// NewMultiMac returns an empty plan with capacity for the given term
// counts.
func NewMultiMac(maxCasual, maxPrepared int) *MultiMac {
	return &MultiMac{
		casual:   make([]Casual, 0, maxCasual),
		prepared: make([]*Prepared, 0, maxPrepared),
		kPrep:    make([]ScalarNative, 0, maxPrepared),
		kPrepB:   make([][32]byte, 0, maxPrepared),
		auxPrep:  make([]FastAux, 0, maxPrepared),
	}
}

// Reset drops all terms, keeping capacity.
func (m *MultiMac) Reset() {
	m.casual = m.casual[:0]
	m.prepared = m.prepared[:0]
	m.kPrep = m.kPrep[:0]
	m.kPrepB = m.kPrepB[:0]
	m.auxPrep = m.auxPrep[:0]
}

// AddCasual appends a variable-base term k*p.
func (m *MultiMac) AddCasual(p *PointNative, k *ScalarNative) {
	m.casual = append(m.casual, Casual{})
	m.casual[len(m.casual)-1].init(p, k, m.Mode)
}

// AddPrepared appends a fixed-base term k*table.
func (m *MultiMac) AddPrepared(t *Prepared, k *ScalarNative) {
	m.prepared = append(m.prepared, t)
	m.kPrep = append(m.kPrep, ScalarNative{})
	m.kPrep[len(m.kPrep)-1].Set(k)
	m.kPrepB = append(m.kPrepB, [32]byte{})
	m.auxPrep = append(m.auxPrep, FastAux{})
}

const (
	bufsCasualMax   = 16
	bufsPreparedMax = 16
)

// MultiMacWithBufs is a plan whose term storage lives in fixed-size
// buffers inside the struct, so adding up to 16 casual and 16 prepared
// terms allocates nothing beyond the struct itself.
type MultiMacWithBufs struct {
	MultiMac

	casualBuf   [bufsCasualMax]Casual
	preparedBuf [bufsPreparedMax]*Prepared
	kPrepBuf    [bufsPreparedMax]ScalarNative
	kPrepBBuf   [bufsPreparedMax][32]byte
	auxBuf      [bufsPreparedMax]FastAux
}

// NewMultiMacWithBufs returns an empty buffered plan.
func NewMultiMacWithBufs() *MultiMacWithBufs {
	b := &MultiMacWithBufs{}
	b.casual = b.casualBuf[:0]
	b.prepared = b.preparedBuf[:0]
	b.kPrep = b.kPrepBuf[:0]
	b.kPrepB = b.kPrepBBuf[:0]
	b.auxPrep = b.auxBuf[:0]
	return b
}

// getOddAndShift scans bits of kb below bitsRemaining, MSB first,
// accumulating a doubling register. It records into aux the largest
// odd value not exceeding maxOdd together with the bit position that
// triggers its addition, and reports whether any addition is pending.
func getOddAndShift(kb *[32]byte, bitsRemaining uint32, maxOdd uint32, aux *FastAux) (bitTrg uint32, ok bool) {
	nVal := uint32(0)

	for bitsRemaining > 0 {
		bitsRemaining--

		nVal <<= 1
		if nVal > maxOdd {
			return bitTrg, true
		}

		n := kb[31-bitsRemaining/8] >> (bitsRemaining & 7)
		if n&1 != 0 {
			nVal |= 1
			aux.odd = nVal
			bitTrg = bitsRemaining
		}
	}

	return bitTrg, nVal > 0
}

// Calculate evaluates the plan into res. In secure mode the prepared
// term scalars absorb their table blindings up front and the stored
// compensations cancel everything at the end.
func (m *MultiMac) Calculate(res *PointNative) {
	res.SetZero()

	var tblCasual [nBits]uint32
	var tblPrepared [nBits]uint32

	if m.Mode == ModeFast {
		for i := range m.prepared {
			m.kPrepB[i] = m.kPrep[i].Bytes()
			if iBit, ok := getOddAndShift(&m.kPrepB[i], nBits, preparedFastMaxOdd, &m.auxPrep[i]); ok {
				m.auxPrep[i].nextItem = tblPrepared[iBit]
				tblPrepared[iBit] = uint32(i) + 1
			}
		}

		for i := range m.casual {
			x := &m.casual[i]
			if iBit, ok := getOddAndShift(&x.kb, nBits, casualFastMaxOdd, &x.aux); ok {
				x.aux.nextItem = tblCasual[iBit]
				tblCasual[iBit] = uint32(i) + 1
			}
		}
	} else {
		for i := range m.prepared {
			m.kPrep[i].Add(&m.prepared[i].secureScalar)
			m.kPrepB[i] = m.kPrep[i].Bytes()
		}
		for i := range m.casual {
			m.casual[i].kb = m.casual[i].k.Bytes()
		}
	}

	var sel compactPoint

	for iBit := uint32(nBits); iBit > 0; {
		iBit--

		if !res.IsZero() {
			res.Double()
		}

		if m.Mode == ModeFast {
			for tblCasual[iBit] != 0 {
				iEntry := tblCasual[iBit]
				x := &m.casual[iEntry-1]
				tblCasual[iBit] = x.aux.nextItem

				nElem := (x.aux.odd >> 1) + 1

				for ; x.nPrepared < nElem; x.nPrepared++ {
					if x.nPrepared == 1 {
						x.pts[0].Set(&x.pts[1])
						x.pts[0].Double()
					}
					x.pts[x.nPrepared+1].Set(&x.pts[x.nPrepared])
					x.pts[x.nPrepared+1].Add(&x.pts[0])
				}

				res.Add(&x.pts[nElem])

				if iBit2, ok := getOddAndShift(&x.kb, iBit, casualFastMaxOdd, &x.aux); ok {
					x.aux.nextItem = tblCasual[iBit2]
					tblCasual[iBit2] = iEntry
				}
			}

			for tblPrepared[iBit] != 0 {
				iEntry := tblPrepared[iBit]
				x := &m.auxPrep[iEntry-1]
				tblPrepared[iBit] = x.nextItem

				nElem := x.odd >> 1

				res.addCompact(&m.prepared[iEntry-1].fastPts[nElem])

				if iBit2, ok := getOddAndShift(&m.kPrepB[iEntry-1], iBit, preparedFastMaxOdd, x); ok {
					x.nextItem = tblPrepared[iBit2]
					tblPrepared[iBit2] = iEntry
				}
			}
		} else if iBit&(secureBits-1) == 0 {
			level := int(iBit / secureBits)

			for i := range m.casual {
				x := &m.casual[i]
				nVal := windowAt(&x.kb, level)
				res.Add(&x.pts[nVal])
			}

			for i := range m.prepared {
				nVal := windowAt(&m.kPrepB[i], level)

				pts := &m.prepared[i].securePts
				for j := range pts {
					sel.cmov(&pts[j], subtle.ConstantTimeEq(int32(j), int32(nVal)))
				}
				res.addCompact(&sel)
			}
		}
	}

	if m.Mode == ModeSecure {
		for i := range m.prepared {
			res.addCompact(&m.prepared[i].compensation)
		}
		if len(m.casual) > 0 {
			comp := &GetContext().casualCompensation
			for range m.casual {
				res.addCompact(comp)
			}
		}
	}

	memclear(unsafe.Pointer(&sel), unsafe.Sizeof(sel))
}
