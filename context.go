package ecc

import (
	"fmt"
	"sync"
)

// ippDim is the number of inner-product generator pairs, one per bit
// of a 64-bit amount.
const ippDim = 64

// Context holds every generator table the protocol uses: the blinded
// G/H fixed-base tables, the inner-product generator arrays, the
// casual-term blinding points, and a checksum committing to all of it.
// It is derived deterministically from fixed seed strings, so distinct
// processes agree on it byte for byte.
type Context struct {
	g    Obscured
	h    Obscured
	hBig Obscured

	ipp struct {
		g         Prepared
		h         Prepared
		gen       [2][ippDim]Prepared
		get1Minus [ippDim]compactPoint
		aux2      Prepared
		genDot    Prepared
	}

	casualNums         compactPoint
	casualCompensation compactPoint

	hvChecksum HashValue
}

var (
	ctxOnce   sync.Once
	ctxGlobal *Context
)

// GetContext returns the process-wide generator context, deriving it
// on first use. The derivation runs once; every later call returns the
// same immutable value.
func GetContext() *Context {
	ctxOnce.Do(initContext)
	return ctxGlobal
}

// Checksum returns the digest committing to every derived table. It
// changes whenever any derivation in the initializer changes.
func (c *Context) Checksum() HashValue {
	return c.hvChecksum
}

func initContext() {
	ctx := &Context{}
	hp := NewHashProcessor()

	// G and H come from their own seeds so every generator kind below
	// agrees on the same bases.
	var gRaw, hRaw PointNative
	CreatePointNnzFromSeed(&gRaw, "G-gen", hp)
	CreatePointNnzFromSeed(&hRaw, "H-gen", hp)

	ctx.g.Initialize(&gRaw, hp)
	ctx.h.Initialize(&hRaw, hp)
	ctx.hBig.Initialize(&hRaw, hp)

	var pt, ptAux2 PointNative
	ptAux2.SetZero()

	ctx.ipp.g.Initialize(&gRaw, hp)
	ctx.ipp.h.Initialize(&hRaw, hp)

	for i := 0; i < ippDim; i++ {
		for j := 0; j < 2; j++ {
			ctx.ipp.gen[j][i].InitializeFromSeed(fmt.Sprintf("ip-%02d%d", i, j), hp)

			if j == 1 {
				pt.setCompact(&ctx.ipp.gen[j][i].fastPts[0])
				pt.Negate()
				pt.exportCompact(&ctx.ipp.get1Minus[i])
			} else {
				ptAux2.addCompact(&ctx.ipp.gen[j][i].fastPts[0])
			}
		}
	}

	ptAux2.Negate()
	hp.WriteStr("aux2")
	ctx.ipp.aux2.Initialize(&ptAux2, hp)

	ctx.ipp.genDot.InitializeFromSeed("ip-dot", hp)

	ctx.casualNums = ctx.ipp.genDot.fastPts[0]

	// The casual secure tables offset every window by the nums point;
	// precompute the scalar with a 1 bit at each window boundary and
	// cancel its genDot multiple once per casual term.
	{
		var k, one ScalarNative
		one.SetInt(1)
		for i := nBits; i > 0; {
			i--
			var kk ScalarNative
			kk.Set(&k)
			k.Add(&kk)
			if i%secureBits == 0 {
				k.Add(&one)
			}
		}
		k.Negate()

		mm := NewMultiMacWithBufs()
		mm.Mode = ModeFast
		mm.AddPrepared(&ctx.ipp.genDot, &k)
		mm.Calculate(&pt)
		pt.exportCompact(&ctx.casualCompensation)
	}

	// Version tag; bump with any derivation change above.
	hp.WriteU32(0)
	hp.Finalize(&ctx.hvChecksum)

	ctxGlobal = ctx
}
