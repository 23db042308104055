package ecc

// MinimumValue is the smallest amount a public range proof accepts.
const MinimumValue = 1

// RangeProofPublic proves knowledge of the blinding factor of a
// commitment whose amount is disclosed: a signature under the key
// comm - Value*H.
type RangeProofPublic struct {
	Value     uint64
	Signature Signature
}

// ptMinusVal computes out = comm - val*H.
func ptMinusVal(out, comm *PointNative, val uint64) {
	out.Set(comm)

	var v ScalarNative
	v.SetU64(val)

	var ptAmount PointNative
	GetContext().h.Assign(&ptAmount, true, &v, ModeFast)

	ptAmount.Negate()
	out.Add(&ptAmount)
}

// Create signs the disclosed amount with the blinding factor. The
// oracle must carry the same prior transcript the verifier will use.
func (p *RangeProofPublic) Create(sk *ScalarNative, oracle *Oracle) {
	var hv HashValue
	oracle.WriteU64(p.Value)
	oracle.NextHash(&hv)

	p.Signature.Sign(&hv, sk)
}

// IsValid verifies the proof against the commitment, mutating the
// oracle exactly as Create does.
func (p *RangeProofPublic) IsValid(comm *PointNative, oracle *Oracle) bool {
	if p.Value < MinimumValue {
		return false
	}

	var pk PointNative
	ptMinusVal(&pk, comm, p.Value)

	var hv HashValue
	oracle.WriteU64(p.Value)
	oracle.NextHash(&hv)

	return p.Signature.IsValid(&hv, &pk)
}

// Cmp orders proofs on the signature, then the value.
func (p *RangeProofPublic) Cmp(x *RangeProofPublic) int {
	if n := p.Signature.Cmp(&x.Signature); n != 0 {
		return n
	}
	if p.Value < x.Value {
		return -1
	}
	if p.Value > x.Value {
		return 1
	}
	return 0
}
