package ecc

// Signature is a Schnorr signature in challenge/response encoding.
type Signature struct {
	E Scalar
	K Scalar
}

// MulPoint computes res = k*p through a single casual term.
func MulPoint(res *PointNative, p *PointNative, k *ScalarNative, mode Mode) {
	mm := NewMultiMacWithBufs()
	mm.Mode = mode
	mm.AddCasual(p, k)
	mm.Calculate(res)
}

// GetChallenge derives the challenge scalar for a public nonce and
// message through a fresh oracle.
func GetChallenge(out *ScalarNative, pt *PointNative, msg *HashValue) {
	o := NewOracle()
	o.WritePointNative(pt)
	o.WriteHash(msg)
	o.NextScalar(out)
}

// MultiSig holds one co-signer's share of a signature: the local
// secret nonce and the combined public nonce.
type MultiSig struct {
	Nonce    ScalarNative
	NoncePub PointNative
}

// GenerateNonce derives the local nonce deterministically from the
// secret key and message.
func (m *MultiSig) GenerateNonce(msg *HashValue, sk *ScalarNative) {
	skSer := HashValue(sk.Bytes())
	m.Nonce.GenerateNonce(&skSer, msg, nil, 0)
	SecureEraseBytes(skSer[:])
}

// CoSign computes this signer's response against the combined public
// nonce, storing the challenge in the signature and the response in
// kOut. Partial responses from all co-signers sum to the full one.
func (s *Signature) CoSign(kOut *ScalarNative, msg *HashValue, sk *ScalarNative, msig *MultiSig) {
	GetChallenge(kOut, &msig.NoncePub, msg)
	kOut.Export(&s.E)

	kOut.Mul(sk)
	kOut.Negate()
	kOut.Add(&msig.Nonce)
}

// Sign produces a single-signer signature over msg.
func (s *Signature) Sign(msg *HashValue, sk *ScalarNative) {
	var msig MultiSig
	msig.GenerateNonce(msg, sk)
	GetContext().g.Assign(&msig.NoncePub, true, &msig.Nonce, ModeSecure)

	var k ScalarNative
	s.CoSign(&k, msg, sk, &msig)
	k.Export(&s.K)

	k.Clear()
	msig.Nonce.Clear()
}

// getPublicNonce reconstructs the signer's public nonce from the
// signature and public key: K*G + E*pk. Public data; runs fast.
func (s *Signature) getPublicNonce(res *PointNative, pk *PointNative) {
	GetContext().g.AssignSerialized(res, true, &s.K, ModeFast)

	var e ScalarNative
	e.Import(&s.E)

	var t PointNative
	MulPoint(&t, pk, &e, ModeFast)
	res.Add(&t)
}

// IsValid verifies the signature over msg against the public key.
func (s *Signature) IsValid(msg *HashValue, pk *PointNative) bool {
	var pubNonce PointNative
	s.getPublicNonce(&pubNonce, pk)

	var e2 ScalarNative
	GetChallenge(&e2, &pubNonce, msg)

	var ser Scalar
	e2.Export(&ser)
	return ser.Value == s.E.Value
}

// IsValidPartial verifies one co-signer's response against an
// externally combined public nonce.
func (s *Signature) IsValidPartial(pubNonce *PointNative, pk *PointNative) bool {
	var pubN PointNative
	s.getPublicNonce(&pubN, pk)

	pubN.Negate()
	pubN.Add(pubNonce)
	return pubN.IsZero()
}

// Cmp orders signatures lexicographically on (E, K) canonical bytes.
func (s *Signature) Cmp(x *Signature) int {
	if n := s.E.Cmp(&x.E); n != 0 {
		return n
	}
	return s.K.Cmp(&x.K)
}
