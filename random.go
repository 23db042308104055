package ecc

// GenRandom fills p with bytes from the platform entropy source. It
// returns ErrIoError wrapped in an Error if the source cannot be read.
func GenRandom(p []byte) error {
	return genRandom(p)
}

// GenRandomHash draws a fresh random hash value.
func GenRandomHash() (HashValue, error) {
	var hv HashValue
	if err := GenRandom(hv[:]); err != nil {
		return hv, err
	}
	return hv, nil
}

// GenRandomScalar draws random bytes until they form a valid canonical
// scalar and imports the result into s.
func GenRandomScalar(s *ScalarNative) error {
	var raw Scalar
	for {
		if err := GenRandom(raw.Value[:]); err != nil {
			return err
		}
		if !s.Import(&raw) {
			SecureEraseBytes(raw.Value[:])
			return nil
		}
	}
}
