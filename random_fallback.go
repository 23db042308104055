//go:build !unix

package ecc

import (
	"crypto/rand"
)

// genRandom binds the platform CSPRNG on systems without /dev/urandom.
func genRandom(p []byte) error {
	if _, err := rand.Read(p); err != nil {
		return makeError(ErrIoError, "reading system entropy: "+err.Error())
	}
	return nil
}
