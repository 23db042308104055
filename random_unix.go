//go:build unix

package ecc

import (
	"golang.org/x/sys/unix"
)

// genRandom reads from /dev/urandom directly, without buffering.
func genRandom(p []byte) error {
	fd, err := unix.Open("/dev/urandom", unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return makeError(ErrIoError, "opening /dev/urandom: "+err.Error())
	}
	defer unix.Close(fd)

	for len(p) > 0 {
		n, err := unix.Read(fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return makeError(ErrIoError, "reading /dev/urandom: "+err.Error())
		}
		if n <= 0 {
			return makeError(ErrIoError, "short read from /dev/urandom")
		}
		p = p[n:]
	}
	return nil
}
