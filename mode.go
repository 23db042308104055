package ecc

// Mode selects between the constant-time and the variable-time
// multiplication paths. The zero value is ModeSecure.
//
// Secret-handling operations (signing, committing, nonce handling) use
// ModeSecure. Verification of public data uses ModeFast, which leaks
// timing information about its inputs.
type Mode uint8

const (
	// ModeSecure runs constant-time table scans and blinded lookups.
	ModeSecure Mode = iota

	// ModeFast runs variable-time windowed multiplication.
	ModeFast
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeFast {
		return "fast"
	}
	return "secure"
}
