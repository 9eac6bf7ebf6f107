package kernel

import "errors"

// Sentinel errors form the closed failure taxonomy spec §7 requires of the
// Boolean-formula services: callers switch on these with errors.Is rather
// than parsing messages.
var (
	// ErrFormula indicates a malformed formula (e.g. a variable referenced in
	// a clause but absent from the formula's declared variable set).
	ErrFormula = errors.New("kernel: malformed formula")
	// ErrBackend indicates the SAT backend itself failed or returned an
	// unexpected status, as opposed to the input being rejected.
	ErrBackend = errors.New("kernel: backend error")
)
