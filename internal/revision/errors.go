package revision

import "errors"

// Sentinel errors form the closed failure taxonomy spec §7 requires of
// belief revision.
var (
	// ErrIncoherentInput is returned when the input position or debate
	// cannot support any revision (e.g. the debate itself is unsatisfiable).
	ErrIncoherentInput = errors.New("revision: incoherent input")
	// ErrSearchRadiusExhausted is returned when closest-closed-partial-
	// coherent search exhausts its configured neighbourhood radius without
	// finding a closed coherent completion.
	ErrSearchRadiusExhausted = errors.New("revision: search radius exhausted")
)
