// Package strategy defines the five named argument-introduction strategies
// of spec §4.4, field-for-field as given in taupy/simulation/strategies.py.
package strategy

// Acceptance constrains what a position must already hold about a proposed
// conclusion before a strategy will use it.
type Acceptance int

const (
	// Any means the strategy does not constrain this side's acceptance.
	Any Acceptance = iota
	// Yes requires the position to already assert the conclusion.
	Yes
	// No requires the position to already assert the conclusion's negation.
	No
	// Toleration requires the position to not reject the conclusion, i.e.
	// either assert it or suspend it.
	Toleration
)

// PremiseSource names which of the two interacting positions supplies the
// candidate premise pool.
type PremiseSource int

const (
	// NoSource means premises are drawn from the debate's general literal
	// pool rather than from either interacting position's commitments.
	NoSource PremiseSource = iota
	FromSource
	FromTarget
)

// Strategy is the six-field record spec §4.4 requires of every named
// introduction strategy.
type Strategy struct {
	Name                    string
	SourceDirected          bool
	TargetDirected          bool
	PickPremisesFrom        PremiseSource
	SourceAcceptsConclusion Acceptance
	TargetAcceptsConclusion Acceptance
}

// Random introduces an argument without regard to any existing position's
// acceptance of its conclusion.
var Random = Strategy{
	Name:                    "random",
	SourceDirected:          false,
	TargetDirected:          false,
	PickPremisesFrom:        NoSource,
	SourceAcceptsConclusion: Any,
	TargetAcceptsConclusion: Any,
}

// Fortify introduces an argument for a conclusion the source position
// already accepts, reinforcing it.
var Fortify = Strategy{
	Name:                    "fortify",
	SourceDirected:          true,
	TargetDirected:          false,
	PickPremisesFrom:        FromSource,
	SourceAcceptsConclusion: Yes,
	TargetAcceptsConclusion: Any,
}

// Attack introduces an argument for a conclusion the source merely
// tolerates and the target rejects, grounded in the source's own premises.
var Attack = Strategy{
	Name:                    "attack",
	SourceDirected:          true,
	TargetDirected:          true,
	PickPremisesFrom:        FromSource,
	SourceAcceptsConclusion: Toleration,
	TargetAcceptsConclusion: No,
}

// Convert introduces an argument with premises picked from the target and a
// conclusion the source accepts, aiming to show the target its own
// commitments imply a conclusion the source already holds. The target's
// acceptance of the conclusion is not checked.
var Convert = Strategy{
	Name:                    "convert",
	SourceDirected:          true,
	TargetDirected:          true,
	PickPremisesFrom:        FromTarget,
	SourceAcceptsConclusion: Yes,
	TargetAcceptsConclusion: Any,
}

// Undercut introduces an argument for a conclusion the source merely
// tolerates, constructed from premises the target accepts.
var Undercut = Strategy{
	Name:                    "undercut",
	SourceDirected:          true,
	TargetDirected:          true,
	PickPremisesFrom:        FromTarget,
	SourceAcceptsConclusion: Toleration,
	TargetAcceptsConclusion: No,
}

// Named returns the five built-in strategies, keyed by name.
func Named() map[string]Strategy {
	return map[string]Strategy{
		Random.Name:   Random,
		Fortify.Name:  Fortify,
		Attack.Name:   Attack,
		Convert.Name:  Convert,
		Undercut.Name: Undercut,
	}
}
