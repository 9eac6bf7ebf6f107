// Package simconfig holds the closed configuration records of spec §6:
// simulation parameters, event-selection weights, and revision-strategy
// choice, each a plain struct with Default/FromEnv constructors in the
// teacher's style (internal/storage/config.go) rather than a dynamic
// attribute-lookup configuration object (§9 "closed enumerations").
package simconfig

import (
	"os"
	"strconv"
)

// EventKind is the closed set of simulation events (§4.7).
type EventKind string

const (
	EventIntroduction EventKind = "introduction"
	EventNewSentence  EventKind = "new_sentence"
)

// Variant selects which simulation driver runs (§4.7).
type Variant string

const (
	VariantStandard        Variant = "standard"
	VariantFixedDebate     Variant = "fixed_debate"
	VariantSocialInfluence Variant = "social_influence"
)

// UncoverMode governs the fixed-debate variant's argument selection when
// more than one uncovered argument is eligible.
type UncoverMode string

const (
	UncoverAny UncoverMode = "any"
	UncoverMax UncoverMode = "max"
)

// RevisionStrategy names the closed set of belief-revision strategies
// (§4.5).
type RevisionStrategy string

const (
	RevisionRandomRefit                  RevisionStrategy = "random_refit"
	RevisionClosestCoherent              RevisionStrategy = "closest_coherent"
	RevisionClosestClosedPartialCoherent RevisionStrategy = "closest_closed_partial_coherent"
)

// Config is the full simulation configuration record.
type Config struct {
	Variant Variant

	// Event selection (standard variant).
	EventWeights map[EventKind]float64

	// Population and growth.
	InitialPositionCount int
	InitialPositionSize  int
	Directed             bool
	ArgumentLength       int
	SentencePoolSize     int
	MaxSentencePoolSize  int
	KeyStatementCount    int

	// Termination.
	MaxDensity float64
	MaxSteps   int
	MinSCCP    int

	// Introduction.
	IntroductionStrategy string // one of internal/strategy's Named() keys

	// Revision.
	DefaultRevisionStrategy RevisionStrategy
	PartialSearchRadius     int

	// Fixed-debate variant only.
	UncoverMode UncoverMode

	// Social-influence variant only.
	InfluenceParameter float64
	MaxAgreement       float64

	// Reproducibility.
	Seed int64
}

// DefaultConfig matches taupy's Simulation defaults (max_density=0.8,
// max_steps=1000, min_sccp=1). There is no separate step cap for the
// fixed-debate variant; its Run takes maxSteps as an argument.
func DefaultConfig() Config {
	return Config{
		Variant: VariantStandard,
		EventWeights: map[EventKind]float64{
			EventIntroduction: 0.9,
			EventNewSentence:  0.1,
		},
		InitialPositionCount:    1,
		InitialPositionSize:     0,
		Directed:                true,
		ArgumentLength:          2,
		SentencePoolSize:        20,
		MaxSentencePoolSize:     20,
		KeyStatementCount:       3,
		MaxDensity:              0.8,
		MaxSteps:                1000,
		MinSCCP:                 1,
		IntroductionStrategy:    "random",
		DefaultRevisionStrategy: RevisionClosestCoherent,
		PartialSearchRadius:     3,
		UncoverMode:             UncoverAny,
		InfluenceParameter:      0.5,
		MaxAgreement:            0.9,
		Seed:                    1,
	}
}

// FromEnv overlays environment-variable overrides onto DefaultConfig, in
// the teacher's STORAGE_TYPE/SQLITE_PATH style (internal/storage/config.go
// ConfigFromEnv).
func FromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("SIM_VARIANT"); v != "" {
		cfg.Variant = Variant(v)
	}
	if v := os.Getenv("SIM_MAX_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSteps = n
		}
	}
	if v := os.Getenv("SIM_MAX_DENSITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxDensity = f
		}
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("SIM_REVISION_STRATEGY"); v != "" {
		cfg.DefaultRevisionStrategy = RevisionStrategy(v)
	}
	return cfg
}
