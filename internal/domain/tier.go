package domain

import (
	"fmt"
	"time"
)

// Tier names an intensity preset for a test category.
type Tier string

const (
	TierQuick         Tier = "quick"
	TierStandard      Tier = "standard"
	TierComprehensive Tier = "comprehensive"
	TierStealth       Tier = "stealth"
	TierCustom        Tier = "custom"
)

// SizeClass selects one of the cached wordlist tiers.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// Validate checks the size class against the known set.
func (s SizeClass) Validate() error {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return nil
	}
	return fmt.Errorf("unknown wordlist size class %q", s)
}

// TierParams is the bundle of intensity parameters a tier expands to: the
// parallelism handed to the external tool, the delay between attempts, and the
// wordlist size class. The presets are empirically chosen defaults, not tuned
// constants; the custom tier overrides each field independently.
type TierParams struct {
	Threads      int           `yaml:"threads" json:"threads"`
	AttemptDelay time.Duration `yaml:"attempt_delay" json:"attempt_delay"`
	Wordlist     SizeClass     `yaml:"wordlist" json:"wordlist"`
}

var tierPresets = map[Tier]TierParams{
	TierQuick:         {Threads: 16, AttemptDelay: 0, Wordlist: SizeSmall},
	TierStandard:      {Threads: 8, AttemptDelay: 2 * time.Second, Wordlist: SizeMedium},
	TierComprehensive: {Threads: 12, AttemptDelay: time.Second, Wordlist: SizeLarge},
	TierStealth:       {Threads: 1, AttemptDelay: 30 * time.Second, Wordlist: SizeMedium},
}

// Params expands a preset tier into its parameter bundle. The custom tier has
// no preset; callers build its TierParams from explicit overrides on top of
// the standard preset.
func (t Tier) Params() (TierParams, error) {
	if t == TierCustom {
		return tierPresets[TierStandard], nil
	}
	p, ok := tierPresets[t]
	if !ok {
		return TierParams{}, fmt.Errorf("unknown tier %q", t)
	}
	return p, nil
}

// Timeout returns the bound applied to one probe invocation. Exhaustive
// credential sweeps get hours; query-level probes finish in minutes.
func (t Tier) Timeout(c Category) time.Duration {
	if c.Kind() == KindQuery {
		return 10 * time.Minute
	}
	switch t {
	case TierQuick:
		return 30 * time.Minute
	case TierStealth:
		return 4 * time.Hour
	case TierComprehensive:
		return 3 * time.Hour
	default:
		return time.Hour
	}
}
