package hierarchy

import (
	"errors"
	"fmt"
)

var ErrUnknownVariant = errors.New("unknown salesperson variant")

// Variant is the behavioral kind of a salesperson.
type Variant uint8

const (
	Aggressive Variant = iota + 1
	Indifferent
	SelfDeprecating
)

const (
	aggressiveRate      = 0.85
	indifferentBossRate = 0.65
	indifferentRate     = 0.45
	selfDeprecatingRate = 0.02

	// Aggressive reps ignore anything below this value.
	AggressiveLeadFloor = 1_000_000
)

var variantNames = map[string]Variant{
	"Aggressive":      Aggressive,
	"Indifferent":     Indifferent,
	"SelfDeprecating": SelfDeprecating,

	// class names of the legacy notation
	"Sociopath": Aggressive,
	"Clueless":  Indifferent,
	"Loser":     SelfDeprecating,
}

func ParseVariant(name string) (Variant, error) {
	v, ok := variantNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

func (v Variant) String() string {
	switch v {
	case Aggressive:
		return "Aggressive"
	case Indifferent:
		return "Indifferent"
	case SelfDeprecating:
		return "SelfDeprecating"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
