package hierarchy

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidLead = errors.New("invalid lead")

// Lead is a prospective deal. It is immutable once built.
type Lead struct {
	name  string
	value float64
}

func NewLead(name string, value float64) (Lead, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return Lead{}, fmt.Errorf("%w: value %v must be a finite non-negative amount", ErrInvalidLead, value)
	}
	return Lead{name: name, value: value}, nil
}

func (l Lead) Name() string {
	return l.name
}

func (l Lead) Value() float64 {
	return l.value
}
