package reel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfig marks every construction-time configuration failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// problems collects violations and folds them into one ErrInvalidConfig.
type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p problems) err(scope string) error {
	if len(p) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, scope, strings.Join(p, "; "))
}
