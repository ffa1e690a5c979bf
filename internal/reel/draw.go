package reel

import "errors"

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// Draw reports whether a single uniform draw lands under p.
// p <= 0 never hits, p >= 1 always hits; neither consumes randomness.
func Draw(p float64, rng RandomSource) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}

// chance is Draw for scaled probabilities that may overshoot 1.
func chance(p float64, rng RandomSource) bool {
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	hit, err := Draw(p, rng)
	return err == nil && hit
}
