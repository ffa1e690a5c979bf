package cycle

import "time"

// Pacer receives each display phase of a spin with its presentation delay.
type Pacer interface {
	Pace(phase Phase, d time.Duration)
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(Phase, time.Duration)

func (f PacerFunc) Pace(p Phase, d time.Duration) { f(p, d) }

// NoPacing returns immediately.
type NoPacing struct{}

func (NoPacing) Pace(Phase, time.Duration) {}

// SleepPacer blocks for each delay.
type SleepPacer struct{}

func (SleepPacer) Pace(_ Phase, d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func timeScale(n int) time.Duration { return time.Duration(max(0, n)) }
