package reel

// SpinResult is everything one spin produced.
type SpinResult struct {
	Grid    Grid
	Wins    []WinLine
	Payout  int64
	Tickets int
}

// Won reports whether the spin paid anything.
func (r SpinResult) Won() bool { return r.Payout > 0 }

// Resolver runs generate -> evaluate -> total for one spin.
type Resolver struct {
	gen  *Generator
	eval *Evaluator
}

func NewResolver(gen *Generator, eval *Evaluator) *Resolver {
	return &Resolver{gen: gen, eval: eval}
}

// Resolve is deterministic for a given source state.
func (s *Resolver) Resolve(rng RandomSource) SpinResult {
	g := s.gen.Generate(rng)
	wins := s.eval.Evaluate(g, rng)
	res := SpinResult{Grid: g, Wins: wins}
	for _, w := range wins {
		res.Payout += w.Payout
		res.Tickets += w.Tickets
	}
	return res
}

func (s *Resolver) Generator() *Generator { return s.gen }

func (s *Resolver) Evaluator() *Evaluator { return s.eval }
