package reel

import "math"

// SymbolID names a symbol kind inside a Catalog.
type SymbolID string

// Kind is one entry of the symbol catalog.
type Kind struct {
	ID           SymbolID
	Name         string
	Asset        string  // presentation key, e.g. a glyph
	Weight       float64 // relative selection weight, > 0
	BaseValue    int64   // coins for a 3-match before multipliers
	TicketChance float64 // 0..1, base chance of a ticket on a win
	StackChance  float64 // 0..1, propensity to stack in a column
	Wild         bool
}

// Catalog is an immutable weighted registry of symbol kinds.
type Catalog struct {
	kinds []Kind
	index map[SymbolID]int
	total float64
}

// NewCatalog validates kinds and builds a catalog. Order is preserved and
// drives weighted selection.
func NewCatalog(kinds ...Kind) (*Catalog, error) {
	var errs problems
	if len(kinds) == 0 {
		errs.addf("catalog must contain at least one symbol")
	}
	c := &Catalog{
		kinds: make([]Kind, 0, len(kinds)),
		index: make(map[SymbolID]int, len(kinds)),
	}
	for i, k := range kinds {
		switch {
		case k.ID == "":
			errs.addf("symbols[%d].id must not be empty", i)
		case c.has(k.ID):
			errs.addf("symbols[%d].id %q is duplicated", i, k.ID)
		}
		if math.IsNaN(k.Weight) || math.IsInf(k.Weight, 0) || k.Weight <= 0 {
			errs.addf("symbols[%d].weight must be > 0", i)
		}
		if k.BaseValue < 0 {
			errs.addf("symbols[%d].base_value must be >= 0", i)
		}
		if validateProb(k.TicketChance) != nil {
			errs.addf("symbols[%d].ticket_chance must be in [0,1]", i)
		}
		if validateProb(k.StackChance) != nil {
			errs.addf("symbols[%d].stack_chance must be in [0,1]", i)
		}
		if _, dup := c.index[k.ID]; !dup {
			c.index[k.ID] = len(c.kinds)
		}
		c.kinds = append(c.kinds, k)
		c.total += k.Weight
	}
	if err := errs.err("symbols"); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) has(id SymbolID) bool {
	_, ok := c.index[id]
	return ok
}

// Kinds returns a copy of the catalog entries in declaration order.
func (c *Catalog) Kinds() []Kind { return append([]Kind(nil), c.kinds...) }

func (c *Catalog) Len() int { return len(c.kinds) }

// Lookup returns the kind registered under id.
func (c *Catalog) Lookup(id SymbolID) (Kind, bool) {
	i, ok := c.index[id]
	if !ok {
		return Kind{}, false
	}
	return c.kinds[i], true
}

func (c *Catalog) Weight(id SymbolID) float64 {
	k, _ := c.Lookup(id)
	return k.Weight
}

func (c *Catalog) BaseValue(id SymbolID) int64 {
	k, _ := c.Lookup(id)
	return k.BaseValue
}

func (c *Catalog) TicketChance(id SymbolID) float64 {
	k, _ := c.Lookup(id)
	return k.TicketChance
}

func (c *Catalog) StackPropensity(id SymbolID) float64 {
	k, _ := c.Lookup(id)
	return k.StackChance
}

func (c *Catalog) IsWild(id SymbolID) bool {
	k, _ := c.Lookup(id)
	return k.Wild
}

func (c *Catalog) TotalWeight() float64 { return c.total }

// PickWeighted draws one kind with probability proportional to its weight.
// Floating-point leftovers fall through to the last kind.
func (c *Catalog) PickWeighted(rng RandomSource) SymbolID {
	if rng == nil {
		rng = DefaultRNG()
	}
	r := rng.Float64() * c.total
	for _, k := range c.kinds {
		r -= k.Weight
		if r <= 0 {
			return k.ID
		}
	}
	return c.kinds[len(c.kinds)-1].ID
}

// matches is the wild-aware equality used by payline scans.
func (c *Catalog) matches(a, b SymbolID) bool {
	return a == b || c.IsWild(a) || c.IsWild(b)
}
