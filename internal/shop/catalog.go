package shop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xtding233/forgewheel/internal/cycle"
)

var ErrInvalidCatalog = errors.New("invalid trinket catalog")

// Rarity grades a trinket.
type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Legendary Rarity = "legendary"
)

// Score ranks rarities for loadout planning.
func (r Rarity) Score() int {
	switch r {
	case Common:
		return 1
	case Uncommon:
		return 2
	case Rare:
		return 3
	case Legendary:
		return 5
	}
	return 0
}

// Trinket is a permanent upgrade bought with tickets.
type Trinket struct {
	ID          string
	Name        string
	Description string
	Rarity      Rarity
	Cost        int64 // tickets
	Effect      cycle.Modifiers
}

// Catalog is the set of trinkets on offer.
type Catalog struct {
	trinkets []Trinket
	index    map[string]int
}

func NewCatalog(ts ...Trinket) (*Catalog, error) {
	var errs []string
	c := &Catalog{index: make(map[string]int, len(ts))}
	for i, t := range ts {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("trinkets[%d].id must not be empty", i))
		} else if _, dup := c.index[t.ID]; dup {
			errs = append(errs, fmt.Sprintf("trinkets[%d].id %q is duplicated", i, t.ID))
		}
		if t.Rarity.Score() == 0 {
			errs = append(errs, fmt.Sprintf("trinkets[%d].rarity %q is unknown", i, t.Rarity))
		}
		if t.Cost <= 0 {
			errs = append(errs, fmt.Sprintf("trinkets[%d].cost must be > 0", i))
		}
		if t.Effect.ExtraSpins < 0 || t.Effect.BatchDiscount < 0 || t.Effect.PayoutBonusPct < 0 {
			errs = append(errs, fmt.Sprintf("trinkets[%d] effects must be >= 0", i))
		}
		if _, dup := c.index[t.ID]; !dup {
			c.index[t.ID] = len(c.trinkets)
		}
		c.trinkets = append(c.trinkets, t)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}
	return c, nil
}

// DefaultTrinkets is the built-in forge shop.
func DefaultTrinkets() []Trinket {
	return []Trinket{
		{
			ID:          "tongs",
			Name:        "Tempered Tongs",
			Description: "Batches cost 3 coins less.",
			Rarity:      Common,
			Cost:        2,
			Effect:      cycle.Modifiers{BatchDiscount: 3},
		},
		{
			ID:          "bellows",
			Name:        "Great Bellows",
			Description: "One extra spin per batch.",
			Rarity:      Uncommon,
			Cost:        4,
			Effect:      cycle.Modifiers{ExtraSpins: 1},
		},
		{
			ID:          "anvil",
			Name:        "Singing Anvil",
			Description: "Spin payouts +10%.",
			Rarity:      Rare,
			Cost:        6,
			Effect:      cycle.Modifiers{PayoutBonusPct: 10},
		},
		{
			ID:          "crucible",
			Name:        "Star Crucible",
			Description: "Two extra spins and payouts +15%.",
			Rarity:      Legendary,
			Cost:        10,
			Effect:      cycle.Modifiers{ExtraSpins: 2, PayoutBonusPct: 15},
		},
	}
}

func (c *Catalog) Get(id string) (Trinket, bool) {
	i, ok := c.index[id]
	if !ok {
		return Trinket{}, false
	}
	return c.trinkets[i], true
}

// List returns the trinkets in catalog order.
func (c *Catalog) List() []Trinket { return append([]Trinket(nil), c.trinkets...) }

func (c *Catalog) Len() int { return len(c.trinkets) }

// Buy applies trinket id to m. Unknown ids and guard failures return false.
func (c *Catalog) Buy(m *cycle.Machine, id string) bool {
	t, ok := c.Get(id)
	if !ok {
		return false
	}
	return m.ApplyTrinket(t.ID, t.Cost, t.Effect)
}
