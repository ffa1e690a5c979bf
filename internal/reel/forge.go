package reel

// Built-in forge symbol set, paylines and payout table.

const (
	Slag  SymbolID = "slag"
	Coal  SymbolID = "coal"
	Ember SymbolID = "ember"
	Ingot SymbolID = "ingot"
	Rune  SymbolID = "rune"
	Crown SymbolID = "crown"
	Wild  SymbolID = "wild"
)

// ForgeKinds lists the default symbols, most common first.
func ForgeKinds() []Kind {
	return []Kind{
		{ID: Slag, Name: "Slag", Asset: "🪨", Weight: 1.4, BaseValue: 3, StackChance: 0.5},
		{ID: Coal, Name: "Coal", Asset: "⚫", Weight: 1.3, BaseValue: 5, StackChance: 0.45},
		{ID: Ember, Name: "Ember", Asset: "🟠", Weight: 1.0, BaseValue: 10, StackChance: 0.35},
		{ID: Ingot, Name: "Ingot", Asset: "🟨", Weight: 0.9, BaseValue: 15, StackChance: 0.3},
		{ID: Rune, Name: "Rune", Asset: "🔷", Weight: 0.6, BaseValue: 30, TicketChance: 0.2, StackChance: 0.25},
		{ID: Crown, Name: "Molten Crown", Asset: "👑", Weight: 0.3, BaseValue: 75, TicketChance: 0.5, StackChance: 0.2},
		{ID: Wild, Name: "Forge Fire", Asset: "🔥", Weight: 0.15, BaseValue: 100, StackChance: 0.4, Wild: true},
	}
}

// ForgeMultipliers is the default match-count table.
func ForgeMultipliers() map[int]int64 {
	return map[int]int64{3: 1, 4: 3, 5: 10}
}

// ForgePaylines are the nine lines of the 3x5 board.
func ForgePaylines() []Payline {
	return RowPaylines(
		[]string{"Middle", "Top", "Bottom", "Valley", "Peak", "Sawtooth Up", "Sawtooth Down", "Upper Dip", "Lower Rise"},
		[][]int{
			{1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0},
			{2, 2, 2, 2, 2},
			{0, 1, 2, 1, 0},
			{2, 1, 0, 1, 2},
			{1, 0, 1, 0, 1},
			{1, 2, 1, 2, 1},
			{0, 0, 1, 0, 0},
			{2, 2, 1, 2, 2},
		},
	)
}

// ForgeInitialPattern is the resting board shown before the first spin.
func ForgeInitialPattern() [][]SymbolID {
	return [][]SymbolID{
		{Coal, Ember, Ingot, Ember, Coal},
		{Slag, Rune, Crown, Rune, Slag},
		{Coal, Ember, Ingot, Ember, Coal},
	}
}

// PatternGrid tiles pattern over rows x cols. With an empty pattern the
// catalog kinds are cycled diagonally.
func PatternGrid(cat *Catalog, rows, cols int, pattern [][]SymbolID) Grid {
	return NewGrid(rows, cols, func(r, c int) SymbolID {
		if len(pattern) > 0 {
			row := pattern[r%len(pattern)]
			if len(row) > 0 {
				return row[c%len(row)]
			}
		}
		return cat.kinds[(r+c)%len(cat.kinds)].ID
	})
}
