package reel

import "sort"

// MultiplierTable maps a match count to a payout multiplier.
type MultiplierTable struct {
	keys   []int // ascending
	values map[int]int64
}

// NewMultiplierTable requires at least one entry; counts must be >= 3 and
// multipliers >= 0.
func NewMultiplierTable(m map[int]int64) (MultiplierTable, error) {
	var errs problems
	if len(m) == 0 {
		errs.addf("multiplier table must not be empty")
	}
	t := MultiplierTable{values: make(map[int]int64, len(m))}
	for count, mult := range m {
		if count < 3 {
			errs.addf("multiplier count %d must be >= 3", count)
		}
		if mult < 0 {
			errs.addf("multiplier for count %d must be >= 0", count)
		}
		t.keys = append(t.keys, count)
		t.values[count] = mult
	}
	if err := errs.err("multipliers"); err != nil {
		return MultiplierTable{}, err
	}
	sort.Ints(t.keys)
	return t, nil
}

// For returns the multiplier of the largest configured count <= count, so
// counts above the table reuse its highest entry. Below the smallest key it
// is 0.
func (t MultiplierTable) For(count int) int64 {
	var out int64
	for _, k := range t.keys {
		if k > count {
			break
		}
		out = t.values[k]
	}
	return out
}

// Map returns a copy of the table.
func (t MultiplierTable) Map() map[int]int64 {
	out := make(map[int]int64, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}
