package shop

import "sort"

// Plan is a set of trinkets chosen for a ticket budget.
type Plan struct {
	Trinkets []Trinket
	Cost     int64
	Score    int
}

// BestLoadout picks unowned trinkets maximising total rarity score within
// budget tickets. Each trinket is bought at most once (0/1 knapsack over the
// budget). Ties prefer the cheaper plan.
func BestLoadout(cat *Catalog, budget int64, owned map[string]bool) Plan {
	if cat == nil || budget <= 0 {
		return Plan{}
	}
	var items []Trinket
	var total int64
	for _, t := range cat.trinkets {
		if !owned[t.ID] && t.Cost <= budget {
			items = append(items, t)
			total += t.Cost
		}
	}
	if len(items) == 0 {
		return Plan{}
	}

	b := int(min(budget, total))
	// dp[i][c] = best score from the first i items within cost c
	dp := make([][]int, len(items)+1)
	for i := range dp {
		dp[i] = make([]int, b+1)
	}
	for i, t := range items {
		cost := int(t.Cost)
		score := t.Rarity.Score()
		for c := 0; c <= b; c++ {
			dp[i+1][c] = dp[i][c]
			if cost <= c && dp[i][c-cost]+score > dp[i+1][c] {
				dp[i+1][c] = dp[i][c-cost] + score
			}
		}
	}

	// cheapest budget reaching the best score
	best := dp[len(items)][b]
	c := b
	for c > 0 && dp[len(items)][c-1] == best {
		c--
	}

	var plan Plan
	for i := len(items); i > 0 && c > 0; i-- {
		if dp[i][c] == dp[i-1][c] {
			continue
		}
		t := items[i-1]
		plan.Trinkets = append(plan.Trinkets, t)
		plan.Cost += t.Cost
		plan.Score += t.Rarity.Score()
		c -= int(t.Cost)
	}
	sort.Slice(plan.Trinkets, func(i, j int) bool { return plan.Trinkets[i].Cost < plan.Trinkets[j].Cost })
	return plan
}
