package cycle

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	HeatSafe = 20
	HeatMax  = 100
)

var maxDebt = decimal.NewFromInt(math.MaxInt64)

// DebtFor returns floor(base * mult^(cycle-1)). Cycles below 1 count as 1.
// Decimal arithmetic keeps the floor exact for values like 1.3^n.
func DebtFor(base int64, mult float64, cycle int) int64 {
	if cycle < 1 {
		cycle = 1
	}
	d := decimal.NewFromInt(base).Mul(decimal.NewFromFloat(mult).Pow(decimal.NewFromInt(int64(cycle - 1))))
	if d.GreaterThan(maxDebt) {
		return math.MaxInt64
	}
	return d.Floor().IntPart()
}

// HeatFor maps how far coins fall short of the remaining debt, weighted by
// how much of the batch is spent, onto [HeatSafe, HeatMax].
func HeatFor(coins, debtRemaining int64, spinsRemaining, batchSize int) int {
	progress := 1.0
	if debtRemaining > 0 {
		progress = float64(coins) / float64(debtRemaining)
	}
	if progress >= 1 {
		return HeatSafe
	}
	urgency := 1.0
	if batchSize > 0 {
		urgency = 1 - float64(spinsRemaining)/float64(batchSize)
	}
	urgency = math.Max(0, math.Min(1, urgency))
	h := int(math.Floor(HeatSafe + (1-progress)*urgency*(HeatMax-HeatSafe)))
	return min(HeatMax, h)
}

// TributeBonus scales payout by 1 + paid/debt, floored.
// paid never exceeds debt because payments are capped at the remaining debt.
func TributeBonus(payout, paid, debt int64) int64 {
	if payout <= 0 || paid <= 0 || debt <= 0 {
		return payout
	}
	return payout * (debt + paid) / debt
}

// percentBonus adds pct percent to payout, floored.
func percentBonus(payout, pct int64) int64 {
	if payout <= 0 || pct <= 0 {
		return payout
	}
	return payout * (100 + pct) / 100
}
