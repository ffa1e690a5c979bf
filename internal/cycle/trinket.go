package cycle

import (
	"slices"

	"go.uber.org/zap"
)

// Modifiers are the stacked effects of owned trinkets.
type Modifiers struct {
	ExtraSpins     int   `yaml:"extra_spins,omitempty" mapstructure:"extra_spins"`
	BatchDiscount  int64 `yaml:"batch_discount,omitempty" mapstructure:"batch_discount"`
	PayoutBonusPct int64 `yaml:"payout_bonus_pct,omitempty" mapstructure:"payout_bonus_pct"`
}

// Add stacks o on top of m.
func (m Modifiers) Add(o Modifiers) Modifiers {
	return Modifiers{
		ExtraSpins:     m.ExtraSpins + o.ExtraSpins,
		BatchDiscount:  m.BatchDiscount + o.BatchDiscount,
		PayoutBonusPct: m.PayoutBonusPct + o.PayoutBonusPct,
	}
}

// ApplyTrinket spends cost tickets on trinket id and stacks its effect.
// Allowed between rounds, once per id, when tickets cover the cost and no
// effect is negative.
func (m *Machine) ApplyTrinket(id string, cost int64, effect Modifiers) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.canApplyTrinket(id, cost, effect) {
		return m.rejected("apply_trinket")
	}
	m.state.Tickets -= cost
	m.state.Trinkets = append(m.state.Trinkets, id)
	m.state.Modifiers = m.state.Modifiers.Add(effect)
	m.logger.Info("trinket bought", zap.String("trinket", id), zap.Int64("cost", cost))
	m.hooks.trinket(TrinketEvent{ID: id, Cost: cost})
	return true
}

func (m *Machine) canApplyTrinket(id string, cost int64, effect Modifiers) bool {
	return id != "" &&
		cost > 0 &&
		effect.ExtraSpins >= 0 &&
		effect.BatchDiscount >= 0 &&
		effect.PayoutBonusPct >= 0 &&
		m.state.Phase == m.restPhase() &&
		m.state.Tickets >= cost &&
		!slices.Contains(m.state.Trinkets, id)
}

// Owns reports whether trinket id was bought this session.
func (m *Machine) Owns(id string) bool {
	return locked(m, func() bool { return slices.Contains(m.state.Trinkets, id) })
}

// Trinkets lists owned trinket ids in purchase order.
func (m *Machine) Trinkets() []string {
	return locked(m, func() []string { return slices.Clone(m.state.Trinkets) })
}

func (m *Machine) Modifiers() Modifiers {
	return locked(m, func() Modifiers { return m.state.Modifiers })
}
