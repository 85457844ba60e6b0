// Package combo implements the speed-gated combo multiplier.
package combo

import "github.com/verte-zerg/typetycoon/internal/multiplier"

// MaxResetCounter is the number of consecutive correct keystrokes required
// after a break before a combo may activate again.
const MaxResetCounter = 20

// State is the observable combo state.
type State struct {
	Active       bool
	Multiplier   float64
	NoBreak      bool
	ResetCounter int
}

// Machine tracks combo activation. Inactive implies a multiplier of 1.
type Machine struct {
	state State
}

// New returns an inactive machine. initialReset is clamped to [0, MaxResetCounter];
// MaxResetCounter lets a combo activate on the first qualifying keystroke.
func New(initialReset int) *Machine {
	return &Machine{state: State{
		Multiplier:   1,
		ResetCounter: clamp(initialReset),
	}}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// Multiplier returns the multiplier to apply to the next keystroke.
func (m *Machine) Multiplier() float64 {
	if !m.state.Active {
		return 1
	}
	return m.state.Multiplier
}

// SetNoBreak toggles whether mistakes and backspaces break the combo.
func (m *Machine) SetNoBreak(noBreak bool) {
	m.state.NoBreak = noBreak
}

// OnCorrect advances the machine after a correct keystroke. tiers must be
// ordered by descending multiplier.
func (m *Machine) OnCorrect(tiers []multiplier.Tier, wpm int) {
	if m.state.ResetCounter < MaxResetCounter {
		m.state.ResetCounter++
	}
	if len(tiers) == 0 || m.state.ResetCounter < MaxResetCounter {
		m.deactivate()
		return
	}
	for _, tier := range tiers {
		if tier.SpeedThreshold <= float64(wpm) {
			m.state.Active = true
			m.state.Multiplier = tier.Multiplier
			return
		}
	}
	m.deactivate()
}

// OnBreak handles a mistake or backspace. It reports whether the combo was reset.
func (m *Machine) OnBreak() bool {
	if m.state.NoBreak {
		return false
	}
	m.deactivate()
	m.state.ResetCounter = 0
	return true
}

func (m *Machine) deactivate() {
	m.state.Active = false
	m.state.Multiplier = 1
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxResetCounter {
		return MaxResetCounter
	}
	return v
}
