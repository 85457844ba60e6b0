// Package multiplier derives scoring multipliers and combo tiers from purchased upgrades.
package multiplier

import (
	"sort"

	"github.com/verte-zerg/typetycoon/internal/upgrade"
)

// Multipliers are the per-keystroke scalars.
type Multipliers struct {
	Base      float64
	Vowel     float64
	Consonant float64
}

// Tier is an unlocked combo level.
type Tier struct {
	SpeedThreshold float64
	Multiplier     float64
}

// Loadout is everything scoring needs from the purchased set.
type Loadout struct {
	Multipliers Multipliers
	// Tiers are sorted by descending multiplier, then ascending threshold.
	Tiers   []Tier
	NoBreak bool
}

// Neutral returns the loadout of an empty purchased set.
func Neutral() Loadout {
	return Loadout{Multipliers: Multipliers{Base: 1, Vowel: 1, Consonant: 1}}
}

// Resolve recomputes the loadout from scratch.
//
// Upgrades are applied in catalog order, so scalar effects are overwritten by
// later catalog entries regardless of the order in which they were bought.
// Unknown ids in purchased are ignored.
func Resolve(catalog *upgrade.Catalog, purchased upgrade.Set) Loadout {
	l := Neutral()
	for _, u := range catalog.Upgrades() {
		if !purchased.Has(u.ID) {
			continue
		}
		apply(&l, u.Effect)
	}
	sort.SliceStable(l.Tiers, func(i, j int) bool {
		if l.Tiers[i].Multiplier == l.Tiers[j].Multiplier {
			return l.Tiers[i].SpeedThreshold < l.Tiers[j].SpeedThreshold
		}
		return l.Tiers[i].Multiplier > l.Tiers[j].Multiplier
	})
	return l
}

func apply(l *Loadout, e upgrade.Effect) {
	switch e.Kind {
	case upgrade.VowelMultiplier:
		l.Multipliers.Vowel = e.Value
	case upgrade.ConsonantMultiplier:
		l.Multipliers.Consonant = e.Value
	case upgrade.BaseScore:
		l.Multipliers.Base = e.Value
	case upgrade.ComboUnlock, upgrade.ComboThreshold:
		l.Tiers = append(l.Tiers, Tier{SpeedThreshold: e.Value, Multiplier: e.TierMultiplier})
	case upgrade.ComboNoBreak:
		l.NoBreak = true
	}
}

// KeyMultiplier returns the vowel or consonant multiplier for r, or 1 for any
// other rune. Only ASCII letters are classified.
func (m Multipliers) KeyMultiplier(r rune) float64 {
	switch {
	case isVowel(r):
		return m.Vowel
	case isLetter(r):
		return m.Consonant
	default:
		return 1
	}
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
