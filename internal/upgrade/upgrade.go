// Package upgrade defines the purchasable upgrade catalog.
package upgrade

import (
	"fmt"
	"sort"
	"strings"
)

// EffectKind enumerates what an upgrade changes once purchased.
type EffectKind int

// Effect kinds. The zero value is invalid.
const (
	VowelMultiplier EffectKind = iota + 1
	ConsonantMultiplier
	BaseScore
	ComboUnlock
	ComboThreshold
	ComboNoBreak
)

var effectNames = map[EffectKind]string{
	VowelMultiplier:     "vowel_multiplier",
	ConsonantMultiplier: "consonant_multiplier",
	BaseScore:           "base_score",
	ComboUnlock:         "combo_unlock",
	ComboThreshold:      "combo_threshold",
	ComboNoBreak:        "combo_no_break",
}

func (k EffectKind) String() string {
	if name, ok := effectNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsComboTier reports whether the effect adds a combo tier.
func (k EffectKind) IsComboTier() bool {
	return k == ComboUnlock || k == ComboThreshold
}

// ParseEffectKind converts a catalog name such as "base_score" into an EffectKind.
func ParseEffectKind(name string) (EffectKind, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for kind, n := range effectNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown effect kind %q", name)
}

// Effect is the tagged payload of an upgrade.
//
// For combo tiers Value is the words-per-minute threshold and TierMultiplier
// the score multiplier granted while the tier is active.
type Effect struct {
	Kind           EffectKind
	Value          float64
	TierMultiplier float64
}

// Upgrade is an immutable catalog entry.
type Upgrade struct {
	ID              int
	Name            string
	Description     string
	Cost            int
	Effect          Effect
	PrerequisiteIDs []int
}

// Set holds purchased upgrade ids.
type Set map[int]struct{}

// NewSet builds a set from ids.
func NewSet(ids ...int) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s Set) Add(id int) {
	s[id] = struct{}{}
}

// IDs returns the members in ascending order.
func (s Set) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Catalog is an ordered, read-only list of upgrades.
type Catalog struct {
	upgrades []Upgrade
	index    map[int]int
}

// NewCatalog builds a catalog and validates its invariants.
func NewCatalog(upgrades []Upgrade) (*Catalog, error) {
	c := &Catalog{
		upgrades: make([]Upgrade, len(upgrades)),
		index:    make(map[int]int, len(upgrades)),
	}
	copy(c.upgrades, upgrades)
	for i, u := range c.upgrades {
		if _, dup := c.index[u.ID]; dup {
			return nil, fmt.Errorf("duplicate upgrade id %d", u.ID)
		}
		c.index[u.ID] = i
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Upgrades returns the catalog entries in catalog order.
func (c *Catalog) Upgrades() []Upgrade {
	out := make([]Upgrade, len(c.upgrades))
	copy(out, c.upgrades)
	return out
}

// Len returns the number of upgrades.
func (c *Catalog) Len() int {
	return len(c.upgrades)
}

// Get looks up an upgrade by id.
func (c *Catalog) Get(id int) (Upgrade, bool) {
	i, ok := c.index[id]
	if !ok {
		return Upgrade{}, false
	}
	return c.upgrades[i], true
}

// IsUnlocked reports whether every prerequisite of id has been purchased.
// Unknown ids are never unlocked.
func (c *Catalog) IsUnlocked(id int, purchased Set) bool {
	u, ok := c.Get(id)
	if !ok {
		return false
	}
	for _, req := range u.PrerequisiteIDs {
		if !purchased.Has(req) {
			return false
		}
	}
	return true
}

// PrerequisiteNames resolves prerequisite ids to display names, skipping unknown ids.
func (c *Catalog) PrerequisiteNames(u Upgrade) []string {
	names := make([]string, 0, len(u.PrerequisiteIDs))
	for _, id := range u.PrerequisiteIDs {
		if req, ok := c.Get(id); ok {
			names = append(names, req.Name)
		}
	}
	return names
}

// Available returns the upgrades not yet purchased whose prerequisites are met.
func (c *Catalog) Available(purchased Set) []Upgrade {
	var out []Upgrade
	for _, u := range c.upgrades {
		if purchased.Has(u.ID) {
			continue
		}
		if c.IsUnlocked(u.ID, purchased) {
			out = append(out, u)
		}
	}
	return out
}

func (c *Catalog) validate() error {
	for _, u := range c.upgrades {
		if u.Cost < 0 {
			return fmt.Errorf("upgrade %d: negative cost %d", u.ID, u.Cost)
		}
		if _, ok := effectNames[u.Effect.Kind]; !ok {
			return fmt.Errorf("upgrade %d: unknown effect kind", u.ID)
		}
		if u.Effect.Kind.IsComboTier() && u.Effect.TierMultiplier < 1 {
			return fmt.Errorf("upgrade %d: invalid combo multiplier %v", u.ID, u.Effect.TierMultiplier)
		}
		for _, req := range u.PrerequisiteIDs {
			if _, ok := c.index[req]; !ok {
				return fmt.Errorf("upgrade %d: unknown prerequisite %d", u.ID, req)
			}
		}
	}
	return c.checkCycles()
}

func (c *Catalog) checkCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[int]int, len(c.upgrades))
	var visit func(id int) error
	visit = func(id int) error {
		switch state[id] {
		case visiting:
			return fmt.Errorf("upgrade %d: prerequisite cycle", id)
		case done:
			return nil
		}
		state[id] = visiting
		u, _ := c.Get(id)
		for _, req := range u.PrerequisiteIDs {
			if err := visit(req); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}
	for _, u := range c.upgrades {
		if err := visit(u.ID); err != nil {
			return err
		}
	}
	return nil
}
