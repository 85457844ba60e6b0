// Package shop implements the upgrade purchase flow.
package shop

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/typetycoon/internal/upgrade"
)

// Purchase failures. A failed purchase leaves score and owned upgrades untouched.
var (
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrAlreadyOwned      = errors.New("upgrade already owned")
	ErrLocked            = errors.New("upgrade is locked")
	ErrInsufficientScore = errors.New("not enough score")
)

// Wallet is the part of a typing session the shop spends from.
type Wallet interface {
	Score() int
	AdjustScore(delta int)
	ApplyPurchases(purchased upgrade.Set)
}

// Status describes how an upgrade appears in the shop.
type Status int

// Shop statuses, in display priority order.
const (
	StatusLocked Status = iota
	StatusTooExpensive
	StatusAffordable
	StatusOwned
)

func (s Status) String() string {
	switch s {
	case StatusLocked:
		return "locked"
	case StatusTooExpensive:
		return "too expensive"
	case StatusAffordable:
		return "affordable"
	case StatusOwned:
		return "owned"
	default:
		return "unknown"
	}
}

// Item is a catalog entry annotated for display.
type Item struct {
	Upgrade       upgrade.Upgrade
	Status        Status
	Prerequisites []string
}

// Record is a completed purchase.
type Record struct {
	UpgradeID int
	Cost      int
	// ElapsedSeconds is measured from the start of the round.
	ElapsedSeconds int
}

// Shop owns the purchased set for one round.
type Shop struct {
	catalog   *upgrade.Catalog
	purchased upgrade.Set
	history   []Record
}

// New returns a shop with nothing purchased.
func New(catalog *upgrade.Catalog) *Shop {
	return &Shop{catalog: catalog, purchased: upgrade.NewSet()}
}

// Catalog returns the catalog the shop sells from.
func (s *Shop) Catalog() *upgrade.Catalog {
	return s.catalog
}

// Purchased returns a copy of the owned upgrades.
func (s *Shop) Purchased() upgrade.Set {
	return s.purchased.Clone()
}

// History returns completed purchases in order.
func (s *Shop) History() []Record {
	out := make([]Record, len(s.history))
	copy(out, s.history)
	return out
}

// Check reports why id cannot be bought with score, or nil.
func (s *Shop) Check(id, score int) error {
	u, ok := s.catalog.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownUpgrade, id)
	}
	if s.purchased.Has(id) {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, u.Name)
	}
	if !s.catalog.IsUnlocked(id, s.purchased) {
		return fmt.Errorf("%w: %s", ErrLocked, u.Name)
	}
	if score < u.Cost {
		return fmt.Errorf("%w: %s costs %d", ErrInsufficientScore, u.Name, u.Cost)
	}
	return nil
}

// Buy validates and applies a purchase against w.
func (s *Shop) Buy(w Wallet, id int, elapsed time.Duration) (upgrade.Upgrade, error) {
	if err := s.Check(id, w.Score()); err != nil {
		return upgrade.Upgrade{}, err
	}
	u, _ := s.catalog.Get(id)
	w.AdjustScore(-u.Cost)
	s.purchased.Add(id)
	w.ApplyPurchases(s.purchased)
	s.history = append(s.history, Record{
		UpgradeID:      id,
		Cost:           u.Cost,
		ElapsedSeconds: int(elapsed / time.Second),
	})
	return u, nil
}

// Items lists the catalog with each upgrade's status for score.
func (s *Shop) Items(score int) []Item {
	upgrades := s.catalog.Upgrades()
	items := make([]Item, 0, len(upgrades))
	for _, u := range upgrades {
		item := Item{Upgrade: u, Prerequisites: s.catalog.PrerequisiteNames(u)}
		switch {
		case s.purchased.Has(u.ID):
			item.Status = StatusOwned
		case !s.catalog.IsUnlocked(u.ID, s.purchased):
			item.Status = StatusLocked
		case score < u.Cost:
			item.Status = StatusTooExpensive
		default:
			item.Status = StatusAffordable
		}
		items = append(items, item)
	}
	return items
}
