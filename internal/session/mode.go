package session

import (
	"fmt"
	"strings"
)

// Mode selects how a round ends.
type Mode int

const (
	// ModeTarget ends the round once the score reaches the target.
	ModeTarget Mode = iota
	// ModeExhaust ends the round once every character of the text is typed.
	ModeExhaust
)

func (m Mode) String() string {
	switch m {
	case ModeTarget:
		return "target"
	case ModeExhaust:
		return "exhaust"
	default:
		return "unknown"
	}
}

// ParseMode parses "target" or "exhaust".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "target":
		return ModeTarget, nil
	case "exhaust":
		return ModeExhaust, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want target or exhaust)", s)
}

// Penalty selects what a mistake costs.
type Penalty int

const (
	// PenaltyNone only breaks the combo.
	PenaltyNone Penalty = iota
	// PenaltyDeduct also removes one point, never going below zero.
	PenaltyDeduct
)

func (p Penalty) String() string {
	switch p {
	case PenaltyNone:
		return "none"
	case PenaltyDeduct:
		return "deduct"
	default:
		return "unknown"
	}
}

// ParsePenalty parses "none" or "deduct".
func ParsePenalty(s string) (Penalty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return PenaltyNone, nil
	case "deduct":
		return PenaltyDeduct, nil
	}
	return 0, fmt.Errorf("unknown mistake penalty %q (want none or deduct)", s)
}
