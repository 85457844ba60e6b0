// Package session implements the per-keystroke typing engine.
//
// A Session is owned by a single goroutine. Every method runs to completion
// synchronously, so callers feed keystrokes and ticks from one event loop.
package session

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/typetycoon/internal/combo"
	"github.com/verte-zerg/typetycoon/internal/multiplier"
	"github.com/verte-zerg/typetycoon/internal/speed"
	"github.com/verte-zerg/typetycoon/internal/upgrade"
)

// KeyBackspace is the key name that undoes the last typed character.
const KeyBackspace = "Backspace"

var ignoredKeys = map[string]struct{}{
	"Shift":    {},
	"Control":  {},
	"Alt":      {},
	"Meta":     {},
	"CapsLock": {},
	"Tab":      {},
	"Escape":   {},
	"Enter":    {},
}

// Options configures a Session.
type Options struct {
	Mode        Mode
	TargetScore int
	Penalty     Penalty
	// InitialResetCounter seeds the combo gate; combo.MaxResetCounter allows an
	// immediate combo.
	InitialResetCounter int
	// Catalog defaults to upgrade.Default().
	Catalog *upgrade.Catalog
	// Now defaults to time.Now.
	Now func() time.Time
	// OnComplete is called once when the round ends.
	OnComplete func(Completion)
}

// Completion describes a finished round.
type Completion struct {
	FinalScore     int
	ElapsedSeconds int
	Correct        int
	Mistakes       int
	PeakWPM        int
	StartedAt      time.Time
	EndedAt        time.Time
}

// Outcome reports what a single key did.
type Outcome struct {
	Accepted  bool
	Correct   bool
	Mistake   bool
	Backspace bool
	// ComboBroken is set when a mistake or backspace reset the combo.
	ComboBroken bool
	// Points is the score delta caused by the key.
	Points    int
	Completed bool
}

// Snapshot is a read-only view for rendering.
type Snapshot struct {
	Position       int
	Length         int
	Typed          []rune
	Score          int
	TargetScore    int
	Mode           Mode
	Correct        int
	Mistakes       int
	Combo          combo.State
	WPM            int
	PeakWPM        int
	Multipliers    multiplier.Multipliers
	Active         bool
	Finished       bool
	StartedAt      time.Time
	ElapsedSeconds int
}

// Session is the typing state machine for one round.
type Session struct {
	opts    Options
	catalog *upgrade.Catalog
	now     func() time.Time

	text     []rune
	typed    []rune
	position int

	score    int
	correct  int
	mistakes int
	peakWPM  int

	active    bool
	finished  bool
	startedAt time.Time
	elapsed   int

	speed     speed.Estimator
	combo     *combo.Machine
	purchased upgrade.Set
	loadout   multiplier.Loadout
}

// New creates an inactive session over text.
func New(text string, opts Options) *Session {
	s := &Session{
		opts:      opts,
		catalog:   opts.Catalog,
		now:       opts.Now,
		text:      []rune(text),
		combo:     combo.New(opts.InitialResetCounter),
		purchased: upgrade.NewSet(),
		loadout:   multiplier.Neutral(),
	}
	if s.catalog == nil {
		s.catalog = upgrade.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.typed = make([]rune, len(s.text))
	return s
}

// Start activates the session. It is a no-op once started.
func (s *Session) Start() {
	if s.active || s.finished {
		return
	}
	s.active = true
	s.startedAt = s.now()
	switch s.opts.Mode {
	case ModeExhaust:
		if len(s.text) == 0 {
			s.complete()
		}
	case ModeTarget:
		if s.score >= s.opts.TargetScore {
			s.complete()
		}
	}
}

// HandleKey applies one key event. Keys received while inactive are ignored.
func (s *Session) HandleKey(key string) Outcome {
	if !s.active {
		return Outcome{}
	}
	if key == KeyBackspace {
		return s.backspace()
	}
	if _, ok := ignoredKeys[key]; ok {
		return Outcome{}
	}
	if utf8.RuneCountInString(key) != 1 {
		return Outcome{}
	}
	if s.position >= len(s.text) {
		return Outcome{}
	}

	r, _ := utf8.DecodeRuneInString(key)
	expected := s.text[s.position]
	s.typed[s.position] = r
	s.position++

	out := Outcome{Accepted: true}
	if r == expected {
		out.Correct = true
		out.Points = s.points(r)
		s.score += out.Points
		s.correct++
		s.speed.Record(s.now())
		wpm := s.speed.WPM()
		if wpm > s.peakWPM {
			s.peakWPM = wpm
		}
		s.combo.OnCorrect(s.loadout.Tiers, wpm)
		if s.opts.Mode == ModeTarget && s.score >= s.opts.TargetScore {
			s.complete()
			out.Completed = true
			return out
		}
	} else {
		out.Mistake = true
		s.mistakes++
		out.ComboBroken = s.combo.OnBreak()
		if s.opts.Penalty == PenaltyDeduct && s.score > 0 {
			s.score--
			out.Points = -1
		}
	}

	if s.opts.Mode == ModeExhaust && s.position == len(s.text) {
		s.complete()
		out.Completed = true
	}
	return out
}

func (s *Session) backspace() Outcome {
	if s.position == 0 {
		return Outcome{}
	}
	s.position--
	s.typed[s.position] = 0
	return Outcome{
		Accepted:    true,
		Backspace:   true,
		ComboBroken: s.combo.OnBreak(),
	}
}

func (s *Session) points(r rune) int {
	m := s.loadout.Multipliers
	return int(math.Round(m.Base * m.KeyMultiplier(r) * s.combo.Multiplier()))
}

// AdjustScore adds delta to the score, flooring at zero. The win condition is
// not evaluated.
func (s *Session) AdjustScore(delta int) {
	s.score += delta
	if s.score < 0 {
		s.score = 0
	}
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// ApplyPurchases replaces the purchased set and re-derives the loadout.
func (s *Session) ApplyPurchases(purchased upgrade.Set) {
	s.purchased = purchased.Clone()
	s.loadout = multiplier.Resolve(s.catalog, s.purchased)
	s.combo.SetNoBreak(s.loadout.NoBreak)
}

// Purchased returns a copy of the purchased set.
func (s *Session) Purchased() upgrade.Set {
	return s.purchased.Clone()
}

// Loadout returns the multipliers and tiers derived from the purchased set.
func (s *Session) Loadout() multiplier.Loadout {
	return s.loadout
}

// AppendText extends the text to type, for sources that supply text in chunks.
func (s *Session) AppendText(more string) {
	runes := []rune(more)
	s.text = append(s.text, runes...)
	s.typed = append(s.typed, make([]rune, len(runes))...)
}

// Remaining returns the number of characters left to type.
func (s *Session) Remaining() int {
	return len(s.text) - s.position
}

// Text returns a copy of the text.
func (s *Session) Text() []rune {
	out := make([]rune, len(s.text))
	copy(out, s.text)
	return out
}

// Tick refreshes the reported elapsed seconds. It does not affect scoring.
func (s *Session) Tick(now time.Time) int {
	if s.active {
		s.elapsed = elapsedSeconds(s.startedAt, now)
	}
	return s.elapsed
}

// Active reports whether the session accepts keys.
func (s *Session) Active() bool {
	return s.active
}

// Finished reports whether the round has ended.
func (s *Session) Finished() bool {
	return s.finished
}

// Snapshot returns the state needed for rendering.
func (s *Session) Snapshot() Snapshot {
	typed := make([]rune, len(s.typed))
	copy(typed, s.typed)
	return Snapshot{
		Position:       s.position,
		Length:         len(s.text),
		Typed:          typed,
		Score:          s.score,
		TargetScore:    s.opts.TargetScore,
		Mode:           s.opts.Mode,
		Correct:        s.correct,
		Mistakes:       s.mistakes,
		Combo:          s.combo.State(),
		WPM:            s.speed.WPM(),
		PeakWPM:        s.peakWPM,
		Multipliers:    s.loadout.Multipliers,
		Active:         s.active,
		Finished:       s.finished,
		StartedAt:      s.startedAt,
		ElapsedSeconds: s.elapsed,
	}
}

func (s *Session) complete() {
	endedAt := s.now()
	s.active = false
	s.finished = true
	s.elapsed = elapsedSeconds(s.startedAt, endedAt)
	if s.opts.OnComplete == nil {
		return
	}
	s.opts.OnComplete(Completion{
		FinalScore:     s.score,
		ElapsedSeconds: s.elapsed,
		Correct:        s.correct,
		Mistakes:       s.mistakes,
		PeakWPM:        s.peakWPM,
		StartedAt:      s.startedAt,
		EndedAt:        endedAt,
	})
}

func elapsedSeconds(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from) / time.Second)
}
