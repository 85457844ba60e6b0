// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/typetycoon/internal/generator"
	"github.com/verte-zerg/typetycoon/internal/model"
	"github.com/verte-zerg/typetycoon/internal/session"
	"github.com/verte-zerg/typetycoon/internal/shop"
	"github.com/verte-zerg/typetycoon/internal/stats"
	"github.com/verte-zerg/typetycoon/internal/store"
	"github.com/verte-zerg/typetycoon/internal/upgrade"
)

const (
	mistakeFlashDuration = 300 * time.Millisecond
	keyFlashDuration     = 100 * time.Millisecond
	goDuration           = 500 * time.Millisecond

	// appendThreshold is how many untyped characters may remain in target
	// mode before another chunk of text is requested.
	appendThreshold = 120
)

type phase int

const (
	phaseCountdown phase = iota
	phasePlaying
	phaseResults
)

// Messages carry the round they were scheduled in; anything from an older
// round is dropped.
type (
	countdownMsg struct{ round int }
	goMsg        struct{ round int }
	tickMsg      struct {
		round int
		at    time.Time
	}
	mistakeDoneMsg struct{ round, id int }
	keyDoneMsg     struct{ round, id int }
)

// Options configures a Model.
type Options struct {
	Config  model.Config
	Catalog *upgrade.Catalog
	Source  generator.Source
	// Store is nil when run history is disabled.
	Store *store.Store
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model implements the Bubble Tea game UI.
type Model struct {
	cfg     model.Config
	mode    session.Mode
	penalty session.Penalty
	catalog *upgrade.Catalog
	source  generator.Source
	store   *store.Store
	now     func() time.Time

	width  int
	height int

	round     int
	phase     phase
	countdown int
	showGo    bool

	sess   *session.Session
	shop   *shop.Shop
	result *stats.Results

	shopOpen  bool
	shopTable table.Model
	shopItems []shop.Item
	shopNote  string

	bar progress.Model

	mistakeID  int
	mistakeLit bool
	keyID      int
	keyLit     bool
	lastKey    string
}

// NewModel constructs the game model and prepares the first round.
func NewModel(opts Options) (*Model, error) {
	mode, err := session.ParseMode(opts.Config.Mode)
	if err != nil {
		return nil, err
	}
	penalty, err := session.ParsePenalty(opts.Config.MistakePenalty)
	if err != nil {
		return nil, err
	}
	if opts.Source == nil {
		return nil, fmt.Errorf("text source is required")
	}
	m := &Model{
		cfg:     opts.Config,
		mode:    mode,
		penalty: penalty,
		catalog: opts.Catalog,
		source:  opts.Source,
		store:   opts.Store,
		now:     opts.Now,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	if m.catalog == nil {
		m.catalog = upgrade.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.shopTable = newShopTable()
	m.resetRound()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.roundCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, msg.Width/2)
		return m, nil
	case countdownMsg:
		return m, m.handleCountdown(msg)
	case goMsg:
		if msg.round != m.round || m.phase != phaseCountdown {
			return m, nil
		}
		m.showGo = false
		return m, m.begin()
	case tickMsg:
		if msg.round != m.round || m.phase != phasePlaying {
			return m, nil
		}
		m.sess.Tick(msg.at)
		return m, m.tickCmd()
	case mistakeDoneMsg:
		if msg.round == m.round && msg.id == m.mistakeID {
			m.mistakeLit = false
		}
		return m, nil
	case keyDoneMsg:
		if msg.round == m.round && msg.id == m.keyID {
			m.keyLit = false
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyCtrlR:
		m.resetRound()
		return m.roundCmd()
	}

	switch m.phase {
	case phaseResults:
		if msg.Type == tea.KeyEnter {
			m.resetRound()
			return m.roundCmd()
		}
		return nil
	case phaseCountdown:
		return nil
	}

	if m.shopOpen {
		return m.handleShopKey(msg)
	}
	if msg.Type == tea.KeyTab {
		m.openShop()
		return nil
	}
	var cmds []tea.Cmd
	for _, key := range sessionKeys(msg) {
		cmds = append(cmds, m.typeKey(key))
		if m.phase != phasePlaying {
			break
		}
	}
	return tea.Batch(cmds...)
}

// sessionKeys maps a key event to the key names the session understands.
func sessionKeys(msg tea.KeyMsg) []string {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		keys := make([]string, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, string(r))
		}
		return keys
	case tea.KeySpace:
		return []string{" "}
	case tea.KeyBackspace, tea.KeyDelete:
		return []string{session.KeyBackspace}
	}
	return nil
}

func (m *Model) typeKey(key string) tea.Cmd {
	out := m.sess.HandleKey(key)
	if !out.Accepted {
		return nil
	}
	var cmds []tea.Cmd
	if !out.Backspace {
		cmds = append(cmds, m.lightKey(key))
	}
	if out.Mistake {
		cmds = append(cmds, m.flashMistake())
	}
	if m.phase == phasePlaying {
		m.topUpText()
	}
	return tea.Batch(cmds...)
}

func (m *Model) topUpText() {
	if m.mode != session.ModeTarget || m.sess.Remaining() >= appendThreshold {
		return
	}
	more := m.source.Next()
	if more == "" {
		return
	}
	if len(m.sess.Text()) > 0 {
		more = " " + more
	}
	m.sess.AppendText(more)
}

func (m *Model) lightKey(key string) tea.Cmd {
	m.keyID++
	m.keyLit = true
	m.lastKey = key
	round, id := m.round, m.keyID
	return tea.Tick(keyFlashDuration, func(time.Time) tea.Msg {
		return keyDoneMsg{round: round, id: id}
	})
}

func (m *Model) flashMistake() tea.Cmd {
	m.mistakeID++
	m.mistakeLit = true
	round, id := m.round, m.mistakeID
	return tea.Tick(mistakeFlashDuration, func(time.Time) tea.Msg {
		return mistakeDoneMsg{round: round, id: id}
	})
}

func (m *Model) handleCountdown(msg countdownMsg) tea.Cmd {
	if msg.round != m.round || m.phase != phaseCountdown || m.showGo {
		return nil
	}
	m.countdown--
	if m.countdown > 0 {
		return m.countdownCmd()
	}
	m.showGo = true
	round := m.round
	return tea.Tick(goDuration, func(time.Time) tea.Msg {
		return goMsg{round: round}
	})
}

// resetRound discards the current round and prepares a fresh one. Nothing
// from the previous session carries over.
func (m *Model) resetRound() {
	m.round++
	m.result = nil
	m.shopOpen = false
	m.shopNote = ""
	m.mistakeLit = false
	m.keyLit = false
	m.lastKey = ""
	m.showGo = false
	m.shop = shop.New(m.catalog)
	m.sess = session.New(m.source.Next(), session.Options{
		Mode:                m.mode,
		TargetScore:         m.cfg.TargetScore,
		Penalty:             m.penalty,
		InitialResetCounter: m.cfg.InitialResetCounter,
		Catalog:             m.catalog,
		Now:                 m.now,
		OnComplete:          m.finish,
	})
	m.topUpText()
	if m.cfg.Countdown > 0 {
		m.phase = phaseCountdown
		m.countdown = m.cfg.Countdown
		return
	}
	m.phase = phasePlaying
	m.sess.Start()
}

// roundCmd schedules whatever the freshly reset round waits on.
func (m *Model) roundCmd() tea.Cmd {
	switch m.phase {
	case phaseCountdown:
		return m.countdownCmd()
	case phasePlaying:
		return m.tickCmd()
	}
	return nil
}

func (m *Model) begin() tea.Cmd {
	m.phase = phasePlaying
	m.sess.Start()
	if m.phase != phasePlaying {
		return nil
	}
	return m.tickCmd()
}

func (m *Model) countdownCmd() tea.Cmd {
	round := m.round
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{round: round}
	})
}

func (m *Model) tickCmd() tea.Cmd {
	round := m.round
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{round: round, at: t}
	})
}

func (m *Model) finish(c session.Completion) {
	m.phase = phaseResults
	m.shopOpen = false
	res := stats.ComputeResults(c.FinalScore, c.ElapsedSeconds, c.Correct, c.Mistakes)
	m.result = &res
	log.Info().
		Int("score", c.FinalScore).
		Int("seconds", c.ElapsedSeconds).
		Int("mistakes", c.Mistakes).
		Msg("round complete")
	m.saveRun(c)
}

func (m *Model) saveRun(c session.Completion) {
	if m.store == nil {
		return
	}
	run := model.RunRecord{
		StartedAt:      c.StartedAt,
		EndedAt:        c.EndedAt,
		Mode:           m.mode.String(),
		TargetScore:    m.cfg.TargetScore,
		MistakePenalty: m.penalty.String(),
		FinalScore:     c.FinalScore,
		ElapsedSeconds: c.ElapsedSeconds,
		Correct:        c.Correct,
		Mistakes:       c.Mistakes,
		PeakWPM:        c.PeakWPM,
	}
	history := m.shop.History()
	purchases := make([]model.Purchase, 0, len(history))
	for _, rec := range history {
		purchases = append(purchases, model.Purchase{
			UpgradeID:      rec.UpgradeID,
			Cost:           rec.Cost,
			ElapsedSeconds: rec.ElapsedSeconds,
		})
	}
	if _, err := m.store.InsertRun(context.Background(), run, purchases); err != nil {
		log.Error().Err(err).Msg("failed to save run")
	}
}
