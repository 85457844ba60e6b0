package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typetycoon/internal/model"
	"github.com/verte-zerg/typetycoon/internal/store"
)

type fixedSource string

func (s fixedSource) Next() string { return string(s) }

func newTestModel(t *testing.T, cfg model.Config, text string, st *store.Store) *Model {
	t.Helper()
	now := time.Unix(1_700_000_000, 0)
	m, err := NewModel(Options{
		Config: cfg,
		Source: fixedSource(text),
		Store:  st,
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)
	return m
}

func targetConfig(target int) model.Config {
	return model.Config{Mode: "target", TargetScore: target, MistakePenalty: "none"}
}

func press(m *Model, keys string) {
	for _, r := range keys {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewModelRejectsBadConfig(t *testing.T) {
	_, err := NewModel(Options{Config: model.Config{Mode: "sprint"}, Source: fixedSource("a")})
	require.Error(t, err)
	_, err = NewModel(Options{Config: model.Config{Mode: "target", MistakePenalty: "double"}, Source: fixedSource("a")})
	require.Error(t, err)
	_, err = NewModel(Options{Config: targetConfig(10)})
	require.Error(t, err)
}

func TestTargetModeCompletesAndShowsResults(t *testing.T) {
	m := newTestModel(t, targetConfig(3), "abc", nil)
	require.Equal(t, phasePlaying, m.phase)
	assert.Equal(t, "abc abc", string(m.sess.Text()))

	press(m, "ab")
	assert.Equal(t, 2, m.sess.Score())
	assert.Greater(t, len(m.sess.Text()), 7, "text is topped up while playing")

	press(m, "c")
	require.Equal(t, phaseResults, m.phase)
	require.NotNil(t, m.result)
	assert.Equal(t, 3, m.result.FinalScore)
	assert.Contains(t, m.View(), "Round complete")

	press(m, "d")
	assert.Equal(t, phaseResults, m.phase)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, phasePlaying, m.phase)
	assert.Equal(t, 0, m.sess.Score())
}

func TestExhaustModeEndsAtTextEnd(t *testing.T) {
	cfg := model.Config{Mode: "exhaust", MistakePenalty: "none"}
	m := newTestModel(t, cfg, "ab", nil)
	assert.Equal(t, "ab", string(m.sess.Text()))

	press(m, "ax")
	require.Equal(t, phaseResults, m.phase)
	assert.Equal(t, 1, m.result.FinalScore)
	assert.Equal(t, 1, m.result.Strikes)
}

func TestEmptyExhaustRoundCompletesImmediately(t *testing.T) {
	m := newTestModel(t, model.Config{Mode: "exhaust", MistakePenalty: "none"}, "", nil)
	require.Equal(t, phaseResults, m.phase)
	assert.Equal(t, 0, m.result.FinalScore)
	assert.Nil(t, m.Init())
}

func TestBackspaceUndoesPosition(t *testing.T) {
	m := newTestModel(t, targetConfig(100), "abc", nil)
	press(m, "ax")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	snap := m.sess.Snapshot()
	assert.Equal(t, 1, snap.Position)
	assert.Equal(t, 1, snap.Mistakes)
}

func TestCountdownThenGo(t *testing.T) {
	cfg := targetConfig(10)
	cfg.Countdown = 2
	m := newTestModel(t, cfg, "abc", nil)
	require.Equal(t, phaseCountdown, m.phase)
	assert.NotNil(t, m.Init())

	press(m, "a")
	assert.Equal(t, 0, m.sess.Snapshot().Position, "keys are ignored during the countdown")

	m.Update(countdownMsg{round: m.round - 1})
	assert.Equal(t, 2, m.countdown)

	m.Update(countdownMsg{round: m.round})
	assert.Equal(t, 1, m.countdown)
	assert.Contains(t, m.View(), "1")

	_, cmd := m.Update(countdownMsg{round: m.round})
	assert.NotNil(t, cmd)
	assert.True(t, m.showGo)
	assert.Contains(t, m.View(), "GO!")

	_, cmd = m.Update(goMsg{round: m.round})
	assert.NotNil(t, cmd)
	assert.Equal(t, phasePlaying, m.phase)
	assert.True(t, m.sess.Active())
}

func TestTransientSignalsIgnoreStaleMessages(t *testing.T) {
	m := newTestModel(t, targetConfig(100), "abc", nil)
	press(m, "x")
	require.True(t, m.mistakeLit)
	require.True(t, m.keyLit)
	assert.Equal(t, "x", m.lastKey)

	m.Update(mistakeDoneMsg{round: m.round - 1, id: m.mistakeID})
	assert.True(t, m.mistakeLit)

	press(m, "y")
	m.Update(mistakeDoneMsg{round: m.round, id: m.mistakeID - 1})
	assert.True(t, m.mistakeLit, "an earlier flash must not end a later one")

	m.Update(mistakeDoneMsg{round: m.round, id: m.mistakeID})
	assert.False(t, m.mistakeLit)

	m.Update(keyDoneMsg{round: m.round, id: m.keyID})
	assert.False(t, m.keyLit)

	press(m, "z")
	round := m.round
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, round+1, m.round)
	assert.False(t, m.mistakeLit)
	assert.Equal(t, 0, m.sess.Snapshot().Mistakes)
}

func TestTickUpdatesElapsed(t *testing.T) {
	m := newTestModel(t, targetConfig(100), "abc", nil)
	start := m.sess.Snapshot().StartedAt

	_, cmd := m.Update(tickMsg{round: m.round, at: start.Add(3 * time.Second)})
	assert.NotNil(t, cmd)
	assert.Equal(t, 3, m.sess.Snapshot().ElapsedSeconds)

	_, cmd = m.Update(tickMsg{round: m.round + 1, at: start.Add(9 * time.Second)})
	assert.Nil(t, cmd)
	assert.Equal(t, 3, m.sess.Snapshot().ElapsedSeconds)
}

func TestShopPurchase(t *testing.T) {
	m := newTestModel(t, targetConfig(1000), "abc", nil)
	m.sess.AdjustScore(120)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.shopOpen)
	assert.Contains(t, m.View(), "Upgrade Shop")

	press(m, "a")
	assert.Equal(t, 0, m.sess.Snapshot().Position, "typing is paused while the shop is open")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 70, m.sess.Score())
	assert.True(t, m.shop.Purchased().Has(1))
	assert.Equal(t, 3.0, m.sess.Loadout().Multipliers.Vowel)
	assert.Equal(t, "Bought Vowel Power", m.shopNote)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Already owned", m.shopNote)
	assert.Equal(t, 70, m.sess.Score())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Not enough points", m.shopNote)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.shopOpen)

	press(m, "a")
	assert.Equal(t, 73, m.sess.Score())
}

func TestCompletedRunIsSaved(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "typetycoon.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	m := newTestModel(t, targetConfig(53), "abc", st)
	m.sess.AdjustScore(100)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	press(m, "a")
	require.Equal(t, phaseResults, m.phase)

	runs, err := st.ListRuns(context.Background(), model.HistoryConfig{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 53, runs[0].FinalScore)
	assert.Equal(t, "target", runs[0].Mode)
	assert.Equal(t, 1, runs[0].Upgrades)
}

func TestSessionKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, sessionKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}))
	assert.Equal(t, []string{" "}, sessionKeys(tea.KeyMsg{Type: tea.KeySpace}))
	assert.Equal(t, []string{"Backspace"}, sessionKeys(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.Nil(t, sessionKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a"), Alt: true}))
	assert.Nil(t, sessionKeys(tea.KeyMsg{Type: tea.KeyUp}))
}

func TestFooterShowsScoreAndMultipliers(t *testing.T) {
	m := newTestModel(t, targetConfig(100), "abc", nil)
	press(m, "ab")
	line := footerLine(m.sess.Snapshot())
	for _, want := range []string{"Score 2 / 100", "WPM", "Combo off", "Mistakes 0", "Base 1", "Vowel x1", "0:00"} {
		assert.True(t, strings.Contains(line, want), "footer missing %q: %s", want, line)
	}
	assert.Equal(t, "1.5", formatMultiplier(1.5))
}
