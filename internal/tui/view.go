package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typetycoon/internal/session"
	"github.com/verte-zerg/typetycoon/internal/stats"
)

const accentColor = lipgloss.Color("#C89A3A")

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(accentColor)
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	comboStyle       = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	keyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1E1E")).Background(accentColor)
	titleStyle       = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	countdownStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(1, 4)

	textBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#3A3A3A")).Padding(0, 1)
	mistakeBoxStyle = textBoxStyle.BorderForeground(lipgloss.Color("#FF4D4F"))
)

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.phase {
	case phaseCountdown:
		content = m.renderCountdown()
	case phaseResults:
		content = m.renderResults()
	default:
		if m.shopOpen {
			content = m.renderShop()
		} else {
			content = m.renderText()
		}
	}
	if m.width == 0 || m.height == 0 {
		if m.phase == phasePlaying {
			return content + "\n" + m.renderFooter()
		}
		return content
	}
	if m.phase != phasePlaying || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(footer)
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

func (m *Model) renderCountdown() string {
	label := fmt.Sprintf("%d", m.countdown)
	if m.showGo {
		label = "GO!"
	}
	return countdownStyle.Render(label)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) renderText() string {
	snap := m.sess.Snapshot()
	text := m.sess.Text()
	width := m.contentWidth()
	span := 0
	back := 0
	if width > 0 {
		back = width
		span = width * 4
	}
	start, end := visibleRange(text, snap.Position, back, span)
	cursor := snap.Position - start
	if snap.Position >= len(text) {
		cursor = -1
	}
	styled := buildStyledRunes(text[start:end], snap.Typed[start:end], cursor)
	wrapped := wrapStyledRunes(styled, width)
	box := textBoxStyle
	if m.mistakeLit {
		box = mistakeBoxStyle
	}
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(wrapped)
}

func (m *Model) renderFooter() string {
	snap := m.sess.Snapshot()
	lines := []string{}
	if snap.Mode == session.ModeTarget && snap.TargetScore > 0 {
		pct := float64(snap.Score) / float64(snap.TargetScore)
		lines = append(lines, m.bar.ViewAs(min(1, pct)))
	}
	lines = append(lines, footerLine(snap))
	if m.keyLit && m.lastKey != "" {
		key := m.lastKey
		if key == " " {
			key = "space"
		}
		lines[len(lines)-1] += "  " + keyStyle.Render(" "+key+" ")
	}
	return strings.Join(lines, "\n")
}

func footerLine(snap session.Snapshot) string {
	score := fmt.Sprintf("Score %d", snap.Score)
	if snap.Mode == session.ModeTarget {
		score += fmt.Sprintf(" / %d", snap.TargetScore)
	}
	combo := "Combo off"
	if snap.Combo.Active {
		combo = comboStyle.Render(fmt.Sprintf("Combo x%s", formatMultiplier(snap.Combo.Multiplier)))
	}
	m := snap.Multipliers
	segments := []string{
		score,
		fmt.Sprintf("WPM %d", snap.WPM),
		combo,
		fmt.Sprintf("Mistakes %d", snap.Mistakes),
		fmt.Sprintf("Base %s · Vowel x%s · Consonant x%s",
			formatMultiplier(m.Base), formatMultiplier(m.Vowel), formatMultiplier(m.Consonant)),
		stats.FormatDuration(snap.ElapsedSeconds),
		"Tab: shop",
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func formatMultiplier(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func (m *Model) renderShop() string {
	lines := []string{
		titleStyle.Render("Upgrade Shop"),
		fmt.Sprintf("Points: %d", m.sess.Score()),
		"",
		m.shopTable.View(),
		"",
	}
	if m.shopNote != "" {
		lines = append(lines, m.shopNote)
	}
	lines = append(lines, footerStyle.Render("enter: buy  ↑/↓: select  esc/tab: close"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderResults() string {
	if m.result == nil {
		return ""
	}
	r := m.result
	rows := [][2]string{
		{"Final score", fmt.Sprintf("%d", r.FinalScore)},
		{"Time", stats.FormatDuration(r.ElapsedSeconds)},
		{"Score/min", fmt.Sprintf("%.1f", r.ScorePerMinute)},
		{"WPM", fmt.Sprintf("%d (raw %d)", r.WPM, r.RawWPM)},
		{"Accuracy", fmt.Sprintf("%d%%", r.Accuracy)},
		{"Strikes", fmt.Sprintf("%d", r.Strikes)},
		{"Level", r.Level},
	}
	lines := []string{titleStyle.Render("Round complete"), ""}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-12s %s", row[0], row[1]))
	}
	lines = append(lines, "", footerStyle.Render("enter: play again  ctrl+c: quit"))
	return strings.Join(lines, "\n")
}
