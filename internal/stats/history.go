package stats

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/verte-zerg/typetycoon/internal/model"
	"github.com/verte-zerg/typetycoon/internal/upgrade"
)

const (
	defaultTermWidth = 80
	recentRunsShown  = 10
	sparkWindow      = 5
)

// TerminalWidth returns the width of the terminal behind f, or a fallback.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

// RenderHistory prints a summary, recent runs and upgrade timings.
func RenderHistory(w io.Writer, report Report, catalog *upgrade.Catalog, width int) error {
	if len(report.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	if err := renderSummary(w, report.Runs, width); err != nil {
		return err
	}
	if err := renderRecent(w, report.Runs); err != nil {
		return err
	}
	return renderTimings(w, report.Timings, catalog)
}

func renderSummary(w io.Writer, runs []model.RunAggregate, width int) error {
	var totalSPM float64
	best := runs[0]
	rates := make([]float64, len(runs))
	for i, r := range runs {
		rates[i] = ScorePerMinute(r.FinalScore, r.ElapsedSeconds)
		totalSPM += rates[i]
		if r.ElapsedSeconds > 0 && (best.ElapsedSeconds == 0 || r.ElapsedSeconds < best.ElapsedSeconds) {
			best = r
		}
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", len(runs)),
		fmt.Sprintf("Avg score/min: %.1f", totalSPM/float64(len(runs))),
		fmt.Sprintf("Fastest run: %s (%d points)", FormatDuration(best.ElapsedSeconds), best.FinalScore),
		fmt.Sprintf("Trend: %s", Sparkline(MovingAverage(rates, sparkWindow), width-len("Trend: "))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderRecent(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) > recentRunsShown {
		runs = runs[len(runs)-recentRunsShown:]
	}
	headers := []string{"Ended", "Mode", "Score", "Time", "Score/min", "Peak WPM", "Accuracy", "Upgrades"}
	rows := make([][]string, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.Mode,
			fmt.Sprintf("%d", r.FinalScore),
			FormatDuration(r.ElapsedSeconds),
			fmt.Sprintf("%.1f", ScorePerMinute(r.FinalScore, r.ElapsedSeconds)),
			fmt.Sprintf("%d", r.PeakWPM),
			fmt.Sprintf("%d%%", Accuracy(r.Correct, r.Correct+r.Mistakes)),
			fmt.Sprintf("%d", r.Upgrades),
		})
	}
	return writeSection(w, "Recent Runs", FormatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true}))
}

func renderTimings(w io.Writer, timings []model.UpgradeTiming, catalog *upgrade.Catalog) error {
	if len(timings) == 0 {
		return nil
	}
	headers := []string{"Upgrade", "Bought", "Avg time"}
	rows := make([][]string, 0, len(timings))
	for _, t := range timings {
		name := fmt.Sprintf("#%d", t.UpgradeID)
		if u, ok := catalog.Get(t.UpgradeID); ok {
			name = u.Name
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", t.Purchases),
			FormatDuration(int(t.AvgElapsedSeconds + 0.5)),
		})
	}
	return writeSection(w, "Upgrade Timings", FormatTable(headers, rows, map[int]bool{1: true, 2: true}))
}

func writeSection(w io.Writer, title string, lines []string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
