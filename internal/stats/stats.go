// Package stats contains round metrics and history reporting.
package stats

import (
	"fmt"
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

const charsPerWord = 5

// WPM returns words per minute for characters typed in seconds.
func WPM(characters, seconds int) int {
	if seconds <= 0 {
		return 0
	}
	minutes := float64(seconds) / 60
	return int(math.Round(float64(characters) / charsPerWord / minutes))
}

// Accuracy returns the percentage of correct keystrokes; no keystrokes count as 100.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// StrikePenalty reduces wpm by ten percent per strike, never below zero.
func StrikePenalty(wpm, strikes int) int {
	factor := math.Max(0, 1-float64(strikes)*0.1)
	return int(math.Round(float64(wpm) * factor))
}

// ScorePerMinute averages score over the elapsed time.
func ScorePerMinute(score, seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(score) / (float64(seconds) / 60)
}

// PerformanceLevel labels a WPM figure.
func PerformanceLevel(wpm int) string {
	switch {
	case wpm >= 80:
		return "Excellent"
	case wpm >= 60:
		return "Great"
	case wpm >= 40:
		return "Good"
	case wpm >= 20:
		return "Fair"
	default:
		return "Keep Practicing"
	}
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Results summarizes a finished round for the results screen.
type Results struct {
	FinalScore     int
	ElapsedSeconds int
	ScorePerMinute float64
	RawWPM         int
	WPM            int
	Accuracy       int
	Strikes        int
	Level          string
}

// ComputeResults derives results from raw round counters.
func ComputeResults(score, seconds, correct, mistakes int) Results {
	raw := WPM(correct, max(1, seconds))
	wpm := StrikePenalty(raw, mistakes)
	return Results{
		FinalScore:     score,
		ElapsedSeconds: seconds,
		ScorePerMinute: ScorePerMinute(score, seconds),
		RawWPM:         raw,
		WPM:            wpm,
		Accuracy:       Accuracy(correct, correct+mistakes),
		Strikes:        mistakes,
		Level:          PerformanceLevel(wpm),
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline, keeping the newest width values.
func Sparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round((v - minVal) / (maxVal - minVal) * float64(last)))
		b.WriteByte(sparkChars[min(max(idx, 0), last)])
	}
	return b.String()
}
