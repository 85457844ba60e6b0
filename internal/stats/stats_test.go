package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWPM(t *testing.T) {
	assert.Equal(t, 0, WPM(100, 0))
	assert.Equal(t, 20, WPM(100, 60))
	assert.Equal(t, 100, WPM(250, 30))
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 100, Accuracy(0, 0))
	assert.Equal(t, 75, Accuracy(3, 4))
}

func TestStrikePenalty(t *testing.T) {
	assert.Equal(t, 100, StrikePenalty(100, 0))
	assert.Equal(t, 70, StrikePenalty(100, 3))
	assert.Equal(t, 0, StrikePenalty(100, 15))
}

func TestPerformanceLevel(t *testing.T) {
	assert.Equal(t, "Excellent", PerformanceLevel(80))
	assert.Equal(t, "Great", PerformanceLevel(60))
	assert.Equal(t, "Good", PerformanceLevel(45))
	assert.Equal(t, "Fair", PerformanceLevel(20))
	assert.Equal(t, "Keep Practicing", PerformanceLevel(19))
}

func TestComputeResults(t *testing.T) {
	r := ComputeResults(12000, 120, 1000, 2)
	assert.Equal(t, 6000.0, r.ScorePerMinute)
	assert.Equal(t, 100, r.RawWPM)
	assert.Equal(t, 80, r.WPM)
	assert.Equal(t, "Excellent", r.Level)
	assert.Equal(t, 100, r.Accuracy)
	assert.Equal(t, "2:00", FormatDuration(r.ElapsedSeconds))
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, got)
	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 1))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil, 10))
	assert.Equal(t, "+++", Sparkline([]float64{3, 3, 3}, 10))
	assert.Equal(t, " @", Sparkline([]float64{1, 2}, 0))
	assert.Len(t, Sparkline([]float64{1, 2, 3, 4, 5}, 3), 3)
}
