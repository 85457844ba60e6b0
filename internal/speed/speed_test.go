package speed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWPMNeedsTwoSamples(t *testing.T) {
	var e Estimator
	assert.Equal(t, 0, e.WPM())
	e.Record(time.Unix(100, 0))
	assert.Equal(t, 0, e.WPM())
}

func TestWPMZeroElapsed(t *testing.T) {
	var e Estimator
	now := time.Unix(100, 0)
	e.Record(now)
	e.Record(now)
	assert.Equal(t, 0, e.WPM())
}

func TestWPMTwentySamplesOverTwelveSeconds(t *testing.T) {
	var e Estimator
	base := time.Unix(0, 0)
	step := 12 * time.Second / 19
	for i := 0; i < 19; i++ {
		e.Record(base.Add(time.Duration(i) * step))
	}
	e.Record(base.Add(12 * time.Second))
	assert.Equal(t, Window, e.Len())
	assert.Equal(t, 20, e.WPM())
}

func TestWindowEvictsOldest(t *testing.T) {
	var e Estimator
	base := time.Unix(0, 0)
	// A slow start that must fall out of the window.
	e.Record(base)
	e.Record(base.Add(time.Minute))
	fast := base.Add(2 * time.Minute)
	for i := 0; i < Window; i++ {
		e.Record(fast.Add(time.Duration(i) * 100 * time.Millisecond))
	}
	assert.Equal(t, Window, e.Len())
	// 20 chars over 1.9s.
	assert.Equal(t, 126, e.WPM())
}

func TestReset(t *testing.T) {
	var e Estimator
	e.Record(time.Unix(0, 0))
	e.Record(time.Unix(1, 0))
	e.Reset()
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, 0, e.WPM())
}
