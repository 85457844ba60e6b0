// Package speed estimates typing speed from recent correct keystrokes.
package speed

import (
	"math"
	"time"
)

// Window is the number of keystrokes the estimate is based on.
const Window = 20

const charsPerWord = 5

// Estimator keeps the last Window keystroke instants in a ring buffer.
// The zero value is ready to use.
type Estimator struct {
	buf   [Window]time.Time
	start int
	size  int
}

// Record appends a correct keystroke, evicting the oldest once full.
func (e *Estimator) Record(at time.Time) {
	if e.size < Window {
		e.buf[(e.start+e.size)%Window] = at
		e.size++
		return
	}
	e.buf[e.start] = at
	e.start = (e.start + 1) % Window
}

// Len returns the number of samples held.
func (e *Estimator) Len() int {
	return e.size
}

// Reset drops all samples.
func (e *Estimator) Reset() {
	*e = Estimator{}
}

// WPM returns the rolling words-per-minute estimate.
// Fewer than two samples, or samples with no elapsed time, yield 0.
func (e *Estimator) WPM() int {
	if e.size < 2 {
		return 0
	}
	oldest := e.buf[e.start]
	newest := e.buf[(e.start+e.size-1)%Window]
	minutes := float64(newest.Sub(oldest).Milliseconds()) / 60000.0
	if minutes <= 0 {
		return 0
	}
	return int(math.Round(float64(e.size) / minutes / charsPerWord))
}
