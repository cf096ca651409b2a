// Package metrics derives WPM and accuracy from correctness counts.
package metrics

import (
	"math"
	"time"

	"github.com/verte-zerg/typerun/internal/model"
)

// MaxWPM is the display ceiling for computed WPM values.
const MaxWPM = 999

// WPM computes words per minute as (correct/5) per minute, clamped to
// [0, MaxWPM]. Returns 0 when no time has elapsed; a sample is never
// produced before the first keystroke.
func WPM(correct int, elapsed time.Duration) int {
	if elapsed <= 0 || correct < 0 {
		return 0
	}
	minutes := elapsed.Minutes()
	wpm := int(math.Round(float64(correct) / 5.0 / minutes))
	if wpm < 0 {
		return 0
	}
	if wpm > MaxWPM {
		return MaxWPM
	}
	return wpm
}

// Accuracy computes the percentage of correct characters over all typed
// characters, rounded to an integer in [0, 100].
func Accuracy(correct, typedLen int) int {
	if typedLen <= 0 || correct <= 0 {
		return 0
	}
	if correct > typedLen {
		correct = typedLen
	}
	return int(math.Round(100 * float64(correct) / float64(typedLen)))
}

// History accumulates per-second WPM samples. Samples arrive at a sub-second
// cadence for live display; the history keeps at most one entry per whole
// second, the latest sample for that second winning.
type History struct {
	samples []model.WPMSample
}

// Record appends a sample, or replaces the last one when it falls in the
// same whole second.
func (h *History) Record(timeS, wpm int) {
	if timeS < 0 {
		return
	}
	if n := len(h.samples); n > 0 && h.samples[n-1].TimeS == timeS {
		h.samples[n-1].WPM = wpm
		return
	}
	h.samples = append(h.samples, model.WPMSample{TimeS: timeS, WPM: wpm})
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	return len(h.samples)
}

// Samples returns a copy of the stored samples.
func (h *History) Samples() []model.WPMSample {
	out := make([]model.WPMSample, len(h.samples))
	copy(out, h.samples)
	return out
}
