// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/typerun/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates stored results for overview display.
type Summary struct {
	Count       int
	AvgWPM      float64
	BestWPM     int
	AvgAccuracy float64
}

// Summarize computes overview numbers across stored results.
func Summarize(results []model.StoredResult) Summary {
	s := Summary{Count: len(results)}
	if len(results) == 0 {
		return s
	}
	var totalWPM, totalAcc float64
	for _, r := range results {
		totalWPM += float64(r.WPM)
		totalAcc += float64(r.Accuracy)
		if r.WPM > s.BestWPM {
			s.BestWPM = r.WPM
		}
	}
	count := float64(len(results))
	s.AvgWPM = totalWPM / count
	s.AvgAccuracy = totalAcc / count
	return s
}

// WPMSeries extracts the WPM values of stored results, oldest first.
func WPMSeries(results []model.StoredResult) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = float64(r.WPM)
	}
	return out
}

// SampleSeries extracts the WPM values of a per-second history.
func SampleSeries(samples []model.WPMSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.WPM)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
