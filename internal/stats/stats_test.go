package stats

import (
	"testing"

	"github.com/verte-zerg/typerun/internal/model"
)

func TestSummarize(t *testing.T) {
	results := []model.StoredResult{
		{WPM: 60, Accuracy: 90},
		{WPM: 80, Accuracy: 100},
		{WPM: 70, Accuracy: 95},
	}
	s := Summarize(results)
	if s.Count != 3 {
		t.Fatalf("expected count 3, got %d", s.Count)
	}
	if s.BestWPM != 80 {
		t.Fatalf("expected best 80, got %d", s.BestWPM)
	}
	if s.AvgWPM != 70 {
		t.Fatalf("expected avg 70, got %f", s.AvgWPM)
	}
	if s.AvgAccuracy != 95 {
		t.Fatalf("expected avg accuracy 95, got %f", s.AvgAccuracy)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.AvgWPM != 0 || s.BestWPM != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: got %f, want %f", i, out[i], want[i])
		}
	}
}

func TestMovingAverageWindowOneCopies(t *testing.T) {
	values := []float64{3, 1, 4}
	out := MovingAverage(values, 1)
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("window 1 must copy values, index %d differs", i)
		}
	}
	out[0] = 99
	if values[0] == 99 {
		t.Fatalf("moving average must not alias the input")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	flat := Sparkline([]float64{5, 5, 5})
	if len(flat) != 3 {
		t.Fatalf("expected 3 chars, got %d", len(flat))
	}
	ramp := Sparkline([]float64{0, 50, 100})
	if len(ramp) != 3 {
		t.Fatalf("expected 3 chars, got %d", len(ramp))
	}
	if ramp[0] != ' ' || ramp[2] != '@' {
		t.Fatalf("expected full ramp, got %q", ramp)
	}
}

func TestWPMSeriesAndSampleSeries(t *testing.T) {
	results := []model.StoredResult{{WPM: 10}, {WPM: 20}}
	if s := WPMSeries(results); len(s) != 2 || s[0] != 10 || s[1] != 20 {
		t.Fatalf("unexpected WPM series: %v", s)
	}
	samples := []model.WPMSample{{TimeS: 0, WPM: 30}, {TimeS: 1, WPM: 40}}
	if s := SampleSeries(samples); len(s) != 2 || s[0] != 30 || s[1] != 40 {
		t.Fatalf("unexpected sample series: %v", s)
	}
}
