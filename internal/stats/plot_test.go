package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotWPMShape(t *testing.T) {
	var buf bytes.Buffer
	values := []float64{40, 55, 60, 58, 72}
	if err := PlotWPM(&buf, "WPM over tests", values, 20, 5); err != nil {
		t.Fatalf("plot: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected title + 5 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "WPM over tests" {
		t.Fatalf("unexpected title line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "72") {
		t.Fatalf("expected max label on top row: %q", lines[1])
	}
	if !strings.Contains(lines[len(lines)-1], "40") {
		t.Fatalf("expected min label on bottom row: %q", lines[len(lines)-1])
	}
}

func TestPlotWPMEmptyValues(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotWPM(&buf, "empty", nil, 20, 5); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty values, got %q", buf.String())
	}
}

func TestPlotWPMFlatSeries(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotWPM(&buf, "", []float64{60, 60, 60}, 15, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output for a flat series")
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got <= 0 || got >= 80 {
		t.Fatalf("unexpected plot width for 80 columns: %d", got)
	}
	if got := PlotWidthFor(0); got < minPlotWidth {
		t.Fatalf("plot width must respect the minimum, got %d", got)
	}
}

func TestResample(t *testing.T) {
	up := resample([]float64{0, 10}, 5)
	if len(up) != 5 || up[0] != 0 || up[4] != 10 {
		t.Fatalf("unexpected upsample: %v", up)
	}
	down := resample([]float64{1, 2, 3, 4, 5, 6}, 3)
	if len(down) != 3 {
		t.Fatalf("unexpected downsample length: %v", down)
	}
	if down[0] != 1.5 || down[1] != 3.5 || down[2] != 5.5 {
		t.Fatalf("unexpected downsample buckets: %v", down)
	}
}
