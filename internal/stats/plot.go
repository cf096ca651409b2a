// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisSeparator       = " │ "
	terminalWidthBackup = 80
)

// PlotWPM renders a braille-dot curve of WPM values. Width 0 sizes the plot
// to the terminal.
func PlotWPM(w io.Writer, title string, values []float64, width, height int) error {
	if len(values) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	resampled := resample(values, width)
	minVal, maxVal := minMax(resampled)
	if math.Abs(maxVal-minVal) < 1e-9 {
		minVal--
		maxVal++
	}

	// Braille cells carry a 2x4 dot grid each.
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	prevX, prevY := -1, -1
	for x, v := range resampled {
		pos := (v - minVal) / (maxVal - minVal)
		py := int(math.Round((1 - pos) * float64(height*4-1)))
		px := x * 2
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				setBrailleDot(cells, dx, dy)
			})
		} else {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	topLabel := fmt.Sprintf("%.0f", maxVal)
	bottomLabel := fmt.Sprintf("%.0f", minVal)
	labelWidth := len(topLabel)
	if len(bottomLabel) > labelWidth {
		labelWidth = len(bottomLabel)
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = topLabel
		case height - 1:
			label = bottomLabel
		}
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", labelWidth, label, axisSeparator)
		for x := 0; x < width; x++ {
			row.WriteRune(rune(0x2800 + int(cells[y][x])))
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	return nil
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	axisWidth := 4 + utf8.RuneCountInString(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func minMax(values []float64) (float64, float64) {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// resample stretches or averages values to exactly width points.
func resample(values []float64, width int) []float64 {
	if len(values) == width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	if len(values) > width {
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			if end > len(values) {
				end = len(values)
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	masks := [4][2]uint8{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	if y < 0 || y > 3 || x < 0 || x > 1 {
		return 0
	}
	return masks[y][x]
}
