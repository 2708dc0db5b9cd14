// Package export renders playback frames and trace series as SVG.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/sortlab/internal/playback"
)

// Palette maps a highlight role to its fill colour. The empty role is an
// untouched element.
var Palette = map[string]string{
	"":          "#3B82F6",
	"sorted":    "#10B981",
	"swapping":  "#EF4444",
	"comparing": "#F59E0B",
	"pivot":     "#8B5CF6",
}

const (
	background = "#0a0a0a"
	labelColor = "#9CA3AF"
	margin     = 20.0
	// Arrays up to this size get value labels under each bar.
	maxLabels = 20
)

type Style string

const (
	StyleBars Style = "bars"
	StyleDots Style = "dots"
)

func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case "", StyleBars:
		return StyleBars, nil
	case StyleDots:
		return StyleDots, nil
	}
	return "", fmt.Errorf("unknown svg style %q", s)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FrameToSVG draws the frame's array as bars (or dots) coloured by their
// highlight role. Heights scale from min(0, min value) to the max value.
func FrameToSVG(f playback.Frame, width, height int, style Style) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	fmt.Fprintf(&sb, `<text x="%.0f" y="%.0f" fill="%s" font-family="monospace" font-size="12">%s  step %d/%d  comparisons %d  swaps %d</text>
`, margin, margin-6, labelColor, f.Algorithm, f.Index, f.Total, f.Stats.Comparisons, f.Stats.Swaps)

	n := len(f.Array)
	if n > 0 {
		lo, hi := 0.0, f.Array[0]
		for _, v := range f.Array {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		span := hi - lo
		if span == 0 {
			span = 1
		}

		plotW := float64(width) - 2*margin
		plotH := float64(height) - 2*margin - 12
		barW := plotW / float64(n)
		base := float64(height) - margin

		for i, v := range f.Array {
			h := (v - lo) / span * plotH
			x := margin + float64(i)*barW
			y := base - h
			color := Palette[f.Highlight.Role(i)]

			switch style {
			case StyleDots:
				r := math.Max(1, math.Min(barW/3, 6))
				fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x+barW/2, y, r, color)
			default:
				fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, math.Max(barW-2, 1), h, color)
			}

			if n <= maxLabels {
				fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="10" text-anchor="middle">%s</text>
`, x+barW/2, base+12, labelColor, formatValue(v))
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws one value per step as a polyline. It returns "" for
// fewer than two points.
func SeriesToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(series) - 1)

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, v := range series {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
