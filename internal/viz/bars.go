package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortlab/internal/playback"
	"github.com/san-kum/sortlab/internal/trace"
)

var eighths = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// column is one drawn bar: the value it shows and the role it is painted in.
type column struct {
	value float64
	role  string
}

// columns fits the array into at most width bars. When the array is wider
// than the screen, each bar shows the largest element of its bucket and the
// most urgent role in it.
func columns(arr trace.Values, hl playback.Highlight, width int) []column {
	n := len(arr)
	if n == 0 || width <= 0 {
		return nil
	}
	if n <= width {
		out := make([]column, n)
		for i, v := range arr {
			out[i] = column{value: v, role: hl.Role(i)}
		}
		return out
	}

	out := make([]column, width)
	for c := range out {
		from, to := c*n/width, (c+1)*n/width
		col := column{value: arr[from], role: hl.Role(from)}
		for i := from; i < to; i++ {
			col.value = max(col.value, arr[i])
			if r := hl.Role(i); rolePriority(r) > rolePriority(col.role) {
				col.role = r
			}
		}
		out[c] = col
	}
	return out
}

func rolePriority(role string) int {
	switch role {
	case "swapping":
		return 4
	case "comparing":
		return 3
	case "pivot":
		return 2
	case "sorted":
		return 1
	default:
		return 0
	}
}

// RenderBars draws the array as vertical bars, height rows tall, using
// eighth blocks for sub-row precision. Bars are one cell wide with a gap
// when the screen allows it.
func RenderBars(arr trace.Values, hl playback.Highlight, width, height int, th Theme) string {
	if height <= 0 {
		return ""
	}
	gap := len(arr) > 0 && len(arr)*2 <= width
	slots := width
	if gap {
		slots = width / 2
	}
	cols := columns(arr, hl, slots)
	if len(cols) == 0 {
		return strings.Repeat("\n", height-1)
	}

	lo, hi := 0.0, cols[0].value
	for _, c := range cols {
		lo = min(lo, c.value)
		hi = max(hi, c.value)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	levels := make([]int, len(cols))
	styles := make([]lipgloss.Style, len(cols))
	for i, c := range cols {
		levels[i] = int((c.value - lo) / span * float64(height*8))
		if levels[i] == 0 && c.value > lo {
			levels[i] = 1
		}
		styles[i] = lipgloss.NewStyle().Foreground(th.RoleColor(c.role))
	}

	rows := make([]string, height)
	for r := 0; r < height; r++ {
		floor := (height - 1 - r) * 8
		var b strings.Builder
		for i, lvl := range levels {
			fill := lvl - floor
			switch {
			case fill >= 8:
				b.WriteString(styles[i].Render(eighths[8]))
			case fill > 0:
				b.WriteString(styles[i].Render(eighths[fill]))
			default:
				b.WriteString(" ")
			}
			if gap {
				b.WriteString(" ")
			}
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}
