package export

import (
	"strings"
	"testing"

	"github.com/san-kum/sortlab/internal/playback"
	"github.com/san-kum/sortlab/internal/trace"
)

func frameAt(t *testing.T, algorithm string, input trace.Values, index int) playback.Frame {
	t.Helper()
	s, err := playback.New(nil, algorithm, input)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Seek(index); err != nil {
		t.Fatal(err)
	}
	return s.Frame()
}

func TestFrameToSVG_Bars(t *testing.T) {
	// Step 1 of bubble sort over [5 3 8 1] swaps positions 0 and 1.
	f := frameAt(t, "bubbleSort", trace.Values{5, 3, 8, 1}, 1)
	svg := FrameToSVG(f, 400, 200, StyleBars)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg)
	}
	if got := strings.Count(svg, "<rect x="); got != 4 {
		t.Errorf("expected 4 bars, got %d", got)
	}
	if got := strings.Count(svg, Palette["swapping"]); got != 2 {
		t.Errorf("expected 2 swapping bars, got %d", got)
	}
	if !strings.Contains(svg, ">8</text>") {
		t.Error("expected value labels for a small array")
	}
	if !strings.Contains(svg, "bubbleSort  step 2/14") {
		t.Error("expected title with position")
	}
}

func TestFrameToSVG_Dots(t *testing.T) {
	f := frameAt(t, "quickSort", trace.Values{3, 1, 2}, 1<<20)
	svg := FrameToSVG(f, 300, 150, StyleDots)

	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("expected 3 dots, got %d", got)
	}
	if got := strings.Count(svg, Palette["sorted"]); got != 3 {
		t.Errorf("expected every element sorted at the end, got %d", got)
	}
}

func TestFrameToSVG_NoLabelsForLargeArrays(t *testing.T) {
	input := make(trace.Values, maxLabels+1)
	for i := range input {
		input[i] = float64(len(input) - i)
	}
	svg := FrameToSVG(frameAt(t, "insertionSort", input, 0), 800, 200, StyleBars)

	if strings.Contains(svg, `text-anchor="middle"`) {
		t.Error("did not expect value labels")
	}
}

func TestFrameToSVG_Empty(t *testing.T) {
	svg := FrameToSVG(playback.Frame{Algorithm: "bubbleSort"}, 100, 100, StyleBars)
	if strings.Contains(svg, "<rect x=") {
		t.Error("expected no bars for an empty array")
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"", StyleBars, false},
		{"bars", StyleBars, false},
		{"dots", StyleDots, false},
		{"shapes", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStyle(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseStyle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 100, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}

	svg := SeriesToSVG([]float64{0, 1, 2, 2, 5}, 100, 50, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke colour")
	}
	if got := strings.Count(svg, " L"); got != 4 {
		t.Errorf("expected 4 line segments, got %d", got)
	}
	if !strings.Contains(svg, "d=\"M0.0,") {
		t.Error("path should start at x=0")
	}
}
