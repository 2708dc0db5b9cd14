package trace

// Sortedness returns the fraction of adjacent pairs already in
// non-decreasing order. Arrays shorter than two elements are fully sorted.
func Sortedness(v Values) float64 {
	if len(v) < 2 {
		return 1.0
	}
	ordered := 0
	for i := 0; i < len(v)-1; i++ {
		if v[i] <= v[i+1] {
			ordered++
		}
	}
	return float64(ordered) / float64(len(v)-1)
}

// Inversions counts pairs i < j with v[i] > v[j].
func Inversions(v Values) int {
	n := 0
	for i := 0; i < len(v); i++ {
		for j := i + 1; j < len(v); j++ {
			if v[i] > v[j] {
				n++
			}
		}
	}
	return n
}

// Series extracts one value per step, for charts and exports.
func (t *Trace) Series(f func(Step) float64) []float64 {
	if t == nil {
		return nil
	}
	out := make([]float64, len(t.Steps))
	for i, s := range t.Steps {
		out[i] = f(s)
	}
	return out
}
