package trace

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_SnapshotsAreCopies(t *testing.T) {
	input := Values{3, 1, 2}
	rec := NewRecorder("test", input)
	a := rec.Array()

	rec.Compare(0, 1)
	rec.Swap(0, 1)
	rec.Shift(2, 0)

	tr := rec.Finish()
	require.Equal(t, 3, tr.Len())

	assert.Equal(t, Values{3, 1, 2}, tr.Steps[0].Snapshot)
	assert.Equal(t, Values{1, 3, 2}, tr.Steps[1].Snapshot)
	assert.Equal(t, Values{1, 3, 1}, tr.Steps[2].Snapshot)
	assert.Equal(t, Values{1, 3, 1}, a, "Array exposes the working array")
	assert.Equal(t, []int{1, 0, 1}, tr.Permutation)

	tr.Steps[0].Snapshot[0] = 100
	assert.Equal(t, 1.0, tr.Steps[1].Snapshot[0], "steps must not alias")
	assert.Equal(t, Values{3, 1, 2}, tr.Input, "input must be copied")

	input[0] = 42
	assert.Equal(t, 3.0, tr.Input[0])
}

func TestRecorder_Counters(t *testing.T) {
	rec := NewRecorder("test", Values{2, 1})
	rec.Select(1)
	rec.Compare(0, 1)
	rec.Swap(0, 1)
	rec.Insert(0, rec.Hold(1))
	rec.Sorted(0, 1)

	tr := rec.Finish()
	steps := tr.Steps

	assert.Equal(t, 0, steps[0].Comparisons)
	assert.Equal(t, 1, steps[1].Comparisons)
	assert.True(t, steps[1].IncrementsComparisons())
	assert.False(t, steps[1].IncrementsSwaps())
	assert.Equal(t, 1, steps[2].Swaps)
	assert.True(t, steps[2].IncrementsSwaps())
	assert.Equal(t, 2, steps[3].Swaps)
	assert.True(t, steps[3].IncrementsSwaps())
	assert.Equal(t, Counter(0), steps[4].Counted)

	assert.Equal(t, Stats{Comparisons: 1, Swaps: 2, Steps: 5}, tr.Stats)
}

func TestRecorder_GapAndSortedAll(t *testing.T) {
	rec := NewRecorder("test", Values{4, 3, 2, 1})
	rec.Gap(2)
	rec.SortedAll()
	tr := rec.Finish()

	assert.Equal(t, KindGap, tr.Steps[0].Kind)
	assert.Equal(t, 2, tr.Steps[0].Gap)
	assert.Empty(t, tr.Steps[0].Indices)
	assert.NotNil(t, tr.Steps[0].Indices)
	assert.Equal(t, []int{0, 1, 2, 3}, tr.Steps[1].Indices)
}

func TestRecorder_FinishTwicePanics(t *testing.T) {
	rec := NewRecorder("test", nil)
	rec.SortedAll()
	rec.Finish()
	assert.Panics(t, func() { rec.Finish() })
}

func TestTrace_Accessors(t *testing.T) {
	var nilTrace *Trace
	assert.Equal(t, 0, nilTrace.Len())
	_, ok := nilTrace.At(0)
	assert.False(t, ok)
	assert.Nil(t, nilTrace.Final())

	rec := NewRecorder("test", Values{2, 1})
	rec.Compare(0, 1)
	rec.Swap(0, 1)
	tr := rec.Finish()

	step, ok := tr.At(1)
	require.True(t, ok)
	assert.Equal(t, KindSwap, step.Kind)
	_, ok = tr.At(2)
	assert.False(t, ok)
	_, ok = tr.At(-1)
	assert.False(t, ok)

	final := tr.Final()
	assert.Equal(t, Values{1, 2}, final)
	final[0] = 7
	assert.Equal(t, 1.0, tr.Steps[1].Snapshot[0])

	assert.Equal(t, 1, tr.CountKind(KindCompare))
	assert.Equal(t, 0, tr.CountKind(KindMerge))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input Values
		ok    bool
	}{
		{"empty", Values{}, true},
		{"normal", Values{1, 2.5, -3}, true},
		{"nan", Values{1, math.NaN()}, false},
		{"+inf", Values{math.Inf(1)}, false},
		{"-inf", Values{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			var ie *InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, len(tt.input)-1, ie.Index)
		})
	}
}

func TestValidateKeys(t *testing.T) {
	assert.NoError(t, ValidateKeys(Values{0, 5, 12}, true))
	assert.NoError(t, ValidateKeys(Values{-4, 5}, false))
	assert.ErrorIs(t, ValidateKeys(Values{-4, 5}, true), ErrInvalidInput)
	assert.ErrorIs(t, ValidateKeys(Values{1.5}, false), ErrInvalidInput)
	assert.ErrorIs(t, ValidateKeys(Values{math.NaN()}, false), ErrInvalidInput)
}

func TestInputError_Message(t *testing.T) {
	err := &InputError{Index: 2, Value: 1.5, Reason: "not an integer key", Wrapped: ErrInvalidInput}
	assert.Equal(t, "trace: invalid input: value 1.5 at index 2: not an integer key", err.Error())
}

func TestSortedness(t *testing.T) {
	assert.Equal(t, 1.0, Sortedness(nil))
	assert.Equal(t, 1.0, Sortedness(Values{3}))
	assert.Equal(t, 1.0, Sortedness(Values{1, 2, 2, 3}))
	assert.Equal(t, 0.0, Sortedness(Values{3, 2, 1}))
	assert.InDelta(t, 2.0/3.0, Sortedness(Values{1, 3, 2, 4}), 1e-12)
}

func TestInversions(t *testing.T) {
	assert.Equal(t, 0, Inversions(Values{1, 2, 3}))
	assert.Equal(t, 3, Inversions(Values{3, 2, 1}))
	assert.Equal(t, 0, Inversions(Values{2, 2}))
}

func TestKinds(t *testing.T) {
	ks := Kinds()
	assert.Len(t, ks, 12)
	for _, k := range ks {
		assert.True(t, k.Valid())
	}
	assert.False(t, Kind("teleport").Valid())
	ks[0] = "mutated"
	assert.Equal(t, KindCompare, Kinds()[0])
}

func TestRecorder_OriginsFollowWrites(t *testing.T) {
	rec := NewRecorder("test", Values{5, 7, 5})
	held := rec.Elements(0, 3)
	require.Len(t, held, 3)
	assert.Equal(t, Element{Value: 7, Origin: 1}, held[1])

	rec.Merge(0, held[0])
	rec.Merge(1, held[2])
	rec.Merge(2, held[1])
	rec.Bucket(1)
	rec.Copy(0, held[0])
	rec.Restore(1, held[2])

	tr := rec.Finish()
	assert.Equal(t, []int{0, 2, 1}, tr.Permutation)
	assert.Equal(t, KindPlace, tr.Steps[3].Kind)
	assert.Equal(t, 5, tr.Len(), "Restore records no step")
	assert.True(t, tr.Stable())
}

func TestTrace_Stable(t *testing.T) {
	stable := &Trace{
		Steps:       []Step{{Kind: KindSorted, Snapshot: Values{1, 2, 2}}},
		Permutation: []int{2, 0, 1},
	}
	assert.True(t, stable.Stable())

	unstable := &Trace{
		Steps:       []Step{{Kind: KindSorted, Snapshot: Values{1, 2, 2}}},
		Permutation: []int{2, 1, 0},
	}
	assert.False(t, unstable.Stable())

	var nilTrace *Trace
	assert.True(t, nilTrace.Stable())
}
