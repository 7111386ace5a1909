package setdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifference(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want []string
	}{
		{
			name: "disjoint",
			a:    []string{"a", "b"},
			b:    []string{"c"},
			want: []string{"a", "b"},
		},
		{
			name: "overlap",
			a:    []string{"a", "b", "c"},
			b:    []string{"b"},
			want: []string{"a", "c"},
		},
		{
			name: "subset",
			a:    []string{"a"},
			b:    []string{"a", "b"},
			want: nil,
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Difference(tt.a, tt.b))
		})
	}
}

func TestDifferent(t *testing.T) {
	assert.False(t, Different([]uint{1, 2, 3}, []uint{3, 2, 1}), "same membership, different order")
	assert.True(t, Different([]uint{1, 2}, []uint{1, 2, 3}), "length differs")
	assert.True(t, Different([]uint{1, 2, 4}, []uint{1, 2, 3}), "membership differs")
	assert.False(t, Different(nil, []uint{}), "nil vs empty")
}

func TestReconcile(t *testing.T) {
	plan := Reconcile([]string{"A"}, []string{"A", "B"})
	assert.Equal(t, []string{"B"}, plan.ToAdd)
	assert.Empty(t, plan.ToRemove)

	plan = Reconcile([]string{"A", "B"}, []string{"C"})
	assert.Equal(t, []string{"C"}, plan.ToAdd)
	assert.Equal(t, []string{"A", "B"}, plan.ToRemove)
}

func TestReconcileIdempotent(t *testing.T) {
	current := []string{"x.jpg", "y.png"}
	desired := []string{"y.png", "z.webp"}

	plan := Reconcile(current, desired)

	// Applying the plan converges current onto desired; reconciling again
	// must produce an empty plan.
	next := append(Difference(current, plan.ToRemove), plan.ToAdd...)
	again := Reconcile(next, desired)
	assert.Empty(t, again.ToAdd)
	assert.Empty(t, again.ToRemove)
}
