package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type churnC struct{ X int }

func populate(w *World, n int) {
	for i := 0; i < n; i++ {
		e := w.Create()
		Assign(w, e, position{})
		Assign(w, e, velocity{})
		Assign(w, e, churnC{})
	}
}

func requireNoDuplicates(t *testing.T, s Storage) {
	t.Helper()
	seen := make(map[uint32]struct{}, s.Len())
	for _, e := range s.Entities() {
		_, dup := seen[e.Index()]
		require.False(t, dup, "index %d appears twice", e.Index())
		seen[e.Index()] = struct{}{}
		require.True(t, s.Has(e))
	}
}

func TestPathologicalChurn(t *testing.T) {
	if testing.Short() {
		t.Skip("500k entity churn")
	}
	w := NewWorld()
	populate(w, 500_000)

	for round := 0; round < 10; round++ {
		i := 0
		w.Each(func(e Entity) {
			if i++; i%7 == 0 && Has[position](w, e) {
				Remove[position](w, e)
			}
			if i++; i%11 == 0 && Has[velocity](w, e) {
				Remove[velocity](w, e)
			}
			if i++; i%13 == 0 && Has[churnC](w, e) {
				Remove[churnC](w, e)
			}
			if i++; i%17 == 0 {
				w.Destroy(e)
			}
		})
		populate(w, 50_000)
		require.NoError(t, w.Check(), "round %d", round)
	}

	w.Registry().Each(func(_ TypeID, s Storage) {
		requireNoDuplicates(t, s)
	})

	n := 0
	NewView3[position, velocity, churnC](w.Registry()).Each(func(_ Entity, p *position, v *velocity, c *churnC) {
		p.X, v.X, c.X = 0, 0, 0
		n++
	})
	require.Positive(t, n)
}
