package ecs

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indices(es []Entity) []uint32 {
	out := make([]uint32, len(es))
	for i, e := range es {
		out[i] = e.Index()
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestViewEach(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	Assign(w, e, position{X: 1})
	Assign(w, e, velocity{X: 2})

	n := 0
	NewView2[position, velocity](w.Registry()).Each(func(got Entity, p *position, v *velocity) {
		n++
		assert.Equal(t, e, got)
		assert.Equal(t, 1.0, p.X)
		assert.Equal(t, 2.0, v.X)
	})
	assert.Equal(t, 1, n)
}

func TestViewMinToMax(t *testing.T) {
	w := NewWorld()
	values := 0
	for i := uint32(0); i < 100; i++ {
		e := w.Create()
		Assign(w, e, position{})
		if i&1 == 1 {
			Assign(w, e, velocity{})
		}
		if i&3 == 3 {
			Assign(w, e, value{})
			values++
		}
	}

	n := 0
	NewView3[position, velocity, value](w.Registry()).Each(func(Entity, *position, *velocity, *value) {
		n++
	})
	assert.Equal(t, values, n)
}

func TestViewDriverIsSmallestMap(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 10; i++ {
		e := w.Create()
		Assign(w, e, position{})
		if i < 3 {
			Assign(w, e, velocity{})
		}
	}
	v := NewView2[position, velocity](w.Registry())
	assert.Equal(t, 3, v.Len())
	assert.Same(t, Lookup[velocity](w.Registry()), v.drv[0])
}

func TestViewArgumentsFollowDeclarationOrder(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 5; i++ {
		e := w.Create()
		Assign(w, e, value{V: int(e.Index())})
		if i == 2 {
			Assign(w, e, position{X: float64(e.Index())})
		}
	}
	// position is the driver, but value still comes first
	NewView2[value, position](w.Registry()).Each(func(e Entity, v *value, p *position) {
		assert.Equal(t, int(e.Index()), v.V)
		assert.Equal(t, float64(e.Index()), p.X)
	})
}

func TestViewEnumeratesInDriverDenseOrder(t *testing.T) {
	w := NewWorld()
	es := make([]Entity, 4)
	w.CreateN(es)
	for _, e := range es {
		Assign(w, e, position{})
		Assign(w, e, velocity{})
	}
	Remove[position](w, es[0])

	var got []Entity
	NewView2[position, velocity](w.Registry()).Each(func(e Entity, _ *position, _ *velocity) {
		got = append(got, e)
	})
	assert.Equal(t, Lookup[position](w.Registry()).Entities(), got)
	assert.Equal(t, []Entity{es[3], es[1], es[2]}, got)
}

func TestViewIntersectionMatchesSetMath(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	w := NewWorld()
	want := map[Entity]bool{}
	for i := 0; i < 2000; i++ {
		e := w.Create()
		a, b, c := rng.Intn(2) == 0, rng.Intn(3) == 0, rng.Intn(5) != 0
		if a {
			Assign(w, e, position{})
		}
		if b {
			Assign(w, e, velocity{})
		}
		if c {
			Assign(w, e, value{})
		}
		if a && b && c {
			want[e] = true
		}
	}

	got := map[Entity]int{}
	NewView3[position, velocity, value](w.Registry()).Each(func(e Entity, _ *position, _ *velocity, _ *value) {
		got[e]++
	})
	assert.Len(t, got, len(want))
	for e, n := range got {
		assert.True(t, want[e], "unexpected %v", e)
		assert.Equal(t, 1, n, "visited %v more than once", e)
	}

	// the same set regardless of declaration order
	assert.Equal(t, len(want), NewView3[value, velocity, position](w.Registry()).Count())
}

func TestViewSingleAndFour(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 6; i++ {
		e := w.Create()
		Assign(w, e, position{})
		if i%2 == 0 {
			Assign(w, e, velocity{})
			Assign(w, e, value{})
			Assign(w, e, marker{})
		}
	}
	assert.Equal(t, 6, NewView1[position](w.Registry()).Count())
	assert.Equal(t, 3, NewView4[position, velocity, value, marker](w.Registry()).Count())

	n := 0
	NewView1[position](w.Registry()).Each(func(_ Entity, p *position) {
		p.X++
		n++
	})
	assert.Equal(t, 6, n)
	for _, p := range Lookup[position](w.Registry()).Values() {
		assert.Equal(t, 1.0, p.X)
	}
}

func TestViewOverEmptyMaps(t *testing.T) {
	w := NewWorld()
	w.Create()
	v := NewView2[position, velocity](w.Registry())
	assert.Equal(t, 0, v.Len())
	v.Each(func(Entity, *position, *velocity) { t.Fatal("no entity should match") })
}

func TestMutableViewEraseCurrentFromDriver(t *testing.T) {
	w := NewWorld()
	var all []Entity
	for i := 0; i < 50; i++ {
		e := w.Create()
		all = append(all, e)
		Assign(w, e, value{V: i})
		Assign(w, e, position{})
	}
	// make value the driver
	for _, e := range all[:10] {
		Remove[value](w, e)
	}

	visited := map[Entity]int{}
	NewMutableView2[value, position](w.Registry()).Each(func(e Entity, v *value, _ *position) {
		visited[e]++
		if v.V%2 == 0 {
			Remove[value](w, e)
		}
	})

	assert.Len(t, visited, 40)
	for e, n := range visited {
		assert.Equal(t, 1, n, "visited %v twice", e)
	}
	assert.Equal(t, 20, Lookup[value](w.Registry()).Len())
	for _, v := range Lookup[value](w.Registry()).Values() {
		assert.Equal(t, 1, v.V%2)
	}
	require.NoError(t, w.Check())
}

func TestMutableViewDestroyCurrent(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 30; i++ {
		e := w.Create()
		Assign(w, e, position{})
		Assign(w, e, velocity{})
	}
	n := 0
	NewMutableView2[position, velocity](w.Registry()).Each(func(e Entity, _ *position, _ *velocity) {
		n++
		w.Destroy(e)
	})
	assert.Equal(t, 30, n)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, Lookup[position](w.Registry()).Len())
	require.NoError(t, w.Check())
}

func TestMutableViewWalksBackToFront(t *testing.T) {
	w := NewWorld()
	es := make([]Entity, 3)
	w.CreateN(es)
	for _, e := range es {
		Assign(w, e, value{})
	}
	var got []Entity
	NewMutableView1[value](w.Registry()).Each(func(e Entity, _ *value) {
		got = append(got, e)
	})
	assert.Equal(t, []Entity{es[2], es[1], es[0]}, got)
}

func TestViewDriverFixedAtConstruction(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 4; i++ {
		e := w.Create()
		Assign(w, e, position{})
		if i < 2 {
			Assign(w, e, velocity{})
		}
	}
	v := NewView2[position, velocity](w.Registry())
	for i := 0; i < 10; i++ {
		Assign(w, w.Create(), velocity{})
	}
	// velocity is now the larger map but stays the driver
	assert.Same(t, Lookup[velocity](w.Registry()), v.drv[0])
	assert.Equal(t, []uint32{1, 2}, indices(collect2(v)))
}

func collect2[A, B any](v *View2[A, B]) []Entity {
	var out []Entity
	v.Each(func(e Entity, _ *A, _ *B) { out = append(out, e) })
	return out
}
