package scenario

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ecxx/sparsecs/internal/component"
	"github.com/ecxx/sparsecs/internal/core/ecs"
)

// Result summarizes a completed run.
type Result struct {
	Name    string
	Steps   int
	Checks  int
	Alive   int
	Created []ecs.Entity
}

type runner struct {
	world   *ecs.World
	catalog *component.Catalog
	log     *zap.Logger
	res     Result
}

// Run executes sc against w. It stops at the first failing step and returns
// an error naming it.
func Run(w *ecs.World, cat *component.Catalog, sc *Scenario, log *zap.Logger) (Result, error) {
	r := &runner{
		world:   w,
		catalog: cat,
		log:     log.With(zap.String("scenario", sc.Name)),
		res:     Result{Name: sc.Name},
	}
	for i, st := range sc.Steps {
		if err := r.step(st); err != nil {
			return r.res, fmt.Errorf("scenario %s: step %d (%s): %w", sc.Name, i+1, st.kind(), err)
		}
		r.res.Steps++
	}
	r.res.Alive = w.Len()
	r.log.Debug("scenario passed", zap.Int("steps", r.res.Steps), zap.Int("checks", r.res.Checks))
	return r.res, nil
}

func (r *runner) step(st Step) error {
	switch {
	case st.Create > 0:
		buf := make([]ecs.Entity, st.Create)
		r.world.CreateN(buf)
		r.res.Created = append(r.res.Created, buf...)
		return nil
	case st.Assign != nil:
		return r.assign(st.Assign)
	case st.Remove != nil:
		return r.remove(st.Remove)
	case len(st.Destroy) > 0:
		es, err := r.resolve(st.Destroy)
		if err != nil {
			return err
		}
		for _, e := range es {
			// An index listed twice is dead by its second turn.
			if !r.world.Valid(e) {
				return fmt.Errorf("entity %v is not alive", e)
			}
			r.world.Destroy(e)
		}
		return nil
	case len(st.Queue) > 0:
		es, err := r.resolve(st.Queue)
		if err != nil {
			return err
		}
		for _, e := range es {
			r.world.MarkForDestruction(e)
		}
		return nil
	case st.Flush:
		n := r.world.FlushDestroyQueue()
		r.log.Debug("flushed destroy queue", zap.Int("destroyed", n))
		return nil
	case st.Expect != nil:
		return r.expect(st.Expect)
	}
	return fmt.Errorf("empty step")
}

// resolve turns slot indices into the live handles occupying them.
func (r *runner) resolve(indices []uint32) ([]ecs.Entity, error) {
	pool := r.world.Pool()
	out := make([]ecs.Entity, len(indices))
	for i, idx := range indices {
		if !pool.IsAlive(idx) {
			return nil, fmt.Errorf("entity %d is not alive", idx)
		}
		out[i] = ecs.NewEntity(idx, pool.Current(idx))
	}
	return out, nil
}

func (r *runner) assign(t *Target) error {
	s, err := r.catalog.Ensure(r.world.Registry(), t.Component)
	if err != nil {
		return err
	}
	es, err := r.resolve(t.Entities)
	if err != nil {
		return err
	}
	for _, e := range es {
		if s.Has(e) {
			return fmt.Errorf("entity %v already has %s", e, t.Component)
		}
		s.EmplaceDefault(e)
	}
	return nil
}

func (r *runner) remove(t *Target) error {
	id, ok := r.catalog.Lookup(t.Component)
	if !ok {
		return fmt.Errorf("unknown component %q", t.Component)
	}
	es, err := r.resolve(t.Entities)
	if err != nil {
		return err
	}
	s := r.world.Registry().TryGet(id)
	for _, e := range es {
		if s == nil || !s.Has(e) {
			return fmt.Errorf("entity %v has no %s", e, t.Component)
		}
		s.Erase(e)
	}
	return nil
}

func (r *runner) expect(x *Expect) error {
	r.res.Checks++
	if x.Alive != nil && r.world.Len() != *x.Alive {
		return fmt.Errorf("alive: got %d, want %d", r.world.Len(), *x.Alive)
	}
	for idx, want := range x.Generation {
		if int(idx) >= r.world.Pool().Slots() {
			return fmt.Errorf("generation of %d: slot never allocated", idx)
		}
		if got := r.world.Pool().Current(idx); got != want {
			return fmt.Errorf("generation of %d: got %d, want %d", idx, got, want)
		}
	}
	if len(x.View) == 0 {
		if x.Entities != nil || x.Count != nil {
			return fmt.Errorf("entities or count given without a view")
		}
		return nil
	}
	ids, err := r.catalog.IDs(x.View...)
	if err != nil {
		return err
	}
	var got []uint32
	r.world.RuntimeView(ids...).Each(func(e ecs.Entity) {
		got = append(got, e.Index())
	})
	if x.Count != nil && len(got) != *x.Count {
		return fmt.Errorf("view %v: got %d matches, want %d", x.View, len(got), *x.Count)
	}
	if x.Entities != nil {
		want := append([]uint32(nil), x.Entities...)
		sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
		if !equalIndices(got, want) {
			return fmt.Errorf("view %v: got %v, want %v", x.View, got, want)
		}
	}
	return nil
}

func equalIndices(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
