package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ecxx/sparsecs/internal/component"
	"github.com/ecxx/sparsecs/internal/core/ecs"
)

func run(t *testing.T, doc string) (Result, error) {
	t.Helper()
	sc, err := Parse([]byte(doc))
	require.NoError(t, err)
	return Run(ecs.NewWorld(), component.Default(), sc, zap.NewNop())
}

func TestRunRecycleScenario(t *testing.T) {
	res, err := run(t, `
name: recycle
steps:
  - create: 5
  - assign: {component: position, entities: [1, 3, 5]}
  - assign: {component: velocity, entities: [3, 4, 5]}
  - expect: {view: [position, velocity], entities: [5, 3]}
  - destroy: [3]
  - create: 1
  - expect: {view: [position, velocity], entities: [5], generation: {3: 1}}
`)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Steps)
	assert.Equal(t, 2, res.Checks)
	assert.Equal(t, 5, res.Alive)
	require.Len(t, res.Created, 6)
	assert.Equal(t, ecs.NewEntity(3, 1), res.Created[5])
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "wrong expectation",
			doc:  "name: x\nsteps:\n  - create: 2\n  - assign: {component: tag, entities: [1]}\n  - expect: {view: [tag], entities: [2]}\n",
			want: "step 3 (expect)",
		},
		{
			name: "unknown component",
			doc:  "name: x\nsteps:\n  - create: 1\n  - assign: {component: mana, entities: [1]}\n",
			want: `"mana"`,
		},
		{
			name: "dead entity",
			doc:  "name: x\nsteps:\n  - create: 1\n  - destroy: [1]\n  - destroy: [1]\n",
			want: "not alive",
		},
		{
			name: "index destroyed twice in one step",
			doc:  "name: x\nsteps:\n  - create: 5\n  - destroy: [3, 3]\n",
			want: "entity 3:0 is not alive",
		},
		{
			name: "double assign",
			doc:  "name: x\nsteps:\n  - create: 1\n  - assign: {component: tag, entities: [1]}\n  - assign: {component: tag, entities: [1]}\n",
			want: "already has",
		},
		{
			name: "remove absent",
			doc:  "name: x\nsteps:\n  - create: 1\n  - remove: {component: tag, entities: [1]}\n",
			want: "has no tag",
		},
		{
			name: "count mismatch",
			doc:  "name: x\nsteps:\n  - create: 3\n  - expect: {alive: 2}\n",
			want: "alive: got 3, want 2",
		},
		{
			name: "generation of unknown slot",
			doc:  "name: x\nsteps:\n  - expect: {generation: {9: 0}}\n",
			want: "never allocated",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.doc)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseRejectsAmbiguousSteps(t *testing.T) {
	_, err := Parse([]byte("name: x\nsteps:\n  - create: 1\n    flush: true\n"))
	assert.ErrorContains(t, err, "2 operations")

	_, err = Parse([]byte("steps: []\n"))
	assert.ErrorContains(t, err, "no name")

	_, err = Parse([]byte("name: [\n"))
	assert.ErrorContains(t, err, "parse scenario")
}

func TestLoadDirRunsShippedScenarios(t *testing.T) {
	scs, err := LoadDir(filepath.Join("..", "..", "data", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, scs)
	for _, sc := range scs {
		t.Run(sc.Name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := Run(w, component.Default(), sc, zap.NewNop())
			require.NoError(t, err)
			require.NoError(t, w.Check())
		})
	}
}

func TestLoadDirSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("name: b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	scs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, scs, 2)
	assert.Equal(t, "a", scs[0].Name)
	assert.Equal(t, filepath.Join(dir, "a.yaml"), scs[0].Path())

	none, err := LoadDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepeatedDestroyLeavesPoolIntact(t *testing.T) {
	sc, err := Parse([]byte("name: x\nsteps:\n  - create: 5\n  - destroy: [3, 3]\n"))
	require.NoError(t, err)
	w := ecs.NewWorld()
	_, err = Run(w, component.Default(), sc, zap.NewNop())
	require.Error(t, err)

	assert.False(t, w.Pool().IsAlive(3))
	assert.Equal(t, 4, w.Len())
	require.NoError(t, w.Check())
}
