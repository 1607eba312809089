package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/ecxx/sparsecs/internal/component"
	"github.com/ecxx/sparsecs/internal/core/ecs"
)

// Engine wraps a single gopher-lua VM bound to one World.
// Single-goroutine access only, like the World itself.
type Engine struct {
	vm      *lua.LState
	world   *ecs.World
	catalog *component.Catalog
	log     *zap.Logger
}

// NewEngine creates a VM with the ecs table installed.
func NewEngine(w *ecs.World, cat *component.Catalog, log *zap.Logger) *Engine {
	vm := lua.NewState()
	e := &Engine{vm: vm, world: w, catalog: cat, log: log}

	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("ecs", vm.SetFuncs(vm.NewTable(), map[string]lua.LGFunction{
		"create":        e.luaCreate,
		"destroy":       e.luaDestroy,
		"alive":         e.luaAlive,
		"index":         e.luaIndex,
		"generation":    e.luaGeneration,
		"assign":        e.luaAssign,
		"remove":        e.luaRemove,
		"has":           e.luaHas,
		"count":         e.luaCount,
		"view":          e.luaView,
		"view_mutable":  e.luaViewMutable,
		"queue_destroy": e.luaQueueDestroy,
		"flush":         e.luaFlush,
		"log":           e.luaLog,
	}))
	return e
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

func (e *Engine) DoFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("ran lua script", zap.String("file", path))
	return nil
}

// RunDir runs every .lua file in dir in file name order and returns how
// many ran. A missing directory runs nothing.
func (e *Engine) RunDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	n := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.DoFile(filepath.Join(dir, entry.Name())); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Global returns a global from the VM, for callers reading script results.
func (e *Engine) Global(name string) lua.LValue {
	return e.vm.GetGlobal(name)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
