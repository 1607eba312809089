package scripting

import (
	"math"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/ecxx/sparsecs/internal/core/ecs"
)

// Entities cross into Lua as the packed handle number. Every call that takes
// one rejects handles that are not alive, so a stale handle from a recycled
// slot raises a Lua error instead of touching the new occupant.

// checkHandle reads argument n as a handle number. Anything that does not fit
// a handle exactly is rejected rather than truncated onto another entity.
func checkHandle(L *lua.LState, n int) ecs.Entity {
	v := float64(L.CheckNumber(n))
	if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
		L.ArgError(n, "not an entity handle")
	}
	return ecs.Entity(v)
}

func (e *Engine) checkEntity(L *lua.LState, n int) ecs.Entity {
	ent := checkHandle(L, n)
	if !e.world.Valid(ent) {
		L.ArgError(n, "entity "+ent.String()+" is not alive")
	}
	return ent
}

func (e *Engine) checkStorage(L *lua.LState, n int) ecs.Storage {
	name := L.CheckString(n)
	s, err := e.catalog.Ensure(e.world.Registry(), name)
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return s
}

// checkNames reads a table of component names and resolves it to type ids.
func (e *Engine) checkNames(L *lua.LState, n int) []ecs.TypeID {
	tbl := L.CheckTable(n)
	var names []string
	tbl.ForEach(func(_, v lua.LValue) {
		names = append(names, lua.LVAsString(v))
	})
	ids, err := e.catalog.IDs(names...)
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return ids
}

func pushEntity(L *lua.LState, ent ecs.Entity) {
	L.Push(lua.LNumber(ent))
}

// ecs.create([n]) returns one handle, or a table of n handles.
func (e *Engine) luaCreate(L *lua.LState) int {
	if L.GetTop() == 0 {
		pushEntity(L, e.world.Create())
		return 1
	}
	n := L.CheckInt(1)
	if n < 0 {
		L.ArgError(1, "negative count")
	}
	buf := make([]ecs.Entity, n)
	e.world.CreateN(buf)
	out := L.CreateTable(n, 0)
	for _, ent := range buf {
		out.Append(lua.LNumber(ent))
	}
	L.Push(out)
	return 1
}

func (e *Engine) luaDestroy(L *lua.LState) int {
	e.world.Destroy(e.checkEntity(L, 1))
	return 0
}

func (e *Engine) luaAlive(L *lua.LState) int {
	L.Push(lua.LBool(e.world.Valid(checkHandle(L, 1))))
	return 1
}

func (e *Engine) luaIndex(L *lua.LState) int {
	L.Push(lua.LNumber(checkHandle(L, 1).Index()))
	return 1
}

func (e *Engine) luaGeneration(L *lua.LState) int {
	L.Push(lua.LNumber(checkHandle(L, 1).Generation()))
	return 1
}

func (e *Engine) luaAssign(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	s := e.checkStorage(L, 2)
	if s.Has(ent) {
		L.RaiseError("entity %s already has %s", ent, L.CheckString(2))
	}
	s.EmplaceDefault(ent)
	return 0
}

func (e *Engine) luaRemove(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	s := e.checkStorage(L, 2)
	if !s.Has(ent) {
		L.RaiseError("entity %s has no %s", ent, L.CheckString(2))
	}
	s.Erase(ent)
	return 0
}

// ecs.has(e, name) never creates the map.
func (e *Engine) luaHas(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	id, ok := e.catalog.Lookup(L.CheckString(2))
	if !ok {
		L.ArgError(2, "unknown component "+L.CheckString(2))
	}
	L.Push(lua.LBool(e.world.Wrap(ent).Has(id)))
	return 1
}

// ecs.count() returns the live entity count; ecs.count(names) the number of
// entities holding every named component.
func (e *Engine) luaCount(L *lua.LState) int {
	if L.GetTop() == 0 {
		L.Push(lua.LNumber(e.world.Len()))
		return 1
	}
	L.Push(lua.LNumber(e.world.RuntimeView(e.checkNames(L, 1)...).Count()))
	return 1
}

func (e *Engine) luaView(L *lua.LState) int {
	return e.walk(L, e.world.RuntimeView(e.checkNames(L, 1)...))
}

func (e *Engine) luaViewMutable(L *lua.LState) int {
	return e.walk(L, e.world.MutableRuntimeView(e.checkNames(L, 1)...))
}

// walk calls the function at argument 2 for each entity of v. Returning
// false from it stops the walk early.
func (e *Engine) walk(L *lua.LState, v ecs.RuntimeView) int {
	fn := L.CheckFunction(2)
	visited := 0
	stop := false
	v.Each(func(ent ecs.Entity) {
		if stop {
			return
		}
		L.Push(fn)
		pushEntity(L, ent)
		L.Call(1, 1)
		ret := L.Get(-1)
		L.Pop(1)
		visited++
		stop = ret == lua.LFalse
	})
	L.Push(lua.LNumber(visited))
	return 1
}

func (e *Engine) luaQueueDestroy(L *lua.LState) int {
	e.world.MarkForDestruction(e.checkEntity(L, 1))
	return 0
}

func (e *Engine) luaFlush(L *lua.LState) int {
	L.Push(lua.LNumber(e.world.FlushDestroyQueue()))
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}
