package ecs

import (
	"reflect"
	"sync"
)

// TypeID identifies a component type. IDs are handed out in first-request
// order and are shared by every World in the process.
type TypeID uint32

var typeIDs = struct {
	mu  sync.Mutex
	ids map[reflect.Type]TypeID
}{ids: make(map[reflect.Type]TypeID)}

// TypeOf returns T's component id, assigning the next one on first use.
func TypeOf[T any]() TypeID {
	t := reflect.TypeOf((*T)(nil)).Elem()
	typeIDs.mu.Lock()
	defer typeIDs.mu.Unlock()
	id, ok := typeIDs.ids[t]
	if !ok {
		id = TypeID(len(typeIDs.ids))
		typeIDs.ids[t] = id
	}
	return id
}
