package ecs

import (
	"fmt"
	"strconv"
)

// Entity identifies an entity in a World. Identifiers are generational:
// once an entity is despawned its identifier never becomes alive again,
// even if the slot is reused.
type Entity struct {
	index      uint32
	generation uint32
}

// Null is the zero Entity. It is never allocated and stands for "no entity".
var Null Entity

// Index returns the storage slot of the entity.
func (e Entity) Index() uint32 {
	return e.index
}

// Generation returns how many times the slot has been allocated.
func (e Entity) Generation() uint32 {
	return e.generation
}

// IsNull reports whether e is the Null entity.
func (e Entity) IsNull() bool {
	return e.generation == 0
}

func (e Entity) String() string {
	if e.IsNull() {
		return "null"
	}
	return strconv.FormatUint(uint64(e.index), 10) + "v" + strconv.FormatUint(uint64(e.generation), 10)
}

// NoSuchEntityError is raised when an operation targets an entity that is not
// alive in the world.
type NoSuchEntityError struct {
	Op     string
	Entity Entity
}

func (e *NoSuchEntityError) Error() string {
	return fmt.Sprintf("ecs: %s: entity %s does not exist", e.Op, e.Entity)
}

// Cloner is implemented by components that hold reference types and must not
// share them with the value they were inserted from.
type Cloner interface {
	CloneComponent() any
}

// Bundle groups components that are inserted together. Nested bundles are
// flattened on insert.
type Bundle []any
