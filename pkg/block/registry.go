// Package block implements the block registry: the mapping from stable
// names to the small dense integer ids the rest of the runtime addresses
// blocks by.
package block

import "fmt"

// ID is the opaque 16-bit integer identifying a block type. Id 0 is always
// Air. Equality between two IDs is plain integer equality.
type ID uint16

// AirID is the identifier reserved for the empty block.
const AirID ID = 0

// State is a block's runtime value: its type id plus a placeholder for
// future per-instance data. Equality between two States only ever compares
// ID; Data is carried along for forward compatibility but has no defined
// semantics yet.
type State struct {
	ID   ID
	Data uint32
}

// Equal reports whether two states are equal, per the id-only equality rule.
func (s State) Equal(other State) bool {
	return s.ID == other.ID
}

// AirState is the default state of an empty cell.
var AirState = State{ID: AirID}

// Type describes a registered block type: its id, its unique name, and the
// state new cells of this type start in.
type Type struct {
	ID           ID
	Name         string
	DefaultState State
}

// Registry assigns dense integer ids to named block types at startup. It is
// built once and then treated as immutable for the remainder of the
// process's life, matching the baking of block models against it.
type Registry struct {
	byID   []Type
	byName map[string]ID
}

// NewRegistry returns a registry pre-populated with the Air type at id 0, as
// required by the data model (identifier 0 is always reserved for air).
func NewRegistry() *Registry {
	r := &Registry{
		byID:   make([]Type, 0, 16),
		byName: make(map[string]ID, 16),
	}
	air := Type{ID: AirID, Name: "air", DefaultState: AirState}
	r.byID = append(r.byID, air)
	r.byName["air"] = AirID
	return r
}

// Register assigns the next dense id to a new block type by name and
// returns the full Type record. A duplicate name is a fatal configuration
// error: the registry is built once at startup and a colliding name means
// the caller's block list is wrong.
func (r *Registry) Register(name string) (Type, error) {
	if _, exists := r.byName[name]; exists {
		return Type{}, fmt.Errorf("block: duplicate block name %q", name)
	}

	id := ID(len(r.byID))
	t := Type{
		ID:           id,
		Name:         name,
		DefaultState: State{ID: id},
	}
	r.byID = append(r.byID, t)
	r.byName[name] = id
	return t, nil
}

// MustRegister is Register but panics on failure, for startup code building
// a fixed block list where a name collision is a programmer error.
func (r *Registry) MustRegister(name string) Type {
	t, err := r.Register(name)
	if err != nil {
		panic(err)
	}
	return t
}

// ByID looks up a block type by its id. ok is false when id is out of the
// dense range the registry has assigned.
func (r *Registry) ByID(id ID) (Type, bool) {
	if int(id) < 0 || int(id) >= len(r.byID) {
		return Type{}, false
	}
	return r.byID[id], true
}

// ByName looks up a block type by its registered name.
func (r *Registry) ByName(name string) (Type, bool) {
	id, ok := r.byName[name]
	if !ok {
		return Type{}, false
	}
	return r.byID[id], true
}

// DefaultState returns the default state for a block id, or AirState if the
// id is unknown. This is the preferred way to produce "a cell of type X".
func (r *Registry) DefaultState(id ID) State {
	t, ok := r.ByID(id)
	if !ok {
		return AirState
	}
	return t.DefaultState
}

// Len returns the number of registered block types, including air.
func (r *Registry) Len() int {
	return len(r.byID)
}

// IsAir reports whether the given id is the air id.
func IsAir(id ID) bool {
	return id == AirID
}
