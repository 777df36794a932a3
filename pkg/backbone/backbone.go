package backbone

import (
	"fmt"
	"reflect"
)

// Backbone is a tree of named nodes, each carrying typed components and an
// optional handler, plus a single location cursor that resolves
// incrementally toward a target path and an event dispatcher that walks
// the resolved path down and back up again.
type Backbone struct {
	rootID  NodeID
	counter NodeID

	nodes      map[NodeID]Node
	components map[NodeID]map[reflect.Type]Component
	handlers   map[NodeID]Handler

	path    []NodeID
	pathStr string
	state   State
}

// New returns a backbone with nothing but a root node, an unresolved
// location, and an Idle state.
func New() *Backbone {
	root := RootID
	return &Backbone{
		rootID:     root,
		nodes:      map[NodeID]Node{root: {ID: root, Name: "", Parent: root}},
		components: make(map[NodeID]map[reflect.Type]Component),
		handlers:   make(map[NodeID]Handler),
		state:      StateIdle{},
	}
}

// SetLocation requests that the location cursor move to path (a
// "/"-separated node-name path, resolved incrementally by Update). It
// fails if the backbone is mid-move, mid-stop, or mid-event already.
func (b *Backbone) SetLocation(path string) error {
	if !b.state.canReplace() {
		return fmt.Errorf("backbone: cannot set location while state is %T", b.state)
	}
	b.state = StateMove{Path: path, Offset: 0}
	return nil
}

// LocationPath returns the currently resolved node path, root first.
func (b *Backbone) LocationPath() []NodeID {
	return b.path
}

// LocationNode returns the node the cursor currently rests on, or
// ErrPathIsNull if the location has not resolved to anything yet.
func (b *Backbone) LocationNode() (NodeID, error) {
	if len(b.path) == 0 {
		return 0, ErrPathIsNull
	}
	return b.path[len(b.path)-1], nil
}

// LocationString returns the "/"-separated name path the cursor currently
// rests on.
func (b *Backbone) LocationString() string {
	return b.pathStr
}

// State returns the backbone's current location-cursor state.
func (b *Backbone) State() State {
	return b.state
}

// Stop halts any in-progress move and puts the backbone in StateStop, which
// is terminal: SetLocation rejects every later request, Update returns
// false, and non-passive events are dropped. Passive events still dispatch.
func (b *Backbone) Stop() {
	b.state = StateStop{}
}

// Update advances the location cursor by exactly one resolution step. It
// returns false only when the backbone is in a Stop state and there is
// nothing further to do.
func (b *Backbone) Update() bool {
	if _, stopped := b.state.(StateStop); stopped {
		return false
	}

	if len(b.path) == 0 && b.state.canReplace() {
		b.state = StateMove{Path: "/", Offset: 0}
	}

	mv, ok := b.state.(StateMove)
	if !ok {
		return true
	}

	step, newOffset := b.updatePath(mv.Path, mv.Offset, b.path)
	oldLen := len(b.path)

	var newState State
	switch step.Kind {
	case ToRoot:
		b.path = append(b.path[:0], b.rootID)
	case ToSelf:
		// no-op: "./" resolves to the current node.
	case ToSuper:
		if len(b.path) > 0 {
			b.path = b.path[:len(b.path)-1]
		}
	case ToNode:
		b.path = append(b.path, step.Node)
	case PathError:
		newState = StateStop{Reason: "failed to change path: " + step.Err}
	case End:
		newState = StateIdle{}
	}

	if len(b.path) != oldLen {
		if s, ok := b.pathToString(b.path); ok {
			b.pathStr = s
		}
	}

	if newState != nil {
		b.state = newState
	} else {
		b.state = StateMove{Path: mv.Path, Offset: newOffset}
	}

	return true
}

// UpdateUntilIdle calls Update repeatedly until the backbone reaches the
// Idle state (a resolved location, no dispatch in flight), or until it
// reaches a Stop state (for example after a path that fails to resolve).
func (b *Backbone) UpdateUntilIdle() {
	for {
		b.Update()
		if _, idle := b.state.(StateIdle); idle {
			return
		}
		if _, stopped := b.state.(StateStop); stopped {
			return
		}
	}
}
