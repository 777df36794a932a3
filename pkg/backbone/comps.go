package backbone

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors returned by the backbone's path and component lookups.
var (
	ErrPathIsNull     = errors.New("backbone: path is null")
	ErrNotFound       = errors.New("backbone: not found")
	ErrCannotDowncast = errors.New("backbone: component cannot be downcast to requested type")
)

func errParentUnknown(id NodeID) error {
	return fmt.Errorf("backbone: %w: parent node %d", ErrNotFound, id)
}

// Component marks a type that can be attached to a backbone node. Any type
// may implement it; there is nothing to satisfy beyond being a concrete,
// comparable-by-reflect.Type value.
type Component interface{}

// componentType recovers the static type of the generic parameter C without
// requiring a live value of it, by boxing a zero value of C behind a
// pointer and asking reflect for the pointee's type.
func componentType[C Component]() reflect.Type {
	var zero C
	return reflect.TypeOf(&zero).Elem()
}

// AttachComponent stores c on node, replacing any existing component of the
// same concrete type already attached there.
func AttachComponent[C Component](b *Backbone, node NodeID, c C) error {
	if _, ok := b.nodes[node]; !ok {
		return errParentUnknown(node)
	}

	m, ok := b.components[node]
	if !ok {
		m = make(map[reflect.Type]Component)
		b.components[node] = m
	}
	m[componentType[C]()] = c
	return nil
}

// RemoveComponent detaches the component of type C from node, if any.
func RemoveComponent[C Component](b *Backbone, node NodeID) {
	m, ok := b.components[node]
	if !ok {
		return
	}
	delete(m, componentType[C]())
}

// GetComponent returns the component of type C attached directly to node.
func GetComponent[C Component](b *Backbone, node NodeID) (C, error) {
	var zero C
	m, ok := b.components[node]
	if !ok {
		return zero, ErrNotFound
	}
	v, ok := m[componentType[C]()]
	if !ok {
		return zero, ErrNotFound
	}
	c, ok := v.(C)
	if !ok {
		return zero, ErrCannotDowncast
	}
	return c, nil
}

// GetComponentHere returns the component of type C attached to node, or to
// its nearest ancestor that carries one, walking up toward the root.
func GetComponentHere[C Component](b *Backbone, node NodeID) (C, error) {
	cur := node
	for {
		if c, err := GetComponent[C](b, cur); err == nil {
			return c, nil
		}

		n, ok := b.nodes[cur]
		if !ok || cur == b.rootID {
			break
		}
		cur = n.Parent
	}

	var zero C
	return zero, ErrNotFound
}
