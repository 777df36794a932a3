// Package backbone implements the routing-tree event substrate: a tree of
// named nodes, each with typed components and an optional handler, a
// current-location path into that tree, and an event dispatcher that walks
// the path down to a target and back up again.
package backbone

// NodeID identifies a node in the backbone tree. The root node is always
// id 0; every other node gets the next id in creation order.
type NodeID int

// RootID is the node id reserved for the tree's root.
const RootID NodeID = 0

// Node is a single entry in the backbone tree: its own id, its name (unique
// only among its siblings), and its parent's id. The root is its own
// parent.
type Node struct {
	ID     NodeID
	Name   string
	Parent NodeID
}

// Handler is the code attached to a backbone node that receives dispatched
// events for as long as the node exists.
type Handler interface {
	OnEvent(event *EventWrapper, ctx *Context)
}

// CreateNode adds a new node named name as a child of parent, attaching
// handler (which may be nil) to it. It fails if parent does not exist.
func (b *Backbone) CreateNode(parent NodeID, name string, handler Handler) (NodeID, error) {
	if _, ok := b.nodes[parent]; !ok {
		return 0, errParentUnknown(parent)
	}

	b.counter++
	id := b.counter
	b.nodes[id] = Node{ID: id, Name: name, Parent: parent}

	if handler != nil {
		b.handlers[id] = handler
	}
	return id, nil
}

// SetRootHandler attaches (or replaces) the handler on the root node.
func (b *Backbone) SetRootHandler(h Handler) {
	b.handlers[b.rootID] = h
}

// RootID returns the id of the tree's root node.
func (b *Backbone) RootID() NodeID {
	return b.rootID
}

// pathToString renders a node-id path as a "/"-separated name string, the
// root itself contributing nothing (its name is always empty).
func (b *Backbone) pathToString(path []NodeID) (string, bool) {
	var s []byte
	for _, id := range path[1:] {
		n, ok := b.nodes[id]
		if !ok {
			return "", false
		}
		s = append(s, '/')
		s = append(s, n.Name...)
	}
	if len(s) == 0 && len(path) > 0 {
		s = append(s, '/')
	}
	return string(s), true
}
