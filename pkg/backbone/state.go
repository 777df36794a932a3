package backbone

import "strings"

// PathChangeKind names the single step update_path produces on the way
// toward a target path.
type PathChangeKind int

const (
	// ToRoot means the backbone is not currently located anywhere and must
	// jump to the root node first.
	ToRoot PathChangeKind = iota
	// ToSelf means the path segment was "./" and resolves to a no-op step.
	ToSelf
	// ToSuper means the backbone must move up to its current node's parent.
	ToSuper
	// ToNode means the backbone must descend into the named child.
	ToNode
	// PathError means the path could not be resolved further.
	PathError
	// End means the destination has been fully resolved.
	End
)

// PathChange is one incremental step toward a destination path, plus the
// data that step carries.
type PathChange struct {
	Kind PathChangeKind
	Node NodeID // valid when Kind == ToNode
	Err  string // valid when Kind == PathError
}

// updatePath computes the next single step toward dstPath, resuming the
// scan at dstOffset, given the path of node ids currently resolved
// (srcPath, root first). It returns the step to take and the offset to
// resume parsing from on the following call. A full resolution is driven
// by calling this repeatedly, applying each step to srcPath in turn, until
// it returns End or PathError.
func (b *Backbone) updatePath(dstPath string, dstOffset int, srcPath []NodeID) (PathChange, int) {
	if len(srcPath) == 0 {
		return PathChange{Kind: ToRoot}, dstOffset
	}

	// Parsing of the starting anchor only happens once, at offset 0.
	if dstOffset == 0 {
		if strings.HasPrefix(dstPath, "/") {
			// Bubble until the current location is the root.
			if len(srcPath) > 1 {
				return PathChange{Kind: ToSuper}, dstOffset
			}
			dstOffset++
		}

		if strings.HasPrefix(dstPath, "./") {
			return PathChange{Kind: ToSelf}, dstOffset + 2
		}

		if strings.HasPrefix(dstPath, "../") {
			return PathChange{Kind: ToSuper}, dstOffset + 3
		}
	}

	path := dstPath[dstOffset:]

	if len(path) == 0 {
		return PathChange{Kind: End}, dstOffset
	}

	for strings.HasPrefix(path, "/") {
		dstOffset++
		path = path[1:]
	}

	if strings.HasPrefix(path, "./") {
		return PathChange{Kind: ToSelf}, dstOffset + 2
	}

	if strings.HasPrefix(path, "../") {
		return PathChange{Kind: ToSuper}, dstOffset + 3
	}

	current := srcPath[len(srcPath)-1]

	end := strings.IndexByte(path, '/')
	if end == -1 {
		end = len(path)
	}
	name := path[:end]

	next, ok := b.findChild(current, name)
	if !ok {
		return PathChange{Kind: PathError, Err: "could not find node: " + name}, dstOffset
	}

	return PathChange{Kind: ToNode, Node: next}, dstOffset + end
}

func (b *Backbone) findChild(parent NodeID, name string) (NodeID, bool) {
	for id, n := range b.nodes {
		if n.Parent == parent && n.Name == name {
			return id, true
		}
	}
	return 0, false
}

// State describes what the backbone's location cursor is currently doing.
type State interface {
	canReplace() bool
}

// StateIdle is the resting state: no move, stop, or event is in flight.
type StateIdle struct{}

func (StateIdle) canReplace() bool { return true }

// StateMove is mid-resolution of a path set via SetLocation, tracking the
// full destination path string and how much of it has been parsed so far.
type StateMove struct {
	Path   string
	Offset int
}

func (StateMove) canReplace() bool { return false }

// StateStop records that location resolution halted with reason (empty for
// a clean stop).
type StateStop struct {
	Reason string
}

func (StateStop) canReplace() bool { return false }

// StateFire is a follow-up event a handler requests through
// EventWrapper.SetNewState; fireNext dispatches it once the current event
// has finished bubbling.
type StateFire struct {
	Event Event
}

func (StateFire) canReplace() bool { return false }
