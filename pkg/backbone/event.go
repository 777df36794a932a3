package backbone

// Event is a message that can be fired into the backbone. Passive events
// may be fired at any time; everything else requires the backbone to be
// Idle, since dispatch replaces the location state while it runs.
type Event interface {
	IsPassive() bool
	TypeName() string
}

// Phase names where in the dispatch an event currently is.
type Phase int

const (
	// PhaseCreation is the instant before dispatch begins.
	PhaseCreation Phase = iota
	// PhasePropagation is the walk from the root down to the target.
	PhasePropagation
	// PhaseAction is evaluation by the target node itself.
	PhaseAction
	// PhaseBubbling is the walk back from the target up to the root.
	PhaseBubbling
)

func (p Phase) String() string {
	switch p {
	case PhaseCreation:
		return "Creation"
	case PhasePropagation:
		return "Propagation"
	case PhaseAction:
		return "Action"
	case PhaseBubbling:
		return "Bubbling"
	default:
		return "Unknown"
	}
}

// EventWrapper carries an Event through dispatch along with the flags that
// control how far it travels and the backbone-location state its handlers
// want to end up in.
type EventWrapper struct {
	event Event
	phase Phase

	canPropagate bool
	canDefault   bool
	canBubble    bool

	newState State
}

func newEventWrapper(event Event) *EventWrapper {
	return &EventWrapper{
		event:        event,
		phase:        PhaseCreation,
		canPropagate: true,
		canDefault:   true,
		canBubble:    true,
		newState:     StateIdle{},
	}
}

// Event returns the event being dispatched.
func (w *EventWrapper) Event() Event { return w.event }

// Phase returns the dispatch phase currently executing.
func (w *EventWrapper) Phase() Phase { return w.phase }

// PreventDefault stops the event from being evaluated by its target.
func (w *EventWrapper) PreventDefault() { w.canDefault = false }

// StopPropagation stops the event from flowing any further toward its
// target.
func (w *EventWrapper) StopPropagation() { w.canPropagate = false }

// StopBubbling stops the event from flowing any further back toward its
// source.
func (w *EventWrapper) StopBubbling() { w.canBubble = false }

// Stop halts propagation, the action phase, and bubbling all at once.
func (w *EventWrapper) Stop() {
	w.canPropagate = false
	w.canDefault = false
	w.canBubble = false
}

// SetNewState requests that the backbone adopt state once dispatch of this
// event (and any events it triggers in turn) finishes.
func (w *EventWrapper) SetNewState(state State) { w.newState = state }

// Context is the view of the backbone a Handler receives while processing
// an event: which node the event targets, which node is currently running,
// and access to components attached anywhere in the tree.
type Context struct {
	target  NodeID
	current NodeID
	path    []NodeID
	pathStr string
	b       *Backbone
}

// Target returns the node the event was fired at.
func (c *Context) Target() NodeID { return c.target }

// Current returns the node whose handler is running.
func (c *Context) Current() NodeID { return c.current }

// Path returns the resolved node path the event is travelling along, root
// first.
func (c *Context) Path() []NodeID { return c.path }

// PathString returns the "/"-separated name path the event is travelling
// along.
func (c *Context) PathString() string { return c.pathStr }

// Backbone returns the backbone the event belongs to, for component access
// via GetComponent/AttachComponent.
func (c *Context) Backbone() *Backbone { return c.b }

// FireEvent dispatches event starting at the backbone's current location.
// Non-passive events are dropped unless the backbone is Idle, since
// dispatch may itself request a new location state.
func (b *Backbone) FireEvent(event Event) {
	if !event.IsPassive() && !isIdle(b.state) {
		return
	}

	w := newEventWrapper(event)
	b.fireEventImpl(w, 0)

	if _, idle := w.newState.(StateIdle); idle {
		return
	}
	if b.state.canReplace() {
		b.state = w.newState
	}
}

func isIdle(s State) bool {
	_, ok := s.(StateIdle)
	return ok
}

func (b *Backbone) fireEventImpl(w *EventWrapper, depth int) {
	if len(b.path) == 0 {
		return
	}
	target := b.path[len(b.path)-1]

	b.firePropagate(w, target)
	b.fireAction(w, target)
	b.fireBubble(w, target)
	b.fireNext(w, depth)
}

func (b *Backbone) contextFor(target, current NodeID) *Context {
	return &Context{target: target, current: current, path: b.path, pathStr: b.pathStr, b: b}
}

func (b *Backbone) firePropagate(w *EventWrapper, target NodeID) {
	if !w.canPropagate {
		return
	}
	w.phase = PhasePropagation

	for _, id := range b.path {
		if h, ok := b.handlers[id]; ok {
			h.OnEvent(w, b.contextFor(target, id))
		}
		if !w.canPropagate {
			return
		}
	}
}

func (b *Backbone) fireAction(w *EventWrapper, target NodeID) {
	if !w.canDefault {
		return
	}
	w.phase = PhaseAction

	if h, ok := b.handlers[target]; ok {
		h.OnEvent(w, b.contextFor(target, target))
	}
}

func (b *Backbone) fireBubble(w *EventWrapper, target NodeID) {
	if !w.canBubble {
		return
	}
	w.phase = PhaseBubbling

	for i := len(b.path) - 1; i >= 0; i-- {
		id := b.path[i]
		if h, ok := b.handlers[id]; ok {
			h.OnEvent(w, b.contextFor(target, id))
		}
		if !w.canBubble {
			return
		}
	}
}

// fireNext lets a handler's requested StateFire trigger a follow-up event
// dispatch, capped at a shallow recursion depth as a backstop against
// handlers that fire each other forever.
func (b *Backbone) fireNext(w *EventWrapper, depth int) {
	for {
		fire, ok := w.newState.(StateFire)
		if !ok {
			return
		}
		if depth > 10 {
			return
		}

		w.newState = StateIdle{}

		sub := newEventWrapper(fire.Event)
		b.fireEventImpl(sub, depth+1)

		if !isIdle(sub.newState) {
			w.newState = sub.newState
		}
	}
}
