package backbone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLocationResolvesIncrementallyOneStepPerUpdate(t *testing.T) {
	b := New()
	a, err := b.CreateNode(b.RootID(), "a", nil)
	require.NoError(t, err)
	leaf, err := b.CreateNode(a, "b", nil)
	require.NoError(t, err)

	require.NoError(t, b.SetLocation("/a/b"))

	b.Update()
	assert.Equal(t, []NodeID{b.RootID()}, b.LocationPath(), "first update resolves the implicit ToRoot step")

	b.Update()
	assert.Equal(t, []NodeID{b.RootID(), a}, b.LocationPath())

	b.Update()
	assert.Equal(t, []NodeID{b.RootID(), a, leaf}, b.LocationPath())

	b.Update()
	assert.Equal(t, "/a/b", b.LocationString())
	_, idle := b.State().(StateIdle)
	assert.True(t, idle, "resolution ends in the Idle state")
}

func TestUpdateUntilIdleResolvesAFreshLocationInOnePass(t *testing.T) {
	b := New()
	a, err := b.CreateNode(b.RootID(), "a", nil)
	require.NoError(t, err)
	_, err = b.CreateNode(a, "b", nil)
	require.NoError(t, err)

	require.NoError(t, b.SetLocation("/a/b"))
	b.UpdateUntilIdle()

	assert.Equal(t, "/a/b", b.LocationString())
	node, err := b.LocationNode()
	require.NoError(t, err)
	assert.NotEqual(t, b.RootID(), node)
}

type recordingHandler struct {
	name     string
	log      *[]string
	onAction func(w *EventWrapper)
}

func (h *recordingHandler) OnEvent(w *EventWrapper, ctx *Context) {
	*h.log = append(*h.log, h.name+"."+w.Phase().String())
	if h.onAction != nil && w.Phase() == PhaseAction {
		h.onAction(w)
	}
}

type pingEvent struct{}

func (pingEvent) IsPassive() bool  { return false }
func (pingEvent) TypeName() string { return "ping" }

func TestFireEventStopsBubblingFromTheActionPhase(t *testing.T) {
	b := New()

	var log []string
	rootHandler := &recordingHandler{name: "r", log: &log}
	b.SetRootHandler(rootHandler)

	a, err := b.CreateNode(b.RootID(), "a", &recordingHandler{name: "a", log: &log})
	require.NoError(t, err)

	target, err := b.CreateNode(a, "t", nil)
	require.NoError(t, err)
	targetHandler := &recordingHandler{
		name: "t",
		log:  &log,
		onAction: func(w *EventWrapper) {
			w.StopBubbling()
		},
	}
	b.handlers[target] = targetHandler

	require.NoError(t, b.SetLocation("/a/t"))
	b.UpdateUntilIdle()

	b.FireEvent(pingEvent{})

	assert.Equal(t, []string{
		"r." + PhasePropagation.String(),
		"a." + PhasePropagation.String(),
		"t." + PhasePropagation.String(),
		"t." + PhaseAction.String(),
	}, log, "stopping bubbling during the action phase must suppress every bubbling-phase call, including the target's own")
}

func TestGetComponentFindsNearestAncestor(t *testing.T) {
	type tag struct{ value string }

	b := New()
	a, err := b.CreateNode(b.RootID(), "a", nil)
	require.NoError(t, err)
	leaf, err := b.CreateNode(a, "b", nil)
	require.NoError(t, err)

	require.NoError(t, AttachComponent(b, a, tag{value: "from-a"}))

	got, err := GetComponentHere[tag](b, leaf)
	require.NoError(t, err)
	assert.Equal(t, "from-a", got.value)

	_, err = GetComponent[tag](b, leaf)
	assert.ErrorIs(t, err, ErrNotFound, "GetComponent (unlike GetComponentHere) must not search ancestors")
}
