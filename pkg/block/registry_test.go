package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryReservesAirAtZero(t *testing.T) {
	r := NewRegistry()

	air, ok := r.ByID(AirID)
	require.True(t, ok)
	assert.Equal(t, "air", air.Name)
	assert.Equal(t, AirID, air.ID)
}

func TestRegisterAssignsDenseIDs(t *testing.T) {
	r := NewRegistry()

	stone := r.MustRegister("stone")
	dirt := r.MustRegister("dirt")

	assert.Equal(t, ID(1), stone.ID)
	assert.Equal(t, ID(2), dirt.ID)
	assert.Equal(t, 3, r.Len())
}

func TestRegisterDuplicateNameFails(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("stone")

	_, err := r.Register("stone")
	assert.Error(t, err)
}

func TestByNameAndByID(t *testing.T) {
	r := NewRegistry()
	stone := r.MustRegister("stone")

	byName, ok := r.ByName("stone")
	require.True(t, ok)
	assert.Equal(t, stone.ID, byName.ID)

	byID, ok := r.ByID(stone.ID)
	require.True(t, ok)
	assert.Equal(t, "stone", byID.Name)

	_, ok = r.ByName("nonexistent")
	assert.False(t, ok)
}

func TestStateEqualityIsIDOnly(t *testing.T) {
	a := State{ID: 3, Data: 1}
	b := State{ID: 3, Data: 99}
	c := State{ID: 4, Data: 1}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestDefaultStateFallsBackToAir(t *testing.T) {
	r := NewRegistry()
	stone := r.MustRegister("stone")

	assert.Equal(t, stone.ID, r.DefaultState(stone.ID).ID)
	assert.Equal(t, AirState, r.DefaultState(ID(999)))
}
