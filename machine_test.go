package hsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMachine(t *testing.T) {
	require := require.New(t)
	top := newTestTopology(nil)

	m := NewMachine(top.State(a11), newRecorder("m"))

	require.Equal(top.State(a11), m.State())
	require.Zero(m.Event())
	require.False(m.Pending())
	require.Empty(m.Data.log(), "Expected no action to run when creating a machine")
}

func TestNewMachine_PanicsWithoutInitialState(t *testing.T) {
	res := tryUnarySupplier(func() *testMachine {
		return NewMachine[state, event, *recorder](nil, newRecorder("m"))
	})

	require.True(t, res.panicked, "Expected panic but did not get one")
}

func TestMachine_PostAndClear(t *testing.T) {
	require := require.New(t)
	top := newTestTopology(nil)
	m := NewMachine(top.State(a), newRecorder("m"))

	m.Post(goEvent)
	require.True(m.Pending())
	require.Equal(goEvent, m.Event())

	m.Post(backEvent)
	require.Equal(backEvent, m.Event(), "Expected a later event to replace the pending one")

	m.Clear()
	require.False(m.Pending())
	require.Zero(m.Event())
}

func TestMachine_Post_PanicsOnReservedEvent(t *testing.T) {
	top := newTestTopology(nil)
	m := NewMachine(top.State(a), newRecorder("m"))

	res := tryUnarySupplier(func() bool {
		m.Post(0)
		return true
	})

	require.True(t, res.panicked, "Expected panic but did not get one")
}

func TestMachine_Init(t *testing.T) {
	require := require.New(t)
	top := newTestTopology(nil)
	m := NewMachine(top.State(a11), newRecorder("m"))
	m.Post(goEvent)

	m.Init(top.State(other))

	require.Equal(top.State(other), m.State())
	require.False(m.Pending())
	require.Empty(m.Data.log())
}

func TestMachine_ActiveHierarchy(t *testing.T) {
	require := require.New(t)
	top := newTestTopology(nil)

	m := NewMachine(top.State(b11), newRecorder("m"))

	require.Equal([]state{b11, b1, b, root}, m.ActiveHierarchy())
	m.Init(top.State(other))
	require.Equal([]state{other}, m.ActiveHierarchy())
}

func TestMachine_IsIn(t *testing.T) {
	require := require.New(t)
	top := newTestTopology(nil)

	m := NewMachine(top.State(a1), newRecorder("m"))

	require.True(m.IsIn(a1))
	require.True(m.IsIn(a))
	require.True(m.IsIn(root))
	require.False(m.IsIn(a11), "Expected a sub-state of the active state to be inactive")
	require.False(m.IsIn(b))
	require.False(m.IsIn(other))
}
