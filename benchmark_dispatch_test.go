// Benchmarks for dispatching and traversal performance (CPU and memory)
package hsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Two branches of four levels each under a common top-level state.
const (
	benchTop uint = iota
	benchA1
	benchA2
	benchA3
	benchB1
	benchB2
	benchB3
	benchStates
)

const benchEvent uint = 1

type benchData struct {
	top *Topology[uint, uint, *benchData]
}

func setupBenchmarkTopology() *Topology[uint, uint, *benchData] {
	ok := func(*Machine[uint, uint, *benchData]) Result { return EventHandled }
	builder := NewTopologyBuilder[uint, uint, *benchData](benchStates)
	builder.State(benchA1).Parent(benchTop)
	builder.State(benchA2).Parent(benchA1)
	builder.State(benchA3).Parent(benchA2)
	builder.State(benchB1).Parent(benchTop)
	builder.State(benchB2).Parent(benchB1)
	builder.State(benchB3).Parent(benchB2)
	for s := benchTop; s < benchStates; s++ {
		builder.State(s).OnEntry(ok).OnExit(ok)
	}
	builder.State(benchA3).Handle(func(m *Machine[uint, uint, *benchData]) Result {
		return EventUnhandled
	})
	builder.State(benchA1).Handle(func(m *Machine[uint, uint, *benchData]) Result {
		return TraverseState(m, m.Data.top.State(benchB3))
	})
	builder.State(benchB3).Handle(func(m *Machine[uint, uint, *benchData]) Result {
		return TraverseState(m, m.Data.top.State(benchA3))
	})
	return builder.Build()
}

func BenchmarkDispatch(b *testing.B) {
	top := setupBenchmarkTopology()
	m := NewMachine(top.State(benchA3), &benchData{top: top})
	machines := []*Machine[uint, uint, *benchData]{m}
	d := NewDispatcher[uint, uint, *benchData]()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Post(benchEvent)
		_ = d.Dispatch(machines...)
	}
}

func BenchmarkTraverseState(b *testing.B) {
	top := setupBenchmarkTopology()
	m := NewMachine(top.State(benchA3), &benchData{top: top})
	from, to := top.State(benchA3), top.State(benchB3)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = TraverseState(m, to)
		from, to = to, from
	}
}

func TestDispatch_DoesNotAllocate(t *testing.T) {
	top := setupBenchmarkTopology()
	m := NewMachine(top.State(benchA3), &benchData{top: top})
	d := NewDispatcher[uint, uint, *benchData]()

	allocs := testing.AllocsPerRun(100, func() {
		m.Post(benchEvent)
		if got := d.Dispatch(m); got != EventHandled {
			t.Fatalf("dispatch returned %v", got)
		}
	})

	require.Zero(t, allocs)
}

func TestTraverseState_DoesNotAllocate(t *testing.T) {
	top := setupBenchmarkTopology()
	m := NewMachine(top.State(benchA3), &benchData{top: top})
	from, to := top.State(benchA3), top.State(benchB3)

	allocs := testing.AllocsPerRun(100, func() {
		if got := TraverseState(m, to); got != EventHandled {
			t.Fatalf("traversal returned %v", got)
		}
		from, to = to, from
	})

	require.Zero(t, allocs)
}
