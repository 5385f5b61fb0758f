package main

import (
	"fmt"
	"io"

	"github.com/tobbstr/hsm"
)

// demo is the keyboard and timer surface shared by the example machines.
type demo interface {
	ParseKey(key rune) bool
	Tick()
}

// session plays steps against one demo machine.
type session[S, E ~uint, D any] struct {
	demo       demo
	machine    *hsm.Machine[S, E, D]
	dispatcher hsm.Dispatcher[S, E, D]
	out        io.Writer
}

func (s *session[S, E, D]) play(steps []Step) error {
	for _, step := range steps {
		if step.Key != "" && s.demo.ParseKey([]rune(step.Key)[0]) {
			if err := s.dispatch(); err != nil {
				return err
			}
		}
		for range step.Ticks {
			s.demo.Tick()
			if !s.machine.Pending() {
				continue
			}
			if err := s.dispatch(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *session[S, E, D]) dispatch() error {
	event := s.machine.Event()
	switch res := s.dispatcher.Dispatch(s.machine); res {
	case hsm.EventHandled, hsm.TriggeredToSelf:
		return nil
	case hsm.EventUnhandled:
		fmt.Fprintln(s.out, "invalid event entered")
		s.machine.Clear()
		return nil
	default:
		return fmt.Errorf("dispatching %v in state %v: %w", event, s.machine.State(), res.Err())
	}
}
