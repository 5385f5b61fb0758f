// Package trace logs the dispatching of hsm machines with zap.
package trace

import (
	"fmt"

	"github.com/tobbstr/hsm"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger implements hsm.Tracer on top of a zap logger. Events and ordinary results are logged at debug level;
// unhandled events and custom result codes at warn level.
type Logger[S, E ~uint] struct {
	log *zap.Logger
}

// New creates a Logger. A nil logger is replaced by a no-op one.
func New[S, E ~uint](log *zap.Logger) *Logger[S, E] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger[S, E]{log: log}
}

// Event logs an event about to be handled.
func (l *Logger[S, E]) Event(machine int, state S, event E) {
	if ce := l.log.Check(zapcore.DebugLevel, "dispatching event"); ce != nil {
		ce.Write(
			zap.Int("machine", machine),
			zap.Stringer("state", stringer[S]{state}),
			zap.Stringer("event", stringer[E]{event}),
		)
	}
}

// Result logs the result of a handler.
func (l *Logger[S, E]) Result(state S, result hsm.Result) {
	level := zapcore.DebugLevel
	if result != hsm.EventHandled && result != hsm.TriggeredToSelf {
		level = zapcore.WarnLevel
	}
	if ce := l.log.Check(level, "handler returned"); ce != nil {
		ce.Write(
			zap.Stringer("state", stringer[S]{state}),
			zap.Stringer("result", result),
		)
	}
}

// Options returns the dispatcher options that install l.
func (l *Logger[S, E]) Options() []hsm.Option[S, E] {
	return []hsm.Option[S, E]{hsm.WithTracer[S, E](l)}
}

// stringer formats identifiers lazily, using their String method when they have one.
type stringer[T ~uint] struct {
	v T
}

func (s stringer[T]) String() string {
	return fmt.Sprint(s.v)
}
