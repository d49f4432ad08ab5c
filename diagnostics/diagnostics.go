// Package diagnostics defines the narrow interfaces the mapping engine
// uses to talk to its logging and instrumentation collaborators, plus
// no-op defaults. Neither collaborator is essential for correctness; the
// enclosing application wires in its own logging backend and event
// timers by implementing these interfaces, since this core does not pull
// in a logging framework of its own.
package diagnostics

// Sink accepts leveled diagnostic messages at two levels, DEBUG and WARN.
// The mapping engine emits only WARN messages, for a search mesh that
// lacks triangles (3D) or edges (2D); it emits no DEBUG messages, and
// degenerate primitives skipped during the cascade produce no message.
type Sink interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// NopSink discards every message. It is the default Sink for a mapping
// engine constructed without an explicit one.
type NopSink struct{}

func (NopSink) Debugf(string, ...interface{}) {}
func (NopSink) Warnf(string, ...interface{})  {}

// EventSink starts a named timer and returns a function that stops it.
// The mapping engine calls Start around ComputeMapping, Map and
// TagMeshFirstRound so the enclosing application can attribute wall time
// to a coupling step without this core depending on any particular
// instrumentation backend.
type EventSink interface {
	Start(name string) (stop func())
}

// NopEvents is the default EventSink: Start returns a no-op stop
// function.
type NopEvents struct{}

func (NopEvents) Start(string) func() { return func() {} }
