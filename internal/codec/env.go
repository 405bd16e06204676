// internal/codec/env.go
package codec

import "fmt"

// EventType indicates the type of progress event
type EventType int

// Values line up with the public compress/decompress event types
const (
	EventStart EventType = iota
	EventFileStart
	EventFileProgress
	EventFileComplete
	EventComplete
	EventError
)

// Event is emitted by adapters while they move entries
type Event struct {
	Type    EventType
	Path    string
	Current int64
	Total   int64
}

// Stats accumulates what an operation touched. One Env may be reused
// across several layers, so counters only ever grow.
type Stats struct {
	Files       int
	Dirs        int
	Links       int
	Skipped     int
	InputBytes  uint64
	OutputBytes uint64
}

// Env carries per-operation settings shared by every adapter
type Env struct {
	// Level is the compression level, 1 (fastest) to 9 (best)
	Level int

	// Overwrite replaces existing output files instead of failing
	Overwrite bool

	// UseGitignore filters container packing through .gitignore files
	UseGitignore bool

	// DryRun makes unpack decode and validate every entry without writing
	DryRun bool

	// Verbose prints one line per entry
	Verbose bool

	// Progress receives events (optional)
	Progress func(Event)

	Stats Stats
}

// DefaultLevel is used when Env.Level is unset
const DefaultLevel = 6

func (e *Env) level() int {
	switch {
	case e.Level <= 0:
		return DefaultLevel
	case e.Level > 9:
		return 9
	}
	return e.Level
}

func (e *Env) emit(ev Event) {
	if e.Progress != nil {
		e.Progress(ev)
	}
}

func (e *Env) logf(format string, args ...interface{}) {
	if e.Verbose {
		fmt.Printf(format+"\n", args...)
	}
}
