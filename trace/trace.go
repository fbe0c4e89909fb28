// Package trace records the one "best-effort" path the core is allowed to
// take: an unknown opcode never halts the Cpu, it is logged for offline
// diagnosis and the step simply returns.
package trace

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

// No structured-logging library (zap, zerolog, logrus) appears in any
// buildable repo across the retrieved corpus, so this uses the standard
// library's log/slog rather than inventing a dependency the corpus never
// reaches for. See DESIGN.md.

// maxEntries bounds the ring so a runaway program hammering an unknown
// opcode in a tight loop can't grow this without bound.
const maxEntries = 256

// An Entry is a single unknown-opcode sighting.
type Entry struct {
	PC     uint16
	Opcode byte
}

// A Log is a small ring buffer of unknown-opcode sightings, paired with a
// structured logger. The Cpu owns one; nothing else needs to.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	logger  *slog.Logger
}

// New returns a Log that writes to logger. A nil logger falls back to
// slog.Default().
func New(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// RecordUnknown appends an unknown-opcode sighting and emits a warning line.
// The core depends on neither the append nor the log call succeeding; both
// are best-effort.
func (l *Log) RecordUnknown(pc uint16, opcode byte) {
	l.mu.Lock()
	if len(l.entries) >= maxEntries {
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, Entry{PC: pc, Opcode: opcode})
	l.mu.Unlock()

	l.logger.Warn("unknown opcode", slog.String("pc", fmt.Sprintf("0x%04x", pc)), slog.String("opcode", fmt.Sprintf("0x%02x", opcode)))
}

// Entries returns a copy of the recorded sightings, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Dump renders the recorded sightings with spew, for pasting into a bug
// report or an interactive debugger session.
func (l *Log) Dump() string {
	return spew.Sdump(l.Entries())
}

