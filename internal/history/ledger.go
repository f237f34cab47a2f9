// Package history keeps the ordered, append-only record of completed
// calculations.
package history

import (
	"fmt"
	"strconv"
	"sync"
)

// Entry is one completed calculation. Entries are values and are never
// modified after they are recorded.
type Entry struct {
	Seq     int
	Infix   string
	Postfix string
	Result  float64
}

// String renders the entry as the multi-line block shown in history panes.
func (e Entry) String() string {
	return fmt.Sprintf("Calculation #%d:\nInfix:   %s\nPostfix: %s\nResult:  %s\n\n",
		e.Seq, e.Infix, e.Postfix, FormatResult(e.Result))
}

// FormatResult renders a result as the shortest decimal string that
// round-trips, or +Inf, -Inf, NaN for non-finite values.
func FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Ledger is an append-only log of entries with a monotonic sequence counter.
// It is safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	entries []Entry
	seq     int
}

// NewLedger returns an empty ledger whose first entry will be number 1.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends an entry with the next sequence number and returns it.
func (l *Ledger) Record(infix, postfix string, result float64) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	e := Entry{
		Seq:     l.seq,
		Infix:   infix,
		Postfix: postfix,
		Result:  result,
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns a copy of the recorded entries, oldest first.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Formatted returns every entry rendered with Entry.String, oldest first.
func (l *Ledger) Formatted() []string {
	entries := l.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear removes every entry and resets the sequence counter to zero.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.seq = 0
}

// Reversed returns a copy of entries in newest-first order.
func Reversed(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}
