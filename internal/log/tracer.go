package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Tracer records every decision the merge filter takes on a line.
type Tracer interface {
	Trace(op, line string)
}

// Trace operations.
const (
	OpKeep    = "keep"
	OpPromote = "promote"
	OpDrop    = "drop"
	OpAppend  = "append"
)

// tracer implements Tracer with thread-safe writes.
type tracer struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTracer creates a new Tracer. If writer is nil, returns a no-op tracer.
func NewTracer(w io.Writer) Tracer {
	return &tracer{w: w}
}

// Trace emits a single timestamped line with the operation and the quoted
// input line, terminator included.
func (t *tracer) Trace(op, line string) {
	if t.w == nil {
		return
	}

	out := fmt.Sprintf("%s %-7s %q\n",
		time.Now().Format("2006/01/02 15:04:05"),
		op,
		line)

	t.mu.Lock()
	_, _ = t.w.Write([]byte(out))
	t.mu.Unlock()
}
