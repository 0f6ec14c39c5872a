// Package merge streams generated definitions through the reclassification
// and override filter.
package merge

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/tinymail/defsfilter/internal/defs"
	"github.com/tinymail/defsfilter/internal/log"
)

// State is the filter's position relative to a suppressed entry.
type State int

const (
	// Emit copies lines to the output.
	Emit State = iota
	// Suppress drops lines until the next bare ")" line.
	Suppress
)

func (s State) String() string {
	if s == Suppress {
		return "suppress"
	}
	return "emit"
}

// Stats counts what a filter pass did.
type Stats struct {
	LinesRead        int `json:"linesRead" yaml:"linesRead" toml:"linesRead"`
	LinesEmitted     int `json:"linesEmitted" yaml:"linesEmitted" toml:"linesEmitted"`
	Reclassified     int `json:"reclassified" yaml:"reclassified" toml:"reclassified"`
	SuppressedBlocks int `json:"suppressedBlocks" yaml:"suppressedBlocks" toml:"suppressedBlocks"`
	SuppressedLines  int `json:"suppressedLines" yaml:"suppressedLines" toml:"suppressedLines"`
	OverrideLines    int `json:"overrideLines" yaml:"overrideLines" toml:"overrideLines"`
}

// Filter holds the inputs of one pass. None of them are modified.
type Filter struct {
	interfaces    defs.NameSet
	overrides     defs.NameSet
	overrideLines []string
	logger        *slog.Logger
	tracer        log.Tracer
}

// NewFilter builds a filter. Nil sets behave as empty sets.
func NewFilter(interfaces, overrides defs.NameSet, overrideLines []string, logger *slog.Logger) *Filter {
	if logger == nil {
		logger = log.Discard()
	}
	return &Filter{
		interfaces:    interfaces,
		overrides:     overrides,
		overrideLines: overrideLines,
		logger:        logger,
		tracer:        log.NewTracer(nil),
	}
}

// WithTracer makes the filter report every line decision to t.
func (f *Filter) WithTracer(t log.Tracer) *Filter {
	if t != nil {
		f.tracer = t
	}
	return f
}

// pass is the loop-local state of one run.
type pass struct {
	f     *Filter
	state State
	stats Stats
}

// step processes one primary line and returns it (possibly rewritten) along
// with whether it is emitted.
func (p *pass) step(line string) (string, bool) {
	p.stats.LinesRead++

	keepOp := log.OpKeep
	if m := defs.MatchObjectOpen(line); m.OK && p.f.interfaces.Has(m.Name) {
		line = defs.PromoteToInterface(line)
		keepOp = log.OpPromote
		p.stats.Reclassified++
		p.f.logger.Debug("reclassified as interface", "name", m.Name)
	}

	// Lines that open no entry leave the state alone so the body of a
	// suppressed entry stays suppressed.
	if m := defs.MatchEntryOpen(line); m.OK {
		if p.f.overrides.Has(m.Name) {
			if p.state != Suppress {
				p.stats.SuppressedBlocks++
			}
			p.state = Suppress
			p.f.logger.Debug("suppressing overridden entry", "name", m.Name)
		} else {
			p.state = Emit
		}
	}

	if p.state == Emit {
		p.stats.LinesEmitted++
		p.f.tracer.Trace(keepOp, line)
		return line, true
	}

	p.stats.SuppressedLines++
	p.f.tracer.Trace(log.OpDrop, line)
	if defs.IsEntryClose(line) {
		p.state = Emit
	}
	return line, false
}

// Run filters src into dst line by line, then appends the override lines.
// Only I/O errors are returned; dst is flushed before Run returns.
func (f *Filter) Run(src io.Reader, dst io.Writer) (Stats, error) {
	p := &pass{f: f}
	w := bufio.NewWriter(dst)

	err := defs.EachLine(src, func(line string) error {
		out, ok := p.step(line)
		if !ok {
			return nil
		}
		_, err := w.WriteString(out)
		return err
	})
	if err != nil {
		return p.stats, fmt.Errorf("filter definitions: %w", err)
	}

	for _, line := range f.overrideLines {
		if _, err := w.WriteString(line); err != nil {
			return p.stats, fmt.Errorf("append override lines: %w", err)
		}
		f.tracer.Trace(log.OpAppend, line)
		p.stats.OverrideLines++
	}
	if err := w.Flush(); err != nil {
		return p.stats, fmt.Errorf("flush output: %w", err)
	}
	return p.stats, nil
}

// Lines is the batch form of Run over a finite slice of lines.
func (f *Filter) Lines(lines []string) ([]string, Stats) {
	p := &pass{f: f}
	out := make([]string, 0, len(lines)+len(f.overrideLines))
	for _, line := range lines {
		if l, ok := p.step(line); ok {
			out = append(out, l)
		}
	}
	for _, line := range f.overrideLines {
		f.tracer.Trace(log.OpAppend, line)
	}
	out = append(out, f.overrideLines...)
	p.stats.OverrideLines = len(f.overrideLines)
	return out, p.stats
}
