// Package override loads the hand-maintained definitions file whose entries
// replace generated entries of the same name.
package override

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tinymail/defsfilter/internal/defs"
)

// File is a loaded override file. It is not modified after Load returns.
type File struct {
	// Names holds every entry name the file defines.
	Names defs.NameSet
	// Lines holds every line of the file, unmodified and in order.
	Lines []string
}

// Empty returns a File that defines nothing and appends nothing.
func Empty() *File {
	return &File{Names: defs.NewNameSet()}
}

// Load reads the override file at path. An empty path yields Empty() without
// touching the filesystem; any other read failure is returned.
func Load(path string, logger *slog.Logger) (*File, error) {
	if path == "" {
		return Empty(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open override file: %w", err)
	}
	defer f.Close()

	of, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read override file %s: %w", path, err)
	}
	if logger != nil {
		logger.Debug("override file loaded", "path", path, "lines", len(of.Lines), "entries", of.Names.Len())
	}
	return of, nil
}

// Parse reads override content from r to completion.
func Parse(r io.Reader) (*File, error) {
	of := Empty()
	err := defs.EachLine(r, func(line string) error {
		if m := defs.MatchEntryOpen(line); m.OK {
			of.Names.Add(m.Name)
		}
		of.Lines = append(of.Lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return of, nil
}
