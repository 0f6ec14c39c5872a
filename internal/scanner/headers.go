// Package scanner finds interface declarations in C headers.
package scanner

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tinymail/defsfilter/internal/defs"
	"github.com/tinymail/defsfilter/internal/log"
)

var ifaceDeclRe = regexp.MustCompile(`^\s*struct _Tny(.*)Iface.*$`)

// IsHeaderName reports whether a file name is scanned. Any name containing a
// literal ".h" qualifies, so "foo.html", "foo.h.in" and ".hidden" are
// scanned as well as "foo.h".
func IsHeaderName(name string) bool {
	return strings.Contains(name, ".h")
}

// ScanHeaders walks root and returns the base names of every
// "struct _Tny<Name>Iface" declaration found in header-like files.
// Any filesystem error aborts the scan.
func ScanHeaders(root string, logger *slog.Logger) (defs.NameSet, error) {
	if logger == nil {
		logger = log.Discard()
	}
	names := defs.NewNameSet()
	files := 0

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsHeaderName(d.Name()) {
			return nil
		}
		files++
		found, err := scanFile(p)
		if err != nil {
			return err
		}
		for _, n := range found {
			if !names.Has(n) {
				logger.Debug("interface declaration", "name", n, "file", p)
			}
			names.Add(n)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan headers in %s: %w", root, err)
	}

	logger.Debug("header scan complete", "root", root, "files", files, "interfaces", names.Len())
	return names, nil
}

func scanFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scanDeclarations(f)
}

// scanDeclarations reads r to completion and returns the captured names in
// order of appearance.
func scanDeclarations(r io.Reader) ([]string, error) {
	var found []string
	err := defs.EachLine(r, func(line string) error {
		if m := ifaceDeclRe.FindStringSubmatch(defs.TrimEOL(line)); m != nil {
			found = append(found, m[1])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
