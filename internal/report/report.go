// Package report serializes a summary of a merge run.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/tinymail/defsfilter/internal/configpaths"
	"github.com/tinymail/defsfilter/internal/defs"
	"github.com/tinymail/defsfilter/internal/merge"
)

// Report describes what one run did.
type Report struct {
	Topsrcdir  string      `json:"topsrcdir" yaml:"topsrcdir" toml:"topsrcdir"`
	Extra      string      `json:"extra" yaml:"extra" toml:"extra"`
	Interfaces []string    `json:"interfaces" yaml:"interfaces" toml:"interfaces"`
	Overrides  []string    `json:"overrides" yaml:"overrides" toml:"overrides"`
	Stats      merge.Stats `json:"stats" yaml:"stats" toml:"stats"`
}

// New builds a report with the name sets in sorted order.
func New(topsrcdir, extra string, interfaces, overrides defs.NameSet, stats merge.Stats) Report {
	return Report{
		Topsrcdir:  topsrcdir,
		Extra:      extra,
		Interfaces: interfaces.Sorted(),
		Overrides:  overrides.Sorted(),
		Stats:      stats,
	}
}

// Marshal encodes r as "json", "yaml" or "toml".
func Marshal(r Report, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(r)
	case "toml":
		return toml.Marshal(r)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// Write stores r at path in the format implied by its extension.
func Write(path string, r Report) error {
	data, err := Marshal(r, configpaths.Format(path))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := configpaths.EnsureDir(path); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
