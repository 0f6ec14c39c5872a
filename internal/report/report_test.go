package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/tinymail/defsfilter/internal/defs"
	"github.com/tinymail/defsfilter/internal/merge"
	"github.com/tinymail/defsfilter/internal/report"
)

func sample() report.Report {
	return report.New("src", "tny-extra.defs",
		defs.NewNameSet("Folder", "Account"),
		defs.NewNameSet("Bar"),
		merge.Stats{LinesRead: 10, LinesEmitted: 7, Reclassified: 2, SuppressedBlocks: 1, SuppressedLines: 3, OverrideLines: 4},
	)
}

func TestNewSortsNames(t *testing.T) {
	r := sample()
	assert.Equal(t, []string{"Account", "Folder"}, r.Interfaces)
	assert.Equal(t, []string{"Bar"}, r.Overrides)
}

func TestWriteFormats(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "out", "report.json")
		require.NoError(t, report.Write(path, sample()))
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "src", got["topsrcdir"])
		stats := got["stats"].(map[string]any)
		assert.EqualValues(t, 2, stats["reclassified"])
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "report.yaml")
		require.NoError(t, report.Write(path, sample()))
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got struct {
			Interfaces []string `yaml:"interfaces"`
			Stats      struct {
				SuppressedLines int `yaml:"suppressedLines"`
			} `yaml:"stats"`
		}
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, []string{"Account", "Folder"}, got.Interfaces)
		assert.Equal(t, 3, got.Stats.SuppressedLines)
	})

	t.Run("toml", func(t *testing.T) {
		path := filepath.Join(dir, "report.toml")
		require.NoError(t, report.Write(path, sample()))

		tree, err := toml.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "tny-extra.defs", tree.Get("extra"))
		assert.EqualValues(t, 4, tree.Get("stats.overrideLines"))
	})
}

func TestMarshalUnknownFormat(t *testing.T) {
	_, err := report.Marshal(sample(), "xml")
	assert.ErrorContains(t, err, "unsupported report format")
}
