package cmd

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/tinymail/defsfilter/internal/defs"
	"github.com/tinymail/defsfilter/internal/log"
	"github.com/tinymail/defsfilter/internal/merge"
	"github.com/tinymail/defsfilter/internal/override"
	"github.com/tinymail/defsfilter/internal/report"
	"github.com/tinymail/defsfilter/internal/scanner"
)

// CLI is the whole command line. Definitions are read from stdin and the
// merged result is written to stdout.
type CLI struct {
	Config    string `help:"Read option defaults from a JSON, YAML or TOML file" placeholder:"FILE" env:"DEFSFILTER_CONFIG"`
	Extra     string `short:"e" help:"Hand-written definitions that replace generated entries of the same name" placeholder:"FILENAME"`
	Topsrcdir string `short:"t" help:"Source tree to scan for interface declarations in headers" placeholder:"DIR"`
	Report    string `help:"Write a merge summary; format follows the extension (.json, .yaml, .toml)" placeholder:"FILE"`
	TraceFile string `help:"Record the decision taken for every line" placeholder:"FILE"`
	LogLevel  string `help:"Log level" default:"warn" enum:"trace,debug,info,warn,error"`
	LogFile   string `help:"Also write logs to this file" placeholder:"FILE"`

	// Leftover positional arguments are accepted and ignored.
	Args []string `arg:"" optional:"" hidden:""`
}

// Run scans, loads and filters. Scanning and loading complete before the
// first definitions line is read.
func (c *CLI) Run(logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	interfaces := defs.NewNameSet()
	if c.Topsrcdir != "" {
		names, err := scanner.ScanHeaders(c.Topsrcdir, logger)
		if err != nil {
			return fatalError(err)
		}
		interfaces = names
	}

	extra, err := override.Load(c.Extra, logger)
	if err != nil {
		return fatalError(err)
	}

	filter := merge.NewFilter(interfaces, extra.Names, extra.Lines, logger)
	if c.TraceFile != "" {
		f, err := os.OpenFile(c.TraceFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return fatalErrorf("open trace file: %w", err)
		}
		defer f.Close()
		filter.WithTracer(log.NewTracer(f))
	}

	if isTerminal(stdin) {
		logger.Warn("reading definitions from a terminal; end input with EOF")
	}

	stats, err := filter.Run(stdin, stdout)
	if err != nil {
		return fatalError(err)
	}
	logger.Info("merge complete",
		"interfaces", interfaces.Len(),
		"overrides", extra.Names.Len(),
		"linesRead", stats.LinesRead,
		"linesEmitted", stats.LinesEmitted,
		"reclassified", stats.Reclassified,
		"suppressedBlocks", stats.SuppressedBlocks,
		"overrideLines", stats.OverrideLines,
	)

	if c.Report != "" {
		r := report.New(c.Topsrcdir, c.Extra, interfaces, extra.Names, stats)
		if err := report.Write(c.Report, r); err != nil {
			return fatalError(err)
		}
		logger.Debug("report written", "path", c.Report)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
