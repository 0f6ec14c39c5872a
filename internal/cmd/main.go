// Package cmd wires the command line to the scan, load and merge steps.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/tinymail/defsfilter/internal/configpaths"
	"github.com/tinymail/defsfilter/internal/log"
)

const appName = "defsfilter"

// Main runs the tool with the given arguments and streams and returns the
// process exit status.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	userCfg := configpaths.FindUserConfig(args)
	if userCfg != "" {
		if _, err := os.Stat(userCfg); err != nil {
			return reportError(stderr, fatalErrorf("config file: %w", err))
		}
	}
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	// kong calls exit after printing help; remember the status instead of
	// terminating so Main stays callable from tests.
	exitCode := -1
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(appName),
		kong.Description("Merge hand-written definitions into a generated definitions stream read from stdin."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
		// Flags override values from the configuration file.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)
	if err != nil {
		return reportError(stderr, fatalErrorf("config file: %w", err))
	}

	_, err = parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		return reportError(stderr, usageError(err))
	}

	logger, closeFiles, err := log.SetupLogger(cli.LogLevel, cli.LogFile, stderr)
	if err != nil {
		return reportError(stderr, fatalErrorf("failed to setup logger: %w", err))
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	if err := cli.Run(logger, stdin, stdout); err != nil {
		logger.Debug("run failed", "error", err)
		return reportError(stderr, err)
	}
	return exitOK
}

func reportError(stderr io.Writer, err error) int {
	var ee *ExitError
	if !errors.As(err, &ee) {
		ee = fatalError(err)
	}
	fmt.Fprintf(stderr, "%s: error: %v\n", appName, ee.Err)
	if ee.Code == exitUsage {
		fmt.Fprintf(stderr, "Try '%s --help' for more information.\n", appName)
	}
	return ee.Code
}
