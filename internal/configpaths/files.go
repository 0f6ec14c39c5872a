// Package configpaths resolves configuration and output file locations.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable holding a configuration file path.
const EnvConfig = "DEFSFILTER_CONFIG"

// Format returns the serialization format implied by a file extension:
// "json", "yaml" or "toml". Unknown extensions map to "json".
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0o755)
}

// FindUserConfig returns the configuration path given on the command line
// (--config FILE or --config=FILE), falling back to $DEFSFILTER_CONFIG.
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(EnvConfig)
}

// ConfigCandidatePaths routes the user supplied config path to the loader
// matching its extension. Only an explicit path is considered: output must
// not depend on files that happen to sit in the working directory.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath == "" {
		return
	}
	switch Format(userPath) {
	case "yaml":
		yamlPaths = append(yamlPaths, userPath)
	case "toml":
		tomlPaths = append(tomlPaths, userPath)
	default:
		jsonPaths = append(jsonPaths, userPath)
	}
	return
}
