// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	ControlDir  string `yaml:"control_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "mark",
			DisplayName: "Mark",
			Description: "Scaffold marker and metadata descriptors from .mark manifests",
			HomeDir:     ".mark",
			ControlDir:  ".mark",
			EnvPrefix:   "MARK",
			GoModule:    "github.com/mark-labs/mark",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "mark").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Mark").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".mark").
func HomeDir() string { load(); return defaults.HomeDir }

// ControlDir returns the per-project control directory holding the root
// manifest and the cache (e.g., ".mark").
func ControlDir() string { load(); return defaults.ControlDir }

// EnvPrefix returns the environment variable prefix (e.g., "MARK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the module path the binary was built from.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "MARK_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
