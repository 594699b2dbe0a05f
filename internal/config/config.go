package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark-labs/mark/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the sync command.
const (
	// KeyStrict makes the first malformed entry or failed descriptor write
	// abort the whole run.
	KeyStrict = "strict"
	// KeyVerbose enables debug tracing on stderr.
	KeyVerbose = "verbose"
	// KeyTemplates points at a descriptor template set replacing the built-in
	// one. Relative paths are taken from the project root.
	KeyTemplates = "templates"
)

// templatesFile is picked up from the control directory when KeyTemplates is unset.
const templatesFile = "templates.yaml"

// Dir returns the path to the user config directory (~/.mark/).
// MARK_HOME overrides the location.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the user config file (~/.mark/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// ProjectFilePath returns the project config file under root's control directory.
func ProjectFilePath(root string) string {
	return filepath.Join(root, branding.ControlDir(), fileName+"."+fileType)
}

// TemplatesPath returns the descriptor template set to use for root, or ""
// for the built-in templates. KeyTemplates wins; otherwise
// <root>/.mark/templates.yaml is used when it exists.
func TemplatesPath(root string) string {
	if path := viper.GetString(KeyTemplates); path != "" {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(root, path)
	}
	path := filepath.Join(root, branding.ControlDir(), templatesFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper from the user config file and the environment. When
// root is non-empty the project config for root is merged on top.
func Load(root string) error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyStrict, false)
	viper.SetDefault(KeyVerbose, false)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()

	if root == "" {
		return nil
	}
	project := ProjectFilePath(root)
	if _, err := os.Stat(project); err != nil {
		return nil
	}
	viper.SetConfigFile(project)
	if err := viper.MergeInConfig(); err != nil {
		return fmt.Errorf("reading project config %s: %w", project, err)
	}
	// Set writes to the user file, not the project one.
	viper.SetConfigFile(FilePath())
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value by key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set writes a config key-value pair and saves the user config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
