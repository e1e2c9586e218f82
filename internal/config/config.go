package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds pulse configuration.
type Config struct {
	// Feed is the default feed path used when no argument is given.
	Feed string `yaml:"feed"`
	// IdleHeader overrides the header shown while no source is active.
	IdleHeader string `yaml:"idle_header"`
	// Accent is the lipgloss color used for the running status header.
	Accent string `yaml:"accent"`
	// TickInterval paces the spinner and elapsed-timer refresh.
	TickInterval time.Duration `yaml:"tick_interval"`
	// DemoInterval paces synthetic events emitted by the demo command.
	DemoInterval time.Duration `yaml:"demo_interval"`
}

type fileConfig struct {
	Feed         string `yaml:"feed"`
	IdleHeader   string `yaml:"idle_header"`
	Accent       string `yaml:"accent"`
	TickInterval string `yaml:"tick_interval"`
	DemoInterval string `yaml:"demo_interval"`
}

// configFile is the name of the config file
const configFile = "config.yaml"

// Default intervals used when unset everywhere.
const (
	DefaultTickInterval = 100 * time.Millisecond
	DefaultDemoInterval = 400 * time.Millisecond
)

// Load loads configuration with the following precedence (highest first):
// 1. Repo-local .pulse/config.yaml in the current directory
// 2. Parent .pulse/config.yaml files (searched upward from cwd)
// 3. Environment variables
// 4. Global ~/.config/pulse/config.yaml
func Load() (*Config, error) {
	cfg := &Config{}

	// Load global config first (lowest precedence)
	globalPath := globalConfigPath()
	if globalPath != "" {
		if err := loadFromFile(globalPath, cfg); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Apply environment variables (higher precedence than global config)
	applyEnv(cfg)

	// Load repo-local config files (highest precedence)
	repoPaths, err := findRepoConfigs()
	if err != nil {
		return nil, err
	}
	for _, repoPath := range repoPaths {
		if err := loadFromFile(repoPath, cfg); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	applyDefaults(cfg)

	return cfg, nil
}

// LoadFile loads configuration from one explicit file, skipping the layered
// lookup entirely. Unlike the search path, a missing file is an error here:
// the caller asked for this file by name.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.DemoInterval <= 0 {
		cfg.DemoInterval = DefaultDemoInterval
	}
}

// findRepoConfigs searches upward from cwd for .pulse/config.yaml files.
// Returned paths are ordered from furthest ancestor to closest (highest precedence last).
func findRepoConfigs() ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	dir := cwd
	var paths []string
	for {
		configPath := filepath.Join(dir, ".pulse", configFile)
		if _, err := os.Stat(configPath); err == nil {
			paths = append(paths, configPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	for i, j := 0, len(paths)-1; i < j; i, j = i+1, j-1 {
		paths[i], paths[j] = paths[j], paths[i]
	}

	return paths, nil
}

// globalConfigPath returns the path to global config
func globalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pulse", configFile)
}

// loadFromFile loads config from a YAML file, merging non-empty values into
// cfg. A relative feed path is resolved relative to the config file's repo
// root (the parent of .pulse), not the cwd.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fileCfg fileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	baseDir := configDir
	if filepath.Base(configDir) == ".pulse" {
		baseDir = filepath.Dir(configDir)
	}

	if fileCfg.Feed != "" {
		cfg.Feed = resolvePathFromConfig(fileCfg.Feed, baseDir)
	}
	if fileCfg.IdleHeader != "" {
		cfg.IdleHeader = fileCfg.IdleHeader
	}
	if fileCfg.Accent != "" {
		cfg.Accent = fileCfg.Accent
	}
	if fileCfg.TickInterval != "" {
		if d, err := time.ParseDuration(fileCfg.TickInterval); err == nil && d > 0 {
			cfg.TickInterval = d
		}
	}
	if fileCfg.DemoInterval != "" {
		if d, err := time.ParseDuration(fileCfg.DemoInterval); err == nil && d > 0 {
			cfg.DemoInterval = d
		}
	}

	return nil
}

// resolvePathFromConfig resolves a path from a config file
// - Expands ~ to home directory
// - Makes relative paths absolute relative to baseDir
// - Returns absolute paths unchanged
func resolvePathFromConfig(path, baseDir string) string {
	if path == "" {
		return ""
	}

	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	return path
}

// applyEnv applies environment variables to config
func applyEnv(cfg *Config) {
	if v := os.Getenv("PULSE_FEED"); v != "" {
		cfg.Feed = v
	}
	if v := os.Getenv("PULSE_IDLE_HEADER"); v != "" {
		cfg.IdleHeader = v
	}
	if v := os.Getenv("PULSE_ACCENT"); v != "" {
		cfg.Accent = v
	}
	if v := os.Getenv("PULSE_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TickInterval = d
		}
	}
	if v := os.Getenv("PULSE_DEMO_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.DemoInterval = d
		}
	}
}

// ExpandPath expands ~ and makes path absolute relative to base
func ExpandPath(path, base string) string {
	if path == "" {
		return ""
	}

	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}

	if !filepath.IsAbs(path) && base != "" {
		path = filepath.Join(base, path)
	}

	return path
}
