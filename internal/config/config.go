package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Qbittorrent contains connection settings for the qBittorrent Web API.
type Qbittorrent struct {
	Host           string `toml:"host"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Scan contains the category mapping and the matching rules for a pass.
type Scan struct {
	CategoryFolders map[string]string `toml:"category_folders"`
	ExcludePatterns []string          `toml:"exclude_patterns"`
	IgnoreSuffixes  []string          `toml:"ignore_suffixes"`
}

// History contains configuration for the per-run scan history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"log_dir"`
}

// Config encapsulates all configuration values for flotsam.
type Config struct {
	Qbittorrent Qbittorrent `toml:"qbittorrent"`
	Scan        Scan        `toml:"scan"`
	History     History     `toml:"history"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/flotsam/config.toml")
}

// Load locates, parses, and validates a configuration file, then layers the
// environment overrides on top. The returned config has all path fields
// expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("flotsam.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// normalize expands and absolutizes every configured path.
func (c *Config) normalize() error {
	c.Qbittorrent.Host = strings.TrimRight(strings.TrimSpace(c.Qbittorrent.Host), "/")
	c.Qbittorrent.Username = strings.TrimSpace(c.Qbittorrent.Username)

	folders := make(map[string]string, len(c.Scan.CategoryFolders))
	for category, folder := range c.Scan.CategoryFolders {
		category = strings.TrimSpace(category)
		folder = strings.TrimSpace(folder)
		if category == "" || folder == "" {
			continue
		}
		expanded, err := expandPath(folder)
		if err != nil {
			return fmt.Errorf("category %q: %w", category, err)
		}
		folders[category] = expanded
	}
	c.Scan.CategoryFolders = folders

	if path := strings.TrimSpace(c.History.Path); path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return fmt.Errorf("history path: %w", err)
		}
		c.History.Path = expanded
	}

	if dir := strings.TrimSpace(c.Logging.Dir); dir != "" {
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("log directory: %w", err)
		}
		c.Logging.Dir = expanded
	}

	return nil
}

// EnsureDirectories creates the directories a run writes into (log/lock dir
// and the history database's parent).
func (c *Config) EnsureDirectories() error {
	if c.Logging.Dir != "" {
		if err := os.MkdirAll(c.Logging.Dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", c.Logging.Dir, err)
		}
	}
	if c.History.Enabled && c.History.Path != "" {
		if err := os.MkdirAll(filepath.Dir(c.History.Path), 0o755); err != nil {
			return fmt.Errorf("create history directory: %w", err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
