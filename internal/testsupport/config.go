// Package testsupport builds ready-to-use configurations seeded with unique
// temp directories for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"flotsam/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with per-test temp directories. History
// is disabled by default so tests stay filesystem-only unless they opt in.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Qbittorrent.Host = "http://127.0.0.1:8080"
	cfgVal.Qbittorrent.Password = "test"
	cfgVal.Scan.CategoryFolders = map[string]string{}
	cfgVal.History.Enabled = false
	cfgVal.History.Path = filepath.Join(base, "history.db")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCategory creates a folder for the named category and registers it in
// the mapping.
func WithCategory(name string) ConfigOption {
	return func(b *configBuilder) {
		dir := filepath.Join(b.baseDir, "categories", name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.t.Fatalf("mkdir category dir: %v", err)
		}
		b.cfg.Scan.CategoryFolders[name] = dir
	}
}

// WithHistory enables the scan history database under the test base dir.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// WithExcludePatterns sets the literal exclude substrings.
func WithExcludePatterns(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.ExcludePatterns = patterns
	}
}
