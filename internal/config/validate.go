package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateQbittorrent(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateQbittorrent() error {
	host := strings.TrimSpace(c.Qbittorrent.Host)
	if host == "" {
		return errors.New("qbittorrent.host must be set (or export QBIT_HOST)")
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		return fmt.Errorf("qbittorrent.host must be an http(s) URL, got %q", host)
	}
	if c.Qbittorrent.TimeoutSeconds <= 0 {
		return errors.New("qbittorrent.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.CategoryFolders) == 0 {
		return errors.New("scan.category_folders must define at least one category (or export CATEGORY_FOLDERS)")
	}

	// Each category root must be distinct, otherwise one category's orphans
	// would be double-reported under another name.
	seen := make(map[string]string, len(c.Scan.CategoryFolders))
	for category, folder := range c.Scan.CategoryFolders {
		if !filepath.IsAbs(folder) {
			return fmt.Errorf("category %q folder must be absolute, got %q", category, folder)
		}
		if other, ok := seen[folder]; ok {
			return fmt.Errorf("categories %q and %q share the folder %q", other, category, folder)
		}
		seen[folder] = category
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
