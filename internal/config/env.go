package config

import "strings"

// Environment variable names recognized as overrides. They mirror the
// surface of the original cron-driven deployments, so an existing
// container setup keeps working without a config file.
const (
	EnvHost            = "QBIT_HOST"
	EnvUser            = "QBIT_USER"
	EnvPass            = "QBIT_PASS"
	EnvCategoryFolders = "CATEGORY_FOLDERS"
	EnvExcludePatterns = "EXCLUDE_PATTERNS"
	EnvIgnoreSuffixes  = "IGNORE_SUFFIXES"
)

// applyEnv layers environment overrides over file values. The lookup
// function is injected so tests control the environment.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := envValue(lookup, EnvHost); ok {
		c.Qbittorrent.Host = v
	}
	if v, ok := envValue(lookup, EnvUser); ok {
		c.Qbittorrent.Username = v
	}
	if v, ok := envValue(lookup, EnvPass); ok {
		c.Qbittorrent.Password = v
	}
	if v, ok := envValue(lookup, EnvCategoryFolders); ok {
		if folders := parseCategoryFolders(v); len(folders) > 0 {
			c.Scan.CategoryFolders = folders
		}
	}
	if v, ok := envValue(lookup, EnvExcludePatterns); ok {
		c.Scan.ExcludePatterns = parseList(v)
	}
	if v, ok := envValue(lookup, EnvIgnoreSuffixes); ok {
		c.Scan.IgnoreSuffixes = parseList(v)
	}
}

// envValue fetches a variable and trims the quotes some shells leave behind.
func envValue(lookup func(string) (string, bool), name string) (string, bool) {
	raw, ok := lookup(name)
	if !ok {
		return "", false
	}
	trimmed := strings.Trim(strings.TrimSpace(raw), `"'`)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// parseCategoryFolders converts "Films=/mnt/films;Shows=/mnt/shows" into a
// category mapping. Malformed segments (no "=") are skipped; validation
// catches a mapping that ends up empty.
func parseCategoryFolders(raw string) map[string]string {
	folders := make(map[string]string)
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		category, folder, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		category = strings.TrimSpace(category)
		folder = strings.TrimSpace(folder)
		if category == "" || folder == "" {
			continue
		}
		folders[category] = folder
	}
	return folders
}

// parseList splits a comma-separated value, dropping empty entries.
func parseList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
