package config

import (
	"time"
)

// HistoryEntry records one pull into a project
type HistoryEntry struct {
	Project      string   `koanf:"project" toml:"project"`
	Timestamp    string   `koanf:"timestamp" toml:"timestamp"`
	Repositories []string `koanf:"repositories" toml:"repositories"`
}

// RecordPull appends a history entry, dropping the oldest entries beyond
// the configured limit
func (c *Config) RecordPull(project string, repositories []string, at time.Time) {
	c.History = append(c.History, HistoryEntry{
		Project:      project,
		Timestamp:    at.UTC().Format(time.RFC3339),
		Repositories: append([]string(nil), repositories...),
	})
	if limit := c.Settings.HistoryLimit; limit > 0 && len(c.History) > limit {
		c.History = append([]HistoryEntry(nil), c.History[len(c.History)-limit:]...)
	}
}

// LastPull returns the most recent pull into project
func (c *Config) LastPull(project string) (HistoryEntry, bool) {
	for i := len(c.History) - 1; i >= 0; i-- {
		if c.History[i].Project == project {
			return c.History[i], true
		}
	}
	return HistoryEntry{}, false
}
