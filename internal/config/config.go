package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds azspectre configuration loaded from .azspectre.yaml.
type Config struct {
	TenantID            string   `yaml:"tenant_id"`
	Subscriptions       []string `yaml:"subscriptions"`
	Concurrency         int      `yaml:"concurrency"`
	TopN                int      `yaml:"top_n"`
	SkipEmptyPlans      bool     `yaml:"skip_empty_plans"`
	OwnerTagKeys        []string `yaml:"owner_tag_keys"`
	PricingFile         string   `yaml:"pricing_file"`
	Format              string   `yaml:"format"`
	Timeout             string   `yaml:"timeout"`
	SubscriptionTimeout string   `yaml:"subscription_timeout"`
	Exclude             Exclude  `yaml:"exclude"`
}

// Exclude defines resources to skip during auditing.
type Exclude struct {
	ResourceIDs []string `yaml:"resource_ids"`
	Tags        []string `yaml:"tags"`
}

// ParseTags converts tag strings ("Key=Value" or "Key") into a map.
// Key-only entries have an empty string value, meaning "match any value".
func (e Exclude) ParseTags() map[string]string {
	if len(e.Tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(e.Tags))
	for _, s := range e.Tags {
		if k, v, ok := strings.Cut(s, "="); ok {
			m[k] = v
		} else {
			m[s] = ""
		}
	}
	return m
}

// ParseResourceIDs converts the exclusion ID list into a lookup set.
func (e Exclude) ParseResourceIDs() map[string]bool {
	if len(e.ResourceIDs) == 0 {
		return nil
	}
	m := make(map[string]bool, len(e.ResourceIDs))
	for _, id := range e.ResourceIDs {
		m[id] = true
	}
	return m
}

// TimeoutDuration parses the overall timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	return parseDuration(c.Timeout)
}

// SubscriptionTimeoutDuration parses the per-subscription timeout string.
func (c Config) SubscriptionTimeoutDuration() time.Duration {
	return parseDuration(c.SubscriptionTimeout)
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, _ := time.ParseDuration(s)
	return d
}

// Load searches for .azspectre.yaml or .azspectre.yml in the given directory
// and returns the parsed config. Returns an empty Config if no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".azspectre.yaml"),
		filepath.Join(dir, ".azspectre.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
