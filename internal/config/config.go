package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env    string `yaml:"env"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL      string `yaml:"url"`
		MaxConns int32  `yaml:"max_conns"`
	} `yaml:"postgres"`
	Questions Questions `yaml:"questions"`
}

// Questions tunes the fetch/cache/admission pipeline.
type Questions struct {
	CacheTTL        string `yaml:"cache_ttl"`
	CacheMaxEntries int    `yaml:"cache_max_entries"`
	FetchTimeout    string `yaml:"fetch_timeout"`
	ReadProfile     string `yaml:"read_profile"`
	WriteProfile    string `yaml:"write_profile"`
	MinCoverage     int    `yaml:"min_coverage"`
	QuizSize        int    `yaml:"quiz_size"`
}

const (
	DefaultCacheTTL        = 5 * time.Minute
	DefaultCacheMaxEntries = 512
	DefaultFetchTimeout    = 10 * time.Second
	DefaultMinCoverage     = 10
	DefaultQuizSize        = 10
)

// Load reads YAML config from path. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	q := &c.Questions
	if q.CacheMaxEntries <= 0 {
		q.CacheMaxEntries = DefaultCacheMaxEntries
	}
	if q.ReadProfile == "" {
		q.ReadProfile = "lenient"
	}
	if q.WriteProfile == "" {
		q.WriteProfile = "strict"
	}
	if q.MinCoverage <= 0 {
		q.MinCoverage = DefaultMinCoverage
	}
	if q.QuizSize <= 0 {
		q.QuizSize = DefaultQuizSize
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
