// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config resolves the router configuration from its three layers:
// built-in defaults, an optional YAML config file, and environment
// variables. Environment variables always win.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// RegistryKind selects the registry adapter variant.
type RegistryKind string

const (
	// RegistryHTTP fetches the index and bodies from a static HTTPS tree.
	RegistryHTTP RegistryKind = "http"

	// RegistryLocal reads the same layout from a local filesystem mirror.
	RegistryLocal RegistryKind = "local"
)

// Config holds every tunable the router recognizes.
type Config struct {
	RegistryKind RegistryKind `yaml:"-"`
	RegistryURL  string       `yaml:"-"`

	CacheDir string        `yaml:"-"`
	IndexTTL time.Duration `yaml:"-"`
	BodyTTL  time.Duration `yaml:"-"`

	FetchTimeout time.Duration `yaml:"-"`

	Threshold    float64 `yaml:"-"`
	AmbiguityGap float64 `yaml:"-"`
	BodyMaxChars int     `yaml:"-"`

	Debug   bool   `yaml:"-"`
	LogFile string `yaml:"-"`
}

// fileConfig mirrors the optional YAML config file layout.
// All fields are pointers so absent keys keep their defaults.
type fileConfig struct {
	Registry struct {
		Kind           *string `yaml:"kind"`
		URL            *string `yaml:"url"`
		FetchTimeoutMS *int    `yaml:"fetch_timeout_ms"`
	} `yaml:"registry"`
	Cache struct {
		Dir             *string `yaml:"dir"`
		IndexTTLSeconds *int    `yaml:"index_ttl_seconds"`
		BodyTTLSeconds  *int    `yaml:"body_ttl_seconds"`
	} `yaml:"cache"`
	Match struct {
		Threshold    *float64 `yaml:"threshold"`
		AmbiguityGap *float64 `yaml:"ambiguity_gap"`
	} `yaml:"match"`
	Inject struct {
		BodyMaxChars *int `yaml:"body_max_chars"`
	} `yaml:"inject"`
	Debug   *bool   `yaml:"debug"`
	LogFile *string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RegistryKind: RegistryHTTP,
		RegistryURL:  "",
		CacheDir:     defaultCacheDir(),
		IndexTTL:     24 * time.Hour,
		BodyTTL:      7 * 24 * time.Hour,
		FetchTimeout: 2 * time.Second,
		Threshold:    18,
		AmbiguityGap: 10,
		BodyMaxChars: 8000,
		Debug:        false,
		LogFile:      "",
	}
}

// Load resolves the effective configuration.
//
// A .env file in the config directory is loaded into the process
// environment first (existing variables are not overridden), then the
// optional config.yaml is applied on top of the defaults, then
// environment variables on top of everything.
func Load() *Config {
	cfg := Default()

	dir := configDir()
	if dir != "" {
		// godotenv.Load never overrides variables already set.
		_ = godotenv.Load(filepath.Join(dir, ".env"))
		applyFile(cfg, filepath.Join(dir, "config.yaml"))
	}
	applyEnv(cfg)
	return cfg
}

// applyFile merges the YAML config file into cfg if the file exists.
// An unreadable or invalid file is ignored.
func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Debugf("config: ignoring invalid config file %s: %v", path, err)
		return
	}

	if fc.Registry.Kind != nil {
		setKind(cfg, *fc.Registry.Kind)
	}
	if fc.Registry.URL != nil {
		cfg.RegistryURL = *fc.Registry.URL
	}
	if fc.Registry.FetchTimeoutMS != nil && *fc.Registry.FetchTimeoutMS > 0 {
		cfg.FetchTimeout = time.Duration(*fc.Registry.FetchTimeoutMS) * time.Millisecond
	}
	if fc.Cache.Dir != nil && *fc.Cache.Dir != "" {
		cfg.CacheDir = *fc.Cache.Dir
	}
	if fc.Cache.IndexTTLSeconds != nil && *fc.Cache.IndexTTLSeconds > 0 {
		cfg.IndexTTL = time.Duration(*fc.Cache.IndexTTLSeconds) * time.Second
	}
	if fc.Cache.BodyTTLSeconds != nil && *fc.Cache.BodyTTLSeconds > 0 {
		cfg.BodyTTL = time.Duration(*fc.Cache.BodyTTLSeconds) * time.Second
	}
	if fc.Match.Threshold != nil {
		cfg.Threshold = *fc.Match.Threshold
	}
	if fc.Match.AmbiguityGap != nil {
		cfg.AmbiguityGap = *fc.Match.AmbiguityGap
	}
	if fc.Inject.BodyMaxChars != nil && *fc.Inject.BodyMaxChars > 0 {
		cfg.BodyMaxChars = *fc.Inject.BodyMaxChars
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
}

// applyEnv merges SKILL_ROUTER_* environment variables into cfg.
// Invalid numeric values keep the current value.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SKILL_ROUTER_REGISTRY_KIND"); v != "" {
		setKind(cfg, v)
	}
	if v := os.Getenv("SKILL_ROUTER_REGISTRY_URL"); v != "" {
		cfg.RegistryURL = v
	}
	if v := os.Getenv("SKILL_ROUTER_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v, ok := envSeconds("SKILL_ROUTER_INDEX_TTL_SECONDS"); ok {
		cfg.IndexTTL = v
	}
	if v, ok := envSeconds("SKILL_ROUTER_BODY_TTL_SECONDS"); ok {
		cfg.BodyTTL = v
	}
	if v := os.Getenv("SKILL_ROUTER_FETCH_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.FetchTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("SKILL_ROUTER_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Threshold = f
		}
	}
	if v := os.Getenv("SKILL_ROUTER_AMBIGUITY_GAP"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.AmbiguityGap = f
		}
	}
	if v := os.Getenv("SKILL_ROUTER_BODY_MAX_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BodyMaxChars = n
		}
	}
	if v := os.Getenv("SKILL_ROUTER_DEBUG"); v != "" {
		cfg.Debug = isTruthy(v)
	}
	if v := os.Getenv("SKILL_ROUTER_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

func envSeconds(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

func setKind(cfg *Config, v string) {
	switch RegistryKind(strings.ToLower(strings.TrimSpace(v))) {
	case RegistryHTTP:
		cfg.RegistryKind = RegistryHTTP
	case RegistryLocal:
		cfg.RegistryKind = RegistryLocal
	default:
		log.Debugf("config: unknown registry kind %q, keeping %q", v, cfg.RegistryKind)
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// configDir returns the per-user config directory for the router.
func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "skill-router")
}

// defaultCacheDir returns the per-user cache root.
// Falls back to a temp-dir path when the user cache dir is unavailable.
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "skill-router")
	}
	return filepath.Join(base, "skill-router")
}
