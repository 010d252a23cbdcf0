package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the runtime configuration for the reporting core. Values come
// from ".mas.yaml" in the working directory with environment overrides on
// top, so containers can run without a config file at all.
type Settings struct {
	// Upstream proxy for all outbound traffic (probe, reputation, PDF tool).
	Proxy string `yaml:"proxy"`
	// TLSNoVerify disables certificate verification for probe traffic. Only
	// meant for lab setups behind intercepting proxies.
	TLSNoVerify bool `yaml:"tls_no_verify"`

	ProbeTimeoutSeconds int   `yaml:"probe_timeout_seconds"`
	ProbeConcurrency    int   `yaml:"probe_concurrency"`
	ProbeDelayMS        int   `yaml:"probe_delay_ms"`
	ProbeBudget         int64 `yaml:"probe_budget"`

	// UploadsDir holds submitted artifacts as <hash>/<hash><ext>.
	UploadsDir   string `yaml:"uploads_dir"`
	DownloadsDir string `yaml:"downloads_dir"`

	ReputationEnabled bool   `yaml:"reputation_enabled"`
	ReputationAPIKey  string `yaml:"reputation_api_key"`
	ReputationBaseURL string `yaml:"reputation_base_url"`

	DatabaseURL string `yaml:"database_url"`
}

// SettingsFile is looked up in the working directory.
const SettingsFile = ".mas.yaml"

func Default() Settings {
	return Settings{
		ProbeTimeoutSeconds: 10,
		ProbeConcurrency:    5,
		UploadsDir:          "uploads",
		DownloadsDir:        "downloads",
		ReputationBaseURL:   "https://www.virustotal.com",
	}
}

// Load reads SettingsFile if present and applies environment overrides.
// A missing file is not an error; a malformed one is.
func Load() (Settings, error) {
	s := Default()

	raw, err := os.ReadFile(SettingsFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults + env only
	case err != nil:
		return s, fmt.Errorf("read %s: %w", SettingsFile, err)
	default:
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return s, fmt.Errorf("parse %s: %w", SettingsFile, err)
		}
	}

	if v := os.Getenv("MAS_PROXY"); v != "" {
		s.Proxy = v
	}
	if v := os.Getenv("MAS_REPUTATION_API_KEY"); v != "" {
		s.ReputationAPIKey = v
		s.ReputationEnabled = true
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		s.DatabaseURL = v
	}

	if s.ProbeTimeoutSeconds <= 0 {
		s.ProbeTimeoutSeconds = Default().ProbeTimeoutSeconds
	}
	if s.ProbeConcurrency <= 0 {
		s.ProbeConcurrency = Default().ProbeConcurrency
	}
	return s, nil
}

func (s Settings) ProbeTimeout() time.Duration {
	return time.Duration(s.ProbeTimeoutSeconds) * time.Second
}

func (s Settings) ProbeDelay() time.Duration {
	return time.Duration(s.ProbeDelayMS) * time.Millisecond
}
