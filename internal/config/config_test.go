package config

import (
	"os"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chtmp(t)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.ProbeTimeoutSeconds != 10 || s.ProbeConcurrency != 5 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.ReputationEnabled {
		t.Fatal("reputation should be disabled by default")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	chtmp(t)

	yaml := "proxy: http://proxy.local:8080\nprobe_concurrency: 2\nuploads_dir: /srv/mas/uploads\n"
	if err := os.WriteFile(SettingsFile, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	t.Setenv("MAS_PROXY", "http://other.local:3128")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Proxy != "http://other.local:3128" {
		t.Fatalf("env should override file: got=%q", s.Proxy)
	}
	if s.ProbeConcurrency != 2 {
		t.Fatalf("file value lost: got=%d", s.ProbeConcurrency)
	}
	if s.UploadsDir != "/srv/mas/uploads" {
		t.Fatalf("uploads dir mismatch: got=%q", s.UploadsDir)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	chtmp(t)

	if err := os.WriteFile(SettingsFile, []byte("probe_concurrency: [oops\n"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error for malformed settings file")
	}
}

func chtmp(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("Chdir(tmp) error: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
}
