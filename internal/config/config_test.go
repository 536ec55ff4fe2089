package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Budgets.Montgomery != 20 {
		t.Errorf("expected default montgomery budget 20, got %d", cfg.Budgets.Montgomery)
	}
	if cfg.Budgets.Omniglot != 3 {
		t.Errorf("expected default omniglot budget 3, got %d", cfg.Budgets.Omniglot)
	}
	if cfg.Retry.Attempts != 5 {
		t.Errorf("expected default retry attempts 5, got %d", cfg.Retry.Attempts)
	}
	if cfg.Retry.Backoff != time.Second {
		t.Errorf("expected default retry backoff 1s, got %v", cfg.Retry.Backoff)
	}
	if cfg.Retry.MaxBackoff != 30*time.Second {
		t.Errorf("expected default retry max backoff 30s, got %v", cfg.Retry.MaxBackoff)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
root_dir: /data/fixtures
progress: true
budgets:
  montgomery: 10
  omniglot: 5
bucket: s3://ci-fixtures
prefix: datasets
retry:
  attempts: 10
  backoff: 2s
  max_backoff: 60s
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.RootDir != "/data/fixtures" {
		t.Errorf("expected root dir /data/fixtures, got %s", cfg.RootDir)
	}
	if !cfg.Progress {
		t.Error("expected progress true")
	}
	if cfg.Budgets.Montgomery != 10 {
		t.Errorf("expected montgomery budget 10, got %d", cfg.Budgets.Montgomery)
	}
	if cfg.Budgets.Omniglot != 5 {
		t.Errorf("expected omniglot budget 5, got %d", cfg.Budgets.Omniglot)
	}
	if cfg.Bucket != "s3://ci-fixtures" {
		t.Errorf("expected bucket s3://ci-fixtures, got %s", cfg.Bucket)
	}
	if cfg.Prefix != "datasets" {
		t.Errorf("expected prefix datasets, got %s", cfg.Prefix)
	}
	if cfg.Retry.Attempts != 10 {
		t.Errorf("expected retry attempts 10, got %d", cfg.Retry.Attempts)
	}
	if cfg.Retry.Backoff != 2*time.Second {
		t.Errorf("expected retry backoff 2s, got %v", cfg.Retry.Backoff)
	}
	if cfg.Retry.MaxBackoff != 60*time.Second {
		t.Errorf("expected retry max backoff 60s, got %v", cfg.Retry.MaxBackoff)
	}
}

func TestLoadFromYAMLPartial(t *testing.T) {
	yamlContent := `
budgets:
  omniglot: 7
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	// Unset keys keep their defaults.
	if cfg.Budgets.Montgomery != 20 {
		t.Errorf("expected default montgomery budget 20, got %d", cfg.Budgets.Montgomery)
	}
	if cfg.Budgets.Omniglot != 7 {
		t.Errorf("expected omniglot budget 7, got %d", cfg.Budgets.Omniglot)
	}
	if cfg.Retry.Attempts != 5 {
		t.Errorf("expected default retry attempts 5, got %d", cfg.Retry.Attempts)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DSFETCH_ROOT_DIR", "/env/root")
	t.Setenv("DSFETCH_PROGRESS", "true")
	t.Setenv("DSFETCH_BUDGET_MONTGOMERY", "15")
	t.Setenv("DSFETCH_BUDGET_OMNIGLOT", "2")
	t.Setenv("DSFETCH_BUCKET", "gs://fixtures")
	t.Setenv("DSFETCH_RETRY_ATTEMPTS", "3")
	t.Setenv("DSFETCH_RETRY_BACKOFF", "500ms")
	t.Setenv("DSFETCH_RETRY_MAX_BACKOFF", "10s")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.RootDir != "/env/root" {
		t.Errorf("expected root dir /env/root, got %s", cfg.RootDir)
	}
	if !cfg.Progress {
		t.Error("expected progress true")
	}
	if cfg.Budgets.Montgomery != 15 {
		t.Errorf("expected montgomery budget 15, got %d", cfg.Budgets.Montgomery)
	}
	if cfg.Budgets.Omniglot != 2 {
		t.Errorf("expected omniglot budget 2, got %d", cfg.Budgets.Omniglot)
	}
	if cfg.Bucket != "gs://fixtures" {
		t.Errorf("expected bucket gs://fixtures, got %s", cfg.Bucket)
	}
	if cfg.Retry.Attempts != 3 {
		t.Errorf("expected retry attempts 3, got %d", cfg.Retry.Attempts)
	}
	if cfg.Retry.Backoff != 500*time.Millisecond {
		t.Errorf("expected retry backoff 500ms, got %v", cfg.Retry.Backoff)
	}
	if cfg.Retry.MaxBackoff != 10*time.Second {
		t.Errorf("expected retry max backoff 10s, got %v", cfg.Retry.MaxBackoff)
	}
}

func TestLoadFromEnvInvalidBudget(t *testing.T) {
	t.Setenv("DSFETCH_BUDGET_MONTGOMERY", "not-a-number")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for invalid budget")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero montgomery budget", func(c *Config) { c.Budgets.Montgomery = 0 }, true},
		{"negative omniglot budget", func(c *Config) { c.Budgets.Omniglot = -1 }, true},
		{"negative retry attempts", func(c *Config) { c.Retry.Attempts = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.RootDir = "/base/root"
	base.Bucket = "s3://base"

	override := Config{
		Budgets: BudgetConfig{Omniglot: 9},
	}

	merged := base.Merge(override)

	// Should keep base values for non-overridden fields
	if merged.RootDir != "/base/root" {
		t.Errorf("expected RootDir preserved, got %s", merged.RootDir)
	}
	if merged.Bucket != "s3://base" {
		t.Errorf("expected Bucket preserved, got %s", merged.Bucket)
	}
	if merged.Budgets.Montgomery != 20 {
		t.Errorf("expected Montgomery budget preserved, got %d", merged.Budgets.Montgomery)
	}

	// Should use override values
	if merged.Budgets.Omniglot != 9 {
		t.Errorf("expected Omniglot budget overridden to 9, got %d", merged.Budgets.Omniglot)
	}
}

func TestLoadYAMLFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}
