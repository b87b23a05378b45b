package common

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joseph-ayodele/tourpack/constants"
)

// clearEnv blanks every variable LoadConfig reads; getEnv treats "" as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STRATEGY", "WORKERS", "PDFTOTEXT", "MAX_FILE_MB",
		"LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "LLM_TEMPERATURE", "LLM_TIMEOUT", "LLM_API_KEY",
		"OPENAI_API_KEY", "OPENAI_MODEL", "GEMINI_API_KEY", "GEMINI_MODEL",
		"VERTEX_PROJECT", "VERTEX_REGION", "VERTEX_MODEL",
		"DB_DRIVER", "DB_URL", "DB_TABLE", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_DIAL_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Batch.Strategy != constants.StrategyRules || cfg.Batch.Workers != 1 {
		t.Errorf("batch = %+v", cfg.Batch)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.Database.Table != "tour_packages" {
		t.Errorf("table = %q", cfg.Database.Table)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "tourpack.yaml")
	yaml := `
batch:
  strategy: llm
  workers: 3
llm:
  provider: gemini
  api_key: from-file
  timeout: 10s
database:
  driver: sqlite
  dsn: file:tours.db
`
	if err := os.WriteFile(p, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WORKERS", "5")

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Batch.Strategy != constants.StrategyLLM {
		t.Errorf("strategy = %q", cfg.Batch.Strategy)
	}
	if cfg.Batch.Workers != 5 {
		t.Errorf("workers = %d, env should win over file", cfg.Batch.Workers)
	}
	if cfg.LLM.APIKey != "from-file" || cfg.LLM.Timeout != 10*time.Second {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.LLM.Model != "gemini-1.5-flash" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.Database.Table != "tour_packages" {
		t.Errorf("table default lost: %q", cfg.Database.Table)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadConfig_BadFile(t *testing.T) {
	clearEnv(t)
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("batch: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(p); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"bad strategy", func(c *Config) { c.Batch.Strategy = "magic" }, "strategy"},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }, "workers"},
		{"llm without key", func(c *Config) {
			c.Batch.Strategy = constants.StrategyLLM
			c.LLM.APIKey = ""
		}, "llm.api_key"},
		{"vertex without project", func(c *Config) {
			c.Batch.Strategy = constants.StrategyLLM
			c.LLM.Provider = constants.ProviderVertex
			c.LLM.Region = "us-central1"
		}, "llm.project"},
		{"unsafe table name", func(c *Config) {
			c.Database.Driver = "sqlite"
			c.Database.DSN = "file:x.db"
			c.Database.Table = "tours; drop table x"
		}, "database.table"},
		{"db without dsn", func(c *Config) { c.Database.Driver = "postgres" }, "database.dsn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantSub)
			}
		})
	}
}

func TestDocumentError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewReadFailure("a.pdf", cause)
	if !errors.Is(err, cause) {
		t.Error("DocumentError should unwrap to its cause")
	}
	if KindOf(err) != KindDocumentReadFailure {
		t.Errorf("kind = %q", KindOf(err))
	}
	if !strings.Contains(err.Error(), `"a.pdf"`) {
		t.Errorf("message = %q", err.Error())
	}
	if KindOf(cause) != "" {
		t.Error("plain errors have no kind")
	}

	sm := NewSchemaMismatch([]string{"hotels"})
	if !errors.Is(sm, ErrSchemaMismatch) || !strings.Contains(sm.Error(), "hotels") {
		t.Errorf("schema mismatch = %v", sm)
	}
}
