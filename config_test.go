package psylex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PSYLEX_DICT", "")
	t.Setenv("PSYLEX_NORMS", "")
	t.Setenv("PSYLEX_WORKERS", "")

	cfg := LoadConfig()
	if cfg.DictionaryPath != "data/dictionary.cat" {
		t.Errorf("DictionaryPath = %q", cfg.DictionaryPath)
	}
	if cfg.NormsPath != "data/norms.tsv" {
		t.Errorf("NormsPath = %q", cfg.NormsPath)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", cfg.Workers)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PSYLEX_DICT", "/tmp/custom.cat")
	t.Setenv("PSYLEX_WORKERS", "3")
	t.Setenv("PSYLEX_ADDR", ":9999")

	cfg := LoadConfig()
	if cfg.DictionaryPath != "/tmp/custom.cat" {
		t.Errorf("DictionaryPath = %q", cfg.DictionaryPath)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.ServerAddr != ":9999" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr)
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dict.cat")
	norms := filepath.Join(dir, "norms.tsv")
	if err := os.WriteFile(dict, []byte("\tCAT\n\t\tword (1)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(norms, []byte("word\tnoun\tNLET=4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	good := &Config{DictionaryPath: dict, NormsPath: norms}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	bad := &Config{DictionaryPath: filepath.Join(dir, "absent"), NormsPath: norms}
	if err := bad.Validate(); err == nil {
		t.Error("expected an error for a missing dictionary file")
	}

	e, err := NewExtractorFromConfig(good)
	if err != nil {
		t.Fatalf("NewExtractorFromConfig: %v", err)
	}
	if e.Dictionary().Len() != 1 {
		t.Errorf("dictionary has %d categories, want 1", e.Dictionary().Len())
	}
}
