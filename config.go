package psylex

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Config collects the resource paths and runtime knobs shared by the
// command-line tools. Values come from the environment (a .env file is
// honored if present) with flag overrides applied by the commands.
type Config struct {
	DictionaryPath string
	NormsPath      string
	ModelDir       string
	Workers        int
	ServerAddr     string
}

// LoadConfig reads configuration from the environment, loading a .env
// file first when one exists.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		DictionaryPath: getEnv("PSYLEX_DICT", "data/dictionary.cat"),
		NormsPath:      getEnv("PSYLEX_NORMS", "data/norms.tsv"),
		ModelDir:       getEnv("PSYLEX_MODELS", "models"),
		Workers:        getEnvInt("PSYLEX_WORKERS", runtime.NumCPU()),
		ServerAddr:     getEnv("PSYLEX_ADDR", ":8080"),
	}
}

// Validate checks that the configured resource files exist.
func (c *Config) Validate() error {
	if _, err := os.Stat(c.DictionaryPath); err != nil {
		return fmt.Errorf("dictionary file: %w", err)
	}
	if _, err := os.Stat(c.NormsPath); err != nil {
		return fmt.Errorf("norms file: %w", err)
	}
	return nil
}

// NewExtractorFromConfig loads the dictionary and norm table named by
// the config and builds the extraction engine.
func NewExtractorFromConfig(c *Config) (*Extractor, error) {
	dict, err := LoadDictionary(c.DictionaryPath)
	if err != nil {
		return nil, err
	}
	lookup, err := LoadNormTable(c.NormsPath)
	if err != nil {
		return nil, err
	}
	return NewExtractor(dict, lookup)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
