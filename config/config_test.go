package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadConfigFromFile_MissingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	config, err := loadConfigFromFile(configPath)
	if err == nil {
		t.Fatal("loadConfigFromFile should return error for missing file")
	}
	if config != nil {
		t.Fatal("loadConfigFromFile should return nil config for missing file")
	}
}

func TestLoadConfigFromFile_ValidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	writeFile(t, configPath, `po_dir: translations
locales_dir: public/_locales
minify: true
jobs: 2
`)

	config, err := loadConfigFromFile(configPath)
	if err != nil {
		t.Fatalf("loadConfigFromFile should succeed for valid file, got error: %v", err)
	}
	if config.PoDir != "translations" {
		t.Errorf("expected PoDir 'translations', got '%s'", config.PoDir)
	}
	if config.LocalesDir != "public/_locales" {
		t.Errorf("expected LocalesDir 'public/_locales', got '%s'", config.LocalesDir)
	}
	if config.OutputName != "" {
		t.Errorf("expected empty OutputName, got '%s'", config.OutputName)
	}
	if config.Minify == nil || !*config.Minify {
		t.Errorf("expected Minify true, got %v", config.Minify)
	}
	if config.FlagUnreviewed != nil {
		t.Errorf("expected FlagUnreviewed unset, got %v", *config.FlagUnreviewed)
	}
	if config.Jobs == nil || *config.Jobs != 2 {
		t.Errorf("expected Jobs 2, got %v", config.Jobs)
	}
}

func TestLoadConfigFromFile_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	writeFile(t, configPath, "po_dir: [unclosed\n")

	if _, err := loadConfigFromFile(configPath); err == nil {
		t.Fatal("loadConfigFromFile should fail for invalid YAML")
	}
}

func TestLoadConfigFromFile_InvalidValues(t *testing.T) {
	for _, content := range []string{
		"jobs: 0\n",
		"output_name: sub/messages.json\n",
	} {
		configPath := filepath.Join(t.TempDir(), FileName)
		writeFile(t, configPath, content)
		if _, err := loadConfigFromFile(configPath); err == nil {
			t.Errorf("expected error for %q", content)
		}
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("", t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PoDir != DefaultPoDir || cfg.LocalesDir != DefaultLocalesDir || cfg.OutputName != DefaultOutputName {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if *cfg.Minify || *cfg.ExpandForDisplay || *cfg.FlagUnreviewed {
		t.Errorf("boolean options should default to false")
	}
	if *cfg.Jobs != DefaultJobs {
		t.Errorf("expected %d jobs, got %d", DefaultJobs, *cfg.Jobs)
	}
}

func TestLoadConfig_RepoOverridesHome(t *testing.T) {
	home := t.TempDir()
	workDir := t.TempDir()
	t.Setenv("HOME", home)

	writeFile(t, filepath.Join(home, UserFileName), `locales_dir: home_locales
flag_unreviewed: true
minify: true
`)
	writeFile(t, filepath.Join(workDir, FileName), `locales_dir: repo_locales
minify: false
`)

	cfg, err := LoadConfig("", workDir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LocalesDir != "repo_locales" {
		t.Errorf("expected repo_locales, got %s", cfg.LocalesDir)
	}
	if *cfg.Minify {
		t.Error("repo config should turn minify off")
	}
	if !*cfg.FlagUnreviewed {
		t.Error("flag_unreviewed from home config should be kept")
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	workDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	writeFile(t, filepath.Join(workDir, FileName), "po_dir: ignored\n")

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "output_name: strings.json\n")

	cfg, err := LoadConfig(explicit, workDir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PoDir != DefaultPoDir {
		t.Errorf("repo config must be ignored with an explicit file, got po_dir %s", cfg.PoDir)
	}
	if cfg.OutputName != "strings.json" {
		t.Errorf("expected strings.json, got %s", cfg.OutputName)
	}

	if _, err := LoadConfig(filepath.Join(workDir, "missing.yaml"), workDir); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	writeFile(t, envFile, "PO2JSON_TEST_LOAD_ENV=from-dotenv\n")
	t.Setenv("PO2JSON_TEST_LOAD_ENV", "")
	os.Unsetenv("PO2JSON_TEST_LOAD_ENV")

	LoadEnv(envFile)
	if got := os.Getenv("PO2JSON_TEST_LOAD_ENV"); got != "from-dotenv" {
		t.Errorf("expected value from .env, got %q", got)
	}

	// missing files are ignored
	LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
}

func TestDump(t *testing.T) {
	data, err := Dump(Default())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	for _, want := range []string{"po_dir: po", "locales_dir: _locales", "minify: false", "jobs: 4"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %q in:\n%s", want, data)
		}
	}
}
