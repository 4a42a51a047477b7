package logging

import (
	"os"
	"path/filepath"
	"testing"
)

// resetState clears package globals between tests; the logger is a
// process-wide singleton by design.
func resetState() {
	CloseAll()
	logsDir = ""
	stateDir = ""
	cfg = loggingConfig{}
	logLevel = LevelInfo
}

func TestInitialize_DebugModeOff(t *testing.T) {
	defer resetState()

	dir := t.TempDir()
	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// No config file means production mode: nothing on disk.
	Catalog("this goes nowhere")
	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Error("expected no logs directory in production mode")
	}
}

func TestInitialize_DebugModeWritesCategoryFiles(t *testing.T) {
	defer resetState()

	dir := t.TempDir()
	cfgYAML := "logging:\n  debug_mode: true\n  level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	Dispatch("order %s dispatched", "ref-1")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("expected logs directory: %v", err)
	}
	found := false
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".log" {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one category log file")
	}
}

func TestCategoryFiltering(t *testing.T) {
	defer resetState()

	dir := t.TempDir()
	cfgYAML := "logging:\n  debug_mode: true\n  level: debug\n  categories:\n    cart: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if IsCategoryEnabled(CategoryCart) {
		t.Error("cart category should be disabled")
	}
	if !IsCategoryEnabled(CategoryCheckout) {
		t.Error("unlisted categories default to enabled")
	}
}
