package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/tree/internal/utils"
)

func TestInitializeConfigurationLocal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDir := t.TempDir()
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDir})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if path != filepath.Join(workingDir, utils.ConfigFileName) {
		t.Fatalf("unexpected path %s", path)
	}
	loaded, loadErr := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir})
	if loadErr != nil {
		t.Fatalf("reload written configuration: %v", loadErr)
	}
	if loaded.Tree.Format != "raw" || loaded.Tree.Sort == nil || !*loaded.Tree.Sort || loaded.Tree.Level != nil {
		t.Fatalf("unexpected default configuration: %+v", loaded.Tree)
	}

	if _, err := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected an error when the file exists")
	}
	if _, err := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDir, Force: true}); err != nil {
		t.Fatalf("forced overwrite failed: %v", err)
	}
}

func TestInitializeConfigurationGlobal(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expected := filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("configuration not written: %v", statErr)
	}
}

func TestInitializeConfigurationUnknownTarget(t *testing.T) {
	if _, err := InitializeConfiguration(InitOptions{Target: "elsewhere"}); err == nil {
		t.Fatalf("expected an error for an unknown target")
	}
}
