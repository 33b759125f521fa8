package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/tree/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name          string
		globalContent string
		localContent  string
		explicitPath  string
		explicitBody  string
		expectFormat  string
		expectHidden  *bool
		expectSort    *bool
		expectLevel   *int
		expectExclude []string
	}{
		{
			name:          "local_overrides_global",
			globalContent: "tree:\n  format: json\n  all: true\n  ignore:\n    - vendor\n",
			localContent:  "tree:\n  format: xml\n  sort: false\n  level: 2\n  ignore:\n    - dist\n    - dist\n",
			expectFormat:  "xml",
			expectHidden:  boolPointer(true),
			expectSort:    boolPointer(false),
			expectLevel:   intPointer(2),
			expectExclude: []string{"dist"},
		},
		{
			name:          "global_only",
			globalContent: "tree:\n  size: true\n  ignore:\n    - node_modules\n",
			expectExclude: []string{"node_modules"},
		},
		{
			name:          "explicit_path_replaces_local",
			localContent:  "tree:\n  format: xml\n",
			explicitPath:  "custom.yaml",
			explicitBody:  "tree:\n  format: raw\n  level: 0\n",
			expectFormat:  "raw",
			expectLevel:   intPointer(0),
			expectExclude: []string{},
		},
		{
			name:          "no_files",
			expectExclude: []string{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitBody), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			if loadedConfig.Tree.Format != testCase.expectFormat {
				t.Fatalf("expected format %q, got %q", testCase.expectFormat, loadedConfig.Tree.Format)
			}
			if !reflect.DeepEqual(loadedConfig.Tree.ShowHidden, testCase.expectHidden) {
				t.Fatalf("unexpected all value: %v", loadedConfig.Tree.ShowHidden)
			}
			if !reflect.DeepEqual(loadedConfig.Tree.Sort, testCase.expectSort) {
				t.Fatalf("unexpected sort value: %v", loadedConfig.Tree.Sort)
			}
			if !reflect.DeepEqual(loadedConfig.Tree.Level, testCase.expectLevel) {
				t.Fatalf("unexpected level value: %v", loadedConfig.Tree.Level)
			}
			if !reflect.DeepEqual(loadedConfig.Tree.Exclude, testCase.expectExclude) {
				t.Fatalf("expected exclude %v, got %v", testCase.expectExclude, loadedConfig.Tree.Exclude)
			}
		})
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "absent.yaml",
	})
	if err == nil {
		t.Fatalf("expected an error for a missing explicit configuration file")
	}
}

func TestLoadApplicationConfigurationInvalidYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workingDir, utils.ConfigFileName), []byte("tree: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestTreeConfigurationMergeKeepsUnsetValues(t *testing.T) {
	base := TreeConfiguration{Format: "json", ShowSize: boolPointer(true), Include: []string{"*.go"}}
	merged := base.merge(TreeConfiguration{ShowDate: boolPointer(true)})
	if merged.Format != "json" || merged.ShowSize == nil || !*merged.ShowSize {
		t.Fatalf("base values lost: %+v", merged)
	}
	if merged.ShowDate == nil || !*merged.ShowDate {
		t.Fatalf("override not applied: %+v", merged)
	}
	if !reflect.DeepEqual(merged.Include, []string{"*.go"}) {
		t.Fatalf("unexpected include patterns: %v", merged.Include)
	}
}
