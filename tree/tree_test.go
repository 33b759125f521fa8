package tree_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/temirov/tree/tree"
)

func newProjectFs(t *testing.T) afero.Fs {
	t.Helper()
	fileSystem := afero.NewMemMapFs()
	files := map[string]string{
		"/work/root/a.txt":            "a",
		"/work/root/sub/b.txt":        "b",
		"/work/root/sub/deeper/c.txt": "c",
		"/work/root/.git/HEAD":        "ref",
	}
	for filePath, content := range files {
		if writeError := afero.WriteFile(fileSystem, filePath, []byte(content), 0o644); writeError != nil {
			t.Fatalf("write %s: %v", filePath, writeError)
		}
	}
	return fileSystem
}

func TestGenerateDefaultOptions(t *testing.T) {
	rendered, generateError := tree.Generate("/work/root", tree.Options{FileSystem: newProjectFs(t)})
	if generateError != nil {
		t.Fatalf("Generate error: %v", generateError)
	}
	expected := "└── root/\n" +
		"    ├── sub/\n" +
		"    │   ├── deeper/\n" +
		"    │   │   └── c.txt\n" +
		"    │   └── b.txt\n" +
		"    └── a.txt\n"
	if rendered != expected {
		t.Fatalf("unexpected tree:\n%s\nwant:\n%s", rendered, expected)
	}
}

func TestBuildTreeDepthLimits(t *testing.T) {
	testCases := []struct {
		name          string
		depth         int
		expectedLines int
		forbidden     string
	}{
		{name: "root_only", depth: 0, expectedLines: 1, forbidden: "sub/"},
		{name: "one_level", depth: 1, expectedLines: 3, forbidden: "b.txt"},
		{name: "two_levels", depth: 2, expectedLines: 5, forbidden: "c.txt"},
		{name: "negative_means_unlimited", depth: -5, expectedLines: 6, forbidden: ".git"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			builder := tree.New(tree.Options{MaxDepth: tree.Depth(testCase.depth), FileSystem: newProjectFs(t)})
			rendered, buildError := builder.BuildTree("/work/root")
			if buildError != nil {
				t.Fatalf("BuildTree error: %v", buildError)
			}
			lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
			if len(lines) != testCase.expectedLines {
				t.Fatalf("expected %d lines, got %d:\n%s", testCase.expectedLines, len(lines), rendered)
			}
			if lines[0] != "└── root/" {
				t.Fatalf("unexpected first line %q", lines[0])
			}
			if strings.Contains(rendered, testCase.forbidden) {
				t.Fatalf("did not expect %q in:\n%s", testCase.forbidden, rendered)
			}
		})
	}
}

func TestBuilderSortDisabledAndHidden(t *testing.T) {
	builder := tree.New(tree.Options{ShowHidden: true, Sort: tree.Bool(false), MaxDepth: tree.Depth(1), FileSystem: newProjectFs(t)})
	rendered, buildError := builder.BuildTree("/work/root")
	if buildError != nil {
		t.Fatalf("BuildTree error: %v", buildError)
	}
	if !strings.Contains(rendered, ".git/") {
		t.Fatalf("expected hidden directory in:\n%s", rendered)
	}
}

func TestBuilderListEntries(t *testing.T) {
	builder := tree.New(tree.Options{FileSystem: newProjectFs(t)})
	entries, listError := builder.ListEntries("/work/root")
	if listError != nil {
		t.Fatalf("ListEntries error: %v", listError)
	}
	if len(entries) != 2 || entries[0].Name != "sub" || entries[1].Name != "a.txt" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[1].Path != filepath.Join("/work/root", "a.txt") {
		t.Fatalf("unexpected path: %s", entries[1].Path)
	}
}

func TestGenerateMissingPath(t *testing.T) {
	rendered, generateError := tree.Generate("/does/not/exist", tree.Options{FileSystem: afero.NewMemMapFs()})
	if rendered != "" {
		t.Fatalf("expected no output, got %q", rendered)
	}
	var pathError *tree.PathNotFoundError
	if !errors.As(generateError, &pathError) {
		t.Fatalf("expected PathNotFoundError, got %v", generateError)
	}
}

func TestBuilderListEntriesMissingPath(t *testing.T) {
	builder := tree.New(tree.Options{FileSystem: afero.NewMemMapFs()})
	entries, listError := builder.ListEntries("/does/not/exist")
	if listError != nil {
		t.Fatalf("ListEntries error: %v", listError)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected an empty listing, got %+v", entries)
	}
}

func TestOptionsConfigurationCopiesPatterns(t *testing.T) {
	patterns := []string{"vendor"}
	options := tree.Options{ExcludePatterns: patterns}
	var configuration tree.Configuration = options.Configuration()
	patterns[0] = "changed"
	if configuration.ExcludePatterns[0] != "vendor" {
		t.Fatalf("configuration shares the caller's slice")
	}
	if !configuration.Sort || configuration.MaxDepth != tree.UnlimitedDepth {
		t.Fatalf("unexpected defaults: %+v", configuration)
	}
}

func TestHelpers(t *testing.T) {
	if tree.FormatSize(1536) != "1.5 KB" {
		t.Fatalf("unexpected size %s", tree.FormatSize(1536))
	}
	if !tree.MatchesPattern("src/main.go", "*.go") {
		t.Fatalf("expected wildcard match")
	}
}
