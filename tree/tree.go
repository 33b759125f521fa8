// Package tree renders a directory hierarchy as an indented text tree.
//
// Typical use is the one-shot Generate:
//
//	rendered, err := tree.Generate("./project", tree.Options{ShowSize: true})
//
// or a reusable Builder for repeated calls with one option set:
//
//	builder := tree.New(tree.Options{MaxDepth: tree.Depth(2)})
//	rendered, err := builder.BuildTree(".")
//	entries, err := builder.ListEntries(".")
package tree

import (
	"time"

	"github.com/spf13/afero"

	"github.com/temirov/tree/internal/commands"
	"github.com/temirov/tree/internal/output"
	"github.com/temirov/tree/internal/types"
	"github.com/temirov/tree/internal/utils"
)

// DirectoryEntry describes one filtered entry returned by ListEntries.
type DirectoryEntry = types.DirectoryEntry

// UnlimitedDepth is the MaxDepth of a Configuration without a depth limit.
const UnlimitedDepth = types.UnlimitedDepth

// Configuration is the resolved, immutable option set used for one tree generation.
type Configuration = types.Configuration

// PathNotFoundError is returned when the root path does not exist.
type PathNotFoundError = commands.PathNotFoundError

// Options selects what a tree shows. The zero value lists every non-hidden entry
// at unlimited depth, directories first.
type Options struct {
	// MaxDepth limits recursion; nil means unlimited and 0 renders only the root line.
	MaxDepth   *int
	ShowHidden bool
	ShowSize   bool
	ShowDate   bool
	// ExcludePatterns drops entries whose root-relative path matches any pattern.
	ExcludePatterns []string
	// IncludePatterns, when non-empty, keeps only entries matching at least one pattern.
	IncludePatterns []string
	// Sort orders directories before files and then by name; nil means enabled.
	Sort *bool
	// FileSystem replaces the host filesystem, mainly for tests.
	FileSystem afero.Fs
}

// Depth returns a MaxDepth value.
func Depth(levels int) *int {
	return &levels
}

// Bool returns a pointer to value for optional boolean options.
func Bool(value bool) *bool {
	return &value
}

// Configuration resolves the options into the immutable configuration used for one call.
func (options Options) Configuration() Configuration {
	configuration := types.DefaultConfiguration()
	if options.MaxDepth != nil {
		configuration.MaxDepth = *options.MaxDepth
		if configuration.MaxDepth < 0 {
			configuration.MaxDepth = types.UnlimitedDepth
		}
	}
	configuration.ShowHidden = options.ShowHidden
	configuration.ShowSize = options.ShowSize
	configuration.ShowDate = options.ShowDate
	configuration.ExcludePatterns = append([]string(nil), options.ExcludePatterns...)
	configuration.IncludePatterns = append([]string(nil), options.IncludePatterns...)
	if options.Sort != nil {
		configuration.Sort = *options.Sort
	}
	return configuration
}

// Builder renders trees with a fixed set of options.
type Builder struct {
	treeBuilder *commands.TreeBuilder
}

// New returns a Builder for options.
func New(options Options) *Builder {
	treeBuilder := commands.NewTreeBuilder(options.Configuration())
	if options.FileSystem != nil {
		treeBuilder.FileSystem = options.FileSystem
	}
	return &Builder{treeBuilder: treeBuilder}
}

// BuildTree renders the tree rooted at rootPath. Each line ends with a newline.
func (builder *Builder) BuildTree(rootPath string) (string, error) {
	node, buildError := builder.treeBuilder.GetTreeData(rootPath)
	if buildError != nil {
		return "", buildError
	}
	return output.RenderTreeRaw(node), nil
}

// ListEntries returns the filtered and sorted immediate entries of directoryPath.
// A missing path or one that is not a readable directory yields an empty listing.
func (builder *Builder) ListEntries(directoryPath string) ([]DirectoryEntry, error) {
	return builder.treeBuilder.ListEntries(directoryPath)
}

// Generate renders the tree rooted at rootPath with options.
func Generate(rootPath string, options Options) (string, error) {
	return New(options).BuildTree(rootPath)
}

// MatchesPattern reports whether entryPath matches a wildcard or substring pattern.
func MatchesPattern(entryPath string, pattern string) bool {
	return utils.MatchesPattern(entryPath, pattern)
}

// FormatSize renders a byte count as used in tree lines, for example "1.5 KB".
func FormatSize(bytes int64) string {
	return utils.FormatFileSize(bytes)
}

// FormatDate renders the UTC calendar date of value as YYYY-MM-DD.
func FormatDate(value time.Time) string {
	return utils.FormatDate(value)
}
