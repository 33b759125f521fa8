// Package commands contains the directory traversal behind the tree command.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/temirov/tree/internal/types"
	"github.com/temirov/tree/internal/utils"
)

const (
	// warningStatPathFormat is used when file information cannot be retrieved.
	warningStatPathFormat = "Warning: unable to stat %s: %v"
	// warningReadDirectoryFormat is used when a directory listing fails.
	warningReadDirectoryFormat = "Warning: unable to read directory %s: %v"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	hiddenEntryPrefix       = "."
	directoryIdentitySuffix = "/"
)

// listedEntry is a directory entry that survived filtering. info is nil when the
// entry could not be stat'd; such entries sort as files and are never rendered.
type listedEntry struct {
	name string
	path string
	// identity is the slash-separated path relative to the traversal root used for
	// pattern matching.
	identity  string
	info      os.FileInfo
	statError error
	statted   bool
}

func (entry listedEntry) isDirectory() bool {
	return entry.info != nil && entry.info.IsDir()
}

// traversal carries the per-call working set of one tree generation.
type traversal struct {
	builder    *TreeBuilder
	fileSystem afero.Fs
	collator   *collate.Collator
}

func (treeBuilder *TreeBuilder) newTraversal() *traversal {
	return &traversal{
		builder:    treeBuilder,
		fileSystem: treeBuilder.fileSystem(),
		collator:   collate.New(language.Und),
	}
}

// GetTreeData generates the tree structure for rootPath. A directory root yields a
// directory node with its filtered, sorted and depth-limited descendants; any other
// entry yields a single file node. Only a missing root is reported as an error.
func (treeBuilder *TreeBuilder) GetTreeData(rootPath string) (*types.TreeOutputNode, error) {
	absoluteRootPath, rootInfo, resolveError := treeBuilder.resolveRoot(rootPath)
	if resolveError != nil {
		return nil, resolveError
	}

	session := treeBuilder.newTraversal()
	if !rootInfo.IsDir() {
		return session.fileNode(absoluteRootPath, rootInfo), nil
	}
	return session.directoryNode(absoluteRootPath, "", 0), nil
}

// ListEntries returns the filtered and sorted immediate entries of directoryPath.
// Entries that cannot be stat'd are left out. A path that is missing or is not a
// readable directory yields an empty listing.
func (treeBuilder *TreeBuilder) ListEntries(directoryPath string) ([]types.DirectoryEntry, error) {
	directoryEntries := []types.DirectoryEntry{}
	absoluteDirectoryPath, directoryInfo, resolveError := treeBuilder.resolveRoot(directoryPath)
	if resolveError != nil {
		var pathError *PathNotFoundError
		if errors.As(resolveError, &pathError) {
			treeBuilder.warn(warningStatPathFormat, directoryPath, pathError.Err)
			return directoryEntries, nil
		}
		return nil, resolveError
	}
	if !directoryInfo.IsDir() {
		return directoryEntries, nil
	}

	session := treeBuilder.newTraversal()
	listedEntries, listError := session.listDirectory(absoluteDirectoryPath, "")
	if listError != nil {
		treeBuilder.warn(warningReadDirectoryFormat, absoluteDirectoryPath, listError)
		return directoryEntries, nil
	}

	for _, listed := range listedEntries {
		if listed.info == nil {
			continue
		}
		directoryEntry := types.DirectoryEntry{
			Name:         listed.name,
			Path:         listed.path,
			IsDirectory:  listed.info.IsDir(),
			ModifiedTime: listed.info.ModTime(),
		}
		if listed.info.Mode().IsRegular() {
			directoryEntry.Size = listed.info.Size()
		}
		directoryEntries = append(directoryEntries, directoryEntry)
	}
	return directoryEntries, nil
}

// resolveRoot converts rootPath to an absolute path and stats it.
func (treeBuilder *TreeBuilder) resolveRoot(rootPath string) (string, os.FileInfo, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return "", nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	rootInfo, rootStatError := treeBuilder.fileSystem().Stat(absoluteRootPath)
	if rootStatError != nil {
		return "", nil, &PathNotFoundError{Path: rootPath, Err: rootStatError}
	}
	return absoluteRootPath, rootInfo, nil
}

// directoryNode builds the node for a directory at depth. Children are listed only
// while the depth limit allows it; an unreadable directory keeps its node and
// loses its children.
func (session *traversal) directoryNode(directoryPath string, identity string, depth int) *types.TreeOutputNode {
	node := &types.TreeOutputNode{
		Path: directoryPath,
		Name: filepath.Base(directoryPath),
		Type: types.NodeTypeDirectory,
	}
	if session.builder.Configuration.DepthExhausted(depth) {
		return node
	}

	listedEntries, listError := session.listDirectory(directoryPath, identity)
	if listError != nil {
		session.builder.warn(warningReadDirectoryFormat, directoryPath, listError)
		return node
	}

	for _, listed := range listedEntries {
		if listed.info == nil {
			continue
		}
		if listed.info.IsDir() {
			node.Children = append(node.Children, session.directoryNode(listed.path, listed.identity, depth+1))
			continue
		}
		node.Children = append(node.Children, session.fileNode(listed.path, listed.info))
	}
	return node
}

// fileNode builds a leaf node carrying the metadata the configuration asks for.
func (session *traversal) fileNode(filePath string, fileInfo os.FileInfo) *types.TreeOutputNode {
	node := &types.TreeOutputNode{
		Path:      filePath,
		Name:      filepath.Base(filePath),
		Type:      types.NodeTypeFile,
		SizeBytes: fileInfo.Size(),
	}
	if session.builder.Configuration.ShowSize {
		node.Size = utils.FormatFileSize(fileInfo.Size())
	}
	if session.builder.Configuration.ShowDate {
		node.LastModified = utils.FormatDate(fileInfo.ModTime())
	}
	return node
}

// listDirectory reads the names in directoryPath and applies hidden, exclude and
// include filtering followed by sorting. Entries are stat'd only when a pattern
// needs to know whether they are directories or once they survive filtering.
func (session *traversal) listDirectory(directoryPath string, identity string) ([]listedEntry, error) {
	entryNames, readError := session.readNames(directoryPath)
	if readError != nil {
		return nil, readError
	}

	configuration := session.builder.Configuration
	listedEntries := make([]listedEntry, 0, len(entryNames))
	for _, entryName := range entryNames {
		if !configuration.ShowHidden && strings.HasPrefix(entryName, hiddenEntryPrefix) {
			continue
		}
		listed := &listedEntry{
			name:     entryName,
			path:     filepath.Join(directoryPath, entryName),
			identity: filepath.ToSlash(filepath.Join(identity, entryName)),
		}
		if session.matchesAny(listed, configuration.ExcludePatterns) {
			continue
		}
		if len(configuration.IncludePatterns) > 0 && !session.matchesAny(listed, configuration.IncludePatterns) {
			continue
		}
		session.stat(listed)
		if listed.statError != nil {
			session.builder.warn(warningStatPathFormat, listed.path, listed.statError)
		}
		listedEntries = append(listedEntries, *listed)
	}

	if configuration.Sort {
		session.sortEntries(listedEntries)
	}
	return listedEntries, nil
}

// matchesAny reports whether the entry identity matches one of patterns. A
// directory also matches through its identity with a trailing slash, which is
// how "*/" selects directories.
func (session *traversal) matchesAny(listed *listedEntry, patterns []string) bool {
	for _, pattern := range patterns {
		if utils.MatchesPattern(listed.identity, pattern) {
			return true
		}
		if utils.MatchesPattern(listed.identity+directoryIdentitySuffix, pattern) && session.stat(listed).isDirectory() {
			return true
		}
	}
	return false
}

// stat loads the entry metadata once.
func (session *traversal) stat(listed *listedEntry) *listedEntry {
	if listed.statted {
		return listed
	}
	listed.statted = true
	listed.info, listed.statError = session.fileSystem.Stat(listed.path)
	return listed
}

func (session *traversal) readNames(directoryPath string) ([]string, error) {
	directory, openError := session.fileSystem.Open(directoryPath)
	if openError != nil {
		return nil, openError
	}
	defer directory.Close()
	return directory.Readdirnames(-1)
}

// sortEntries places directories before files and orders each group by name.
func (session *traversal) sortEntries(listedEntries []listedEntry) {
	sort.SliceStable(listedEntries, func(leftIndex, rightIndex int) bool {
		left, right := listedEntries[leftIndex], listedEntries[rightIndex]
		if left.isDirectory() != right.isDirectory() {
			return left.isDirectory()
		}
		return session.compareNames(left.name, right.name) < 0
	})
}

// compareNames orders names with the root locale collation, falling back to
// byte order when the collation considers two distinct names equal.
func (session *traversal) compareNames(left string, right string) int {
	if comparison := session.collator.CompareString(left, right); comparison != 0 {
		return comparison
	}
	return strings.Compare(left, right)
}
