package commands

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/temirov/tree/internal/types"
)

const errorPathNotFoundFormat = "path does not exist: %s"

// TreeBuilder builds directory tree nodes using configured options.
// A TreeBuilder keeps no state between calls, so one value may serve
// concurrent callers.
type TreeBuilder struct {
	Configuration types.Configuration
	// FileSystem provides stat and directory listing; nil means the host filesystem.
	FileSystem afero.Fs
	// Warn receives a message for every entry or directory skipped after an I/O failure.
	Warn func(message string)
}

// NewTreeBuilder returns a TreeBuilder reading the host filesystem.
func NewTreeBuilder(configuration types.Configuration) *TreeBuilder {
	return &TreeBuilder{
		Configuration: configuration,
		FileSystem:    afero.NewOsFs(),
	}
}

// PathNotFoundError reports that a root path does not resolve to an existing entry.
type PathNotFoundError struct {
	Path string
	Err  error
}

func (pathError *PathNotFoundError) Error() string {
	return fmt.Sprintf(errorPathNotFoundFormat, pathError.Path)
}

func (pathError *PathNotFoundError) Unwrap() error {
	return pathError.Err
}

func (treeBuilder *TreeBuilder) fileSystem() afero.Fs {
	if treeBuilder.FileSystem == nil {
		return afero.NewOsFs()
	}
	return treeBuilder.FileSystem
}

func (treeBuilder *TreeBuilder) warn(format string, arguments ...interface{}) {
	if treeBuilder.Warn == nil {
		return
	}
	treeBuilder.Warn(fmt.Sprintf(format, arguments...))
}
