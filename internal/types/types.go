// Package types defines every cross‑package data structure used by the tree CLI.
package types

import (
	"encoding/xml"
	"time"
)

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"

	// UnlimitedDepth disables the depth limit of a Configuration.
	UnlimitedDepth = -1
)

// Configuration is the resolved, read-only option set for one tree generation call.
type Configuration struct {
	MaxDepth        int
	ShowHidden      bool
	ShowSize        bool
	ShowDate        bool
	ExcludePatterns []string
	IncludePatterns []string
	Sort            bool
}

// DefaultConfiguration returns the configuration used when no option is set.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxDepth: UnlimitedDepth,
		Sort:     true,
	}
}

// DepthExhausted reports whether a directory at depth may not list its children.
func (configuration Configuration) DepthExhausted(depth int) bool {
	return configuration.MaxDepth >= 0 && depth >= configuration.MaxDepth
}

// DirectoryEntry describes one file or directory found while listing a directory.
type DirectoryEntry struct {
	Name         string    `json:"name" xml:"name"`
	Path         string    `json:"path" xml:"path"`
	IsDirectory  bool      `json:"isDirectory" xml:"isDirectory"`
	Size         int64     `json:"size,omitempty" xml:"size,omitempty"`
	ModifiedTime time.Time `json:"modifiedTime" xml:"modifiedTime"`
}

// TreeOutputNode represents a node of a rendered directory tree.
type TreeOutputNode struct {
	XMLName      xml.Name          `json:"-" xml:"node"`
	Path         string            `json:"path" xml:"path"`
	Name         string            `json:"name" xml:"name"`
	Type         string            `json:"type" xml:"type"`
	Size         string            `json:"size,omitempty" xml:"size,omitempty"`
	SizeBytes    int64             `json:"sizeBytes,omitempty" xml:"sizeBytes,omitempty"`
	LastModified string            `json:"lastModified,omitempty" xml:"lastModified,omitempty"`
	Children     []*TreeOutputNode `json:"children,omitempty" xml:"children>node,omitempty"`
}

// IsDirectory reports whether the node renders as a directory.
func (node *TreeOutputNode) IsDirectory() bool {
	return node != nil && node.Type == NodeTypeDirectory
}
