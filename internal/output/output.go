// Package output renders directory trees as raw text, JSON, or XML.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/tree/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directoryNameSuffix = "/"
	detailsSeparator    = ", "
	detailsFormat       = " [%s]"

	invalidFormatMessage = "invalid format value '%s'"
)

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// Render renders the tree in the requested format.
func Render(format string, node *types.TreeOutputNode) (string, error) {
	switch format {
	case types.FormatRaw:
		return RenderTreeRaw(node), nil
	case types.FormatJSON:
		return RenderTreeJSON(node)
	case types.FormatXML:
		return RenderTreeXML(node)
	default:
		return "", fmt.Errorf(invalidFormatMessage, format)
	}
}

// RenderTreeRaw returns the tree as connector-drawn text, one line per node, every
// line terminated by a newline.
func RenderTreeRaw(node *types.TreeOutputNode) string {
	var buffer bytes.Buffer
	WriteTreeRaw(&buffer, node)
	return buffer.String()
}

// WriteTreeRaw renders a directory tree to the provided writer.
func WriteTreeRaw(writer io.Writer, node *types.TreeOutputNode) {
	if node == nil {
		return
	}
	renderTreeNode(writer, node, "", true)
}

// RenderTreeJSON marshals the tree as an indented JSON document.
func RenderTreeJSON(node *types.TreeOutputNode) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(node, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderTreeXML marshals the tree as an indented XML document.
func RenderTreeXML(node *types.TreeOutputNode) (string, error) {
	encoded, xmlMarshalError := xml.MarshalIndent(node, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded), nil
}

func treeNodeLinePrefix(prefix string, isLast bool) (string, string) {
	if isLast {
		return prefix + treeLastConnector, prefix + treeLastPadding
	}
	return prefix + treeBranchConnector, prefix + treeBranchPadding
}

func renderTreeNode(writer io.Writer, node *types.TreeOutputNode, prefix string, isLast bool) {
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isLast)
	if !node.IsDirectory() {
		fmt.Fprintf(writer, "%s%s%s\n", linePrefix, node.Name, fileDetails(node))
		return
	}
	fmt.Fprintf(writer, "%s%s\n", linePrefix, directoryLabel(node.Name))
	for index, child := range node.Children {
		if child == nil {
			continue
		}
		renderTreeNode(writer, child, childPrefix, index == len(node.Children)-1)
	}
}

// directoryLabel appends the directory marker unless the name already ends with
// it, as the filesystem root does.
func directoryLabel(name string) string {
	if strings.HasSuffix(name, directoryNameSuffix) {
		return name
	}
	return name + directoryNameSuffix
}

// fileDetails returns the bracketed size and date suffix of a file line.
func fileDetails(node *types.TreeOutputNode) string {
	var details []string
	if node.Size != "" {
		details = append(details, node.Size)
	}
	if node.LastModified != "" {
		details = append(details, node.LastModified)
	}
	if len(details) == 0 {
		return ""
	}
	return fmt.Sprintf(detailsFormat, strings.Join(details, detailsSeparator))
}
