// Package sink writes rendered report documents to their configured
// destination: a directory of per-suite files, a single combined file,
// or an arbitrary stream.
package sink

import (
	"io"
	"path/filepath"
	"strings"
)

// Target selects the destination mode. The set of implementations is
// closed: DirectoryTarget, FileTarget and StreamTarget.
type Target interface {
	target()
}

// DirectoryTarget writes one report file per suite under Path, creating
// the directory if needed.
type DirectoryTarget struct {
	Path string
}

// FileTarget writes a single combined document to Path, creating parent
// directories if needed.
type FileTarget struct {
	Path string
}

// StreamTarget writes standalone suite documents to W in suite order.
type StreamTarget struct {
	W io.Writer
}

func (DirectoryTarget) target() {}
func (FileTarget) target()      {}
func (StreamTarget) target()    {}

// TargetForPath maps a destination path to a target the way report
// consumers expect: a path ending in ".xml", in any case, is a single
// combined file, anything else is a directory.
func TargetForPath(path string) Target {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return FileTarget{Path: path}
	}

	return DirectoryTarget{Path: path}
}
