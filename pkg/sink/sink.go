package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/reportoor/pkg/junit"
	"github.com/ethpandaops/reportoor/pkg/result"
)

// Sink persists rendered suite reports to a destination target.
type Sink interface {
	// Write renders every group with r and delivers the documents to the
	// target. Any I/O failure aborts the remaining writes.
	Write(groups []result.SuiteGroup, r junit.Renderer) error
}

type sink struct {
	log     logrus.FieldLogger
	target  Target
	encoder *junit.Encoder
	suffix  string
}

// New creates a sink for the given target. The suffix participates in
// file naming only; suite naming inside documents belongs to the
// renderer.
func New(log logrus.FieldLogger, target Target, encoder *junit.Encoder, suffix string) Sink {
	return &sink{
		log:     log.WithField("component", "report_sink"),
		target:  target,
		encoder: encoder,
		suffix:  suffix,
	}
}

func (s *sink) Write(groups []result.SuiteGroup, r junit.Renderer) error {
	switch t := s.target.(type) {
	case DirectoryTarget:
		return s.writeDirectory(t, groups, r)
	case FileTarget:
		return s.writeFile(t, groups, r)
	case StreamTarget:
		return s.writeStream(t, groups, r)
	default:
		return fmt.Errorf("unsupported target type %T", t)
	}
}

// writeDirectory emits one standalone document per suite under the
// target directory.
func (s *sink) writeDirectory(t DirectoryTarget, groups []result.SuiteGroup, r junit.Renderer) error {
	if err := os.MkdirAll(t.Path, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	for _, group := range groups {
		path := filepath.Join(t.Path, s.suiteFileName(group.Suite))

		data, err := s.encoder.EncodeToBytes(r.Suite(group))
		if err != nil {
			return fmt.Errorf("failed to render report for suite %s: %w", group.Suite, err)
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report for suite %s: %w", group.Suite, err)
		}

		s.log.WithFields(logrus.Fields{
			"suite": group.Suite,
			"path":  path,
		}).Debug("Wrote suite report")
	}

	return nil
}

// writeFile emits a single combined document. The document is rendered
// fully in memory first so a failing suite never leaves a truncated
// file behind.
func (s *sink) writeFile(t FileTarget, groups []result.SuiteGroup, r junit.Renderer) error {
	if dir := filepath.Dir(t.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	path := s.combinedFileName(t.Path)

	data, err := s.encoder.EncodeToBytes(r.All(groups))
	if err != nil {
		return fmt.Errorf("failed to render combined report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write combined report: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"suites": len(groups),
		"path":   path,
	}).Debug("Wrote combined report")

	return nil
}

// writeStream emits each suite document to the stream in order, every
// document carrying its own XML declaration.
func (s *sink) writeStream(t StreamTarget, groups []result.SuiteGroup, r junit.Renderer) error {
	for _, group := range groups {
		if err := s.encoder.Encode(t.W, r.Suite(group)); err != nil {
			return fmt.Errorf("failed to stream report for suite %s: %w", group.Suite, err)
		}

		s.log.WithField("suite", group.Suite).Debug("Streamed suite report")
	}

	return nil
}

// suiteFileName names a per-suite report file inside a directory
// target.
func (s *sink) suiteFileName(suite string) string {
	if s.suffix == "" {
		return fmt.Sprintf("TEST-%s.xml", suite)
	}

	return fmt.Sprintf("TEST-%s-%s.xml", suite, s.suffix)
}

// combinedFileName derives the single-file report path. With a suffix
// the ".xml" extension is re-applied after it, keeping the configured
// path intact otherwise.
func (s *sink) combinedFileName(path string) string {
	if s.suffix == "" {
		return path
	}

	base := path
	if ext := filepath.Ext(path); strings.EqualFold(ext, ".xml") {
		base = strings.TrimSuffix(path, ext)
	}

	return fmt.Sprintf("%s-%s.xml", base, s.suffix)
}

// Compile-time interface compliance check
var _ Sink = (*sink)(nil)
