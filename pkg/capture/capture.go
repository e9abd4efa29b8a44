// Package capture duplicates a process output channel into a resettable
// in-memory buffer while leaving the original destination untouched.
package capture

import (
	"bytes"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Writer forwards every write to its destination and keeps a copy in an
// internal buffer. Reset truncates the buffer without affecting the
// destination.
type Writer struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	dest io.Writer
}

// NewWriter creates a duplicating writer around dest.
func NewWriter(dest io.Writer) *Writer {
	return &Writer{dest: dest}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)

	return w.dest.Write(p)
}

// Reset truncates the captured buffer.
func (w *Writer) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Reset()
}

// String returns the captured text.
func (w *Writer) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.buf.String()
}

// Len returns the number of captured bytes.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.buf.Len()
}

// Destination returns the wrapped writer.
func (w *Writer) Destination() io.Writer {
	return w.dest
}

// Handle owns a pair of replaced output slots for the duration of a run.
// Release restores the original writers and must run on every exit path,
// normal or not; callers defer it immediately after Acquire.
type Handle struct {
	log      logrus.FieldLogger
	outSlot  *io.Writer
	errSlot  *io.Writer
	origOut  io.Writer
	origErr  io.Writer
	stdout   *Writer
	stderr   *Writer
	released bool
}

// Acquire replaces the writers at outSlot and errSlot with duplicating
// writers wrapping the current values and returns the owning handle.
func Acquire(log logrus.FieldLogger, outSlot, errSlot *io.Writer) *Handle {
	h := &Handle{
		log:     log.WithField("component", "capture"),
		outSlot: outSlot,
		errSlot: errSlot,
		origOut: *outSlot,
		origErr: *errSlot,
	}

	h.stdout = NewWriter(h.origOut)
	h.stderr = NewWriter(h.origErr)
	*outSlot = h.stdout
	*errSlot = h.stderr

	h.log.Debug("Output capture acquired")

	return h
}

// Release restores the original writers. Safe to call more than once.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true

	*h.outSlot = h.origOut
	*h.errSlot = h.origErr

	h.log.Debug("Output capture released")
}

// Reset truncates both captured buffers.
func (h *Handle) Reset() {
	h.stdout.Reset()
	h.stderr.Reset()
}

// Stdout returns the text captured from the standard output slot.
func (h *Handle) Stdout() string {
	return h.stdout.String()
}

// Stderr returns the text captured from the standard error slot.
func (h *Handle) Stderr() string {
	return h.stderr.String()
}
