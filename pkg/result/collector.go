package result

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CaptureSource provides the output captured for the in-flight test.
// capture.Handle satisfies it.
type CaptureSource interface {
	Reset()
	Stdout() string
	Stderr() string
}

// Collector accumulates test records across a run. The external
// execution engine drives it through the lifecycle calls, in strict
// order per test: TestStarted, exactly one outcome call, TestStopped.
// Out-of-order calls from the single caller are undefined behavior.
type Collector interface {
	Start(ctx context.Context) error
	Stop() error

	TestStarted(id, description string)
	TestSucceeded(id string)
	TestFailed(id string, fault Fault)
	TestErrored(id string, fault Fault)
	TestSkipped(id, reason string)
	TestStopped(id string)

	Results() []Record
	Suites() []SuiteGroup
	Summary() Summary
}

// Option configures a collector.
type Option func(*collector)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *collector) {
		c.now = now
	}
}

// WithTiming controls elapsed-time measurement. When disabled every
// record reports a zero duration, giving deterministic documents.
func WithTiming(enabled bool) Option {
	return func(c *collector) {
		c.timing = enabled
	}
}

// WithCapture attaches the output capture source read by the outcome
// calls.
func WithCapture(src CaptureSource) Option {
	return func(c *collector) {
		c.capture = src
	}
}

// WithPerTestCapture switches from whole-run aggregate capture to
// per-test capture: buffers reset at TestStarted, read at the outcome
// call, attached to the record.
func WithPerTestCapture(enabled bool) Option {
	return func(c *collector) {
		c.perTestCapture = enabled
	}
}

// WithProgress registers a function invoked with each finalized record,
// synchronously inside TestStopped.
func WithProgress(fn func(Record)) Option {
	return func(c *collector) {
		c.progress = fn
	}
}

// collector implements Collector.
type collector struct {
	log logrus.FieldLogger
	mu  sync.RWMutex

	now            func() time.Time
	timing         bool
	capture        CaptureSource
	perTestCapture bool
	progress       func(Record)

	successes []Record
	failures  []Record
	errored   []Record
	skipped   []Record

	startTime time.Time
	desc      string
	pending   *Record
	nextIndex int
	runStart  time.Time
	runStop   time.Time
}

// NewCollector creates a result collector.
func NewCollector(log logrus.FieldLogger, opts ...Option) Collector {
	c := &collector{
		log:    log.WithField("component", "result_collector"),
		now:    time.Now,
		timing: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *collector) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runStart = c.now()

	c.log.Debug("result collector started")

	return nil
}

func (c *collector) Stop() error {
	c.mu.Lock()
	c.runStop = c.now()
	c.mu.Unlock()

	c.log.Debug("result collector stopped")

	return nil
}

// TestStarted records the start time, keeps the description for the
// in-flight test, and resets the capture buffers in per-test mode.
func (c *collector) TestStarted(id, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.startTime = c.now()
	if description == "" {
		description = id
	}
	c.desc = description

	if c.perTestCapture && c.capture != nil {
		c.capture.Reset()
	}

	c.log.WithField("test", id).Debug("test started")
}

func (c *collector) TestSucceeded(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stage(id, OutcomeSuccess, nil)
}

func (c *collector) TestFailed(id string, fault Fault) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stage(id, OutcomeFailure, &fault)
}

func (c *collector) TestErrored(id string, fault Fault) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stage(id, OutcomeError, &fault)
}

func (c *collector) TestSkipped(id, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fault := skipFault(reason)
	c.stage(id, OutcomeSkipped, &fault)
}

// stage builds the record for the in-flight test. It is appended to its
// outcome bucket only when TestStopped finalizes it. Caller must hold
// c.mu.
func (c *collector) stage(id string, outcome Outcome, fault *Fault) {
	suite, _ := SplitID(id)

	rec := &Record{
		ID:          id,
		Description: c.desc,
		Suite:       suite,
		Outcome:     outcome,
		Fault:       fault,
	}

	if c.perTestCapture && c.capture != nil {
		rec.Stdout = c.capture.Stdout()
		rec.Stderr = c.capture.Stderr()
	}

	c.pending = rec
}

// TestStopped finalizes the in-flight record: elapsed time, the next
// execution index, the progress callback, the run tally. Index
// assignment happens here, after the outcome is known, so index order
// equals real completion order.
func (c *collector) TestStopped(id string) {
	c.mu.Lock()

	if c.pending == nil {
		c.mu.Unlock()
		c.log.WithField("test", id).Warn("test stopped without a recorded outcome")

		return
	}

	rec := c.pending
	c.pending = nil

	if c.timing {
		rec.Elapsed = c.now().Sub(c.startTime)
	}
	rec.Index = c.nextIndex
	c.nextIndex++

	switch rec.Outcome {
	case OutcomeSuccess:
		c.successes = append(c.successes, *rec)
	case OutcomeFailure:
		c.failures = append(c.failures, *rec)
	case OutcomeError:
		c.errored = append(c.errored, *rec)
	case OutcomeSkipped:
		c.skipped = append(c.skipped, *rec)
	}

	progress := c.progress
	c.mu.Unlock()

	if progress != nil {
		progress(*rec)
	}

	c.log.WithFields(logrus.Fields{
		"test":    id,
		"outcome": rec.Outcome,
		"index":   rec.Index,
	}).Debug("test stopped")
}

// Results returns every finalized record in execution-index order.
func (c *collector) Results() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.flattenLocked()
}

// Suites groups the finalized records by suite, first-seen order.
func (c *collector) Suites() []SuiteGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return GroupBySuite(c.flattenLocked())
}

// Summary returns the running tally.
func (c *collector) Summary() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var elapsed time.Duration
	if !c.runStart.IsZero() {
		end := c.runStop
		if end.IsZero() {
			end = c.now()
		}
		elapsed = end.Sub(c.runStart)
	}

	return Summary{
		Total:   len(c.successes) + len(c.failures) + len(c.errored) + len(c.skipped),
		Passed:  len(c.successes),
		Failed:  len(c.failures),
		Errored: len(c.errored),
		Skipped: len(c.skipped),
		Elapsed: elapsed,
	}
}

// flattenLocked merges the outcome buckets back into index order.
// Caller must hold c.mu.
func (c *collector) flattenLocked() []Record {
	records := make([]Record, 0,
		len(c.successes)+len(c.failures)+len(c.errored)+len(c.skipped))

	records = append(records, c.successes...)
	records = append(records, c.failures...)
	records = append(records, c.errored...)
	records = append(records, c.skipped...)

	sortByIndex(records)

	return records
}

// Compile-time interface compliance check
var _ Collector = (*collector)(nil)
