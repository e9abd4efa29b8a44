package runner

import (
	"context"
	"io"

	"github.com/ethpandaops/reportoor/pkg/result"
)

// Engine executes tests against a collector. Implementations drive the
// collector lifecycle for every test they run: TestStarted, exactly one
// outcome call, then TestStopped, strictly sequential. Run returns once
// the whole run is finished; a non-nil error aborts report generation.
type Engine interface {
	Run(ctx context.Context, c result.Collector) error
}

// OutputSink is implemented by engines whose tests write to the
// standard streams. The runner hands over the duplicating capture
// writers before the run starts so test output lands in the report.
type OutputSink interface {
	SetOutput(stdout, stderr io.Writer)
}
