// internal/progress/reporter.go
package progress

import (
	"time"

	"github.com/bstardust/opencamera-meta-export/internal/logger"
)

// Reporter reports extraction progress at coarse granularity: start of
// extraction, start of export, completion. There is no per-item reporting;
// batches are small and run interactively.
type Reporter struct {
	phase     string
	startTime time.Time
}

// New creates a new progress reporter
func New() *Reporter {
	return &Reporter{}
}

// Start marks the beginning of an extraction phase.
func (r *Reporter) Start(phase string, total int) {
	r.phase = phase
	r.startTime = time.Now()

	logger.Info("Reading %s from %d input(s)", phase, total)
}

// Export marks the beginning of a table export.
func (r *Reporter) Export(path string) {
	logger.Info("Saving table to %s", path)
}

// Finish reports completion of the current phase.
func (r *Reporter) Finish(records int) {
	logger.Info("%s complete: %d record(s) in %s",
		r.phase, records, time.Since(r.startTime).Round(time.Millisecond))
}
