// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package summarize

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressMonitor is a Monitor that writes a single self-overwriting progress
// line while chunks complete, followed by a synthesis and completion line.
type ProgressMonitor struct {
	writer    io.Writer
	total     int
	current   int
	failed    int
	retries   int
	startTime time.Time
	started   bool
	mu        sync.Mutex
}

var _ Monitor = (*ProgressMonitor)(nil)

// NewProgressMonitor creates a progress monitor.
// writer: where to write progress output (typically os.Stderr)
func NewProgressMonitor(writer io.Writer) *ProgressMonitor {
	return &ProgressMonitor{writer: writer}
}

// Start begins tracking progress for the given number of chunks.
func (p *ProgressMonitor) Start(chunks int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.total = chunks
	p.current = 0
	p.failed = 0
	p.retries = 0
	p.report()
}

// ChunkRetry counts a retried chunk call.
func (p *ProgressMonitor) ChunkRetry(_, _ int, _ error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.retries++
}

// ChunkDone advances progress by one chunk.
func (p *ProgressMonitor) ChunkDone(result ChunkResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	if p.current < p.total {
		p.current++
	}
	if !result.OK() {
		p.failed++
	}
	p.report()
}

// SynthesisStarted ends the progress line and announces the final call.
func (p *ProgressMonitor) SynthesisStarted(succeeded, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	fmt.Fprintln(p.writer) // Print newline after final progress
	fmt.Fprintf(p.writer, "Synthesizing final summary from %d sections (%d failed)\n", succeeded, failed)
}

// Finish prints the run outcome.
func (p *ProgressMonitor) Finish(report *Report) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	if report.SynthesisAttempts == 0 {
		fmt.Fprintln(p.writer)
	}
	fmt.Fprintf(p.writer, "Finished in %s: %s\n", time.Since(p.startTime).Round(time.Millisecond), report.Status)
	p.started = false
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressMonitor) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressMonitor) report() {
	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %d/%d chunks (%.1f%%) - %d failed, %d retries",
		p.current, p.total, percentage, p.failed, p.retries)
}
