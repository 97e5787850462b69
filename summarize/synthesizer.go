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
	"context"
	"time"
)

// synthesize fills the report text and status from its chunk results.
// Only caller cancellation is returned as an error.
func (s *Summarizer) synthesize(ctx context.Context, report *Report, monitor Monitor) error {
	if report.Succeeded == 0 {
		s.logger.Error("all chunks failed to summarize", "chunks", report.Chunks)
		report.Text = AllChunksFailed
		report.Status = StatusAllChunksFailed
		return nil
	}

	monitor.SynthesisStarted(report.Succeeded, report.Failed)
	req := synthesisRequest(s.config.Model, combineExtracts(report.Results))

	retrier := s.newRetrier(func(attempt int, delay time.Duration, err error) {
		s.logger.Warn("final synthesis failed, retrying", "attempt", attempt, "delay", delay, "err", err)
	})

	var text string
	err := retrier.Run(ctx, func(ctx context.Context, attempt int) error {
		report.SynthesisAttempts = attempt
		out, err := s.generator.Generate(ctx, req)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.logger.Error("final synthesis failed", "attempts", report.SynthesisAttempts, "err", err)
		report.Text = SynthesisFailed
		report.Status = StatusSynthesisFailed
		return nil
	}

	report.Text = text
	report.Status = StatusComplete
	return nil
}
