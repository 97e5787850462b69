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

// Monitor provides hooks to observe a summarization run.
// ChunkRetry and ChunkDone are called from worker goroutines, so
// implementations must be safe for concurrent use.
type Monitor interface {
	Start(chunks int)
	ChunkRetry(index, attempt int, err error)
	ChunkDone(result ChunkResult)
	SynthesisStarted(succeeded, failed int)
	Finish(report *Report)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ int)                  {}
func (n *noopMonitor) ChunkRetry(_, _ int, _ error) {}
func (n *noopMonitor) ChunkDone(_ ChunkResult)      {}
func (n *noopMonitor) SynthesisStarted(_, _ int)    {}
func (n *noopMonitor) Finish(_ *Report)             {}
