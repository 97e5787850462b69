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


// Package retry runs fallible operations with bounded exponential backoff.
//
// A Retrier makes at most Policy.MaxRetries+1 attempts. After failed attempt
// k it waits BackoffBase*2^(k-1) before trying again, so a policy of two
// retries with a 5s base waits 5s and then 10s. Waiting goes through a Clock,
// which tests replace with a RecordingClock to assert the exact schedule
// without sleeping.
//
//	r := retry.New(retry.Policy{MaxRetries: 2, BackoffBase: 5 * time.Second})
//	err := r.Run(ctx, func(ctx context.Context, attempt int) error {
//	    return callService(ctx)
//	})
//
// When every attempt fails Run returns an *ExhaustedError wrapping the last
// failure. Context cancellation ends the loop at once with the context error.
package retry
