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


package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/poiesic/sumry/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// callRecord captures what the HTTP layer saw for one Generate call.
// The langchaingo client replaces transport errors and status codes with
// plain strings, so the record is the only place they survive.
type callRecord struct {
	status int
	err    error
}

type callRecordKey struct{}

func withCallRecord(ctx context.Context) (context.Context, *callRecord) {
	rec := &callRecord{}
	return context.WithValue(ctx, callRecordKey{}, rec), rec
}

// recordingTransport stores the response status or transport error of each
// request in the callRecord carried by the request context.
type recordingTransport struct {
	base http.RoundTripper
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)

	rec, ok := req.Context().Value(callRecordKey{}).(*callRecord)
	if !ok {
		return resp, err
	}
	if err != nil {
		// Client timeouts and caller cancellation show up on the request context.
		if ctxErr := req.Context().Err(); ctxErr != nil {
			err = ctxErr
		}
		rec.err = err
		return resp, err
	}
	rec.status = resp.StatusCode
	return resp, nil
}

func newRecordingClient(config *ai.Config) *http.Client {
	client := ai.NewHTTPClient(config)
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client.Transport = &recordingTransport{base: base}
	return client
}

// translateError rebuilds an error Classify can categorize.
func translateError(err error, rec *callRecord) error {
	if rec.err != nil {
		return fmt.Errorf("chat completion: %w", rec.err)
	}
	if rec.status != 0 && (rec.status < 200 || rec.status > 299) {
		return &ai.StatusError{StatusCode: rec.status, Body: err.Error()}
	}

	var llmErr *llms.Error
	if errors.As(openai.MapError(err), &llmErr) {
		if cause := causeForCode(llmErr.Code); cause != "" {
			return &ai.CauseError{Cause: cause, Err: err}
		}
	}
	return err
}

// causeForCode maps langchaingo error codes to failure causes.
func causeForCode(code llms.ErrorCode) ai.Cause {
	switch code {
	case llms.ErrCodeTimeout:
		return ai.CauseTimeout
	case llms.ErrCodeCanceled:
		return ai.CauseCanceled
	case llms.ErrCodeProviderUnavailable,
		llms.ErrCodeRateLimit,
		llms.ErrCodeAuthentication,
		llms.ErrCodeInvalidRequest,
		llms.ErrCodeResourceNotFound,
		llms.ErrCodeQuotaExceeded,
		llms.ErrCodeTokenLimit,
		llms.ErrCodeContentFilter:
		return ai.CauseProtocol
	default:
		return ""
	}
}
