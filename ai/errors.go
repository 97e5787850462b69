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


package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

var (
	// ErrMalformedResponse is returned when the service answers 2xx but the
	// body cannot be decoded or lacks the generated content.
	ErrMalformedResponse = errors.New("malformed generation response")

	// ErrEmptyMessages is returned when a request carries no messages.
	ErrEmptyMessages = errors.New("request has no messages")
)

// StatusError reports a non-2xx response from the generation service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("generation service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("generation service returned status %d: %s", e.StatusCode, e.Body)
}

// CauseError attaches a known Cause to an error whose chain no longer
// carries the transport details Classify inspects.
type CauseError struct {
	Cause Cause
	Err   error
}

func (e *CauseError) Error() string {
	return e.Err.Error()
}

func (e *CauseError) Unwrap() error {
	return e.Err
}

// Cause is a short, human-readable failure category.
type Cause string

const (
	CauseTimeout    Cause = "timeout"
	CauseConnection Cause = "connection error"
	CauseProtocol   Cause = "protocol error"
	CauseCanceled   Cause = "canceled"
	CauseOther      Cause = "other"
)

// Classify maps an error returned by a Generator to a Cause.
// A nil error has no cause and returns the empty string.
func Classify(err error) Cause {
	if err == nil {
		return ""
	}

	var causeErr *CauseError
	if errors.As(err, &causeErr) && causeErr.Cause != "" {
		return causeErr.Cause
	}

	if errors.Is(err, context.Canceled) {
		return CauseCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return CauseTimeout
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) || errors.Is(err, ErrMalformedResponse) {
		return CauseProtocol
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CauseTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return CauseConnection
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CauseConnection
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return CauseConnection
	}

	// Remaining transport-level failures surface as *url.Error.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return CauseProtocol
	}

	return CauseOther
}
