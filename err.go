/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Common errors
 */

package ipp

import (
	"errors"
	"fmt"
	"time"
)

// Error values for ipp-client
var (
	ErrRequestFailed = errors.New("IPP request failed")
	ErrTimeout       = errors.New("IPP request timed out")
	ErrHTTPStatus    = errors.New("HTTP request failed")
	ErrNoURL         = errors.New("Printer URL not specified")
	ErrBadScheme     = errors.New("Unsupported URL scheme")
)

// TimeoutError is returned when request is not completed within
// the configured timeout
type TimeoutError struct {
	Timeout time.Duration // Configured timeout
}

// Error returns error string. It implements error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("IPP request timed out after %s", e.Timeout)
}

// Unwrap returns ErrTimeout, so errors.Is(err, ErrTimeout) works
func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// HTTPError is returned when server replies with non-successful
// HTTP status. Response body is not decoded in this case
type HTTPError struct {
	StatusCode int    // HTTP status code
	Status     string // Reason phrase, i.e., "Not Found"
}

// Error returns error string. It implements error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d: %s",
		e.StatusCode, e.Status)
}

// Unwrap returns ErrHTTPStatus
func (e *HTTPError) Unwrap() error {
	return ErrHTTPStatus
}
