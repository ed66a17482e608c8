/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Client options
 */

package ipp

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// RequestIDFunc returns request ID for the next request
type RequestIDFunc func() uint32

// Option is a functional option for NewClient
type Option func(*options) error

type options struct {
	client    *http.Client
	rt        http.RoundTripper
	logger    *Logger
	tracer    trace.Tracer
	requestID RequestIDFunc
	rps       int
	burst     int
}

// WithHTTPClient replaces the default http.Client. The Client
// makes a shallow copy, so hc itself is never modified
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithTransport sets a custom http.RoundTripper as the base transport
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithLogger sets the Logger. By default, nothing is logged
func WithLogger(logger *Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer. By default, the tracer
// of the global TracerProvider is used
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithRequestIDFunc sets the source of request IDs
func WithRequestIDFunc(fn RequestIDFunc) Option {
	return func(o *options) error {
		if fn == nil {
			return errors.New("request ID function must not be nil")
		}
		o.requestID = fn
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting of outgoing
// requests with the given requests per second and burst capacity
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return ErrThrottleParams
		}
		o.rps, o.burst = rps, burst
		return nil
	}
}
