/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Outgoing requests rate limiting
 */

package ipp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Throttle errors
var (
	ErrThrottleParams  = errors.New("rate and burst must be greater than zero")
	ErrThrottleWaiting = errors.New("throttle waiting failed")
)

// throttle is an http.RoundTripper, using the time/rate token
// bucket limiter to restrict outgoing requests
type throttle struct {
	limiter *rate.Limiter
	rps     int
	burst   int
	next    http.RoundTripper
	log     *Logger
}

// newThrottle creates a new throttle
func newThrottle(rps, burst int, log *Logger,
	next http.RoundTripper) (http.RoundTripper, error) {

	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rate[%d], burst[%d]: %w",
			rps, burst, ErrThrottleParams)
	}

	t := &throttle{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		rps:     rps,
		burst:   burst,
		next:    next,
		log:     log,
	}

	return t, nil
}

// RoundTrip implements http.RoundTripper interface. If token is
// not available, it waits until either token is granted or request
// context is done
func (t *throttle) RoundTrip(rq *http.Request) (*http.Response, error) {
	ctx := rq.Context()

	r := t.limiter.Reserve()
	if !r.OK() {
		return nil, fmt.Errorf("%w: rate[%d], burst[%d]",
			ErrThrottleWaiting, t.rps, t.burst)
	}

	if delay := r.Delay(); delay > 0 {
		start := time.Now()
		timer := time.NewTimer(delay)

		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			r.Cancel()
			t.log.Debug(' ', "throttle: aborted after %s (rate %d, burst %d)",
				time.Since(start), t.rps, t.burst)
			return nil, fmt.Errorf("%w: %w", ErrThrottleWaiting, context.Cause(ctx))
		}

		t.log.Debug(' ', "throttle: waited %s (rate %d, burst %d)",
			time.Since(start), t.rps, t.burst)
	}

	return t.next.RoundTrip(rq)
}
