/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP client and request pipeline
 */

package ipp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/OpenPrinting/goipp"
	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation name of the default tracer
const tracerName = "github.com/OpenPrinting/ipp-client"

// Client sends IPP requests to the single printer or server.
//
// All Client parameters are fixed at creation time, so the
// Client may be used concurrently from multiple goroutines
type Client struct {
	endpoint  endpoint      // Printer address
	username  string        // User name, "" if anonymous
	password  string        // Password
	creds     bool          // Credentials are configured
	timeout   time.Duration // Per-request timeout
	http      *http.Client  // Underlying HTTP client
	requestID RequestIDFunc // Source of request IDs
	log       *Logger       // Logger
	tracer    trace.Tracer  // Tracer
}

// NewClient creates a new Client
func NewClient(cfg Config, optFns ...Option) (*Client, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	ep, err := parseEndpoint(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts := options{}
	for _, fn := range optFns {
		if err = fn(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	c := &Client{
		endpoint:  ep,
		username:  cfg.Username,
		password:  cfg.Password,
		creds:     cfg.hasCredentials(),
		timeout:   cfg.Timeout,
		requestID: opts.requestID,
		log:       opts.logger,
		tracer:    opts.tracer,
	}

	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	if c.requestID == nil {
		c.requestID = randomRequestID
	}

	if c.log == nil {
		c.log = NewNopLogger()
	}

	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}

	// Setup HTTP client
	hc := &http.Client{}
	if opts.client != nil {
		*hc = *opts.client
	}

	switch {
	case opts.rt != nil:
		hc.Transport = opts.rt
	case hc.Transport == nil:
		hc.Transport = newTransport()
	}

	if opts.rps > 0 {
		hc.Transport, err = newThrottle(opts.rps, opts.burst,
			c.log, hc.Transport)
		if err != nil {
			return nil, err
		}
	}

	c.http = hc

	return c, nil
}

// newTransport creates the default transport. Every request uses
// its own connection
func newTransport() http.RoundTripper {
	return cleanhttp.DefaultTransport()
}

// randomRequestID is the default RequestIDFunc
func randomRequestID() uint32 {
	return 1 + rand.Uint32N(maxRequestID-1)
}

// PrinterURI returns value of printer-uri attribute, sent with
// requests to this Client's endpoint
func (c *Client) PrinterURI() string {
	return c.endpoint.printerURI()
}

// Timeout returns per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Logger returns Client's Logger
func (c *Client) Logger() *Logger {
	return c.log
}

// Send sends IPP request and returns the decoded response.
//
// Operation code is not checked, so any value, including ones
// made with RawOp, is transmitted as is. The operation group
// of request contains attributes-charset, attributes-natural-language,
// then attrs, then requesting-user-name if credentials are configured.
// If data is not empty, it follows the encoded message.
//
// The response is returned as is; non-successful IPP status
// is not an error
func (c *Client) Send(ctx context.Context, op goipp.Op,
	attrs goipp.Attributes, data []byte) (*goipp.Message, error) {

	// Build the request
	id := c.requestID()
	msg := goipp.NewRequest(goipp.DefaultVersion, op, id)

	msg.Operation.Add(goipp.MakeAttribute("attributes-charset",
		goipp.TagCharset, goipp.String(DefaultCharset)))
	msg.Operation.Add(goipp.MakeAttribute("attributes-natural-language",
		goipp.TagLanguage, goipp.String(DefaultLanguage)))
	msg.Operation = append(msg.Operation, attrs...)

	if c.creds {
		msg.Operation.Add(NameAttr("requesting-user-name", c.username))
	}

	// Trace and send
	ctx, span := c.tracer.Start(ctx, "ipp.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("ipp.operation", op.String()),
		attribute.Int64("ipp.request_id", int64(id)),
		attribute.String("ipp.printer_uri", c.endpoint.printerURI()),
	)

	rsp, err := c.do(ctx, msg, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("ipp.status", goipp.Status(rsp.Code).String()))

	return rsp, nil
}

// do performs the HTTP exchange
func (c *Client) do(ctx context.Context, msg *goipp.Message,
	data []byte) (*goipp.Message, error) {

	log := c.log.Begin()
	defer log.Commit()

	log.Debug('>', "IPP[%d]: %s %s", msg.RequestID,
		goipp.Op(msg.Code), c.endpoint.printerURI())

	// Encode the message
	body, err := msg.EncodeBytes()
	if err != nil {
		log.Error('!', "IPP[%d]: %s", msg.RequestID, err)
		return nil, err
	}

	log.IppRequest(LogTraceIPP, '>', msg)

	if len(data) > 0 {
		body = append(body, data...)
	}

	// Setup timeout
	timeoutErr := &TimeoutError{Timeout: c.timeout}
	ctx, cancel := context.WithTimeoutCause(ctx, c.timeout, timeoutErr)
	defer cancel()

	// Prepare HTTP request
	rq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint.transportURL(), bytes.NewReader(body))
	if err != nil {
		return nil, c.requestError(ctx, log, msg.RequestID, timeoutErr, err)
	}

	rq.Host = c.endpoint.hostHeader()
	rq.ContentLength = int64(len(body))
	rq.Header.Set("Content-Type", goipp.ContentType)

	if c.creds {
		rq.SetBasicAuth(c.username, c.password)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(rq.Header))

	log.HTTPRequest(LogTraceHTTP, '>', msg.RequestID, rq)
	log.Dump(LogTraceHTTP, body, "")

	// Perform HTTP exchange
	rsp, err := c.http.Do(rq)
	if err != nil {
		return nil, c.requestError(ctx, log, msg.RequestID, timeoutErr, err)
	}

	defer rsp.Body.Close()

	log.HTTPResponse(LogTraceHTTP, '<', msg.RequestID, rsp)

	if rsp.StatusCode/100 != 2 {
		err := &HTTPError{
			StatusCode: rsp.StatusCode,
			Status:     httpReason(rsp),
		}
		log.Error('!', "IPP[%d]: %s", msg.RequestID, err)
		return nil, err
	}

	rspData, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, c.requestError(ctx, log, msg.RequestID, timeoutErr, err)
	}

	log.Dump(LogTraceHTTP, rspData, "")

	// Decode the response
	rspMsg := &goipp.Message{}
	err = rspMsg.DecodeBytes(rspData)
	if err != nil {
		log.Error('!', "IPP[%d]: %s", msg.RequestID, err)
		return nil, err
	}

	log.IppResponse(LogTraceIPP, '<', rspMsg)
	log.Debug('<', "IPP[%d]: %s", msg.RequestID, goipp.Status(rspMsg.Code))

	return rspMsg, nil
}

// requestError converts error, returned by the HTTP layer, into
// the error, returned by the Client
func (c *Client) requestError(ctx context.Context, log *LogMessage,
	id uint32, timeoutErr *TimeoutError, err error) error {

	if errors.Is(context.Cause(ctx), timeoutErr) || errors.Is(err, timeoutErr) {
		err = timeoutErr
	} else {
		err = fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	log.Error('!', "IPP[%d]: %s", id, err)
	return err
}

// httpReason returns HTTP reason phrase of the response
func httpReason(rsp *http.Response) string {
	reason := strings.TrimPrefix(rsp.Status, strconv.Itoa(rsp.StatusCode))
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = http.StatusText(rsp.StatusCode)
	}
	return reason
}
