/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * CUPS client
 */

// Package cups implements CUPS extension operations on top of
// the ipp.Client
package cups

import (
	"context"

	"github.com/OpenPrinting/goipp"
	ipp "github.com/OpenPrinting/ipp-client"
)

// Sender sends IPP requests. It is implemented by *ipp.Client
type Sender interface {
	Send(ctx context.Context, op goipp.Op, attrs goipp.Attributes,
		data []byte) (*goipp.Message, error)
}

// Client is the CUPS client. It provides both standard IPP
// operations of the embedded ipp.Client and CUPS operations
type Client struct {
	*ipp.Client
	conn Sender
}

// NewClient creates a new Client
func NewClient(cfg ipp.Config, opts ...ipp.Option) (*Client, error) {
	base, err := ipp.NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return New(base), nil
}

// New creates a new Client on top of existent ipp.Client
func New(base *ipp.Client) *Client {
	return &Client{Client: base, conn: base}
}

// newClientWithSender creates Client, that sends requests
// via the Sender, without the ipp.Client
func newClientWithSender(conn Sender) *Client {
	return &Client{conn: conn}
}

// send sends CUPS request
func (c *Client) send(ctx context.Context, op goipp.Op,
	attrs goipp.Attributes) (*goipp.Message, error) {
	return c.conn.Send(ctx, op, attrs, nil)
}

// enumerate sends enumeration request with optional filter
// attribute and requested-attributes
func (c *Client) enumerate(ctx context.Context, op goipp.Op,
	requested []string, filter ...goipp.Attribute) (*goipp.Message, error) {

	attrs := append(goipp.Attributes(nil), filter...)
	if attr, ok := ipp.RequestedAttrs(requested, DefaultRequestedAttrs[op]); ok {
		attrs.Add(attr)
	}

	return c.send(ctx, op, attrs)
}

// uriOp sends request with printer-uri as the only attribute
func (c *Client) uriOp(ctx context.Context, op goipp.Op,
	uri string) (*goipp.Message, error) {

	attrs := goipp.Attributes{ipp.URIAttr("printer-uri", uri)}
	return c.send(ctx, op, attrs)
}

// GetDefault returns the default destination
func (c *Client) GetDefault(ctx context.Context,
	requested []string) (*goipp.Message, error) {
	return c.enumerate(ctx, OpGetDefault, requested)
}

// GetPrinters returns list of printers
func (c *Client) GetPrinters(ctx context.Context,
	requested []string) (*goipp.Message, error) {
	return c.enumerate(ctx, OpGetPrinters, requested)
}

// GetClasses returns list of printer classes
func (c *Client) GetClasses(ctx context.Context,
	requested []string) (*goipp.Message, error) {
	return c.enumerate(ctx, OpGetClasses, requested)
}

// GetDevices returns list of available devices. If deviceID is
// not "", it is sent as a filter
func (c *Client) GetDevices(ctx context.Context, deviceID string,
	requested []string) (*goipp.Message, error) {

	var filter []goipp.Attribute
	if deviceID != "" {
		filter = append(filter, ipp.TextAttr("device-id", deviceID))
	}

	return c.enumerate(ctx, OpGetDevices, requested, filter...)
}

// GetPPDs returns list of available drivers. If ppdName is
// not "", it is sent as a filter
func (c *Client) GetPPDs(ctx context.Context, ppdName string,
	requested []string) (*goipp.Message, error) {

	var filter []goipp.Attribute
	if ppdName != "" {
		filter = append(filter, ipp.NameAttr("ppd-name", ppdName))
	}

	return c.enumerate(ctx, OpGetPPDs, requested, filter...)
}

// AddModifyPrinter adds a new printer or modifies existent one
func (c *Client) AddModifyPrinter(ctx context.Context,
	attrs ...goipp.Attribute) (*goipp.Message, error) {
	return c.send(ctx, OpAddModifyPrinter, attrs)
}

// DeletePrinter deletes the printer
func (c *Client) DeletePrinter(ctx context.Context,
	printerURI string) (*goipp.Message, error) {
	return c.uriOp(ctx, OpDeletePrinter, printerURI)
}

// AddModifyClass adds a new class or modifies existent one
func (c *Client) AddModifyClass(ctx context.Context,
	attrs ...goipp.Attribute) (*goipp.Message, error) {
	return c.send(ctx, OpAddModifyClass, attrs)
}

// DeleteClass deletes the class
func (c *Client) DeleteClass(ctx context.Context,
	classURI string) (*goipp.Message, error) {
	return c.uriOp(ctx, OpDeleteClass, classURI)
}

// AcceptJobs makes printer to accept new jobs
func (c *Client) AcceptJobs(ctx context.Context,
	printerURI string) (*goipp.Message, error) {
	return c.uriOp(ctx, OpAcceptJobs, printerURI)
}

// RejectJobs makes printer to reject new jobs
func (c *Client) RejectJobs(ctx context.Context,
	printerURI string) (*goipp.Message, error) {
	return c.uriOp(ctx, OpRejectJobs, printerURI)
}

// SetDefault sets the default destination
func (c *Client) SetDefault(ctx context.Context,
	printerURI string) (*goipp.Message, error) {
	return c.uriOp(ctx, OpSetDefault, printerURI)
}

// GetPPD returns PPD file of the printer. PPD file follows
// the response message
func (c *Client) GetPPD(ctx context.Context,
	printerURI string) (*goipp.Message, error) {
	return c.uriOp(ctx, OpGetPPD, printerURI)
}

// MoveJob moves the job to another printer
func (c *Client) MoveJob(ctx context.Context, jobID int,
	srcURI, dstURI string) (*goipp.Message, error) {

	attrs := goipp.Attributes{
		ipp.URIAttr("printer-uri", srcURI),
		ipp.IntAttr("job-id", jobID),
		ipp.URIAttr("destination-printer-uri", dstURI),
	}

	return c.send(ctx, OpMoveJob, attrs)
}

// AuthenticateJob authenticates the job, held for authentication
func (c *Client) AuthenticateJob(ctx context.Context, jobID int,
	printerURI string) (*goipp.Message, error) {

	attrs := goipp.Attributes{
		ipp.URIAttr("printer-uri", printerURI),
		ipp.IntAttr("job-id", jobID),
	}

	return c.send(ctx, OpAuthenticateJob, attrs)
}

// DocumentOption is a functional option for GetDocument
type DocumentOption func(*documentOpts)

type documentOpts struct {
	id     *int
	format string
}

// WithDocumentID requests the particular document of the job
func WithDocumentID(id int) DocumentOption {
	return func(opts *documentOpts) {
		opts.id = &id
	}
}

// WithDocumentFormat requests document in the particular format
func WithDocumentFormat(format string) DocumentOption {
	return func(opts *documentOpts) {
		opts.format = format
	}
}

// GetDocument returns the document of the job
func (c *Client) GetDocument(ctx context.Context, jobID int,
	printerURI string, opts ...DocumentOption) (*goipp.Message, error) {

	var o documentOpts
	for _, opt := range opts {
		opt(&o)
	}

	attrs := goipp.Attributes{
		ipp.URIAttr("printer-uri", printerURI),
		ipp.IntAttr("job-id", jobID),
	}

	if o.id != nil {
		attrs.Add(ipp.IntAttr("document-id", *o.id))
	}

	if o.format != "" {
		attrs.Add(ipp.MimeAttr("document-format", o.format))
	}

	return c.send(ctx, OpGetDocument, attrs)
}

// CreateLocalPrinter creates a temporary local printer
func (c *Client) CreateLocalPrinter(ctx context.Context,
	attrs ...goipp.Attribute) (*goipp.Message, error) {
	return c.send(ctx, OpCreateLocalPrinter, attrs)
}
