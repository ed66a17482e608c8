/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer operations
 */

package ipp

import (
	"context"

	"github.com/OpenPrinting/goipp"
)

// getPrinterAttrs are requested by GetPrinterAttributes by default
var getPrinterAttrs = []string{"all"}

// GetPrinterAttributes returns printer attributes. If requested
// is empty, all attributes are requested
func (c *Client) GetPrinterAttributes(ctx context.Context,
	requested []string) (*goipp.Message, error) {

	attr, _ := RequestedAttrs(requested, getPrinterAttrs)
	return c.Send(ctx, OpGetPrinterAttributes, c.targetAttrs(attr), nil)
}

// SetPrinterAttributes modifies printer attributes
func (c *Client) SetPrinterAttributes(ctx context.Context,
	attrs ...goipp.Attribute) (*goipp.Message, error) {
	return c.Send(ctx, OpSetPrinterAttributes, c.targetAttrs(attrs...), nil)
}

// PausePrinter stops job processing
func (c *Client) PausePrinter(ctx context.Context) (*goipp.Message, error) {
	return c.Send(ctx, OpPausePrinter, c.targetAttrs(), nil)
}

// ResumePrinter resumes job processing
func (c *Client) ResumePrinter(ctx context.Context) (*goipp.Message, error) {
	return c.Send(ctx, OpResumePrinter, c.targetAttrs(), nil)
}

// PurgeJobs deletes all jobs
func (c *Client) PurgeJobs(ctx context.Context) (*goipp.Message, error) {
	return c.Send(ctx, OpPurgeJobs, c.targetAttrs(), nil)
}

// EnablePrinter makes printer to accept new jobs
func (c *Client) EnablePrinter(ctx context.Context) (*goipp.Message, error) {
	return c.Send(ctx, OpEnablePrinter, c.targetAttrs(), nil)
}

// DisablePrinter makes printer to reject new jobs
func (c *Client) DisablePrinter(ctx context.Context) (*goipp.Message, error) {
	return c.Send(ctx, OpDisablePrinter, c.targetAttrs(), nil)
}

// HoldNewJobs holds newly submitted jobs
func (c *Client) HoldNewJobs(ctx context.Context) (*goipp.Message, error) {
	return c.Send(ctx, OpHoldNewJobs, c.targetAttrs(), nil)
}

// ReleaseHeldNewJobs releases jobs held by HoldNewJobs
func (c *Client) ReleaseHeldNewJobs(ctx context.Context) (*goipp.Message, error) {
	return c.Send(ctx, OpReleaseHeldNewJobs, c.targetAttrs(), nil)
}
