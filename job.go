/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Job operations
 */

package ipp

import (
	"context"

	"github.com/OpenPrinting/goipp"
)

// WhichJobs values
const (
	WhichJobsNotCompleted = "not-completed"
	WhichJobsCompleted    = "completed"
	WhichJobsAll          = "all"
	WhichJobsAborted      = "aborted"
	WhichJobsCanceled     = "canceled"
	WhichJobsPending      = "pending"
	WhichJobsProcessing   = "processing"
	WhichJobsHeld         = "held"
	WhichJobsStopped      = "stopped"
)

// getJobsAttrs are requested by GetJobs
var getJobsAttrs = []string{"job-id", "job-name", "job-state"}

// targetAttrs returns a new attribute list that starts with printer-uri
func (c *Client) targetAttrs(attrs ...goipp.Attribute) goipp.Attributes {
	out := make(goipp.Attributes, 0, len(attrs)+1)
	out.Add(URIAttr("printer-uri", c.endpoint.printerURI()))
	return append(out, attrs...)
}

// jobOp performs operation, that has only job-id as parameter
func (c *Client) jobOp(ctx context.Context, op goipp.Op,
	jobID int, extra ...goipp.Attribute) (*goipp.Message, error) {

	attrs := c.targetAttrs(IntAttr("job-id", jobID))
	attrs = append(attrs, extra...)
	return c.Send(ctx, op, attrs, nil)
}

// PrintJob submits a job with a single document
func (c *Client) PrintJob(ctx context.Context, jobName string,
	document []byte, extra ...goipp.Attribute) (*goipp.Message, error) {

	attrs := c.targetAttrs(
		NameAttr("job-name", jobName),
		MimeAttr("document-format", DefaultDocumentFormat),
	)
	attrs = append(attrs, extra...)

	return c.Send(ctx, OpPrintJob, attrs, document)
}

// PrintURI submits a job with a document, referenced by URI
func (c *Client) PrintURI(ctx context.Context, jobName, documentURI string,
	extra ...goipp.Attribute) (*goipp.Message, error) {

	attrs := c.targetAttrs(
		NameAttr("job-name", jobName),
		URIAttr("document-uri", documentURI),
	)
	attrs = append(attrs, extra...)

	return c.Send(ctx, OpPrintURI, attrs, nil)
}

// ValidateJob checks job attributes without submitting a job
func (c *Client) ValidateJob(ctx context.Context,
	extra ...goipp.Attribute) (*goipp.Message, error) {
	return c.Send(ctx, OpValidateJob, c.targetAttrs(extra...), nil)
}

// CreateJob creates a job without documents
func (c *Client) CreateJob(ctx context.Context, jobName string,
	extra ...goipp.Attribute) (*goipp.Message, error) {

	attrs := c.targetAttrs(NameAttr("job-name", jobName))
	attrs = append(attrs, extra...)

	return c.Send(ctx, OpCreateJob, attrs, nil)
}

// SendDocument adds a document to the job created by CreateJob
func (c *Client) SendDocument(ctx context.Context, jobID int,
	document []byte, last bool,
	extra ...goipp.Attribute) (*goipp.Message, error) {

	attrs := c.targetAttrs(
		IntAttr("job-id", jobID),
		BoolAttr("last-document", last),
		MimeAttr("document-format", DefaultDocumentFormat),
	)
	attrs = append(attrs, extra...)

	return c.Send(ctx, OpSendDocument, attrs, document)
}

// SendURI adds a document, referenced by URI, to the job
// created by CreateJob
func (c *Client) SendURI(ctx context.Context, jobID int,
	documentURI string, last bool,
	extra ...goipp.Attribute) (*goipp.Message, error) {

	attrs := c.targetAttrs(
		IntAttr("job-id", jobID),
		BoolAttr("last-document", last),
		URIAttr("document-uri", documentURI),
	)
	attrs = append(attrs, extra...)

	return c.Send(ctx, OpSendURI, attrs, nil)
}

// CancelJob cancels the job
func (c *Client) CancelJob(ctx context.Context, jobID int) (*goipp.Message, error) {
	return c.jobOp(ctx, OpCancelJob, jobID)
}

// GetJobAttributes returns job attributes. If requested is empty,
// the printer decides what to return
func (c *Client) GetJobAttributes(ctx context.Context, jobID int,
	requested []string) (*goipp.Message, error) {

	attrs := c.targetAttrs(IntAttr("job-id", jobID))
	if attr, ok := RequestedAttrs(requested, nil); ok {
		attrs.Add(attr)
	}

	return c.Send(ctx, OpGetJobAttributes, attrs, nil)
}

// GetJobs returns list of jobs. If which is "", not-completed
// jobs are returned
func (c *Client) GetJobs(ctx context.Context, which string) (*goipp.Message, error) {
	if which == "" {
		which = WhichJobsNotCompleted
	}

	requested, _ := RequestedAttrs(nil, getJobsAttrs)
	attrs := c.targetAttrs(
		KeywordAttr("which-jobs", which),
		BoolAttr("my-jobs", false),
		requested,
	)

	return c.Send(ctx, OpGetJobs, attrs, nil)
}

// HoldJob holds the job
func (c *Client) HoldJob(ctx context.Context, jobID int) (*goipp.Message, error) {
	return c.jobOp(ctx, OpHoldJob, jobID)
}

// ReleaseJob releases the held job
func (c *Client) ReleaseJob(ctx context.Context, jobID int) (*goipp.Message, error) {
	return c.jobOp(ctx, OpReleaseJob, jobID)
}

// RestartJob restarts the job
func (c *Client) RestartJob(ctx context.Context, jobID int) (*goipp.Message, error) {
	return c.jobOp(ctx, OpRestartJob, jobID)
}

// SetJobAttributes modifies job attributes
func (c *Client) SetJobAttributes(ctx context.Context, jobID int,
	attrs ...goipp.Attribute) (*goipp.Message, error) {
	return c.jobOp(ctx, OpSetJobAttributes, jobID, attrs...)
}

// ReprocessJob creates a copy of the completed job and processes it
func (c *Client) ReprocessJob(ctx context.Context, jobID int) (*goipp.Message, error) {
	return c.jobOp(ctx, OpReprocessJob, jobID)
}

// CancelJobs cancels jobs of the printer. If which is "",
// which-jobs is not sent
func (c *Client) CancelJobs(ctx context.Context, which string) (*goipp.Message, error) {
	attrs := c.targetAttrs()
	if which != "" {
		attrs.Add(KeywordAttr("which-jobs", which))
	}

	return c.Send(ctx, OpCancelJobs, attrs, nil)
}

// CancelMyJobs cancels jobs of the requesting user
func (c *Client) CancelMyJobs(ctx context.Context) (*goipp.Message, error) {
	return c.Send(ctx, OpCancelMyJobs, c.targetAttrs(), nil)
}

// ResubmitJob creates a copy of the job with modified attributes
func (c *Client) ResubmitJob(ctx context.Context, jobID int,
	extra ...goipp.Attribute) (*goipp.Message, error) {
	return c.jobOp(ctx, OpResubmitJob, jobID, extra...)
}

// CloseJob closes the job, created by CreateJob, without
// adding more documents
func (c *Client) CloseJob(ctx context.Context, jobID int) (*goipp.Message, error) {
	return c.jobOp(ctx, OpCloseJob, jobID)
}
