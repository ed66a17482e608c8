/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Operation table of the base IPP vocabulary
 */

package ipp

import (
	"github.com/OpenPrinting/goipp"
)

// Base IPP operations, issued by Client methods
const (
	OpPrintJob                  = goipp.OpPrintJob
	OpPrintURI                  = goipp.OpPrintURI
	OpValidateJob               = goipp.OpValidateJob
	OpCreateJob                 = goipp.OpCreateJob
	OpSendDocument              = goipp.OpSendDocument
	OpSendURI                   = goipp.OpSendURI
	OpCancelJob                 = goipp.OpCancelJob
	OpGetJobAttributes          = goipp.OpGetJobAttributes
	OpGetJobs                   = goipp.OpGetJobs
	OpGetPrinterAttributes      = goipp.OpGetPrinterAttributes
	OpHoldJob                   = goipp.OpHoldJob
	OpReleaseJob                = goipp.OpReleaseJob
	OpRestartJob                = goipp.OpRestartJob
	OpPausePrinter              = goipp.OpPausePrinter
	OpResumePrinter             = goipp.OpResumePrinter
	OpPurgeJobs                 = goipp.OpPurgeJobs
	OpSetPrinterAttributes      = goipp.OpSetPrinterAttributes
	OpSetJobAttributes          = goipp.OpSetJobAttributes
	OpCreatePrinterSubscription = goipp.OpCreatePrinterSubscriptions
	OpCreateJobSubscription     = goipp.OpCreateJobSubscriptions
	OpGetSubscriptionAttributes = goipp.OpGetSubscriptionAttributes
	OpGetSubscriptions          = goipp.OpGetSubscriptions
	OpRenewSubscription         = goipp.OpRenewSubscription
	OpCancelSubscription        = goipp.OpCancelSubscription
	OpGetNotifications          = goipp.OpGetNotifications
	OpEnablePrinter             = goipp.OpEnablePrinter
	OpDisablePrinter            = goipp.OpDisablePrinter
	OpHoldNewJobs               = goipp.OpHoldNewJobs
	OpReleaseHeldNewJobs        = goipp.OpReleaseHeldNewJobs
	OpReprocessJob              = goipp.OpReprocessJob
	OpCancelJobs                = goipp.OpCancelJobs
	OpCancelMyJobs              = goipp.OpCancelMyJobs
	OpResubmitJob               = goipp.OpResubmitJob
	OpCloseJob                  = goipp.OpCloseJob
)

// OperationNames maps names of the base operations to their codes.
// The table is closed; use RawOp for anything else
var OperationNames = map[string]goipp.Op{
	"Print-Job":                   OpPrintJob,
	"Print-URI":                   OpPrintURI,
	"Validate-Job":                OpValidateJob,
	"Create-Job":                  OpCreateJob,
	"Send-Document":               OpSendDocument,
	"Send-URI":                    OpSendURI,
	"Cancel-Job":                  OpCancelJob,
	"Get-Job-Attributes":          OpGetJobAttributes,
	"Get-Jobs":                    OpGetJobs,
	"Get-Printer-Attributes":      OpGetPrinterAttributes,
	"Hold-Job":                    OpHoldJob,
	"Release-Job":                 OpReleaseJob,
	"Restart-Job":                 OpRestartJob,
	"Pause-Printer":               OpPausePrinter,
	"Resume-Printer":              OpResumePrinter,
	"Purge-Jobs":                  OpPurgeJobs,
	"Set-Printer-Attributes":      OpSetPrinterAttributes,
	"Set-Job-Attributes":          OpSetJobAttributes,
	"Create-Printer-Subscription": OpCreatePrinterSubscription,
	"Create-Job-Subscription":     OpCreateJobSubscription,
	"Get-Subscription-Attributes": OpGetSubscriptionAttributes,
	"Get-Subscriptions":           OpGetSubscriptions,
	"Renew-Subscription":          OpRenewSubscription,
	"Cancel-Subscription":         OpCancelSubscription,
	"Get-Notifications":           OpGetNotifications,
	"Enable-Printer":              OpEnablePrinter,
	"Disable-Printer":             OpDisablePrinter,
	"Hold-New-Jobs":               OpHoldNewJobs,
	"Release-Held-New-Jobs":       OpReleaseHeldNewJobs,
	"Reprocess-Job":               OpReprocessJob,
	"Cancel-Jobs":                 OpCancelJobs,
	"Cancel-My-Jobs":              OpCancelMyJobs,
	"Resubmit-Job":                OpResubmitJob,
	"Close-Job":                   OpCloseJob,
}

// LookupOp returns code of the base operation by its name
func LookupOp(name string) (op goipp.Op, ok bool) {
	op, ok = OperationNames[name]
	return
}

// RawOp makes goipp.Op out of numeric operation code. Client.Send
// doesn't check operation codes, so codes not known to this package
// are transmitted as is
func RawOp(code uint16) goipp.Op {
	return goipp.Op(code)
}
