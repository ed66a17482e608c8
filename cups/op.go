/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Operation table of the CUPS extension
 */

package cups

import (
	"github.com/OpenPrinting/goipp"
)

// CUPS operations
const (
	OpGetDefault         = goipp.OpCupsGetDefault
	OpGetPrinters        = goipp.OpCupsGetPrinters
	OpAddModifyPrinter   = goipp.OpCupsAddModifyPrinter
	OpDeletePrinter      = goipp.OpCupsDeletePrinter
	OpGetClasses         = goipp.OpCupsGetClasses
	OpAddModifyClass     = goipp.OpCupsAddModifyClass
	OpDeleteClass        = goipp.OpCupsDeleteClass
	OpAcceptJobs         = goipp.OpCupsAcceptJobs
	OpRejectJobs         = goipp.OpCupsRejectJobs
	OpSetDefault         = goipp.OpCupsSetDefault
	OpGetDevices         = goipp.OpCupsGetDevices
	OpGetPPDs            = goipp.OpCupsGetPpds
	OpMoveJob            = goipp.OpCupsMoveJob
	OpAuthenticateJob    = goipp.OpCupsAuthenticateJob
	OpGetPPD             = goipp.OpCupsGetPpd
	OpGetDocument        = goipp.OpCupsGetDocument
	OpCreateLocalPrinter = goipp.OpCupsCreateLocalPrinter
)

// OperationNames maps names of the CUPS operations to their codes
var OperationNames = map[string]goipp.Op{
	"CUPS-Get-Default":          OpGetDefault,
	"CUPS-Get-Printers":         OpGetPrinters,
	"CUPS-Add-Modify-Printer":   OpAddModifyPrinter,
	"CUPS-Delete-Printer":       OpDeletePrinter,
	"CUPS-Get-Classes":          OpGetClasses,
	"CUPS-Add-Modify-Class":     OpAddModifyClass,
	"CUPS-Delete-Class":         OpDeleteClass,
	"CUPS-Accept-Jobs":          OpAcceptJobs,
	"CUPS-Reject-Jobs":          OpRejectJobs,
	"CUPS-Set-Default":          OpSetDefault,
	"CUPS-Get-Devices":          OpGetDevices,
	"CUPS-Get-PPDs":             OpGetPPDs,
	"CUPS-Move-Job":             OpMoveJob,
	"CUPS-Authenticate-Job":     OpAuthenticateJob,
	"CUPS-Get-PPD":              OpGetPPD,
	"CUPS-Get-Document":         OpGetDocument,
	"CUPS-Create-Local-Printer": OpCreateLocalPrinter,
}

// LookupOp returns code of the CUPS operation by its name
func LookupOp(name string) (op goipp.Op, ok bool) {
	op, ok = OperationNames[name]
	return
}

// DefaultRequestedAttrs contains requested-attributes, sent by
// enumeration operations when caller doesn't specify them
var DefaultRequestedAttrs = map[goipp.Op][]string{
	OpGetPrinters: {
		"printer-name",
		"printer-uri-supported",
		"printer-state",
		"printer-state-reasons",
		"printer-type",
		"printer-is-accepting-jobs",
		"printer-location",
		"printer-info",
		"printer-make-and-model",
		"document-format-supported",
		"media-supported",
	},
	OpGetClasses: {
		"printer-name",
		"printer-uri-supported",
		"member-uris",
	},
	OpGetDevices: {
		"device-id",
		"device-info",
		"device-uri",
	},
	OpGetPPDs: {
		"ppd-name",
		"ppd-language-level",
		"ppd-model",
	},
}
