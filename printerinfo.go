/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Decoding of printer attributes
 */

package ipp

import (
	"slices"
	"strings"

	"github.com/OpenPrinting/goipp"
	"github.com/google/uuid"
)

// PrinterState represents printer-state values
type PrinterState int

// PrinterState values
const (
	PrinterStateUnknown    PrinterState = 0
	PrinterStateIdle       PrinterState = 3
	PrinterStateProcessing PrinterState = 4
	PrinterStateStopped    PrinterState = 5
)

// String returns name of the PrinterState
func (s PrinterState) String() string {
	switch s {
	case PrinterStateIdle:
		return "idle"
	case PrinterStateProcessing:
		return "processing"
	case PrinterStateStopped:
		return "stopped"
	}
	return "unknown"
}

// PrinterInfo contains the commonly used printer attributes,
// decoded into the Go types
type PrinterInfo struct {
	Name            string            // printer-name
	URI             string            // printer-uri-supported, first value
	DNSSDName       string            // printer-dns-sd-name with fallbacks
	Info            string            // printer-info
	Location        string            // printer-location
	MakeAndModel    string            // printer-make-and-model
	State           PrinterState      // printer-state
	StateReasons    []string          // printer-state-reasons
	AcceptingJobs   bool              // printer-is-accepting-jobs
	Type            int               // printer-type (CUPS)
	Kind            []string          // printer-kind
	DocumentFormats []string          // document-format-supported
	Color           string            // "T", "F" or "" if unknown
	Duplex          string            // "T", "F" or "" if unknown
	UUID            string            // printer-uuid, normalized
	DeviceID        map[string]string // printer-device-id, parsed
}

// RejectingJobs reports whether printer rejects new jobs
func (info PrinterInfo) RejectingJobs() bool {
	return !info.AcceptingJobs ||
		slices.Contains(info.StateReasons, "rejecting-jobs")
}

// DecodePrinter decodes printer attributes. If attribute
// is duplicated, first occurrence wins
//
// This is where information comes from:
//
//	DNSSDName: "printer-dns-sd-name" with fallback to
//	           "printer-info" and "printer-make-and-model"
//	UUID:      "printer-uuid", with or without "urn:uuid:" prefix
//	Duplex:    search "sides-supported" for strings with
//	           prefix "one" or "two"
func DecodePrinter(attrs goipp.Attributes) PrinterInfo {
	a := newIppAttrs(attrs)

	info := PrinterInfo{
		Name:            a.strSingle("printer-name"),
		URI:             a.strSingle("printer-uri-supported"),
		DNSSDName:       a.strSingle("printer-dns-sd-name", "printer-info", "printer-make-and-model"),
		Info:            a.strSingle("printer-info"),
		Location:        a.strSingle("printer-location"),
		MakeAndModel:    a.strSingle("printer-make-and-model"),
		State:           PrinterState(a.getInt("printer-state")),
		StateReasons:    a.getStrings("printer-state-reasons"),
		AcceptingJobs:   a.getBool("printer-is-accepting-jobs") != "F",
		Type:            a.getInt("printer-type"),
		Kind:            a.getStrings("printer-kind"),
		DocumentFormats: a.getStrings("document-format-supported"),
		Color:           a.getBool("color-supported"),
		Duplex:          a.getDuplex(),
		DeviceID:        make(map[string]string),
	}

	if u, err := uuid.Parse(a.strSingle("printer-uuid")); err == nil {
		info.UUID = u.String()
	}

	// Parse IEEE 1284 device ID
	for _, id := range strings.Split(a.strSingle("printer-device-id"), ";") {
		keyval := strings.SplitN(id, ":", 2)
		if len(keyval) == 2 {
			info.DeviceID[strings.TrimSpace(keyval[0])] = keyval[1]
		}
	}

	return info
}

// DecodePrinters decodes all printer groups of the response
func DecodePrinters(msg *goipp.Message) []PrinterInfo {
	var printers []PrinterInfo

	if msg.Groups == nil {
		if len(msg.Printer) != 0 {
			printers = append(printers, DecodePrinter(msg.Printer))
		}
		return printers
	}

	for _, grp := range msg.Groups {
		if grp.Tag == goipp.TagPrinterGroup {
			printers = append(printers, DecodePrinter(grp.Attrs))
		}
	}

	return printers
}

// ippAttrs represents a collection of IPP attributes,
// enrolled into a map for convenient access
type ippAttrs map[string]goipp.Values

// Create new ippAttrs
func newIppAttrs(attrs goipp.Attributes) ippAttrs {
	m := make(ippAttrs)

	// Note, we move from the end of list to the beginning, so
	// in a case of duplicated attributes, first occurrence wins
	for i := len(attrs) - 1; i >= 0; i-- {
		attr := attrs[i]
		m[attr.Name] = attr.Values
	}

	return m
}

// getDuplex returns "T" if printer supports two-sided
// printing, "F" if not and "" if it cant' tell
func (attrs ippAttrs) getDuplex() string {
	one, two := false, false
	for _, s := range attrs.getStrings("sides-supported") {
		switch {
		case strings.HasPrefix(s, "one"):
			one = true
		case strings.HasPrefix(s, "two"):
			two = true
		}
	}

	if two {
		return "T"
	}

	if one {
		return "F"
	}

	return ""
}

// Get a single-string attribute
func (attrs ippAttrs) strSingle(names ...string) string {
	strs := attrs.getStrings(names...)
	if len(strs) == 0 {
		return ""
	}

	return strs[0]
}

// Get attribute's []string value by attribute name
// Multiple names may be specified, for fallback purposes
func (attrs ippAttrs) getStrings(names ...string) []string {
	vals := attrs.getAttr(goipp.TypeString, names...)
	if vals == nil {
		return nil
	}

	strs := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(goipp.String); ok {
			strs = append(strs, string(s))
		}
	}

	return strs
}

// Get integer attribute. Returns 0 if attribute is not found
func (attrs ippAttrs) getInt(names ...string) int {
	vals := attrs.getAttr(goipp.TypeInteger, names...)
	if vals == nil {
		return 0
	}
	return int(vals[0].(goipp.Integer))
}

// Get boolean attribute. Returns "F" or "T" if attribute is found,
// empty string otherwise.
// Multiple names may be specified, for fallback purposes
func (attrs ippAttrs) getBool(names ...string) string {
	vals := attrs.getAttr(goipp.TypeBoolean, names...)
	if vals == nil {
		return ""
	}
	if vals[0].(goipp.Boolean) {
		return "T"
	}
	return "F"
}

// Get attribute's value by attribute name
// Multiple names may be specified, for fallback purposes
// Value type is checked and enforced
func (attrs ippAttrs) getAttr(t goipp.Type, names ...string) []goipp.Value {
	for _, name := range names {
		v, ok := attrs[name]
		if ok && len(v) > 0 && v[0].V.Type() == t {
			vals := make([]goipp.Value, len(v))
			for i := range v {
				vals[i] = v[i].V
			}
			return vals
		}
	}

	return nil
}
