/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer attributes decoding tests
 */

package ipp

import (
	"testing"

	"github.com/OpenPrinting/goipp"
	"github.com/google/go-cmp/cmp"
)

// export exports ippAttrs back to goipp.Attributes, sorted
// by attribute name
func (attrs ippAttrs) export() goipp.Attributes {
	var out goipp.Attributes
	for name, vals := range attrs {
		out = append(out, goipp.Attribute{Name: name, Values: vals})
	}
	return out
}

// TestNewIppAttrs tests newIppAttrs function
func TestNewIppAttrs(t *testing.T) {
	type testData struct {
		in  goipp.Attributes // Input attributes
		out goipp.Attributes // Resulting attributes
	}

	tests := []testData{
		{
			// Normal data
			in: goipp.Attributes{
				goipp.MakeAttr("printer-info",
					goipp.TagText,
					goipp.String("office")),
				goipp.MakeAttr("printer-make-and-model",
					goipp.TagText,
					goipp.String("test printer")),
			},

			out: goipp.Attributes{
				goipp.MakeAttr("printer-info",
					goipp.TagText,
					goipp.String("office")),
				goipp.MakeAttr("printer-make-and-model",
					goipp.TagText,
					goipp.String("test printer")),
			},
		},

		{
			// Duplicated attribute. First occurrence wins
			in: goipp.Attributes{
				goipp.MakeAttr("printer-info",
					goipp.TagText,
					goipp.String("office")),
				goipp.MakeAttr("printer-make-and-model",
					goipp.TagText,
					goipp.String("test printer")),
				goipp.MakeAttr("printer-make-and-model",
					goipp.TagText,
					goipp.String("duplicate")),
			},

			out: goipp.Attributes{
				goipp.MakeAttr("printer-info",
					goipp.TagText,
					goipp.String("office")),
				goipp.MakeAttr("printer-make-and-model",
					goipp.TagText,
					goipp.String("test printer")),
			},
		},
	}

	for _, test := range tests {
		attrs := newIppAttrs(test.in)
		out := attrs.export()

		if !out.Similar(test.out) {
			f := goipp.NewFormatter()
			f.Printf("newIppAttrs test failed:")

			f.Printf("input:")
			f.SetIndent(4)
			f.FmtAttributes(test.in)
			f.SetIndent(0)

			f.Printf("expected output:")
			f.SetIndent(4)
			f.FmtAttributes(test.out)
			f.SetIndent(0)

			f.Printf("present output:")
			f.SetIndent(4)
			f.FmtAttributes(out)
			f.SetIndent(0)

			t.Errorf("%s", f.String())
		}
	}
}

var testDataUUID = []struct{ in, out string }{
	{"01234567-89ab-cdef-0123-456789abcdef", "01234567-89ab-cdef-0123-456789abcdef"},
	{"01234567-89AB-CDEF-0123-456789ABCDEF", "01234567-89ab-cdef-0123-456789abcdef"},
	{"01234567-89ab-cdef-0123-456789abcde", ""},
	{"01234567-89ab-cdef-0123-456789abcdef0", ""},
	{"urn:uuid:01234567-89ab-cdef-0123-456789abcdef", "01234567-89ab-cdef-0123-456789abcdef"},
	{"0123456789abcdef0123456789abcdef", "01234567-89ab-cdef-0123-456789abcdef"},
	{"{01234567-89ab-cdef-0123-456789abcdef}", "01234567-89ab-cdef-0123-456789abcdef"},
	{"", ""},
}

// TestDecodePrinterUUID tests printer-uuid normalization
func TestDecodePrinterUUID(t *testing.T) {
	for _, data := range testDataUUID {
		attrs := goipp.Attributes{
			goipp.MakeAttr("printer-uuid", goipp.TagURI, goipp.String(data.in)),
		}

		info := DecodePrinter(attrs)
		if info.UUID != data.out {
			t.Errorf("printer-uuid %q: expected %q, present %q",
				data.in, data.out, info.UUID)
		}
	}
}

// TestDecodePrinter tests DecodePrinter function
func TestDecodePrinter(t *testing.T) {
	attrs := goipp.Attributes{
		NameAttr("printer-name", "Office"),
		URIAttr("printer-uri-supported",
			"ipp://localhost/printers/Office",
			"ipps://localhost/printers/Office"),
		TextAttr("printer-info", "Office printer"),
		TextAttr("printer-location", "2nd floor"),
		TextAttr("printer-make-and-model", "Generic PDF"),
		EnumAttr("printer-state", 4),
		KeywordAttr("printer-state-reasons", "none"),
		BoolAttr("printer-is-accepting-jobs", true),
		EnumAttr("printer-type", 0x801046),
		MimeAttr("document-format-supported", "application/pdf", "image/urf"),
		BoolAttr("color-supported", false),
		KeywordAttr("sides-supported", "one-sided", "two-sided-long-edge"),
		TextAttr("printer-device-id", "MFG:Generic;MDL:PDF;CMD:PDF,URF;"),
	}

	expected := PrinterInfo{
		Name:            "Office",
		URI:             "ipp://localhost/printers/Office",
		DNSSDName:       "Office printer",
		Info:            "Office printer",
		Location:        "2nd floor",
		MakeAndModel:    "Generic PDF",
		State:           PrinterStateProcessing,
		StateReasons:    []string{"none"},
		AcceptingJobs:   true,
		Type:            0x801046,
		DocumentFormats: []string{"application/pdf", "image/urf"},
		Color:           "F",
		Duplex:          "T",
		DeviceID: map[string]string{
			"MFG": "Generic",
			"MDL": "PDF",
			"CMD": "PDF,URF",
		},
	}

	present := DecodePrinter(attrs)
	if diff := cmp.Diff(expected, present); diff != "" {
		t.Errorf("DecodePrinter mismatch (-expected +present):\n%s", diff)
	}

	if present.RejectingJobs() {
		t.Errorf("RejectingJobs: expected false, present true")
	}

	if s := present.State.String(); s != "processing" {
		t.Errorf("State: expected %q, present %q", "processing", s)
	}
}

// TestDecodePrinterRejecting tests RejectingJobs
func TestDecodePrinterRejecting(t *testing.T) {
	tests := []struct {
		attrs     goipp.Attributes
		rejecting bool
	}{
		{goipp.Attributes{}, false},
		{goipp.Attributes{BoolAttr("printer-is-accepting-jobs", true)}, false},
		{goipp.Attributes{BoolAttr("printer-is-accepting-jobs", false)}, true},
		{goipp.Attributes{KeywordAttr("printer-state-reasons",
			"paused", "rejecting-jobs")}, true},
	}

	for i, test := range tests {
		info := DecodePrinter(test.attrs)
		if info.RejectingJobs() != test.rejecting {
			t.Errorf("test %d: RejectingJobs expected %v, present %v",
				i, test.rejecting, info.RejectingJobs())
		}
	}
}

// TestDecodePrinters tests DecodePrinters function
func TestDecodePrinters(t *testing.T) {
	msg := goipp.NewResponse(goipp.DefaultVersion, goipp.StatusOk, 1)
	msg.Groups = goipp.Groups{
		{Tag: goipp.TagOperationGroup, Attrs: goipp.Attributes{
			goipp.MakeAttribute("attributes-charset",
				goipp.TagCharset, goipp.String("utf-8")),
		}},
		{Tag: goipp.TagPrinterGroup, Attrs: goipp.Attributes{
			NameAttr("printer-name", "A"),
		}},
		{Tag: goipp.TagPrinterGroup, Attrs: goipp.Attributes{
			NameAttr("printer-name", "B"),
		}},
	}

	var names []string
	for _, p := range DecodePrinters(msg) {
		names = append(names, p.Name)
	}

	if diff := cmp.Diff([]string{"A", "B"}, names); diff != "" {
		t.Errorf("DecodePrinters mismatch (-expected +present):\n%s", diff)
	}
}
