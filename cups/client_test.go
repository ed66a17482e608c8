/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * CUPS client tests
 */

package cups

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/OpenPrinting/goipp"
	ipp "github.com/OpenPrinting/ipp-client"
	"github.com/google/go-cmp/cmp"
)

// mockSender records requests and returns the prepared response
type mockSender struct {
	op    goipp.Op
	attrs goipp.Attributes
	data  []byte
	calls int
	rsp   *goipp.Message
	err   error
}

// Send implements Sender interface
func (m *mockSender) Send(ctx context.Context, op goipp.Op,
	attrs goipp.Attributes, data []byte) (*goipp.Message, error) {

	m.op, m.attrs, m.data = op, attrs, data
	m.calls++

	if m.err != nil {
		return nil, m.err
	}

	if m.rsp != nil {
		return m.rsp, nil
	}

	return goipp.NewResponse(goipp.DefaultVersion, goipp.StatusOk, 1), nil
}

// checkAttrs compares attributes and reports mismatch
func checkAttrs(t *testing.T, title string, expected, present goipp.Attributes) {
	t.Helper()

	if !present.Equal(expected) {
		f := goipp.NewFormatter()
		f.Printf("%s: attributes mismatch", title)

		f.Printf("expected:")
		f.SetIndent(4)
		f.FmtAttributes(expected)
		f.SetIndent(0)

		f.Printf("present:")
		f.SetIndent(4)
		f.FmtAttributes(present)
		f.SetIndent(0)

		t.Errorf("%s", f.String())
	}
}

// TestOperations tests requests of the CUPS operations
func TestOperations(t *testing.T) {
	const uri = "ipp://localhost/printers/Foo"
	target := ipp.URIAttr("printer-uri", uri)

	requested := func(op goipp.Op) goipp.Attribute {
		names := DefaultRequestedAttrs[op]
		return ipp.KeywordAttr("requested-attributes", names[0], names[1:]...)
	}

	tests := []struct {
		name  string
		call  func(ctx context.Context, c *Client) (*goipp.Message, error)
		op    goipp.Op
		attrs goipp.Attributes
	}{
		{
			name: "GetDefault",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetDefault(ctx, nil)
			},
			op: OpGetDefault,
		},
		{
			name: "GetDefault/requested",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetDefault(ctx, []string{"printer-name"})
			},
			op: OpGetDefault,
			attrs: goipp.Attributes{
				ipp.KeywordAttr("requested-attributes", "printer-name"),
			},
		},
		{
			name: "GetPrinters",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetPrinters(ctx, nil)
			},
			op:    OpGetPrinters,
			attrs: goipp.Attributes{requested(OpGetPrinters)},
		},
		{
			name: "GetPrinters/empty",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetPrinters(ctx, []string{})
			},
			op:    OpGetPrinters,
			attrs: goipp.Attributes{requested(OpGetPrinters)},
		},
		{
			name: "GetClasses",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetClasses(ctx, nil)
			},
			op:    OpGetClasses,
			attrs: goipp.Attributes{requested(OpGetClasses)},
		},
		{
			name: "GetDevices",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetDevices(ctx, "", nil)
			},
			op:    OpGetDevices,
			attrs: goipp.Attributes{requested(OpGetDevices)},
		},
		{
			name: "GetDevices/filter",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetDevices(ctx, "MFG:HP;MDL:LaserJet;", nil)
			},
			op: OpGetDevices,
			attrs: goipp.Attributes{
				ipp.TextAttr("device-id", "MFG:HP;MDL:LaserJet;"),
				requested(OpGetDevices),
			},
		},
		{
			name: "GetPPDs",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetPPDs(ctx, "", nil)
			},
			op:    OpGetPPDs,
			attrs: goipp.Attributes{requested(OpGetPPDs)},
		},
		{
			name: "GetPPDs/filter",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetPPDs(ctx, "everywhere", []string{"ppd-model"})
			},
			op: OpGetPPDs,
			attrs: goipp.Attributes{
				ipp.NameAttr("ppd-name", "everywhere"),
				ipp.KeywordAttr("requested-attributes", "ppd-model"),
			},
		},
		{
			name: "AddModifyPrinter",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.AddModifyPrinter(ctx, target,
					ipp.URIAttr("device-uri", "socket://10.0.0.5"))
			},
			op: OpAddModifyPrinter,
			attrs: goipp.Attributes{
				target,
				ipp.URIAttr("device-uri", "socket://10.0.0.5"),
			},
		},
		{
			name: "DeletePrinter",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.DeletePrinter(ctx, uri)
			},
			op:    OpDeletePrinter,
			attrs: goipp.Attributes{target},
		},
		{
			name: "AddModifyClass",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.AddModifyClass(ctx,
					ipp.URIAttr("printer-uri", "ipp://localhost/classes/All"),
					ipp.URIAttr("member-uris", uri))
			},
			op: OpAddModifyClass,
			attrs: goipp.Attributes{
				ipp.URIAttr("printer-uri", "ipp://localhost/classes/All"),
				ipp.URIAttr("member-uris", uri),
			},
		},
		{
			name: "DeleteClass",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.DeleteClass(ctx, "ipp://localhost/classes/All")
			},
			op: OpDeleteClass,
			attrs: goipp.Attributes{
				ipp.URIAttr("printer-uri", "ipp://localhost/classes/All"),
			},
		},
		{
			name: "AcceptJobs",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.AcceptJobs(ctx, uri)
			},
			op:    OpAcceptJobs,
			attrs: goipp.Attributes{target},
		},
		{
			name: "RejectJobs",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.RejectJobs(ctx, uri)
			},
			op:    OpRejectJobs,
			attrs: goipp.Attributes{target},
		},
		{
			name: "SetDefault",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.SetDefault(ctx, uri)
			},
			op:    OpSetDefault,
			attrs: goipp.Attributes{target},
		},
		{
			name: "GetPPD",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetPPD(ctx, uri)
			},
			op:    OpGetPPD,
			attrs: goipp.Attributes{target},
		},
		{
			name: "MoveJob",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.MoveJob(ctx, 12, uri, "ipp://localhost/printers/Bar")
			},
			op: OpMoveJob,
			attrs: goipp.Attributes{
				target,
				ipp.IntAttr("job-id", 12),
				ipp.URIAttr("destination-printer-uri", "ipp://localhost/printers/Bar"),
			},
		},
		{
			name: "AuthenticateJob",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.AuthenticateJob(ctx, 12, uri)
			},
			op: OpAuthenticateJob,
			attrs: goipp.Attributes{
				target,
				ipp.IntAttr("job-id", 12),
			},
		},
		{
			name: "GetDocument",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetDocument(ctx, 12, uri)
			},
			op: OpGetDocument,
			attrs: goipp.Attributes{
				target,
				ipp.IntAttr("job-id", 12),
			},
		},
		{
			name: "GetDocument/options",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.GetDocument(ctx, 12, uri,
					WithDocumentID(2), WithDocumentFormat("application/pdf"))
			},
			op: OpGetDocument,
			attrs: goipp.Attributes{
				target,
				ipp.IntAttr("job-id", 12),
				ipp.IntAttr("document-id", 2),
				ipp.MimeAttr("document-format", "application/pdf"),
			},
		},
		{
			name: "CreateLocalPrinter",
			call: func(ctx context.Context, c *Client) (*goipp.Message, error) {
				return c.CreateLocalPrinter(ctx,
					ipp.NameAttr("printer-name", "Local"),
					ipp.URIAttr("device-uri", "ipp://10.0.0.5/ipp/print"))
			},
			op: OpCreateLocalPrinter,
			attrs: goipp.Attributes{
				ipp.NameAttr("printer-name", "Local"),
				ipp.URIAttr("device-uri", "ipp://10.0.0.5/ipp/print"),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mock := &mockSender{}
			c := newClientWithSender(mock)

			_, err := test.call(t.Context(), c)
			if err != nil {
				t.Fatalf("%s: %s", test.name, err)
			}

			if mock.op != test.op {
				t.Errorf("operation: expected %s, present %s", test.op, mock.op)
			}

			checkAttrs(t, test.name, test.attrs, mock.attrs)

			if len(mock.data) != 0 {
				t.Errorf("unexpected data: %q", mock.data)
			}
		})
	}
}

// TestLookupOp tests CUPS operation lookup by name
func TestLookupOp(t *testing.T) {
	for name, op := range OperationNames {
		found, ok := LookupOp(name)
		if !ok || found != op {
			t.Errorf("LookupOp(%q): expected %s, present %s, %v",
				name, op, found, ok)
		}
	}

	if op, ok := LookupOp("CUPS-Get-Printers"); !ok || op != 0x4002 {
		t.Errorf("LookupOp(CUPS-Get-Printers): expected 0x4002, present 0x%x, %v",
			uint16(op), ok)
	}

	if _, ok := LookupOp("Print-Job"); ok {
		t.Errorf("LookupOp: base operation found in the CUPS table")
	}
}

// testPrintersResponse makes response with printer groups.
// Each pair is printer-name and printer-uri-supported
func testPrintersResponse(pairs ...string) *goipp.Message {
	msg := goipp.NewResponse(goipp.DefaultVersion, goipp.StatusOk, 1)
	msg.Groups = goipp.Groups{
		{
			Tag: goipp.TagOperationGroup,
			Attrs: goipp.Attributes{
				goipp.MakeAttribute("attributes-charset",
					goipp.TagCharset, goipp.String("utf-8")),
			},
		},
	}

	for i := 0; i+1 < len(pairs); i += 2 {
		msg.Groups = append(msg.Groups, goipp.Group{
			Tag: goipp.TagPrinterGroup,
			Attrs: goipp.Attributes{
				ipp.NameAttr("printer-name", pairs[i]),
				ipp.URIAttr("printer-uri-supported", pairs[i+1]),
			},
		})
	}

	return msg
}

// TestGetPrinterURI tests printer lookup by name
func TestGetPrinterURI(t *testing.T) {
	mock := &mockSender{
		rsp: testPrintersResponse("A", "X", "B", "Y"),
	}
	c := newClientWithSender(mock)

	tests := []struct {
		name  string
		uri   string
		found bool
	}{
		{"A", "X", true},
		{"B", "Y", true},
		{"Y", "", false},
		{"Z", "", false},
	}

	for _, test := range tests {
		uri, found, err := c.GetPrinterURI(t.Context(), test.name)
		if err != nil {
			t.Fatalf("GetPrinterURI(%q): %s", test.name, err)
		}

		if uri != test.uri || found != test.found {
			t.Errorf("GetPrinterURI(%q): expected %q, %v; present %q, %v",
				test.name, test.uri, test.found, uri, found)
		}

		// Lookup must be idempotent
		uri2, found2, _ := c.GetPrinterURI(t.Context(), test.name)
		if uri2 != uri || found2 != found {
			t.Errorf("GetPrinterURI(%q): not idempotent", test.name)
		}
	}

	if mock.calls != 2*len(tests) {
		t.Errorf("requests: expected %d, present %d", 2*len(tests), mock.calls)
	}

	if mock.op != OpGetPrinters {
		t.Errorf("operation: expected %s, present %s", OpGetPrinters, mock.op)
	}

	expected := goipp.Attributes{
		ipp.KeywordAttr("requested-attributes",
			"printer-name", "printer-uri-supported"),
	}
	checkAttrs(t, "GetPrinterURI", expected, mock.attrs)
}

// TestGetPrinterURIError tests error propagation
func TestGetPrinterURIError(t *testing.T) {
	fail := errors.New("connection refused")
	c := newClientWithSender(&mockSender{err: fail})

	_, found, err := c.GetPrinterURI(t.Context(), "A")
	if !errors.Is(err, fail) || found {
		t.Errorf("expected %v, present %v, %v", fail, err, found)
	}
}

// TestFindPrinterURI tests attribute scanning rules
func TestFindPrinterURI(t *testing.T) {
	tests := []struct {
		name   string
		groups goipp.Groups
		uri    string
		found  bool
	}{
		{
			name: "uri before name",
			groups: goipp.Groups{{
				Tag: goipp.TagPrinterGroup,
				Attrs: goipp.Attributes{
					ipp.URIAttr("printer-uri-supported", "ipp://h/p/A"),
					ipp.NameAttr("printer-name", "A"),
				},
			}},
			uri:   "ipp://h/p/A",
			found: true,
		},
		{
			name: "multiple uri values",
			groups: goipp.Groups{{
				Tag: goipp.TagPrinterGroup,
				Attrs: goipp.Attributes{
					ipp.NameAttr("printer-name", "A"),
					ipp.URIAttr("printer-uri-supported",
						"ipps://h/p/A", "ipp://h/p/A"),
				},
			}},
			uri:   "ipps://h/p/A",
			found: true,
		},
		{
			name: "name without uri",
			groups: goipp.Groups{
				{
					Tag: goipp.TagPrinterGroup,
					Attrs: goipp.Attributes{
						ipp.NameAttr("printer-name", "A"),
					},
				},
				{
					Tag: goipp.TagPrinterGroup,
					Attrs: goipp.Attributes{
						ipp.URIAttr("printer-uri-supported", "ipp://h/p/B"),
					},
				},
			},
		},
		{
			name: "uri in the operation group",
			groups: goipp.Groups{{
				Tag: goipp.TagOperationGroup,
				Attrs: goipp.Attributes{
					ipp.NameAttr("printer-name", "A"),
					ipp.URIAttr("printer-uri-supported", "ipp://h/p/A"),
				},
			}},
			uri:   "ipp://h/p/A",
			found: true,
		},
	}

	for _, test := range tests {
		msg := goipp.NewResponse(goipp.DefaultVersion, goipp.StatusOk, 1)
		msg.Groups = test.groups

		uri, found := findPrinterURI(msg, "A")
		if uri != test.uri || found != test.found {
			t.Errorf("%s: expected %q, %v; present %q, %v",
				test.name, test.uri, test.found, uri, found)
		}
	}
}

// TestClientEndToEnd tests the Client against the HTTP server
func TestClientEndToEnd(t *testing.T) {
	var received []goipp.Op
	var lock sync.Mutex

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)

			rq := &goipp.Message{}
			if err := rq.DecodeBytes(body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			lock.Lock()
			received = append(received, goipp.Op(rq.Code))
			lock.Unlock()

			rsp := goipp.NewResponse(goipp.DefaultVersion,
				goipp.StatusOk, rq.RequestID)
			rsp.Operation.Add(goipp.MakeAttribute("attributes-charset",
				goipp.TagCharset, goipp.String("utf-8")))
			rsp.Operation.Add(ipp.NameAttr("printer-name", "Foo"))
			rsp.Operation.Add(ipp.URIAttr("printer-uri-supported",
				"ipp://host/printers/Foo"))

			out, _ := rsp.EncodeBytes()
			w.Header().Set("Content-Type", goipp.ContentType)
			w.Write(out)
		}))
	defer srv.Close()

	c, err := NewClient(ipp.Config{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %s", err)
	}

	uri, found, err := c.GetPrinterURI(t.Context(), "Foo")
	if err != nil || !found || uri != "ipp://host/printers/Foo" {
		t.Errorf("GetPrinterURI(Foo): present %q, %v, %v", uri, found, err)
	}

	uri, found, err = c.GetPrinterURI(t.Context(), "Bar")
	if err != nil || found || uri != "" {
		t.Errorf("GetPrinterURI(Bar): present %q, %v, %v", uri, found, err)
	}

	// Base operations are available via the embedded ipp.Client
	_, err = c.GetPrinterAttributes(t.Context(), nil)
	if err != nil {
		t.Errorf("GetPrinterAttributes: %s", err)
	}

	lock.Lock()
	defer lock.Unlock()

	expected := []goipp.Op{OpGetPrinters, OpGetPrinters, ipp.OpGetPrinterAttributes}
	if diff := cmp.Diff(expected, received); diff != "" {
		t.Errorf("operations mismatch (-expected +present):\n%s", diff)
	}
}
