/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Protocol tracing into the log
 */

package ipp

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/OpenPrinting/goipp"
)

// Headers never written to the log as is
var logHiddenHeaders = map[string]bool{
	"Authorization": true,
}

// HTTPHeader writes HTTP header, with sorted keys
func (msg *LogMessage) HTTPHeader(level LogLevel, prefix byte,
	session uint32, hdr http.Header) *LogMessage {

	if !msg.Enabled(level) {
		return msg
	}

	keys := make([]string, 0, len(hdr))
	for k := range hdr {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	for _, k := range keys {
		v := hdr.Get(k)
		if logHiddenHeaders[k] {
			v = "(hidden)"
		}
		msg.add(level, prefix, "HTTP[%d]: %s: %s", session, k, v)
	}

	return msg
}

// HTTPRequest writes HTTP request line and header
func (msg *LogMessage) HTTPRequest(level LogLevel, prefix byte,
	session uint32, rq *http.Request) *LogMessage {

	msg.add(level, prefix, "HTTP[%d]: %s %s %s", session, rq.Method, rq.URL, rq.Proto)
	msg.add(level, prefix, "HTTP[%d]: Host: %s", session, rq.Host)
	return msg.HTTPHeader(level, prefix, session, rq.Header)
}

// HTTPResponse writes HTTP response status line and header
func (msg *LogMessage) HTTPResponse(level LogLevel, prefix byte,
	session uint32, rsp *http.Response) *LogMessage {

	msg.add(level, prefix, "HTTP[%d]: %s %s", session, rsp.Proto, rsp.Status)
	return msg.HTTPHeader(level, prefix, session, rsp.Header)
}

// IppRequest writes IPP request message
func (msg *LogMessage) IppRequest(level LogLevel, prefix byte,
	m *goipp.Message) *LogMessage {
	return msg.ippMessage(level, prefix, m, true)
}

// IppResponse writes IPP response message
func (msg *LogMessage) IppResponse(level LogLevel, prefix byte,
	m *goipp.Message) *LogMessage {
	return msg.ippMessage(level, prefix, m, false)
}

// ippMessage writes IPP message, using goipp.Formatter
func (msg *LogMessage) ippMessage(level LogLevel, prefix byte,
	m *goipp.Message, rq bool) *LogMessage {

	if !msg.Enabled(level) {
		return msg
	}

	f := goipp.NewFormatter()
	if rq {
		f.FmtRequest(m)
	} else {
		f.FmtResponse(m)
	}

	msg.add(level, prefix, "IPP[%d]:", m.RequestID)
	fmt.Fprint(msg, f.String())

	return msg
}
