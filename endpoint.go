/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer endpoint
 */

package ipp

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// schemeTransport maps URL scheme to the HTTP scheme used
// for transport
var schemeTransport = map[string]string{
	"http":  "http",
	"https": "https",
	"ipp":   "http",
	"ipps":  "https",
}

// schemeStandardPort contains standard ports of URL schemes.
// The standard port is omitted from printer-uri
var schemeStandardPort = map[string]string{
	"http":  "80",
	"https": "443",
	"ipp":   "631",
	"ipps":  "443",
}

// endpoint is the printer address, parsed out of configured URL.
// It is never modified after the Client is created
type endpoint struct {
	scheme string // Lower-case URL scheme
	host   string // Host name or address, without brackets
	port   string // Port, "" if not specified in URL
	path   string // Escaped path, "/" if empty
	query  string // Raw query, without '?'
}

// parseEndpoint parses endpoint URL
func parseEndpoint(rawurl string) (endpoint, error) {
	if rawurl == "" {
		return endpoint{}, ErrNoURL
	}

	u, err := url.Parse(rawurl)
	if err != nil {
		return endpoint{}, err
	}

	ep := endpoint{
		scheme: strings.ToLower(u.Scheme),
		host:   u.Hostname(),
		port:   u.Port(),
		path:   u.EscapedPath(),
		query:  u.RawQuery,
	}

	if _, ok := schemeTransport[ep.scheme]; !ok {
		return endpoint{}, fmt.Errorf("%w: %q", ErrBadScheme, u.Scheme)
	}

	if ep.host == "" {
		return endpoint{}, fmt.Errorf("%q: missed host", rawurl)
	}

	if ep.path == "" {
		ep.path = "/"
	}

	return ep, nil
}

// secure reports whether endpoint uses TLS
func (ep endpoint) secure() bool {
	return schemeTransport[ep.scheme] == "https"
}

// transportPort returns port the client connects to
func (ep endpoint) transportPort() string {
	switch {
	case ep.port != "":
		return ep.port
	case ep.secure():
		return DefaultSecurePort
	}
	return DefaultPort
}

// hostHeader returns value of the HTTP Host: header
func (ep endpoint) hostHeader() string {
	return net.JoinHostPort(ep.host, ep.transportPort())
}

// transportURL returns URL of HTTP requests
func (ep endpoint) transportURL() string {
	u := url.URL{
		Scheme:   schemeTransport[ep.scheme],
		Host:     ep.hostHeader(),
		RawPath:  ep.path,
		RawQuery: ep.query,
	}

	u.Path, _ = url.PathUnescape(ep.path)
	return u.String()
}

// printerURI returns value of the printer-uri attribute. Port is
// included only if it differs from the scheme's standard port
func (ep endpoint) printerURI() string {
	host := ep.host
	if ep.port != "" && ep.port != schemeStandardPort[ep.scheme] {
		host = net.JoinHostPort(host, ep.port)
	} else if strings.IndexByte(host, ':') >= 0 {
		host = "[" + host + "]"
	}

	return ep.scheme + "://" + host + ep.path
}
