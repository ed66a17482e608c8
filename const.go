/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Configuration constants
 */

package ipp

import (
	"time"
)

const (
	// DefaultTimeout is used when Config.Timeout is not set
	DefaultTimeout = 30 * time.Second

	// DefaultCharset is sent as attributes-charset with
	// every request
	DefaultCharset = "utf-8"

	// DefaultLanguage is sent as attributes-natural-language
	// with every request
	DefaultLanguage = "en"

	// DefaultDocumentFormat is used for document payloads
	// of Print-Job and Send-Document
	DefaultDocumentFormat = "application/octet-stream"

	// DefaultPort is a port the client connects to, if URL
	// doesn't specify one
	DefaultPort = "631"

	// DefaultSecurePort is used instead of DefaultPort for
	// https:// and ipps:// URLs
	DefaultSecurePort = "443"

	// maxRequestID is the upper (exclusive) bound of
	// generated request IDs
	maxRequestID = 0xffff
)
