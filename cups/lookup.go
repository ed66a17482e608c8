/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer lookup by name
 */

package cups

import (
	"context"

	"github.com/OpenPrinting/goipp"
)

// lookupAttrs are requested by GetPrinterURI
var lookupAttrs = []string{"printer-name", "printer-uri-supported"}

// GetPrinterURI returns URI of the printer with the given name.
//
// If there is no such printer, found is false and err is nil
func (c *Client) GetPrinterURI(ctx context.Context,
	name string) (uri string, found bool, err error) {

	rsp, err := c.GetPrinters(ctx, lookupAttrs)
	if err != nil {
		return "", false, err
	}

	uri, found = findPrinterURI(rsp, name)
	return
}

// findPrinterURI searches response groups for the printer.
//
// Within each group, attributes are scanned in order, and the
// last seen printer-name and printer-uri-supported are tracked.
// The first group where both are seen and name matches wins
func findPrinterURI(msg *goipp.Message, name string) (string, bool) {
	for _, grp := range msg.Groups {
		var curName, curURI string
		var haveName bool

		for _, attr := range grp.Attrs {
			if len(attr.Values) == 0 {
				continue
			}

			switch attr.Name {
			case "printer-name":
				curName, haveName = attr.Values[0].V.String(), true
			case "printer-uri-supported":
				curURI = attr.Values[0].V.String()
			}

			if haveName && curURI != "" && curName == name {
				return curURI, true
			}
		}
	}

	return "", false
}
