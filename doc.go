/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Package documentation
 */

/*
Package ipp implements the client side of the Internet Printing
Protocol (IPP), as it is transported over HTTP POST.

The Client turns a named operation into the IPP request, sends it to the
printer and returns the decoded response, without interpreting it:

	c, err := ipp.NewClient(ipp.Config{
		URL:     "ipp://localhost:631/printers/Office",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	rsp, err := c.GetPrinterAttributes(ctx, nil)
	if err != nil {
		return err
	}

	fmt.Print(ipp.Format(rsp))

Non-successful IPP status of the response is not an error; the caller
is responsible to inspect rsp.Code. Errors, returned by the Client, are
*TimeoutError, *HTTPError, errors wrapping ErrRequestFailed for network
failures, and errors of the goipp codec.

Every request carries attributes-charset and attributes-natural-language,
followed by the operation attributes and, if both Config.Username and
Config.Password are set, requesting-user-name. Operations not covered by
the Client methods may be sent with Client.Send.

The CUPS extension operations live in the cups sub-package.
*/
package ipp
