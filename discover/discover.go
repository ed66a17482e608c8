/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * DNS-SD discovery of IPP printers, using Avahi
 */

// Package discover finds IPP printers on the local network,
// using DNS-SD via Avahi daemon
package discover

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	ipp "github.com/OpenPrinting/ipp-client"
	"github.com/godbus/dbus/v5"
	"github.com/holoplot/go-avahi"
)

// DNS-SD service types of IPP printers
const (
	ServiceIPP  = "_ipp._tcp"
	ServiceIPPS = "_ipps._tcp"
)

// Domain is the browsing domain
const Domain = "local"

// TxtRecord represents a decoded TXT record. Keys are lower-case
type TxtRecord map[string]string

// Printer represents a discovered printer
type Printer struct {
	Name    string    // Service instance name
	Type    string    // Service type, i.e. "_ipp._tcp"
	Domain  string    // Service domain
	Host    string    // Host name
	Address string    // Resolved address
	Port    int       // TCP port
	Txt     TxtRecord // TXT record
}

// Secure reports whether printer is advertised as IPPS
func (p Printer) Secure() bool {
	return p.Type == ServiceIPPS
}

// URL returns printer URL, suitable for ipp.Config. Resource path
// comes from the "rp" TXT key
func (p Printer) URL() string {
	scheme := "ipp"
	if p.Secure() {
		scheme = "ipps"
	}

	host := p.Host
	if host == "" {
		host = p.Address
	}

	host = strings.TrimSuffix(host, ".")

	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(p.Port)) +
		"/" + strings.TrimPrefix(p.Txt["rp"], "/")
}

// Browse browses printers until ctx is done and returns all
// printers found so far
func Browse(ctx context.Context, log *ipp.Logger) ([]Printer, error) {
	if log == nil {
		log = ipp.NewNopLogger()
	}

	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: %w", err)
	}

	defer conn.Close()

	server, err := avahi.ServerNew(conn)
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: %w", err)
	}

	defer server.Close()

	ippBrowser, err := server.ServiceBrowserNew(avahi.InterfaceUnspec,
		avahi.ProtoUnspec, ServiceIPP, Domain, 0)
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: %s: %w", ServiceIPP, err)
	}

	defer server.ServiceBrowserFree(ippBrowser)

	ippsBrowser, err := server.ServiceBrowserNew(avahi.InterfaceUnspec,
		avahi.ProtoUnspec, ServiceIPPS, Domain, 0)
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: %s: %w", ServiceIPPS, err)
	}

	defer server.ServiceBrowserFree(ippsBrowser)

	// Collect services
	found := make(map[string]Printer)
	listed := make(map[string]bool)
	var order []string

	for {
		var svc avahi.Service
		var removed bool

		select {
		case <-ctx.Done():
			printers := make([]Printer, 0, len(order))
			for _, key := range order {
				if p, ok := found[key]; ok {
					printers = append(printers, p)
				}
			}
			return printers, nil

		case svc = <-ippBrowser.AddChannel:
		case svc = <-ippsBrowser.AddChannel:
		case svc = <-ippBrowser.RemoveChannel:
			removed = true
		case svc = <-ippsBrowser.RemoveChannel:
			removed = true
		}

		key := serviceKey(svc)

		if removed {
			log.Debug('-', "DNS-SD: %q %s removed", svc.Name, svc.Type)
			delete(found, key)
			continue
		}

		if _, dup := found[key]; dup {
			continue
		}

		resolved, err := server.ResolveService(svc.Interface, svc.Protocol,
			svc.Name, svc.Type, svc.Domain, avahi.ProtoUnspec, 0)
		if err != nil {
			log.Error('!', "DNS-SD: %q %s: %s", svc.Name, svc.Type, err)
			continue
		}

		p := printerFromService(resolved)
		log.Debug('+', "DNS-SD: %q %s: %s", p.Name, p.Type, p.URL())

		found[key] = p
		if !listed[key] {
			listed[key] = true
			order = append(order, key)
		}
	}
}

// serviceKey returns key, identifying the service instance.
// The same instance is reported once per interface and protocol
func serviceKey(svc avahi.Service) string {
	return svc.Name + "." + svc.Type + "." + svc.Domain
}

// printerFromService converts resolved avahi.Service into Printer
func printerFromService(svc avahi.Service) Printer {
	return Printer{
		Name:    svc.Name,
		Type:    svc.Type,
		Domain:  svc.Domain,
		Host:    svc.Host,
		Address: svc.Address,
		Port:    int(svc.Port),
		Txt:     decodeTxt(svc.Txt),
	}
}

// decodeTxt decodes TXT record from Avahi format
func decodeTxt(txt [][]byte) TxtRecord {
	rec := make(TxtRecord, len(txt))

	for _, item := range txt {
		key, value, _ := strings.Cut(string(item), "=")
		key = strings.ToLower(key)
		if _, dup := rec[key]; key != "" && !dup {
			rec[key] = value
		}
	}

	return rec
}
