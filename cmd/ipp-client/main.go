/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * The main function
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/OpenPrinting/goipp"
	ipp "github.com/OpenPrinting/ipp-client"
	"github.com/OpenPrinting/ipp-client/cups"
	"github.com/OpenPrinting/ipp-client/discover"
)

const usageText = `Usage:
    %s [options] mode [argument]

Modes are:
    printers [PATTERN]
                - list CUPS printers with names matching PATTERN
    classes     - list CUPS printer classes
    default     - print the default destination
    attrs       - print attributes of the printer at URL
    jobs        - list not completed jobs of the printer at URL
    uri NAME    - print URI of the printer with the given name
    accept NAME - make printer accept jobs
    reject NAME - make printer reject jobs
    print FILE  - print the file on the printer at URL
    cancel ID   - cancel the job
    discover [PATTERN]
                - browse IPP printers on the local network

PATTERN is a glob-style pattern: ? matches any character, * matches
any sequence of characters, \C matches character C

Options are
    -c FILE     - load configuration from FILE
    -v          - verbose, log all IPP and HTTP traffic

Environment variables CUPS_URL, CUPS_USERNAME and CUPS_PASSWORD
override configuration file
`

// DiscoverTime specifies how long discover mode browses the network
const DiscoverTime = 5 * time.Second

// RunMode represents the program run mode
type RunMode int

// Run modes
const (
	RunPrinters RunMode = iota
	RunClasses
	RunDefault
	RunAttrs
	RunJobs
	RunURI
	RunAccept
	RunReject
	RunPrint
	RunCancel
	RunDiscover
)

// runModes maps mode names to RunMode and tells if mode
// needs argument or accepts optional one
var runModes = map[string]struct {
	mode   RunMode
	hasArg bool
	optArg bool
}{
	"printers": {RunPrinters, false, true},
	"classes":  {RunClasses, false, false},
	"default":  {RunDefault, false, false},
	"attrs":    {RunAttrs, false, false},
	"jobs":     {RunJobs, false, false},
	"uri":      {RunURI, true, false},
	"accept":   {RunAccept, true, false},
	"reject":   {RunReject, true, false},
	"print":    {RunPrint, true, false},
	"cancel":   {RunCancel, true, false},
	"discover": {RunDiscover, false, true},
}

// RunParameters represents the program run parameters
type RunParameters struct {
	Mode     RunMode // Run mode
	Arg      string  // Mode argument or name pattern
	ConfFile string  // Configuration file, "" if none
	Verbose  bool    // Log all traffic
}

// usage prints detailed usage and exits
func usage() {
	fmt.Printf(usageText, os.Args[0])
	os.Exit(0)
}

// usageError prints usage error and exits
func usageError(format string, args ...interface{}) {
	if format != "" {
		fmt.Printf(format+"\n", args...)
	}

	fmt.Printf("Try %s -h for more information\n", os.Args[0])
	os.Exit(1)
}

// parseArgv parses program parameters. In a case of usage error,
// it prints a error message and exits
func parseArgv() (params RunParameters) {
	args := os.Args[1:]
	mode := ""

	for len(args) > 0 {
		arg := args[0]
		args = args[1:]

		switch arg {
		case "-h", "-help", "--help":
			usage()
		case "-v":
			params.Verbose = true
		case "-c":
			if len(args) == 0 {
				usageError("Option %s requires argument", arg)
			}
			params.ConfFile = args[0]
			args = args[1:]
		default:
			if mode != "" {
				usageError("Invalid argument %s", arg)
			}

			m, ok := runModes[arg]
			if !ok {
				usageError("Invalid mode %s", arg)
			}

			mode = arg
			params.Mode = m.mode

			switch {
			case m.hasArg:
				if len(args) == 0 {
					usageError("Mode %s requires argument", arg)
				}
				params.Arg = args[0]
				args = args[1:]

			case m.optArg:
				if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
					params.Arg = args[0]
					args = args[1:]
				}
			}
		}
	}

	if mode == "" {
		usageError("Mode not specified")
	}

	return
}

// loadConfiguration loads configuration file, if any, and
// applies environment variables
func loadConfiguration(params RunParameters) (*ipp.Configuration, error) {
	conf := ipp.DefaultConfiguration

	if params.ConfFile != "" {
		loaded, err := ipp.LoadConfig(params.ConfFile)
		if err != nil {
			return nil, err
		}
		conf = *loaded
	}

	if s := os.Getenv("CUPS_URL"); s != "" {
		conf.Server.URL = s
	}

	if s := os.Getenv("CUPS_USERNAME"); s != "" {
		conf.Server.Username = s
	}

	if s := os.Getenv("CUPS_PASSWORD"); s != "" {
		conf.Server.Password = s
	}

	if params.Verbose {
		conf.LogLevels = ipp.LogAll
	}

	return &conf, nil
}

// newLogger creates logger, as configured
func newLogger(conf *ipp.Configuration) *ipp.Logger {
	if conf.LogFile != "" {
		return ipp.NewFileLogger(conf.LogFile, conf.LogLevels,
			conf.LogMaxFileSize, int(conf.LogMaxBackupFiles))
	}

	return ipp.NewLogger(os.Stderr, conf.LogLevels)
}

// lookupPrinter returns URI of the printer by name
func lookupPrinter(ctx context.Context, c *cups.Client, name string) (string, error) {
	uri, found, err := c.GetPrinterURI(ctx, name)
	if err == nil && !found {
		err = fmt.Errorf("%q: printer not found", name)
	}
	return uri, err
}

// printResponse prints response and checks its status
func printResponse(rsp *goipp.Message) error {
	fmt.Print(ipp.Format(rsp))

	if status := goipp.Status(rsp.Code); status >= goipp.StatusRedirectionOtherSite {
		return fmt.Errorf("IPP: %s", status)
	}

	return nil
}

// printPrinters prints list of printers with names matching
// the pattern
func printPrinters(rsp *goipp.Message, pattern string) error {
	for _, p := range ipp.DecodePrinters(rsp) {
		if !globMatch(p.Name, pattern) {
			continue
		}

		accepting := "accepting"
		if p.RejectingJobs() {
			accepting = "rejecting"
		}

		fmt.Printf("%-24s %-10s %-9s %s\n", p.Name, p.State, accepting, p.URI)
	}

	if status := goipp.Status(rsp.Code); status >= goipp.StatusRedirectionOtherSite {
		return fmt.Errorf("IPP: %s", status)
	}

	return nil
}

// The main function
func main() {
	params := parseArgv()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, params)
	cancel()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run executes the requested mode. All resources are released
// before it returns
func run(ctx context.Context, params RunParameters) (err error) {
	conf, err := loadConfiguration(params)
	if err != nil {
		return err
	}

	log := newLogger(conf)
	defer log.Close()

	defer func() {
		if err != nil {
			log.Error('!', "%s", err)
		}
	}()

	// Discovery doesn't need the client
	if params.Mode == RunDiscover {
		ctx, cancel := context.WithTimeout(ctx, DiscoverTime)
		defer cancel()

		printers, err := discover.Browse(ctx, log)
		if err != nil {
			return err
		}

		for _, p := range printers {
			if !globMatch(p.Name, params.Arg) {
				continue
			}
			fmt.Printf("%-32s %s\n", p.Name, p.URL())
		}

		return nil
	}

	// Create the client
	opts := []ipp.Option{ipp.WithLogger(log)}
	if conf.RateLimit > 0 {
		opts = append(opts, ipp.WithThrottle(conf.RateLimit, conf.RateBurst))
	}

	c, err := cups.NewClient(conf.Server, opts...)
	if err != nil {
		return err
	}

	// Do the job
	var rsp *goipp.Message

	switch params.Mode {
	case RunPrinters:
		rsp, err = c.GetPrinters(ctx, nil)
		if err == nil {
			err = printPrinters(rsp, params.Arg)
		}

	case RunClasses:
		rsp, err = c.GetClasses(ctx, nil)
		if err == nil {
			err = printResponse(rsp)
		}

	case RunDefault:
		rsp, err = c.GetDefault(ctx, nil)
		if err == nil {
			err = printPrinters(rsp, "")
		}

	case RunAttrs:
		rsp, err = c.GetPrinterAttributes(ctx, nil)
		if err == nil {
			err = printResponse(rsp)
		}

	case RunJobs:
		rsp, err = c.GetJobs(ctx, ipp.WhichJobsNotCompleted)
		if err == nil {
			err = printResponse(rsp)
		}

	case RunURI:
		var uri string
		uri, err = lookupPrinter(ctx, c, params.Arg)
		if err == nil {
			fmt.Println(uri)
		}

	case RunAccept:
		var uri string
		uri, err = lookupPrinter(ctx, c, params.Arg)
		if err == nil {
			rsp, err = c.AcceptJobs(ctx, uri)
		}
		if err == nil {
			err = printResponse(rsp)
		}

	case RunReject:
		var uri string
		uri, err = lookupPrinter(ctx, c, params.Arg)
		if err == nil {
			rsp, err = c.RejectJobs(ctx, uri)
		}
		if err == nil {
			err = printResponse(rsp)
		}

	case RunPrint:
		var data []byte
		data, err = os.ReadFile(params.Arg)
		if err == nil {
			rsp, err = c.PrintJob(ctx, filepath.Base(params.Arg), data)
		}
		if err == nil {
			err = printResponse(rsp)
		}

	case RunCancel:
		var id int
		id, err = strconv.Atoi(params.Arg)
		if err != nil {
			err = errors.New("job ID must be a number")
		} else {
			rsp, err = c.CancelJob(ctx, id)
		}
		if err == nil {
			err = printResponse(rsp)
		}
	}

	return err
}
