package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/markdingo/zonedb/log"
)

type parseResult int // This is a ternary variable
const (
	parseStop     parseResult = iota // No error, but don't continue
	parseContinue                    // No errors and continue
	parseFailed                      // Errors, do not continue
)

// parseOptions fills in the config from the command line. The flags packages all
// have their own opinions about usage formatting and there's little to be done about
// it, so the descriptions here are simply kept short enough to survive any of them.
func (t *daemon) parseOptions(args []string) parseResult {
	var helpFlag, versionFlag bool

	name := programName
	if len(args) > 0 {
		name = args[0]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Consider '-h' for command-line usage")
	}
	fs.SetOutput(log.Out())

	// Non-config flags

	fs.BoolVarP(&helpFlag, "help", "h", false, "Print command-line usage")
	fs.BoolVarP(&versionFlag, "version", "v", false, "Print version and origin URL details")

	// Config flags

	fs.StringArrayVar(&t.cfg.listen, "listen", []string{":53"},
		"Address to listen on for DNS queries (repeat as needed)")
	fs.StringArrayVar(&t.cfg.zoneFlags, "zone", nil,
		"Zone of authority as origin=master-file-path (repeat as needed)")
	fs.Uint32Var(&t.cfg.defaultTTL, "TTL", t.cfg.defaultTTL,
		"TTL applied when a master file has no $TTL directive")

	fs.StringVar(&t.cfg.chroot, "chroot", "",
		"Reduce privileges with chroot() after --listen (reloads resolve --zone paths inside it)")
	fs.StringVar(&t.cfg.group, "group", "", "Reduce privileges with setgid() after --listen")
	fs.StringVar(&t.cfg.user, "user", "", "Reduce privileges with setuid() after --listen")

	fs.BoolVar(&t.cfg.logMajorFlag, "log-major", true, "Log major events")
	fs.BoolVar(&t.cfg.logMinorFlag, "log-minor", false, "Log minor events (implies --log-major)")
	fs.BoolVar(&t.cfg.logDebugFlag, "log-debug", false, "Log debug events (implies --log-minor)")
	fs.BoolVar(&t.cfg.logQueriesFlag, "log-queries", false, "Log DNS queries and responses")

	// RRL options are all carried as strings because the rrl package owns their
	// conversion and validation; see parseRRLOptions.

	fs.StringVar(&t.cfg.rrlOptions.window, "rrl-window", "",
		"rrl: Seconds over which rates are measured")
	fs.StringVar(&t.cfg.rrlOptions.slipRatio, "rrl-slip-ratio", "",
		"rrl: Ratio of dropped responses sent back truncated")
	fs.StringVar(&t.cfg.rrlOptions.maxTableSize, "rrl-max-table-size", "",
		"rrl: Maximum number of accounting entries")
	fs.StringVar(&t.cfg.rrlOptions.ipv4PrefixLength, "rrl-ipv4-CIDR", "",
		"rrl: Client grouping prefix length for ipv4 addresses")
	fs.StringVar(&t.cfg.rrlOptions.ipv6PrefixLength, "rrl-ipv6-CIDR", "",
		"rrl: Client grouping prefix length for ipv6 addresses")
	fs.StringVar(&t.cfg.rrlOptions.responsesInterval, "rrl-responses-psec", "",
		"rrl: Allowed positive responses per second")
	fs.StringVar(&t.cfg.rrlOptions.nodataInterval, "rrl-nodata-psec", "",
		"rrl: Allowed no-data responses per second")
	fs.StringVar(&t.cfg.rrlOptions.nxdomainsInterval, "rrl-nxdomains-psec", "",
		"rrl: Allowed nxdomain responses per second")
	fs.StringVar(&t.cfg.rrlOptions.errorsInterval, "rrl-errors-psec", "",
		"rrl: Allowed error responses per second")
	fs.BoolVar(&t.cfg.rrlDryRun, "rrl-dryrun", false,
		"rrl: Account for responses but don't drop or truncate anything")

	err := fs.Parse(args[1:])
	if err != nil {
		fmt.Fprintln(log.Out(), "Error:", err.Error())
		return parseFailed
	}

	if helpFlag {
		fs.SetOutput(log.Out())
		fmt.Fprintln(log.Out(), programName, "-- an authoritative server for zonedb zones")
		fs.PrintDefaults()
		return parseStop
	}
	if versionFlag {
		t.cfg.printVersion()
		return parseStop
	}

	if len(fs.Args()) > 0 {
		fmt.Fprintln(log.Out(), "Error: Unexpected arguments on command line:",
			fs.Args())
		return parseFailed
	}

	if err = t.cfg.parseZoneFlags(); err != nil {
		fmt.Fprintln(log.Out(), "Error:", err.Error())
		return parseFailed
	}

	return t.parseRRLOptions()
}

// RRL options have to be treated specially because we're adhering to the interface
// of the imported rrl package. In essence, the rrl package does all the conversion
// to ints and floats then returns errors as necessary, so at this level all values
// are accepted as strings without any validation.
//
// Since the rrl config starts life as a no-op config, at least one of the *psec
// values has to be set greater than zero otherwise rrl does nothing in the Debit()
// call. This may not be obvious, so as soon as any --rrl-* option is set we presume
// the caller wants a functional rrl and check that a *psec value is also set.
func (t *daemon) parseRRLOptions() parseResult {
	for _, opt := range []struct{ name, value string }{
		{"window", t.cfg.rrlOptions.window},
		{"slip-ratio", t.cfg.rrlOptions.slipRatio},
		{"max-table-size", t.cfg.rrlOptions.maxTableSize},
		{"ipv4-CIDR", t.cfg.rrlOptions.ipv4PrefixLength},
		{"ipv6-CIDR", t.cfg.rrlOptions.ipv6PrefixLength},
		{"responses-per-second", t.cfg.rrlOptions.responsesInterval},
		{"nodata-per-second", t.cfg.rrlOptions.nodataInterval},
		{"nxdomains-per-second", t.cfg.rrlOptions.nxdomainsInterval},
		{"errors-per-second", t.cfg.rrlOptions.errorsInterval},
	} {
		if !t.setRRLOption(opt.name, opt.value) {
			return parseFailed
		}
	}

	// Check that they haven't only set no-op rrl options
	if (t.cfg.rrlOptionSet || t.cfg.rrlDryRun) && !t.cfg.rrlConfig.IsActive() {
		fmt.Fprintln(log.Out(), "Error: RRL requires at least one -*psec option to activate")
		return parseFailed
	}

	return parseContinue
}

func (t *daemon) setRRLOption(name, value string) bool {
	if len(value) == 0 {
		return true
	}

	t.cfg.rrlOptionSet = true // Say at least one --rrl option is present
	err := t.cfg.rrlConfig.SetValue(name, value)
	if err != nil {
		fmt.Fprintln(log.Out(), "Error:", err.Error())
		return false
	}

	return true
}
