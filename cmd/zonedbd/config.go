package main

import (
	"fmt"
	"strings"

	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/log"
	"github.com/markdingo/zonedb/zonedata"
)

// zoneConfig is one --zone option: the origin, the master file it loads from and the
// Getter serving its current generation. The Getter persists across reloads; only
// the generation behind it changes.
type zoneConfig struct {
	origin string // Canonical
	path   string
	getter *zonedata.Getter
}

// rrlConfigStrings separates out the RRL options from all the rest for easy
// management. The rrl package does its own string conversion and validation so these
// are carried unparsed.
type rrlConfigStrings struct {
	window       string // "--rrl-window"
	slipRatio    string // "--rrl-slip-ratio"
	maxTableSize string // "--rrl-max-table-size"

	ipv4PrefixLength string // "--rrl-ipv4-CIDR"
	ipv6PrefixLength string // "--rrl-ipv6-CIDR"

	responsesInterval string // "--rrl-responses-psec"
	nodataInterval    string // "--rrl-nodata-psec"
	nxdomainsInterval string // "--rrl-nxdomains-psec"
	errorsInterval    string // "--rrl-errors-psec"
}

type config struct {
	listen    []string // All addresses to listen on
	zoneFlags []string // "--zone" options as given: origin=path

	zones []*zoneConfig // Populated from zoneFlags

	defaultTTL uint32 // Fallback for master files without a $TTL

	chroot string // Privilege reduction applied after listen sockets are bound
	group  string
	user   string

	logMajorFlag   bool
	logMinorFlag   bool
	logDebugFlag   bool
	logQueriesFlag bool

	rrlOptions   rrlConfigStrings // Set by flags package
	rrlOptionSet bool             // True if at least one rrl option was set
	rrlDryRun    bool             // "--rrl-dryrun"
	rrlConfig    *rrl.Config      // Populated if RRL is active
}

func newConfig() *config {
	t := &config{defaultTTL: 3600}
	t.rrlConfig = rrl.NewConfig() // This default config is a no-op

	return t
}

// parseZoneFlags converts each "origin=path" option into a zoneConfig. Duplicate
// origins are rejected here rather than at zonetable.Add time so the error names the
// offending option.
func (t *config) parseZoneFlags() error {
	seen := make(map[string]string)
	for _, zf := range t.zoneFlags {
		origin, path, found := strings.Cut(zf, "=")
		if !found || len(origin) == 0 || len(path) == 0 {
			return fmt.Errorf("--zone must be origin=path, not '%s'", zf)
		}
		origin = dns.CanonicalName(origin)
		if _, ok := dns.IsDomainName(origin); !ok {
			return fmt.Errorf("--zone origin '%s' is not a valid domain name", origin)
		}
		if prev, ok := seen[origin]; ok {
			return fmt.Errorf("--zone %s duplicates %s=%s", zf, origin, prev)
		}
		seen[origin] = path
		t.zones = append(t.zones, &zoneConfig{
			origin: origin,
			path:   path,
			getter: zonedata.NewGetter(nil),
		})
	}

	if len(t.zones) == 0 {
		return fmt.Errorf("at least one --zone origin=path is required")
	}

	return nil
}

func (t *config) printVersion() {
	fmt.Fprintf(log.Out(), "Program: %s %s (%s)\n", programName, Version, ReleaseDate)
}
