package main

import (
	"fmt"
	"os"

	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/log"
	"github.com/markdingo/zonedb/zonedata"
)

// loadAction returns the zonedata.LoadAction which parses the zone's master file into
// a fresh generation. The parse and build both happen completely off to the side of
// query traffic; only a successful Writer.Install makes any of it visible.
func (t *daemon) loadAction(zc *zoneConfig) zonedata.LoadAction {
	return func() (*zonedata.ZoneData, error) {
		f, err := os.Open(zc.path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		b := zonedata.NewBuilder(zc.origin, dns.ClassINET)
		parser := dns.NewZoneParser(f, zc.origin, zc.path)
		parser.SetIncludeAllowed(true)
		parser.SetDefaultTTL(t.cfg.defaultTTL) // ZoneParser needs this in case $TTL is absent

		var loaded, skipped int
		for rr, ok := parser.Next(); ok; rr, ok = parser.Next() {
			added, err := b.AddRR(rr)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", zc.path, err)
			}
			if added {
				loaded++
			} else {
				skipped++
			}
		}
		if err = parser.Err(); err != nil { // Check for parser errors
			return nil, err
		}

		zd, err := b.Build()
		if err != nil {
			return nil, err
		}
		if soa := zd.Tree().OriginNode().FindSet(dns.TypeSOA, false); soa == nil {
			return nil, fmt.Errorf("%s: zone %s has no SOA at the apex",
				zc.path, zc.origin)
		}

		log.Minorf("Load %s from %s: %d RRs (%d duplicates skipped)",
			zc.origin, zc.path, loaded, skipped)

		return zd, nil
	}
}

// loadZone runs one two-phase reload for the zone. On any failure the previous
// generation - if there is one - stays in place and keeps serving.
func (t *daemon) loadZone(zc *zoneConfig) error {
	writer := zonedata.NewWriter(zc.getter, t.loadAction(zc))
	defer writer.Cleanup()

	if err := writer.Load(); err != nil {
		return err
	}

	return writer.Install()
}

// loadAllZones loads every configured zone and registers first-time zones in the
// table. Returns true if every zone loaded. On a reload, zones which fail are
// reported and left serving their current generation; on initial load a failure is
// fatal to the caller.
func (t *daemon) loadAllZones(why string) bool {
	errorCount := 0
	for _, zc := range t.cfg.zones {
		if err := t.loadZone(zc); err != nil {
			errorCount++
			warning(fmt.Errorf("%s of %s failed: %w", why, zc.origin, err))
			continue
		}
		if t.table.Lookup(zc.origin) == nil {
			if err := t.table.Add(zc.origin, zc.getter); err != nil {
				errorCount++
				warning(err)
				continue
			}
		}

		zd := zc.getter.Current()
		log.Majorf("%s: %s %d RRs from %s", why, zc.origin, zd.Count(), zc.path)
		zd.Release()
	}

	return errorCount == 0
}
