package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/markdingo/zonedb/log"
	"github.com/markdingo/zonedb/osutil"
	"github.com/markdingo/zonedb/zonetable"
)

const (
	programName = "zonedbd"

	Version     = "v0.1.0"
	ReleaseDate = "2026-08-20"
)

func reportError(severity string, err error, messages ...string) {
	msg := severity
	if len(messages) > 0 {
		msg += ": " + strings.Join(messages, " ")
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(log.Out(), msg)
}

func fatal(err error, messages ...string) {
	reportError("Fatal", err, messages...)
	os.Exit(1)
}

func warning(err error, messages ...string) {
	reportError("Warning", err, messages...)
}

// daemon aggregates everything the process owns: parsed config, the zone table all
// servers answer from and the listeners themselves.
type daemon struct {
	cfg       *config
	table     *zonetable.Table
	servers   []*server
	wg        sync.WaitGroup
	sig       chan os.Signal
	startTime time.Time
}

func newDaemon(cfg *config) *daemon {
	if cfg == nil {
		cfg = newConfig()
	}

	return &daemon{
		cfg:   cfg,
		table: zonetable.NewTable(),
		sig:   make(chan os.Signal, 3),
	}
}

//////////////////////////////////////////////////////////////////////

func main() {
	d := newDaemon(nil)
	switch d.parseOptions(os.Args) {
	case parseStop:
		return
	case parseFailed:
		os.Exit(1)
	case parseContinue:
	}

	// Transfer logging options to the log package

	if d.cfg.logMajorFlag {
		log.SetLevel(log.MajorLevel)
	}
	if d.cfg.logMinorFlag {
		log.SetLevel(log.MinorLevel)
	}
	if d.cfg.logDebugFlag {
		log.SetLevel(log.DebugLevel)
	}

	fmt.Fprintln(log.Out(),
		programName, Version, "Starting with Log Level:", log.Level())

	if !d.loadAllZones("Initial load") {
		fatal(nil, "Cannot continue due to failed --zone load")
	}

	if err := d.startServers(); err != nil {
		fatal(err)
	}

	d.constrain() // setuid/setgid/chroot

	d.run()

	d.statsReport()

	fmt.Fprintln(log.Out(), programName, Version, "Exiting after",
		time.Since(d.startTime).Round(time.Second))
}

// constrain reduces process privileges once the listen sockets are bound. The order
// matters: zone files were already read, sockets already need no further privilege,
// so whatever remains is what the query path runs with.
func (t *daemon) constrain() {
	if len(t.cfg.user) > 0 || len(t.cfg.group) > 0 || len(t.cfg.chroot) > 0 {
		err := osutil.Constrain(t.cfg.user, t.cfg.group, t.cfg.chroot)
		if err != nil {
			fatal(err)
		}
		log.Major("Process Constraints: ", osutil.ConstraintReport())
	}
}

// run blocks until a terminating signal arrives. SIGHUP reloads every zone from its
// master file; a failed reload is reported and the zone keeps serving its current
// generation.
func (t *daemon) run() {
	t.startTime = time.Now()
	osutil.SignalNotify(t.sig) // Register interest in signals

	for _, zc := range t.cfg.zones {
		log.Major("Zone of Authority: ", zc.origin)
	}
	fmt.Fprintln(log.Out(), programName, Version, "Ready")

	for {
		signal := <-t.sig
		switch {
		case osutil.IsSignalTERM(signal), osutil.IsSignalINT(signal):
			log.Majorf("Signal '%s' initiates shutdown", signal)
			t.stopServers()
			return

		case osutil.IsSignalHUP(signal):
			log.Major("SIGHUP zone reload initiated")
			t.loadAllZones("Reload")

		case osutil.IsSignalUSR1(signal): // USR1 produces a stats report
			t.statsReport()

		default:
			log.Majorf("Signal '%s' reserved for future use", signal)
		}
	}
}

func (t *daemon) statsReport() {
	for _, srv := range t.servers {
		log.Majorf("Stats: %s/%s %s", srv.network, srv.address, srv.statsString())
	}
}
