package main

import (
	"fmt"
	"sync"

	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/dnsutil"
	"github.com/markdingo/zonedb/log"
	"github.com/markdingo/zonedb/zonetable"
)

// serverStats accumulate per listener. To avoid holding the lock across a whole
// request they are gathered into a private copy in the request struct and folded
// back in at the end, so the query path runs lock free.
type serverStats struct {
	queries  int
	answers  int
	nodata   int
	nxdomain int
	refused  int
	formerr  int
	servfail int
	wildcard int
	rrlDrop  int
	rrlSlip  int
}

func (t *serverStats) add(from *serverStats) {
	t.queries += from.queries
	t.answers += from.answers
	t.nodata += from.nodata
	t.nxdomain += from.nxdomain
	t.refused += from.refused
	t.formerr += from.formerr
	t.servfail += from.servfail
	t.wildcard += from.wildcard
	t.rrlDrop += from.rrlDrop
	t.rrlSlip += from.rrlSlip
}

func (t *serverStats) String() string {
	return fmt.Sprintf("q=%d ans=%d nodata=%d nx=%d ref=%d fe=%d sf=%d wild=%d rrl=%d/%d",
		t.queries, t.answers, t.nodata, t.nxdomain, t.refused,
		t.formerr, t.servfail, t.wildcard, t.rrlDrop, t.rrlSlip)
}

// server is created for each listen address.
type server struct {
	cfg        *config
	table      *zonetable.Table
	rrlHandler *rrl.RRL // May be nil if not configured

	network string // Listen details
	address string

	miekg *dns.Server

	statsMu sync.RWMutex
	stats   serverStats
}

func newServer(cfg *config, table *zonetable.Table, rrlHandler *rrl.RRL, network, address string) *server {
	t := &server{
		cfg:        cfg,
		table:      table,
		rrlHandler: rrlHandler,
		network:    network,
		address:    address,
	}
	if len(t.network) == 0 {
		t.network = dnsutil.UDPNetwork
	}

	t.miekg = &dns.Server{Net: t.network, Addr: t.address, ReusePort: true, Handler: t}

	return t
}

func (t *server) addStats(from *serverStats) {
	t.statsMu.Lock()
	t.stats.add(from)
	t.statsMu.Unlock()
}

func (t *server) statsString() string {
	t.statsMu.RLock()
	defer t.statsMu.RUnlock()

	return t.stats.String()
}

// startServers creates a UDP and TCP listener for every --listen address. It waits
// until each underlying service has actually started before returning.
func (t *daemon) startServers() error {
	var rrlHandler *rrl.RRL
	if t.cfg.rrlConfig.IsActive() {
		rrlHandler = rrl.NewRRL(t.cfg.rrlConfig)
	}

	for _, addr := range t.cfg.listen {
		for _, network := range []string{dnsutil.UDPNetwork, dnsutil.TCPNetwork} {
			srv := newServer(t.cfg, t.table, rrlHandler, network, addr)
			if err := t.startServer(srv); err != nil {
				t.stopServers()
				return fmt.Errorf("listen on %s/%s: %w", network, addr, err)
			}
			t.servers = append(t.servers, srv)
			log.Majorf("Listen on: %s/%s", network, addr)
		}
	}

	return nil
}

// startServer starts the listener by calling dns.ListenAndServe(). It waits until
// the service has actually started prior to returning by way of NotifyStartedFunc.
func (t *daemon) startServer(srv *server) error {
	t.wg.Add(1)

	hasStarted := make(chan error) // Make sure listener has started before returning
	srv.miekg.NotifyStartedFunc = func() {
		hasStarted <- nil
	}

	go func() {
		err := srv.miekg.ListenAndServe()
		t.wg.Done()
		if err != nil {
			hasStarted <- err
		}
		close(hasStarted)
	}()

	return <-hasStarted // Closed by srv.miekg.NotifyStartedFunc
}

func (t *daemon) stopServers() {
	for _, srv := range t.servers {
		srv.miekg.Shutdown()
	}
	t.wg.Wait()
}
