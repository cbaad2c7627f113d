package main

import (
	"strings"
	"testing"

	"github.com/markdingo/zonedb/dnsutil"
	"github.com/markdingo/zonedb/zonetable"
)

func TestServerStats(t *testing.T) {
	var total, batch serverStats
	batch.queries = 5
	batch.answers = 2
	batch.nodata = 1
	batch.nxdomain = 1
	batch.refused = 1
	batch.wildcard = 1
	total.add(&batch)
	total.add(&batch)

	if total.queries != 10 || total.answers != 4 || total.wildcard != 2 {
		t.Error("add() did not accumulate", total)
	}

	s := total.String()
	for _, want := range []string{"q=10", "ans=4", "nodata=2", "nx=2", "ref=2", "wild=2"} {
		if !strings.Contains(s, want) {
			t.Error("Stats string missing", want, "in", s)
		}
	}
}

func TestServerAddStats(t *testing.T) {
	srv := newServer(newConfig(), zonetable.NewTable(), nil, dnsutil.UDPNetwork, ":53")
	var batch serverStats
	batch.queries = 3
	srv.addStats(&batch)
	srv.addStats(&batch)

	if !strings.Contains(srv.statsString(), "q=6") {
		t.Error("addStats did not fold into server totals", srv.statsString())
	}
}

func TestNewServerDefaults(t *testing.T) {
	srv := newServer(newConfig(), zonetable.NewTable(), nil, "", ":53")
	if srv.network != dnsutil.UDPNetwork {
		t.Error("Empty network should default to udp, not", srv.network)
	}
	if srv.miekg == nil || srv.miekg.Handler != srv {
		t.Error("miekg server not wired back to the handler")
	}
}
