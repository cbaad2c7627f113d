package main

import (
	"net"
	"strings"

	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/dnsutil"
	"github.com/markdingo/zonedb/log"
	"github.com/markdingo/zonedb/zonedata"
)

// request accumulates everything about one query as it progresses so the serve
// functions aren't passing a fleet of parameters around, and so the query log line
// has it all in one place at the end. A request is only ever accessed by a single
// go-routine and only lives for the life of a DNS query.
type request struct {
	query    *dns.Msg
	response *dns.Msg
	question dns.Question
	qName    string // Canonical form of question.Name

	src     net.Addr
	network string
	maxSize uint16 // Largest response when network is UDP

	zoneOrigin string             // Matched zone, if any
	zd         *zonedata.ZoneData // Generation serving this request
	dnssecOK   bool               // EDNS DO bit was set
	logNote    string             // Mixed in with the log message, if set

	rrlAction rrl.Action

	// Stats are accumulated here and folded into the server totals once, at the
	// end of the request; see serverStats.
	stats serverStats
}

func newRequest(query *dns.Msg, src net.Addr, network string) *request {
	req := &request{
		query:    query,
		response: new(dns.Msg),
		src:      src,
		network:  network,
	}
	req.response.SetReply(query)
	req.response.Authoritative = true

	if len(query.Question) > 0 {
		req.question = query.Question[0]
		req.qName = strings.ToLower(req.question.Name) // Normalize early
	}

	return req
}

// srcIP digs the client address out of the transport for rrl accounting.
func (t *request) srcIP() net.IP {
	switch a := t.src.(type) {
	case *net.UDPAddr:
		return a.IP
	case *net.TCPAddr:
		return a.IP
	}

	return nil
}

func (t *request) addNote(n string) {
	if len(t.logNote) > 0 {
		t.logNote += ", "
	}
	t.logNote += n
}

func (t *request) log() {
	var note string
	if len(t.logNote) > 0 {
		note = " (" + t.logNote + ")"
	}
	log.Majorf("ru=%s q=%s s=%s id=%d a=%d%s",
		dnsutil.RcodeToString(t.response.Rcode),
		dnsutil.PrettyQuestion(t.question),
		t.src, t.query.Id, len(t.response.Answer), note)
}
