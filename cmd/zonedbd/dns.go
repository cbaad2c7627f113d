package main

import (
	"github.com/markdingo/miekgrrl"
	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/dnsutil"
	"github.com/markdingo/zonedb/rrset"
	"github.com/markdingo/zonedb/zonedata"
)

// Called from miekg - handles all DNS queries. Pre-processing and dispatch live here;
// the serve* functions compose and write the actual responses.
func (t *server) ServeDNS(wtr dns.ResponseWriter, query *dns.Msg) {
	req := newRequest(query, wtr.RemoteAddr(), t.network)
	req.stats.queries++
	if t.cfg.logQueriesFlag {
		defer req.log()
	}
	defer t.addStats(&req.stats) // Add req.stats to t.stats

	// miekg.DefaultMsgAcceptFunc does some checking prior to the query arriving
	// here, but precisely what validation will be performed is undocumented and may
	// vary over time, thus the "belts and braces" approach.
	if len(req.query.Question) != 1 ||
		len(req.query.Answer) != 0 ||
		len(req.query.Ns) != 0 ||
		req.query.Opcode != dns.OpcodeQuery {
		req.addNote("Malformed Query")
		req.stats.formerr++
		t.serveFormErr(wtr, req)
		return
	}

	// If query contains a UDP size value, use it if it's reasonable
	if t.network == dnsutil.UDPNetwork {
		req.maxSize = dnsutil.MaxUDPSize // Default unless over-ridden
	}
	if opt := req.query.IsEdns0(); opt != nil {
		req.dnssecOK = opt.Do()
		if t.network == dnsutil.UDPNetwork {
			mz := opt.UDPSize()
			if (mz > 512) && (mz <= dnsutil.MaxUDPSize) { // Reasonable?
				req.maxSize = mz
			}
		}
	}

	// Find the closest enclosing zone for the qName. No zone means we are not
	// authoritative for any part of the query name.
	origin, getter, ok := t.table.FindEnclosing(req.qName)
	if !ok {
		req.addNote("No authority")
		req.stats.refused++
		t.serveRefused(wtr, req)
		return
	}
	req.zoneOrigin = origin

	req.zd = getter.Current() // Take a reference for the life of the request
	if req.zd == nil {
		req.addNote("Zone never loaded")
		req.stats.servfail++
		t.serveServFail(wtr, req)
		return
	}
	defer req.zd.Release()

	if req.question.Qclass != req.zd.Class() {
		req.addNote("Class mismatch")
		req.stats.refused++
		t.serveRefused(wtr, req)
		return
	}

	t.serveZone(wtr, req)
}

// serveZone answers a query which is known to fall under a loaded zone. Resolution
// order is: exact RRset, empty non-terminal (NoData), wildcard synthesis, NXDomain.
func (t *server) serveZone(wtr dns.ResponseWriter, req *request) {
	coll := rrset.NewCollection(req.zd)

	if view := coll.Find(req.qName, req.question.Qclass, req.question.Qtype); view != nil {
		t.serveAnswer(wtr, req, view, "")
		return
	}

	result, node := req.zd.Tree().Find(req.qName)
	switch result {
	case zonedata.ExactMatch: // Name exists but not with this type
		t.serveNoError(wtr, req)
		return

	case zonedata.PartialMatch:
		if node.WildcardBelow() {
			wName := dnsutil.WildcardLabel + "." + node.Name()
			if view := coll.Find(wName, req.question.Qclass, req.question.Qtype); view != nil {
				req.stats.wildcard++
				req.addNote("Wildcard")
				t.serveAnswer(wtr, req, view, req.qName)
				return
			}
			if r, _ := req.zd.Tree().Find(wName); r == zonedata.ExactMatch {
				t.serveNoError(wtr, req) // Wildcard exists but not with this type
				return
			}
		}
	}

	t.serveNXDomain(wtr, req)
}

// serveAnswer writes a positive response from the view. If synthName is set the
// answer is wildcard-synthesized and each record's owner name is rewritten. The view
// materializes fresh copies on every call so the rewrite cannot touch the store.
func (t *server) serveAnswer(wtr dns.ResponseWriter, req *request, view *rrset.View, synthName string) {
	req.stats.answers++

	answer := view.RRs()
	if req.dnssecOK {
		answer = append(answer, view.Sigs()...)
	}
	for _, rr := range answer {
		if len(synthName) > 0 {
			rr.Header().Name = synthName
		}
		req.response.Answer = append(req.response.Answer, rr)
	}

	t.writeMsg(wtr, req)
}

// serveNoError is the NoData response: NoError with the zone SOA in the authority
// section so resolvers can negative-cache.
func (t *server) serveNoError(wtr dns.ResponseWriter, req *request) {
	req.stats.nodata++
	req.response.SetRcode(req.query, dns.RcodeSuccess)
	req.response.Ns = append(req.response.Ns, t.apexSOA(req)...)
	t.writeMsg(wtr, req)
}

// I don't know why miekg has a specific function for FormErr and a generic one for
// all other returns, but I'll use the specific one just in case there's a good reason
// beyond being an historical artifact.
func (t *server) serveFormErr(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcodeFormatError(req.query)
	t.writeMsg(wtr, req)
}

func (t *server) serveNXDomain(wtr dns.ResponseWriter, req *request) {
	req.stats.nxdomain++
	req.response.SetRcode(req.query, dns.RcodeNameError)
	req.response.Ns = append(req.response.Ns, t.apexSOA(req)...)
	t.writeMsg(wtr, req)
}

func (t *server) serveRefused(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcode(req.query, dns.RcodeRefused)
	t.writeMsg(wtr, req)
}

func (t *server) serveServFail(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcode(req.query, dns.RcodeServerFailure)
	t.writeMsg(wtr, req)
}

// apexSOA materializes the zone SOA for the authority section of negative responses.
// Load guarantees the apex SOA exists, but a nil zone tolerates hand-built test data.
func (t *server) apexSOA(req *request) []dns.RR {
	if req.zd == nil {
		return nil
	}
	set := req.zd.Tree().OriginNode().FindSet(dns.TypeSOA, false)
	if set == nil {
		return nil
	}
	soa := set.RRs()
	if req.dnssecOK {
		soa = append(soa, set.Sigs()...)
	}

	return soa
}

// writeMsg finalizes the output message with all of the common processing then calls
// the response writer to send the message. Rate limiting applies here, on the
// response rather than the query, as the whole point of RRL is that the cost to debit
// depends on what we are about to send.
func (t *server) writeMsg(wtr dns.ResponseWriter, req *request) {
	if t.rrlHandler != nil && t.network == dnsutil.UDPNetwork {
		action, _, _ := t.rrlHandler.Debit(req.src, miekgrrl.Derive(req.response, ""))
		req.rrlAction = action
		switch action {
		case rrl.Drop:
			req.stats.rrlDrop++
			req.addNote("RRL Drop")
			if !t.cfg.rrlDryRun {
				return // Drop means don't even respond
			}
		case rrl.Slip:
			req.stats.rrlSlip++
			req.addNote("RRL Slip")
			if !t.cfg.rrlDryRun { // Slip sends a minimal truncated response
				req.response.Answer = nil
				req.response.Ns = nil
				req.response.Extra = nil
				req.response.Truncated = true
			}
		}
	}

	if req.query.IsEdns0() != nil {
		req.response.SetEdns0(dnsutil.MaxUDPSize, req.dnssecOK)
	}

	req.response.Authoritative = true
	if req.maxSize > 0 {
		req.response.Truncate(int(req.maxSize)) // Removes excess RRs and sets TC=1
	}

	err := wtr.WriteMsg(req.response)
	if err != nil {
		req.addNote("WriteMsg failed: " + err.Error())
	}
}
