package dnsutil

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// The Pretty* functions return a compact "pretty" version of various dns structures.
// The standard String() is designed to be consistent with traditional dig-type output,
// which IMO is too verbose and pretty ugly. Maybe "Compact" would have been a better
// prefix than "Pretty"?

// PrettyQuestion returns a compact representation of the dns.Question
func PrettyQuestion(q dns.Question) string {
	return fmt.Sprintf("%s/%s %s",
		ClassToString(dns.Class(q.Qclass)),
		TypeToString(q.Qtype),
		q.Name)
}

// PrettyRR returns a compact representation of a single RR. Well known types get the
// compact treatment, the rest fall back to the miekg Stringer.
func PrettyRR(rr dns.RR, includeName bool) string {
	var rhs string
	switch rrt := rr.(type) {
	case *dns.A:
		rhs = rrt.A.String()
	case *dns.AAAA:
		rhs = rrt.AAAA.String()
	case *dns.NS:
		rhs = rrt.Ns
	case *dns.PTR:
		rhs = rrt.Ptr
	case *dns.MX:
		rhs = fmt.Sprintf("%d %s", rrt.Preference, rrt.Mx)
	case *dns.CNAME:
		rhs = rrt.Target
	case *dns.TXT:
		rhs = strings.Join(rrt.Txt, " ")
	case *dns.SOA:
		rhs = fmt.Sprintf("%s %s %d %d %d %d %d", rrt.Ns, rrt.Mbox,
			rrt.Serial, rrt.Refresh, rrt.Retry, rrt.Expire, rrt.Minttl)
	default:
		return rr.String()
	}

	h := rr.Header()
	var s string
	if includeName {
		s = h.Name + " "
	}

	return s + fmt.Sprintf("%s/%s %d %s",
		ClassToString(dns.Class(h.Class)), TypeToString(h.Rrtype), h.Ttl, rhs)
}

// PrettyRRSet returns a compact representation of the slice of RRs. Each RR is
// separated by a comma.
func PrettyRRSet(rrs []dns.RR, includeName bool) string {
	ar := make([]string, 0, len(rrs))
	for _, rr := range rrs {
		ar = append(ar, PrettyRR(rr, includeName))
	}

	return strings.Join(ar, ", ")
}
