package dnsutil

import (
	"github.com/miekg/dns"
)

// Make name canonical but lose trailing dot. For logging, where zone names often end
// up embedded in other strings, the trailing dot is more of a hinderance than a help.
func ChompCanonicalName(n string) string {
	n = dns.CanonicalName(n)
	if len(n) > 0 && n[len(n)-1] == '.' {
		n = n[:len(n)-1]
	}

	return n
}

// Labels returns the canonical (lower-cased, trailing-dot) labels of qName ordered
// least significant first, so "www.Example.COM" becomes ["www", "example", "com"].
// The root name returns nil. Escaped dots within a label are honoured.
func Labels(qName string) []string {
	return dns.SplitDomainName(dns.CanonicalName(qName))
}

// InZone returns true if qName equals origin or is a descendant of origin. Comparison
// is label-wise via the miekg escape-aware walkers, never a string suffix test: a
// leftmost label containing an escaped dot, such as the single label `a\.example`,
// must not pass itself off as two labels ending in "example". Case and trailing dots
// are irrelevant and every name is in the root zone.
func InZone(qName, origin string) bool {
	return dns.IsSubDomain(origin, qName)
}

// SubLabels returns the canonical labels of qName below origin, least significant
// first, and true if qName is in fact at or below origin. The origin itself returns
// an empty slice and true.
func SubLabels(qName, origin string) ([]string, bool) {
	if !InZone(qName, origin) {
		return nil, false
	}
	ql := Labels(qName)

	return ql[:len(ql)-dns.CountLabel(origin)], true
}
