/*
Package zonedata is the in-memory authoritative store for one DNS zone. It holds every
owner name in a name-ordered tree and attaches the rdata for each (name, type) pair to
its tree node, indexed so that a (name, class, type) query resolves without copying
record data per query.

A zone is built offline with a Builder (or the lower level Tree.Insert and
Builder.AddRdata calls), then published as an immutable ZoneData generation. Once
published nothing mutates it, which is what makes unlocked concurrent reads safe.
Reloads build an entirely new generation and atomically swap it in via a Getter; readers
holding the old generation keep a fully consistent view until they Release() it, at
which point the superseded generation is reclaimed.

Expected usage is:

    b := zonedata.NewBuilder("example.com.", dns.ClassINET)
    for {
        b.AddRR(dns.RR)
    }
    zd, err := b.Build()

    getter.Replace(zd)
    ...
    zd := getter.Current()
    defer zd.Release()
    result, node := zd.Tree().Find(qName)

The two-phase Writer wraps the build/swap sequence for zone reloads so a failed load
never disturbs the generation currently serving queries.
*/
package zonedata
