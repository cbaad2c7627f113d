/*
Package rrset provides the query-facing view of zone data. A Collection answers the
single question "does this exact (name, class, type) triple have an RRset?" and a View
is the read-only RRset it answers with, materialized lazily from the tree node and
rdataset it borrows rather than copied up front.

Absence is never an error here. A class mismatch, an unknown name or a missing type
all come back as a nil View because a collection may legitimately be queried with
arbitrary triples. Anything richer - wildcard synthesis, delegation handling, CNAME
chasing - belongs to a resolution layer working directly off zonedata.Tree.Find and
its match-kind result, not to this façade.

A View borrows from the generation it was created against, so it must not be used
past the point the caller releases its generation reference. There is no runtime
check for this; the reference discipline is the contract.
*/
package rrset
