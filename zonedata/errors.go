package zonedata

import (
	"errors"
)

// Load-time violations are returned as wrapped sentinel errors so loaders can abort a
// build and leave the previous generation serving. Nothing on the query path ever
// returns an error - absence is a normal, silent outcome.
var (
	ErrNotLoading    = errors.New("zone tree is published and no longer loading")
	ErrOutOfZone     = errors.New("name is outside the zone origin")
	ErrEmptyRdataSet = errors.New("rdataset must contain at least one rdata entry")
	ErrDuplicateType = errors.New("rdataset type already present at node")
	ErrClassMismatch = errors.New("rr class does not match zone class")
)
