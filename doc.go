// Copyright (c) 2026 Mark Delany. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

// This file exists so that "go doc github.com/markdingo/zonedb" displays something
// useful.

/*

Package zonedb is an in-memory store for authoritative DNS zone data. Zone names are
held in a tree of labels, each name carries a chain of per-type rdata sets, and
whole-zone reloads swap in a fresh generation so readers never observe a half-loaded
zone.

The zonedata package holds the tree, the rdata sets and the generation machinery. The
rrset package provides lazily materialized RRset views over a generation. The
zonetable package maps query names to their closest enclosing zone. cmd/zonedbd is a
small authoritative server built from those pieces.

Project site: https://github.com/markdingo/zonedb

*/
package zonedb
