/*
Package store provides fast, typed lookup over loaded font-metadata
records. A store is constructed once from a full record set, validates
cross-references while loading, and is read-only from then on; any
number of goroutines may query a loaded store without locking.

All filtering queries are index lookups. The index—category, subset tag
and script to ordered sets of family ids—is built once at load time;
metadata sets are queried repeatedly against a large, static corpus, so
no query ever scans all families.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package store

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'gfmeta.store'
func tracer() tracing.Trace {
	return tracing.Select("gfmeta.store")
}
