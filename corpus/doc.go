/*
Package corpus reads font metadata from a local checkout of the Google
Fonts repository and from the Google webfont service.

A Corpus value is a lazily cached view of one checkout: families, tag
taxonomies, designer profiles and language definitions are read on
first access and kept for the lifetime of the corpus. Corpus.Load hands
everything to a metadata store for validated, indexed access.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package corpus

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'gfmeta.corpus'
func tracer() tracing.Trace {
	return tracing.Select("gfmeta.corpus")
}
