/*
Package record defines typed records for Google Fonts metadata: font
families with their categories, designers, subsets and variation axes,
language definitions with sample texts, designer profiles, and the
tag taxonomy entries from the fonts repository.

Records are plain values. They are produced by a decoder (package
textformat or any other collaborator) and handed to a store (package
store), which owns them from then on. Nothing in this package mutates
a record after construction.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package record

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'gfmeta.record'
func tracer() tracing.Trace {
	return tracing.Select("gfmeta.record")
}
