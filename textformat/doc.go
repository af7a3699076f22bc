/*
Package textformat decodes the textproto files carried by the Google
Fonts repository: family METADATA.pb files, designer info.pb files and
language definitions. It understands the line-oriented text format
(scalar fields, nested blocks, repeated keys), not the protobuf wire
format, and it tolerates fields it does not know about.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textformat

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'gfmeta.decode'
func tracer() tracing.Trace {
	return tracing.Select("gfmeta.decode")
}
