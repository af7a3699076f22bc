package record

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/npillmayer/gfmeta/core"
)

// Tagging associates a family (and optionally a designspace location
// within that family) with a taxonomy tag and a numeric value for that
// tag. Taggings are read from the CSV files under tags/all in the fonts
// repository.
type Tagging struct {
	Family string  // family name
	Loc    string  // designspace location, e.g. "ital,wght@1,700"; may be empty
	Tag    string  // tag name, e.g. "/Sans/Geometric"
	Value  float64 // tag value
}

// TagMetadata describes a taxonomy tag: its value range and a
// user-friendly prompt name. Read from tags/tags_metadata.csv.
type TagMetadata struct {
	Tag        string
	MinValue   float64
	MaxValue   float64
	PromptName string
}

// csvFields splits a single CSV line. Tag files use quoted fields for
// designspace locations which themselves contain commas, e.g.
// "ital,wght@1,700".
func csvFields(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	return r.Read()
}

// ParseTagging parses a single line from a tags/all CSV file. Lines come
// in a 3-field form (family, tag, value) and a 4-field form with a
// designspace location after the family.
func ParseTagging(line string) (Tagging, error) {
	fields, err := csvFields(line)
	if err != nil {
		return Tagging{}, core.WrapError(err, core.EINVALID, "unparseable tag line: %q", line)
	}
	var tagging Tagging
	switch len(fields) {
	case 3:
		tagging.Family, tagging.Tag = fields[0], fields[1]
		tagging.Value, err = strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	case 4:
		tagging.Family, tagging.Loc, tagging.Tag = fields[0], fields[1], fields[2]
		tagging.Value, err = strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	default:
		return Tagging{}, core.Error(core.EINVALID, "unparseable tag line: %q", line)
	}
	if err != nil {
		return Tagging{}, core.WrapError(err, core.EINVALID, "invalid tag value in line: %q", line)
	}
	return tagging, nil
}

// ParseTagMetadata parses a single line from tags/tags_metadata.csv:
// tag, min, max, prompt name.
func ParseTagMetadata(line string) (TagMetadata, error) {
	fields, err := csvFields(line)
	if err != nil || len(fields) != 4 {
		return TagMetadata{}, core.WrapError(err, core.EINVALID,
			"unparseable tag metadata line: %q", line)
	}
	md := TagMetadata{Tag: fields[0], PromptName: fields[3]}
	if md.MinValue, err = strconv.ParseFloat(strings.TrimSpace(fields[1]), 64); err != nil {
		return TagMetadata{}, core.WrapError(err, core.EINVALID, "invalid min value in line: %q", line)
	}
	if md.MaxValue, err = strconv.ParseFloat(strings.TrimSpace(fields[2]), 64); err != nil {
		return TagMetadata{}, core.WrapError(err, core.EINVALID, "invalid max value in line: %q", line)
	}
	return md, nil
}
