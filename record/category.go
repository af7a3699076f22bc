package record

// Category is the principal design classification of a family.
type Category int

// Categories as enumerated by the fonts_public schema.
const (
	CategoryUnknown Category = iota
	SansSerif
	Serif
	Display
	Handwriting
	Monospace
)

var categoryNames = map[Category]string{
	CategoryUnknown: "UNKNOWN",
	SansSerif:       "SANS_SERIF",
	Serif:           "SERIF",
	Display:         "DISPLAY",
	Handwriting:     "HANDWRITING",
	Monospace:       "MONOSPACE",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseCategory maps a category identifier from a metadata file onto a
// Category. Identifiers not in the schema's enumeration map to
// CategoryUnknown; metadata files in the wild do carry classification
// values outside the documented set, and a single odd value should not
// fail a whole family.
func ParseCategory(s string) Category {
	switch s {
	case "SANS_SERIF":
		return SansSerif
	case "SERIF":
		return Serif
	case "DISPLAY":
		return Display
	case "HANDWRITING":
		return Handwriting
	case "MONOSPACE":
		return Monospace
	}
	tracer().Debugf("unknown font category %q", s)
	return CategoryUnknown
}
