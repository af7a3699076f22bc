package record

import (
	"strings"

	"golang.org/x/text/language"
)

// Family is the decoded form of a family's METADATA.pb entry in the
// Google Fonts repository.
//
// Name is the unique key for a family. Designers and Languages carry
// references by key into the designer and language record sets; a store
// will refuse to load a family whose references dangle.
type Family struct {
	Name            string   // unique family name, e.g. "Roboto"
	DisplayName     string   // optional alternate name for display
	Category        Category // SANS_SERIF, SERIF, ...
	Designers       []string // designer names, referencing Designer records
	License         string   // license identifier, e.g. "OFL"
	Subsets         []string // subset/script tags, e.g. "latin", "menu"
	Languages       []string // language tags, referencing Language records
	Classifications []string // secondary categories, e.g. "DISPLAY"
	PrimaryScript   language.Script
	PrimaryLanguage string // language tag, referencing a Language record
	DateAdded       string // ISO date, as found in the metadata file
	Axes            []Axis // variation axes, in declaration order
	Fonts           []Font // member fonts, in declaration order
	Path            string // location of the METADATA.pb file, if file-backed
}

// HasPrimaryScript returns true if the family declares a primary script.
func (f *Family) HasPrimaryScript() bool {
	return f.PrimaryScript != language.Script{}
}

// Axis is a variation axis of a variable font family, e.g. 'wght' with
// range 100–900.
type Axis struct {
	Tag      string
	MinValue float64
	MaxValue float64
}

// Font describes a single font file belonging to a family.
type Font struct {
	Name           string
	Style          string // "normal" or "italic"
	Weight         int    // CSS weight, 100–900
	Filename       string
	PostScriptName string
	FullName       string
	Copyright      string
}

// IsVariable returns true if the font file is a variable font. Variable
// fonts in the Google Fonts repo carry their designspace in the filename,
// e.g. "Roboto[wdth,wght].ttf".
func (f Font) IsVariable() bool {
	return strings.Contains(f.Filename, "].")
}

// Language is the decoded form of a language definition from the
// repository's lang/ data, e.g. "en_Latn".
type Language struct {
	Tag        string // unique key, e.g. "en_Latn"
	Language   string // ISO 639 code, e.g. "en"
	Script     language.Script
	Name       string // English display name
	Population int64  // estimated number of speakers
	SampleText SampleText
}

// SampleText holds the sample strings a language definition provides for
// specimen rendering.
type SampleText struct {
	MastheadFull    string
	MastheadPartial string
	Styles          string
	Tester          string
	PosterSm        string
	PosterMd        string
	PosterLg        string
	Specimen48      string
	Specimen36      string
	Specimen32      string
	Specimen21      string
	Specimen16      string
}

// Designer is the decoded form of a designer's info.pb from the
// repository's designer catalog.
//
// Families is a back-reference only: it is filled in by the store at
// load time and lists the families crediting this designer.
type Designer struct {
	Name     string // unique key
	Bio      string
	Link     string
	Avatar   string // avatar image filename, if any
	Families []string
}
