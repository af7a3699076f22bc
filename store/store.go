package store

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/derekparker/trie"
	"github.com/npillmayer/gfmeta/core"
	"github.com/npillmayer/gfmeta/record"
)

// RecordSet is the input to Load: decoded records in insertion order,
// as produced by package textformat or any other decoder honoring the
// record shapes.
type RecordSet struct {
	Families    []*record.Family
	Languages   []*record.Language
	Designers   []*record.Designer
	Taggings    []record.Tagging
	TagMetadata []record.TagMetadata
}

// Store holds an immutable set of family, language and designer records
// together with the indexes to query them. Create one with Load; a
// loaded store never changes and is safe for concurrent readers.
type Store struct {
	families         []*record.Family // insertion order; index doubles as family id
	byName           map[string]uint32
	languages        map[string]*record.Language
	designers        map[string]*record.Designer
	byCategory       map[record.Category]*roaring.Bitmap
	byTag            map[string]*roaring.Bitmap
	byScript         map[string]*roaring.Bitmap
	names            *trie.Trie          // lower-cased family names
	idsByFolded      map[string][]uint32 // family ids per lower-cased name
	taggingsByTag    map[string][]record.Tagging
	taggingsByFamily map[string][]record.Tagging
	tagInfo          map[string]record.TagMetadata
}

// Load constructs a store from a record set.
//
// Load fails with an EDUPLICATE error if two records of a kind share a
// unique key, and with an EINVALID error if a family references a
// designer or language that is not part of the record set. On success
// the store owns the records; callers must not modify them afterwards.
// Load never modifies its input: designer back-references live on
// store-owned copies of the designer records, so one record set may be
// loaded into several stores.
func Load(rs RecordSet) (*Store, error) {
	s := &Store{
		families:         rs.Families,
		byName:           make(map[string]uint32, len(rs.Families)),
		languages:        make(map[string]*record.Language, len(rs.Languages)),
		designers:        make(map[string]*record.Designer, len(rs.Designers)),
		byCategory:       make(map[record.Category]*roaring.Bitmap),
		byTag:            make(map[string]*roaring.Bitmap),
		byScript:         make(map[string]*roaring.Bitmap),
		names:            trie.New(),
		idsByFolded:      make(map[string][]uint32, len(rs.Families)),
		taggingsByTag:    make(map[string][]record.Tagging),
		taggingsByFamily: make(map[string][]record.Tagging),
		tagInfo:          make(map[string]record.TagMetadata, len(rs.TagMetadata)),
	}
	for _, lang := range rs.Languages {
		if _, ok := s.languages[lang.Tag]; ok {
			return nil, core.Error(core.EDUPLICATE, "duplicate language tag %q", lang.Tag)
		}
		s.languages[lang.Tag] = lang
	}
	designers := make(map[string]*record.Designer, len(rs.Designers))
	for _, d := range rs.Designers {
		if _, ok := designers[d.Name]; ok {
			return nil, core.Error(core.EDUPLICATE, "duplicate designer %q", d.Name)
		}
		designers[d.Name] = d
	}
	backrefs := make(map[string][]string)
	for i, fam := range rs.Families {
		if _, ok := s.byName[fam.Name]; ok {
			return nil, core.Error(core.EDUPLICATE, "duplicate family %q", fam.Name)
		}
		if err := s.validate(fam, designers); err != nil {
			return nil, err
		}
		for _, name := range fam.Designers {
			backrefs[name] = append(backrefs[name], fam.Name)
		}
		s.byName[fam.Name] = uint32(i)
		s.index(uint32(i), fam)
	}
	// validation is through; publish store-owned designer copies carrying
	// the back-references, leaving the input records untouched
	for _, d := range rs.Designers {
		owned := *d
		owned.Families = backrefs[d.Name]
		s.designers[owned.Name] = &owned
	}
	for _, tagging := range rs.Taggings {
		if _, ok := s.byName[tagging.Family]; !ok && tagging.Family != "" {
			tracer().Debugf("tagging for unknown family %q", tagging.Family)
		}
		s.taggingsByTag[tagging.Tag] = append(s.taggingsByTag[tagging.Tag], tagging)
		s.taggingsByFamily[tagging.Family] = append(s.taggingsByFamily[tagging.Family], tagging)
	}
	for _, md := range rs.TagMetadata {
		if _, ok := s.tagInfo[md.Tag]; ok {
			return nil, core.Error(core.EDUPLICATE, "duplicate tag metadata for %q", md.Tag)
		}
		s.tagInfo[md.Tag] = md
	}
	tracer().Infof("store loaded: %d families, %d languages, %d designers",
		len(s.families), len(s.languages), len(s.designers))
	return s, nil
}

// validate checks a family's cross-references.
func (s *Store) validate(fam *record.Family, designers map[string]*record.Designer) error {
	for _, name := range fam.Designers {
		if _, ok := designers[name]; !ok {
			return core.Error(core.EINVALID,
				"family %q references unknown designer %q", fam.Name, name)
		}
	}
	for _, tag := range fam.Languages {
		if _, ok := s.languages[tag]; !ok {
			return core.Error(core.EINVALID,
				"family %q references unknown language %q", fam.Name, tag)
		}
	}
	// Primary-language declarations are unreliable in the wild (some
	// files literally say "Invalid"); PrimaryLanguage falls back instead.
	if fam.PrimaryLanguage != "" {
		if _, ok := s.languages[fam.PrimaryLanguage]; !ok {
			tracer().Infof("family %q declares unknown primary language %q",
				fam.Name, fam.PrimaryLanguage)
		}
	}
	return nil
}

// Family returns the family record stored under a name, or an EMISSING
// error.
func (s *Store) Family(name string) (*record.Family, error) {
	if i, ok := s.byName[name]; ok {
		return s.families[i], nil
	}
	return nil, core.Error(core.EMISSING, "no family %q in metadata store", name)
}

// Language returns the language record for a language tag like
// "en_Latn", or an EMISSING error.
func (s *Store) Language(tag string) (*record.Language, error) {
	if lang, ok := s.languages[tag]; ok {
		return lang, nil
	}
	return nil, core.Error(core.EMISSING, "no language %q in metadata store", tag)
}

// Designer returns the designer record stored under a name, or an
// EMISSING error.
func (s *Store) Designer(name string) (*record.Designer, error) {
	if d, ok := s.designers[name]; ok {
		return d, nil
	}
	return nil, core.Error(core.EMISSING, "no designer %q in metadata store", name)
}

// Len returns the number of family records in the store.
func (s *Store) Len() int {
	return len(s.families)
}

// Taggings returns all taxonomy-tag entries for a tag name, in input
// order. The result is empty for an unknown tag.
func (s *Store) Taggings(tag string) []record.Tagging {
	return s.taggingsByTag[tag]
}

// TaggingsOf returns all taxonomy-tag entries referring to a family, in
// input order.
func (s *Store) TaggingsOf(family string) []record.Tagging {
	return s.taggingsByFamily[family]
}

// TagInfo returns the metadata (value range, prompt name) for a
// taxonomy tag, or an EMISSING error.
func (s *Store) TagInfo(tag string) (record.TagMetadata, error) {
	if md, ok := s.tagInfo[tag]; ok {
		return md, nil
	}
	return record.TagMetadata{}, core.Error(core.EMISSING, "no metadata for tag %q", tag)
}

// PrimaryLanguage guesses the primary language for a family, meant as a
// good choice for things like rendering a sample string. It probes the
// family's declared primary language, then the most populous language
// using the family's primary script, then falls back to "en_Latn".
// Returns nil only if even the fallback is not part of the store.
func (s *Store) PrimaryLanguage(fam *record.Family) *record.Language {
	if fam.PrimaryLanguage != "" {
		if lang, ok := s.languages[fam.PrimaryLanguage]; ok {
			return lang
		}
		tracer().Infof("%s specifies invalid primary_language %s", fam.Name, fam.PrimaryLanguage)
	}
	if fam.HasPrimaryScript() {
		var populous *record.Language
		for _, lang := range s.languages {
			if lang.Script != fam.PrimaryScript {
				continue
			}
			if populous == nil || lang.Population > populous.Population ||
				(lang.Population == populous.Population && lang.Tag < populous.Tag) {
				populous = lang
			}
		}
		if populous != nil {
			return populous
		}
		tracer().Infof("%s specifies a primary_script that matches no languages %s",
			fam.Name, fam.PrimaryScript)
	}
	return s.languages["en_Latn"]
}
