package store

import (
	"iter"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/npillmayer/gfmeta/record"
	"golang.org/x/text/language"
)

// index files a family id under its category, subset tags and scripts.
// Ids are insertion positions, so iterating a posting bitmap in
// ascending order reproduces insertion order.
func (s *Store) index(id uint32, fam *record.Family) {
	post(s.byCategory, fam.Category, id)
	for _, tag := range fam.Subsets {
		post(s.byTag, tag, id)
	}
	if fam.HasPrimaryScript() {
		post(s.byScript, fam.PrimaryScript.String(), id)
	}
	for _, langTag := range fam.Languages {
		if lang, ok := s.languages[langTag]; ok && lang.Script != (language.Script{}) {
			post(s.byScript, lang.Script.String(), id)
		}
	}
	// names differing only in case share a trie key, so ids live in a
	// side map keyed by the folded name
	folded := strings.ToLower(fam.Name)
	s.names.Add(folded, folded)
	s.idsByFolded[folded] = append(s.idsByFolded[folded], id)
}

func post[K comparable](m map[K]*roaring.Bitmap, key K, id uint32) {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(id)
}

// sequence turns a posting bitmap into a lazy, restartable iteration
// over family records, in insertion order. A nil bitmap yields nothing.
func (s *Store) sequence(bm *roaring.Bitmap) iter.Seq[*record.Family] {
	return func(yield func(*record.Family) bool) {
		if bm == nil {
			return
		}
		it := bm.Iterator()
		for it.HasNext() {
			if !yield(s.families[it.Next()]) {
				return
			}
		}
	}
}

// Families iterates over all family records in insertion order. The
// sequence is restartable: each range over it starts from the beginning.
func (s *Store) Families() iter.Seq[*record.Family] {
	return func(yield func(*record.Family) bool) {
		for _, fam := range s.families {
			if !yield(fam) {
				return
			}
		}
	}
}

// FamiliesByCategory iterates over the families of a category, in
// insertion order. The sequence is empty if no family matches.
func (s *Store) FamiliesByCategory(c record.Category) iter.Seq[*record.Family] {
	return s.sequence(s.byCategory[c])
}

// FamiliesByTag iterates over the families carrying a subset tag (e.g.
// "latin", "cyrillic-ext"), in insertion order.
func (s *Store) FamiliesByTag(tag string) iter.Seq[*record.Family] {
	return s.sequence(s.byTag[tag])
}

// FamiliesByScript iterates over the families supporting a script, in
// insertion order. A family supports a script if one of its declared
// languages uses it, or if it is the family's primary script. script is
// an ISO 15924 identifier like "Latn".
func (s *Store) FamiliesByScript(script string) iter.Seq[*record.Family] {
	return s.sequence(s.byScript[script])
}

// FamiliesWithPrefix returns the families whose name starts with a
// prefix, matched case-insensitively, sorted by name.
func (s *Store) FamiliesWithPrefix(prefix string) []*record.Family {
	keys := s.names.PrefixSearch(strings.ToLower(prefix))
	fams := make([]*record.Family, 0, len(keys))
	for _, key := range keys {
		for _, id := range s.idsByFolded[key] {
			fams = append(fams, s.families[id])
		}
	}
	slices.SortFunc(fams, func(a, b *record.Family) int {
		return strings.Compare(a.Name, b.Name)
	})
	return fams
}

// Categories returns the categories at least one family belongs to, in
// ascending enumeration order.
func (s *Store) Categories() []record.Category {
	cats := make([]record.Category, 0, len(s.byCategory))
	for c := range s.byCategory {
		cats = append(cats, c)
	}
	slices.Sort(cats)
	return cats
}
