package corpus

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/gfmeta/core"
	"github.com/npillmayer/gfmeta/record"
	"github.com/npillmayer/gfmeta/store"
	"github.com/npillmayer/gfmeta/textformat"
	"golang.org/x/text/language"
)

// Corpus is a view into a local checkout of the Google Fonts repository
// (the directory tree containing METADATA.pb files and the tags/
// directory). Metadata is read lazily on first access and cached for
// the lifetime of the corpus.
type Corpus struct {
	dir          string
	langDir      string
	familyFilter *regexp.Regexp

	familiesOnce sync.Once
	families     []*record.Family
	familiesErr  error

	taggingsOnce sync.Once
	taggings     []record.Tagging
	taggingsErr  error

	tagMetaOnce sync.Once
	tagMeta     []record.TagMetadata
	tagMetaErr  error

	designersOnce sync.Once
	designers     []*record.Designer
	designersErr  error

	languagesOnce sync.Once
	languages     []*record.Language
	languagesErr  error
}

// Option configures a corpus.
type Option func(*Corpus)

// WithFamilyFilter restricts Families to METADATA.pb files whose path
// matches a pattern.
func WithFamilyFilter(r *regexp.Regexp) Option {
	return func(c *Corpus) { c.familyFilter = r }
}

// WithLanguagesDir sets the directory holding language-definition
// textprotos. The default is <checkout>/lang/languages; checkouts
// without language data simply yield no language records.
func WithLanguagesDir(dir string) Option {
	return func(c *Corpus) { c.langDir = dir }
}

// New creates a corpus view for a checkout directory. No I/O happens
// until an accessor is called.
func New(dir string, opts ...Option) *Corpus {
	c := &Corpus{dir: dir}
	c.langDir = filepath.Join(dir, "lang", "languages")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Families returns the decoded family records of the checkout, in
// discovery order. Files which cannot be decoded are skipped with a
// trace message; a checkout with broken single families is still
// usable.
func (c *Corpus) Families() ([]*record.Family, error) {
	c.familiesOnce.Do(func() {
		c.familiesErr = filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || d.Name() != "METADATA.pb" {
				return nil
			}
			if c.familyFilter != nil && !c.familyFilter.MatchString(path) {
				return nil
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			fam, err := textformat.DecodeFamily(src)
			if err != nil {
				tracer().Errorf("cannot decode %s: %v", path, err)
				return nil
			}
			fam.Path = path
			c.families = append(c.families, fam)
			return nil
		})
		tracer().Infof("discovered %d families in %s", len(c.families), c.dir)
	})
	return c.families, c.familiesErr
}

// Taggings returns the tag entries from the checkout's tags/all CSV
// files.
func (c *Corpus) Taggings() ([]record.Tagging, error) {
	c.taggingsOnce.Do(func() {
		tagDir := filepath.Join(c.dir, "tags", "all")
		entries, err := os.ReadDir(tagDir)
		if err != nil {
			c.taggingsErr = core.WrapError(err, core.EMISSING, "checkout has no tags directory")
			return
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
				continue
			}
			taggings, err := readTaggings(filepath.Join(tagDir, entry.Name()))
			if err != nil {
				c.taggingsErr = err
				return
			}
			c.taggings = append(c.taggings, taggings...)
		}
	})
	return c.taggings, c.taggingsErr
}

func readTaggings(path string) ([]record.Tagging, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var taggings []record.Tagging
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		tagging, err := record.ParseTagging(line)
		if err != nil {
			return nil, err
		}
		taggings = append(taggings, tagging)
	}
	return taggings, sc.Err()
}

// TagMetadata returns the tag descriptions from the checkout's
// tags/tags_metadata.csv.
func (c *Corpus) TagMetadata() ([]record.TagMetadata, error) {
	c.tagMetaOnce.Do(func() {
		path := filepath.Join(c.dir, "tags", "tags_metadata.csv")
		f, err := os.Open(path)
		if err != nil {
			c.tagMetaErr = core.WrapError(err, core.EMISSING, "checkout has no tag metadata file")
			return
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			md, err := record.ParseTagMetadata(line)
			if err != nil {
				c.tagMetaErr = err
				return
			}
			c.tagMeta = append(c.tagMeta, md)
		}
		c.tagMetaErr = sc.Err()
	})
	return c.tagMeta, c.tagMetaErr
}

// Designers returns the designer records from the checkout's designer
// catalog (catalog/designers/*/info.pb).
func (c *Corpus) Designers() ([]*record.Designer, error) {
	c.designersOnce.Do(func() {
		catalog := filepath.Join(c.dir, "catalog", "designers")
		if _, err := os.Stat(catalog); err != nil {
			tracer().Infof("checkout has no designer catalog")
			return
		}
		c.designersErr = filepath.WalkDir(catalog, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || d.Name() != "info.pb" {
				return nil
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			designer, err := textformat.DecodeDesigner(src)
			if err != nil {
				tracer().Errorf("cannot decode %s: %v", path, err)
				return nil
			}
			c.designers = append(c.designers, designer)
			return nil
		})
	})
	return c.designers, c.designersErr
}

// Languages returns the language records from the corpus's language
// directory. A checkout without language data yields an empty set.
func (c *Corpus) Languages() ([]*record.Language, error) {
	c.languagesOnce.Do(func() {
		entries, err := os.ReadDir(c.langDir)
		if err != nil {
			tracer().Infof("checkout has no language definitions")
			return
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".textproto") {
				continue
			}
			src, err := os.ReadFile(filepath.Join(c.langDir, entry.Name()))
			if err != nil {
				c.languagesErr = err
				return
			}
			lang, err := textformat.DecodeLanguage(src)
			if err != nil {
				tracer().Errorf("cannot decode %s: %v", entry.Name(), err)
				continue
			}
			c.languages = append(c.languages, lang)
		}
	})
	return c.languages, c.languagesErr
}

// Load reads all metadata of the checkout and constructs a store from
// it.
//
// Family metadata is authoritative for which designers and languages
// exist: credited designers without a catalog profile and referenced
// language tags without a definition file get stub records, so that a
// partial checkout still satisfies the store's referential-integrity
// checks honestly.
func (c *Corpus) Load() (*store.Store, error) {
	families, err := c.Families()
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read families from %s", c.dir)
	}
	designers, err := c.Designers()
	if err != nil {
		return nil, err
	}
	languages, err := c.Languages()
	if err != nil {
		return nil, err
	}
	taggings, err := c.Taggings()
	if err != nil && core.Code(err) != core.EMISSING {
		return nil, err
	}
	tagMeta, err := c.TagMetadata()
	if err != nil && core.Code(err) != core.EMISSING {
		return nil, err
	}
	rs := store.RecordSet{
		Families:    families,
		Languages:   languages,
		Designers:   designers,
		Taggings:    taggings,
		TagMetadata: tagMeta,
	}
	completeRecordSet(&rs)
	return store.Load(rs)
}

// completeRecordSet adds stub designer and language records for
// references the checkout does not cover. Stubs go into cloned slices;
// the corpus hands out its cached record slices on every Load.
func completeRecordSet(rs *store.RecordSet) {
	rs.Designers = slices.Clone(rs.Designers)
	rs.Languages = slices.Clone(rs.Languages)
	known := make(map[string]bool, len(rs.Designers))
	for _, d := range rs.Designers {
		known[d.Name] = true
	}
	knownLang := make(map[string]bool, len(rs.Languages))
	for _, l := range rs.Languages {
		knownLang[l.Tag] = true
	}
	for _, fam := range rs.Families {
		for _, name := range fam.Designers {
			if !known[name] {
				known[name] = true
				rs.Designers = append(rs.Designers, &record.Designer{Name: name})
			}
		}
		for _, tag := range fam.Languages {
			if !knownLang[tag] {
				knownLang[tag] = true
				rs.Languages = append(rs.Languages, stubLanguage(tag))
			}
		}
	}
}

// stubLanguage derives a minimal language record from a tag like
// "en_Latn".
func stubLanguage(tag string) *record.Language {
	lang := &record.Language{Tag: tag}
	if code, script, ok := strings.Cut(tag, "_"); ok {
		lang.Language = code
		if s, err := language.ParseScript(script); err == nil {
			lang.Script = s
		}
	}
	return lang
}

// FindFontBinary locates the font file for a member font of a
// file-backed family: the font binaries live as siblings of the
// family's METADATA.pb. If the file is not part of the checkout,
// FindFontBinary falls back to searching the system font directories.
func (c *Corpus) FindFontBinary(fam *record.Family, f record.Font) (string, error) {
	if fam.Path != "" {
		fontFile := filepath.Join(filepath.Dir(fam.Path), f.Filename)
		if _, err := os.Stat(fontFile); err == nil {
			return fontFile, nil
		}
		tracer().Infof("no such file as %s", fontFile)
	}
	if fpath, err := findfont.Find(f.Filename); err == nil && fpath != "" {
		tracer().Debugf("%s is a system font", f.Filename)
		return fpath, nil
	}
	return "", core.Error(core.EMISSING, "font file %s not found", f.Filename)
}
