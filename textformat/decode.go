package textformat

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/gfmeta/core"
	"github.com/npillmayer/gfmeta/record"
	"golang.org/x/text/language"
)

// field is one entry of a decoded textproto message: either a scalar
// (key plus raw value text) or a nested message (key plus sub-fields).
type field struct {
	key    string
	scalar string
	msg    []field
}

// positionPattern matches the undocumented 'position' blocks some
// METADATA.pb files carry. They are stripped before parsing.
var positionPattern = regexp.MustCompile(`(?m)position\s+\{[^}]*\}`)

// parse reads a textproto fragment into a flat field list, recursing
// into nested blocks. Unknown keys are kept; deciding what to use is
// the caller's business.
func parse(src []byte) ([]field, error) {
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	fields, _, err := parseBlock(sc, 0, 0)
	return fields, err
}

func parseBlock(sc *bufio.Scanner, line, depth int) ([]field, int, error) {
	var fields []field
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if text == "}" {
			if depth == 0 {
				return nil, line, core.Error(core.EINVALID, "unbalanced '}' in line %d", line)
			}
			return fields, line, nil
		}
		if strings.HasSuffix(text, "{") {
			key := strings.TrimSpace(strings.TrimSuffix(text, "{"))
			key = strings.TrimSuffix(key, ":") // 'key: {' is legal, too
			sub, l, err := parseBlock(sc, line, depth+1)
			if err != nil {
				return nil, l, err
			}
			line = l
			fields = append(fields, field{key: key, msg: sub})
			continue
		}
		key, value, ok := strings.Cut(text, ":")
		if !ok {
			return nil, line, core.Error(core.EINVALID, "unparseable line %d: %q", line, text)
		}
		fields = append(fields, field{key: strings.TrimSpace(key), scalar: strings.TrimSpace(value)})
	}
	if err := sc.Err(); err != nil {
		return nil, line, core.WrapError(err, core.EINVALID, "cannot scan metadata input")
	}
	if depth != 0 {
		return nil, line, core.Error(core.EINVALID, "missing '}' at end of input")
	}
	return fields, line, nil
}

// unquote decodes a textproto string value. Unquoted tokens (enums,
// numbers) pass through as-is.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}

func intValue(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		tracer().Debugf("metadata value %q is not an integer", s)
	}
	return n
}

func floatValue(s string) float64 {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		tracer().Debugf("metadata value %q is not a number", s)
	}
	return x
}

func scriptValue(s string) language.Script {
	script, err := language.ParseScript(s)
	if err != nil {
		tracer().Infof("unrecognized script identifier %q", s)
		return language.Script{}
	}
	return script
}

// DecodeFamily reads a family record from METADATA.pb file content.
//
// Undocumented 'position' blocks are stripped before parsing; other
// unknown fields are skipped silently.
func DecodeFamily(src []byte) (*record.Family, error) {
	if bytes.Contains(src, []byte("position")) {
		src = positionPattern.ReplaceAll(src, nil)
	}
	fields, err := parse(src)
	if err != nil {
		return nil, err
	}
	fam := &record.Family{}
	for _, f := range fields {
		switch f.key {
		case "name":
			fam.Name = unquote(f.scalar)
		case "display_name":
			fam.DisplayName = unquote(f.scalar)
		case "designer":
			fam.Designers = append(fam.Designers, splitNames(unquote(f.scalar))...)
		case "license":
			fam.License = unquote(f.scalar)
		case "category":
			fam.Category = record.ParseCategory(unquote(f.scalar))
		case "classifications":
			fam.Classifications = append(fam.Classifications, unquote(f.scalar))
		case "date_added":
			fam.DateAdded = unquote(f.scalar)
		case "subsets":
			fam.Subsets = append(fam.Subsets, unquote(f.scalar))
		case "languages":
			fam.Languages = append(fam.Languages, unquote(f.scalar))
		case "primary_script":
			fam.PrimaryScript = scriptValue(unquote(f.scalar))
		case "primary_language":
			fam.PrimaryLanguage = unquote(f.scalar)
		case "fonts":
			fam.Fonts = append(fam.Fonts, decodeFont(f.msg))
		case "axes":
			fam.Axes = append(fam.Axes, decodeAxis(f.msg))
		}
	}
	if fam.Name == "" {
		return nil, core.Error(core.EINVALID, "family metadata without a name")
	}
	tracer().Debugf("decoded family %s with %d fonts", fam.Name, len(fam.Fonts))
	return fam, nil
}

// splitNames splits a multi-designer credit like "Sol Matas, Juan Pablo
// del Peral" into individual names.
func splitNames(s string) []string {
	parts := strings.Split(s, ",")
	names := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

func decodeFont(fields []field) record.Font {
	font := record.Font{}
	for _, f := range fields {
		switch f.key {
		case "name":
			font.Name = unquote(f.scalar)
		case "style":
			font.Style = unquote(f.scalar)
		case "weight":
			font.Weight = intValue(f.scalar)
		case "filename":
			font.Filename = unquote(f.scalar)
		case "post_script_name":
			font.PostScriptName = unquote(f.scalar)
		case "full_name":
			font.FullName = unquote(f.scalar)
		case "copyright":
			font.Copyright = unquote(f.scalar)
		}
	}
	return font
}

func decodeAxis(fields []field) record.Axis {
	axis := record.Axis{}
	for _, f := range fields {
		switch f.key {
		case "tag":
			axis.Tag = unquote(f.scalar)
		case "min_value":
			axis.MinValue = floatValue(f.scalar)
		case "max_value":
			axis.MaxValue = floatValue(f.scalar)
		}
	}
	return axis
}

// DecodeDesigner reads a designer record from an info.pb file of the
// repository's designer catalog.
func DecodeDesigner(src []byte) (*record.Designer, error) {
	fields, err := parse(src)
	if err != nil {
		return nil, err
	}
	designer := &record.Designer{}
	for _, f := range fields {
		switch f.key {
		case "designer":
			designer.Name = unquote(f.scalar)
		case "link":
			designer.Link = unquote(f.scalar)
		case "bio":
			designer.Bio = unquote(f.scalar)
		case "avatar":
			for _, sub := range f.msg {
				if sub.key == "file_name" {
					designer.Avatar = unquote(sub.scalar)
				}
			}
		}
	}
	if designer.Name == "" {
		return nil, core.Error(core.EINVALID, "designer info without a name")
	}
	return designer, nil
}

// DecodeLanguage reads a language record from a language definition
// textproto of the repository's lang/ data.
func DecodeLanguage(src []byte) (*record.Language, error) {
	fields, err := parse(src)
	if err != nil {
		return nil, err
	}
	lang := &record.Language{}
	for _, f := range fields {
		switch f.key {
		case "id":
			lang.Tag = unquote(f.scalar)
		case "language":
			lang.Language = unquote(f.scalar)
		case "script":
			lang.Script = scriptValue(unquote(f.scalar))
		case "name":
			lang.Name = unquote(f.scalar)
		case "population":
			lang.Population = int64(intValue(f.scalar))
		case "sample_text":
			lang.SampleText = decodeSampleText(f.msg)
		}
	}
	if lang.Tag == "" {
		return nil, core.Error(core.EINVALID, "language definition without an id")
	}
	return lang, nil
}

func decodeSampleText(fields []field) record.SampleText {
	st := record.SampleText{}
	for _, f := range fields {
		switch f.key {
		case "masthead_full":
			st.MastheadFull = unquote(f.scalar)
		case "masthead_partial":
			st.MastheadPartial = unquote(f.scalar)
		case "styles":
			st.Styles = unquote(f.scalar)
		case "tester":
			st.Tester = unquote(f.scalar)
		case "poster_sm":
			st.PosterSm = unquote(f.scalar)
		case "poster_md":
			st.PosterMd = unquote(f.scalar)
		case "poster_lg":
			st.PosterLg = unquote(f.scalar)
		case "specimen_48":
			st.Specimen48 = unquote(f.scalar)
		case "specimen_36":
			st.Specimen36 = unquote(f.scalar)
		case "specimen_32":
			st.Specimen32 = unquote(f.scalar)
		case "specimen_21":
			st.Specimen21 = unquote(f.scalar)
		case "specimen_16":
			st.Specimen16 = unquote(f.scalar)
		}
	}
	return st
}
