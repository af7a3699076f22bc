package corpus

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/gfmeta/core"
	"github.com/npillmayer/gfmeta/record"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// GoogleFontInfo describes one family as listed by the Google webfont
// service.
type GoogleFontInfo struct {
	Family   string            `json:"family"`
	Version  string            `json:"version"`
	Variants []string          `json:"variants"`
	Subsets  []string          `json:"subsets"`
	Files    map[string]string `json:"files"`
}

type googleFontsList struct {
	Items []GoogleFontInfo `json:"items"`
}

var loadGoogleFontsDir sync.Once
var googleFontsDirectory googleFontsList
var googleFontsLoadError error
var googleFontsAPI string = `https://www.googleapis.com/webfonts/v1/webfonts?`

// SetupGoogleFontsDirectory downloads the font directory from the
// Google webfont service, once per process. The API key is taken from
// the global configuration (key 'google-api-key') or from the
// GOOGLE_API_KEY environment variable.
func SetupGoogleFontsDirectory() error {
	loadGoogleFontsDir.Do(func() {
		apikey := gconf.GetString("google-api-key")
		if apikey == "" {
			apikey = os.Getenv("GOOGLE_API_KEY")
		}
		if apikey == "" {
			err := errors.New("Google API key not set")
			tracer().Errorf(err.Error())
			googleFontsLoadError = core.WrapError(err, core.EMISSING,
				`Google Fonts API-key must be set in global configuration or as GOOGLE_API_KEY in environment;
      please refer to https://developers.google.com/fonts/docs/developer_api`)
			return
		}
		values := url.Values{
			"sort": []string{"alpha"},
			"key":  []string{apikey},
		}
		resp, err := http.Get(googleFontsAPI + values.Encode())
		if err != nil {
			tracer().Errorf("Google Fonts API request not OK: %s", err.Error())
			googleFontsLoadError = core.WrapError(err, core.ECONNECTION,
				"could not get fonts-directory from Google font service")
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			tracer().Errorf("Google Fonts API request not OK: %v", resp.Status)
			err := core.Error(resp.StatusCode, "response: %v", resp.Status)
			googleFontsLoadError = core.WrapError(err, core.ECONNECTION,
				"could not get fonts-directory from Google font service")
			return
		}
		dec := json.NewDecoder(resp.Body)
		err = dec.Decode(&googleFontsDirectory)
		if err != nil {
			googleFontsLoadError = core.WrapError(err, core.EINVALID,
				"could not decode fonts-list from Google font service")
		}
	})
	return googleFontsLoadError
}

// WebFamilies produces partial family records from the webfont-service
// directory, for family names matching a given pattern. The service
// does not expose categories, designers or axes, so the records carry
// name, subsets and variant-derived fonts only.
//
// If not already done, the list of fonts will be downloaded from Google.
func WebFamilies(pattern string) ([]*record.Family, error) {
	if err := SetupGoogleFontsDirectory(); err != nil {
		return nil, err
	}
	r, err := regexp.Compile(pattern)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid family name pattern")
	}
	var families []*record.Family
	for _, finfo := range googleFontsDirectory.Items {
		if !r.MatchString(finfo.Family) {
			continue
		}
		families = append(families, webFamily(finfo))
	}
	return families, nil
}

func webFamily(finfo GoogleFontInfo) *record.Family {
	fam := &record.Family{
		Name:    finfo.Family,
		Subsets: finfo.Subsets,
	}
	for _, v := range finfo.Variants {
		style, weight := parseVariant(v)
		fam.Fonts = append(fam.Fonts, record.Font{
			Name:     finfo.Family,
			Style:    style,
			Weight:   weight,
			Filename: finfo.Files[v],
		})
	}
	return fam
}

// parseVariant splits a webfont variant name like "regular", "italic"
// or "700italic" into the metadata style/weight vocabulary.
func parseVariant(v string) (style string, weight int) {
	style, weight = "normal", 400
	if strings.Contains(v, "italic") {
		style = "italic"
		v = strings.ReplaceAll(v, "italic", "")
	}
	if w, err := strconv.Atoi(v); err == nil {
		weight = w
	}
	return
}

// ListGoogleFonts produces a listing of available fonts from the Google
// webfont service, with font-family names matching a given pattern.
//
// If not already done, the list of fonts will be downloaded from Google.
func ListGoogleFonts(pattern string) {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	if err := SetupGoogleFontsDirectory(); err != nil {
		tracer().Errorf(core.UserMessage(err))
	} else {
		listGoogleFonts(googleFontsDirectory, pattern)
	}
	tracer().SetTraceLevel(level)
}

func listGoogleFonts(list googleFontsList, pattern string) {
	r, err := regexp.Compile(pattern)
	if err != nil {
		tracer().Errorf("cannot list Google fonts: invalid pattern: %v", err)
		return
	}
	tracer().Infof("%d fonts in list", len(list.Items))
	tracer().Infof("======================================")
	for i, finfo := range list.Items {
		if r.MatchString(finfo.Family) {
			tracer().Infof("[%4d] %-20s: %s", i, finfo.Family, finfo.Version)
			tracer().Infof("       subsets: %v", finfo.Subsets)
			for k, v := range finfo.Files {
				tracer().Infof("       - %-18s: %s", k, v[len(v)-4:])
			}
		}
	}
}

// CacheGoogleFont downloads the font file for one variant of a webfont
// directory entry into the user's cache directory and returns the local
// path. An already cached file is not downloaded again.
func CacheGoogleFont(fi GoogleFontInfo, variant string) (string, error) {
	fileURL, ok := fi.Files[variant]
	if !ok {
		return "", core.Error(core.EMISSING, "webfont %s has no variant %q", fi.Family, variant)
	}
	cachedir, err := CacheDirPath("fonts")
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "cannot locate cache directory for fonts")
	}
	ext := filepath.Ext(fileURL)
	if ext == "" {
		ext = ".ttf"
	}
	filename := strings.ReplaceAll(fi.Family, " ", "") + "-" + variant + ext
	fontpath := filepath.Join(cachedir, filename)
	if _, err := os.Stat(fontpath); err == nil {
		tracer().Debugf("webfont %s already cached", filename)
		return fontpath, nil
	}
	if err := DownloadCachedFile(fontpath, fileURL); err != nil {
		return "", core.WrapError(err, core.ECONNECTION,
			"cannot download webfont %s", fi.Family)
	}
	return fontpath, nil
}
