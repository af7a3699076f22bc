package corpus

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

const exampleRespFragm string = `
{
    "kind": "webfonts#webfontList",
    "items": [
        {
            "kind": "webfonts#webfont",
            "family": "Anonymous Pro",
            "variants": [
                "regular",
                "italic",
                "700",
                "700italic"
            ],
            "subsets": [
                "greek",
                "latin",
                "cyrillic"
            ],
            "version": "v3",
            "lastModified": "2012-07-25",
            "files": {
                "regular": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/Zhfjj.ttf",
                "italic": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/q0u6L.ttf",
                "700": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/WDf5l.ttf",
                "700italic": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/_fVr_.ttf"
            }
        },
        {
            "kind": "webfonts#webfont",
            "family": "Antic",
            "variants": [
                "regular"
            ],
            "subsets": [
                "latin"
            ],
            "version": "v4",
            "lastModified": "2012-07-25",
            "files": {
                "regular": "http://themes.googleusercontent.com/static/fonts/antic/v4/hEa8X.ttf"
            }
        }
    ]
}
`

func TestGoogleRespDecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.corpus")
	defer teardown()
	//
	dec := json.NewDecoder(strings.NewReader(exampleRespFragm))
	var list googleFontsList
	require.NoError(t, dec.Decode(&list))
	require.Len(t, list.Items, 2)
	listGoogleFonts(list, ".*")
}

func TestWebFamilyConversion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.corpus")
	defer teardown()
	//
	dec := json.NewDecoder(strings.NewReader(exampleRespFragm))
	var list googleFontsList
	require.NoError(t, dec.Decode(&list))
	//
	fam := webFamily(list.Items[0])
	assert.Equal(t, "Anonymous Pro", fam.Name)
	assert.Equal(t, []string{"greek", "latin", "cyrillic"}, fam.Subsets)
	require.Len(t, fam.Fonts, 4)
	bold := fam.SelectFont(xfont.StyleNormal, 700)
	require.NotNil(t, bold)
	assert.Equal(t, 700, bold.Weight)
	assert.Equal(t, "normal", bold.Style)
}
