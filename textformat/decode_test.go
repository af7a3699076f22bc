package textformat

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/npillmayer/gfmeta/record"
)

const robotoMetadata = `name: "Roboto"
designer: "Christian Robertson"
license: "APACHE2"
category: "SANS_SERIF"
date_added: "2015-03-15"
fonts {
  name: "Roboto"
  style: "normal"
  weight: 400
  filename: "Roboto[wdth,wght].ttf"
  post_script_name: "Roboto-Regular"
  full_name: "Roboto Regular"
  copyright: "Copyright 2011 Google Inc. All Rights Reserved."
}
fonts {
  name: "Roboto"
  style: "italic"
  weight: 400
  filename: "Roboto-Italic[wdth,wght].ttf"
  post_script_name: "Roboto-Italic"
  full_name: "Roboto Italic"
}
subsets: "cyrillic"
subsets: "latin"
subsets: "menu"
axes {
  tag: "wdth"
  min_value: 75.0
  max_value: 100.0
}
axes {
  tag: "wght"
  min_value: 100.0
  max_value: 900.0
}
languages: "en_Latn"
source {
  repository_url: "https://github.com/googlefonts/roboto-2"
}
`

// Some METADATA.pb files carry an undocumented position block, which
// the decoder has to strip before parsing.
const wixLikeMetadata = `name: "Wix Madefor Text"
designer: "Nikolas Type"
category: "SANS_SERIF"
fonts {
  name: "Wix Madefor Text"
  style: "normal"
  weight: 400
  filename: "WixMadeforText[wght].ttf"
}
position {
  angle: 45.0
  pole: 1
}
subsets: "latin"
`

func TestDecodeFamily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.decode")
	defer teardown()
	//
	fam, err := DecodeFamily([]byte(robotoMetadata))
	require.NoError(t, err)
	assert.Equal(t, "Roboto", fam.Name)
	assert.Equal(t, record.SansSerif, fam.Category)
	assert.Equal(t, []string{"Christian Robertson"}, fam.Designers)
	assert.Equal(t, []string{"cyrillic", "latin", "menu"}, fam.Subsets)
	assert.Equal(t, []string{"en_Latn"}, fam.Languages)
	require.Len(t, fam.Fonts, 2)
	assert.Equal(t, 400, fam.Fonts[0].Weight)
	assert.Equal(t, "Roboto-Regular", fam.Fonts[0].PostScriptName)
	assert.True(t, fam.Fonts[0].IsVariable())
	require.Len(t, fam.Axes, 2)
	assert.Equal(t, record.Axis{Tag: "wdth", MinValue: 75, MaxValue: 100}, fam.Axes[0])
	assert.Equal(t, record.Axis{Tag: "wght", MinValue: 100, MaxValue: 900}, fam.Axes[1])
}

func TestDecodeFamilyWithPositionBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.decode")
	defer teardown()
	//
	fam, err := DecodeFamily([]byte(wixLikeMetadata))
	require.NoError(t, err)
	assert.Equal(t, "Wix Madefor Text", fam.Name)
	require.Len(t, fam.Fonts, 1)
	assert.Equal(t, "WixMadeforText[wght].ttf", fam.Fonts[0].Filename)
}

func TestDecodeFamilyMultipleDesigners(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.decode")
	defer teardown()
	//
	fam, err := DecodeFamily([]byte(`name: "Bitter"
designer: "Sol Matas, Huerta Tipografica"
category: "SERIF"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sol Matas", "Huerta Tipografica"}, fam.Designers)
}

func TestDecodeFamilyPrimaryScript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.decode")
	defer teardown()
	//
	fam, err := DecodeFamily([]byte(`name: "Kosugi Maru"
category: "SANS_SERIF"
primary_script: "Jpan"
primary_language: "Invalid"
`))
	require.NoError(t, err)
	assert.True(t, fam.HasPrimaryScript())
	assert.Equal(t, "Jpan", fam.PrimaryScript.String())
	assert.Equal(t, "Invalid", fam.PrimaryLanguage)
}

func TestDecodeFamilyWithoutName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.decode")
	defer teardown()
	//
	_, err := DecodeFamily([]byte(`category: "SERIF"`))
	require.Error(t, err)
}

func TestDecodeFamilyUnbalancedBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.decode")
	defer teardown()
	//
	_, err := DecodeFamily([]byte("name: \"X\"\nfonts {\n  weight: 400\n"))
	require.Error(t, err)
}

func TestDecodeDesigner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.decode")
	defer teardown()
	//
	d, err := DecodeDesigner([]byte(`designer: "Christian Robertson"
link: ""
avatar {
  file_name: "christian_robertson.png"
}
`))
	require.NoError(t, err)
	assert.Equal(t, "Christian Robertson", d.Name)
	assert.Equal(t, "christian_robertson.png", d.Avatar)
}

func TestDecodeLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.decode")
	defer teardown()
	//
	lang, err := DecodeLanguage([]byte(`id: "en_Latn"
language: "en"
script: "Latn"
name: "English"
population: 1636485517
sample_text {
  masthead_full: "Whe"
  styles: "Competently product whereas"
  tester: "White sheep"
}
`))
	require.NoError(t, err)
	assert.Equal(t, "en_Latn", lang.Tag)
	assert.Equal(t, language.MustParseScript("Latn"), lang.Script)
	assert.Equal(t, int64(1636485517), lang.Population)
	assert.Equal(t, "White sheep", lang.SampleText.Tester)
}
