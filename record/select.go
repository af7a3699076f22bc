package record

import (
	xfont "golang.org/x/image/font"
)

// styleName maps x/image font styles onto the style vocabulary of the
// metadata files, which only distinguishes "normal" and "italic".
func styleName(style xfont.Style) string {
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		return "italic"
	}
	return "normal"
}

// fontScore rates how well a member font matches a style and weight
// preference. Matching the style dominates; among fonts of the right
// style, closeness to the preferred weight decides, with a slight bias
// towards heavier fonts and towards variable fonts.
func fontScore(f Font, style string, weight int) int {
	score := 0
	if f.Style == style {
		score += 16
	}
	d := f.Weight - weight
	if d < 0 {
		d = -d
	} else if d > 0 {
		score++
	}
	score -= d / 100
	if f.IsVariable() {
		score += 2
	}
	return score
}

// SelectFont returns the member font best matching a style and weight
// preference, or nil for a family without fonts. Ties go to the earlier
// font in declaration order.
func (f *Family) SelectFont(style xfont.Style, weight int) *Font {
	if len(f.Fonts) == 0 {
		return nil
	}
	sname := styleName(style)
	best := 0
	for i := 1; i < len(f.Fonts); i++ {
		if fontScore(f.Fonts[i], sname, weight) > fontScore(f.Fonts[best], sname, weight) {
			best = i
		}
	}
	tracer().Debugf("selected font %s for %s %s@%d", f.Fonts[best].Filename, f.Name, sname, weight)
	return &f.Fonts[best]
}

// Exemplar returns the font file most likely to be a representative
// choice for the family: normal style, weight as close to 400 as
// possible, a variable font if present.
func (f *Family) Exemplar() *Font {
	return f.SelectFont(xfont.StyleNormal, 400)
}
