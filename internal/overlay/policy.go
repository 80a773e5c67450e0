package overlay

import (
	"fmt"
	"strings"
)

// Scope selects how aggressive region replacement is.
type Scope string

const (
	// ScopeHeadings replaces headings and titles only.
	ScopeHeadings Scope = "headings"
	// ScopeSafe additionally replaces captions, labels and other short
	// decoration-sized blocks.
	ScopeSafe Scope = "safe"
	// ScopeAll replaces every block that passes validation, except
	// tall paragraphs and near-page-sized boxes.
	ScopeAll Scope = "all"
)

// ParseScope validates a scope string from config or CLI input.
func ParseScope(s string) (Scope, error) {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(s))); sc {
	case ScopeHeadings, ScopeSafe, ScopeAll:
		return sc, nil
	default:
		return "", NewError(ErrInvalidScope,
			fmt.Sprintf("unknown overlay scope %q (want headings, safe or all)", s), nil)
	}
}

// Policy holds the replacement thresholds. All ratios are relative to the page
// raster dimensions and evaluated on the clamped pixel box.
type Policy struct {
	// Minimum pixel extent for a region to be worth overlaying at all.
	MinWidthPx  float64
	MinHeightPx float64

	// Paragraphs taller than this are multi-line body text and are never
	// replaced, regardless of scope.
	MaxParagraphHeightPx float64

	// Headings scope: a heading wider or taller than these fractions of the
	// page is suspect and left alone.
	HeadingMaxWidthRatio  float64
	HeadingMaxHeightRatio float64

	// Safe scope thresholds for recognized safe types and for the generic
	// small-block rule.
	SafeMaxWidthRatio  float64
	SafeMaxHeightRatio float64
	SafeMaxAreaRatio   float64

	// All scope: a box covering nearly the whole page is almost certainly a
	// mis-detection and stays protected.
	GiantWidthRatio  float64
	GiantHeightRatio float64
	GiantAreaRatio   float64

	// Pixels of padding added around the detected box before mapping so the
	// cover fully hides antialiased glyph edges.
	CoverPadPx float64

	// Point inset between the cover rectangle and the text box inside it.
	TextInsetPt float64

	// Font fit search range, points.
	MaxFontPt float64
	MinFontPt float64

	// Hard character cap for the last-resort single-line fallback.
	FallbackMaxChars int
}

// DefaultPolicy returns the production thresholds.
func DefaultPolicy() Policy {
	return Policy{
		MinWidthPx:           8,
		MinHeightPx:          8,
		MaxParagraphHeightPx: 70,

		HeadingMaxWidthRatio:  0.80,
		HeadingMaxHeightRatio: 0.18,

		SafeMaxWidthRatio:  0.55,
		SafeMaxHeightRatio: 0.10,
		SafeMaxAreaRatio:   0.04,

		GiantWidthRatio:  0.90,
		GiantHeightRatio: 0.90,
		GiantAreaRatio:   0.80,

		CoverPadPx:  2,
		TextInsetPt: 2,

		MaxFontPt:        12,
		MinFontPt:        6,
		FallbackMaxChars: 50,
	}
}

// safeTypes are the recognized short, display-oriented block types eligible
// under ScopeSafe without the generic size rule.
func (p Policy) safeType(t BlockType) bool {
	switch t {
	case BlockHeading, BlockTitle, BlockCaption, BlockFigureCaption, BlockLabel:
		return true
	}
	return false
}

func (p Policy) headingType(t BlockType) bool {
	return t == BlockHeading || t == BlockTitle
}
