// Package overlay implements the selective region overlay renderer: it decides
// which detected text regions of a page image are safe to overwrite, maps their
// pixel boxes into document point space and paints translated replacement text
// over them while leaving the rest of the page untouched.
package overlay

import (
	"math"
	"strings"
)

// BlockType classifies a detected text region.
type BlockType string

const (
	BlockHeading       BlockType = "heading"
	BlockTitle         BlockType = "title"
	BlockParagraph     BlockType = "paragraph"
	BlockCaption       BlockType = "caption"
	BlockFigureCaption BlockType = "figure_caption"
	BlockLabel         BlockType = "label"
	BlockTable         BlockType = "table"
	BlockHeader        BlockType = "header"
	BlockFooter        BlockType = "footer"
	BlockOther         BlockType = "other"
)

// NormalizeBlockType maps an upstream type string onto the closed BlockType set.
// Unknown values collapse to BlockOther.
func NormalizeBlockType(s string) BlockType {
	switch t := BlockType(strings.ToLower(strings.TrimSpace(s))); t {
	case BlockHeading, BlockTitle, BlockParagraph, BlockCaption,
		BlockFigureCaption, BlockLabel, BlockTable, BlockHeader, BlockFooter:
		return t
	default:
		return BlockOther
	}
}

// Region is one detected text block on a page: a pixel bounding box, a type and
// the replacement (translated) text. Regions are consumed once per render pass
// and never mutated.
type Region struct {
	BBox []float64 `json:"bbox"`
	Type BlockType `json:"type"`
	Text string    `json:"text"`
}

// PixelRect is a rectangle in source raster space: origin top-left, units px.
type PixelRect struct {
	X1, Y1, X2, Y2 float64
}

func (r PixelRect) Width() float64 { return r.X2 - r.X1 }
func (r PixelRect) Height() float64 { return r.Y2 - r.Y1 }
func (r PixelRect) Area() float64 { return r.Width() * r.Height() }

// Finite reports whether all four coordinates are finite numbers.
func (r PixelRect) Finite() bool {
	for _, v := range []float64{r.X1, r.Y1, r.X2, r.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Ordered reports whether the rectangle has positive extent on both axes.
func (r PixelRect) Ordered() bool { return r.X1 < r.X2 && r.Y1 < r.Y2 }

// Clamp restricts the rectangle to the raster bounds [0,w]x[0,h]. Upstream
// detections may slightly overflow the page; all ratio checks and reported
// coordinates use the clamped box.
func (r PixelRect) Clamp(w, h float64) PixelRect {
	clampVal := func(v, hi float64) float64 {
		if v < 0 {
			return 0
		}
		if v > hi {
			return hi
		}
		return v
	}
	return PixelRect{
		X1: clampVal(r.X1, w),
		Y1: clampVal(r.Y1, h),
		X2: clampVal(r.X2, w),
		Y2: clampVal(r.Y2, h),
	}
}

// Rect is a rectangle in document point space (1 pt = 1/72 inch). The output
// page shares the raster's top-left origin, so no axis flip happens here.
type Rect struct {
	X, Y, W, H float64
}

// Inset shrinks the rectangle by m points on every side. A rectangle smaller
// than the inset collapses to zero extent at its center.
func (r Rect) Inset(m float64) Rect {
	out := Rect{X: r.X + m, Y: r.Y + m, W: r.W - 2*m, H: r.H - 2*m}
	if out.W < 0 {
		out.X = r.X + r.W/2
		out.W = 0
	}
	if out.H < 0 {
		out.Y = r.Y + r.H/2
		out.H = 0
	}
	return out
}

// Intersect returns the overlap of two rectangles, or a zero-extent rectangle
// when they are disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x1 := math.Max(r.X, o.X)
	y1 := math.Max(r.Y, o.Y)
	x2 := math.Min(r.X+r.W, o.X+o.W)
	y2 := math.Min(r.Y+r.H, o.Y+o.H)
	if x2 <= x1 || y2 <= y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}
