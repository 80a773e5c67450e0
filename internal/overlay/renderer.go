package overlay

import (
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	coverFont  = "Helvetica"
	lineRatio  = 1.2
	debugFont  = 5.0
	ellipsisTx = "..."
)

// Renderer draws a single approved region onto the current PDF page: a white
// cover rectangle followed by the replacement text fitted inside it. Rendering
// a region never fails; text that cannot fit is degraded, not dropped.
type Renderer struct {
	policy Policy
	enc    *encoding.Encoder
}

func NewRenderer(p Policy) *Renderer {
	return &Renderer{
		policy: p,
		// Core PDF fonts use cp1252; unmappable runes are substituted
		// instead of failing the region.
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}
}

// Render paints the region cover and text at rect. In debug mode nothing is
// covered: the rectangle is outlined and annotated instead, so the original
// page content stays visible underneath.
func (r *Renderer) Render(doc *fpdf.Fpdf, rect Rect, reg Region, page, blockIndex int, debug bool) {
	if debug {
		r.renderDebug(doc, rect, reg, page, blockIndex)
		return
	}

	doc.SetFillColor(255, 255, 255)
	doc.Rect(rect.X, rect.Y, rect.W, rect.H, "F")

	text := r.sanitize(reg.Text)
	if text == "" {
		return
	}

	inner := rect.Inset(r.policy.TextInsetPt)
	if inner.W <= 0 || inner.H <= 0 {
		inner = rect
	}

	doc.SetTextColor(0, 0, 0)

	// Descending font fit: largest size whose wrapped form fits wins.
	for size := r.policy.MaxFontPt; size >= r.policy.MinFontPt; size-- {
		if r.drawFitted(doc, inner, text, size) {
			return
		}
	}

	// Retry once at minimum size with the text cut to half length.
	short := truncateRunes(text, len([]rune(text))/2) + ellipsisTx
	if r.drawFitted(doc, inner, short, r.policy.MinFontPt) {
		return
	}

	// Last resort: one hard-capped line at minimum size, anchored at the
	// cover's bottom-left so the region is never left blank.
	doc.SetFont(coverFont, "", r.policy.MinFontPt)
	doc.Text(rect.X+r.policy.TextInsetPt, rect.Y+rect.H-5, r.fallbackLine(text))
}

// fallbackLine caps the single-line fallback, marking the cut with an
// ellipsis.
func (r *Renderer) fallbackLine(text string) string {
	if len([]rune(text)) <= r.policy.FallbackMaxChars {
		return text
	}
	return truncateRunes(text, r.policy.FallbackMaxChars) + ellipsisTx
}

// drawFitted wraps text at the given size and draws it when the wrapped block
// fits inside box. Reports whether it drew.
func (r *Renderer) drawFitted(doc *fpdf.Fpdf, box Rect, text string, size float64) bool {
	doc.SetFont(coverFont, "", size)
	lines := doc.SplitText(text, box.W)
	if len(lines) == 0 {
		return false
	}
	lineHt := size * lineRatio
	if float64(len(lines))*lineHt > box.H {
		return false
	}
	for _, line := range lines {
		if doc.GetStringWidth(line) > box.W {
			return false
		}
	}
	doc.SetXY(box.X, box.Y)
	doc.MultiCell(box.W, lineHt, text, "", "L", false)
	return true
}

func (r *Renderer) renderDebug(doc *fpdf.Fpdf, rect Rect, reg Region, page, blockIndex int) {
	doc.SetDrawColor(220, 30, 30)
	doc.SetLineWidth(0.6)
	doc.Rect(rect.X, rect.Y, rect.W, rect.H, "D")

	doc.SetFont(coverFont, "", debugFont)
	doc.SetTextColor(220, 30, 30)
	label := fmt.Sprintf("p%d b%d %s", page, blockIndex, reg.Type)
	y := rect.Y - 1.5
	if y < debugFont {
		y = rect.Y + debugFont
	}
	doc.Text(rect.X, y, label)
}

// sanitize collapses control whitespace and transcodes to the core-font
// codepage.
func (r *Renderer) sanitize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	out, err := r.enc.String(s)
	if err != nil {
		return s
	}
	return out
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
