// Package vision holds the page analysis document model: per-page text blocks
// with pixel bounding boxes and translated replacement text, as produced by a
// multimodal model and consumed by the overlay renderer.
package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"image-translator/internal/overlay"
)

// Block is one detected text region on a page.
type Block struct {
	Type string    `json:"type"`
	BBox []float64 `json:"bbox"`
	Text string    `json:"text"`
}

// Region converts the block into the renderer's region form. Unknown type
// strings collapse to "other"; a malformed bbox is passed through unchanged so
// the classifier can account for it.
func (b Block) Region() overlay.Region {
	return overlay.Region{
		BBox: b.BBox,
		Type: overlay.NormalizeBlockType(b.Type),
		Text: strings.TrimSpace(b.Text),
	}
}

// Page groups the blocks of one 1-based page.
type Page struct {
	Page   int     `json:"page"`
	Blocks []Block `json:"blocks"`
}

// Meta carries analysis-wide attributes.
type Meta struct {
	TargetLanguage string `json:"target_language,omitempty"`
}

// Document is the full analysis result for a job.
type Document struct {
	Pages []Page `json:"pages"`
	Meta  Meta   `json:"meta,omitempty"`
}

// PageRegions converts the document into renderer input, one entry per page in
// document order.
func (d *Document) PageRegions() []overlay.PageRegions {
	out := make([]overlay.PageRegions, 0, len(d.Pages))
	for _, p := range d.Pages {
		regions := make([]overlay.Region, 0, len(p.Blocks))
		for _, b := range p.Blocks {
			regions = append(regions, b.Region())
		}
		out = append(out, overlay.PageRegions{Number: p.Page, Regions: regions})
	}
	return out
}

// Parse decodes an analysis document, tolerating a surrounding markdown code
// fence as emitted by chat models.
func Parse(data []byte) (*Document, error) {
	raw := stripFence(string(data))
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse vision document: %w", err)
	}
	for i, p := range doc.Pages {
		if p.Page <= 0 {
			return nil, fmt.Errorf("vision document: entry %d has invalid page number %d", i, p.Page)
		}
	}
	return &doc, nil
}

// stripFence removes a leading ```json / trailing ``` wrapper if present.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
