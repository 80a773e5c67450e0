package overlay

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"image-translator/internal/logger"
	"image-translator/internal/raster"
)

// PageInput bundles everything needed to render one output page: its 1-based
// number, the decoded background raster and the detected regions.
type PageInput struct {
	Number  int
	Raster  *raster.Page
	Regions []Region
}

// PagePipeline renders one page: background image first, then per-region
// classify, map and overlay. Region-level problems are recorded in the report
// and never abort the page.
type PagePipeline struct {
	policy     Policy
	mapper     Mapper
	classifier *Classifier
	renderer   *Renderer
}

func NewPagePipeline(policy Policy, mapper Mapper) *PagePipeline {
	return &PagePipeline{
		policy:     policy,
		mapper:     mapper,
		classifier: NewClassifier(policy),
		renderer:   NewRenderer(policy),
	}
}

// Render appends one page to doc and processes its regions in input order.
func (p *PagePipeline) Render(doc *fpdf.Fpdf, in PageInput, scope Scope, debug bool, rep *Report) {
	wPt, hPt := p.mapper.PageSize(in.Raster.Width, in.Raster.Height)
	doc.AddPageFormat("P", fpdf.SizeType{Wd: wPt, Ht: hPt})

	opts := fpdf.ImageOptions{ImageType: in.Raster.Format}
	name := fmt.Sprintf("page_%d_bg", in.Number)
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(in.Raster.Data))
	doc.ImageOptions(name, 0, 0, wPt, hPt, false, opts, 0, "")

	for i, reg := range in.Regions {
		dec := p.classifier.Classify(reg, in.Raster.Width, in.Raster.Height, scope)
		if !dec.Replace {
			rep.AddSkip(dec.Reason)
			logger.Debug("region skipped",
				logger.Int("page", in.Number),
				logger.Int("block", i),
				logger.String("type", string(reg.Type)),
				logger.String("reason", string(dec.Reason)))
			continue
		}

		cover := p.mapper.CoverRect(dec.Box, p.policy.CoverPadPx, in.Raster.Width, in.Raster.Height)
		if cover.W <= 0 || cover.H <= 0 {
			rep.AddSkip(ReasonInvalidDimensions)
			continue
		}

		p.renderer.Render(doc, cover, reg, in.Number, i, debug)
		rep.AddReplaced(ReplacedDetail{
			Page:       in.Number,
			BlockIndex: i,
			Type:       reg.Type,
			BBoxPx: [4]int{
				int(dec.Box.X1), int(dec.Box.Y1),
				int(dec.Box.X2), int(dec.Box.Y2),
			},
			DimensionsPx: Dimensions{
				Width:  int(dec.Box.Width()),
				Height: int(dec.Box.Height()),
			},
			ReplacementReason: dec.Reason,
		})
	}
}
