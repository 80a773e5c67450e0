package overlay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"codeberg.org/go-pdf/fpdf"

	"image-translator/internal/logger"
	"image-translator/internal/raster"
)

// Phase tracks document pipeline progress for status reporting.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseLoadingPage Phase = "loading_background"
	PhaseClassifying Phase = "classifying_regions"
	PhaseRendering   Phase = "rendering"
	PhaseDone        Phase = "done"
	PhaseFailed      Phase = "failed"
)

// RasterSource resolves 1-based page numbers to decoded background rasters.
type RasterSource interface {
	Page(n int) (*raster.Page, error)
}

// PageRegions pairs a 1-based page number with its detected regions.
type PageRegions struct {
	Number  int
	Regions []Region
}

// Pipeline renders a whole document. A missing or undecodable background
// raster is the only fatal condition; every region-level problem is absorbed
// into the report.
type Pipeline struct {
	policy Policy
	mapper Mapper
	page   *PagePipeline

	mu    sync.Mutex
	phase Phase
}

// NewPipeline builds a document pipeline for rasters rendered at dpi.
func NewPipeline(policy Policy, dpi int) (*Pipeline, error) {
	mapper, err := NewMapper(dpi)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		policy: policy,
		mapper: mapper,
		page:   NewPagePipeline(policy, mapper),
		phase:  PhaseIdle,
	}, nil
}

// Phase returns the current pipeline phase. Safe for concurrent use.
func (p *Pipeline) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

func (p *Pipeline) setPhase(ph Phase) {
	p.mu.Lock()
	p.phase = ph
	p.mu.Unlock()
	logger.Debug("pipeline phase", logger.String("phase", string(ph)))
}

// Render produces the overlaid PDF bytes and the replacement report. Pages
// are emitted in ascending page-number order regardless of input order.
func (p *Pipeline) Render(ctx context.Context, src RasterSource, pages []PageRegions, scope Scope, debug bool) ([]byte, *Report, error) {
	ordered := make([]PageRegions, len(pages))
	copy(ordered, pages)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetCellMargin(0)
	doc.SetAutoPageBreak(false, 0)

	rep := NewReport()

	for _, pg := range ordered {
		if err := ctx.Err(); err != nil {
			p.setPhase(PhaseFailed)
			return nil, rep, err
		}

		p.setPhase(PhaseLoadingPage)
		bg, err := src.Page(pg.Number)
		if err != nil {
			p.setPhase(PhaseFailed)
			code := ErrRasterDecode
			if errors.Is(err, os.ErrNotExist) {
				code = ErrRasterMissing
			}
			return nil, rep, NewPageError(code,
				fmt.Sprintf("load background for page %d", pg.Number), pg.Number, err)
		}

		p.setPhase(PhaseClassifying)
		p.setPhase(PhaseRendering)
		p.page.Render(doc, PageInput{Number: pg.Number, Raster: bg, Regions: pg.Regions}, scope, debug, rep)

		logger.Info("page rendered",
			logger.Int("page", pg.Number),
			logger.Int("regions", len(pg.Regions)),
			logger.Int("replaced_total", rep.ReplacedBlocks))
	}

	if doc.Err() {
		p.setPhase(PhaseFailed)
		return nil, rep, NewError(ErrRenderFailed, "pdf backend error", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		p.setPhase(PhaseFailed)
		return nil, rep, NewError(ErrRenderFailed, "write pdf output", err)
	}

	p.setPhase(PhaseDone)
	logger.Info("document rendered",
		logger.Int("pages", len(ordered)),
		logger.Int("total_blocks", rep.TotalBlocks),
		logger.Int("replaced_blocks", rep.ReplacedBlocks),
		logger.Int("skipped_blocks", rep.SkippedBlocks))
	return buf.Bytes(), rep, nil
}
