package overlay

// Reason explains a classification decision. The vocabulary is closed: every
// skip and every approval maps to exactly one of these values, so report
// histograms stay stable across runs.
type Reason string

const (
	ReasonInvalidBlockData  Reason = "invalid_block_data"
	ReasonInvalidBBox       Reason = "invalid_bbox"
	ReasonNaNCoordinates    Reason = "nan_coordinates"
	ReasonInvalidDimensions Reason = "invalid_dimensions"
	ReasonTooSmall          Reason = "too_small"

	ReasonParagraphHeightExceeded    Reason = "paragraph_height_exceeded"
	ReasonParagraphTooLarge          Reason = "paragraph_too_large"
	ReasonSmallParagraphInAllScope   Reason = "small_paragraph_in_all_scope"
	ReasonParagraphNotAllowedInScope Reason = "paragraph_not_allowed_in_scope"

	ReasonAllowedInHeadingsScope        Reason = "allowed_in_headings_scope"
	ReasonHeadingTooLarge               Reason = "heading_too_large"
	ReasonTypeNotAllowedInHeadingsScope Reason = "type_not_allowed_in_headings_scope"

	ReasonAllowedInSafeScope        Reason = "allowed_in_safe_scope"
	ReasonBlockTooLargeForSafeScope Reason = "block_too_large_for_safe_scope"
	ReasonSmallBlockAllowedInSafe   Reason = "small_block_allowed_in_safe_scope"
	ReasonBlockNotSafe              Reason = "block_not_safe"

	ReasonAllowedInAllScope  Reason = "allowed_in_all_scope"
	ReasonGiantBBoxProtected Reason = "giant_bbox_protected"

	ReasonInvalidScope Reason = "invalid_scope"
)

// Decision is the classifier verdict for one region.
type Decision struct {
	Replace bool
	Reason  Reason
	// Box is the clamped pixel box the decision was made on. Only meaningful
	// when the bbox passed structural validation.
	Box PixelRect
}

// Classifier applies the replacement policy to detected regions. It is
// stateless and safe for concurrent use.
type Classifier struct {
	policy Policy
}

func NewClassifier(p Policy) *Classifier {
	return &Classifier{policy: p}
}

// Classify decides whether a region may be overwritten on a page of the given
// raster dimensions. Validation runs first and in a fixed order, then the
// paragraph height ceiling, then the scope rules. Ratios are computed on the
// box clamped to the page bounds.
func (c *Classifier) Classify(r Region, pageW, pageH int, scope Scope) Decision {
	if r.Text == "" {
		return Decision{Reason: ReasonInvalidBlockData}
	}
	if len(r.BBox) != 4 {
		return Decision{Reason: ReasonInvalidBBox}
	}

	box := PixelRect{X1: r.BBox[0], Y1: r.BBox[1], X2: r.BBox[2], Y2: r.BBox[3]}
	if !box.Finite() {
		return Decision{Reason: ReasonNaNCoordinates}
	}
	if !box.Ordered() {
		return Decision{Reason: ReasonInvalidDimensions}
	}

	pw, ph := float64(pageW), float64(pageH)
	box = box.Clamp(pw, ph)
	w, h := box.Width(), box.Height()
	if w <= 0 || h <= 0 {
		return Decision{Reason: ReasonInvalidDimensions, Box: box}
	}
	if w < c.policy.MinWidthPx || h < c.policy.MinHeightPx {
		return Decision{Reason: ReasonTooSmall, Box: box}
	}

	wr, hr := w/pw, h/ph
	ar := (w * h) / (pw * ph)

	// Paragraphs carry their own rules in every scope. Tall ones are
	// reflowed body text and overlaying them produces a white slab with
	// mismatched line breaks. Short ones must still be decoration-sized,
	// and even then only ScopeAll may overwrite them.
	if r.Type == BlockParagraph {
		if h > c.policy.MaxParagraphHeightPx {
			return Decision{Reason: ReasonParagraphHeightExceeded, Box: box}
		}
		if wr > c.policy.SafeMaxWidthRatio || hr > c.policy.SafeMaxHeightRatio || ar > c.policy.SafeMaxAreaRatio {
			return Decision{Reason: ReasonParagraphTooLarge, Box: box}
		}
		if scope == ScopeAll {
			return Decision{Replace: true, Reason: ReasonSmallParagraphInAllScope, Box: box}
		}
		return Decision{Reason: ReasonParagraphNotAllowedInScope, Box: box}
	}

	switch scope {
	case ScopeHeadings:
		if !c.policy.headingType(r.Type) {
			return Decision{Reason: ReasonTypeNotAllowedInHeadingsScope, Box: box}
		}
		if wr > c.policy.HeadingMaxWidthRatio || hr > c.policy.HeadingMaxHeightRatio {
			return Decision{Reason: ReasonHeadingTooLarge, Box: box}
		}
		return Decision{Replace: true, Reason: ReasonAllowedInHeadingsScope, Box: box}

	case ScopeSafe:
		if c.policy.safeType(r.Type) {
			if wr > c.policy.SafeMaxWidthRatio || hr > c.policy.SafeMaxHeightRatio || ar > c.policy.SafeMaxAreaRatio {
				return Decision{Reason: ReasonBlockTooLargeForSafeScope, Box: box}
			}
			return Decision{Replace: true, Reason: ReasonAllowedInSafeScope, Box: box}
		}
		// Unrecognized types still qualify when decoration-sized.
		if wr <= c.policy.SafeMaxWidthRatio && hr <= c.policy.SafeMaxHeightRatio && ar <= c.policy.SafeMaxAreaRatio {
			return Decision{Replace: true, Reason: ReasonSmallBlockAllowedInSafe, Box: box}
		}
		return Decision{Reason: ReasonBlockNotSafe, Box: box}

	case ScopeAll:
		// Exceeding any one axis is enough to call the box a
		// mis-detection.
		if wr > c.policy.GiantWidthRatio || hr > c.policy.GiantHeightRatio || ar > c.policy.GiantAreaRatio {
			return Decision{Reason: ReasonGiantBBoxProtected, Box: box}
		}
		return Decision{Replace: true, Reason: ReasonAllowedInAllScope, Box: box}
	}

	return Decision{Reason: ReasonInvalidScope, Box: box}
}
