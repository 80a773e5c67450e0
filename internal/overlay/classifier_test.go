package overlay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testPageW = 1000
	testPageH = 1000
)

func region(t BlockType, x1, y1, x2, y2 float64) Region {
	return Region{Type: t, Text: "translated", BBox: []float64{x1, y1, x2, y2}}
}

func TestClassifierValidation(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	tests := []struct {
		name   string
		region Region
		want   Reason
	}{
		{
			name:   "empty text",
			region: Region{Type: BlockHeading, BBox: []float64{10, 10, 200, 60}},
			want:   ReasonInvalidBlockData,
		},
		{
			name:   "bbox too short",
			region: Region{Type: BlockHeading, Text: "x", BBox: []float64{10, 10, 200}},
			want:   ReasonInvalidBBox,
		},
		{
			name:   "bbox nil",
			region: Region{Type: BlockHeading, Text: "x"},
			want:   ReasonInvalidBBox,
		},
		{
			name:   "nan coordinate",
			region: region(BlockHeading, 10, math.NaN(), 200, 60),
			want:   ReasonNaNCoordinates,
		},
		{
			name:   "infinite coordinate",
			region: region(BlockHeading, 10, 10, math.Inf(1), 60),
			want:   ReasonNaNCoordinates,
		},
		{
			name:   "zero width",
			region: region(BlockHeading, 100, 10, 100, 60),
			want:   ReasonInvalidDimensions,
		},
		{
			name:   "inverted y",
			region: region(BlockHeading, 10, 60, 200, 10),
			want:   ReasonInvalidDimensions,
		},
		{
			name:   "below minimum size",
			region: region(BlockHeading, 10, 10, 15, 15),
			want:   ReasonTooSmall,
		},
		{
			name:   "entirely outside page collapses under clamping",
			region: region(BlockHeading, 1200, 1200, 1400, 1300),
			want:   ReasonInvalidDimensions,
		},
	}

	// Validation outcomes do not depend on scope.
	for _, scope := range []Scope{ScopeHeadings, ScopeSafe, ScopeAll} {
		for _, tt := range tests {
			t.Run(string(scope)+"/"+tt.name, func(t *testing.T) {
				dec := c.Classify(tt.region, testPageW, testPageH, scope)
				assert.False(t, dec.Replace)
				assert.Equal(t, tt.want, dec.Reason)
			})
		}
	}
}

func TestClassifierParagraphRules(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	t.Run("tall paragraph rejected in every scope", func(t *testing.T) {
		tall := region(BlockParagraph, 10, 10, 300, 90) // 80px tall
		for _, scope := range []Scope{ScopeHeadings, ScopeSafe, ScopeAll} {
			t.Run(string(scope), func(t *testing.T) {
				dec := c.Classify(tall, testPageW, testPageH, scope)
				assert.False(t, dec.Replace)
				assert.Equal(t, ReasonParagraphHeightExceeded, dec.Reason)
			})
		}
	})

	t.Run("small paragraph approved only under all", func(t *testing.T) {
		small := region(BlockParagraph, 100, 100, 300, 150) // 200x50

		dec := c.Classify(small, testPageW, testPageH, ScopeHeadings)
		assert.False(t, dec.Replace)
		assert.Equal(t, ReasonParagraphNotAllowedInScope, dec.Reason)

		dec = c.Classify(small, testPageW, testPageH, ScopeSafe)
		assert.False(t, dec.Replace)
		assert.Equal(t, ReasonParagraphNotAllowedInScope, dec.Reason)

		dec = c.Classify(small, testPageW, testPageH, ScopeAll)
		assert.True(t, dec.Replace)
		assert.Equal(t, ReasonSmallParagraphInAllScope, dec.Reason)
	})

	t.Run("wide short paragraph rejected even under all", func(t *testing.T) {
		wide := region(BlockParagraph, 50, 100, 750, 160) // 700x60, width ratio 0.70
		for _, scope := range []Scope{ScopeHeadings, ScopeSafe, ScopeAll} {
			t.Run(string(scope), func(t *testing.T) {
				dec := c.Classify(wide, testPageW, testPageH, scope)
				assert.False(t, dec.Replace)
				assert.Equal(t, ReasonParagraphTooLarge, dec.Reason)
			})
		}
	})

	t.Run("paragraph over the area ratio rejected", func(t *testing.T) {
		big := region(BlockParagraph, 100, 100, 600, 190) // area ratio 0.045
		dec := c.Classify(big, testPageW, testPageH, ScopeAll)
		assert.False(t, dec.Replace)
		assert.Equal(t, ReasonParagraphTooLarge, dec.Reason)
	})
}

func TestClassifierHeadingsScope(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	tests := []struct {
		name    string
		region  Region
		replace bool
		want    Reason
	}{
		{
			name:    "heading within limits",
			region:  region(BlockHeading, 100, 100, 900, 200), // 0.80 x 0.10
			replace: true,
			want:    ReasonAllowedInHeadingsScope,
		},
		{
			name:    "title within limits",
			region:  region(BlockTitle, 100, 50, 600, 120),
			replace: true,
			want:    ReasonAllowedInHeadingsScope,
		},
		{
			name:   "heading too wide",
			region: region(BlockHeading, 50, 100, 900, 200), // 0.85 wide
			want:   ReasonHeadingTooLarge,
		},
		{
			name:   "heading too tall",
			region: region(BlockHeading, 100, 100, 500, 300), // 0.20 tall
			want:   ReasonHeadingTooLarge,
		},
		{
			name:   "caption rejected in headings scope",
			region: region(BlockCaption, 100, 100, 300, 150),
			want:   ReasonTypeNotAllowedInHeadingsScope,
		},
		{
			name:   "small paragraph rejected in headings scope",
			region: region(BlockParagraph, 100, 100, 300, 150),
			want:   ReasonParagraphNotAllowedInScope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := c.Classify(tt.region, testPageW, testPageH, ScopeHeadings)
			assert.Equal(t, tt.replace, dec.Replace)
			assert.Equal(t, tt.want, dec.Reason)
		})
	}
}

func TestClassifierSafeScope(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	tests := []struct {
		name    string
		region  Region
		replace bool
		want    Reason
	}{
		{
			name:    "small heading allowed",
			region:  region(BlockHeading, 100, 100, 350, 150), // 0.25 x 0.05
			replace: true,
			want:    ReasonAllowedInSafeScope,
		},
		{
			name:    "figure caption allowed",
			region:  region(BlockFigureCaption, 200, 800, 500, 840),
			replace: true,
			want:    ReasonAllowedInSafeScope,
		},
		{
			name:   "heading too wide for safe scope",
			region: region(BlockHeading, 100, 100, 900, 150), // 0.80 wide
			want:   ReasonBlockTooLargeForSafeScope,
		},
		{
			name:   "caption area over safe limit",
			region: region(BlockCaption, 100, 100, 600, 195), // area 0.0475
			want:   ReasonBlockTooLargeForSafeScope,
		},
		{
			name:    "decoration-sized unknown type allowed",
			region:  region(BlockOther, 100, 100, 300, 140),
			replace: true,
			want:    ReasonSmallBlockAllowedInSafe,
		},
		{
			name:   "large unknown type rejected",
			region: region(BlockTable, 100, 100, 800, 400),
			want:   ReasonBlockNotSafe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := c.Classify(tt.region, testPageW, testPageH, ScopeSafe)
			assert.Equal(t, tt.replace, dec.Replace)
			assert.Equal(t, tt.want, dec.Reason)
		})
	}
}

func TestClassifierAllScope(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	tests := []struct {
		name    string
		region  Region
		replace bool
		want    Reason
	}{
		{
			name:    "table allowed",
			region:  region(BlockTable, 100, 100, 800, 400),
			replace: true,
			want:    ReasonAllowedInAllScope,
		},
		{
			name:   "near full page box protected",
			region: region(BlockOther, 10, 10, 960, 960), // both ratios 0.95
			want:   ReasonGiantBBoxProtected,
		},
		{
			name:   "width ratio alone triggers protection",
			region: region(BlockOther, 10, 100, 960, 400), // 0.95 wide, 0.30 tall
			want:   ReasonGiantBBoxProtected,
		},
		{
			name:   "height ratio alone triggers protection",
			region: region(BlockOther, 100, 10, 400, 960), // 0.30 wide, 0.95 tall
			want:   ReasonGiantBBoxProtected,
		},
		{
			name:   "area ratio alone triggers protection",
			region: region(BlockOther, 50, 50, 950, 950), // 0.90 x 0.90, area 0.81
			want:   ReasonGiantBBoxProtected,
		},
		{
			name:    "wide but short banner allowed",
			region:  region(BlockHeader, 10, 10, 890, 60), // 0.88 wide
			replace: true,
			want:    ReasonAllowedInAllScope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := c.Classify(tt.region, testPageW, testPageH, ScopeAll)
			assert.Equal(t, tt.replace, dec.Replace)
			assert.Equal(t, tt.want, dec.Reason)
		})
	}
}

func TestClassifierClampsBeforeRatios(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	// Overflows the left edge; the raw box is 900px wide but only 750px
	// remain after clamping, which is within the headings width limit.
	r := region(BlockHeading, -150, 100, 750, 170)
	dec := c.Classify(r, testPageW, testPageH, ScopeHeadings)

	assert.True(t, dec.Replace)
	assert.Equal(t, ReasonAllowedInHeadingsScope, dec.Reason)
	assert.Equal(t, 0.0, dec.Box.X1)
	assert.Equal(t, 750.0, dec.Box.X2)
}

func TestNormalizeBlockType(t *testing.T) {
	assert.Equal(t, BlockHeading, NormalizeBlockType("Heading"))
	assert.Equal(t, BlockFigureCaption, NormalizeBlockType(" figure_caption "))
	assert.Equal(t, BlockOther, NormalizeBlockType("sidebar"))
	assert.Equal(t, BlockOther, NormalizeBlockType(""))
}

func TestParseScope(t *testing.T) {
	for _, s := range []string{"headings", "SAFE", " all "} {
		sc, err := ParseScope(s)
		assert.NoError(t, err)
		assert.NotEmpty(t, sc)
	}

	_, err := ParseScope("everything")
	assert.Error(t, err)
	var oerr *Error
	assert.ErrorAs(t, err, &oerr)
	assert.Equal(t, ErrInvalidScope, oerr.Code)
}
