package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-translator/internal/overlay"
)

const sampleDoc = `{
  "pages": [
    {
      "page": 1,
      "blocks": [
        {"type": "heading", "bbox": [100, 80, 500, 140], "text": "Introduction"},
        {"type": "sidebar", "bbox": [10, 200, 200, 240], "text": "Note"}
      ]
    },
    {"page": 2, "blocks": []}
  ],
  "meta": {"target_language": "German"}
}`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "German", doc.Meta.TargetLanguage)
	assert.Len(t, doc.Pages[0].Blocks, 2)
	assert.Equal(t, []float64{100, 80, 500, 140}, doc.Pages[0].Blocks[0].BBox)
}

func TestParseStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + sampleDoc + "\n```"
	doc, err := Parse([]byte(fenced))
	require.NoError(t, err)
	assert.Len(t, doc.Pages, 2)

	bare := "```\n" + sampleDoc + "\n```"
	doc, err = Parse([]byte(bare))
	require.NoError(t, err)
	assert.Len(t, doc.Pages, 2)
}

func TestParseRejections(t *testing.T) {
	_, err := Parse([]byte("not json"))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"pages":[{"page":0,"blocks":[]}]}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"pages":[{"page":-2,"blocks":[]}]}`))
	assert.Error(t, err)
}

func TestBlockRegion(t *testing.T) {
	b := Block{Type: "Sidebar", BBox: []float64{1, 2, 3, 4}, Text: "  hi  "}
	r := b.Region()
	assert.Equal(t, overlay.BlockOther, r.Type)
	assert.Equal(t, "hi", r.Text)
	assert.Equal(t, []float64{1, 2, 3, 4}, r.BBox)

	// Malformed bbox passes through for the classifier to account.
	short := Block{Type: "heading", BBox: []float64{1, 2}, Text: "x"}
	assert.Len(t, short.Region().BBox, 2)
}

func TestDocumentPageRegions(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	pages := doc.PageRegions()
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Len(t, pages[0].Regions, 2)
	assert.Equal(t, overlay.BlockHeading, pages[0].Regions[0].Type)
	assert.Equal(t, overlay.BlockOther, pages[0].Regions[1].Type)
	assert.Equal(t, 2, pages[1].Number)
	assert.Empty(t, pages[1].Regions)
}
