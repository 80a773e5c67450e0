package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMapperRejectsBadDPI(t *testing.T) {
	for _, dpi := range []int{0, -72} {
		_, err := NewMapper(dpi)
		require.Error(t, err)
		var oerr *Error
		require.ErrorAs(t, err, &oerr)
		assert.Equal(t, ErrInvalidDPI, oerr.Code)
	}
}

func TestMapperPageSize(t *testing.T) {
	m, err := NewMapper(144)
	require.NoError(t, err)

	// 144 dpi halves pixel values: a US-letter-ish raster of 1224x1584
	// becomes 612x792 pt.
	w, h := m.PageSize(1224, 1584)
	assert.InDelta(t, 612, w, 1e-9)
	assert.InDelta(t, 792, h, 1e-9)

	m72, err := NewMapper(72)
	require.NoError(t, err)
	w, h = m72.PageSize(500, 700)
	assert.InDelta(t, 500, w, 1e-9)
	assert.InDelta(t, 700, h, 1e-9)
}

func TestMapperRoundTrip(t *testing.T) {
	m, err := NewMapper(144)
	require.NoError(t, err)

	boxes := []PixelRect{
		{X1: 0, Y1: 0, X2: 100, Y2: 50},
		{X1: 37.5, Y1: 12.25, X2: 612.125, Y2: 400.75},
		{X1: 1000, Y1: 1200, X2: 1224, Y2: 1584},
	}
	for _, box := range boxes {
		back := m.ToPixels(m.ToPoints(box))
		assert.InDelta(t, box.X1, back.X1, 1e-9)
		assert.InDelta(t, box.Y1, back.Y1, 1e-9)
		assert.InDelta(t, box.X2, back.X2, 1e-9)
		assert.InDelta(t, box.Y2, back.Y2, 1e-9)
	}
}

func TestMapperKeepsTopLeftOrigin(t *testing.T) {
	m, err := NewMapper(144)
	require.NoError(t, err)

	// A box near the raster top must land near the document top: no flip.
	top := m.ToPoints(PixelRect{X1: 0, Y1: 10, X2: 100, Y2: 30})
	bottom := m.ToPoints(PixelRect{X1: 0, Y1: 1500, X2: 100, Y2: 1550})
	assert.Less(t, top.Y, bottom.Y)
	assert.InDelta(t, 5, top.Y, 1e-9)
}

func TestMapperCoverRect(t *testing.T) {
	m, err := NewMapper(144)
	require.NoError(t, err)
	const pw, ph = 1224, 1584

	t.Run("interior box gets symmetric padding", func(t *testing.T) {
		cover := m.CoverRect(PixelRect{X1: 100, Y1: 200, X2: 300, Y2: 260}, 2, pw, ph)
		// 2px pad at 144 dpi is 1pt on each side.
		assert.InDelta(t, 49, cover.X, 1e-9)
		assert.InDelta(t, 99, cover.Y, 1e-9)
		assert.InDelta(t, 102, cover.W, 1e-9)
		assert.InDelta(t, 32, cover.H, 1e-9)
	})

	t.Run("edge box is clipped to the page", func(t *testing.T) {
		cover := m.CoverRect(PixelRect{X1: 0, Y1: 0, X2: 100, Y2: 40}, 2, pw, ph)
		assert.Equal(t, 0.0, cover.X)
		assert.Equal(t, 0.0, cover.Y)
		assert.InDelta(t, 51, cover.W, 1e-9)
		assert.InDelta(t, 21, cover.H, 1e-9)
	})

	t.Run("cover never exceeds page bounds", func(t *testing.T) {
		wPt, hPt := m.PageSize(pw, ph)
		cover := m.CoverRect(PixelRect{X1: 1200, Y1: 1560, X2: 1224, Y2: 1584}, 2, pw, ph)
		assert.LessOrEqual(t, cover.X+cover.W, wPt+1e-9)
		assert.LessOrEqual(t, cover.Y+cover.H, hPt+1e-9)
	})
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 100, H: 40}
	in := r.Inset(2)
	assert.Equal(t, Rect{X: 12, Y: 12, W: 96, H: 36}, in)

	// Degenerate rectangles collapse instead of going negative.
	tiny := Rect{X: 10, Y: 10, W: 3, H: 3}.Inset(2)
	assert.Equal(t, 0.0, tiny.W)
	assert.Equal(t, 0.0, tiny.H)
}
