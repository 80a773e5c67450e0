package overlay

// pointsPerInch is the PDF user-space unit density.
const pointsPerInch = 72.0

// Mapper converts between raster pixel space and document point space. The
// output page keeps the raster's top-left origin and aspect, so both axes use
// the same linear scale and no vertical flip is performed.
type Mapper struct {
	dpi float64
}

// NewMapper builds a mapper for rasters rendered at the given DPI.
func NewMapper(dpi int) (Mapper, error) {
	if dpi <= 0 {
		return Mapper{}, NewError(ErrInvalidDPI, "dpi must be positive", nil)
	}
	return Mapper{dpi: float64(dpi)}, nil
}

// DPI returns the configured raster density.
func (m Mapper) DPI() int { return int(m.dpi) }

// PageSize returns the point dimensions of a page whose raster measures
// pixelW x pixelH.
func (m Mapper) PageSize(pixelW, pixelH int) (wPt, hPt float64) {
	s := pointsPerInch / m.dpi
	return float64(pixelW) * s, float64(pixelH) * s
}

// ToPoints linearly scales a pixel rectangle into point space without padding
// or clamping. It is the exact inverse of ToPixels.
func (m Mapper) ToPoints(r PixelRect) Rect {
	s := pointsPerInch / m.dpi
	return Rect{X: r.X1 * s, Y: r.Y1 * s, W: r.Width() * s, H: r.Height() * s}
}

// ToPixels is the inverse of ToPoints.
func (m Mapper) ToPixels(r Rect) PixelRect {
	s := m.dpi / pointsPerInch
	return PixelRect{X1: r.X * s, Y1: r.Y * s, X2: (r.X + r.W) * s, Y2: (r.Y + r.H) * s}
}

// CoverRect maps a clamped pixel box to the point-space cover rectangle: the
// box is padded by padPx on every side so the white fill hides antialiased
// glyph edges, then intersected with the page so the cover never paints
// outside it.
func (m Mapper) CoverRect(box PixelRect, padPx float64, pixelW, pixelH int) Rect {
	padded := PixelRect{
		X1: box.X1 - padPx,
		Y1: box.Y1 - padPx,
		X2: box.X2 + padPx,
		Y2: box.Y2 + padPx,
	}
	wPt, hPt := m.PageSize(pixelW, pixelH)
	return m.ToPoints(padded).Intersect(Rect{W: wPt, H: hPt})
}
