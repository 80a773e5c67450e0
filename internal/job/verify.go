package job

import (
	"fmt"

	ledongthucpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"image-translator/internal/logger"
	"image-translator/internal/overlay"
)

// VerifyOutput checks that a rendered PDF is structurally valid and has the
// expected page count. pdfcpu does the primary validation; when it cannot
// read the file the secondary reader gets a chance before the output is
// declared broken.
func VerifyOutput(path string, wantPages int) error {
	pages, err := pageCount(path)
	if err != nil {
		return overlay.NewError(overlay.ErrOutputVerify,
			fmt.Sprintf("output %s is not a readable pdf", path), err)
	}
	if pages != wantPages {
		return overlay.NewError(overlay.ErrOutputVerify,
			fmt.Sprintf("output %s has %d pages, want %d", path, pages, wantPages), nil)
	}
	logger.Info("output verified", logger.String("path", path), logger.Int("pages", pages))
	return nil
}

func pageCount(path string) (int, error) {
	ctx, err := api.ReadContextFile(path)
	if err == nil {
		return ctx.PageCount, nil
	}
	logger.Warn("pdfcpu could not read output, trying fallback reader",
		logger.String("path", path), logger.Err(err))

	f, r, err2 := ledongthucpdf.Open(path)
	if err2 != nil {
		return 0, err
	}
	defer f.Close()
	return r.NumPage(), nil
}
