// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pdiddy/pdf2tex/pkg/types"
)

// pointsToCM converts PDF points (1/72 inch) to centimeters.
const pointsToCM = 2.54 / 72.0

// defaultMargins approximates an A4 page with 2 cm margins, used when
// page geometry cannot be read from the document.
func defaultMargins() *types.Margins {
	return &types.Margins{Left: 2, Right: 2, Top: 2, Bottom: 2, Width: 17, Height: 25.7}
}

// readMargins derives the first page's margins from its media and crop
// boxes. Any failure to read the page geometry falls back to the default
// margins; the caller has already established that the document has at
// least one page.
func (e *PDFCPU) readMargins(pdfPath string) *types.Margins {
	ctx, err := api.ReadContextFile(pdfPath)
	if err != nil {
		e.log.WithError(err).WithField("pdf", pdfPath).Warn("could not read page geometry, using default margins")
		return defaultMargins()
	}

	boundaries, err := ctx.PageBoundaries(nil)
	if err != nil || len(boundaries) == 0 {
		e.log.WithField("pdf", pdfPath).Warn("no page boundaries available, using default margins")
		return defaultMargins()
	}

	first := boundaries[0]
	return computeMargins(first.MediaBox(), first.CropBox())
}

// computeMargins measures the space between the crop box and the media
// box in centimeters. A missing or degenerate crop box yields zero
// margins with the media box dimensions. Negative margins (crop box
// extending outside the media box) are clamped to zero.
func computeMargins(media, crop *pdftypes.Rectangle) *types.Margins {
	if media == nil {
		return defaultMargins()
	}
	if crop == nil || crop.Width() <= 0 || crop.Height() <= 0 {
		return &types.Margins{
			Width:  media.Width() * pointsToCM,
			Height: media.Height() * pointsToCM,
		}
	}

	left := crop.LL.X - media.LL.X
	right := media.UR.X - crop.UR.X
	top := media.UR.Y - crop.UR.Y
	bottom := crop.LL.Y - media.LL.Y

	return &types.Margins{
		Left:   clampZero(left) * pointsToCM,
		Right:  clampZero(right) * pointsToCM,
		Top:    clampZero(top) * pointsToCM,
		Bottom: clampZero(bottom) * pointsToCM,
		Width:  crop.Width() * pointsToCM,
		Height: crop.Height() * pointsToCM,
	}
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
