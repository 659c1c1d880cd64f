// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"testing"

	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const cmTolerance = 0.001

func approx(got, want float64) bool {
	return math.Abs(got-want) < cmTolerance
}

func TestComputeMargins_OneInchMargins(t *testing.T) {
	// A4 media box with a crop box inset 72 points (1 inch) on each side.
	media := pdftypes.NewRectangle(0, 0, 595, 842)
	crop := pdftypes.NewRectangle(72, 72, 595-72, 842-72)

	m := computeMargins(media, crop)

	wantMargin := 72 * pointsToCM // 2.54 cm
	for name, got := range map[string]float64{
		"left": m.Left, "right": m.Right, "top": m.Top, "bottom": m.Bottom,
	} {
		if !approx(got, wantMargin) {
			t.Errorf("%s = %.4f, want %.4f", name, got, wantMargin)
		}
	}
	if !approx(m.Width, (595-144)*pointsToCM) {
		t.Errorf("width = %.4f, want %.4f", m.Width, (595-144)*pointsToCM)
	}
	if !approx(m.Height, (842-144)*pointsToCM) {
		t.Errorf("height = %.4f, want %.4f", m.Height, (842-144)*pointsToCM)
	}
}

func TestComputeMargins_DegenerateCropBox(t *testing.T) {
	media := pdftypes.NewRectangle(0, 0, 595, 842)
	crop := pdftypes.NewRectangle(0, 0, 0, 0)

	m := computeMargins(media, crop)

	if m.Left != 0 || m.Right != 0 || m.Top != 0 || m.Bottom != 0 {
		t.Errorf("degenerate crop box should yield zero margins, got %+v", m)
	}
	if !approx(m.Width, 595*pointsToCM) || !approx(m.Height, 842*pointsToCM) {
		t.Errorf("degenerate crop box should use media box dimensions, got %+v", m)
	}
}

func TestComputeMargins_NilCropBoxFallsBackToMedia(t *testing.T) {
	media := pdftypes.NewRectangle(0, 0, 612, 792)

	m := computeMargins(media, nil)

	if m.Left != 0 || m.Right != 0 || m.Top != 0 || m.Bottom != 0 {
		t.Errorf("nil crop box should yield zero margins, got %+v", m)
	}
	if !approx(m.Width, 612*pointsToCM) {
		t.Errorf("width = %.4f, want media box width", m.Width)
	}
}

func TestComputeMargins_CropOutsideMediaClampedToZero(t *testing.T) {
	media := pdftypes.NewRectangle(0, 0, 595, 842)
	crop := pdftypes.NewRectangle(-10, -10, 600, 850)

	m := computeMargins(media, crop)

	if m.Left != 0 || m.Right != 0 || m.Top != 0 || m.Bottom != 0 {
		t.Errorf("negative margins should be clamped to zero, got %+v", m)
	}
}

func TestComputeMargins_NilMediaBox(t *testing.T) {
	m := computeMargins(nil, nil)
	want := defaultMargins()
	if *m != *want {
		t.Errorf("nil media box = %+v, want defaults %+v", m, want)
	}
}
