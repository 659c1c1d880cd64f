package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/pdf2tex/pkg/types"
)

func renderResult(t *testing.T, result *types.ConversionResult, flashes []Flash) string {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.RenderResult(&buf, result, flashes); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRenderResult_ErrorShownProminently(t *testing.T) {
	html := renderResult(t, &types.ConversionResult{
		OriginalPDFFilename: "broken.pdf",
		ErrorMessage:        "could not open or read PDF file broken.pdf",
	}, nil)

	if !strings.Contains(html, `<div class="error">`) {
		t.Error("error message must be visually flagged")
	}
	if !strings.Contains(html, "could not open or read PDF file broken.pdf") {
		t.Error("error text must appear verbatim")
	}
	if strings.Contains(html, "No LaTeX code was generated.") {
		t.Error("the nothing-generated notice must not appear alongside an error")
	}
}

func TestRenderResult_DownloadLinks(t *testing.T) {
	html := renderResult(t, &types.ConversionResult{
		GeneratedLaTeXCode:     `\section{Hi}`,
		TexFilenameForDownload: "out.tex",
		FilenameNoExtForZip:    "out",
	}, nil)

	if got := strings.Count(html, `href="/download/`); got != 2 {
		t.Errorf("expected exactly 2 download links, found %d", got)
	}
	if !strings.Contains(html, `href="/download/tex/out.tex"`) {
		t.Error("missing .tex download link")
	}
	if !strings.Contains(html, `href="/download/zip/out"`) {
		t.Error("missing zip download link")
	}
	if !strings.Contains(html, `\section{Hi}`) {
		t.Error("generated code must appear literally in the text block")
	}
	if strings.Contains(html, "Download links are not available") {
		t.Error("fallback notice must not appear when links are shown")
	}
}

func TestRenderResult_FallbackWithoutBothIdentifiers(t *testing.T) {
	for _, tc := range []struct {
		name   string
		result types.ConversionResult
	}{
		{"no identifiers", types.ConversionResult{GeneratedLaTeXCode: "x"}},
		{"tex only", types.ConversionResult{GeneratedLaTeXCode: "x", TexFilenameForDownload: "a.tex"}},
		{"zip only", types.ConversionResult{GeneratedLaTeXCode: "x", FilenameNoExtForZip: "a"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			html := renderResult(t, &tc.result, nil)
			if got := strings.Count(html, "Download links are not available"); got != 1 {
				t.Errorf("expected exactly 1 fallback notice, found %d", got)
			}
			if strings.Contains(html, `href="/download/`) {
				t.Error("no download links may appear without both identifiers")
			}
		})
	}
}

func TestRenderResult_NothingGeneratedNotice(t *testing.T) {
	html := renderResult(t, &types.ConversionResult{OriginalPDFFilename: "a.pdf"}, nil)
	if !strings.Contains(html, "No LaTeX code was generated.") {
		t.Error("expected the nothing-generated notice")
	}
}

func TestRenderResult_MarginsRoundedWithUnit(t *testing.T) {
	html := renderResult(t, &types.ConversionResult{
		RawExtracted: &types.RawContent{
			Text:       "body",
			ImagePaths: []string{},
			Margins:    &types.Margins{Left: 2, Right: 1.9049, Top: 3.14159, Bottom: 0, Width: 17, Height: 25.7},
		},
	}, nil)

	for _, want := range []string{
		"left: 2.00 cm",
		"right: 1.90 cm",
		"top: 3.14 cm",
		"bottom: 0.00 cm",
		"width: 17.00 cm",
		"height: 25.70 cm",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing margin entry %q", want)
		}
	}

	// Fixed rendering order.
	if strings.Index(html, "left:") > strings.Index(html, "right:") ||
		strings.Index(html, "right:") > strings.Index(html, "top:") ||
		strings.Index(html, "top:") > strings.Index(html, "bottom:") ||
		strings.Index(html, "bottom:") > strings.Index(html, "width:") ||
		strings.Index(html, "width:") > strings.Index(html, "height:") {
		t.Error("margins out of order")
	}
}

func TestRenderResult_RawContentNotices(t *testing.T) {
	html := renderResult(t, &types.ConversionResult{
		RawExtracted: &types.RawContent{Text: "   \n", ImagePaths: []string{}},
	}, nil)

	if !strings.Contains(html, "No text was extracted.") {
		t.Error("blank text must yield the no-text notice")
	}
	if !strings.Contains(html, "No images were extracted.") {
		t.Error("empty image list must yield the no-images notice")
	}
	if !strings.Contains(html, "No margin information was extracted.") {
		t.Error("nil margins must yield the no-margins notice")
	}
	if strings.Contains(html, "<li>") {
		t.Error("no list items may render for empty raw content")
	}
}

func TestRenderResult_NoRawSectionWhenAbsent(t *testing.T) {
	html := renderResult(t, &types.ConversionResult{OriginalPDFFilename: "a.pdf"}, nil)
	if strings.Contains(html, "Raw Extracted Content") {
		t.Error("raw content section must be absent without raw data")
	}
}

func TestRenderResult_ImageList(t *testing.T) {
	html := renderResult(t, &types.ConversionResult{
		RawExtracted: &types.RawContent{
			Text:       "body",
			ImagePaths: []string{"doc_images/doc_page_1_Im0.png", "doc_images/doc_page_2_Im1.png"},
		},
	}, nil)

	if !strings.Contains(html, "doc_images/doc_page_1_Im0.png") ||
		!strings.Contains(html, "doc_images/doc_page_2_Im1.png") {
		t.Error("image paths must be listed")
	}
	if strings.Contains(html, "No images were extracted.") {
		t.Error("no-images notice must not appear alongside a list")
	}
}

func TestRenderResult_Flashes(t *testing.T) {
	html := renderResult(t, &types.ConversionResult{}, []Flash{
		{FlashError, "first"},
		{FlashWarning, "second"},
	})

	if !strings.Contains(html, `<li class="error">first</li>`) ||
		!strings.Contains(html, `<li class="warning">second</li>`) {
		t.Errorf("flash messages not rendered with category classes:\n%s", html)
	}
	if strings.Index(html, "first") > strings.Index(html, "second") {
		t.Error("flashes out of arrival order")
	}
}

func TestRenderResult_EscapesInterpolatedText(t *testing.T) {
	html := renderResult(t, &types.ConversionResult{
		OriginalPDFFilename: `<script>alert("x")</script>.pdf`,
		ErrorMessage:        `error with <b>markup</b> & entities`,
		RawExtracted: &types.RawContent{
			Text:       `extracted <i>text</i>`,
			ImagePaths: []string{`img/<img src=x>.png`},
		},
	}, []Flash{{FlashError, `<marquee>hi</marquee>`}})

	for _, forbidden := range []string{"<script>", "<b>", "<i>", "<img src", "<marquee>"} {
		if strings.Contains(html, forbidden) {
			t.Errorf("unescaped markup %q leaked into output", forbidden)
		}
	}
}

func TestRenderResult_Deterministic(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	result := &types.ConversionResult{
		OriginalPDFFilename:    "doc.pdf",
		GeneratedLaTeXCode:     `\section{Hi}`,
		TexFilenameForDownload: "doc.tex",
		FilenameNoExtForZip:    "doc",
		RawExtracted: &types.RawContent{
			Text:       "body",
			ImagePaths: []string{"doc_images/a.png"},
			Margins:    &types.Margins{Left: 2, Right: 2, Top: 2, Bottom: 2, Width: 17, Height: 25.7},
		},
	}
	flashes := []Flash{{FlashInfo, "converted"}}

	var first, second bytes.Buffer
	if err := r.RenderResult(&first, result, flashes); err != nil {
		t.Fatal(err)
	}
	if err := r.RenderResult(&second, result, flashes); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("identical inputs must produce byte-identical output")
	}
}

func TestRenderResult_NilResult(t *testing.T) {
	html := renderResult(t, nil, nil)
	if !strings.Contains(html, "No LaTeX code was generated.") {
		t.Error("nil result must degrade to the nothing-generated notice")
	}
	if !strings.Contains(html, `href="/"`) {
		t.Error("navigation link back to the upload form must always render")
	}
}

func TestRenderIndex(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.RenderIndex(&buf, []Flash{{FlashError, "No selected file"}}); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	if !strings.Contains(html, `action="/upload"`) || !strings.Contains(html, `name="pdf_file"`) {
		t.Error("upload form missing")
	}
	if !strings.Contains(html, `<li class="error">No selected file</li>`) {
		t.Error("flash not rendered on index page")
	}
}
