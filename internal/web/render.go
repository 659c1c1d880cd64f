// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the upload form, runs conversions, and renders
// result pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pdiddy/pdf2tex/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// Flash is a one-time user notification. Category becomes a CSS class
// on the rendered list item.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Flash categories.
const (
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Renderer turns conversion results into HTML pages. Rendering is a
// pure transformation: identical inputs produce byte-identical output.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// indexView is the data for the upload form page.
type indexView struct {
	Flashes []Flash
}

// resultView is the data for the result page. All branching the page
// does is driven by the precomputed fields here, so the template stays
// a plain presence/absence skeleton.
type resultView struct {
	Flashes []Flash

	Filename string
	Error    string
	Code     string

	TexName       string
	ZipName       string
	ShowDownloads bool
	ShowFallback  bool
	ShowNothing   bool

	Raw *rawView
}

// rawView is the diagnostic pre-conversion section.
type rawView struct {
	Text    string
	HasText bool
	Images  []string
	Margins []marginEntry
}

type marginEntry struct {
	Name  string
	Value string
}

// RenderIndex writes the upload form page.
func (r *Renderer) RenderIndex(w io.Writer, flashes []Flash) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", indexView{Flashes: flashes})
}

// RenderResult writes the result page for result. All fields of result
// are optional; missing data renders as an explanatory notice.
func (r *Renderer) RenderResult(w io.Writer, result *types.ConversionResult, flashes []Flash) error {
	return r.tmpl.ExecuteTemplate(w, "result.html", buildResultView(result, flashes))
}

func buildResultView(result *types.ConversionResult, flashes []Flash) resultView {
	v := resultView{Flashes: flashes}
	if result == nil {
		v.ShowNothing = true
		return v
	}

	v.Filename = result.OriginalPDFFilename
	v.Error = result.ErrorMessage
	v.Code = result.GeneratedLaTeXCode
	v.TexName = result.TexFilenameForDownload
	v.ZipName = result.FilenameNoExtForZip

	v.ShowDownloads = v.TexName != "" && v.ZipName != ""
	v.ShowFallback = !v.ShowDownloads && v.Code != ""
	v.ShowNothing = v.Code == "" && v.Error == ""

	if raw := result.RawExtracted; raw != nil {
		v.Raw = &rawView{
			Text:    raw.Text,
			HasText: strings.TrimSpace(raw.Text) != "",
			Images:  raw.ImagePaths,
			Margins: marginEntries(raw.Margins),
		}
	}
	return v
}

// marginEntries renders margins in a fixed order with two-decimal
// centimeter values. A nil input yields nil, which the template turns
// into the "no margins" notice.
func marginEntries(m *types.Margins) []marginEntry {
	if m == nil {
		return nil
	}
	pairs := []struct {
		name  string
		value float64
	}{
		{"left", m.Left},
		{"right", m.Right},
		{"top", m.Top},
		{"bottom", m.Bottom},
		{"width", m.Width},
		{"height", m.Height},
	}
	entries := make([]marginEntry, len(pairs))
	for i, p := range pairs {
		entries[i] = marginEntry{Name: p.name, Value: fmt.Sprintf("%.2f cm", p.value)}
	}
	return entries
}
