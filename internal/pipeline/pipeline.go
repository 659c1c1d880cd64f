// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a full PDF-to-LaTeX conversion: extraction,
// optional formula OCR, LaTeX generation, and output file writing.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2tex/internal/extract"
	"github.com/pdiddy/pdf2tex/internal/latex"
	"github.com/pdiddy/pdf2tex/internal/ocr"
	"github.com/pdiddy/pdf2tex/internal/store"
	"github.com/pdiddy/pdf2tex/pkg/types"
)

// Pipeline wires the conversion stages together. History is optional;
// a nil store disables recording.
type Pipeline struct {
	cfg       types.Config
	extractor extract.Extractor
	ocr       *ocr.Client
	history   *store.Store
	log       logrus.FieldLogger
}

// New builds a Pipeline. A nil logger is replaced with the logrus
// standard logger.
func New(cfg types.Config, extractor extract.Extractor, ocrClient *ocr.Client, history *store.Store, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		ocr:       ocrClient,
		history:   history,
		log:       log,
	}
}

// metadata is the YAML sidecar written next to each generated .tex file.
type metadata struct {
	Original    string         `yaml:"original"`
	SafeName    string         `yaml:"safe_name"`
	PageCount   int            `yaml:"page_count"`
	ImageCount  int            `yaml:"image_count"`
	Margins     *types.Margins `yaml:"margins,omitempty"`
	ConvertedAt string         `yaml:"converted_at"`
}

// Run converts the PDF at pdfPath, writing the .tex file, extracted
// images, and a metadata sidecar under the configured output directory.
// originalName is the user-facing source filename (an upload's original
// name, or the path basename for CLI runs). Per-file progress goes to w.
//
// Conversion failures are reported inside the returned result's
// ErrorMessage rather than as an error; the result is always non-nil.
func (p *Pipeline) Run(ctx context.Context, pdfPath, originalName string, w io.Writer) *types.ConversionResult {
	docName := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	safe := extract.Sanitize(docName)

	result := &types.ConversionResult{OriginalPDFFilename: originalName}

	raw, err := p.extractor.Extract(ctx, pdfPath, p.cfg.Server.OutputDir)
	if err != nil {
		return p.fail(ctx, result, safe, err.Error(), w)
	}
	result.RawExtracted = raw

	// An empty document still produces a (near-empty) LaTeX file; the
	// caller is expected to surface a notice when RawExtracted.IsEmpty().
	mathOCR := p.recognizeFormulas(ctx, raw.ImagePaths)

	result.GeneratedLaTeXCode = latex.Generate(raw, docName, mathOCR)

	if err := os.MkdirAll(p.cfg.Server.OutputDir, 0o755); err != nil {
		return p.fail(ctx, result, safe, fmt.Sprintf("could not create output directory: %v", err), w)
	}

	texName := safe + ".tex"
	texPath := filepath.Join(p.cfg.Server.OutputDir, texName)
	if err := os.WriteFile(texPath, []byte(result.GeneratedLaTeXCode), 0o644); err != nil {
		return p.fail(ctx, result, safe, fmt.Sprintf("could not write LaTeX file: %v", err), w)
	}

	result.TexFilenameForDownload = texName
	result.FilenameNoExtForZip = safe

	p.writeMetadata(safe, originalName, raw)
	p.record(ctx, store.Record{
		Original:   originalName,
		SafeName:   safe,
		Status:     store.StatusDone,
		PageCount:  raw.PageCount,
		ImageCount: len(raw.ImagePaths),
		TexPath:    texPath,
	})

	fmt.Fprintf(w, "converted: %s (%d pages, %d images)\n", originalName, raw.PageCount, len(raw.ImagePaths))
	return result
}

// fail fills in the error message, records the failure, and reports it
// on the progress writer.
func (p *Pipeline) fail(ctx context.Context, result *types.ConversionResult, safe, msg string, w io.Writer) *types.ConversionResult {
	result.ErrorMessage = msg
	p.record(ctx, store.Record{
		Original: result.OriginalPDFFilename,
		SafeName: safe,
		Status:   store.StatusFailed,
		Error:    msg,
	})
	fmt.Fprintf(w, "failed:  %s (%s)\n", result.OriginalPDFFilename, msg)
	return result
}

// recognizeFormulas runs formula OCR over the extracted images and
// returns recognized LaTeX keyed by relative image path. OCR failures
// are logged and skipped; the image stays a plain figure.
func (p *Pipeline) recognizeFormulas(ctx context.Context, imagePaths []string) map[string]string {
	if !p.ocr.Enabled() || len(imagePaths) == 0 {
		return nil
	}

	formulas := make(map[string]string)
	for _, rel := range imagePaths {
		full := filepath.Join(p.cfg.Server.OutputDir, rel)
		formula, err := p.ocr.ImageToLaTeX(ctx, full)
		if err != nil {
			p.log.WithError(err).WithField("image", rel).Warn("formula OCR failed, keeping image as figure")
			continue
		}
		formulas[rel] = formula
	}
	return formulas
}

// writeMetadata writes the YAML sidecar. Failures are logged, not fatal.
func (p *Pipeline) writeMetadata(safe, originalName string, raw *types.RawContent) {
	meta := metadata{
		Original:    originalName,
		SafeName:    safe,
		PageCount:   raw.PageCount,
		ImageCount:  len(raw.ImagePaths),
		Margins:     raw.Margins,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := yaml.Marshal(&meta)
	if err != nil {
		p.log.WithError(err).Warn("could not marshal conversion metadata")
		return
	}
	path := filepath.Join(p.cfg.Server.OutputDir, safe+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		p.log.WithError(err).WithField("path", path).Warn("could not write conversion metadata")
	}
}

// record appends to conversion history. Failures are logged, not fatal.
func (p *Pipeline) record(ctx context.Context, rec store.Record) {
	if p.history == nil {
		return
	}
	if _, err := p.history.Add(ctx, rec); err != nil {
		p.log.WithError(err).Warn("could not record conversion history")
	}
}
