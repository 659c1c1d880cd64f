// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls text, embedded images, and page geometry out of
// PDF files using pdfcpu.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf2tex/pkg/types"
)

// Extractor turns a PDF file into RawContent. Images are written under
// imageBaseDir in a per-document subdirectory.
type Extractor interface {
	Extract(ctx context.Context, pdfPath, imageBaseDir string) (*types.RawContent, error)
}

// PDFCPU is the pdfcpu-backed Extractor.
type PDFCPU struct {
	cfg types.ExtractionConfig
	log logrus.FieldLogger
}

// New returns a pdfcpu-backed Extractor. A nil logger is replaced with
// the logrus standard logger.
func New(cfg types.ExtractionConfig, log logrus.FieldLogger) *PDFCPU {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PDFCPU{cfg: cfg, log: log}
}

// Extract reads pdfPath and returns its text, image paths, and margins.
// Failures after the document has been opened degrade to partial content
// rather than aborting: a page without readable text is skipped, and an
// image extraction error yields a result without images. An empty
// document returns empty content with nil Margins.
func (e *PDFCPU) Extract(ctx context.Context, pdfPath, imageBaseDir string) (*types.RawContent, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pageCount, err := api.PageCountFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("could not open or read PDF file %s: %w", pdfPath, err)
	}
	if pageCount == 0 {
		return &types.RawContent{ImagePaths: []string{}}, nil
	}

	content := &types.RawContent{
		ImagePaths: []string{},
		Margins:    e.readMargins(pdfPath),
		PageCount:  pageCount,
	}

	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	imageDirName := Sanitize(base) + "_images"

	var imagesByPage map[int][]string
	if e.cfg.ExtractImages {
		imagesByPage = e.extractImages(pdfPath, imageBaseDir, imageDirName, pageCount, conf)
	}

	texts, err := e.extractText(ctx, pdfPath, base, pageCount, conf)
	if err != nil {
		e.log.WithError(err).WithField("pdf", pdfPath).Warn("text extraction failed, continuing with partial content")
	}

	for page := 1; page <= pageCount; page++ {
		if t, ok := texts[page]; ok {
			content.Text += t + "\n"
		}
		for _, name := range imagesByPage[page] {
			content.ImagePaths = append(content.ImagePaths, filepath.Join(imageDirName, name))
		}
	}

	return content, nil
}

// extractImages writes embedded images to imageBaseDir/imageDirName and
// returns the extracted filenames grouped by page number. Errors are
// logged and produce an empty map; the caller continues without images.
func (e *PDFCPU) extractImages(pdfPath, imageBaseDir, imageDirName string, pageCount int, conf *model.Configuration) map[int][]string {
	imageDir := filepath.Join(imageBaseDir, imageDirName)
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		e.log.WithError(err).Warn("could not create image directory, skipping image extraction")
		return nil
	}

	if err := api.ExtractImagesFile(pdfPath, imageDir, nil, conf); err != nil {
		e.log.WithError(err).WithField("pdf", pdfPath).Warn("image extraction failed, continuing without images")
		return nil
	}

	entries, err := os.ReadDir(imageDir)
	if err != nil {
		e.log.WithError(err).Warn("could not list extracted images")
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	// pdfcpu names extracted images <base>_page_<n>_<id>.<ext>.
	byPage := make(map[int][]string)
	for page := 1; page <= pageCount; page++ {
		marker := fmt.Sprintf("_page_%d_", page)
		for _, name := range names {
			if strings.Contains(name, marker) {
				byPage[page] = append(byPage[page], name)
			}
		}
	}
	return byPage
}

// extractText runs pdfcpu content extraction into a temp directory and
// parses each page's content stream into plain text. The returned map
// is keyed by page number; pages without readable text are absent.
func (e *PDFCPU) extractText(ctx context.Context, pdfPath, base string, pageCount int, conf *model.Configuration) (map[int]string, error) {
	tmpDir, err := os.MkdirTemp("", "pdf2tex_content_*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := api.ExtractContentFile(pdfPath, tmpDir, nil, conf); err != nil {
		return nil, fmt.Errorf("extracting content streams: %w", err)
	}

	texts := make(map[int]string)
	for page := 1; page <= pageCount; page++ {
		select {
		case <-ctx.Done():
			return texts, ctx.Err()
		default:
		}

		contentFile := filepath.Join(tmpDir, fmt.Sprintf("%s_Content_page_%d.txt", base, page))
		raw, err := os.ReadFile(contentFile)
		if err != nil {
			continue
		}
		if text := parsePageContent(string(raw)); text != "" {
			texts[page] = text
		}
	}
	return texts, nil
}

// Sanitize maps every non-alphanumeric rune to an underscore, producing
// a name safe for directories and download identifiers.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
