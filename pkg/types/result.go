// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Margins describes the printable area of a page in centimeters. Left,
// Right, Top, and Bottom are the distances between the media box and the
// crop box; Width and Height are the dimensions of the crop box itself.
type Margins struct {
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// RawContent holds the material extracted from a PDF before LaTeX
// generation: plain text, relative paths of extracted images, and the
// page margins read from the first page. Margins is nil when the
// document carries no usable page geometry (e.g. an empty PDF).
type RawContent struct {
	// Text is the combined text content of all pages, in page order.
	Text string `json:"text" yaml:"text"`

	// ImagePaths lists extracted images relative to the image base
	// directory, e.g. "report_images/report_page_1_Im0.png".
	ImagePaths []string `json:"image_paths" yaml:"image_paths"`

	// Margins describes the first page's geometry in centimeters.
	Margins *Margins `json:"margins,omitempty" yaml:"margins,omitempty"`

	// PageCount is the number of pages in the source document.
	PageCount int `json:"page_count" yaml:"page_count"`
}

// IsEmpty reports whether extraction produced no text, no images, and
// no margin information.
func (c *RawContent) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.ImagePaths) == 0 && c.Margins == nil && isBlank(c.Text)
}

// ConversionResult is the record handed to the result view renderer.
// Every field is optional; the renderer substitutes explanatory notices
// for whatever is missing and never fails.
type ConversionResult struct {
	// OriginalPDFFilename is the name of the uploaded source file.
	OriginalPDFFilename string `json:"original_pdf_filename,omitempty" yaml:"original_pdf_filename,omitempty"`

	// ErrorMessage carries upstream failure text, shown verbatim.
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`

	// GeneratedLaTeXCode is the converted output, if any.
	GeneratedLaTeXCode string `json:"generated_latex_code,omitempty" yaml:"generated_latex_code,omitempty"`

	// TexFilenameForDownload identifies the single-file download
	// (e.g. "my_doc.tex"). Both download identifiers must be present
	// for download links to appear.
	TexFilenameForDownload string `json:"tex_filename_for_download,omitempty" yaml:"tex_filename_for_download,omitempty"`

	// FilenameNoExtForZip identifies the archive download (e.g. "my_doc").
	FilenameNoExtForZip string `json:"filename_no_ext_for_zip,omitempty" yaml:"filename_no_ext_for_zip,omitempty"`

	// RawExtracted is the diagnostic pre-conversion view, if extraction ran.
	RawExtracted *RawContent `json:"raw_extracted_content,omitempty" yaml:"raw_extracted_content,omitempty"`
}

func isBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
