// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdf2tex/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ServerConfig holds settings for the web frontend.
type ServerConfig struct {
	// ListenAddr is the address the HTTP server binds to (default ":8080").
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`

	// UploadDir is the directory uploaded PDFs and extracted images are
	// written to (default "uploads").
	UploadDir string `json:"upload_dir" yaml:"upload_dir"`

	// OutputDir is the directory generated .tex files and their image
	// subtrees are written to (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxUploadMB caps the accepted request body size in megabytes
	// (default 50).
	MaxUploadMB int64 `json:"max_upload_mb" yaml:"max_upload_mb"`
}

// ExtractionConfig holds settings for the PDF extraction stage.
type ExtractionConfig struct {
	// ExtractImages controls whether embedded images are pulled out of
	// the PDF alongside text (default true).
	ExtractImages bool `json:"extract_images" yaml:"extract_images"`
}

// OCRConfig holds settings for the external formula-OCR service. An
// empty Endpoint disables OCR entirely.
type OCRConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the URL of the image-to-LaTeX service.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// APIKey authenticates requests; loaded from .secrets/ when unset.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on rate limiting
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the conversion history database.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "output/pdf2tex.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Config groups all component configurations.
type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	OCR        OCRConfig        `json:"ocr" yaml:"ocr"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}

// Defaults returns a Config populated with default values. Callers
// overlay flag, environment, and file settings on top.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  ":8080",
			UploadDir:   "uploads",
			OutputDir:   "output",
			MaxUploadMB: 50,
		},
		Extraction: ExtractionConfig{
			ExtractImages: true,
		},
		OCR: OCRConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "pdf2tex/0.1",
			},
			MaxRetries: 3,
		},
		Store: StoreConfig{
			DBPath: "output/pdf2tex.db",
		},
	}
}
