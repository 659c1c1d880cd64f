// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr converts formula images to LaTeX through an external
// image-to-LaTeX HTTP service.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf2tex/internal/httputil"
	"github.com/pdiddy/pdf2tex/pkg/types"
)

// Client calls the formula-OCR service. The zero value is disabled; use
// NewClient.
type Client struct {
	cfg        types.OCRConfig
	httpClient *http.Client
}

// NewClient builds a Client from cfg. When cfg.Endpoint is empty the
// client is disabled and every conversion returns an error; callers
// should check Enabled first.
func NewClient(cfg types.OCRConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether an OCR endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.Endpoint != ""
}

// result is the service's response body.
type result struct {
	LaTeX string `json:"latex"`
	Error string `json:"error,omitempty"`
}

// ImageToLaTeX posts the image at imagePath to the OCR service and
// returns the recognized LaTeX string. Rate-limited requests are
// retried with backoff.
func (c *Client) ImageToLaTeX(ctx context.Context, imagePath string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("formula OCR is not configured")
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("reading image %s: %w", imagePath, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("building OCR request: %w", err)
	}
	req.Header.Set("Content-Type", contentType(imagePath))
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling OCR service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading OCR response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR service returned %s", resp.Status)
	}

	var r result
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("decoding OCR response: %w", err)
	}
	if r.Error != "" {
		return "", fmt.Errorf("OCR service error: %s", r.Error)
	}

	latex := strings.TrimSpace(r.LaTeX)
	if latex == "" {
		return "", fmt.Errorf("OCR service returned no LaTeX for %s", filepath.Base(imagePath))
	}
	return latex, nil
}

func contentType(imagePath string) string {
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
