// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	flashes := popFlashes(w, r)
	if err := s.renderer.RenderIndex(w, flashes); err != nil {
		s.log.WithError(err).Error("rendering index page")
	}
}

// redirectWithFlash stores flashes in the flash cookie and sends the
// client back to the upload form.
func (s *Server) redirectWithFlash(w http.ResponseWriter, r *http.Request, flashes ...Flash) {
	setFlashes(w, flashes)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.Server.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("pdf_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			s.redirectWithFlash(w, r, Flash{FlashError, "No file part"})
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.redirectWithFlash(w, r, Flash{FlashError,
				fmt.Sprintf("File too large. The upload limit is %d MB.", s.cfg.Server.MaxUploadMB)})
			return
		}
		s.redirectWithFlash(w, r, Flash{FlashError, fmt.Sprintf("Error reading upload: %v", err)})
		return
	}
	defer file.Close()

	original := filepath.Base(strings.TrimSpace(header.Filename))
	if original == "" || original == "." || original == string(filepath.Separator) {
		s.redirectWithFlash(w, r, Flash{FlashError, "No selected file"})
		return
	}
	if !strings.EqualFold(filepath.Ext(original), ".pdf") {
		s.redirectWithFlash(w, r, Flash{FlashError, "Invalid file type. Please upload a PDF."})
		return
	}

	pdfPath, err := s.saveUpload(file, original)
	if err != nil {
		s.redirectWithFlash(w, r, Flash{FlashError, fmt.Sprintf("Error saving uploaded file: %v", err)})
		return
	}

	var progress bytes.Buffer
	result := s.pipeline.Run(r.Context(), pdfPath, original, &progress)
	if msg := strings.TrimSpace(progress.String()); msg != "" {
		s.log.WithField("upload", original).Info(msg)
	}

	var flashes []Flash
	if result.ErrorMessage != "" {
		flashes = append(flashes, Flash{FlashError, result.ErrorMessage})
	} else if result.RawExtracted.IsEmpty() {
		flashes = append(flashes, Flash{FlashWarning,
			fmt.Sprintf("No content (text, images, or margins) could be extracted from %s.", original)})
	}

	if err := s.renderer.RenderResult(w, result, flashes); err != nil {
		s.log.WithError(err).Error("rendering result page")
	}
}

// saveUpload copies the uploaded file into the uploads directory and
// returns its path.
func (s *Server) saveUpload(file io.Reader, original string) (string, error) {
	if err := os.MkdirAll(s.cfg.Server.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	pdfPath := filepath.Join(s.cfg.Server.UploadDir, original)
	dst, err := os.Create(pdfPath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", pdfPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("writing %s: %w", pdfPath, err)
	}
	return pdfPath, nil
}

// safePathSegment rejects identifiers that could escape the output
// directory.
func safePathSegment(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func (s *Server) handleDownloadTex(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if !safePathSegment(filename) {
		s.redirectWithFlash(w, r, Flash{FlashError, "Invalid download name."})
		return
	}

	path := filepath.Join(s.cfg.Server.OutputDir, filename)
	if _, err := os.Stat(path); err != nil {
		s.redirectWithFlash(w, r, Flash{FlashError,
			fmt.Sprintf("Error: File %s not found in output directory.", filename)})
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", "application/x-tex")
	http.ServeFile(w, r, path)
}

func (s *Server) handleDownloadZip(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !safePathSegment(name) {
		s.redirectWithFlash(w, r, Flash{FlashError, "Invalid download name."})
		return
	}

	if _, err := os.Stat(filepath.Join(s.cfg.Server.OutputDir, name+".tex")); err != nil {
		s.redirectWithFlash(w, r, Flash{FlashError,
			fmt.Sprintf("Error: Main .tex file %s.tex not found for ZIP archive.", name)})
		return
	}

	data, err := buildZip(s.cfg.Server.OutputDir, name)
	if err != nil {
		s.log.WithError(err).WithField("name", name).Error("building zip archive")
		s.redirectWithFlash(w, r, Flash{FlashError, fmt.Sprintf("Error creating ZIP file: %v", err)})
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".zip"))
	w.Header().Set("Content-Type", "application/zip")
	w.Write(data)
}
