package web

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeOutputFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.tex"), []byte(`\documentclass{article}`), 0o644); err != nil {
		t.Fatal(err)
	}
	imagesDir := filepath.Join(dir, "doc_images", "nested")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "doc_images", "a.png"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(imagesDir, "b.png"), []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		entries[f.Name] = string(content)
	}
	return entries
}

func TestBuildZip(t *testing.T) {
	dir := writeOutputFixture(t)

	data, err := buildZip(dir, "doc")
	if err != nil {
		t.Fatal(err)
	}

	entries := readZip(t, data)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(entries), entries)
	}
	if entries["doc.tex"] != `\documentclass{article}` {
		t.Error("tex file missing or corrupted at archive root")
	}
	if entries["doc_images/a.png"] != "a" {
		t.Error("top-level image missing")
	}
	if entries["doc_images/nested/b.png"] != "b" {
		t.Error("nested image missing")
	}
}

func TestBuildZip_NoImages(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "solo.tex"), []byte("tex"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := buildZip(dir, "solo")
	if err != nil {
		t.Fatal(err)
	}

	entries := readZip(t, data)
	if len(entries) != 1 || entries["solo.tex"] != "tex" {
		t.Errorf("expected only the tex file, got %v", entries)
	}
}

func TestBuildZip_MissingTex(t *testing.T) {
	if _, err := buildZip(t.TempDir(), "ghost"); err == nil {
		t.Fatal("expected an error for a missing .tex file")
	}
}
