// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// buildZip assembles an in-memory archive for one conversion: the .tex
// file at the root plus the <name>_images/ subtree, mirroring the
// output directory layout. A missing images directory yields an archive
// with just the .tex file.
func buildZip(outputDir, name string) ([]byte, error) {
	texName := name + ".tex"
	texData, err := os.ReadFile(filepath.Join(outputDir, texName))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", texName, err)
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	f, err := zw.Create(texName)
	if err != nil {
		return nil, fmt.Errorf("adding %s to archive: %w", texName, err)
	}
	if _, err := f.Write(texData); err != nil {
		return nil, fmt.Errorf("writing %s to archive: %w", texName, err)
	}

	imagesDirName := name + "_images"
	imagesDir := filepath.Join(outputDir, imagesDirName)
	if info, err := os.Stat(imagesDir); err == nil && info.IsDir() {
		err := filepath.WalkDir(imagesDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(imagesDir, path)
			if err != nil {
				return err
			}
			entry, err := zw.Create(imagesDirName + "/" + filepath.ToSlash(rel))
			if err != nil {
				return err
			}
			src, err := os.Open(path)
			if err != nil {
				return err
			}
			defer src.Close()
			_, err = io.Copy(entry, src)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("adding images to archive: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}
