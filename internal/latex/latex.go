// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex assembles a LaTeX document from extracted PDF content.
package latex

import (
	"fmt"
	"path"
	"strings"

	"github.com/pdiddy/pdf2tex/pkg/types"
)

const defaultGeometry = `\usepackage[a4paper, margin=2cm]{geometry}`

// escaper rewrites characters with special meaning in LaTeX into their
// text-mode equivalents, and normalizes common typographic characters.
// A single simultaneous pass keeps introduced backslashes intact.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
	`&`, `\&`,
	`$`, `\$`,
	`#`, `\#`,
	`%`, `\%`,
	"“", "``",
	"”", "''",
	"‘", "`",
	"’", "'",
	"—", "---",
	"–", "--",
	"…", `\dots{}`,
)

// Escape returns s with LaTeX special characters escaped for text mode.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Generate builds a complete LaTeX document from extracted content.
// docName (the sanitized source filename without extension) supplies the
// title. mathOCR maps image paths from content.ImagePaths to recognized
// LaTeX formulas; matched images are emitted as formulas instead of
// figures. Generation never fails: missing fields fall back to defaults.
func Generate(content *types.RawContent, docName string, mathOCR map[string]string) string {
	if content == nil {
		content = &types.RawContent{}
	}
	title := titleCase(strings.ReplaceAll(docName, "_", " "))

	parts := []string{
		`\documentclass{article}`,
		`\usepackage{graphicx}`,
		`\usepackage{amsmath}`,
		`\usepackage[utf8]{inputenc}`,
		geometryPackage(content.Margins),
		`\usepackage{hyperref}`,
		`\hypersetup{colorlinks=true, linkcolor=blue, filecolor=magenta, urlcolor=cyan, pdftitle={` +
			title + `}, pdfauthor={PDF Conversion Service}}`,
		`\title{` + title + `}`,
		`\author{PDF Conversion Service}`,
		`\date{\today}`,
		`\begin{document}`,
		`\maketitle`,
	}

	parts = append(parts, body(content.Text))

	if len(content.ImagePaths) > 0 {
		parts = append(parts, imageSection(content, mathOCR)...)
	}

	parts = append(parts, "\n\n\\end{document}")
	return strings.Join(parts, "\n")
}

// geometryPackage renders the geometry preamble line from the measured
// margins, or the a4paper default when margins are unavailable.
func geometryPackage(m *types.Margins) string {
	if m == nil {
		return defaultGeometry
	}
	return fmt.Sprintf(
		`\usepackage[left=%.2fcm,right=%.2fcm,top=%.2fcm,bottom=%.2fcm,includefoot, headheight=13.6pt]{geometry}`,
		clampZero(m.Left), clampZero(m.Right), clampZero(m.Top), clampZero(m.Bottom),
	)
}

// body converts extracted text into LaTeX paragraphs. Blocks separated
// by blank lines become paragraphs with single newlines as line breaks.
// Blocks recognized as display math pass through unescaped, wrapped in
// $$ delimiters unless already delimited.
func body(text string) string {
	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		block = strings.Trim(block, "\n")
		if isMathBlock(block) {
			if strings.HasPrefix(strings.TrimSpace(block), "$$") {
				paragraphs = append(paragraphs, block)
			} else {
				paragraphs = append(paragraphs, "$$\n"+block+"\n$$")
			}
			continue
		}
		escaped := Escape(block)
		paragraphs = append(paragraphs, strings.ReplaceAll(escaped, "\n", ` \\ `))
	}
	return strings.Join(paragraphs, "\n\n")
}

// imageSection renders extracted images as figures after a page break.
// Images with a math OCR result are inlined as formulas instead.
func imageSection(content *types.RawContent, mathOCR map[string]string) []string {
	parts := []string{
		"\n\n\\clearpage",
		`\section*{Extracted Images/Formulas}`,
	}

	var widthOpt string
	if m := content.Margins; m != nil && m.Width > 0 {
		widthOpt = fmt.Sprintf("width=%.2fcm, ", m.Width*0.8)
	}

	for _, imgPath := range content.ImagePaths {
		texPath := strings.ReplaceAll(imgPath, `\`, "/")
		caption := Escape(path.Base(texPath))

		if formula, ok := mathOCR[imgPath]; ok {
			parts = append(parts,
				fmt.Sprintf("\n%% Image %s recognized as a formula:", caption),
				formula,
			)
			continue
		}

		parts = append(parts,
			"\n\\begin{figure}[htbp]",
			`  \centering`,
			fmt.Sprintf(`  \includegraphics[%skeepaspectratio]{%s}`, widthOpt, texPath),
			fmt.Sprintf(`  \caption{Image: %s}`, caption),
			`\end{figure}`,
		)
	}
	return parts
}

// titleCase upper-cases the first letter of each space-separated word
// and lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
