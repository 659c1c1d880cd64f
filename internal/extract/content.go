// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
)

// parsePageContent turns a raw PDF content stream into readable text by
// collecting the operands of text show operators (Tj, TJ, ', ").
// Returns "" when the stream carries no readable text.
func parsePageContent(content string) string {
	var texts []string
	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, " Tj") && !strings.Contains(line, " TJ") &&
			!strings.Contains(line, "' ") && !strings.Contains(line, "\" ") {
			continue
		}
		texts = append(texts, textOperands(line)...)
	}
	if len(texts) == 0 {
		return ""
	}
	return cleanupText(strings.Join(texts, " "))
}

// textOperands extracts the parenthesized string operands from one
// content stream line, undoing the basic PDF escapes.
func textOperands(line string) []string {
	var texts []string
	inText := false
	start := -1

	for i, c := range line {
		switch {
		case c == '(' && (i == 0 || line[i-1] != '\\'):
			inText = true
			start = i + 1
		case c == ')' && inText && (i == 0 || line[i-1] != '\\'):
			if start != -1 && start < i {
				text := line[start:i]
				text = strings.ReplaceAll(text, `\(`, "(")
				text = strings.ReplaceAll(text, `\)`, ")")
				text = strings.ReplaceAll(text, `\\`, `\`)
				text = strings.ReplaceAll(text, `\n`, "\n")
				text = strings.ReplaceAll(text, `\r`, "\r")
				text = strings.ReplaceAll(text, `\t`, "\t")
				if strings.TrimSpace(text) != "" {
					texts = append(texts, text)
				}
			}
			inText = false
			start = -1
		}
	}
	return texts
}

// octalReplacements maps octal escape sequences commonly seen in PDF
// strings to their readable equivalents.
var octalReplacements = map[string]string{
	`\037`: "",
	`\260`: "°",
	`\256`: "®",
	`\251`: "©",
	`\221`: "'",
	`\231`: "'",
	`\223`: "“",
	`\224`: "”",
	`\226`: "–",
	`\227`: "—",
	`\240`: " ",
	`\011`: "\t",
	`\012`: "\n",
	`\015`: "\r",
}

// cleanupText normalizes decoded text: known octal escapes are replaced,
// unknown ones dropped, control and binary characters stripped, and
// whitespace around punctuation tidied.
func cleanupText(text string) string {
	text = strings.TrimSpace(text)

	for octal, repl := range octalReplacements {
		text = strings.ReplaceAll(text, octal, repl)
	}
	text = dropUnknownOctals(text)
	text = stripBinary(text)

	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	for _, p := range []string{".", ",", "!", "?", ";", ":"} {
		text = strings.ReplaceAll(text, " "+p, p)
	}
	return text
}

// dropUnknownOctals removes any remaining three-digit octal escapes.
func dropUnknownOctals(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for i < len(text) {
		if i+3 < len(text) && text[i] == '\\' &&
			isOctalDigit(text[i+1]) && isOctalDigit(text[i+2]) && isOctalDigit(text[i+3]) {
			i += 4
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

// stripBinary keeps printable and common typographic characters,
// replaces control characters with spaces, and drops the rest.
func stripBinary(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 32 && r <= 126,
			r == '\n', r == '\r', r == '\t',
			r >= 0x00A0 && r <= 0x00FF,
			r >= 0x2000 && r <= 0x206F:
			b.WriteRune(r)
		case r < 32:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
