// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import "strings"

// mathEnvironments are LaTeX environments that mark a block as display
// math when present.
var mathEnvironments = []string{
	`\begin{equation}`, `\begin{equation*}`,
	`\begin{align}`, `\begin{align*}`,
	`\begin{gather}`, `\begin{gather*}`,
}

// textCommands are LaTeX commands that mark a block as regular text
// when it starts with one of them.
var textCommands = []string{
	`\section`, `\subsection`, `\subsubsection`,
	`\textit`, `\textbf`, `\caption`, `\label`, `\ref`,
	`\begin{itemize}`, `\begin{enumerate}`,
}

// mathCommands are LaTeX commands that only appear in math mode. Used
// as an equation signal by the line heuristic.
var mathCommands = map[string]bool{
	"frac": true, "sum": true, "int": true, "oint": true, "prod": true,
	"sqrt": true, "partial": true, "nabla": true, "infty": true,
	"cdot": true, "times": true, "pm": true, "approx": true,
	"leq": true, "geq": true, "neq": true, "in": true, "to": true,
	"ldots": true, "dots": true, "mathbb": true, "mathcal": true,
	"sin": true, "cos": true, "tan": true, "log": true, "ln": true, "exp": true,
	"alpha": true, "beta": true, "gamma": true, "delta": true,
	"epsilon": true, "theta": true, "lambda": true, "mu": true,
	"pi": true, "rho": true, "sigma": true, "phi": true, "omega": true,
	"Delta": true, "Gamma": true, "Omega": true, "Sigma": true,
}

// isMathBlock reports whether a paragraph-sized text block is display
// math. Explicitly delimited math ($$, \[, or a math environment) is
// always math; blocks opening with list items or text commands never
// are. Otherwise a majority of the block's lines must look like
// equations.
func isMathBlock(block string) bool {
	s := strings.TrimSpace(block)
	if s == "" {
		return false
	}

	if strings.HasPrefix(s, `\item`) {
		return false
	}
	if strings.HasPrefix(s, "$$") || strings.HasPrefix(s, `\[`) {
		return true
	}
	for _, env := range mathEnvironments {
		if strings.Contains(s, env) {
			return true
		}
	}
	for _, cmd := range textCommands {
		if strings.HasPrefix(s, cmd) {
			return false
		}
	}
	if strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") {
		return false
	}

	var total, equations int
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		total++
		if lineIsEquation(line) {
			equations++
		}
	}
	return total > 0 && equations*2 > total
}

// lineIsEquation applies the per-line heuristic: the line must carry an
// equation signal (a relational operator or a math-only command) and
// must not read like prose. Inline math ($...$ inside a sentence) does
// not make a line an equation.
func lineIsEquation(line string) bool {
	if strings.Contains(line, "$") {
		return false
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}

	// A lone variable or math command counts as an equation.
	if len(tokens) == 1 {
		t := tokens[0]
		if len(t) == 1 && isLetter(rune(t[0])) {
			return true
		}
		if strings.HasPrefix(t, `\`) && mathCommands[t[1:]] {
			return true
		}
		return false
	}

	hasSignal := strings.Contains(line, "=") ||
		strings.Contains(line, "<") ||
		strings.Contains(line, ">") ||
		hasMathCommand(line)
	if !hasSignal {
		return false
	}

	// Prose-dominated lines are text even when they mention operators.
	prose := 0
	for _, t := range tokens {
		if isProseWord(t) {
			prose++
		}
	}
	return prose*2 <= len(tokens)
}

// hasMathCommand reports whether line contains a backslash command from
// the math-only set.
func hasMathCommand(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != '\\' {
			continue
		}
		j := i + 1
		for j < len(line) && isLetter(rune(line[j])) {
			j++
		}
		if j > i+1 && mathCommands[line[i+1:j]] {
			return true
		}
		i = j - 1
	}
	return false
}

// isProseWord reports whether a token is a plain word of two or more
// letters, with no math markup attached.
func isProseWord(t string) bool {
	if len(t) < 2 {
		return false
	}
	for _, r := range t {
		if !isLetter(r) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
