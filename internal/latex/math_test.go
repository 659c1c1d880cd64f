// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import "testing"

func TestIsMathBlock(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  bool
	}{
		{
			name: "plain prose paragraph",
			block: "Introduction.\nThis is the first paragraph. It contains several sentences.\n" +
				"Accented characters like é à ô are common in some languages.",
			want: false,
		},
		{
			name: "prose with math-like words",
			block: "This is a second paragraph.\nIt also contains normal text without any mathematical formulas.\n" +
				"Words like 'for', 'let', 'sum' might appear but not in a math context.",
			want: false,
		},
		{name: "explicit dollar-dollar block", block: "$$\nE = mc^2\n$$", want: true},
		{name: "explicit bracket block", block: "\\[\n\\sum_{i=0}^n x_i = Y\n\\]", want: true},
		{name: "equation environment", block: "\\begin{equation}\na^2 + b^2 = c^2\n\\end{equation}", want: true},
		{name: "align environment", block: "\\begin{align}\nx &= y + z \\\\\na &= b * c\n\\end{align}", want: true},
		{name: "starred gather environment", block: "\\begin{gather*}\nx_1, x_2 \\\\\ny_1, y_2\n\\end{gather*}", want: true},
		{name: "heuristic plain equations", block: "a = b + c\nf(x) = x^2 - 2x + 1", want: true},
		{name: "heuristic latex equations", block: "\\frac{d}{dx} \\sin(x) = \\cos(x)\n\\int y dy = \\frac{y^2}{2}", want: true},
		{name: "intro line before math", block: "The first equation is:", want: false},
		{name: "inline math in prose", block: "This paragraph has inline math like $x > 0$.", want: false},
		{name: "inline commands in prose", block: "The variable is $\\alpha$ and the sum is $\\sum y_i$.", want: false},
		{name: "item is never block math", block: "\\item First point.", want: false},
		{name: "item with inline math", block: "\\item $x^2 + y^2 = z^2$", want: false},
		{name: "item opening display math", block: "\\item \n$$\na = b+c\n$$", want: false},
		{name: "markdown dash item", block: "- Markdown style list", want: false},
		{name: "markdown star item", block: "* Another item", want: false},
		{name: "short equation line", block: "x = 1", want: true},
		{name: "short note line", block: "Note:", want: false},
		{name: "short inequality", block: "y > 2", want: true},
		{name: "conclusion line", block: "Conclusion.", want: false},
		{name: "empty string", block: "", want: false},
		{name: "whitespace only", block: "   ", want: false},
		{name: "newlines only", block: "\n\n", want: false},
		{name: "plain word", block: "word", want: false},
		{name: "long word", block: "Hamiltonian", want: false},
		{name: "single variable x", block: "x", want: true},
		{name: "single variable E", block: "E", want: true},
		{name: "single math command", block: "\\alpha", want: true},
		{name: "capitalized word Alpha", block: "Alpha", want: false},
		{name: "section command", block: "\\section{Introduction}", want: false},
		{name: "subsection command", block: "\\subsection{Details}", want: false},
		{name: "textit command", block: "\\textit{italic text}", want: false},
		{name: "textbf command", block: "\\textbf{bold text}", want: false},
		{name: "caption command", block: "\\caption{This is a caption. With period.}", want: false},
		{name: "label command", block: "\\label{fig:myfig}", want: false},
		{name: "ref command", block: "\\ref{eq:1}", want: false},
		{
			name: "complex heuristic math",
			block: "P(A|B) = \\frac{P(B|A)P(A)}{P(B)}\n" +
				"\\nabla \\cdot E = \\frac{\\rho}{\\epsilon_0}\n" +
				"\\oint_S E \\cdot dA = \\frac{Q_{enc}}{\\epsilon_0}",
			want: true,
		},
		{name: "text with few symbols", block: "This line has a > symbol and a = sign but is text.", want: false},
		{name: "dense single math line", block: "x_1, x_2, \\ldots, x_n \\in \\mathbb{R}^d", want: true},
		{name: "single line equation", block: "f(x, y, z) = (x^2 + y^2 + z^2)^{1/2}", want: true},
		{name: "one math word not dense enough", block: "a single math word like \\sum here", want: false},
		{name: "prose with one math keyword", block: "This text contains the word \\sum perhaps.", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isMathBlock(tt.block); got != tt.want {
				t.Errorf("isMathBlock(%q) = %v, want %v", tt.block, got, tt.want)
			}
		})
	}
}

func TestHasMathCommand(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`\frac{a}{b}`, true},
		{`z = \alpha + \beta`, true},
		{`\textit{italic}`, false},
		{`no commands here`, false},
		{`trailing backslash \`, false},
	}
	for _, tt := range tests {
		if got := hasMathCommand(tt.line); got != tt.want {
			t.Errorf("hasMathCommand(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
