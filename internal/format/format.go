// Package format normalizes preference files to canonical HCL layout.
package format

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// Format returns content laid out in canonical preference style. Blank
// lines are dropped inside blocks and collapsed to one at the top level,
// and every top-level block, along with any comment above it, is set
// apart by one blank line. hclwrite then supplies indentation, spacing
// and attribute alignment.
//
// Partial or invalid HCL is formatted on a best-effort basis, so the
// language server can format while the user is still typing.
func Format(content string) (string, error) {
	body, newline := strings.CutSuffix(content, "\n")
	lines := strings.Split(body, "\n")
	layout := scanLines([]byte(body), len(lines))

	out := make([]string, 0, len(lines)+len(lines)/2)
	blank := false
	for i, line := range lines {
		switch {
		case layout[i].verbatim:
			out = append(out, line)
			continue
		case strings.TrimSpace(line) == "":
			if layout[i].depth == 0 && len(out) > 0 {
				blank = true
			}
			continue
		}

		if blank {
			out = append(out, "")
			blank = false
		}
		if layout[i].blockStart {
			out = separate(out)
		}
		out = append(out, line)
	}

	joined := strings.Join(out, "\n")
	if newline {
		joined += "\n"
	}
	return string(hclwrite.Format([]byte(joined))), nil
}

// Check reports whether content is already canonically formatted, along
// with the formatted text.
func Check(content string) (string, bool, error) {
	formatted, err := Format(content)
	if err != nil {
		return "", false, err
	}
	return formatted, formatted == content, nil
}

// separate makes sure a blank line sits above the block about to be
// appended to out, keeping comments directly above it attached.
func separate(out []string) []string {
	at := len(out)
	for at > 0 && isComment(out[at-1]) {
		at--
	}
	if at == 0 || out[at-1] == "" {
		return out
	}
	out = append(out, "")
	copy(out[at+1:], out[at:])
	out[at] = ""
	return out
}

func isComment(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*")
}

type lineInfo struct {
	depth      int  // brace depth at the start of the line
	blockStart bool // a top-level block header opens on this line
	verbatim   bool // heredoc body, left untouched
}

func scanLines(src []byte, n int) []lineInfo {
	info := make([]lineInfo, n)
	tokens, _ := hclsyntax.LexConfig(src, "", hcl.InitialPos)

	depth, line := 0, 0
	header, assigned, first := false, false, true
	heredoc := 0
	for _, tok := range tokens {
		for line < tok.Range.Start.Line && line < n {
			line++
			info[line-1].depth = depth
			header, assigned, first = false, false, true
		}

		switch tok.Type {
		case hclsyntax.TokenNewline, hclsyntax.TokenComment, hclsyntax.TokenEOF:
			continue
		case hclsyntax.TokenOHeredoc:
			heredoc = tok.Range.Start.Line
		case hclsyntax.TokenCHeredoc:
			for l := heredoc + 1; l < tok.Range.Start.Line && l <= n; l++ {
				info[l-1].verbatim = true
			}
		case hclsyntax.TokenEqual:
			assigned = true
		case hclsyntax.TokenOBrace:
			if header && !assigned && depth == 0 && line > 0 {
				info[line-1].blockStart = true
			}
			depth++
		case hclsyntax.TokenCBrace:
			depth = max(depth-1, 0)
		}
		if first {
			header = depth == 0 && tok.Type == hclsyntax.TokenIdent
			first = false
		}
	}
	for line < n {
		line++
		info[line-1].depth = depth
	}
	return info
}
