package typescript

import (
	"strings"
)

// DocString renders free text as a TSDoc comment. Empty text renders as "".
// Text that is already a doc block is unwrapped first, so formatting is
// idempotent.
func DocString(text string) string {
	lines := docLines(text)
	switch len(lines) {
	case 0:
		return ""
	case 1:
		return "/** " + lines[0] + " */"
	}

	var sb strings.Builder
	sb.WriteString("/**\n")
	for _, line := range lines {
		if line == "" {
			sb.WriteString(" *\n")
			continue
		}
		sb.WriteString(" * ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(" */")
	return sb.String()
}

// docLines unwraps, dedents and trims text into comment body lines.
func docLines(text string) []string {
	text = unwrapDocBlock(text)
	text = strings.ReplaceAll(text, "*/", `*\/`)

	lines := strings.Split(Dedent(text), "\n")
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// unwrapDocBlock strips /** */ delimiters and leading " * " markers.
func unwrapDocBlock(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/**") || !strings.HasSuffix(trimmed, "*/") || len(trimmed) < 5 {
		return text
	}
	inner := trimmed[3 : len(trimmed)-2]

	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		rest := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(rest, "*") {
			rest = strings.TrimPrefix(rest[1:], " ")
			lines[i] = rest
			continue
		}
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// Dedent removes the common leading whitespace of all non-blank lines and
// trailing whitespace from every line. Blank lines become empty.
func Dedent(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	minIndent := -1
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		lines[i] = line
		if line == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent > 0 {
		for i, line := range lines {
			if line != "" {
				lines[i] = line[minIndent:]
			}
		}
	}
	return strings.Join(lines, "\n")
}

// Indent prefixes every non-empty line with two spaces.
func Indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

// withDoc places a doc comment above code when text is non-empty.
func withDoc(text, code string) string {
	doc := DocString(text)
	if doc == "" {
		return code
	}
	return doc + "\n" + code
}
