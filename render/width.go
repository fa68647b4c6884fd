// Package render formats search reports for terminals, HTML and JSON.
package render

import "strings"

// UnicodeWidth returns the display width of a rune in terminal cells.
func UnicodeWidth(r rune) int {
	if r < 0x80 {
		if r < 0x20 || r == 0x7F {
			return 0
		}
		return 1
	}
	if isZeroWidth(r) {
		return 0
	}
	if isWideChar(r) {
		return 2
	}
	return 1
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += UnicodeWidth(r)
	}
	return width
}

func isZeroWidth(r rune) bool {
	return (r >= 0x0300 && r <= 0x036F) ||
		(r >= 0x1AB0 && r <= 0x1AFF) ||
		(r >= 0x1DC0 && r <= 0x1DFF) ||
		(r >= 0x20D0 && r <= 0x20FF) ||
		(r >= 0xFE00 && r <= 0xFE0F) ||
		(r >= 0xFE20 && r <= 0xFE2F) ||
		(r >= 0xE0100 && r <= 0xE01EF) ||
		r == 0x200B || r == 0x200C || r == 0x200D || r == 0x2060 || r == 0xFEFF
}

func isWideChar(r rune) bool {
	return (r >= 0x1100 && r <= 0x115F) ||
		(r >= 0x2E80 && r <= 0x303E) ||
		(r >= 0x3041 && r <= 0x33FF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x4E00 && r <= 0xA4CF) ||
		(r >= 0xAC00 && r <= 0xD7A3) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0xFE10 && r <= 0xFE6B) ||
		(r >= 0xFF01 && r <= 0xFF60) ||
		(r >= 0xFFE0 && r <= 0xFFE6) ||
		(r >= 0x1F300 && r <= 0x1F64F) ||
		(r >= 0x20000 && r <= 0x3FFFD)
}

// Wrap breaks text into lines of at most width cells, prefixing every line
// with indent. Words longer than a line are split.
func Wrap(text string, width int, indent string) []string {
	avail := width - StringWidth(indent)
	if avail <= 0 {
		avail = 1
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	flush := func() {
		if lineWidth > 0 {
			lines = append(lines, indent+line.String())
		}
		line.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Fields(text) {
		w := StringWidth(word)
		switch {
		case lineWidth > 0 && lineWidth+1+w <= avail:
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + w
		case w <= avail:
			flush()
			line.WriteString(word)
			lineWidth = w
		default:
			flush()
			for _, part := range breakWord(word, avail) {
				lines = append(lines, indent+part)
			}
		}
	}
	flush()
	return lines
}

func breakWord(word string, maxWidth int) []string {
	var parts []string
	var part strings.Builder
	partWidth := 0
	for _, r := range word {
		w := UnicodeWidth(r)
		if partWidth+w > maxWidth && partWidth > 0 {
			parts = append(parts, part.String())
			part.Reset()
			partWidth = 0
		}
		part.WriteRune(r)
		partWidth += w
	}
	if partWidth > 0 {
		parts = append(parts, part.String())
	}
	return parts
}

// TruncateToWidth truncates a string to fit within the specified width.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	for i, r := range s {
		charWidth := UnicodeWidth(r)
		if width+charWidth > maxWidth {
			return s[:i]
		}
		width += charWidth
	}
	return s
}

// Truncate truncates a string adding an ellipsis if needed.
func Truncate(s string, width int) string {
	if StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return TruncateToWidth(s, width)
	}
	return TruncateToWidth(s, width-1) + "…"
}

func padRight(s string, width int) string {
	sWidth := StringWidth(s)
	if sWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sWidth)
}
