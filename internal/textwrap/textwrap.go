// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package textwrap wraps generated text to a column limit without ever
// splitting a token.
//
// Two modes are used by the generators. Word mode breaks documentation text at
// whitespace only, so hyphenated words stay whole. Comma mode breaks
// configuration strings only after a comma; joining its output lines gives
// back the input unchanged.
package textwrap

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DocWidth is the column limit for documentation lines, prefix included.
	DocWidth = 80
	// TableWidth is the limit for one string-literal line of a config table.
	TableWidth = 72

	tabWidth = 8
)

// Mode selects where a Wrapper may break.
type Mode int

const (
	Words Mode = iota
	Commas
)

// Wrapper breaks text into lines of at most Width runes. A single unit wider
// than Width is placed alone on its own line.
type Wrapper struct {
	Width int
	Mode  Mode
}

// ForPrefix returns a word-mode wrapper for lines that will be written after
// prefix, so that prefix plus line fits in DocWidth columns.
func ForPrefix(prefix string) Wrapper {
	return Wrapper{Width: DocWidth - ExpandedWidth(prefix), Mode: Words}
}

// Table returns the comma-mode wrapper used for default and check tables.
func Table() Wrapper {
	return Wrapper{Width: TableWidth, Mode: Commas}
}

// Wrap splits text into lines. Empty input yields no lines.
func (w Wrapper) Wrap(text string) []string {
	if text == "" {
		return nil
	}
	width := w.Width
	if width < 1 {
		width = 1
	}

	var chunks []string
	dropSpace := false
	switch w.Mode {
	case Commas:
		chunks = splitAfterCommas(text)
	default:
		chunks = splitWords(ExpandTabs(text))
		dropSpace = true
	}

	var lines []string
	for len(chunks) > 0 {
		// Whitespace carried to the start of a continuation line is dropped.
		if dropSpace && len(lines) > 0 && isSpace(chunks[0]) {
			chunks = chunks[1:]
			continue
		}

		var cur []string
		curLen := 0
		for len(chunks) > 0 {
			n := utf8.RuneCountInString(chunks[0])
			if curLen+n > width {
				break
			}
			cur = append(cur, chunks[0])
			curLen += n
			chunks = chunks[1:]
		}
		if len(cur) == 0 {
			// Oversized unit: it gets a line of its own.
			cur = append(cur, chunks[0])
			chunks = chunks[1:]
		}
		if dropSpace && isSpace(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			lines = append(lines, strings.Join(cur, ""))
		}
	}
	return lines
}

// splitAfterCommas cuts text into segments that each end in a comma, except
// possibly the last.
func splitAfterCommas(text string) []string {
	var out []string
	for text != "" {
		i := strings.IndexByte(text, ',')
		if i < 0 {
			out = append(out, text)
			break
		}
		out = append(out, text[:i+1])
		text = text[i+1:]
	}
	return out
}

// splitWords alternates runs of non-space and space characters. Every
// whitespace character is normalized to a plain space first.
func splitWords(text string) []string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)

	var out []string
	start := 0
	for i := 1; i <= len(text); i++ {
		if i == len(text) || (text[i] == ' ') != (text[start] == ' ') {
			out = append(out, text[start:i])
			start = i
		}
	}
	return out
}

func isSpace(chunk string) bool {
	return strings.TrimLeft(chunk, " ") == ""
}

// ExpandTabs replaces tabs with spaces up to the next multiple of eight columns.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}

// ExpandedWidth is the display width of s once tabs are expanded.
func ExpandedWidth(s string) int {
	return utf8.RuneCountInString(ExpandTabs(s))
}

// Dedent removes the whitespace prefix common to every non-blank line.
// Lines holding only whitespace become empty.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")
	margin := ""
	first := true
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
	}
	if margin == "" {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
