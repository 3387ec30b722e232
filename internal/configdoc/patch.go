// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"bytes"
	"regexp"
	"strings"

	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/schema"
	"grimm.is/confgen/internal/textwrap"
)

const (
	markStart = "@configstart"
	markEmpty = "@configempty"
	markEnd   = "@configend"
)

// startRe matches a block opener. Group 1 is the comment prefix written in
// front of every generated line, group 2 the method name.
var startRe = regexp.MustCompile(`^(\s*(?:\*|//|#)\s*)@config(?:empty|start)\{(.*?),.*\}`)

// Patcher replaces @config blocks in an interface file with documentation
// generated from a registry.
type Patcher struct {
	reg *schema.Registry
	// seeAlso is written after the method name in the opening marker.
	seeAlso string
}

// NewPatcher returns a Patcher over reg. seeAlso names the schema source in
// the regenerated markers, as in "@configstart{m, see <seeAlso>}".
func NewPatcher(reg *schema.Registry, seeAlso string) *Patcher {
	return &Patcher{reg: reg, seeAlso: seeAlso}
}

// Result is the outcome of one patch pass.
type Result struct {
	Output      []byte
	Diagnostics []schema.Diagnostic
	// Blocks counts regenerated marker blocks.
	Blocks int
}

// Patch rewrites input. Lines keep their original terminators; a missing
// final newline stays missing.
func (p *Patcher) Patch(input []byte) (*Result, error) {
	lines := strings.SplitAfter(string(input), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	out, res, err := p.PatchLines(lines)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, l := range out {
		buf.WriteString(l)
	}
	res.Output = buf.Bytes()
	return res, nil
}

// PatchLines runs the block state machine over lines, each of which carries
// its own terminator. The returned Result has no Output set.
func (p *Patcher) PatchLines(lines []string) ([]string, *Result, error) {
	m := &machine{p: p, res: &Result{}}
	for i, line := range lines {
		if err := m.step(i+1, line); err != nil {
			return nil, nil, err
		}
	}
	if m.state == SkippingBlock {
		return nil, nil, errors.Attr(
			errors.Errorf(errors.KindParse, "line %d: %s{%s} is never closed by %s", m.openLine, markStart, m.openMethod, markEnd),
			"method", m.openMethod)
	}
	return m.out, m.res, nil
}

type machine struct {
	p     *Patcher
	state State
	out   []string
	res   *Result

	openMethod string
	openLine   int
}

func (m *machine) step(lineNo int, line string) error {
	if m.state == SkippingBlock {
		if strings.Contains(line, markEnd) {
			m.state = Copying
		}
		return nil
	}

	match := startRe.FindStringSubmatch(line)
	if match == nil {
		m.out = append(m.out, line)
		return nil
	}
	prefix, name := match[1], match[2]

	method, ok := m.p.reg.Lookup(name)
	if !ok {
		m.res.Diagnostics = append(m.res.Diagnostics, schema.Diagnostic{
			Kind:   schema.UnknownMethod,
			Method: name,
			Line:   lineNo,
		})
		m.out = append(m.out, line)
		return nil
	}

	if strings.Contains(line, markStart) {
		m.state = SkippingBlock
		m.openMethod, m.openLine = name, lineNo
	}
	m.res.Blocks++

	eol := lineEnding(line)
	items := method.Emitted()
	if len(items) == 0 {
		m.out = append(m.out, prefix+markEmpty+"{"+name+", see "+m.p.seeAlso+"}"+eol)
		return nil
	}

	block, err := m.p.block(prefix, name, eol, items)
	if err != nil {
		return errors.Attr(errors.Wrapf(err, errors.KindSchema, "line %d: generate %s", lineNo, name), "method", name)
	}
	m.out = append(m.out, block...)
	return nil
}

// lineEnding returns the terminator of a marker line. Generated lines reuse it.
func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// block renders a full @configstart ... @configend replacement, ending each
// line with eol.
func (p *Patcher) block(prefix, name, eol string, items []schema.ConfigItem) ([]string, error) {
	out := []string{prefix + markStart + "{" + name + ", see " + p.seeAlso + "}" + eol}
	w := textwrap.ForPrefix(prefix)
	for _, item := range items {
		entry, err := Entry(item)
		if err != nil {
			return nil, err
		}
		for _, l := range w.Wrap(entry) {
			out = append(out, prefix+l+eol)
		}
	}
	return append(out, prefix+markEnd+eol), nil
}
