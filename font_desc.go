package glterm

import (
	"fmt"
	"strconv"
	"strings"
)

// glyphRecord is one character line of a font description, in atlas pixels.
type glyphRecord struct {
	id            int
	x, y          int
	width, height int
	xOffset       int
	yOffset       int
	xAdvance      int
}

// description is the parsed, not yet normalized, form of a font description.
type description struct {
	name       string
	lineHeight int
	size       int
	atlasFile  string
	glyphs     []glyphRecord
}

// parseDescription decodes either the compact .sfl grammar or the BMFont
// text grammar. The grammar is picked from the first non-blank line: BMFont
// opens with an "info" tag followed by key=value attributes.
func parseDescription(source, text string) (*description, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, &FormatError{Source: source, Reason: "empty description"}
	}
	if isBMFontInfo(lines[0].text) {
		return parseBMFont(source, lines)
	}
	return parseCompact(source, lines)
}

func isBMFontInfo(line string) bool {
	first := strings.Fields(line)
	return len(first) > 1 && first[0] == "info" && strings.Contains(first[1], "=")
}

// numberedLine is a non-blank description line with its 1-based position.
type numberedLine struct {
	n    int
	text string
}

func splitLines(text string) []numberedLine {
	var out []numberedLine
	for i, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, numberedLine{n: i + 1, text: l})
	}
	return out
}

// parseCompact reads the .sfl layout:
//
//	name
//	lineHeight size
//	atlas file
//	count
//	id x y width height xoffset yoffset [xadvance]   (count lines)
//	[kerning count and kerning lines, ignored]
func parseCompact(source string, lines []numberedLine) (*description, error) {
	if len(lines) < 4 {
		return nil, &FormatError{Source: source, Reason: "truncated header, want name, metrics, atlas and count lines"}
	}
	d := &description{name: lines[0].text}

	metrics, err := parseInts(source, lines[1], 2, 2)
	if err != nil {
		return nil, err
	}
	d.lineHeight, d.size = metrics[0], metrics[1]
	if d.lineHeight <= 0 || d.size <= 0 {
		return nil, &FormatError{Source: source, Line: lines[1].n, Reason: "line height and size must be positive"}
	}

	d.atlasFile = lines[2].text

	count, err := parseInts(source, lines[3], 1, 1)
	if err != nil {
		return nil, err
	}
	if count[0] < 0 {
		return nil, &FormatError{Source: source, Line: lines[3].n, Reason: "negative character count"}
	}
	if len(lines)-4 < count[0] {
		return nil, &FormatError{
			Source: source,
			Line:   lines[len(lines)-1].n,
			Reason: fmt.Sprintf("expected %d characters, found %d", count[0], len(lines)-4),
		}
	}

	d.glyphs = make([]glyphRecord, 0, count[0])
	for _, l := range lines[4 : 4+count[0]] {
		v, err := parseInts(source, l, 7, 8)
		if err != nil {
			return nil, err
		}
		g := glyphRecord{id: v[0], x: v[1], y: v[2], width: v[3], height: v[4], xOffset: v[5], yOffset: v[6]}
		if len(v) == 8 {
			g.xAdvance = v[7]
		}
		if err := checkGlyph(source, l.n, g); err != nil {
			return nil, err
		}
		d.glyphs = append(d.glyphs, g)
	}
	return d, nil
}

// parseBMFont reads the AngelCode BMFont text layout. Kerning pairs and
// unknown tags are skipped.
func parseBMFont(source string, lines []numberedLine) (*description, error) {
	d := &description{}
	var haveCommon, havePage bool

	for _, l := range lines {
		tag, rest, _ := strings.Cut(l.text, " ")
		attrs, err := parseAttrs(rest)
		if err != nil {
			return nil, &FormatError{Source: source, Line: l.n, Reason: err.Error()}
		}

		switch tag {
		case "info":
			d.name = attrs["face"]
			size, err := attrInt(source, l.n, attrs, "size")
			if err != nil {
				return nil, err
			}
			// Negative sizes mean "match character height" in BMFont.
			if size < 0 {
				size = -size
			}
			d.size = size
		case "common":
			if d.lineHeight, err = attrInt(source, l.n, attrs, "lineHeight"); err != nil {
				return nil, err
			}
			if pages, ok := attrs["pages"]; ok && pages != "1" {
				return nil, &FormatError{Source: source, Line: l.n, Reason: "only single-page fonts are supported"}
			}
			haveCommon = true
		case "page":
			if id := attrs["id"]; id != "" && id != "0" {
				return nil, &FormatError{Source: source, Line: l.n, Reason: "only single-page fonts are supported"}
			}
			d.atlasFile = attrs["file"]
			havePage = d.atlasFile != ""
		case "char":
			var g glyphRecord
			fields := []struct {
				key string
				dst *int
			}{
				{"id", &g.id}, {"x", &g.x}, {"y", &g.y},
				{"width", &g.width}, {"height", &g.height},
				{"xoffset", &g.xOffset}, {"yoffset", &g.yOffset},
			}
			for _, f := range fields {
				if *f.dst, err = attrInt(source, l.n, attrs, f.key); err != nil {
					return nil, err
				}
			}
			if _, ok := attrs["xadvance"]; ok {
				if g.xAdvance, err = attrInt(source, l.n, attrs, "xadvance"); err != nil {
					return nil, err
				}
			}
			if err := checkGlyph(source, l.n, g); err != nil {
				return nil, err
			}
			d.glyphs = append(d.glyphs, g)
		}
	}

	switch {
	case d.size <= 0:
		return nil, &FormatError{Source: source, Reason: "missing info size"}
	case !haveCommon || d.lineHeight <= 0:
		return nil, &FormatError{Source: source, Reason: "missing common lineHeight"}
	case !havePage:
		return nil, &FormatError{Source: source, Reason: "missing page file"}
	}
	return d, nil
}

func checkGlyph(source string, line int, g glyphRecord) error {
	if g.x < 0 || g.y < 0 || g.width < 0 || g.height < 0 {
		return &FormatError{Source: source, Line: line, Reason: fmt.Sprintf("character %d has negative atlas bounds", g.id)}
	}
	return nil
}

func parseInts(source string, l numberedLine, minN, maxN int) ([]int, error) {
	fields := strings.Fields(l.text)
	if len(fields) < minN || len(fields) > maxN {
		reason := fmt.Sprintf("want %d numbers, got %d", minN, len(fields))
		if minN != maxN {
			reason = fmt.Sprintf("want %d to %d numbers, got %d", minN, maxN, len(fields))
		}
		return nil, &FormatError{Source: source, Line: l.n, Reason: reason}
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &FormatError{Source: source, Line: l.n, Reason: "invalid number", Err: err}
		}
		out[i] = v
	}
	return out, nil
}

func attrInt(source string, line int, attrs map[string]string, key string) (int, error) {
	s, ok := attrs[key]
	if !ok {
		return 0, &FormatError{Source: source, Line: line, Reason: "missing " + key}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FormatError{Source: source, Line: line, Reason: "invalid " + key, Err: err}
	}
	return v, nil
}

// parseAttrs splits `key=value key="quoted value"` pairs. Tokens without
// '=' are ignored.
func parseAttrs(s string) (map[string]string, error) {
	attrs := make(map[string]string)
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return attrs, nil
		}
		eq := strings.IndexByte(s, '=')
		sp := strings.IndexAny(s, " \t")
		if eq < 0 || (sp >= 0 && sp < eq) {
			if sp < 0 {
				return attrs, nil
			}
			s = s[sp:]
			continue
		}
		key := s[:eq]
		s = s[eq+1:]

		var val string
		if strings.HasPrefix(s, `"`) {
			end := strings.IndexByte(s[1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote in %s", key)
			}
			val = s[1 : end+1]
			s = s[end+2:]
		} else if sp := strings.IndexAny(s, " \t"); sp >= 0 {
			val, s = s[:sp], s[sp:]
		} else {
			val, s = s, ""
		}
		attrs[key] = val
	}
}
