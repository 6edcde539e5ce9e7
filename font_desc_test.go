package glterm

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCompact(t *testing.T) {
	text := `Mono

12 10
atlas/mono.png
3
32 0 0 0 0 0 0 6
65 0 0 6 9 0 1 6
66 6 0 6 9 0 1
0
`
	d, err := parseDescription("mono.sfl", text)
	if err != nil {
		t.Fatalf("parseDescription: %v", err)
	}

	if d.name != "Mono" || d.lineHeight != 12 || d.size != 10 || d.atlasFile != "atlas/mono.png" {
		t.Errorf("header = %q %d %d %q", d.name, d.lineHeight, d.size, d.atlasFile)
	}
	if len(d.glyphs) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(d.glyphs))
	}
	want := glyphRecord{id: 66, x: 6, y: 0, width: 6, height: 9, xOffset: 0, yOffset: 1}
	if d.glyphs[2] != want {
		t.Errorf("glyph 66 = %+v, want %+v", d.glyphs[2], want)
	}
	if d.glyphs[1].xAdvance != 6 {
		t.Errorf("glyph 65 xAdvance = %d, want 6", d.glyphs[1].xAdvance)
	}
}

func TestParseCompactNamedInfo(t *testing.T) {
	for _, name := range []string{"info", "info panel", "Info Panel"} {
		text := name + "\n12 10\nmono.png\n1\n65 0 0 6 9 0 1 6\n"
		d, err := parseDescription("info.sfl", text)
		if err != nil {
			t.Fatalf("name %q: %v", name, err)
		}
		if d.name != name || len(d.glyphs) != 1 {
			t.Errorf("name %q: parsed %q with %d glyphs", name, d.name, len(d.glyphs))
		}
	}
}

func TestIsBMFontInfo(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`info face="Pixel Mono" size=16`, true},
		{"info face=x", true},
		{"info", false},
		{"info panel font", false},
		{"Iosevka", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isBMFontInfo(tt.line); got != tt.want {
			t.Errorf("isBMFontInfo(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseCompactErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
		wantText string
	}{
		{
			name:     "empty",
			text:     "\n  \n",
			wantText: "empty description",
		},
		{
			name:     "short header",
			text:     "Mono\n12 10\nmono.png\n",
			wantText: "truncated header",
		},
		{
			name:     "bad metrics",
			text:     "Mono\n12 ten\nmono.png\n0\n",
			wantLine: 2,
			wantText: "invalid number",
		},
		{
			name:     "zero line height",
			text:     "Mono\n0 10\nmono.png\n0\n",
			wantLine: 2,
			wantText: "must be positive",
		},
		{
			name:     "missing characters",
			text:     "Mono\n12 10\nmono.png\n2\n65 0 0 6 9 0 1 6\n",
			wantLine: 5,
			wantText: "expected 2 characters, found 1",
		},
		{
			name:     "short character line",
			text:     "Mono\n12 10\nmono.png\n1\n\n65 0 0 6\n",
			wantLine: 6,
			wantText: "want 7 to 8 numbers, got 4",
		},
		{
			name:     "negative bounds",
			text:     "Mono\n12 10\nmono.png\n1\n65 -1 0 6 9 0 1 6\n",
			wantLine: 5,
			wantText: "negative atlas bounds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDescription("mono.sfl", tt.text)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("error = %v, want ErrFormat", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %T is not a *FormatError", err)
			}
			if fe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", fe.Line, tt.wantLine)
			}
			if !strings.Contains(fe.Reason, tt.wantText) {
				t.Errorf("Reason = %q, want it to contain %q", fe.Reason, tt.wantText)
			}
			if fe.Source != "mono.sfl" {
				t.Errorf("Source = %q, want mono.sfl", fe.Source)
			}
		})
	}
}

func TestFormatErrorMessage(t *testing.T) {
	err := &FormatError{Source: "a.sfl", Line: 3, Reason: "invalid number", Err: errors.New("boom")}
	if got, want := err.Error(), "glterm: a.sfl: line 3: invalid number: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	noLine := &FormatError{Source: "<raw>", Reason: "empty description"}
	if got, want := noLine.Error(), "glterm: <raw>: empty description"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseBMFont(t *testing.T) {
	text := `info face="Pixel Mono" size=16 bold=0
common lineHeight=18 base=14 scaleW=64 scaleH=64 pages=1
page id=0 file="pixel mono.png"
chars count=2
char id=32   x=0  y=0 width=0 height=0 xoffset=0 yoffset=0 xadvance=8 page=0
char id=65   x=0  y=0 width=7 height=11 xoffset=1 yoffset=3 page=0
kerning first=65 second=65 amount=0
`
	d, err := parseDescription("pixel.fnt", text)
	if err != nil {
		t.Fatalf("parseDescription: %v", err)
	}
	if d.name != "Pixel Mono" || d.size != 16 || d.lineHeight != 18 || d.atlasFile != "pixel mono.png" {
		t.Errorf("header = %q %d %d %q", d.name, d.size, d.lineHeight, d.atlasFile)
	}
	if len(d.glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(d.glyphs))
	}
	if d.glyphs[0].xAdvance != 8 || d.glyphs[1].xAdvance != 0 {
		t.Errorf("xAdvance = %d, %d, want 8, 0", d.glyphs[0].xAdvance, d.glyphs[1].xAdvance)
	}
	if d.glyphs[1].height != 11 || d.glyphs[1].yOffset != 3 {
		t.Errorf("glyph 65 = %+v", d.glyphs[1])
	}
}

func TestParseBMFontErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantText string
	}{
		{
			name:     "multi page",
			text:     "info face=x size=8\ncommon lineHeight=10 pages=2\npage id=0 file=a.png\n",
			wantText: "single-page",
		},
		{
			name:     "second page",
			text:     "info face=x size=8\ncommon lineHeight=10\npage id=0 file=a.png\npage id=1 file=b.png\n",
			wantText: "single-page",
		},
		{
			name:     "no size",
			text:     "info face=x\ncommon lineHeight=10 pages=1\npage id=0 file=a.png\n",
			wantText: "missing size",
		},
		{
			name:     "no common",
			text:     "info face=x size=8\npage id=0 file=a.png\n",
			wantText: "missing common lineHeight",
		},
		{
			name:     "no page",
			text:     "info face=x size=8\ncommon lineHeight=10 pages=1\n",
			wantText: "missing page file",
		},
		{
			name:     "char without width",
			text:     "info face=x size=8\ncommon lineHeight=10 pages=1\npage id=0 file=a.png\nchar id=65 x=0 y=0 height=8 xoffset=0 yoffset=0\n",
			wantText: "missing width",
		},
		{
			name:     "unterminated quote",
			text:     "info face=\"x size=8\n",
			wantText: "unterminated quote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDescription("x.fnt", tt.text)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("error = %v, want ErrFormat", err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantText)
			}
		})
	}
}

func TestParseAttrs(t *testing.T) {
	attrs, err := parseAttrs(`face="Hack Nerd" size=-12 stray padding=1,1,1,1 charset=""`)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"face":    "Hack Nerd",
		"size":    "-12",
		"padding": "1,1,1,1",
		"charset": "",
	}
	if len(attrs) != len(want) {
		t.Errorf("got %d attrs, want %d: %v", len(attrs), len(want), attrs)
	}
	for k, v := range want {
		if got, ok := attrs[k]; !ok || got != v {
			t.Errorf("attrs[%q] = %q, %v; want %q", k, got, ok, v)
		}
	}
}
