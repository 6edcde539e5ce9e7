package glterm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// rawSource names descriptions that were not read from a file.
const rawSource = "<raw>"

// GlyphMetrics holds the atlas region and placement of one character.
// U0 <= U1 and V0 <= V1, all within [0, 1].
type GlyphMetrics struct {
	ID int // code point from the description, before byte truncation

	// Normalized atlas rectangle (top-left and bottom-right).
	U0, V0 float32
	U1, V1 float32

	// Glyph bitmap size in atlas pixels.
	Width, Height int

	// Offset from the grid-cell origin to the glyph bitmap, in pixels.
	XOffset, YOffset int

	// Horizontal advance in pixels, 0 when the description omits it.
	XAdvance int
}

// Font is a loaded bitmap font: glyph table, line metrics and the RGBA
// atlas pixels. A Font is immutable once loaded and safe to share.
type Font struct {
	// Name is the face name from the description.
	Name string

	// LineHeight is the distance between rows in pixels.
	LineHeight int

	// Size is the nominal font size in pixels.
	Size int

	atlasWidth  int
	atlasHeight int
	atlasPixels []byte
	minYOffset  int

	// Keyed by the glyph id truncated to a byte, so ids >= 256 collide
	// with lower codes. Later description records win.
	glyphs map[byte]GlyphMetrics
}

// Load reads a font description from path and the atlas image it
// references, resolved relative to the description's directory.
func Load(path string) (*Font, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, assetError(path, err)
	}
	desc, err := parseDescription(path, string(text))
	if err != nil {
		return nil, err
	}

	atlasPath := desc.atlasFile
	if !filepath.IsAbs(atlasPath) {
		atlasPath = filepath.Join(filepath.Dir(path), filepath.FromSlash(atlasPath))
	}
	atlas, err := os.ReadFile(atlasPath)
	if err != nil {
		return nil, assetError(atlasPath, err)
	}
	return buildFont(atlasPath, desc, atlas)
}

// LoadFS is Load over a file system, such as an embed.FS. The atlas path
// is resolved relative to name using slash-separated paths.
func LoadFS(fsys fs.FS, name string) (*Font, error) {
	text, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, assetError(name, err)
	}
	desc, err := parseDescription(name, string(text))
	if err != nil {
		return nil, err
	}

	atlasPath := path.Join(path.Dir(name), desc.atlasFile)
	atlas, err := fs.ReadFile(fsys, atlasPath)
	if err != nil {
		return nil, assetError(atlasPath, err)
	}
	return buildFont(atlasPath, desc, atlas)
}

// LoadRaw builds a font from description text and atlas image bytes that
// are already in memory, typically embedded with go:embed. The atlas path
// named inside the description is ignored.
func LoadRaw(description string, atlas []byte) (*Font, error) {
	desc, err := parseDescription(rawSource, description)
	if err != nil {
		return nil, err
	}
	return buildFont(rawSource, desc, atlas)
}

func assetError(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrAssetMissing, name)
	}
	return fmt.Errorf("glterm: read %s: %w", name, err)
}

// buildFont is the single decode-and-normalize step behind every loader.
func buildFont(atlasSource string, desc *description, atlasData []byte) (*Font, error) {
	atlas, err := decodeAtlas(atlasSource, atlasData)
	if err != nil {
		return nil, err
	}

	f := &Font{
		Name:        desc.name,
		LineHeight:  desc.lineHeight,
		Size:        desc.size,
		atlasWidth:  atlas.width,
		atlasHeight: atlas.height,
		atlasPixels: atlas.pixels,
		glyphs:      make(map[byte]GlyphMetrics, len(desc.glyphs)),
	}

	w, h := float32(atlas.width), float32(atlas.height)
	for i, g := range desc.glyphs {
		// Compared by subtraction so huge coordinates cannot wrap past the check.
		if g.width > atlas.width || g.x > atlas.width-g.width ||
			g.height > atlas.height || g.y > atlas.height-g.height {
			return nil, &FormatError{
				Source: atlasSource,
				Reason: fmt.Sprintf("character %d lies outside the %dx%d atlas", g.id, atlas.width, atlas.height),
			}
		}
		if i == 0 || g.yOffset < f.minYOffset {
			f.minYOffset = g.yOffset
		}
		f.glyphs[byte(g.id)] = GlyphMetrics{
			ID:       g.id,
			U0:       float32(g.x) / w,
			U1:       float32(g.x+g.width) / w,
			V0:       float32(g.y) / h,
			V1:       float32(g.y+g.height) / h,
			Width:    g.width,
			Height:   g.height,
			XOffset:  g.xOffset,
			YOffset:  g.yOffset,
			XAdvance: g.xAdvance,
		}
	}

	Logger().Debug("font loaded",
		"name", f.Name, "glyphs", len(f.glyphs),
		"atlas_width", f.atlasWidth, "atlas_height", f.atlasHeight)
	return f, nil
}

// Glyph returns the metrics for r. Only the low byte of r is used, matching
// how the glyph table is keyed. Missing characters return an error wrapping
// ErrCharacterNotFound; callers typically fall back to a placeholder glyph.
func (f *Font) Glyph(r rune) (GlyphMetrics, error) {
	code := byte(r)
	if g, ok := f.glyphs[code]; ok {
		return g, nil
	}
	return GlyphMetrics{}, fmt.Errorf("%w: '%d'", ErrCharacterNotFound, code)
}

// HasGlyph reports whether the font has a glyph for the low byte of r.
func (f *Font) HasGlyph(r rune) bool {
	_, ok := f.glyphs[byte(r)]
	return ok
}

// GlyphCount returns the number of distinct character codes in the font.
func (f *Font) GlyphCount() int { return len(f.glyphs) }

// AtlasWidth returns the atlas width in pixels.
func (f *Font) AtlasWidth() int { return f.atlasWidth }

// AtlasHeight returns the atlas height in pixels.
func (f *Font) AtlasHeight() int { return f.atlasHeight }

// AtlasPixels returns the RGBA8 atlas, width*height*4 bytes. The slice is
// shared; callers must not modify it.
func (f *Font) AtlasPixels() []byte { return f.atlasPixels }

// MinYOffset returns the smallest YOffset of any glyph. Layout subtracts it
// to pull the tallest glyph flush with the top of its cell.
func (f *Font) MinYOffset() int { return f.minYOffset }

// CellSize returns the pixel size of one monospace grid cell: the widest
// advance and the line height. Fonts without advances use Size as width.
func (f *Font) CellSize() (w, h int) {
	for _, g := range f.glyphs {
		if g.XAdvance > w {
			w = g.XAdvance
		}
	}
	if w == 0 {
		w = f.Size
	}
	return w, f.LineHeight
}
