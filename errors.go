package glterm

import (
	"errors"
	"fmt"
)

// Font loading and terminal errors. Loader failures are final: a loader
// that returns one of these never returns a partially built Font.
var (
	// ErrAssetMissing reports a description or atlas file that does not exist.
	ErrAssetMissing = errors.New("glterm: font asset missing")

	// ErrFormat reports a description that violates its grammar or an
	// atlas image that cannot be decoded.
	ErrFormat = errors.New("glterm: malformed font asset")

	// ErrUnsupportedColorFormat reports an atlas that decodes to anything
	// other than 8-bit non-premultiplied RGBA.
	ErrUnsupportedColorFormat = errors.New("glterm: atlas is not RGBA")

	// ErrCorruptAsset reports an atlas whose pixel buffer does not match
	// its declared dimensions.
	ErrCorruptAsset = errors.New("glterm: atlas pixel buffer is deformed")

	// ErrUnsupportedOperation reports a graphics operation on a headless
	// terminal. It signals caller misuse and is never worth retrying.
	ErrUnsupportedOperation = errors.New("glterm: operation requires a graphics backend")

	// ErrCharacterNotFound reports a glyph lookup for a character the font
	// does not contain.
	ErrCharacterNotFound = errors.New("glterm: character not found")
)

// FormatError describes where a font description violated its grammar.
// It matches ErrFormat under errors.Is.
type FormatError struct {
	Source string // description path, or "<raw>" for in-memory text
	Line   int    // 1-based, 0 when the error is not tied to a line
	Reason string
	Err    error // underlying cause, may be nil
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("glterm: %s: %s", e.Source, msg)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
