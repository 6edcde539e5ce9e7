package glterm

import (
	_ "embed"
	"sync"
)

var (
	//go:embed fonts/iosevka.sfl
	iosevkaSFL string

	//go:embed fonts/iosevka.png
	iosevkaPNG []byte
)

var defaultFont = sync.OnceValues(func() (*Font, error) {
	return LoadRaw(iosevkaSFL, iosevkaPNG)
})

// DefaultFont returns the bundled Iosevka font. It is decoded once and the
// same *Font is shared by every caller.
func DefaultFont() (*Font, error) {
	return defaultFont()
}
