package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

var (
	bgColor      = color.NRGBA{R: 20, G: 40, B: 90, A: 255}
	overlayColor = color.NRGBA{A: 0}
)

// newTestAssets builds assets from the built-in font, a fully transparent
// overlay and a small solid background texture.
func newTestAssets(t *testing.T) *Assets {
	t.Helper()
	f, err := DefaultFont()
	require.NoError(t, err)
	a, err := NewAssets(f, imaging.New(CardSize, CardSize, overlayColor), imaging.New(100, 70, bgColor))
	require.NoError(t, err)
	return a
}

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(w, h, c)))
	return buf.Bytes()
}

func solidCard(id string, index int, c color.Color) Card {
	return Card{ID: id, Index: index, Image: imaging.New(CardSize, CardSize, c)}
}

func nrgbaAt(img *image.NRGBA, x, y int) color.NRGBA {
	return img.NRGBAAt(x, y)
}
