package imagepkg

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/youruser/shopmosaic/internal/catalog"
)

func whitePixelsInRows(t *testing.T, c Card, y0, y1 int) (count, minX, maxX int) {
	t.Helper()
	minX, maxX = CardSize, -1
	for y := y0; y < y1; y++ {
		for x := 0; x < CardSize; x++ {
			p := c.Image.NRGBAAt(x, y)
			if p.R > 200 && p.G > 200 && p.B > 200 {
				count++
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}
	}
	return count, minX, maxX
}

func TestRenderCardStretchesAndAnnotates(t *testing.T) {
	assets := newTestAssets(t)
	item := catalog.Item{ID: "cid_1", Name: "Renegade Raider", Price: 1200, Recency: catalog.Recency{Days: 5}}

	card, err := RenderCard(item, solidPNG(t, 300, 120, color.Black), 3, assets)
	require.NoError(t, err)
	require.Equal(t, "cid_1", card.ID)
	require.Equal(t, 3, card.Index)
	require.Equal(t, CardSize, card.Image.Bounds().Dx())
	require.Equal(t, CardSize, card.Image.Bounds().Dy())

	// away from the text rows the stretched source shows through
	require.Equal(t, color.NRGBA{A: 255}, nrgbaAt(card.Image, 10, 10))

	n, minX, maxX := whitePixelsInRows(t, card, 390, 421)
	require.Positive(t, n, "name should be drawn above its baseline")
	require.InDelta(t, CardSize/2, (minX+maxX)/2, 6, "name should be centered")

	n, _, _ = whitePixelsInRows(t, card, 470, 506)
	require.Positive(t, n, "price should be drawn")

	n, _, _ = whitePixelsInRows(t, card, 0, 380)
	require.Zero(t, n)
}

func TestRenderCardOverlayAlpha(t *testing.T) {
	f, err := DefaultFont()
	require.NoError(t, err)
	half := color.NRGBA{R: 255, A: 128}
	assets, err := NewAssets(f, solidCard("", 0, half).Image, solidCard("", 0, bgColor).Image)
	require.NoError(t, err)

	card, err := RenderCard(catalog.Item{ID: "x"}, solidPNG(t, 64, 64, color.Black), 0, assets)
	require.NoError(t, err)
	p := nrgbaAt(card.Image, 5, 5)
	require.InDelta(t, 128, int(p.R), 2)
	require.Zero(t, p.G)
	require.Equal(t, uint8(255), p.A)
}

func TestRenderCardDecodeError(t *testing.T) {
	_, err := RenderCard(catalog.Item{ID: "broken"}, []byte("not an image"), 0, newTestAssets(t))
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	require.Equal(t, "broken", decodeErr.ID)
}

func TestNewAssetsRejectsMissingResources(t *testing.T) {
	f, err := DefaultFont()
	require.NoError(t, err)

	_, err = NewAssets(nil, solidCard("", 0, bgColor).Image, solidCard("", 0, bgColor).Image)
	var assetErr *AssetLoadError
	require.True(t, errors.As(err, &assetErr))
	require.Equal(t, "font", assetErr.Asset)

	_, err = NewAssets(f, nil, solidCard("", 0, bgColor).Image)
	require.True(t, errors.As(err, &assetErr))
	require.Equal(t, "overlay", assetErr.Asset)
}

func TestLoadAssetsMissingFile(t *testing.T) {
	_, err := LoadAssets(AssetPaths{Overlay: "does/not/exist.png", Background: "nope.png"})
	var assetErr *AssetLoadError
	require.True(t, errors.As(err, &assetErr))
	require.Equal(t, "overlay", assetErr.Asset)
}
