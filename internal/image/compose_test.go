package imagepkg

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

var palette = []color.NRGBA{
	{R: 200, A: 255},
	{G: 200, A: 255},
	{B: 200, A: 255},
	{R: 200, G: 200, A: 255},
	{G: 200, B: 200, A: 255},
}

func paletteCards() []Card {
	cards := make([]Card, len(palette))
	for i, c := range palette {
		cards[i] = solidCard(string(rune('a'+i)), i, c)
	}
	return cards
}

func TestComposePlacesCardsInOrder(t *testing.T) {
	c := NewComposer(newTestAssets(t))
	m, err := c.Compose(paletteCards(), MosaicConfig{Title: "Item Shop", ShowDate: true, Date: "2024-05-10"})
	require.NoError(t, err)

	require.Equal(t, 1536, m.Image.Bounds().Dx())
	require.Equal(t, 1346, m.Image.Bounds().Dy())
	for i, want := range palette {
		at := m.Layout.TileOrigin(i)
		require.Equal(t, want, nrgbaAt(m.Image, at.X+CardSize/2, at.Y+CardSize/2), "tile %d", i)
	}

	// the sixth slot is empty and shows the background texture
	require.Equal(t, bgColor, nrgbaAt(m.Image, 1536-10, 1346-10))
	// title band corner is background
	require.Equal(t, bgColor, nrgbaAt(m.Image, 5, 5))
	require.False(t, m.Title.Truncated)
	require.LessOrEqual(t, m.Title.BlockHeight, TitleBandHeight)
}

func TestComposeIsDeterministic(t *testing.T) {
	c := NewComposer(newTestAssets(t))
	cfg := MosaicConfig{Title: "OG Items", ShowDate: true, Date: "2024-05-10"}

	a, err := c.Compose(paletteCards(), cfg)
	require.NoError(t, err)
	b, err := c.Compose(paletteCards(), cfg)
	require.NoError(t, err)
	require.Equal(t, a.Layout, b.Layout)
	require.Equal(t, a.Title, b.Title)
	require.Equal(t, a.Image.Pix, b.Image.Pix)

	ja, err := EncodeJPEG(a.Image)
	require.NoError(t, err)
	jb, err := EncodeJPEG(b.Image)
	require.NoError(t, err)
	require.Equal(t, ja, jb)
}

func TestComposeDefaultsDateToToday(t *testing.T) {
	c := NewComposer(newTestAssets(t))
	c.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

	withDefault, err := c.Compose(paletteCards()[:1], MosaicConfig{Title: "Shop", ShowDate: true})
	require.NoError(t, err)
	explicit, err := c.Compose(paletteCards()[:1], MosaicConfig{Title: "Shop", ShowDate: true, Date: "2024-05-10"})
	require.NoError(t, err)
	require.Equal(t, explicit.Image.Pix, withDefault.Image.Pix)

	other, err := c.Compose(paletteCards()[:1], MosaicConfig{Title: "Shop", ShowDate: true, Date: "1999-01-01"})
	require.NoError(t, err)
	require.NotEqual(t, explicit.Image.Pix, other.Image.Pix)
}

func TestComposeResizesOddSizedCards(t *testing.T) {
	c := NewComposer(newTestAssets(t))
	small := Card{ID: "s", Image: imaging.New(64, 64, palette[0])}
	m, err := c.Compose([]Card{small}, MosaicConfig{Title: "Shop"})
	require.NoError(t, err)
	p := nrgbaAt(m.Image, CardSize-1, TitleBandHeight+CardSize-1)
	require.InDelta(t, int(palette[0].R), int(p.R), 1)
	require.Equal(t, uint8(255), p.A)
}

func TestComposeEmpty(t *testing.T) {
	c := NewComposer(newTestAssets(t))
	_, err := c.Compose(nil, MosaicConfig{Title: "Shop"})
	require.ErrorIs(t, err, ErrNoCards)
}

func TestComposeRejectsBadDestinationBeforeRendering(t *testing.T) {
	c := NewComposer(newTestAssets(t))
	_, err := c.Compose(nil, MosaicConfig{Destination: Destination{Kind: DestCustom, Name: "x"}})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, "key", cfgErr.Field)
}

func TestComposeFileWritesOpaqueJPEG(t *testing.T) {
	root := t.TempDir()
	c := NewComposer(newTestAssets(t))
	res, err := c.ComposeFile(paletteCards()[:4], MosaicConfig{
		Title:       "Item Shop",
		ShowDate:    true,
		Date:        "2024-05-10",
		Destination: Destination{Kind: DestDefault, Hash: "abc123"},
	}, root)
	require.NoError(t, err)
	require.Equal(t, "shops/shop-abc123.jpg", res.Path)

	img, err := imaging.Open(filepath.Join(root, "shops", "shop-abc123.jpg"))
	require.NoError(t, err)
	require.Equal(t, 1024, img.Bounds().Dx())
	require.Equal(t, 1346, img.Bounds().Dy())
	_, _, _, a := img.At(3, 3).RGBA()
	require.Equal(t, uint32(0xffff), a)
}

func TestComposeFileEmptyWritesNothing(t *testing.T) {
	root := t.TempDir()
	c := NewComposer(newTestAssets(t))
	_, err := c.ComposeFile(nil, MosaicConfig{Title: "Shop", Destination: Destination{Hash: "h"}}, root)
	require.ErrorIs(t, err, ErrNoCards)

	_, statErr := os.Stat(filepath.Join(root, "shops"))
	require.True(t, os.IsNotExist(statErr))
}

func TestFlattenRemovesTransparency(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{R: 255, A: 0})
	flat := Flatten(img)
	require.Equal(t, color.NRGBA{A: 255}, flat.NRGBAAt(1, 1))
}
