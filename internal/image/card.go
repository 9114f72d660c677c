package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/youruser/shopmosaic/internal/catalog"
)

// CardSize is the edge length of a rendered card and of a mosaic tile.
const CardSize = 512

// card text rows: baseline y and pixel size, all centered on the card.
var (
	nameRow    = textRow{y: 420, size: 35}
	recencyRow = textRow{y: 450, size: 15}
	priceRow   = textRow{y: 505, size: 40}
)

type textRow struct {
	y    int
	size int
}

// Card is one annotated square thumbnail ready for tiling.
type Card struct {
	ID    string
	Index int
	Image *image.NRGBA
}

// RenderCard decodes src, stretches it to CardSize, lays the overlay on top
// and prints the item's name, recency and price. A source that cannot be
// decoded yields a *DecodeError.
func RenderCard(item catalog.Item, src []byte, index int, assets *Assets) (Card, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return Card{}, &DecodeError{ID: item.ID, Err: err}
	}
	if img.Bounds().Empty() {
		return Card{}, &DecodeError{ID: item.ID, Err: errors.New("empty image")}
	}
	return renderCard(item, img, index, assets)
}

func renderCard(item catalog.Item, img image.Image, index int, assets *Assets) (Card, error) {
	canvas := imaging.Resize(img, CardSize, CardSize, imaging.Lanczos)
	canvas = imaging.Overlay(canvas, assets.overlay, image.Pt(0, 0), 1.0)

	lines := []struct {
		row  textRow
		text string
	}{
		{nameRow, item.Name},
		{recencyRow, item.Recency.Label()},
		{priceRow, strconv.Itoa(item.Price)},
	}
	for _, l := range lines {
		face, err := assets.face(l.row.size)
		if err != nil {
			return Card{}, fmt.Errorf("card %s: %w", item.ID, err)
		}
		drawBaselineCentered(canvas, face, l.text, CardSize/2, l.row.y)
		face.Close()
	}
	return Card{ID: item.ID, Index: index, Image: canvas}, nil
}
