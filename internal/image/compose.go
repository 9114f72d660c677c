package imagepkg

import (
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/disintegration/imaging"
)

// TitleBandHeight is the height reserved above the tile grid for the title
// and date.
const TitleBandHeight = 322

// Layout is the grid geometry for a mosaic of Count cards.
type Layout struct {
	Count   int
	Columns int
	Rows    int
	Width   int
	Height  int
}

// NewLayout sizes a near-square grid for n cards: ceil(sqrt(n)) columns and
// as many rows as needed.
func NewLayout(n int) (Layout, error) {
	if n < 1 {
		return Layout{}, ErrNoCards
	}
	cols := isqrt(n)
	if cols*cols < n {
		cols++
	}
	rows := (n + cols - 1) / cols
	return Layout{
		Count:   n,
		Columns: cols,
		Rows:    rows,
		Width:   cols * CardSize,
		Height:  rows*CardSize + TitleBandHeight,
	}, nil
}

func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// TileOrigin returns the top-left corner of tile i, counting row-major from
// the top-left of the grid.
func (l Layout) TileOrigin(i int) image.Point {
	return image.Pt((i%l.Columns)*CardSize, TitleBandHeight+(i/l.Columns)*CardSize)
}

// MosaicConfig describes one mosaic: banner text and where it is saved.
// An empty Date with ShowDate set prints the composition day.
type MosaicConfig struct {
	Title       string
	ShowDate    bool
	Date        string
	Destination Destination
}

// Mosaic is a composed, not yet encoded, shop image.
type Mosaic struct {
	Image  *image.NRGBA
	Layout Layout
	Title  TitleFit
}

// Composer tiles rendered cards under a title banner. It keeps no state
// between calls.
type Composer struct {
	assets *Assets
	now    func() time.Time
}

func NewComposer(assets *Assets) *Composer {
	return &Composer{assets: assets, now: time.Now}
}

// Compose paints the background, the fitted title and every card in the
// order given. The destination is validated before any drawing.
func (c *Composer) Compose(cards []Card, cfg MosaicConfig) (Mosaic, error) {
	if err := cfg.Destination.Validate(); err != nil {
		return Mosaic{}, err
	}
	layout, err := NewLayout(len(cards))
	if err != nil {
		return Mosaic{}, err
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	tile(canvas, c.assets.background)

	faces := newFaceCache(c.assets)
	defer faces.Close()

	fit := FitTitle(cfg.Title, layout.Width, cfg.ShowDate, faces.measure)
	if faces.err != nil {
		return Mosaic{}, fmt.Errorf("title font: %w", faces.err)
	}

	top := (TitleBandHeight - fit.BlockHeight) / 2
	drawTopCentered(canvas, faces.get(fit.Size), fit.Text, layout.Width/2, top)
	if cfg.ShowDate {
		date := cfg.Date
		if date == "" {
			date = c.now().Format("2006-01-02")
		}
		face := faces.get(fit.DateSize)
		if face == nil {
			return Mosaic{}, fmt.Errorf("date font: %w", faces.err)
		}
		drawTopCentered(canvas, face, date, layout.Width/2, top+fit.Height+dateGap)
	}

	for i, card := range cards {
		src := card.Image
		if src.Bounds().Dx() != CardSize || src.Bounds().Dy() != CardSize {
			src = imaging.Resize(src, CardSize, CardSize, imaging.Lanczos)
		}
		at := layout.TileOrigin(i)
		draw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(image.Pt(CardSize, CardSize))}, src, src.Bounds().Min, draw.Over)
	}

	return Mosaic{Image: canvas, Layout: layout, Title: fit}, nil
}

// tile repeats texture from the origin until dst is covered; partial tiles
// at the right and bottom edges are clipped.
func tile(dst *image.NRGBA, texture *image.NRGBA) {
	tw, th := texture.Bounds().Dx(), texture.Bounds().Dy()
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += th {
		for x := b.Min.X; x < b.Max.X; x += tw {
			r := image.Rect(x, y, x+tw, y+th).Intersect(b)
			draw.Draw(dst, r, texture, texture.Bounds().Min, draw.Src)
		}
	}
}
