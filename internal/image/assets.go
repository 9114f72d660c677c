package imagepkg

import (
	"errors"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// AssetPaths locates the shared rendering assets on disk. An empty Font path
// selects the built-in Go Regular face.
type AssetPaths struct {
	Font       string
	Overlay    string
	Background string
}

// Assets holds the font, card overlay and background texture. They are loaded
// once and only read afterwards, so one Assets value can be shared by every
// render worker.
type Assets struct {
	font       *opentype.Font
	overlay    *image.NRGBA
	background *image.NRGBA
}

// LoadAssets reads and decodes the assets named by p.
func LoadAssets(p AssetPaths) (*Assets, error) {
	fontData := goregular.TTF
	if p.Font != "" {
		data, err := os.ReadFile(p.Font)
		if err != nil {
			return nil, &AssetLoadError{Asset: "font", Path: p.Font, Err: err}
		}
		fontData = data
	}
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, &AssetLoadError{Asset: "font", Path: p.Font, Err: err}
	}

	overlay, err := imaging.Open(p.Overlay)
	if err != nil {
		return nil, &AssetLoadError{Asset: "overlay", Path: p.Overlay, Err: err}
	}
	background, err := imaging.Open(p.Background)
	if err != nil {
		return nil, &AssetLoadError{Asset: "background", Path: p.Background, Err: err}
	}
	return NewAssets(f, overlay, background)
}

// NewAssets builds Assets from already decoded resources. The overlay is
// stretched to the card size if needed.
func NewAssets(f *opentype.Font, overlay, background image.Image) (*Assets, error) {
	if f == nil {
		return nil, &AssetLoadError{Asset: "font", Err: errors.New("missing font")}
	}
	if overlay == nil || overlay.Bounds().Empty() {
		return nil, &AssetLoadError{Asset: "overlay", Err: errors.New("empty image")}
	}
	if background == nil || background.Bounds().Empty() {
		return nil, &AssetLoadError{Asset: "background", Err: errors.New("empty image")}
	}

	ov := imaging.Clone(overlay)
	if ov.Bounds().Dx() != CardSize || ov.Bounds().Dy() != CardSize {
		ov = imaging.Resize(ov, CardSize, CardSize, imaging.Lanczos)
	}
	return &Assets{
		font:       f,
		overlay:    ov,
		background: imaging.Clone(background),
	}, nil
}

// DefaultFont returns the built-in Go Regular font.
func DefaultFont() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
}

// face returns a new face at size pixels. Faces are not safe for concurrent
// use; callers own the returned face and must close it.
func (a *Assets) face(size int) (font.Face, error) {
	return opentype.NewFace(a.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
