package imagepkg

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var textColor = image.NewUniform(color.White)

// faceCache keeps one face per pixel size for a single goroutine.
type faceCache struct {
	assets *Assets
	faces  map[int]font.Face
	err    error
}

func newFaceCache(a *Assets) *faceCache {
	return &faceCache{assets: a, faces: map[int]font.Face{}}
}

func (c *faceCache) get(size int) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f, err := c.assets.face(size)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return nil
	}
	c.faces[size] = f
	return f
}

// measure reports the advance width and ink height of text at size.
func (c *faceCache) measure(text string, size int) (int, int) {
	f := c.get(size)
	if f == nil {
		return 0, 0
	}
	return measureText(f, text)
}

func (c *faceCache) Close() {
	for _, f := range c.faces {
		f.Close()
	}
	c.faces = nil
}

func measureText(face font.Face, text string) (width, height int) {
	bounds, adv := font.BoundString(face, text)
	return adv.Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}

// drawBaselineCentered draws text centered on cx with its baseline at y.
func drawBaselineCentered(dst draw.Image, face font.Face, text string, cx, y int) {
	d := &font.Drawer{Dst: dst, Src: textColor, Face: face}
	adv := d.MeasureString(text)
	d.Dot = fixed.Point26_6{X: fixed.I(cx) - adv/2, Y: fixed.I(y)}
	d.DrawString(text)
}

// drawTopCentered draws text centered on cx with the top of its ink at top.
func drawTopCentered(dst draw.Image, face font.Face, text string, cx, top int) {
	bounds, adv := font.BoundString(face, text)
	d := &font.Drawer{
		Dst:  dst,
		Src:  textColor,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(cx) - adv/2, Y: fixed.I(top) - bounds.Min.Y},
	}
	d.DrawString(text)
}
