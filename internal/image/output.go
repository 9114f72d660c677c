package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/youruser/shopmosaic/internal/util"
)

// JPEGQuality is the encoder quality used for every mosaic.
const JPEGQuality = 85

// DestinationKind selects the output path convention.
type DestinationKind int

const (
	// DestDefault is the regular shop image, keyed by shop hash.
	DestDefault DestinationKind = iota
	// DestOG is the rare-items image, keyed by shop hash.
	DestOG
	// DestCustom is a caller-named image under a caller key.
	DestCustom
)

func (k DestinationKind) String() string {
	switch k {
	case DestDefault:
		return "default"
	case DestOG:
		return "og"
	case DestCustom:
		return "custom"
	}
	return fmt.Sprintf("DestinationKind(%d)", int(k))
}

// Destination says where a mosaic is written. Hash applies to the default
// kinds; Key, Name and OG apply to custom images.
type Destination struct {
	Kind DestinationKind
	Hash string
	Key  string
	Name string
	OG   bool
}

const unknownHash = "unknown"

// Validate checks the fields the kind requires. Custom destinations never
// fall back to a default path.
func (d Destination) Validate() error {
	switch d.Kind {
	case DestDefault, DestOG:
		if d.Hash != "" && !safeSegment(d.Hash) {
			return &ConfigError{Field: "hash", Reason: "must be a single path segment"}
		}
	case DestCustom:
		if d.Key == "" {
			return &ConfigError{Field: "key", Reason: "is required for custom images"}
		}
		if d.Name == "" {
			return &ConfigError{Field: "name", Reason: "is required for custom images"}
		}
		if !safeSegment(d.Key) {
			return &ConfigError{Field: "key", Reason: "must be a single path segment"}
		}
		if !safeSegment(d.Name) {
			return &ConfigError{Field: "name", Reason: "must be a single path segment"}
		}
	default:
		return &ConfigError{Field: "destination", Reason: fmt.Sprintf("has unknown kind %d", int(d.Kind))}
	}
	return nil
}

func safeSegment(s string) bool {
	return s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// ResolveOutputPath returns the slash-separated path of the mosaic relative
// to the output root.
func ResolveOutputPath(d Destination) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	hash := d.Hash
	if hash == "" {
		hash = unknownHash
	}
	switch d.Kind {
	case DestOG:
		return path.Join("shops", "og", "og-"+hash+".jpg"), nil
	case DestCustom:
		name := d.Name
		if d.OG {
			name = "og-" + name
		}
		return path.Join("shops", "custom", d.Key, name+".jpg"), nil
	default:
		return path.Join("shops", "shop-"+hash+".jpg"), nil
	}
}

// Flatten composites img over opaque black so the result has no transparency.
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.Black)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// EncodeJPEG flattens img and encodes it at JPEGQuality.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, Flatten(img), imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Result describes a mosaic written to disk.
type Result struct {
	Path   string
	Layout Layout
	Title  TitleFit
}

// ComposeFile composes cards and writes the JPEG under root. The target path
// is resolved first and the file only appears once fully written.
func (c *Composer) ComposeFile(cards []Card, cfg MosaicConfig, root string) (Result, error) {
	rel, err := ResolveOutputPath(cfg.Destination)
	if err != nil {
		return Result{}, err
	}
	m, err := c.Compose(cards, cfg)
	if err != nil {
		return Result{}, err
	}
	data, err := EncodeJPEG(m.Image)
	if err != nil {
		return Result{}, err
	}
	if err := util.WriteFileAtomic(filepath.Join(root, filepath.FromSlash(rel)), data, 0o644); err != nil {
		return Result{}, fmt.Errorf("save mosaic %s: %w", rel, err)
	}
	return Result{Path: rel, Layout: m.Layout, Title: m.Title}, nil
}
