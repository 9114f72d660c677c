package imagepkg

import (
	"errors"
	"fmt"
)

// ErrNoCards is returned when a mosaic is requested for an empty card set.
var ErrNoCards = errors.New("nothing to compose: no cards")

// DecodeError reports a source thumbnail that could not be decoded. It only
// affects the card for that item.
type DecodeError struct {
	ID  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image for item %s: %v", e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ConfigError reports an unusable mosaic destination.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mosaic config: %s %s", e.Field, e.Reason)
}

// AssetLoadError reports a shared asset (font, overlay, background) that
// could not be loaded. Nothing can be rendered without it.
type AssetLoadError struct {
	Asset string
	Path  string
	Err   error
}

func (e *AssetLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load %s asset: %v", e.Asset, e.Err)
	}
	return fmt.Sprintf("load %s asset %s: %v", e.Asset, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }
