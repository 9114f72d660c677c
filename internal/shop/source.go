package shop

import (
	"context"
	"os"

	"github.com/youruser/shopmosaic/internal/catalog"
	imagepkg "github.com/youruser/shopmosaic/internal/image"
)

// FetchFunc returns the raw bytes behind an item's image reference.
type FetchFunc func(ctx context.Context, ref string) ([]byte, error)

// Fetch downloads http(s) references and reads anything else from disk.
func Fetch(ctx context.Context, ref string) ([]byte, error) {
	if catalog.IsRemote(ref) {
		return imagepkg.DownloadImage(ctx, ref)
	}
	return os.ReadFile(ref)
}
