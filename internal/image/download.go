package imagepkg

import (
	"context"
	"errors"
	"fmt"

	"github.com/youruser/shopmosaic/internal/util"
)

// DownloadImage fetches the raw bytes of a thumbnail. Decoding is left to
// RenderCard so that a corrupt body is reported as a DecodeError.
func DownloadImage(ctx context.Context, url string) ([]byte, error) {
	body, err := util.GetBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("download %s: %w", url, errors.New("empty response"))
	}
	return body, nil
}
