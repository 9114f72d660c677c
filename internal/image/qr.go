package imagepkg

import (
	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 2048
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text. size is
// clamped to a sane pixel range.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	size = min(max(size, minQRSize), maxQRSize)
	return qrcode.Encode(text, qrcode.Medium, size)
}
