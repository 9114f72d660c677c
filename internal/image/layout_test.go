package imagepkg

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		n, cols, rows, width, height int
	}{
		{1, 1, 1, 512, 834},
		{2, 2, 1, 1024, 834},
		{3, 2, 2, 1024, 1346},
		{4, 2, 2, 1024, 1346},
		{5, 3, 2, 1536, 1346},
		{9, 3, 3, 1536, 1858},
		{10, 4, 3, 2048, 1858},
	}
	for _, tt := range tests {
		l, err := NewLayout(tt.n)
		require.NoError(t, err)
		require.Equal(t, Layout{Count: tt.n, Columns: tt.cols, Rows: tt.rows, Width: tt.width, Height: tt.height}, l, "n=%d", tt.n)
	}
}

func TestNewLayoutRejectsEmpty(t *testing.T) {
	_, err := NewLayout(0)
	require.ErrorIs(t, err, ErrNoCards)
}

func TestTileOriginIsRowMajorBelowTitleBand(t *testing.T) {
	l, err := NewLayout(5)
	require.NoError(t, err)
	require.Equal(t, image.Pt(0, 322), l.TileOrigin(0))
	require.Equal(t, image.Pt(1024, 322), l.TileOrigin(2))
	require.Equal(t, image.Pt(0, 834), l.TileOrigin(3))
	require.Equal(t, image.Pt(512, 834), l.TileOrigin(4))
}
