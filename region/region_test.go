package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizeHelpers(t *testing.T) {
	require.Equal(t, int64(640*480*3), ImageSize(640, 480, 3))
	require.Equal(t, int64(HeaderSize)+640*480*3*SlotCount, Size(640, 480, 3))
}

func TestCreateOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region")

	r, err := CreateFile(path, 4, 4, 1)
	require.NoError(t, err)
	defer r.Unmap()

	hdr := r.Header()
	hdr.Width, hdr.Height, hdr.Depth = 4, 4, 1

	img := r.Image(1)
	require.Len(t, img, 16)
	for i := range img {
		img[i] = byte(i)
	}

	require.NoError(t, r.File().Close())

	opened, err := OpenFile(path)
	require.NoError(t, err)
	defer opened.Unmap()

	reopened := opened.Image(1)
	for i := range reopened {
		require.Equal(t, byte(i), reopened[i])
	}
}

func TestCreateFileRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region")

	r, err := CreateFile(path, 2, 2, 1)
	require.NoError(t, err)
	defer r.Unmap()

	_, err = CreateFile(path, 2, 2, 1)
	require.Error(t, err)
	require.True(t, os.IsExist(err))
}
