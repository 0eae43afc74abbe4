package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	img "github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"serwer-zdjec/internal/storage"
)

// encodeTestJPEG koduje w pamięci prawdziwy JPEG o zadanych wymiarach.
func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	m := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			m.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, m, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func newTestPipeline(t *testing.T) (*Pipeline, *storage.BlobStore) {
	t.Helper()
	bs, err := storage.NewBlobStore(t.TempDir())
	require.NoError(t, err)
	return NewPipeline(bs), bs
}

func TestVersionPaths(t *testing.T) {
	thumb, medium := VersionPaths("anna/photo/abc.jpg")
	require.Equal(t, "anna/photo/abc_thumb.jpg", thumb)
	require.Equal(t, "anna/photo/abc_medium.jpg", medium)

	thumb, medium = VersionPaths("anna/photo/xyz.jpeg")
	require.Equal(t, "anna/photo/xyz_thumb.jpeg", thumb)
	require.Equal(t, "anna/photo/xyz_medium.jpeg", medium)
}

func TestGenerateVersions(t *testing.T) {
	p, bs := newTestPipeline(t)

	blob, err := bs.Store(encodeTestJPEG(t, 1600, 900), "image/jpeg", "wide.jpg", "jan", storage.CategoryPhoto)
	require.NoError(t, err)

	versions, err := p.GenerateVersions(blob.RelativePath)
	require.NoError(t, err)

	// Oba warianty istnieją i mają oczekiwaną szerokość
	absThumb, err := bs.Resolve(versions.ThumbPath)
	require.NoError(t, err)
	thumbImg, err := img.Open(absThumb)
	require.NoError(t, err)
	require.Equal(t, 300, thumbImg.Bounds().Dx())

	absMedium, err := bs.Resolve(versions.MediumPath)
	require.NoError(t, err)
	mediumImg, err := img.Open(absMedium)
	require.NoError(t, err)
	require.Equal(t, 1280, mediumImg.Bounds().Dx())
}

func TestGenerateVersions_MissingOriginal(t *testing.T) {
	p, bs := newTestPipeline(t)

	_, err := p.GenerateVersions("jan/photo/nie-ma.jpg")
	require.Error(t, err)

	// Po błędzie nie może zostać żaden półprodukt
	thumb, medium := VersionPaths("jan/photo/nie-ma.jpg")
	for _, rel := range []string{thumb, medium} {
		abs, rerr := bs.Resolve(rel)
		require.NoError(t, rerr)
		_, serr := os.Stat(abs)
		require.True(t, os.IsNotExist(serr))
	}
}

func TestGenerateVersions_CorruptOriginalLeavesNoPartials(t *testing.T) {
	p, bs := newTestPipeline(t)

	// Nagłówek JPEG z uciętą resztą: zapis przejdzie, dekodowanie nie
	blob, err := bs.Store([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, "image/jpeg", "broken.jpg", "jan", storage.CategoryPhoto)
	require.NoError(t, err)

	_, err = p.GenerateVersions(blob.RelativePath)
	require.Error(t, err)

	thumb, medium := VersionPaths(blob.RelativePath)
	for _, rel := range []string{thumb, medium} {
		abs, rerr := bs.Resolve(rel)
		require.NoError(t, rerr)
		_, serr := os.Stat(abs)
		require.True(t, os.IsNotExist(serr), "partial rendition left behind: %s", rel)
	}
}

func TestDeleteVersions(t *testing.T) {
	p, bs := newTestPipeline(t)

	blob, err := bs.Store(encodeTestJPEG(t, 800, 600), "image/jpeg", "a.jpg", "jan", storage.CategoryPhoto)
	require.NoError(t, err)
	versions, err := p.GenerateVersions(blob.RelativePath)
	require.NoError(t, err)

	// Usuń ręcznie miniaturę, żeby sprawdzić tolerancję na braki
	require.NoError(t, bs.Delete(versions.ThumbPath))

	require.NoError(t, p.DeleteVersions(blob.RelativePath))

	for _, rel := range []string{blob.RelativePath, versions.ThumbPath, versions.MediumPath} {
		abs, rerr := bs.Resolve(rel)
		require.NoError(t, rerr)
		_, serr := os.Stat(abs)
		require.True(t, os.IsNotExist(serr))
	}

	// Powtórne wywołanie też przechodzi
	require.NoError(t, p.DeleteVersions(blob.RelativePath))
}

func TestCompressAvatar(t *testing.T) {
	p, bs := newTestPipeline(t)

	blob, err := bs.Store(encodeTestJPEG(t, 1000, 500), "image/jpeg", "me.jpg", "jan", storage.CategoryAvatar)
	require.NoError(t, err)

	require.NoError(t, p.CompressAvatar(blob.RelativePath))

	abs, err := bs.Resolve(blob.RelativePath)
	require.NoError(t, err)
	avatar, err := img.Open(abs)
	require.NoError(t, err)
	require.Equal(t, 200, avatar.Bounds().Dx())
	require.Equal(t, 200, avatar.Bounds().Dy())

	// W katalogu zostaje tylko podmieniony plik, bez śladu po tymczasowym
	entries, err := os.ReadDir(filepath.Dir(abs))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
