package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestImage(t *testing.T, width, height int, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	default:
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	}
	return buf.Bytes()
}

func TestThumbnailDownscalesLargeImage(t *testing.T) {
	data := encodeTestImage(t, 1200, 800, "jpeg")

	out, contentType, err := Thumbnail(bytes.NewReader(data), 640)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 426, img.Bounds().Dy())
}

func TestThumbnailPortraitOrientation(t *testing.T) {
	data := encodeTestImage(t, 400, 1000, "png")

	out, contentType, err := Thumbnail(bytes.NewReader(data), 500)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dy())
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestThumbnailKeepsSmallImage(t *testing.T) {
	data := encodeTestImage(t, 100, 80, "jpeg")

	out, _, err := Thumbnail(bytes.NewReader(data), 640)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, _, err := Thumbnail(bytes.NewReader([]byte("not an image")), 640)
	assert.Error(t, err)
}
