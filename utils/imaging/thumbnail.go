package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// jpeg 编码质量，缩略图不需要高保真
const thumbnailJPEGQuality = 80

// Thumbnail 将图片等比缩放到最长边不超过 maxEdge
// 源图已小于上限时原样返回，输出格式与输入一致（仅支持 jpeg/png）
func Thumbnail(src io.Reader, maxEdge int) ([]byte, string, error) {
	if maxEdge <= 0 {
		return nil, "", fmt.Errorf("invalid thumbnail max edge: %d", maxEdge)
	}

	img, format, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > maxEdge || height > maxEdge {
		var dstW, dstH int
		if width >= height {
			dstW = maxEdge
			dstH = height * maxEdge / width
		} else {
			dstH = maxEdge
			dstW = width * maxEdge / height
		}
		if dstW < 1 {
			dstW = 1
		}
		if dstH < 1 {
			dstH = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("failed to encode png thumbnail: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbnailJPEGQuality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode jpeg thumbnail: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
