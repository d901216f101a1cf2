package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// ThumbnailSize is the bounding box thumbnails are fitted into.
const ThumbnailSize = 300

const jpegQuality = 85

// MaxPixels caps width x height of images that are decoded. A decoded
// RGBA image takes four bytes per pixel.
const MaxPixels = 40_000_000

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image dimensions too large")
)

type imageCodec struct {
	decodeConfig func(io.Reader) (image.Config, error)
	decode       func(io.Reader) (image.Image, error)
}

var codecs = map[string]imageCodec{
	"image/jpeg": {jpeg.DecodeConfig, jpeg.Decode},
	"image/png":  {png.DecodeConfig, png.Decode},
	"image/gif":  {gif.DecodeConfig, gif.Decode},
	"image/webp": {webp.DecodeConfig, webp.Decode},
}

// Thumbnail is an encoded thumbnail.
type Thumbnail struct {
	Data        []byte
	ContentType string
	// Ext replaces the original file extension when non-empty.
	Ext string
}

// MakeThumbnail decodes src and scales it to fit a ThumbnailSize square,
// preserving the aspect ratio. Images already inside the box are not
// upscaled. The result keeps the source content type, except WebP which has
// no encoder and is written as PNG. Images over MaxPixels are rejected with
// ErrImageTooLarge before their pixels are decoded.
func MakeThumbnail(src io.Reader, contentType string) (Thumbnail, error) {
	contentType = normalizeContentType(contentType)

	codec, ok := codecs[contentType]
	if !ok {
		return Thumbnail{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	// The header bytes read by decodeConfig are replayed to decode.
	var header bytes.Buffer
	cfg, err := codec.decodeConfig(io.TeeReader(src, &header))
	if err != nil {
		return Thumbnail{}, fmt.Errorf("decode %s config: %w", contentType, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return Thumbnail{}, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, err := codec.decode(io.MultiReader(&header, src))
	if err != nil {
		return Thumbnail{}, fmt.Errorf("decode %s: %w", contentType, err)
	}

	scaled := Fit(img, ThumbnailSize, ThumbnailSize)

	var buf bytes.Buffer
	out := Thumbnail{ContentType: contentType}
	switch contentType {
	case "image/jpeg":
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality})
	case "image/gif":
		err = gif.Encode(&buf, scaled, nil)
	case "image/webp":
		out.ContentType, out.Ext = "image/png", ".png"
		err = png.Encode(&buf, scaled)
	default:
		err = png.Encode(&buf, scaled)
	}
	if err != nil {
		return Thumbnail{}, fmt.Errorf("encode %s: %w", out.ContentType, err)
	}
	out.Data = buf.Bytes()

	return out, nil
}

// Fit scales img down to fit inside maxW x maxH. Smaller images are returned
// unchanged.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if w == b.Dx() && h == b.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// FitSize returns the largest size with the aspect ratio of w x h that fits
// inside maxW x maxH without exceeding the original size.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	// compare w/maxW against h/maxH without floating point
	if w*maxH >= h*maxW {
		nh := h * maxW / w
		return maxW, max(nh, 1)
	}
	nw := w * maxH / h
	return max(nw, 1), maxH
}

func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	return ct
}
