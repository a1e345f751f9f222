// Package decode turns image files into raw RGBA pixel buffers for analysis.
package decode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "github.com/gen2brain/avif"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is wrapped by every error returned from a Decoder.
var ErrDecode = errors.New("cannot decode image")

// PixelBuffer is a row-major grid of non-premultiplied RGBA samples,
// four bytes per pixel.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// Len returns the number of pixels in the buffer.
func (b *PixelBuffer) Len() int {
	return b.Width * b.Height
}

// Source identifies one image to analyze.
type Source struct {
	ID   string
	Path string
}

// NewSource builds a Source whose ID is the file's base name.
func NewSource(path string) Source {
	return Source{ID: filepath.Base(path), Path: path}
}

// Decoder produces a pixel buffer for a source.
type Decoder interface {
	Decode(ctx context.Context, src Source) (*PixelBuffer, error)
}

// FileDecoder reads images from disk. If MaxDimension is positive, images
// whose longer side exceeds it are downscaled before conversion.
type FileDecoder struct {
	MaxDimension int
}

// Decode opens and decodes the file behind src.
func (d FileDecoder) Decode(ctx context.Context, src Source) (*PixelBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %w", ErrDecode, src.ID, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, src.ID, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img = downscale(img, d.MaxDimension)
	return FromImage(img), nil
}

// downscale shrinks img so that neither side exceeds maxDim, keeping the
// aspect ratio. Images already within bounds are returned unchanged.
func downscale(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	if w >= h {
		return resize.Resize(uint(maxDim), 0, img, resize.Bilinear)
	}
	return resize.Resize(0, uint(maxDim), img, resize.Bilinear)
}

// FromImage converts any image into a PixelBuffer.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*bounds.Dx() || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return &PixelBuffer{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    nrgba.Pix[:4*bounds.Dx()*bounds.Dy()],
	}
}
