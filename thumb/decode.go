package thumb

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// sniffLen is how much of a file filetype needs to recognize it.
const sniffLen = 262

// Decode reads an image from r and scales it down so its longer edge is at
// most maxEdge pixels. Content that is not a recognized image format fails
// with ErrNotImage before any decoding happens.
func Decode(r io.Reader, maxEdge int) (image.Image, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	head = head[:n]

	if !filetype.IsImage(head) {
		return nil, ErrNotImage
	}
	kind, _ := filetype.Match(head)

	img, _, err := image.Decode(io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind.MIME.Value, err)
	}
	return Scale(img, maxEdge), nil
}

// DecodeFile decodes the image at path. A leading ~ is expanded.
func DecodeFile(path string, maxEdge int) (image.Image, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", path, err)
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f, maxEdge)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Scale returns src shrunk to fit a maxEdge square, keeping its aspect
// ratio. Images that already fit, and a non-positive maxEdge, return src.
func Scale(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return src
	}
	nw, nh := maxEdge, maxEdge
	if w >= h {
		nh = max(1, h*maxEdge/w)
	} else {
		nw = max(1, w*maxEdge/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
