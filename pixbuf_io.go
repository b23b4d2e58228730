package spriteforge

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("spriteforge: empty image data")
)

// EncodePNG writes the buffer to w as a PNG image. PNG is lossless, so a
// buffer round-trips through EncodePNG/DecodePNG with exact pixel values —
// the property the persistence layer relies on.
func EncodePNG(w io.Writer, buf *PixelBuffer) error {
	if buf == nil {
		return ErrNilBuffer
	}
	return png.Encode(w, buf.ToImage())
}

// EncodePNGBytes encodes the buffer to an in-memory PNG.
func EncodePNGBytes(buf *PixelBuffer) ([]byte, error) {
	var b bytes.Buffer
	if err := EncodePNG(&b, buf); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// DecodePNG reads a PNG image from r into a buffer.
func DecodePNG(r io.Reader) (*PixelBuffer, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("spriteforge: decode png: %w", err)
	}
	return FromImage(img), nil
}

// DecodeImage reads an image of any registered format from r.
func DecodeImage(r io.Reader) (*PixelBuffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("spriteforge: decode image: %w", err)
	}
	return FromImage(img), nil
}

// DecodeImageBytes decodes an in-memory encoded image, auto-detecting the
// format.
func DecodeImageBytes(data []byte) (*PixelBuffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return DecodeImage(bytes.NewReader(data))
}

// LoadPNG loads a PNG image from the given file path.
func LoadPNG(path string) (*PixelBuffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("spriteforge: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodePNG(f)
}

// SavePNG saves the buffer to a PNG file.
func (p *PixelBuffer) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("spriteforge: create file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return EncodePNG(f, p)
}
