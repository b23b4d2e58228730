package spriteforge

import (
	"image"
	"image/color"
)

// PixelBuffer represents a rectangular RGBA pixel buffer.
//
// Pixel data is stored row-major, 4 bytes per pixel (R, G, B, A),
// non-premultiplied. A PixelBuffer held by a Frame must be treated as
// immutable; mutating accessors exist for buffer construction only.
type PixelBuffer struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixelBuffer creates a new fully transparent buffer with the given dimensions.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the buffer in pixels.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height of the buffer in pixels.
func (p *PixelBuffer) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format, non-premultiplied).
func (p *PixelBuffer) Data() []uint8 {
	return p.data
}

// PixelRGBA returns the raw channel values of a single pixel.
// Out-of-bounds coordinates return a transparent pixel.
func (p *PixelBuffer) PixelRGBA(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, 0, 0, 0
	}
	i := (y*p.width + x) * 4
	return p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3]
}

// SetPixelRGBA sets the raw channel values of a single pixel.
// Out-of-bounds coordinates are silently ignored.
func (p *PixelBuffer) SetPixelRGBA(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = r
	p.data[i+1] = g
	p.data[i+2] = b
	p.data[i+3] = a
}

// AlphaAt returns the alpha channel of a single pixel.
// Out-of-bounds coordinates return 0.
func (p *PixelBuffer) AlphaAt(x, y int) uint8 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0
	}
	return p.data[(y*p.width+x)*4+3]
}

// Clone returns a deep copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	out := NewPixelBuffer(p.width, p.height)
	copy(out.data, p.data)
	return out
}

// SubBuffer copies the given region into a new buffer. The region is
// clamped to the buffer extent; pixels outside it are never sampled.
// The returned buffer shares no memory with the source.
func (p *PixelBuffer) SubBuffer(r image.Rectangle) *PixelBuffer {
	r = r.Intersect(image.Rect(0, 0, p.width, p.height))
	out := NewPixelBuffer(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		srcOff := ((r.Min.Y+y)*p.width + r.Min.X) * 4
		dstOff := y * r.Dx() * 4
		copy(out.data[dstOff:dstOff+r.Dx()*4], p.data[srcOff:srcOff+r.Dx()*4])
	}
	return out
}

// Fill sets every pixel of the buffer to the given color.
func (p *PixelBuffer) Fill(c color.NRGBA) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// ToImage converts the buffer to an image.NRGBA sharing no memory with it.
func (p *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a buffer from an image. image.NRGBA sources are copied
// row-wise; any other image type goes through the color model, which is
// lossless for 8-bit non-premultiplied sources.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := NewPixelBuffer(width, height)

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			srcOff := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			dstOff := y * width * 4
			copy(out.data[dstOff:dstOff+width*4], src.Pix[srcOff:srcOff+width*4])
		}
		return out
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			out.SetPixelRGBA(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return out
}

// At implements the image.Image interface.
func (p *PixelBuffer) At(x, y int) color.Color {
	r, g, b, a := p.PixelRGBA(x, y)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bounds implements the image.Image interface.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
