package spriteforge

import (
	"image/color"
	"testing"
)

func benchBuffer(w, h int) *PixelBuffer {
	buf := NewPixelBuffer(w, h)
	buf.Fill(color.NRGBA{R: 30, G: 200, B: 60, A: 255})
	// A transparent border seeds halo dilation from the edges inward.
	for x := 0; x < w; x++ {
		buf.SetPixelRGBA(x, 0, 0, 0, 0, 0)
		buf.SetPixelRGBA(x, h-1, 0, 0, 0, 0)
	}
	return buf
}

func BenchmarkDetectBounds(b *testing.B) {
	buf := benchBuffer(128, 128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DetectBounds(buf)
	}
}

func BenchmarkChromaKey(b *testing.B) {
	buf := benchBuffer(128, 128)
	target := color.NRGBA{R: 30, G: 200, B: 60}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ChromaKey(buf, target, 30)
	}
}

func BenchmarkRemoveHalo(b *testing.B) {
	// Radius 30 is about the largest cleanup radius used on sprite frames.
	buf := benchBuffer(128, 128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = RemoveHalo(buf, 30)
	}
}
