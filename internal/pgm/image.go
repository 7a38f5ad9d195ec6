// Package pgm implements the binary PGM (P5) raster format: a grayscale
// image with one byte per pixel, row-major, preceded by an ASCII header.
package pgm

// Image is a single-channel 8-bit raster. Pix holds one byte per pixel in
// row-major order; the pixel at (x, y) is Pix[y*Width+x].
type Image struct {
	Width  int
	Height int
	MaxVal int    // maximum intensity, typically 255
	Pix    []byte // len = Width * Height
}

// New returns a zeroed image of the given dimensions.
func New(width, height, maxVal int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		MaxVal: maxVal,
		Pix:    make([]byte, width*height),
	}
}

// At returns the pixel value at (x, y). Out-of-bounds coordinates read as 0.
func (img *Image) At(x, y int) byte {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return 0
	}
	return img.Pix[y*img.Width+x]
}

// Row returns the pixel bytes of row y as a sub-slice of Pix.
func (img *Image) Row(y int) []byte {
	start := y * img.Width
	return img.Pix[start : start+img.Width]
}

// SetRow copies data into row y. data must be exactly Width bytes.
func (img *Image) SetRow(y int, data []byte) {
	if y < 0 || y >= img.Height || len(data) != img.Width {
		return
	}
	copy(img.Pix[y*img.Width:], data)
}

// Bounds reports the image dimensions.
func (img *Image) Bounds() (width, height int) {
	return img.Width, img.Height
}
