// Package wire frames a raster for transmission over the byte channel: a
// fixed-size binary header carrying the image dimensions, followed by
// exactly width*height raw pixel bytes. The fixed header size is what lets
// the receiver drive the transfer with exact-length reads; message
// boundaries are governed only by the declared pixel count.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/isabelechaves/parallel-image-processing-system/internal/fifo"
	"github.com/isabelechaves/parallel-image-processing-system/internal/pgm"
)

// HeaderSize is the byte length of the message header: width, height and
// maxval as little-endian uint32.
const HeaderSize = 12

// maxDimension bounds each header dimension so a corrupt header cannot
// trigger a multi-gigabyte allocation on the receiving side.
const maxDimension = 1 << 20

// WriteImage frames img and writes the whole message to w as one header
// followed by the pixel buffer.
func WriteImage(w io.Writer, img *pgm.Image) error {
	var header [HeaderSize]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(img.Width))
	binary.LittleEndian.PutUint32(header[4:8], uint32(img.Height))
	binary.LittleEndian.PutUint32(header[8:12], uint32(img.MaxVal))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(img.Pix); err != nil {
		return fmt.Errorf("writing pixels: %w", err)
	}
	return nil
}

// ReadImage reads one framed message from r: the fixed header, then exactly
// the declared number of pixel bytes. A channel that closes early surfaces
// fifo.ErrTruncatedChannel; partial data never decodes successfully.
func ReadImage(r io.Reader) (*pgm.Image, error) {
	var header [HeaderSize]byte
	if err := readFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	width := int(binary.LittleEndian.Uint32(header[0:4]))
	height := int(binary.LittleEndian.Uint32(header[4:8]))
	maxVal := int(binary.LittleEndian.Uint32(header[8:12]))

	if width <= 0 || width > maxDimension || height <= 0 || height > maxDimension {
		return nil, fmt.Errorf("%w: implausible dimensions %dx%d", pgm.ErrMalformedHeader, width, height)
	}
	if maxVal <= 0 || maxVal > 255 {
		return nil, fmt.Errorf("%w: maxval %d outside 1..255", pgm.ErrMalformedHeader, maxVal)
	}

	img := &pgm.Image{Width: width, Height: height, MaxVal: maxVal}
	img.Pix = make([]byte, width*height)
	if err := readFull(r, img.Pix); err != nil {
		return nil, fmt.Errorf("reading %d pixel bytes: %w", len(img.Pix), err)
	}
	return img, nil
}

// readFull demands exactly len(buf) bytes from r, using the channel's own
// exact-read primitive when r provides one.
func readFull(r io.Reader, buf []byte) error {
	if fr, ok := r.(interface{ ReadFull([]byte) error }); ok {
		return fr.ReadFull(buf)
	}
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: got %d of %d bytes", fifo.ErrTruncatedChannel, n, len(buf))
		}
		return err
	}
	return nil
}
