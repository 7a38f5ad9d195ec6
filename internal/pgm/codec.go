package pgm

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrMalformedHeader indicates a missing P5 magic or a header token
	// that is absent, non-numeric, or out of range.
	ErrMalformedHeader = errors.New("pgm: malformed header")

	// ErrTruncatedData indicates fewer pixel bytes than the header declares.
	ErrTruncatedData = errors.New("pgm: truncated pixel data")
)

// Decode parses a binary PGM (P5) image: the "P5" magic, then width, height
// and maxval as whitespace-separated decimal tokens, then a single whitespace
// byte, then exactly width*height raw pixel bytes. Comment lines starting
// with '#' may appear between header tokens.
func Decode(data []byte) (*Image, error) {
	p := &headerParser{data: data}

	magic, err := p.token()
	if err != nil {
		return nil, err
	}
	if magic != "P5" {
		return nil, fmt.Errorf("%w: bad magic %q", ErrMalformedHeader, magic)
	}

	width, err := p.intToken("width")
	if err != nil {
		return nil, err
	}
	height, err := p.intToken("height")
	if err != nil {
		return nil, err
	}
	maxVal, err := p.intToken("maxval")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimensions %dx%d", ErrMalformedHeader, width, height)
	}
	if maxVal <= 0 || maxVal > 255 {
		return nil, fmt.Errorf("%w: maxval %d outside 1..255", ErrMalformedHeader, maxVal)
	}

	// Exactly one whitespace byte separates the header from the pixels.
	if err := p.skipOne(); err != nil {
		return nil, err
	}

	pix := p.rest()
	expected := width * height
	if len(pix) < expected {
		return nil, fmt.Errorf("%w: expected %d bytes, found %d", ErrTruncatedData, expected, len(pix))
	}

	img := &Image{Width: width, Height: height, MaxVal: maxVal}
	img.Pix = make([]byte, expected)
	copy(img.Pix, pix)
	return img, nil
}

// Encode serializes img in the binary PGM convention:
// "P5\n<width> <height>\n<maxval>\n" followed by the raw pixel buffer.
func Encode(img *Image) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P5\n%d %d\n%d\n", img.Width, img.Height, img.MaxVal)
	buf.Write(img.Pix)
	return buf.Bytes()
}

// headerParser scans whitespace-separated header tokens, skipping '#'
// comments through end of line.
type headerParser struct {
	data []byte
	pos  int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *headerParser) skipSpaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		switch {
		case isSpace(c):
			p.pos++
		case c == '#':
			for p.pos < len(p.data) && p.data[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *headerParser) token() (string, error) {
	p.skipSpaceAndComments()
	if p.pos >= len(p.data) {
		return "", fmt.Errorf("%w: unexpected end of header", ErrMalformedHeader)
	}
	start := p.pos
	for p.pos < len(p.data) && !isSpace(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos]), nil
}

func (p *headerParser) intToken(name string) (int, error) {
	tok, err := p.token()
	if err != nil {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedHeader, name)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrMalformedHeader, name, tok)
	}
	return n, nil
}

// skipOne consumes the single whitespace byte after the maxval token.
func (p *headerParser) skipOne() error {
	if p.pos >= len(p.data) || !isSpace(p.data[p.pos]) {
		return fmt.Errorf("%w: missing separator after maxval", ErrMalformedHeader)
	}
	p.pos++
	return nil
}

func (p *headerParser) rest() []byte {
	return p.data[p.pos:]
}
