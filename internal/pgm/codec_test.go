package pgm

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	img := &Image{
		Width:  3,
		Height: 2,
		MaxVal: 255,
		Pix:    []byte{0, 10, 245, 128, 255, 7},
	}

	decoded, err := Decode(Encode(img))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Width != img.Width || decoded.Height != img.Height || decoded.MaxVal != img.MaxVal {
		t.Errorf("header mismatch: got %dx%d max=%d", decoded.Width, decoded.Height, decoded.MaxVal)
	}
	if !bytes.Equal(decoded.Pix, img.Pix) {
		t.Errorf("pixel mismatch: got %v, want %v", decoded.Pix, img.Pix)
	}
}

func TestEncodeHeaderFormat(t *testing.T) {
	img := &Image{Width: 2, Height: 2, MaxVal: 255, Pix: []byte{1, 2, 3, 4}}
	encoded := Encode(img)

	want := append([]byte("P5\n2 2\n255\n"), 1, 2, 3, 4)
	if !bytes.Equal(encoded, want) {
		t.Errorf("encoded = %q, want %q", encoded, want)
	}
}

func TestDecodeSkipsComments(t *testing.T) {
	data := append([]byte("P5\n# created by a scanner\n2 2\n# another note\n255\n"), 9, 8, 7, 6)
	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 2x2", img.Width, img.Height)
	}
	if !bytes.Equal(img.Pix, []byte{9, 8, 7, 6}) {
		t.Errorf("pixels = %v", img.Pix)
	}
}

func TestDecodeMalformedHeader(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"bad magic", append([]byte("P6\n2 2\n255\n"), 1, 2, 3, 4)},
		{"missing dimensions", []byte("P5\n")},
		{"non-numeric width", []byte("P5\nab 2\n255\n")},
		{"non-numeric maxval", append([]byte("P5\n2 2\nxyz\n"), 1, 2, 3, 4)},
		{"zero width", append([]byte("P5\n0 2\n255\n"), 1, 2)},
		{"negative height", append([]byte("P5\n2 -1\n255\n"), 1, 2)},
		{"maxval too large", append([]byte("P5\n2 2\n65535\n"), 1, 2, 3, 4)},
		{"empty input", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			if !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("err = %v, want ErrMalformedHeader", err)
			}
		})
	}
}

func TestDecodeTruncatedData(t *testing.T) {
	data := append([]byte("P5\n4 4\n255\n"), make([]byte, 10)...) // needs 16
	_, err := Decode(data)
	if !errors.Is(err, ErrTruncatedData) {
		t.Errorf("err = %v, want ErrTruncatedData", err)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	data := append([]byte("P5\n2 1\n255\n"), 1, 2, 99, 99)
	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(img.Pix, []byte{1, 2}) {
		t.Errorf("pixels = %v, want [1 2]", img.Pix)
	}
}

func TestRowAccessors(t *testing.T) {
	img := New(3, 2, 255)
	img.SetRow(1, []byte{4, 5, 6})

	if got := img.Row(1); !bytes.Equal(got, []byte{4, 5, 6}) {
		t.Errorf("Row(1) = %v", got)
	}
	if got := img.At(2, 1); got != 6 {
		t.Errorf("At(2,1) = %d, want 6", got)
	}
	if got := img.At(-1, 5); got != 0 {
		t.Errorf("out-of-bounds At = %d, want 0", got)
	}

	// Wrong-length row data must not corrupt the buffer.
	img.SetRow(0, []byte{1})
	if !bytes.Equal(img.Row(0), []byte{0, 0, 0}) {
		t.Errorf("Row(0) = %v after bad SetRow", img.Row(0))
	}
}
