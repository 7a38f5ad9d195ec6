// Package storage reads and writes PGM images on disk for the sender and
// worker processes. Paths ending in ".gz" are transparently compressed.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/isabelechaves/parallel-image-processing-system/internal/pgm"
)

// ReadImage loads and decodes a PGM file.
func ReadImage(path string) (*pgm.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	if strings.HasSuffix(path, ".gz") {
		data, err = gunzip(data)
		if err != nil {
			return nil, fmt.Errorf("reading image %s: %w", path, err)
		}
	}

	img, err := pgm.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// WriteImage encodes img and persists it at path.
func WriteImage(path string, img *pgm.Image) error {
	data := pgm.Encode(img)

	if strings.HasSuffix(path, ".gz") {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("writing image %s: %w", path, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("writing image %s: %w", path, err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	return nil
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
