// Package pipeline wires the sender and worker processes end to end:
// storage → codec → channel on the sending side, channel → concurrent
// filter engine → storage on the working side.
package pipeline

import (
	"bytes"
	"fmt"
	"time"

	"github.com/isabelechaves/parallel-image-processing-system/internal/fifo"
	"github.com/isabelechaves/parallel-image-processing-system/internal/storage"
	"github.com/isabelechaves/parallel-image-processing-system/internal/wire"
)

// SendOptions configures one sender run.
type SendOptions struct {
	Pipe  string // named channel endpoint
	Input string // source PGM path
}

// SendResult reports what a completed sender run transmitted.
type SendResult struct {
	Width   int
	Height  int
	Bytes   int // pixel bytes written, excluding the header
	Elapsed time.Duration
}

// Send reads the source raster, opens the channel for writing (blocking
// until the worker opens the read end), and transmits the image as one
// framed message. Any failure aborts the run without retry.
func Send(opts SendOptions) (*SendResult, error) {
	start := time.Now()

	img, err := storage.ReadImage(opts.Input)
	if err != nil {
		return nil, err
	}

	if err := fifo.Create(opts.Pipe); err != nil {
		return nil, err
	}

	// Frame the whole message up front so the channel sees one
	// continuous write.
	var msg bytes.Buffer
	if err := wire.WriteImage(&msg, img); err != nil {
		return nil, fmt.Errorf("framing image: %w", err)
	}

	w, err := fifo.OpenWriter(opts.Pipe)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	if _, err := w.Write(msg.Bytes()); err != nil {
		return nil, fmt.Errorf("sending image: %w", err)
	}

	return &SendResult{
		Width:   img.Width,
		Height:  img.Height,
		Bytes:   len(img.Pix),
		Elapsed: time.Since(start),
	}, nil
}
