// Package fifo wraps a named pipe (FIFO) as a unidirectional byte channel
// between the sender and worker processes. Opening either end blocks until
// the peer opens the complementary end, which is the only rendezvous the
// two processes need.
package fifo

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

var (
	// ErrChannelUnavailable indicates the named endpoint could not be
	// created or opened (permissions, name taken by a non-FIFO file).
	ErrChannelUnavailable = errors.New("fifo: channel unavailable")

	// ErrBrokenChannel indicates the reader disconnected mid-write.
	ErrBrokenChannel = errors.New("fifo: broken channel")

	// ErrTruncatedChannel indicates the channel closed before the
	// requested number of bytes arrived.
	ErrTruncatedChannel = errors.New("fifo: truncated channel")
)

// Create makes the named FIFO if it does not already exist. An existing
// FIFO is reused; any other file type under the same name is an error.
func Create(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.Mode()&os.ModeNamedPipe == 0 {
			return fmt.Errorf("%w: %s exists and is not a FIFO", ErrChannelUnavailable, path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", ErrChannelUnavailable, path, err)
	}
	if err := unix.Mkfifo(path, 0o644); err != nil {
		return fmt.Errorf("%w: mkfifo %s: %v", ErrChannelUnavailable, path, err)
	}
	return nil
}

// Writer is the sending end of a named pipe.
type Writer struct {
	f *os.File
}

// OpenWriter opens the FIFO for writing, blocking until a reader opens the
// other end.
func OpenWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s for writing: %v", ErrChannelUnavailable, path, err)
	}
	return &Writer{f: f}, nil
}

// Write pushes all of p into the pipe, blocking until the pipe accepts it.
// A reader that disconnects mid-write surfaces ErrBrokenChannel.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.f.Write(p)
	if err != nil {
		if errors.Is(err, unix.EPIPE) {
			return n, fmt.Errorf("%w: %v", ErrBrokenChannel, err)
		}
		return n, fmt.Errorf("fifo: write: %w", err)
	}
	return n, nil
}

// Close releases the write end. Closing signals EOF to the reader.
func (w *Writer) Close() error {
	return w.f.Close()
}

// Reader is the receiving end of a named pipe.
type Reader struct {
	f *os.File
}

// OpenReader opens the FIFO for reading, blocking until a writer opens the
// other end.
func OpenReader(path string) (*Reader, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s for reading: %v", ErrChannelUnavailable, path, err)
	}
	return &Reader{f: f}, nil
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	return r.f.Read(p)
}

// ReadFull blocks until buf is completely filled. If the writer closes the
// pipe first, it fails with ErrTruncatedChannel; partial data is never
// reported as success.
func (r *Reader) ReadFull(buf []byte) error {
	n, err := io.ReadFull(r.f, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedChannel, n, len(buf))
		}
		return fmt.Errorf("fifo: read: %w", err)
	}
	return nil
}

// Close releases the read end.
func (r *Reader) Close() error {
	return r.f.Close()
}
