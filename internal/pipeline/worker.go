package pipeline

import (
	"fmt"
	"time"

	"github.com/isabelechaves/parallel-image-processing-system/internal/engine"
	"github.com/isabelechaves/parallel-image-processing-system/internal/fifo"
	"github.com/isabelechaves/parallel-image-processing-system/internal/filter"
	"github.com/isabelechaves/parallel-image-processing-system/internal/storage"
	"github.com/isabelechaves/parallel-image-processing-system/internal/wire"
)

// WorkOptions configures one worker run. Filter selection and pool size are
// explicit configuration, never ambient state.
type WorkOptions struct {
	Pipe    string // named channel endpoint
	Output  string // destination PGM path
	Mode    int    // filter selector: 0=invert, 1=threshold
	Cutoff  int    // threshold cutoff, 0..255
	Workers int    // thread-pool size; engine.DefaultWorkers if <= 0
}

// WorkResult reports what a completed worker run produced.
type WorkResult struct {
	Width   int
	Height  int
	Workers int
	Elapsed time.Duration
}

// Work receives one image over the channel (blocking until a sender
// connects and the full message arrives), filters it across the thread
// pool, and writes the merged result to storage. A failure in any stage,
// including any single filter task, aborts the run; a partial image is
// never written.
func Work(opts WorkOptions) (*WorkResult, error) {
	fn, err := filter.Parse(opts.Mode, opts.Cutoff)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = engine.DefaultWorkers
	}

	if err := fifo.Create(opts.Pipe); err != nil {
		return nil, err
	}

	r, err := fifo.OpenReader(opts.Pipe)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, err := wire.ReadImage(r)
	if err != nil {
		return nil, fmt.Errorf("receiving image: %w", err)
	}

	start := time.Now()
	out, err := engine.Process(img, fn, workers)
	if err != nil {
		return nil, err
	}

	if err := storage.WriteImage(opts.Output, out); err != nil {
		return nil, err
	}

	return &WorkResult{
		Width:   out.Width,
		Height:  out.Height,
		Workers: workers,
		Elapsed: time.Since(start),
	}, nil
}
