// Package engine runs a pixel filter over an image in parallel. The image's
// rows are partitioned into disjoint spans, one bounded-concurrency task per
// span writes into a span-private buffer, and the buffers are merged in row
// order after all tasks complete. The input buffer is only ever read and
// each task owns its output exclusively, so the hot path needs no locks.
package engine

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/isabelechaves/parallel-image-processing-system/internal/filter"
	"github.com/isabelechaves/parallel-image-processing-system/internal/pgm"
)

// DefaultWorkers is the thread-pool size used when none is configured.
const DefaultWorkers = 4

// ErrFilterTask reports a failure inside one of the concurrent filter
// tasks. Any single task failure aborts the whole filtering phase.
var ErrFilterTask = errors.New("engine: filter task failed")

// Span is a contiguous row range [Start, End) of an image.
type Span struct {
	Start int
	End   int
}

// Rows returns the number of rows covered by the span.
func (s Span) Rows() int {
	return s.End - s.Start
}

// Partition splits height rows into at most workers spans. Each span gets
// height/workers rows and the final span absorbs the remainder, so the
// spans cover [0, height) exactly with no gaps or overlaps. Spans that
// would be empty (height < workers) are dropped rather than dispatched.
func Partition(height, workers int) []Span {
	if height <= 0 || workers <= 0 {
		return nil
	}
	per := height / workers
	spans := make([]Span, 0, workers)
	for i := 0; i < workers; i++ {
		start := i * per
		end := start + per
		if i == workers-1 {
			end = height
		}
		if start >= end {
			continue
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

// Process applies fn to every pixel of img using up to workers concurrent
// tasks and returns the merged output image. The first task error aborts
// the run; no partial output is returned.
func Process(img *pgm.Image, fn filter.Func, workers int) (*pgm.Image, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	spans := Partition(img.Height, workers)
	results := make([][]byte, len(spans))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, span := range spans {
		g.Go(func() error {
			out, err := filterSpan(img, span, fn)
			if err != nil {
				return fmt.Errorf("%w: rows %d-%d: %v", ErrFilterTask, span.Start, span.End-1, err)
			}
			results[i] = out
			return nil
		})
	}
	// Barrier: every dispatched task must report before merging.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in span order. Completion order of the tasks is irrelevant
	// because each result lands at its predetermined index.
	out := pgm.New(img.Width, img.Height, img.MaxVal)
	off := 0
	for _, buf := range results {
		copy(out.Pix[off:], buf)
		off += len(buf)
	}
	return out, nil
}

// filterSpan applies fn to the rows [span.Start, span.End) of img and
// returns the transformed pixels in a freshly allocated buffer.
func filterSpan(img *pgm.Image, span Span, fn filter.Func) ([]byte, error) {
	out := make([]byte, span.Rows()*img.Width)
	i := 0
	for y := span.Start; y < span.End; y++ {
		for _, v := range img.Row(y) {
			if int(v) > img.MaxVal {
				return nil, fmt.Errorf("pixel value %d exceeds maxval %d", v, img.MaxVal)
			}
			out[i] = fn(v)
			i++
		}
	}
	return out, nil
}
