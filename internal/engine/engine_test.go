package engine

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isabelechaves/parallel-image-processing-system/internal/filter"
	"github.com/isabelechaves/parallel-image-processing-system/internal/pgm"
)

func TestPartitionCoversAllRows(t *testing.T) {
	cases := []struct {
		height  int
		workers int
	}{
		{1, 1}, {1, 4}, {2, 4}, {4, 4}, {5, 4}, {7, 3},
		{100, 4}, {101, 4}, {103, 8}, {1080, 16}, {3, 100},
	}

	for _, tc := range cases {
		spans := Partition(tc.height, tc.workers)

		assert.LessOrEqual(t, len(spans), tc.workers, "h=%d T=%d", tc.height, tc.workers)

		// Spans must tile [0, height) in order with no gaps or overlaps,
		// and no span may be empty.
		next := 0
		for _, s := range spans {
			assert.Equal(t, next, s.Start, "h=%d T=%d gap before span %+v", tc.height, tc.workers, s)
			assert.Greater(t, s.End, s.Start, "h=%d T=%d empty span %+v", tc.height, tc.workers, s)
			next = s.End
		}
		assert.Equal(t, tc.height, next, "h=%d T=%d spans do not reach the last row", tc.height, tc.workers)
	}
}

func TestPartitionDegenerate(t *testing.T) {
	assert.Nil(t, Partition(0, 4))
	assert.Nil(t, Partition(5, 0))
}

func TestProcessInvert2x2(t *testing.T) {
	img := &pgm.Image{Width: 2, Height: 2, MaxVal: 255, Pix: []byte{10, 245, 0, 255}}

	out, err := Process(img, filter.Invert, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{245, 10, 255, 0}, out.Pix)
	assert.Equal(t, img.Width, out.Width)
	assert.Equal(t, img.Height, out.Height)
	assert.Equal(t, img.MaxVal, out.MaxVal)
}

func TestProcessThreshold2x2(t *testing.T) {
	img := &pgm.Image{Width: 2, Height: 2, MaxVal: 255, Pix: []byte{10, 245, 0, 255}}

	out, err := Process(img, filter.Threshold(128), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 255, 0, 255}, out.Pix)
}

func TestProcessSingleRowManyWorkers(t *testing.T) {
	img := &pgm.Image{Width: 5, Height: 1, MaxVal: 255, Pix: []byte{1, 2, 3, 4, 5}}

	out, err := Process(img, filter.Invert, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{254, 253, 252, 251, 250}, out.Pix)
}

// TestProcessMergeOrderInvariance runs the engine many times with a filter
// that sleeps a random amount per pixel, so task completion order varies
// between runs, and checks the merged output never changes.
func TestProcessMergeOrderInvariance(t *testing.T) {
	const width, height = 8, 13
	img := pgm.New(width, height, 255)
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7)
	}

	jittery := func(v byte) byte {
		if rand.Intn(16) == 0 {
			time.Sleep(time.Duration(rand.Intn(200)) * time.Microsecond)
		}
		return filter.Invert(v)
	}

	want, err := Process(img, filter.Invert, 1)
	require.NoError(t, err)

	for run := 0; run < 20; run++ {
		out, err := Process(img, jittery, 4)
		require.NoError(t, err)
		assert.Equal(t, want.Pix, out.Pix, "run %d", run)
	}
}

func TestProcessMatchesSequential(t *testing.T) {
	img := pgm.New(31, 57, 255)
	for i := range img.Pix {
		img.Pix[i] = byte(i % 251)
	}

	sequential, err := Process(img, filter.Threshold(97), 1)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 4, 8, 64} {
		parallel, err := Process(img, filter.Threshold(97), workers)
		require.NoError(t, err)
		assert.Equal(t, sequential.Pix, parallel.Pix, "workers=%d", workers)
	}
}

func TestProcessTaskFailureAborts(t *testing.T) {
	// maxval 100 with a 200-valued pixel in the last span makes one task fail.
	img := pgm.New(4, 8, 100)
	img.Pix[len(img.Pix)-1] = 200

	out, err := Process(img, filter.Invert, 4)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, ErrFilterTask), "err = %v", err)
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	img := &pgm.Image{Width: 2, Height: 2, MaxVal: 255, Pix: []byte{1, 2, 3, 4}}

	_, err := Process(img, filter.Invert, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, img.Pix)
}
