// Package filter provides the pixel-wise transforms applied by the worker.
// Filters are pure functions over single pixel values, so they may be
// applied to disjoint regions of an image concurrently.
package filter

import "fmt"

// Func transforms a single 8-bit pixel value.
type Func func(byte) byte

// Filter selector modes accepted on the worker command line.
const (
	ModeInvert    = 0
	ModeThreshold = 1
)

// DefaultCutoff is the threshold cutoff used when none is configured.
const DefaultCutoff = 128

// Invert maps v to 255-v. Applying it twice restores the original value.
func Invert(v byte) byte {
	return 255 - v
}

// Threshold returns a binary thresholding filter: pixels at or above cutoff
// become 255, all others become 0.
func Threshold(cutoff int) Func {
	t := byte(cutoff)
	return func(v byte) byte {
		if v >= t {
			return 255
		}
		return 0
	}
}

// Parse maps a filter selector to its Func. cutoff only applies to the
// threshold mode and must lie in 0..255.
func Parse(mode, cutoff int) (Func, error) {
	switch mode {
	case ModeInvert:
		return Invert, nil
	case ModeThreshold:
		if cutoff < 0 || cutoff > 255 {
			return nil, fmt.Errorf("threshold cutoff %d outside 0..255", cutoff)
		}
		return Threshold(cutoff), nil
	default:
		return nil, fmt.Errorf("unknown filter mode %d (0=invert, 1=threshold)", mode)
	}
}

// Name returns a human-readable name for a filter mode.
func Name(mode int) string {
	switch mode {
	case ModeInvert:
		return "invert"
	case ModeThreshold:
		return "threshold"
	default:
		return fmt.Sprintf("mode(%d)", mode)
	}
}
