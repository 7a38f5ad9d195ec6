package main

import (
	"fmt"

	"github.com/isabelechaves/parallel-image-processing-system/internal/storage"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect a PGM image",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	img, err := storage.ReadImage(path)
	if err != nil {
		return err
	}

	lo, hi := img.Pix[0], img.Pix[0]
	var sum int
	for _, v := range img.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += int(v)
	}

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Dimensions: %d x %d\n", img.Width, img.Height)
	fmt.Printf("Max value:  %d\n", img.MaxVal)
	fmt.Printf("Pixels:     %d bytes\n", len(img.Pix))
	fmt.Printf("Intensity:  min=%d max=%d mean=%.1f\n",
		lo, hi, float64(sum)/float64(len(img.Pix)))
	return nil
}
