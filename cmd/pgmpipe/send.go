package main

import (
	"fmt"
	"time"

	"github.com/isabelechaves/parallel-image-processing-system/internal/pipeline"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Read a PGM image and transmit it to a worker over the named pipe",
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().StringP("pipe", "p", "", "Named pipe endpoint")
	sendCmd.Flags().StringP("input", "i", "", "Input PGM file")
	sendCmd.MarkFlagRequired("pipe")
	sendCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	pipe, _ := cmd.Flags().GetString("pipe")
	input, _ := cmd.Flags().GetString("input")

	fmt.Printf("Sending %s over %s (waiting for a worker)...\n", input, pipe)

	result, err := pipeline.Send(pipeline.SendOptions{
		Pipe:  pipe,
		Input: input,
	})
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	fmt.Printf("Sent %dx%d (%d pixel bytes) in %s\n",
		result.Width, result.Height, result.Bytes, result.Elapsed.Round(time.Millisecond))
	return nil
}
