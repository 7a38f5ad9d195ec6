package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/isabelechaves/parallel-image-processing-system/internal/engine"
	"github.com/isabelechaves/parallel-image-processing-system/internal/filter"
	"github.com/isabelechaves/parallel-image-processing-system/internal/pipeline"
	"github.com/spf13/cobra"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Receive a PGM image from the pipe, filter it in parallel, write the result",
	RunE:  runWork,
}

func init() {
	workCmd.Flags().StringP("pipe", "p", "", "Named pipe endpoint")
	workCmd.Flags().StringP("output", "o", "", "Output PGM file")
	workCmd.Flags().IntP("filter", "f", filter.ModeInvert, "Filter: 0=invert, 1=threshold")
	workCmd.Flags().Int("cutoff", filter.DefaultCutoff, "Threshold cutoff (0-255)")
	workCmd.Flags().IntP("threads", "t", engine.DefaultWorkers, "Filter thread-pool size")
	workCmd.MarkFlagRequired("pipe")
	workCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(workCmd)
}

type workMeta struct {
	JobID   string `json:"job_id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Filter  string `json:"filter"`
	Threads int    `json:"threads"`
	Millis  int64  `json:"elapsed_ms"`
}

func runWork(cmd *cobra.Command, args []string) error {
	pipe, _ := cmd.Flags().GetString("pipe")
	output, _ := cmd.Flags().GetString("output")
	mode, _ := cmd.Flags().GetInt("filter")
	cutoff, _ := cmd.Flags().GetInt("cutoff")
	threads, _ := cmd.Flags().GetInt("threads")

	jobID := uuid.NewString()
	fmt.Printf("Worker %s listening on %s (filter=%s, threads=%d)...\n",
		jobID, pipe, filter.Name(mode), threads)

	result, err := pipeline.Work(pipeline.WorkOptions{
		Pipe:    pipe,
		Output:  output,
		Mode:    mode,
		Cutoff:  cutoff,
		Workers: threads,
	})
	if err != nil {
		return fmt.Errorf("work: %w", err)
	}

	fmt.Printf("Filtered %dx%d with %d threads in %s → %s\n",
		result.Width, result.Height, result.Workers,
		result.Elapsed.Round(time.Millisecond), output)

	// Write JSON sidecar
	meta := workMeta{
		JobID:   jobID,
		Width:   result.Width,
		Height:  result.Height,
		Filter:  filter.Name(mode),
		Threads: result.Workers,
		Millis:  result.Elapsed.Milliseconds(),
	}
	metaJSON, _ := json.MarshalIndent(meta, "", "  ")
	metaPath := output + ".json"
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("writing sidecar: %w", err)
	}
	fmt.Printf("Sidecar: %s\n", metaPath)
	return nil
}
