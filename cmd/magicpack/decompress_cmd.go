// cmd/magicpack/decompress_cmd.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/magic-pack/internal/layers"
	"github.com/creativeyann17/magic-pack/pkg/decompress"
)

func init() {
	rootCmd.AddCommand(decompressCmd())
}

func decompressCmd() *cobra.Command {
	var inputPath, outputPath string
	var maxLayers int
	var verbose bool
	var quiet bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "Unpack an archive, peeling nested layers",
		Long: `Unpack an archive into a directory.

The format is detected from the file content, never from its name. Nested
encodings such as tar.gz or a gzip inside a bzip2 are peeled one layer at a
time until a container is extracted, the payload is no longer recognised, or
--layers is reached. Entries that would land outside the output directory
abort the extraction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &decompress.Options{
				InputPath:  inputPath,
				OutputPath: outputPath,
				MaxLayers:  maxLayers,
				Verbose:    verbose,
				Quiet:      quiet,
				Overwrite:  overwrite,
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			log("Starting decompression...")
			log("  Input:       %s", opts.InputPath)
			log("  Output:      %s", opts.OutputPath)
			log("  Max layers:  %d", opts.MaxLayers)
			if overwrite {
				log("  Mode:        OVERWRITE (replacing existing files)")
			}
			log("")

			var progressCb decompress.ProgressCallback
			var progress *mpb.Progress

			if !quiet && !verbose {
				progressCb, progress = decompress.ProgressBarCallback()
			}

			result, err := decompress.Decompress(opts, progressCb)

			// Wait for progress bars to finish rendering; a failed run leaves bars open
			if progress != nil {
				if err != nil {
					progress.Shutdown()
				} else {
					progress.Wait()
				}
			}

			if err != nil {
				return err
			}

			if !quiet {
				fmt.Println()
				fmt.Print(decompress.FormatSummary(result))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input archive file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", ".", "Output directory")
	cmd.Flags().IntVar(&maxLayers, "layers", layers.DefaultMaxLayers, "Maximum number of nested layers to peel")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
