// cmd/magicpack/compress_cmd.go

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/magic-pack/pkg/compress"
	"github.com/creativeyann17/magic-pack/pkg/format"
)

func init() {
	rootCmd.AddCommand(compressCmd())
}

func compressCmd() *cobra.Command {
	var inputPath, outputPath string
	var formatName string
	var compressLevel int
	var useGitignore bool
	var overwrite bool
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Pack a file or directory into an archive",
		Long: fmt.Sprintf(`Pack a file or directory into a single artifact.

Formats: %s
Containers (zip, tar, tar.gz, tar.bz2) accept files and directories and keep
the input's own name as the archive root. Streams (gz, bz2) accept one file.`,
			strings.Join(format.Names(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.Parse(formatName)
			if err != nil {
				return err
			}

			opts := &compress.Options{
				InputPath:    inputPath,
				OutputPath:   outputPath,
				Format:       f,
				Level:        compressLevel,
				UseGitignore: useGitignore,
				Overwrite:    overwrite,
				Verbose:      verbose,
				Quiet:        quiet,
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

			log("Starting compression...")
			log("  Input:       %s", opts.InputPath)
			if opts.OutputPath != "" {
				log("  Output:      %s", opts.OutputPath)
			}
			log("  Format:      %s", opts.Format)
			log("  Level:       %d", opts.Level)
			if useGitignore && opts.Format.IsContainer() {
				log("  Mode:        GITIGNORE (respecting .gitignore files)")
			}
			if overwrite {
				log("  Mode:        OVERWRITE (replacing existing output)")
			}
			log("")

			if !quiet && !opts.Format.IsContainer() {
				warnIfLargerThanMemory(opts.InputPath)
			}

			var progressCb compress.ProgressCallback
			var progress *mpb.Progress

			if !quiet && !verbose {
				progressCb, progress = compress.ProgressBarCallback()
			}

			result, err := compress.Compress(opts, progressCb)

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
				fmt.Print(compress.FormatSummary(result))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file or directory (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output archive file or directory (default: <input name>.<ext> in the current directory)")
	cmd.Flags().StringVarP(&formatName, "format", "f", "", "Archive format: "+strings.Join(format.Names(), ", ")+" (required)")
	cmd.Flags().IntVarP(&compressLevel, "level", "l", 6, "Compression level (1=fastest, 9=best)")
	cmd.Flags().BoolVar(&useGitignore, "gitignore", false, "Respect .gitignore files when packing directories")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing output file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

// warnIfLargerThanMemory flags single-stream inputs that may not fit in RAM,
// since gz and bz2 buffer the whole file
func warnIfLargerThanMemory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	total, err := totalSystemMemory()
	if err != nil || total == 0 {
		return
	}
	if uint64(info.Size()) > total/2 {
		fmt.Fprintf(os.Stderr, "Warning: %s is %.1f GiB, more than half of system memory (%.1f GiB); it is buffered in full\n",
			path, float64(info.Size())/(1<<30), float64(total)/(1<<30))
	}
}
