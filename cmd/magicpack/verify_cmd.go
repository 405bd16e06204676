// cmd/magicpack/verify_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/magic-pack/internal/layers"
	"github.com/creativeyann17/magic-pack/pkg/verify"
)

func init() {
	rootCmd.AddCommand(verifyCmd())
}

func verifyCmd() *cobra.Command {
	var inputPath string
	var maxLayers int
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify archive integrity",
		Long: `Verify an archive without extracting it.

Every layer is decoded and every entry name and link target is checked
against the same rules decompress applies. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &verify.Options{
				InputPath: inputPath,
				MaxLayers: maxLayers,
				Verbose:   verbose,
				Quiet:     quiet,
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

			log("Verifying archive: %s", inputPath)
			log("")

			var progressCb verify.ProgressCallback
			if !quiet && !verbose {
				layer := 0
				progressCb = func(event verify.ProgressEvent) {
					switch event.Type {
					case verify.EventLayer:
						layer++
						if event.Total > 0 {
							fmt.Printf("Layer %d: checking %d entries...\n", layer, event.Total)
						}
					case verify.EventEntryVerify:
						if event.Current%100 == 0 {
							fmt.Printf("\r  Progress: %d entries", event.Current)
						}
					case verify.EventComplete:
						fmt.Printf("\r  Progress: %d entries\n", event.Current)
					case verify.EventError:
						fmt.Printf("\n  Error in: %s\n", event.FilePath)
					}
				}
			} else if verbose {
				progressCb = func(event verify.ProgressEvent) {
					switch event.Type {
					case verify.EventStart:
						fmt.Printf("Starting verification: %s\n", event.Message)
					case verify.EventEntryVerify:
						fmt.Printf("  [%d] %s\n", event.Current, event.FilePath)
					case verify.EventComplete:
						fmt.Printf("Verification complete\n")
					}
				}
			}

			result, err := verify.Verify(opts, progressCb)
			if err != nil && result == nil {
				return err
			}

			if !quiet {
				fmt.Println()
				fmt.Print(result.Summary())
			}

			if !result.IsValid() {
				return fmt.Errorf("archive verification failed")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input archive file (required)")
	cmd.Flags().IntVar(&maxLayers, "layers", layers.DefaultMaxLayers, "Maximum number of nested layers to check")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
