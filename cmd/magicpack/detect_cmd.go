// cmd/magicpack/detect_cmd.go

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/magic-pack/pkg/format"
)

func init() {
	rootCmd.AddCommand(detectCmd())
}

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>...",
		Short: "Identify archive formats from file content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				f, err := format.Detect(path)
				switch {
				case err == nil:
					fmt.Fprintf(out, "%s: %s\n", path, f)
				case errors.Is(err, format.ErrUnsupportedFormat):
					fmt.Fprintf(out, "%s: unsupported\n", path)
				default:
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}
}
