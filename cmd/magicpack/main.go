package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "magicpack",
	Short:         "magic-pack - detect, pack and safely unpack archives",
	Long:          "magic-pack identifies archives by their magic bytes, packs files into zip, tar, gz, bz2, tar.gz or tar.bz2, and unpacks nested archives without letting entries escape the output directory.",
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
