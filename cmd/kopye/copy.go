package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/kopye/internal/cli"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy <source> [blueprint] [destination]",
	Short: "Materialize a blueprint into a destination directory",
	Long: `Resolves the source (a directory, or gh:owner/repo, gl:owner/repo, git@host:owner/repo.git,
git+https://...), asks the blueprint questions and writes the rendered tree after confirmation.
A missing blueprint or destination is asked interactively.`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)
		replay, _ := cmd.Flags().GetString("replay")

		opts := cli.CopyOptions{Source: args[0], Replay: replay, Config: cfg}
		if len(args) > 1 {
			opts.Blueprint = args[1]
		}
		if len(args) > 2 {
			opts.Destination = args[2]
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		if err := cli.RunCopy(sigCtx, opts); err != nil {
			if errors.Is(err, cli.ErrCanceled) {
				fmt.Println()
				fmt.Println("Canceled, no changes made.")
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			sigCtx.Cancel()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)

	copyCmd.Flags().String("replay", "", "Reuse the answers of a stored run (run id or last:<blueprint>)")
	copyCmd.Flags().BoolP("yes", "y", false, "Skip the final confirmation")
	copyCmd.Flags().String("template-suffix", ".tera", "Suffix marking files whose content is rendered")
}
