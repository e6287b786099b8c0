package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/kopye/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <source>",
	Short: "List the blueprints of a source",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)

		out, err := cli.ListBlueprints(context.Background(), args[0], cfg.NoColor, cli.CreateLogger(cfg.Debug))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
