package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/kopye/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [source]",
	Short: "Check every blueprint of a source",
	Long: `Loads the registry and each question file, then reports invalid questions, malformed
dependencies and dependency cycles. Dependencies on undeclared questions are warnings.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)

		ref := "."
		if len(args) > 0 {
			ref = args[0]
		}

		findings, err := cli.ValidateSource(context.Background(), ref, cli.CreateLogger(cfg.Debug))
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		failed := false
		for _, f := range findings {
			fmt.Println(f)
			if !f.Warning {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
		fmt.Println("All blueprints are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
