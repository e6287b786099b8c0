package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/kopye/internal/cli"
	"github.com/spf13/cobra"
)

// questionsCmd represents the questions command
var questionsCmd = &cobra.Command{
	Use:   "questions <source> <blueprint>",
	Short: "Show the question order and dependency graph of a blueprint",
	Long: `Prints the order in which the questions of a blueprint are asked, followed by a Mermaid
diagram (graph TD) of their dependencies. With --replay, questions answered in that run are
highlighted.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)
		replay, _ := cmd.Flags().GetString("replay")

		store, closeStore, err := cli.OpenAnswerStore(cfg.Answers)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		report, err := cli.DescribeQuestions(context.Background(), args[0], args[1], replay, store, cli.CreateLogger(cfg.Debug))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			closeStore()
			os.Exit(1)
		}

		fmt.Println("Order:")
		for i, id := range report.Order {
			fmt.Printf("  %d. %s\n", i+1, id)
		}
		fmt.Println()
		fmt.Print(report.Mermaid)
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().String("replay", "", "Highlight the questions answered in a stored run")
}
