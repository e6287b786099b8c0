package main

import (
	"fmt"
	"os"

	"github.com/aretw0/kopye"
	"github.com/aretw0/kopye/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kopye",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(os.Stdout)
		fmt.Printf("kopye version %s\n", kopye.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
