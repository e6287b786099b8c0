package main

import (
	"fmt"
	"os"

	"github.com/aretw0/kopye/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kopye",
	Short: "kopye scaffolds projects from blueprints",
	Long: `kopye asks the questions declared by a blueprint, renders its directory tree with the
answers, previews the result and writes it transactionally: a failed run leaves nothing behind.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("answers-store", "", "Answer store: a directory, a redis:// URL, or 'none'")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write run metrics to this file (Prometheus text format)")
}

// loadConfig reads KOPYE_* variables, then applies the flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if flags.Changed("answers-store") {
		cfg.Answers.Store, _ = flags.GetString("answers-store")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if flags.Lookup("yes") != nil && flags.Changed("yes") {
		cfg.AssumeYes, _ = flags.GetBool("yes")
	}
	if flags.Lookup("template-suffix") != nil && flags.Changed("template-suffix") {
		cfg.TemplateSuffix, _ = flags.GetString("template-suffix")
	}
	return cfg, nil
}

func mustConfig(cmd *cobra.Command) *config.Config {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
