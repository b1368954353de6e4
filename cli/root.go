package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobihoff/anirate/cli/config"
)

var rootCmd = &cobra.Command{
	Use:     "anirate",
	Short:   "AniRate command line client",
	Long:    `Command line client for the AniRate server: manage saved anime ratings, search the catalog and export your data.`,
	Version: "1.0.0",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize CLI configuration",
	Long:  `Write the default configuration file to ~/.anirate/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Defaults()
		if err := config.Save(cfg); err != nil {
			printError(fmt.Sprintf("Failed to write config: %v", err))
			return err
		}
		path, _ := config.GetConfigPath()
		printSuccess(fmt.Sprintf("Configuration written to %s", path))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(ratingsCmd)
	rootCmd.AddCommand(animeCmd)
	rootCmd.AddCommand(systemCmd)
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
}

func printSuccess(msg string) {
	fmt.Printf("✓ %s\n", msg)
}
