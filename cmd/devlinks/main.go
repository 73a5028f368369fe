package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/devlinks/internal/logger"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "devlinks",
	Short: "Manage your developer link-sharing profile",
	Long:  "devlinks edits a link-sharing profile (name, picture, and an ordered list of platform links) and saves it to a devlinks server.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetupDefault(os.Stderr, verbose)
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the editor
		return editCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("devlinks %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.devlinks/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(editCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
