package main

import (
	"fmt"

	"github.com/ruminaider/devlinks/internal/commands"
	"github.com/ruminaider/devlinks/internal/platforms"
	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "Inspect the platform catalog",
}

func loadRegistry() (*platforms.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return platforms.LoadFile(cfg.PlatformsFile)
}

var platformsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		for _, p := range reg.List() {
			fmt.Printf("  %-16s %s\n", p.ID, p.Name)
		}
		return nil
	},
}

var platformsCheckCmd = &cobra.Command{
	Use:   "check <platform> <url>",
	Short: "Check a URL against a platform's rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		ok, err := commands.CheckURL(reg, args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not a valid %s link", args[1], reg.Name(args[0]))
		}
		fmt.Printf("✓ valid %s link\n", reg.Name(args[0]))
		return nil
	},
}

func init() {
	platformsCmd.AddCommand(platformsListCmd)
	platformsCmd.AddCommand(platformsCheckCmd)
}
