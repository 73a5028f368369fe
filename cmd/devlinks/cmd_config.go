package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/devlinks/internal/commands"
	"github.com/ruminaider/devlinks/internal/config"
	"github.com/ruminaider/devlinks/internal/signup"
	"github.com/spf13/cobra"
)

var (
	configServer string
	configEmail  string
	configToken  string
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage devlinks configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file",
	Long:  "Create ~/.devlinks/config.yaml. Values not given as flags are asked for interactively.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Config{Server: configServer, Email: configEmail, Token: configToken}

		if cfg.Server == "" || cfg.Email == "" {
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Server URL").
						Placeholder("https://devlinks.example.com").
						Value(&cfg.Server),
					huh.NewInput().
						Title("Email").
						Validate(signup.ValidateEmail).
						Value(&cfg.Email),
				),
			).Run()
			if err != nil {
				return err
			}
		}

		path := resolvedConfigPath()
		if err := commands.ConfigInit(path, cfg, configForce); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(); err != nil {
			return err
		}
		cfg, err := commands.ConfigShow(resolvedConfigPath())
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configServer, "server", "", "Server base URL")
	configInitCmd.Flags().StringVar(&configEmail, "email", "", "Account email")
	configInitCmd.Flags().StringVar(&configToken, "token", "", "Bearer token sent with every request")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
