package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/devlinks/internal/api"
	"github.com/ruminaider/devlinks/internal/config"
	"github.com/ruminaider/devlinks/internal/signup"
	"github.com/spf13/cobra"
)

var signupEmail string

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Server == "" {
			return fmt.Errorf("server is not configured (run `devlinks config init` or set %sSERVER)", config.EnvPrefix)
		}
		client, err := api.NewClient(cfg.Server, api.WithTimeout(cfg.Timeout))
		if err != nil {
			return err
		}

		form := signup.Form{Email: signupEmail}
		if form.Email == "" {
			form.Email = cfg.Email
		}
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email address").
					Placeholder("e.g. alex@email.com").
					Validate(signup.ValidateEmail).
					Value(&form.Email),
				huh.NewInput().
					Title("Create password").
					Description(fmt.Sprintf("Must contain %d to %d characters", signup.MinPassword, signup.MaxPassword)).
					EchoMode(huh.EchoModePassword).
					Validate(signup.ValidatePassword).
					Value(&form.Password),
				huh.NewInput().
					Title("Confirm password").
					EchoMode(huh.EchoModePassword).
					Validate(signup.ValidateConfirm(&form.Password)).
					Value(&form.ConfirmPassword),
			),
		).Run()
		if err != nil {
			return err
		}

		if err := signup.Submit(context.Background(), client, form); err != nil {
			return errors.New(signup.Message(err))
		}
		fmt.Printf("✓ Account created for %s\n", form.Email)
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email (defaults to the configured email)")
}
