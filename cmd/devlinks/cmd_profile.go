package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ruminaider/devlinks/internal/commands"
	"github.com/spf13/cobra"
)

var (
	profileFirstName string
	profileLastName  string
	profileColor     string
	profileCustomURL string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change profile details",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(context.Background())
		if err != nil {
			return err
		}
		v := commands.ShowProfile(s)
		rows := []struct{ label, value string }{
			{"Email", v.Email},
			{"First name", v.FirstName},
			{"Last name", v.LastName},
			{"Picture", v.Avatar},
			{"Color", v.Color},
			{"Custom URL", v.CustomURL},
			{"Links", fmt.Sprint(v.Links)},
		}
		for _, r := range rows {
			value := r.value
			if value == "" {
				value = "-"
			}
			fmt.Printf("  %-11s %s\n", r.label, value)
		}
		if len(v.Missing) > 0 {
			fmt.Printf("\nMissing before the profile can be saved: %s\n", strings.Join(v.Missing, ", "))
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change profile details and save",
	Long:  "Change profile details and save. Pass an empty value to clear an optional field, e.g. --color \"\".",
	RunE: func(cmd *cobra.Command, args []string) error {
		var u commands.ProfileUpdate
		flags := cmd.Flags()
		if flags.Changed("first-name") {
			u.FirstName = &profileFirstName
		}
		if flags.Changed("last-name") {
			u.LastName = &profileLastName
		}
		if flags.Changed("color") {
			u.Color = &profileColor
		}
		if flags.Changed("custom-url") {
			u.CustomURL = &profileCustomURL
		}
		if u.Empty() {
			return fmt.Errorf("nothing to update (see --help)")
		}

		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		res, err := commands.SetProfile(ctx, s, u)
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar <path-or-url>",
	Short: "Set the profile picture and save",
	Long:  "Set the profile picture from a local file or an http(s) URL and save. Images must be below 1024x1024px; PNG and JPG work best.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		img, res, err := commands.SetAvatar(ctx, s, args[0])
		if err != nil {
			if msg := s.Doc.ErrorMessage(); msg != "" {
				return fmt.Errorf("%s (%w)", msg, err)
			}
			return err
		}
		fmt.Printf("Picture: %s\n", img.Describe())
		printResult(res)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileFirstName, "first-name", "", "First name")
	profileSetCmd.Flags().StringVar(&profileLastName, "last-name", "", "Last name")
	profileSetCmd.Flags().StringVar(&profileColor, "color", "", "Accent color, e.g. #633CFF")
	profileSetCmd.Flags().StringVar(&profileCustomURL, "custom-url", "", "Custom profile URL slug")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileAvatarCmd)
}
