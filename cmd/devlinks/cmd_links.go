package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/devlinks/internal/commands"
	"github.com/ruminaider/devlinks/internal/links"
	"github.com/ruminaider/devlinks/internal/platforms"
	"github.com/spf13/cobra"
)

var (
	linksRemoveYes  bool
	linksUpdatePlat string
	linksUpdateURL  string
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List and edit profile links",
}

var linksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List links in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(context.Background())
		if err != nil {
			return err
		}
		views := commands.ListLinks(s)
		if len(views) == 0 {
			fmt.Println("No links yet. Add one with 'devlinks links add <platform> <url>'.")
			return nil
		}
		for _, v := range views {
			url := v.URL
			if url == "" {
				url = "-"
			}
			fmt.Printf("%2d. %-16s %s\n", v.Position, v.Label, url)
			if v.Issue != "" {
				fmt.Printf("      ⚠️  %s\n", v.Issue)
			}
		}
		return nil
	},
}

var linksAddCmd = &cobra.Command{
	Use:   "add [platform] [url]",
	Short: "Add a link and save",
	Long:  "Add a link and save. Without a platform argument the platform is picked interactively.",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}

		var platformID, url string
		if len(args) > 0 {
			platformID = args[0]
		} else if platformID, err = pickPlatform(s.Registry); err != nil {
			return err
		}
		if len(args) > 1 {
			url = args[1]
		}

		e, res, err := commands.AddLink(ctx, s, platformID, url)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s link as #%d\n", s.Registry.Name(e.PlatformID), s.Doc.LinkCount())
		printResult(res)
		return nil
	},
}

// pickPlatform asks for a platform with a huh select.
func pickPlatform(reg *platforms.Registry) (string, error) {
	var options []huh.Option[string]
	for _, p := range reg.List() {
		options = append(options, huh.NewOption(p.Name, p.ID))
	}
	var choice string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Platform").
				Options(options...).
				Value(&choice),
		),
	).Run()
	return choice, err
}

var linksRemoveCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove a link and save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}

		e, err := commands.ResolveLink(s.Doc, args[0])
		if err != nil {
			return err
		}
		if !linksRemoveYes {
			confirmed := false
			label := s.Registry.Name(e.PlatformID)
			if label == "" {
				label = "link"
			}
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Remove %s %s?", label, e.URL)).
						Affirmative("Remove").
						Negative("Cancel").
						Value(&confirmed),
				),
			).Run()
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Nothing removed.")
				return nil
			}
		}

		_, res, err := commands.RemoveLink(ctx, s, args[0])
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

var linksUpdateCmd = &cobra.Command{
	Use:   "update <position>",
	Short: "Change a link's platform or URL and save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("platform") && !flags.Changed("url") {
			return fmt.Errorf("nothing to update (use --platform and/or --url)")
		}

		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		e, err := commands.ResolveLink(s.Doc, args[0])
		if err != nil {
			return err
		}

		field, value := links.FieldPlatform, linksUpdatePlat
		if flags.Changed("url") {
			// Both fields go out in a single save.
			if flags.Changed("platform") {
				if _, err := s.Registry.Get(linksUpdatePlat); err != nil {
					return err
				}
				if err := s.Doc.UpdateLink(e.ID, links.FieldPlatform, linksUpdatePlat); err != nil {
					return err
				}
			}
			field, value = links.FieldURL, linksUpdateURL
		}
		res, err := commands.UpdateLink(ctx, s, args[0], field, value)
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

var linksMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a link to another position and save",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[0])
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}

		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		res, err := commands.MoveLink(ctx, s, from, to)
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

func init() {
	linksRemoveCmd.Flags().BoolVarP(&linksRemoveYes, "yes", "y", false, "Remove without asking")
	linksUpdateCmd.Flags().StringVar(&linksUpdatePlat, "platform", "", "Platform id")
	linksUpdateCmd.Flags().StringVar(&linksUpdateURL, "url", "", "Link URL")

	linksCmd.AddCommand(linksListCmd)
	linksCmd.AddCommand(linksAddCmd)
	linksCmd.AddCommand(linksRemoveCmd)
	linksCmd.AddCommand(linksUpdateCmd)
	linksCmd.AddCommand(linksMoveCmd)
}
