package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/devlinks/cmd/devlinks/tui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the profile interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}

		m := tui.NewModel(ctx, s.Doc, s.Manager, s.Registry, s.Ingestor)
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("running editor: %w", err)
		}

		if pending := s.Manager.Pending(s.Doc); !pending.Empty() {
			fmt.Println("Exited with unsaved changes.")
		}
		return nil
	},
}
