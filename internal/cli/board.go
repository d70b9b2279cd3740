package cli

import (
	"github.com/spf13/cobra"

	"github.com/hmendes/storyflow/internal/app"
	"github.com/hmendes/storyflow/internal/tui"
)

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "board",
		Short:   "Open the interactive backlog board",
		GroupID: groupWorkflow,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run(c)
		},
	}
}
