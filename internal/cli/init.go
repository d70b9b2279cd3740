package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hmendes/storyflow/internal/app"
	"github.com/hmendes/storyflow/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init [project]",
		Short:   "Scaffold the tasks directory",
		GroupID: groupAuthoring,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := filepath.Base(c.ProjectRoot)
			if len(args) == 1 {
				project = args[0]
			}
			if err := c.InitProjectUseCase().Execute(cmd.Context(), usecase.InitProjectInput{Project: project}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s in %s\n", project, c.TasksRoot)
			return nil
		},
	}
	return cmd
}
