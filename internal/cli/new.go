package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmendes/storyflow/internal/app"
	"github.com/hmendes/storyflow/internal/usecase"
)

// newNewCommand creates the new command and its subcommands.
func newNewCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new",
		Short:   "Add features, stories, and tasks to the backlog",
		GroupID: groupAuthoring,
	}
	cmd.AddCommand(
		newNewFeatureCommand(c),
		newNewStoryCommand(c),
		newNewTaskCommand(c),
	)
	return cmd
}

func newNewFeatureCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "feature <title>",
		Short: "Add a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.NewFeatureUseCase().Execute(cmd.Context(), usecase.NewFeatureInput{Title: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", styleID.Render("F"+out.Feature.ID), out.Feature.Title)
			return nil
		},
	}
}

func newNewStoryCommand(c *app.Container) *cobra.Command {
	var featureID string
	cmd := &cobra.Command{
		Use:   "story <title>",
		Short: "Add a story to a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.NewStoryUseCase().Execute(cmd.Context(), usecase.NewStoryInput{
				FeatureID: featureID,
				Title:     args[0],
			})
			if err != nil {
				return err
			}
			s := out.Location.Story
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", styleID.Render("S"+s.ID), s.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&featureID, "feature", "", "Feature to add the story to")
	_ = cmd.MarkFlagRequired("feature")
	return cmd
}

func newNewTaskCommand(c *app.Container) *cobra.Command {
	var (
		storyID      string
		description  string
		skill        string
		deps         []string
		subtasks     []string
		contexts     []string
		intermittent bool
		fromFile     string
		dryRun       bool
	)
	cmd := &cobra.Command{
		Use:   "task [title]",
		Short: "Add a task to a story",
		Long: `Add a task to a story. With --from, a YAML document stream is read and
every document becomes one task; the whole batch is validated before
anything is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFile != "" {
				out, err := c.CreateTasksFromFileUseCase().Execute(cmd.Context(), usecase.CreateTasksFromFileInput{
					Path:   fromFile,
					DryRun: dryRun,
				})
				if err != nil {
					return err
				}
				verb := "Created"
				if dryRun {
					verb = "Would create"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d task(s):\n", verb, len(out.Locations))
				for _, loc := range out.Locations {
					printTaskLine(cmd, loc)
				}
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("a task title is required unless --from is given")
			}
			out, err := c.NewTaskUseCase().Execute(cmd.Context(), usecase.NewTaskInput{
				StoryID:      storyID,
				Title:        args[0],
				Description:  description,
				Skill:        skill,
				Dependencies: deps,
				Subtasks:     subtasks,
				Context:      contexts,
				Intermittent: intermittent,
			})
			if err != nil {
				return err
			}
			printTaskLine(cmd, out.Location)
			return nil
		},
	}
	cmd.Flags().StringVar(&storyID, "story", "", "Story to add the task to")
	cmd.Flags().StringVar(&description, "description", "", "What the task should accomplish")
	cmd.Flags().StringVar(&skill, "skill", "", "Commit type hint (feat, fix, docs, ...)")
	cmd.Flags().StringSliceVar(&deps, "dep", nil, "Task ID this task depends on (repeatable)")
	cmd.Flags().StringSliceVar(&subtasks, "subtask", nil, "Subtask title (repeatable)")
	cmd.Flags().StringSliceVar(&contexts, "context", nil, "Context file or note (repeatable)")
	cmd.Flags().BoolVar(&intermittent, "intermittent", false, "Home the task under the intermittent story")
	cmd.Flags().StringVar(&fromFile, "from", "", "YAML file holding a stream of task drafts")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the drafts without writing (requires --from)")
	return cmd
}
