package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmendes/storyflow/internal/app"
	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/usecase"
)

// newNextCommand creates the next command.
func newNextCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "next",
		Short:   "Show the next available task",
		GroupID: groupWorkflow,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.NextTaskUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if out.Location == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No available task: everything is done, blocked, or waiting on dependencies.")
				return nil
			}
			printTaskLine(cmd, out.Location)
			fmt.Fprintf(cmd.OutOrStdout(), "\nRun `storyflow start %s` to begin.\n", out.Location.Task.ID)
			return nil
		},
	}
}

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "start <taskId>",
		Short:   "Start work on a task",
		GroupID: groupWorkflow,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.StartTaskUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.StartTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			if out.PausedMainID != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: main task %s stays active while this side task runs.\n", out.PausedMainID)
			}
			printBranchSync(cmd, out)
			printTaskLine(cmd, out.Location)
			return nil
		},
	}
}

func printBranchSync(cmd *cobra.Command, out *usecase.StartTaskOutput) {
	b := out.Branch
	switch {
	case b.Created:
		fmt.Fprintf(cmd.OutOrStdout(), "Created branch %s (from %s)\n", b.Branch, b.SwitchedFrom)
		if b.Stashed {
			fmt.Fprintln(cmd.OutOrStdout(), "Uncommitted work was stashed and restored on the new branch.")
		}
	case b.SwitchedFrom != "":
		fmt.Fprintf(cmd.OutOrStdout(), "Switched to branch %s (was %s)\n", b.Branch, b.SwitchedFrom)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Already on branch %s\n", b.Branch)
	}
}

// newCheckCommand creates the check command.
func newCheckCommand(c *app.Container) *cobra.Command {
	var taskID string
	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Advance the active task one workflow step",
		GroupID: groupWorkflow,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := c.AdvanceTaskUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.AdvanceTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s -> %s\n",
				styleID.Render("T"+out.Location.Task.ID), out.Location.Task.Title,
				renderStatus(out.From), renderStatus(out.To))
			if out.CommitMessage != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nSuggested commit message:\n\n%s\n", out.CommitMessage)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "Task to advance (defaults to the active task)")
	return cmd
}

// newSkipCommand creates the skip command.
func newSkipCommand(c *app.Container) *cobra.Command {
	var taskID string
	cmd := &cobra.Command{
		Use:     "skip <reason>",
		Short:   "Block the active task with a reason",
		GroupID: groupWorkflow,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.BlockTaskUseCase().Execute(cmd.Context(), usecase.BlockTaskInput{
				TaskID: taskID,
				Reason: args[0],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s blocked (was %s). Run `storyflow resume` to pick it back up.\n",
				styleID.Render("T"+out.Location.Task.ID), out.Location.Task.Title, renderStatus(out.From))
			return nil
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "Task to block (defaults to the active task)")
	return cmd
}

// newResumeCommand creates the resume command.
func newResumeCommand(c *app.Container) *cobra.Command {
	var taskID string
	cmd := &cobra.Command{
		Use:     "resume [targetStatus]",
		Short:   "Resume a blocked task",
		Long: `Resume a blocked task, restoring the status it was blocked from.
An explicit target status overrides the restore and must be one of the
active workflow statuses (setup, planning, implementing, verifying,
validating, committing).`,
		GroupID: groupWorkflow,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ResumeTaskInput{TaskID: taskID}
			if len(args) == 1 {
				in.Target = domain.Status(args[0])
			}
			out, err := c.ResumeTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s resumed at %s\n",
				styleID.Render("T"+out.Location.Task.ID), out.Location.Task.Title, renderStatus(out.To))
			return nil
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "Task to resume (defaults to the first blocked task)")
	return cmd
}

// newHoldCommand creates the hold command.
func newHoldCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "hold <taskId>",
		Short:   "Put a not-started task on hold",
		GroupID: groupWorkflow,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.HoldTaskUseCase().Execute(cmd.Context(), usecase.HoldTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is on hold; `storyflow resume --task %s` brings it back.\n",
				styleID.Render("T"+out.Location.Task.ID), out.Location.Task.Title, out.Location.Task.ID)
			return nil
		},
	}
}

func printTaskLine(cmd *cobra.Command, loc *domain.TaskLocation) {
	marker := ""
	if loc.Task.Intermittent {
		marker = " (intermittent)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s%s [%s]\n  story %s: %s\n",
		styleID.Render("T"+loc.Task.ID), loc.Task.Title, marker,
		renderStatus(loc.Task.Status), loc.Story.ID, loc.Story.Title)
}
