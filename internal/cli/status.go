package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hmendes/storyflow/internal/app"
	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/usecase"
)

// newStatusCommand creates the status command.
func newStatusCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status [featureId|storyId]",
		Short: "Show the backlog tree",
		Long: `Show the backlog as a tree of features, stories, and tasks. With no
argument the whole project is shown; a feature ID ("2") or story ID
("2.1") narrows the view.`,
		GroupID: groupWorkflow,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowStatusInput{}
			if len(args) == 1 {
				in.ID = args[0]
			}
			out, err := c.ShowStatusUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func printStatus(w io.Writer, out *usecase.ShowStatusOutput) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	defer tw.Flush()

	switch {
	case out.Story != nil:
		writeStory(tw, out.Story.Story)
	case out.Feature != nil:
		writeFeature(tw, out.Feature)
	default:
		fmt.Fprintf(tw, "%s\n", out.Graph.Project)
		for _, f := range out.Graph.Features {
			writeFeature(tw, f)
		}
	}

	if out.Active != nil {
		fmt.Fprintf(tw, "\nActive: T%s %s [%s]\n",
			out.Active.Task.ID, out.Active.Task.Title, renderStatus(out.Active.Task.Status))
	}
}

func writeFeature(w io.Writer, f *domain.Feature) {
	fmt.Fprintf(w, "%s\t%s\t%s\n", styleID.Render("F"+f.ID), f.Title, renderStatus(f.Status))
	for _, s := range f.Stories {
		writeStory(w, s)
	}
}

func writeStory(w io.Writer, s *domain.Story) {
	fmt.Fprintf(w, "  %s\t%s\t%s\n", styleID.Render("S"+s.ID), s.Title, renderStatus(s.Status))
	for _, t := range s.Tasks {
		extra := ""
		if len(t.Dependencies) > 0 {
			extra = " (after " + strings.Join(t.Dependencies, ", ") + ")"
		}
		fmt.Fprintf(w, "    %s\t%s%s\t%s\n", "T"+t.ID, t.Title, extra, renderStatus(t.Status))
	}
}
