// Package cli provides the command-line interface for storyflow.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/hmendes/storyflow/internal/app"
)

// Command group IDs.
const (
	groupWorkflow  = "workflow"
	groupAuthoring = "authoring"
)

// NewRootCommand creates the root command for storyflow. It receives the
// container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "storyflow",
		Short: "Feature/Story/Task workflow CLI",
		Long: `storyflow coordinates a Feature -> Story -> Task backlog for a single
developer session. One task is active at a time (plus at most one
intermittent side task), dependencies gate what can start, and the
working directory's git branch follows the active story.

Typical loop:
  storyflow next              # what should I work on?
  storyflow start 1.1.0       # guard, deps, branch sync, begin
  storyflow check             # advance the active task one step
  storyflow skip "waiting on API"
  storyflow resume`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors.
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (main handles it).
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupWorkflow, Title: "Workflow Commands:"},
		&cobra.Group{ID: groupAuthoring, Title: "Backlog Commands:"},
	)

	root.AddCommand(
		newNextCommand(c),
		newStartCommand(c),
		newCheckCommand(c),
		newSkipCommand(c),
		newResumeCommand(c),
		newHoldCommand(c),
		newStatusCommand(c),
		newBoardCommand(c),
		newInitCommand(c),
		newNewCommand(c),
	)

	return root
}
