// Package mentions provides commands for stored mention sets.
package mentions

import (
	"github.com/spf13/cobra"
)

// NewCmdMentions creates the mentions command.
func NewCmdMentions() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentions",
		Short: "Manage stored mentions",
		Long:  `Commands for keeping the stored mentions of pages, tasks and comments in step with their text.`,
	}

	cmd.AddCommand(NewCmdSync())

	return cmd
}
