// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage twk configuration",
		Long:  `Commands for viewing, testing, and clearing twk configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// envVars lists every environment variable twk reads.
var envVars = []string{
	"TWK_BACKEND", "TWK_DATABASE", "TWK_URL", "TWK_EMAIL", "TWK_API_TOKEN",
	"TWK_ACTOR_ID", "TWK_LOG_LEVEL", "TWK_LOG_FORMAT", "TWK_OUTPUT_FORMAT",
	"TASKWIKI_BACKEND", "TASKWIKI_DATABASE", "TASKWIKI_URL", "TASKWIKI_EMAIL", "TASKWIKI_API_TOKEN",
}
