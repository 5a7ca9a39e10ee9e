// Package root provides the root command for the twk CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/completion"
	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/db"
	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/extract"
	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/importcmd"
	initcmd "github.com/open-cli-collective/taskwiki-cli/internal/cmd/init"
	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/mentions"
	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/process"
	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/render"
	"github.com/open-cli-collective/taskwiki-cli/internal/version"
)

// NewCmdRoot creates the root command for twk.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "twk",
		Short: "A command-line interface for wiki pages and tasks",
		Long: `twk works with the text of wiki pages, tasks and comments.

It renders wiki markdown to safe HTML, lists the @mentions, #tags and
/commands in a text, and runs those commands against a task board stored
in a local sqlite database or behind a REST API.

Get started by running: twk init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			path, _ := cmd.Flags().GetString("config")
			cmdutil.SetConfigPath(path)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/twk/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	cmd.SetVersionTemplate("twk version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(extract.NewCmdExtract())
	cmd.AddCommand(process.NewCmdProcess())
	cmd.AddCommand(mentions.NewCmdMentions())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(db.NewCmdDB())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
