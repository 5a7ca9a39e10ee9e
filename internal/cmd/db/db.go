// Package db provides commands for the local task database.
package db

import (
	"github.com/spf13/cobra"
)

// NewCmdDB creates the db command.
func NewCmdDB() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect and seed the task database",
		Long: `Commands for the task database behind twk.

init only applies to the sqlite backend. users and task also work against
the api backend.`,
	}

	cmd.AddCommand(NewCmdInit())
	cmd.AddCommand(NewCmdUsers())
	cmd.AddCommand(NewCmdTask())

	return cmd
}
