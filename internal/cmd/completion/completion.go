// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name     string
	title    string
	install  string
	generate func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:  "bash",
		title: "bash",
		install: `To load completions in your current shell session:

  source <(twk completion bash)

To load completions for every new session:

  # Linux
  twk completion bash > /etc/bash_completion.d/twk

  # macOS (requires bash-completion)
  twk completion bash > $(brew --prefix)/etc/bash_completion.d/twk`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletion(w)
		},
	},
	{
		name:  "zsh",
		title: "zsh",
		install: `If shell completion is not already enabled, add this to ~/.zshrc:

  autoload -U compinit; compinit

Then install the script into your fpath:

  twk completion zsh > "${fpath[1]}/_twk"`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name:  "fish",
		title: "fish",
		install: `To load completions in your current shell session:

  twk completion fish | source

To load completions for every new session:

  twk completion fish > ~/.config/fish/completions/twk.fish`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name:  "powershell",
		title: "PowerShell",
		install: `To load completions in your current shell session:

  twk completion powershell | Out-String | Invoke-Expression

To load completions for every new session, add the output to your profile.`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for twk.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newShellCmd(sh))
	}

	return cmd
}

func newShellCmd(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:                   sh.name,
		Short:                 "Generate " + sh.title + " completion script",
		Long:                  "Generate " + sh.title + " completion script for twk.\n\n" + sh.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.generate(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
