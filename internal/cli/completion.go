package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for folio and write it to stdout.

Load completions in the current shell:

  bash:        source <(folio completion bash)
  zsh:         source <(folio completion zsh)
  fish:        folio completion fish | source
  powershell:  folio completion powershell | Out-String | Invoke-Expression

To load them for every session, write the script to your shell's completion
directory instead, e.g. folio completion zsh > "${fpath[1]}/_folio".
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return cmd.Root().GenBashCompletionV2(out, true)
			}
		},
	}
}
