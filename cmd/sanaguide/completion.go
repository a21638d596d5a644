package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for sanaguide.

To load completions:

Bash:
  $ source <(sanaguide completion bash)
  # To load completions for each session, add to ~/.bashrc:
  # source <(sanaguide completion bash)

Zsh:
  $ source <(sanaguide completion zsh)
  # To load completions for each session, add to ~/.zshrc:
  # source <(sanaguide completion zsh)
  # You may need to start a new shell for this to take effect.

Fish:
  $ sanaguide completion fish | source
  # To load completions for each session, run:
  $ sanaguide completion fish > ~/.config/fish/completions/sanaguide.fish

PowerShell:
  PS> sanaguide completion powershell | Out-String | Invoke-Expression
  # To load completions for each session, add the output to your profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
