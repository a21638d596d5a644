package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sanaguide/internal/catalog"
	"github.com/felixgeelhaar/sanaguide/internal/tui/components"
)

var (
	copySet   []string
	copyPrint bool
)

var copyCmd = &cobra.Command{
	Use:   "copy <flow> <snippet>",
	Short: "Copy one command to the clipboard",
	Long: `Copy renders one command of a flow with your values filled in and places
it on the clipboard.

Over SSH or inside tmux, use --clipboard osc52 to copy through the terminal.

Examples:
  sanaguide copy hubspot-to-sana redirect-url --set sanaDomain=acme
  sanaguide copy hubspot-to-sana crontab-line --os linux
  sanaguide copy hubspot-to-sana oauth-url --print --clipboard none`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return completeFlowIDs(cmd, args, toComplete)
		}
		return completeSnippetIDs(args[0])
	},
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().StringArrayVar(&copySet, "set", nil, "Field value as name=value (repeatable)")
	copyCmd.Flags().BoolVar(&copyPrint, "print", false, "Also print the command")
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	st, err := rt.guide.Open(ctx, args[0], rt.os)
	if err != nil {
		return err
	}

	msgs, err := parseSetFlags(st.Flow(), copySet)
	if err != nil {
		return err
	}
	st = rt.guide.Apply(ctx, st, msgs...)

	out := cmd.OutOrStdout()
	rendered, err := rt.guide.Copy(ctx, st, args[1])
	if copyPrint && rendered.Command != "" {
		_, _ = fmt.Fprintln(out, rendered.Command)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%s %s (step %d, %s)\n", components.CopiedLabel, rendered.Title, rendered.Step, st.OS.Label())
	return nil
}

// completeSnippetIDs offers the snippet ids of flowID.
func completeSnippetIDs(flowID string) ([]string, cobra.ShellCompDirective) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	flow, err := cat.Get(flowID)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, step := range flow.Steps {
		for _, sn := range step.Snippets {
			out = append(out, fmt.Sprintf("%s\tstep %d: %s", sn.ID, step.Number, sn.Title))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
