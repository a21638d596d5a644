package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List integration flows",
	Long: `List every integration flow with its step count and category.

Flows marked "soon" are planned but have no steps yet. Flows marked with *
use a native Sana connector and need no scripts.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.guide.PrintFlows()
	return nil
}
