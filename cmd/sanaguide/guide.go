package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/tui"
)

var (
	guideListFlag bool
)

var guideCmd = &cobra.Command{
	Use:   "guide [flow]",
	Short: "Open the interactive guide",
	Long: `Guide opens the interactive step-by-step guide.

Pick an integration from the catalog, or name one to jump straight to its
first step. Inside a flow:

  ↑/↓        move between steps
  enter      expand or collapse the step
  c          mark the step complete and open the next one
  tab        focus the next command
  y          copy the focused command
  f          fill in your domain and credentials
  o          switch operating system
  esc        back to the catalog (forgets what you typed)

Examples:
  sanaguide guide                    # Open the catalog
  sanaguide guide hubspot-to-sana    # Start a specific flow
  sanaguide guide --os windows       # Show Windows commands
  sanaguide guide --list             # List available flows`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeFlowIDs,
	RunE:              runGuide,
}

func init() {
	guideCmd.Flags().BoolVar(&guideListFlag, "list", false, "List available flows")
	rootCmd.AddCommand(guideCmd)
}

func runGuide(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd, !guideListFlag)
	if err != nil {
		return err
	}
	defer rt.Close()

	if guideListFlag {
		rt.guide.PrintFlows()
		return nil
	}

	opts := tui.NewGuideOptions().
		WithOS(rt.os).
		WithMarkdown(rt.cfg.Markdown.Style, rt.cfg.Markdown.WordWrap)

	if len(args) > 0 {
		flow, err := rt.guide.Catalog().Get(args[0])
		if err != nil {
			return err
		}
		if flow.ComingSoon {
			return guide.NewUserError(guide.ErrCodeFlowNotFound, fmt.Sprintf("'%s' is coming soon", flow.Title)).
				WithSuggestion("Run 'sanaguide list' to see the guides available today")
		}
		opts = opts.WithInitialFlow(flow.ID)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return guide.NewUserError(guide.ErrCodeNotATerminal, "the interactive guide needs a terminal").
			WithSuggestion("Use 'sanaguide render <flow>' to print the commands instead")
	}

	result, err := tui.RunGuide(cmd.Context(), rt.guide, opts)
	if err != nil {
		return err
	}

	if result.LastFlow != "" && result.StepsTotal > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d steps completed\n", result.LastFlow, result.StepsCompleted, result.StepsTotal)
	}
	return nil
}
