package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/sanaguide/internal/app"
	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
)

var (
	renderStep        int
	renderSet         []string
	renderInteractive bool
	renderOutput      string
)

// renderOutputs lists the accepted --output formats.
var renderOutputs = []string{"text", "json", "yaml", "toml"}

var renderCmd = &cobra.Command{
	Use:   "render <flow>",
	Short: "Print a flow's commands with your values filled in",
	Long: `Render prints every command of a flow for the selected operating system,
with the fields you pass substituted. Blank fields show a placeholder such as
YOUR_HUBSPOT_CLIENT_ID so the command is still readable.

Secret values appear inside the commands, where they are needed, but are
masked in the field summary.

Examples:
  sanaguide render hubspot-to-sana
  sanaguide render hubspot-to-sana --step 5 --os windows
  sanaguide render hubspot-to-sana --set sanaDomain=acme --set hubspotClientId=abc
  sanaguide render hubspot-to-sana --interactive
  sanaguide render zendesk-to-sana --output json`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFlowIDs,
	RunE:              runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderStep, "step", 0, "Render only this step")
	renderCmd.Flags().StringArrayVar(&renderSet, "set", nil, "Field value as name=value (repeatable)")
	renderCmd.Flags().BoolVarP(&renderInteractive, "interactive", "i", false, "Prompt for each field")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "text", "Output format (text, json, yaml, toml)")

	_ = renderCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return renderOutputs, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(renderOutput)
	if !contains(renderOutputs, format) {
		return guide.NewConfigInvalidError("--output", renderOutput, renderOutputs)
	}

	rt, err := newRuntime(cmd, renderInteractive)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	st, err := rt.guide.Open(ctx, args[0], rt.os)
	if err != nil {
		return err
	}

	msgs, err := parseSetFlags(st.Flow(), renderSet)
	if err != nil {
		return err
	}
	st = rt.guide.Apply(ctx, st, msgs...)

	if renderInteractive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return guide.NewUserError(guide.ErrCodeNotATerminal, "--interactive needs a terminal").
				WithSuggestion("Pass values with --set name=value instead")
		}
		values, err := promptFields(st)
		if err != nil {
			return fmt.Errorf("prompting for fields: %w", err)
		}
		st = rt.guide.Apply(ctx, st, values...)
	}

	r, err := app.Render(st, renderStep)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(out, r)
	case "yaml":
		return writeYAML(out, r)
	case "toml":
		return writeTOML(out, r)
	}

	if renderStep > 0 {
		step, _ := st.Flow().Step(renderStep)
		body, err := renderMarkdown(step.Body, rt.cfg.Markdown.Style, min(terminalWidth(rt.cfg.Markdown.WordWrap), rt.cfg.Markdown.WordWrap))
		if err == nil && body != "" {
			_, _ = fmt.Fprintf(out, "%s\n\n", body)
		}
	}
	rt.guide.PrintRendering(r)
	return nil
}

// promptFields asks for every field of the open flow, prefilled with the
// current values. Secret fields are not echoed.
func promptFields(st app.State) ([]app.Msg, error) {
	fields := st.Flow().Fields
	if len(fields) == 0 {
		return nil, nil
	}

	values := make([]string, len(fields))
	inputs := make([]huh.Field, len(fields))
	for i, f := range fields {
		values[i] = st.Values[f.Name]
		placeholder := f.Example
		if placeholder == "" {
			placeholder = f.Fallback
		}
		input := huh.NewInput().
			Title(f.Label).
			Description(f.Help).
			Placeholder(placeholder).
			Value(&values[i])
		if f.Secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		inputs[i] = input
	}

	form := huh.NewForm(huh.NewGroup(inputs...)).WithTheme(huh.ThemeCharm())
	if err := form.Run(); err != nil {
		return nil, err
	}

	msgs := make([]app.Msg, len(fields))
	for i, f := range fields {
		msgs[i] = app.SetField{Name: f.Name, Value: strings.TrimSpace(values[i])}
	}
	return msgs, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeTOML(w io.Writer, v interface{}) error {
	return toml.NewEncoder(w).Encode(v)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
