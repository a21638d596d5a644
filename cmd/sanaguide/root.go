package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sanaguide/internal/adapters/clipboard"
	"github.com/felixgeelhaar/sanaguide/internal/adapters/logging"
	"github.com/felixgeelhaar/sanaguide/internal/app"
	"github.com/felixgeelhaar/sanaguide/internal/catalog"
	"github.com/felixgeelhaar/sanaguide/internal/config"
	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/ports"
)

var (
	// Global flags
	cfgFile       string
	verbose       bool
	osFlag        string
	logFile       string
	clipboardFlag string
)

var rootCmd = &cobra.Command{
	Use:   "sanaguide",
	Short: "Step-by-step guides for connecting tools to Sana",
	Long: `Sanaguide walks you through connecting HubSpot, Zendesk, Notion and other
tools to Sana, one numbered step at a time.

Type your domain and credentials once and every command in the guide is
filled in for your operating system, ready to copy. Credentials stay in
memory and are never written to disk.

Run without arguments to open the interactive guide.`,
	Args:          cobra.NoArgs,
	RunE:          runGuide,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: <config dir>/sanaguide/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&osFlag, "os", "", "operating system to show commands for (mac, windows, linux)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&clipboardFlag, "clipboard", "", "clipboard backend (system, osc52, none)")

	registerFlagCompletions()

	rootCmd.AddCommand(versionCmd)
}

// runtime is everything a command needs, built from configuration.
type runtime struct {
	cfg    *config.Config
	guide  *app.Guide
	logger ports.Logger
	os     platform.OS
	closer func()
}

// Close releases the clipboard tracker and the log file.
func (r *runtime) Close() {
	r.guide.Close()
	r.closer()
}

// newRuntime loads configuration and wires the application. Interactive
// commands discard logs unless a log file is configured, since the TUI owns
// the terminal.
func newRuntime(cmd *cobra.Command, interactive bool) (*runtime, error) {
	loader := config.NewLoader()
	for key, name := range map[string]string{
		"default_os": "os",
		"clipboard":  "clipboard",
		"log.file":   "log-file",
	} {
		if err := loader.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}

	cfg, err := loader.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("loading flow catalog: %w", err)
	}

	logger, closer, err := newLogger(cfg, cmd.ErrOrStderr(), interactive, secretKeys(cat))
	if err != nil {
		return nil, err
	}

	clip, err := clipboard.New(cfg.Clipboard, cmd.ErrOrStderr())
	if err != nil {
		closer()
		return nil, err
	}

	return &runtime{
		cfg:    cfg,
		guide:  app.New(cat, clip, cmd.OutOrStdout(), app.WithLogger(logger)),
		logger: logger,
		os:     cfg.OS(),
		closer: closer,
	}, nil
}

func newLogger(cfg *config.Config, stderr io.Writer, interactive bool, redact []string) (ports.Logger, func(), error) {
	level := cfg.LogLevel()
	if verbose {
		level = ports.LevelDebug
	}

	out := stderr
	closer := func() {}
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, guide.NewUserError(guide.ErrCodeConfigInvalid, "cannot open log file").
				WithContext(cfg.Log.File).
				WithUnderlying(err)
		}
		out = f
		closer = func() { _ = f.Close() }
	case interactive:
		return logging.NewNopLogger(), closer, nil
	}

	logger := logging.NewConsoleLogger(
		logging.WithOutput(out),
		logging.WithLevel(level),
		logging.WithJSONFormat(cfg.Log.Format == "json"),
		logging.WithTimestamp(cfg.Log.File != ""),
		logging.WithRedactedKeys(redact...),
	)
	return logger, closer, nil
}

// secretKeys returns every secret field name in the catalog.
func secretKeys(cat *guide.Catalog) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, f := range cat.List() {
		for _, name := range f.SecretNames() {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				keys = append(keys, name)
			}
		}
	}
	return keys
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *guide.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (%s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}

	var list *guide.ErrorList
	if errors.As(err, &list) {
		return list.Format()
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// completeFlowIDs offers the catalog's flow ids for the first argument.
func completeFlowIDs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, f := range cat.List() {
		if !f.ComingSoon {
			out = append(out, f.ID+"\t"+f.Title)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("os", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, o := range platform.All() {
			out = append(out, o.String()+"\t"+o.Label())
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	_ = rootCmd.RegisterFlagCompletionFunc("clipboard", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"system\tOperating system clipboard",
			"osc52\tTerminal escape sequence, works over SSH and tmux",
			"none\tDisable copying",
		}, cobra.ShellCompDirectiveNoFileComp
	})
}

// parseSetFlags turns repeated key=value flags into SetField messages for
// flow. Unknown names are errors so typos do not silently render fallbacks.
func parseSetFlags(flow guide.Flow, pairs []string) ([]app.Msg, error) {
	msgs := make([]app.Msg, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, guide.NewUserError(guide.ErrCodeFieldUnknown, fmt.Sprintf("invalid --set value '%s'", pair)).
				WithSuggestion("Use --set name=value, e.g. --set sanaDomain=acme")
		}
		if _, known := flow.Field(name); !known {
			return nil, guide.NewFieldUnknownError(flow.ID, name, flow.FieldNames())
		}
		msgs = append(msgs, app.SetField{Name: name, Value: value})
	}
	return msgs, nil
}
