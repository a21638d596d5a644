package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/sanaguide/internal/app"
	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/testutil"
)

// isolate points every config location at a temp dir and clears SANAGUIDE_*
// variables.
func isolate(t *testing.T) string {
	t.Helper()

	dir := testutil.TempConfigDir(t)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("APPDATA", dir)
	for _, key := range []string{
		"SANAGUIDE_CONFIG_PATH", "SANAGUIDE_DEFAULT_OS", "SANAGUIDE_CLIPBOARD",
		"SANAGUIDE_LOG_LEVEL", "SANAGUIDE_LOG_FORMAT", "SANAGUIDE_LOG_FILE",
		"SANAGUIDE_MARKDOWN_STYLE", "SANAGUIDE_MARKDOWN_WORD_WRAP",
	} {
		testutil.UnsetEnv(t, key)
	}
	return dir
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with args and returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	isolate(t)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_UseLine(t *testing.T) {
	assert.Equal(t, "sanaguide", rootCmd.Use)
}

func TestRootCommand_HasPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	for _, name := range []string{"config", "verbose", "os", "log-file", "clipboard"} {
		t.Run(name, func(t *testing.T) {
			require.NotNil(t, flags.Lookup(name))
		})
	}
	assert.Equal(t, "v", flags.Lookup("verbose").Shorthand)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"guide", "list", "render", "copy", "version", "completion"} {
		assert.True(t, names[want], want)
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	_, err := execute(t, "hubspot-to-sana")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "sanaguide dev")
	assert.Contains(t, out, "commit: none")
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")

	require.NoError(t, err)
	assert.Contains(t, out, "sanaguide")
}

func TestFormatError(t *testing.T) {
	t.Run("user error with suggestion", func(t *testing.T) {
		err := guide.NewFlowNotFoundError("nope", []string{"hubspot-to-sana"})

		msg := formatError(err)

		assert.Contains(t, msg, "nope")
		assert.Contains(t, msg, "Suggestion:")
		assert.NotContains(t, msg, "Technical details")
	})

	t.Run("verbose adds underlying error", func(t *testing.T) {
		verbose = true
		t.Cleanup(func() { verbose = false })

		err := guide.NewClipboardError("none", errors.New("no backend"))

		assert.Contains(t, formatError(err), "Technical details: no backend")
	})

	t.Run("wrapped user error", func(t *testing.T) {
		err := errors.Join(errors.New("outer"), guide.NewStepNotFoundError("demo", 9, 3))

		assert.Contains(t, formatError(err), "9")
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, "boom", formatError(errors.New("boom")))
	})
}

func TestPrintErrorTo(t *testing.T) {
	var buf bytes.Buffer

	printErrorTo(&buf, errors.New("boom"))

	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestParseSetFlags(t *testing.T) {
	flow := testutil.NewFlowBuilder("demo").
		WithField("sanaDomain", "your-sana-domain").
		WithSecretField("sanaToken", "YOUR_SANA_TOKEN").
		WithSteps(1).
		Build()

	t.Run("valid pairs", func(t *testing.T) {
		msgs, err := parseSetFlags(flow, []string{"sanaDomain=acme", "sanaToken=a=b"})

		require.NoError(t, err)
		assert.Equal(t, []app.Msg{
			app.SetField{Name: "sanaDomain", Value: "acme"},
			app.SetField{Name: "sanaToken", Value: "a=b"},
		}, msgs)
	})

	t.Run("empty value clears", func(t *testing.T) {
		msgs, err := parseSetFlags(flow, []string{"sanaDomain="})

		require.NoError(t, err)
		assert.Equal(t, []app.Msg{app.SetField{Name: "sanaDomain"}}, msgs)
	})

	t.Run("missing equals", func(t *testing.T) {
		_, err := parseSetFlags(flow, []string{"sanaDomain"})

		testutil.AssertUserError(t, err, guide.ErrCodeFieldUnknown)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := parseSetFlags(flow, []string{"domain=acme"})

		testutil.AssertUserError(t, err, guide.ErrCodeFieldUnknown)
		assert.Contains(t, guide.GetUserError(err).Suggestion, "sanaDomain")
	})
}

func TestSecretKeys(t *testing.T) {
	a := testutil.NewFlowBuilder("a").WithSecretField("token", "T").WithField("domain", "d").WithSteps(1).Build()
	b := testutil.NewFlowBuilder("b").WithSecretField("token", "T").WithSecretField("secret", "S").WithSteps(1).Build()

	assert.Equal(t, []string{"token", "secret"}, secretKeys(testutil.Catalog(a, b)))
}

func TestCompleteFlowIDs(t *testing.T) {
	ids, directive := completeFlowIDs(rootCmd, nil, "")

	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Contains(t, ids, "hubspot-to-sana\tHubSpot → Sana")
	for _, id := range ids {
		assert.NotContains(t, id, "google-docs", "coming soon flows are not offered")
	}

	ids, _ = completeFlowIDs(rootCmd, []string{"hubspot-to-sana"}, "")
	assert.Empty(t, ids)
}
