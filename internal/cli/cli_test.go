package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sitekeeper/internal/config"
)

func newCLIApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	a := newTestApp(cfg)
	a.now = func() time.Time {
		return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	}
	return a
}

// execute runs the command tree against the test app and captures output.
func execute(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	old := app
	app = a
	t.Cleanup(func() { app = old })

	resetFlags(rootCmd)
	siteTags = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag in the tree to its default so executions
// in the same test binary do not leak state into each other.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Value.Type() != "stringSlice" {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestAddSiteAndList(t *testing.T) {
	a := newCLIApp(t)

	out, err := execute(t, a, "add-site", "GitHub", "--url", "https://github.com", "--tag", "dev")
	require.NoError(t, err)
	assert.Contains(t, out, "Added GitHub")

	out, err = execute(t, a, "list", "--status", "all", "--category", "", "--tag", "", "--search", "")
	require.NoError(t, err)
	assert.Contains(t, out, "GitHub")
	assert.Contains(t, out, "https://github.com")
}

func TestAddSite_MissingURL(t *testing.T) {
	a := newCLIApp(t)

	_, err := execute(t, a, "add-site", "NoURL")
	require.Error(t, err)
}

func TestCheckinFlow(t *testing.T) {
	a := newCLIApp(t)

	_, err := execute(t, a, "add-site", "Bank", "--url", "https://bank.example.com")
	require.NoError(t, err)

	out, err := execute(t, a, "add-credential", "Bank", "--email", "me@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "me@example.com")

	out, err = execute(t, a, "checkin", "Bank")
	require.NoError(t, err)
	assert.Contains(t, out, "Checked in me@example.com")

	doc := a.state.Document()
	require.Len(t, doc.Sites, 1)
	require.NotNil(t, doc.Sites[0].Credentials[0].CheckedInOn)

	out, err = execute(t, a, "reset", "Bank", "me@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset me@example.com")

	doc = a.state.Document()
	assert.Nil(t, doc.Sites[0].Credentials[0].CheckedInOn)
}

func TestCheckin_UnknownSite(t *testing.T) {
	a := newCLIApp(t)

	_, err := execute(t, a, "checkin", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteSite(t *testing.T) {
	a := newCLIApp(t)

	_, err := execute(t, a, "add-site", "Old", "--url", "https://old.example.com")
	require.NoError(t, err)

	out, err := execute(t, a, "delete-site", "Old")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Old")
	assert.Empty(t, a.state.Document().Sites)
}

func TestCategories(t *testing.T) {
	a := newCLIApp(t)

	out, err := execute(t, a, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Personal")

	out, err = execute(t, a, "categories", "add", "Gaming")
	require.NoError(t, err)
	assert.Contains(t, out, "Added category Gaming")

	out, err = execute(t, a, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Gaming")
}

func TestGenerate(t *testing.T) {
	a := newCLIApp(t)

	out, err := execute(t, a, "generate", "--length", "20")
	require.NoError(t, err)
	assert.Len(t, bytes.TrimSpace([]byte(out)), 20)
}

func TestExportCSV(t *testing.T) {
	a := newCLIApp(t)

	_, err := execute(t, a, "add-site", "Bank", "--url", "https://bank.example.com")
	require.NoError(t, err)
	_, err = execute(t, a, "add-credential", "Bank", "--email", "me@example.com")
	require.NoError(t, err)

	out, err := execute(t, a, "export", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, `"Site Name","URL","Category","Email","Label","Tags"`)
	assert.Contains(t, out, `"me@example.com"`)
}

func TestTheme(t *testing.T) {
	a := newCLIApp(t)

	out, err := execute(t, a, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")

	out, err = execute(t, a, "theme", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme set to light")
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	require.Error(t, err)
}

func TestGetPassword_Prompt(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("secret"), nil
	}
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)
	assert.Contains(t, out.String(), "Enter password:")
}

func TestClear_Confirmation(t *testing.T) {
	a := newCLIApp(t)
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	_, err := execute(t, a, "add-site", "Bank", "--url", "https://bank.example.com")
	require.NoError(t, err)

	rootCmd.SetIn(strings.NewReader("n\n"))
	out, err := execute(t, a, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")
	assert.Len(t, a.state.Document().Sites, 1)

	rootCmd.SetIn(strings.NewReader("y\n"))
	out, err = execute(t, a, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "All data cleared")
	assert.Empty(t, a.state.Document().Sites)
}

func TestImport_CorruptedEnvelope(t *testing.T) {
	a := newCLIApp(t)
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		return []byte("pw"), nil
	}

	payload := `{"salt":"dGlueQ==","iv":"c2hvcnQ=","data":"AAAA","algorithm":"AES-GCM","iterations":1000}`
	path := filepath.Join(t.TempDir(), "corrupted.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	_, err := execute(t, a, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong password or corrupted export")
}
