package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrOnlineCoder/qmf/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()

	return out.String(), err
}

func TestCheckCmd(t *testing.T) {
	out, err := run(t, "", "check", "3", "2", "15")
	require.NoError(t, err)
	assert.Equal(t, "Yes\nNo\nYes\n", out)

	out, err = run(t, "", "check", "--vars", "3", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "Yes\nNo\n", out)

	out, err = run(t, "", "check", "--debug", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "f energy = 4\n")
	assert.True(t, strings.HasSuffix(out, "Yes\n"))
}

func TestCheckCmd_Errors(t *testing.T) {
	_, err := run(t, "", "check", "abc")
	assert.Error(t, err)

	_, err = run(t, "", "check", "16")
	assert.Error(t, err)

	_, err = run(t, "", "check", "--vars", "0", "1")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "", "check", "--vars", "3", "--selector", "1,0", "1")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestEnumerateCmd(t *testing.T) {
	hist := filepath.Join(t.TempDir(), "h.csv")
	out, err := run(t, "", "enumerate", "--vars", "3", "--hist", hist, "--workers", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Total functions count to iterate: 256\n")
	assert.Contains(t, out, "Result: 20 (256 / 256)\n")
	assert.Contains(t, out, "Dual count out of 20: 4\n")

	data, err := os.ReadFile(hist)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 257)
}

func TestRootCmd_Shell(t *testing.T) {
	out, err := run(t, "#\n#\n@3 1 1 1\n1\n\nexit\n2\n")
	require.NoError(t, err)
	assert.Equal(t, "Debug mode: on\nDebug mode: off\nn = 3\nYes\n", out)
}

func TestRootCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qmf.yaml")
	cfg := config.Default()
	cfg.Vars = 3
	cfg.Enumeration.HistogramPath = ""
	require.NoError(t, cfg.Save(path))

	out, err := run(t, "$\n", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 20 (256 / 256)\n")
	assert.NotContains(t, out, "Histogram written")

	// --vars overrides the file and drops its now mismatched selector.
	cfg.Selector = []string{"1", "1", "1"}
	require.NoError(t, cfg.Save(path))
	out, err = run(t, "", "check", "--config", path, "--vars", "2", "2")
	require.NoError(t, err)
	assert.Equal(t, "No\n", out)
}
