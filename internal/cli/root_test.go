package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uyagen/pkg/uyagen"
)

const golden31 = "../../pkg/uyagen/testdata/fixture_3_1.uya"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootWritesFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.uya")

	out, _, err := run(t, "3", "1", path)
	require.NoError(t, err)

	want, err := os.ReadFile(golden31)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	assert.Contains(t, out, "Generating fixture: "+path)
	assert.Contains(t, out, "  - functions: 3\n")
	assert.Contains(t, out, "  - structs: 1\n")
	assert.Contains(t, out, "  - size: 0.00 MiB (2,494 bytes)\n")
}

func TestRootStdout(t *testing.T) {
	out, errOut, err := run(t, "3", "1", "-")
	require.NoError(t, err)

	want, err := os.ReadFile(golden31)
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
	assert.Contains(t, errOut, "(2,494 bytes)")
}

func TestRootQuiet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.uya")
	out, errOut, err := run(t, "--quiet", "0", "0", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, errOut)
	assert.FileExists(t, path)
}

func TestRootRejectsBadCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.uya")

	_, _, err := run(t, "many", "1", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid function count "many"`)

	_, _, err = run(t, "--", "1", "-2", path)
	assert.ErrorIs(t, err, uyagen.ErrNegativeCount)

	assert.NoFileExists(t, path)
}

func TestRootIOError(t *testing.T) {
	_, _, err := run(t, "1", "1", filepath.Join(t.TempDir(), "nope", "out.uya"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootTooManyArgs(t *testing.T) {
	_, _, err := run(t, "1", "1", "a.uya", "extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 3 arg(s), received 4")
}

func TestRunNegativeLeadingCountFailsBeforeIO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.uya")
	var out, errOut bytes.Buffer

	code := Run([]string{"-5", "1", path}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "unknown shorthand flag: '5'")
	assert.NoFileExists(t, path)

	errOut.Reset()
	code = Run([]string{"--", "-5", "1", path}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "count must not be negative")
	assert.NoFileExists(t, path)
}

func TestRunLogsSingleLineError(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"1", "1", filepath.Join(t.TempDir(), "nope", "out.uya")}, &out, &errOut)
	assert.Equal(t, 1, code)

	line := errOut.String()
	assert.Equal(t, 1, strings.Count(line, "\n"), line)
	assert.Contains(t, line, "level=ERROR")
	assert.Contains(t, line, "no such file or directory")
	assert.Contains(t, line, "create output")
	// No stack frames, raw or escaped by the text handler.
	assert.NotContains(t, line, "\n\t")
	assert.NotContains(t, line, `\n\t`)
	assert.NotContains(t, line, ".go:")
}

func TestRunAcceptsPaddedCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.uya")
	var out, errOut bytes.Buffer

	code := Run([]string{" 3", "1_0", path}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "  - functions: 3\n")
	assert.Contains(t, out.String(), "  - structs: 10\n")
	assert.Empty(t, errOut.String())
}

func TestRootVersion(t *testing.T) {
	out, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "uyagen 0.1.0\n", out)
}

func TestOptionsFromArgsDefaults(t *testing.T) {
	opts, err := optionsFromArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, uyagen.Defaults(), opts)

	opts, err = optionsFromArgs([]string{"20"})
	require.NoError(t, err)
	assert.Equal(t, 20, opts.FunctionCount)
	assert.Equal(t, uyagen.DefaultStructCount, opts.StructCount)
	assert.Equal(t, uyagen.DefaultOutputPath, opts.OutputPath)
}
