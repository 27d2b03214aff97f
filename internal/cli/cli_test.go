package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/on-the-ground/rvm_ive_go/config"
	"github.com/on-the-ground/rvm_ive_go/internal/cli"
	"github.com/on-the-ground/rvm_ive_go/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// keep a stray .env in the working directory out of the test
	args = append([]string{"--env-file=" + filepath.Join(t.TempDir(), "none.env")}, args...)

	var out bytes.Buffer
	root := cli.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_ListsDemos(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"memorize", "autofree", "tailrec", "all"} {
		assert.Contains(t, out, name)
	}
}

func TestMemorize(t *testing.T) {
	out, err := execute(t, "memorize", "--n", "20", "--log-level", "error")
	require.NoError(t, err)
	assert.Regexp(t,
		`^Fibonacci without memoization = 6765 \(took \d+ms\)\n`+
			`Fibonacci with memoization = 6765 \(took \d+ms\)\n$`,
		out)
}

func TestAutoFree(t *testing.T) {
	out, err := execute(t, "autofree", "--n", "10", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "Allocated without auto-free 11 values, with auto-free - 0 values\n", out)
}

func TestTailRecursion(t *testing.T) {
	out, err := execute(t, "tailrec", "--n", "10", "--log-level", "error")
	require.NoError(t, err)
	assert.Regexp(t,
		`^Fibonacci without optimization = 55 \(took \d+ms\)\n`+
			`Fibonacci with optimization = 55 \(took \d+ms\)\n$`,
		out)
}

func TestAll(t *testing.T) {
	out, err := execute(t, "all", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Fibonacci with memoization = 832040")
	assert.Contains(t, out, "Allocated without auto-free 101 values, with auto-free - 0 values\n")
	assert.Contains(t, out, "Fibonacci with optimization = 102334155")
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rvm.log")
	_, err := execute(t, "autofree", "--n", "1", "--log-file", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestInvalidSettings(t *testing.T) {
	_, err := execute(t, "memorize", "--log-level", "loud")
	assert.ErrorIs(t, err, logging.ErrInvalidLevel)

	t.Setenv(config.KeyMaxDepth, "0")
	_, err = execute(t, "memorize", "--n", "1")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "memorize", "extra")
	assert.Error(t, err)
}
