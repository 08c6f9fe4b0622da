package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a fresh root command with the given args, isolated from any
// config.yaml in the working tree.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestClearRequiresForce(t *testing.T) {
	_, err := execute(t, "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

func TestSaveRequiresReadableFile(t *testing.T) {
	_, err := execute(t, "save", "no-such-strategy.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read strategy file")
}

func TestSaveRequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "save")
	require.Error(t, err)
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "brawl")
	require.Error(t, err)
}
