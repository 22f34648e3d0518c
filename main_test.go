package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath = ""
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPlayCmd(t *testing.T) {
	t.Run("plays a full game", func(t *testing.T) {
		out, err := execute(t, "play", "--episodes", "50", "--seed", "3")

		require.NoError(t, err)
		require.Contains(t, out, "1. X plays")
		require.Contains(t, out, "moves")
	})

	t.Run("plays from a given position", func(t *testing.T) {
		out, err := execute(t, "play", "--episodes", "200", "--seed", "3", "--board", "XX./OO./...", "--final-policy", "visits")

		require.NoError(t, err)
		require.Contains(t, out, "1. X plays c1")
		require.Contains(t, out, "X wins after 1 moves")
	})

	t.Run("search agent against itself as O", func(t *testing.T) {
		_, err := execute(t, "play", "--episodes", "30", "--seed", "5", "--opponent", "mcts", "--side", "o")
		require.NoError(t, err)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := execute(t, "play", "--opponent", "human")
		require.Error(t, err)

		_, err = execute(t, "play", "--board", "XXX")
		require.Error(t, err)

		_, err = execute(t, "play", "--episodes", "0")
		require.Error(t, err)
	})
}

func TestExperimentCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "experiment.yaml")
	config := `
experiment:
  name: smoke
  games: 2
  agents:
    - {id: 1, kind: mcts, episodes: 20}
    - {id: 2, kind: random}
  matchups:
    - {agent1: 1, agent2: 2}
`
	require.NoError(t, os.WriteFile(path, []byte(config), 0644))

	out, err := execute(t, "--config", path, "experiment", "--out", dir, "--seed", "1")

	require.NoError(t, err)
	require.Contains(t, out, "agent 1 vs agent 2")
	require.Contains(t, out, "records written to")

	_, err = execute(t, "experiment", "--out", "")
	require.Error(t, err, "Default config declares no matchups")
}
