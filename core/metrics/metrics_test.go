package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCommand(t *testing.T) {
	m := New()
	m.ObserveCommand("cd", true, 0)
	m.ObserveCommand("cd", true, 0)
	m.ObserveCommand("cd", true, 1)
	m.ObserveCommand("ls", false, 127)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("cd", "true", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("cd", "true", "1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("ls", "false", "127")))

	count, err := testutil.GatherAndCount(m.Gatherer(), "minishell_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveCommand("pwd", true, 0)

	path := filepath.Join(t.TempDir(), "minishell.prom")
	require.NoError(t, m.WriteTextfile(path))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `minishell_commands_total{builtin="true",command="pwd",status="0"} 1`)
}
