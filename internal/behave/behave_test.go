package behave_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsarn/pygon-run/internal/behave"
)

func writeSuite(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestParse(t *testing.T) {
	path := writeSuite(t, `
[[scenarios]]
description = "instant exit"

[scenarios.run]
cmd = ["/bin/true"]
cpu_ms = 2000
mem_mb = 64
wall_ms = 4000

[scenarios.expect]
verdict = "OK"
exitcode = 0

[[scenarios]]

[scenarios.run]
cmd = ["/bin/sleep", "10"]

[scenarios.expect]
verdict = "RL"
`)

	cases, err := behave.Parse(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "instant exit", cases[0].Name)
	assert.Equal(t, []string{"/bin/true"}, cases[0].Argv)
	assert.Equal(t, int64(2000), cases[0].Limits.CpuMs)
	assert.Equal(t, int64(64), cases[0].Limits.MemMB)
	assert.Equal(t, int64(4000), cases[0].Limits.WallMs)
	require.NotNil(t, cases[0].Expect.ExitCode)
	assert.Equal(t, 0, *cases[0].Expect.ExitCode)

	// defaults: cpu 1000ms, mem 256MB, wall 5x cpu
	assert.Equal(t, "scenario 2", cases[1].Name)
	assert.Equal(t, int64(1000), cases[1].Limits.CpuMs)
	assert.Equal(t, int64(256), cases[1].Limits.MemMB)
	assert.Equal(t, int64(5000), cases[1].Limits.WallMs)
	assert.Nil(t, cases[1].Expect.ExitCode)
}

func TestParseRejectsUnknownVerdict(t *testing.T) {
	path := writeSuite(t, `
[[scenarios]]

[scenarios.run]
cmd = ["/bin/true"]

[scenarios.expect]
verdict = "WA"
`)

	_, err := behave.Parse(path)
	assert.ErrorContains(t, err, "unknown verdict")
}

func TestParseRejectsMissingCommand(t *testing.T) {
	path := writeSuite(t, `
[[scenarios]]

[scenarios.expect]
verdict = "OK"
`)

	_, err := behave.Parse(path)
	assert.ErrorContains(t, err, "missing a command")
}

func TestParseRejectsEmptySuite(t *testing.T) {
	_, err := behave.Parse(writeSuite(t, ""))
	assert.Error(t, err)
}
