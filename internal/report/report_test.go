package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsarn/pygon-run/internal/report"
	"github.com/tsarn/pygon-run/internal/supervise"
)

func TestFormat(t *testing.T) {
	res := supervise.Result{
		Verdict:  supervise.VerdictTimeLimit,
		ExitCode: -24,
		CpuMs:    1042,
		MemoryMB: 17,
	}

	want := "verdict: TL\nexitcode: -24\ntime: 1042\nmemory: 17\n"
	assert.Equal(t, want, report.Format(res))
}

func TestWriteFileAndParse(t *testing.T) {
	res := supervise.Result{
		Verdict:  supervise.VerdictOk,
		ExitCode: 3,
		CpuMs:    12,
		MemoryMB: 4,
	}

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, report.WriteFile(path, res))

	body, err := os.ReadFile(path)
	require.NoError(t, err)

	parsed, err := report.Parse(string(body))
	require.NoError(t, err)
	assert.Equal(t, res, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := report.Parse("verdict: WA\nexitcode: 0\ntime: 0\nmemory: 0\n")
	assert.Error(t, err)

	_, err = report.Parse("not a report")
	assert.Error(t, err)

	_, err = report.Parse("verdict: OK\nexitcode: 0\ntime: 0\n")
	assert.Error(t, err)
}
