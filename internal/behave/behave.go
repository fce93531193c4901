// Package behave runs TOML scenario suites against the supervisor: each
// scenario names a command, its limits and the expected outcome. Suites
// double as an acceptance harness for deployments.
package behave

import (
	"fmt"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/tsarn/pygon-run/internal/supervise"
)

// SpecRun describes the command and limits of a scenario.
type SpecRun struct {
	Cmd    []string `toml:"cmd"`
	CpuMs  int64    `toml:"cpu_ms"`
	MemMB  int64    `toml:"mem_mb"`
	WallMs int64    `toml:"wall_ms"`
}

// SpecExpect describes the expected verdict and, optionally, exit code.
type SpecExpect struct {
	Verdict  string `toml:"verdict"`
	ExitCode *int   `toml:"exitcode"`
}

type specScenario struct {
	Description string     `toml:"description"`
	Run         SpecRun    `toml:"run"`
	Expect      SpecExpect `toml:"expect"`
}

type specRoot struct {
	Scenarios []specScenario `toml:"scenarios"`
}

// Case is a runnable scenario converted from TOML.
type Case struct {
	Name   string
	Argv   []string
	Limits supervise.Limits
	Expect SpecExpect
}

var allowedVerdicts = mapset.NewSet("OK", "TL", "ML", "RL", "ERR")

// Parse reads a behaviour TOML file and converts it to runnable cases.
// Omitted limits get defaults: 1000 ms CPU, 256 MB memory, and a wall
// budget of five times the CPU budget.
func Parse(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read behaviour file: %w", err)
	}
	var root specRoot
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if len(root.Scenarios) == 0 {
		return nil, fmt.Errorf("behaviour file contains no scenarios")
	}

	cases := make([]Case, 0, len(root.Scenarios))
	for i, scenario := range root.Scenarios {
		if len(scenario.Run.Cmd) == 0 {
			return nil, fmt.Errorf("scenario %d is missing a command", i+1)
		}
		if !allowedVerdicts.Contains(scenario.Expect.Verdict) {
			return nil, fmt.Errorf("scenario %d expects unknown verdict %q",
				i+1, scenario.Expect.Verdict)
		}

		cpuMs := scenario.Run.CpuMs
		if cpuMs == 0 {
			cpuMs = 1000
		}
		memMB := scenario.Run.MemMB
		if memMB == 0 {
			memMB = 256
		}
		wallMs := scenario.Run.WallMs
		if wallMs == 0 {
			wallMs = 5 * cpuMs
		}

		name := scenario.Description
		if name == "" {
			name = fmt.Sprintf("scenario %d", i+1)
		}

		cases = append(cases, Case{
			Name:   name,
			Argv:   scenario.Run.Cmd,
			Limits: supervise.Limits{CpuMs: cpuMs, MemMB: memMB, WallMs: wallMs},
			Expect: scenario.Expect,
		})
	}

	return cases, nil
}
