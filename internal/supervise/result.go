package supervise

import (
	"encoding/json"
	"fmt"
)

// Verdict is the final classification of a supervised run.
type Verdict int32

const (
	// VerdictNone is the undetermined sentinel a result starts out as.
	// It never appears in a finalized Result.
	VerdictNone Verdict = iota
	VerdictOk
	VerdictTimeLimit
	VerdictMemoryLimit
	VerdictWallLimit
	VerdictError
)

// String returns the verdict name used in reports: OK, TL, ML, RL or ERR.
func (v Verdict) String() string {
	switch v {
	case VerdictOk:
		return "OK"
	case VerdictTimeLimit:
		return "TL"
	case VerdictMemoryLimit:
		return "ML"
	case VerdictWallLimit:
		return "RL"
	case VerdictError:
		return "ERR"
	}
	return "undetermined"
}

// ParseVerdict maps a report verdict name back to a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "OK":
		return VerdictOk, nil
	case "TL":
		return VerdictTimeLimit, nil
	case "ML":
		return VerdictMemoryLimit, nil
	case "RL":
		return VerdictWallLimit, nil
	case "ERR":
		return VerdictError, nil
	}
	return VerdictNone, fmt.Errorf("unknown verdict %q", s)
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Verdict) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseVerdict(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Result is produced exactly once per invocation. All fields are always
// populated; zero means the figure was unavailable.
type Result struct {
	Verdict  Verdict `json:"verdict"`
	ExitCode int     `json:"exit_code"`
	CpuMs    int64   `json:"cpu_ms"`
	MemoryMB int64   `json:"memory_mb"`
}
