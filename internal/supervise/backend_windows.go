//go:build windows

package supervise

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"unsafe"

	"golang.org/x/sys/windows"
)

// x/sys/windows wraps GetProcessTimes but not psapi's memory counters,
// so that one call is bound here.
var procGetProcessMemoryInfo = windows.NewLazySystemDLL("psapi.dll").NewProc("GetProcessMemoryInfo")

type processMemoryCounters struct {
	CB                         uint32
	PageFaultCount             uint32
	PeakWorkingSetSize         uintptr
	WorkingSetSize             uintptr
	QuotaPeakPagedPoolUsage    uintptr
	QuotaPagedPoolUsage        uintptr
	QuotaPeakNonPagedPoolUsage uintptr
	QuotaNonPagedPoolUsage     uintptr
	PagefileUsage              uintptr
	PeakPagefileUsage          uintptr
}

func getProcessMemoryInfo(h windows.Handle, counters *processMemoryCounters) error {
	counters.CB = uint32(unsafe.Sizeof(*counters))
	r1, _, err := procGetProcessMemoryInfo.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(counters)),
		uintptr(counters.CB),
	)
	if r1 == 0 {
		return err
	}
	return nil
}

// windowsChild supervises through a process handle opened at launch. The
// handle outlives the process itself, which keeps GetProcessTimes and
// GetProcessMemoryInfo valid for post-mortem accounting.
type windowsChild struct {
	cmd    *exec.Cmd
	handle windows.Handle
}

// launch starts argv as a child process with standard streams inherited.
// There is no kernel resource-limit primitive to install here: the limit
// enforcer is a no-op and CPU/memory violations are judged entirely from
// measured usage by the resolver.
func launch(argv []string, lim Limits) (child, error) {
	_ = lim

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start child: %w", err)
	}

	const access = windows.PROCESS_QUERY_INFORMATION | windows.PROCESS_TERMINATE | windows.SYNCHRONIZE
	handle, err := windows.OpenProcess(access, false, uint32(cmd.Process.Pid))
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, fmt.Errorf("open process handle: %w", err)
	}
	return &windowsChild{cmd: cmd, handle: handle}, nil
}

func (c *windowsChild) kill() {
	_ = windows.TerminateProcess(c.handle, 1)
}

func (c *windowsChild) awaitTermination() Cause {
	_ = c.cmd.Wait()

	var code uint32
	if err := windows.GetExitCodeProcess(c.handle, &code); err != nil {
		slog.Warn("failed to query exit code", "error", err)
		return Cause{Exited: true, ExitCode: c.cmd.ProcessState.ExitCode()}
	}
	return Cause{Exited: true, ExitCode: int(int32(code))}
}

func (c *windowsChild) collectUsage() Usage {
	defer windows.CloseHandle(c.handle)
	var usage Usage

	var creation, exit, kernel, user windows.Filetime
	if err := windows.GetProcessTimes(c.handle, &creation, &exit, &kernel, &user); err != nil {
		slog.Warn("failed to query process times", "error", err)
	} else {
		usage.CpuMs = (filetime100ns(kernel) + filetime100ns(user)) / 10000
	}

	var counters processMemoryCounters
	if err := getProcessMemoryInfo(c.handle, &counters); err != nil {
		slog.Warn("failed to query memory info", "error", err)
	} else {
		usage.MemoryMB = int64(counters.PeakWorkingSetSize) / 1024 / 1024
	}
	return usage
}

func filetime100ns(ft windows.Filetime) int64 {
	return int64(ft.HighDateTime)<<32 + int64(ft.LowDateTime)
}
