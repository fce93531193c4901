//go:build linux

package supervise

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// linuxChild supervises through fork/exec plus rlimit ceilings, with wait
// status and rusage as the post-mortem accounting source.
type linuxChild struct {
	cmd   *exec.Cmd
	state *os.ProcessState
}

// launch starts argv as a child process in its own process group, standard
// streams inherited, and installs the preventive rlimit ceilings on it.
func launch(argv []string, lim Limits) (child, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start child: %w", err)
	}

	c := &linuxChild{cmd: cmd}
	c.applyCeilings(lim)
	return c, nil
}

// applyCeilings mutates the just-started child's resource-limit state and
// nothing else; the calling process is unaffected. The CPU ceiling is soft
// only, so overrun arrives as SIGXCPU and stays attributable; the
// address-space ceiling is hard at twice the judged limit. Failure to
// install a ceiling is logged, not fatal: the measured-usage judgment
// still applies.
func (c *linuxChild) applyCeilings(lim Limits) {
	pid := c.cmd.Process.Pid

	cpu := unix.Rlimit{Cur: lim.CpuCeilSeconds(), Max: unix.RLIM_INFINITY}
	if err := unix.Prlimit(pid, unix.RLIMIT_CPU, &cpu, nil); err != nil {
		slog.Warn("failed to set cpu ceiling", "pid", pid, "error", err)
	}

	mem := unix.Rlimit{Cur: lim.MemCeilBytes(), Max: lim.MemCeilBytes()}
	if err := unix.Prlimit(pid, unix.RLIMIT_AS, &mem, nil); err != nil {
		slog.Warn("failed to set memory ceiling", "pid", pid, "error", err)
	}
}

// kill takes down the whole process group so children of the child don't
// survive a wall-clock kill.
func (c *linuxChild) kill() {
	_ = syscall.Kill(-c.cmd.Process.Pid, syscall.SIGKILL)
}

func (c *linuxChild) awaitTermination() Cause {
	_ = c.cmd.Wait()
	c.state = c.cmd.ProcessState

	ws, ok := c.state.Sys().(syscall.WaitStatus)
	if !ok {
		return Cause{Exited: true, ExitCode: c.state.ExitCode()}
	}
	if ws.Signaled() {
		sig := ws.Signal()
		return Cause{Signal: int(sig), CpuEnforced: sig == syscall.SIGXCPU}
	}
	return Cause{Exited: true, ExitCode: ws.ExitStatus()}
}

func (c *linuxChild) collectUsage() Usage {
	ru, ok := c.state.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return Usage{}
	}
	return Usage{
		CpuMs:    timevalMs(ru.Utime) + timevalMs(ru.Stime),
		MemoryMB: ru.Maxrss / 1024, // ru_maxrss is KiB on Linux
	}
}

func timevalMs(tv syscall.Timeval) int64 {
	return int64(tv.Sec)*1000 + int64(tv.Usec)/1000
}
